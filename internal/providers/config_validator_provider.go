package providers

import (
	"runlog/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	if !v.Validate() {
		return v.Errors
	}
	return nil
}
