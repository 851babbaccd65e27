package providers

import (
	"crypto/rand"
	"runlog/internal/structures"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// IDGenerator mints opaque entry identifiers.
type IDGenerator interface {
	NewID() string
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// ULIDGenerator produces lexicographically time-ordered ids.
type ULIDGenerator struct{}

func (ULIDGenerator) NewID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

func NewIDProvider(conf *structures.Config) IDGenerator {
	if conf.Store.IDFormat == "ulid" {
		return ULIDGenerator{}
	}
	return UUIDGenerator{}
}
