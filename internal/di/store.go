package di

import (
	"runlog/internal/persistence/interfaces"
	"runlog/internal/providers"
	"runlog/internal/services"
	"runlog/internal/structures"
)

// Store is what a one-shot CLI command needs: the run service and the
// gateway it must close before exiting.
type Store struct {
	Conf    *structures.Config
	Logger  providers.Logger
	IDs     providers.IDGenerator
	Service services.RunServiceInterface
	Gateway interfaces.GatewayInterface
}

// Close flushes the pending save and releases the logger.
func (s *Store) Close() error {
	err := s.Gateway.Close()
	s.Logger.Close()
	return err
}
