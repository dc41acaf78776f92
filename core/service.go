package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Interface defines a common interface for all services
type Interface interface {
	Start(ctx context.Context) error
	Stop()
}

type namedService struct {
	name    string
	service Interface
}

// Registry manages all services
type Registry struct {
	services []namedService
	started  int
	logger   *zap.Logger
}

// NewRegistry creates a new core registry
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		services: make([]namedService, 0),
		logger:   logger.Named("registry"),
	}
}

// Register adds a service to the registry under a name used in logs
func (sr *Registry) Register(name string, service Interface) {
	sr.services = append(sr.services, namedService{name: name, service: service})
}

// Len returns the number of registered services
func (sr *Registry) Len() int {
	return len(sr.services)
}

// StartAll starts all registered services in registration order.
// When one fails the services already started are stopped again.
func (sr *Registry) StartAll(ctx context.Context) error {
	for i, s := range sr.services {
		if err := s.service.Start(ctx); err != nil {
			sr.logger.Error("service failed to start", zap.String("service", s.name), zap.Error(err))
			sr.started = i
			sr.StopAll()
			return fmt.Errorf("start %s: %w", s.name, err)
		}
		sr.logger.Debug("service started", zap.String("service", s.name))
	}
	sr.started = len(sr.services)
	return nil
}

// StopAll stops the started services
func (sr *Registry) StopAll() {
	// Stop in reverse order
	for i := sr.started - 1; i >= 0; i-- {
		sr.services[i].service.Stop()
		sr.logger.Debug("service stopped", zap.String("service", sr.services[i].name))
	}
	sr.started = 0
}
