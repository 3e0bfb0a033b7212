package clock

import (
	"context"
	"time"

	"github.com/horizonsvc/horizon/internal/registry"
)

// Identity is the module identity declared in manifest.hcl.
const Identity = "horizon.modules.clock.Service"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register binds this module's factory with the registry binder.
func (m *Module) Register(b *registry.Binder) {
	b.Bind(Identity, func(ctx context.Context) (any, error) {
		return &Service{}, nil
	})
}

// Service is a wall-clock time source. Keeping it behind the registry lets
// consumers swap in a fake clock module in tests.
type Service struct{}

// Now returns the current wall-clock time.
func (s *Service) Now() time.Time {
	return time.Now()
}

// Since returns the elapsed time since t.
func (s *Service) Since(t time.Time) time.Duration {
	return time.Since(t)
}
