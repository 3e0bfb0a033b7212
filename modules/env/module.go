package env

import (
	"context"
	"os"
	"strings"

	"github.com/horizonsvc/horizon/internal/registry"
)

// Identity is the module identity declared in manifest.hcl.
const Identity = "horizon.modules.env.Service"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register binds this module's factory with the registry binder.
func (m *Module) Register(b *registry.Binder) {
	b.Bind(Identity, func(ctx context.Context) (any, error) {
		return NewService(), nil
	})
}

// Service exposes the process environment as a lookup table, snapshotted at
// construction time.
type Service struct {
	vars map[string]string
}

// NewService captures the current process environment.
func NewService() *Service {
	vars := make(map[string]string)
	for _, e := range os.Environ() {
		if pair := strings.SplitN(e, "=", 2); len(pair) == 2 {
			vars[pair[0]] = pair[1]
		}
	}
	return &Service{vars: vars}
}

// Lookup returns the value of one environment variable.
func (s *Service) Lookup(name string) (string, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// All returns a copy of the captured environment.
func (s *Service) All() map[string]string {
	out := make(map[string]string, len(s.vars))
	for k, v := range s.vars {
		out[k] = v
	}
	return out
}
