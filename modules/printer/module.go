package printer

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/horizonsvc/horizon/internal/registry"
)

// Identity is the module identity declared in manifest.hcl.
const Identity = "horizon.modules.printer.Service"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register binds this module's factory with the registry binder.
func (m *Module) Register(b *registry.Binder) {
	b.Bind(Identity, func(ctx context.Context) (any, error) {
		return NewService(os.Stdout), nil
	})
}

// Service writes key/value tables to an output stream.
type Service struct {
	mu   sync.Mutex
	outW io.Writer
}

// NewService creates a Service writing to outW.
func NewService(outW io.Writer) *Service {
	return &Service{outW: outW}
}

// Print writes the values with keys sorted for consistent output.
func (s *Service) Print(values map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if values == nil {
		fmt.Fprintln(s.outW, "      (null)")
		return
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(s.outW, "      %s = %q\n", k, values[k])
	}
}
