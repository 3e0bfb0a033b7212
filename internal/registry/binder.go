package registry

import (
	"fmt"
	"log/slog"
)

// Module is the interface compiled-in module sets implement to register
// their factories with a Binder.
type Module interface {
	Register(b *Binder)
}

// Binder maps module identities to the Go factories that construct them.
// Discovery supplies metadata; the Binder supplies the code. It is populated
// single-threaded during startup and read-only afterwards.
type Binder struct {
	factories map[string]Factory
}

// NewBinder creates an empty Binder.
func NewBinder() *Binder {
	return &Binder{factories: make(map[string]Factory)}
}

// Bind registers the factory for a module identity. Binding the same
// identity twice is a programmer error and panics.
func (b *Binder) Bind(identity string, factory Factory) {
	if _, exists := b.factories[identity]; exists {
		panic(fmt.Sprintf("factory for module '%s' already bound", identity))
	}
	if factory == nil {
		panic(fmt.Sprintf("nil factory bound for module '%s'", identity))
	}
	slog.Debug("Binding module factory.", "identity", identity)
	b.factories[identity] = factory
}

// Bound reports whether a factory is registered for the identity.
func (b *Binder) Bound(identity string) bool {
	_, ok := b.factories[identity]
	return ok
}

// Identities returns every bound module identity.
func (b *Binder) Identities() []string {
	out := make([]string, 0, len(b.factories))
	for identity := range b.factories {
		out = append(out, identity)
	}
	return out
}

func (b *Binder) factory(identity string) (Factory, bool) {
	f, ok := b.factories[identity]
	return f, ok
}
