package registry

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/horizonsvc/horizon/internal/compat"
	"github.com/horizonsvc/horizon/internal/ctxlog"
)

// DefaultWaitTimeout bounds how long a lookup waits for an initialization
// that is in progress on another goroutine.
const DefaultWaitTimeout = 10 * time.Second

// Registry is the lookup surface over the immutable descriptor store. It is
// safe for concurrent use; a host process constructs one with New, calls
// Init once, and passes it by reference to consumers.
type Registry struct {
	store       *store
	resolver    *compat.Resolver
	waitTimeout time.Duration
	initialized atomic.Bool
}

// Option configures a Registry at construction time.
type Option func(*Registry)

// WithWaitTimeout overrides DefaultWaitTimeout for waits on in-progress
// initializations.
func WithWaitTimeout(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.waitTimeout = d
		}
	}
}

// New builds a Registry from discovery seeds and bound factories. Every seed
// must have a factory bound for its identity; seeds are rejected on duplicate
// or empty identities. The parent source feeds the interface hierarchy cache
// and may be nil when the discovered interfaces declare no ancestry.
func New(seeds []Seed, parents compat.ParentSource, binder *Binder, opts ...Option) (*Registry, error) {
	if binder == nil {
		return nil, errors.New("registry: nil binder")
	}
	s, err := newStore(seeds, binder)
	if err != nil {
		return nil, err
	}

	r := &Registry{
		store:       s,
		resolver:    compat.NewResolver(parents),
		waitTimeout: DefaultWaitTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Init marks the registry ready for lookups, then eagerly materializes every
// descriptor with Lazy == false in priority-descending order. It returns the
// number of eager modules that reached Initialized. Lookups from other
// goroutines are allowed as soon as Init has started.
func (r *Registry) Init(ctx context.Context) (int, error) {
	if !r.initialized.CompareAndSwap(false, true) {
		return 0, errors.New("registry: Init called twice")
	}

	logger := ctxlog.FromContext(ctx)
	eager := r.store.eager()
	count := 0
	for _, d := range eager {
		if r.ensure(ctx, d) {
			count++
		}
	}

	logger.Info("Registry initialized.",
		"modules", len(r.store.ordered), "eager", len(eager), "ready", count)
	return count, nil
}

// First returns the highest-priority instance compatible with the requested
// interface identity, or nil when no descriptor matches or the selected
// module failed to materialize. The only returned error is
// NotInitializedError.
func (r *Registry) First(ctx context.Context, iface string) (any, error) {
	if !r.initialized.Load() {
		return nil, &NotInitializedError{Op: "First"}
	}

	candidates := r.compatible(r.store.ordered, iface)
	if len(candidates) == 0 {
		ctxlog.FromContext(ctx).Warn("No modules matched interface.", "interface", iface)
		return nil, nil
	}

	d := candidates[0]
	if !r.ensure(ctx, d) {
		return nil, nil
	}
	instance, _ := d.Instance()
	return instance, nil
}

// All returns every compatible instance, priority-descending. Modules that
// fail to materialize are omitted; one module's failure never affects the
// others in the same call.
func (r *Registry) All(ctx context.Context, iface string) ([]any, error) {
	if !r.initialized.Load() {
		return nil, &NotInitializedError{Op: "All"}
	}
	return r.materialize(ctx, r.compatible(r.store.ordered, iface), iface), nil
}

// ByCategory behaves like All, pre-filtered to descriptors with the given
// category.
func (r *Registry) ByCategory(ctx context.Context, iface, category string) ([]any, error) {
	if !r.initialized.Load() {
		return nil, &NotInitializedError{Op: "ByCategory"}
	}
	return r.materialize(ctx, r.compatible(r.store.byCategory[category], iface), iface), nil
}

// ByGroup behaves like All, pre-filtered to descriptors with the given group.
func (r *Registry) ByGroup(ctx context.Context, iface, group string) ([]any, error) {
	if !r.initialized.Load() {
		return nil, &NotInitializedError{Op: "ByGroup"}
	}
	return r.materialize(ctx, r.compatible(r.store.byGroup[group], iface), iface), nil
}

// Instance looks a module up by exact identity, bypassing interface
// filtering. Unknown identities and failed materializations both surface as
// nil.
func (r *Registry) Instance(ctx context.Context, identity string) (any, error) {
	if !r.initialized.Load() {
		return nil, &NotInitializedError{Op: "Instance"}
	}

	d, ok := r.store.byIdentity[identity]
	if !ok {
		ctxlog.FromContext(ctx).Warn("No module registered for identity.", "identity", identity)
		return nil, nil
	}
	if !r.ensure(ctx, d) {
		return nil, nil
	}
	instance, _ := d.Instance()
	return instance, nil
}

// Descriptors returns a snapshot of every descriptor in discovery order.
func (r *Registry) Descriptors() []*Descriptor {
	out := make([]*Descriptor, len(r.store.ordered))
	copy(out, r.store.ordered)
	return out
}

// InitializedDescriptors returns the descriptors currently in the
// Initialized state.
func (r *Registry) InitializedDescriptors() []*Descriptor {
	return r.inState(StateInitialized)
}

// FailedDescriptors returns the descriptors currently in the Failed state.
func (r *Registry) FailedDescriptors() []*Descriptor {
	return r.inState(StateFailed)
}

// ClearCaches drops the resolver's hierarchy and compatibility caches. It
// exists for test isolation; descriptor state is untouched.
func (r *Registry) ClearCaches() {
	r.resolver.ClearCaches()
}

func (r *Registry) inState(state State) []*Descriptor {
	var out []*Descriptor
	for _, d := range r.store.ordered {
		if d.State() == state {
			out = append(out, d)
		}
	}
	return out
}

// compatible filters candidates down to those whose declared interface set
// satisfies the requested identity, sorted priority-descending.
func (r *Registry) compatible(candidates []*Descriptor, iface string) []*Descriptor {
	var out []*Descriptor
	for _, d := range candidates {
		if r.resolver.Compatible(d.Identity, d.interfaces, iface) {
			out = append(out, d)
		}
	}
	sortByPriority(out)
	return out
}

// materialize ensures each candidate independently and collects the
// surviving instances, preserving the candidates' priority order.
func (r *Registry) materialize(ctx context.Context, candidates []*Descriptor, iface string) []any {
	if len(candidates) == 0 {
		ctxlog.FromContext(ctx).Warn("No modules matched interface.", "interface", iface)
		return nil
	}

	out := make([]any, 0, len(candidates))
	for _, d := range candidates {
		if !r.ensure(ctx, d) {
			continue
		}
		if instance, ok := d.Instance(); ok {
			out = append(out, instance)
		}
	}
	return out
}
