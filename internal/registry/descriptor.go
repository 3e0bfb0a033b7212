package registry

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// State is the lifecycle phase of a descriptor.
type State int32

// Lifecycle states. The only legal transitions are
// Pending → Initializing → {Initialized | Failed}, and Failed → Initializing
// on a retry. Initialized is terminal.
const (
	StatePending State = iota
	StateInitializing
	StateInitialized
	StateFailed
)

// String implements fmt.Stringer for log output.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateInitializing:
		return "initializing"
	case StateInitialized:
		return "initialized"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Factory constructs the singleton instance for one module. It is resolved
// once when the registry is built, never re-resolved per lookup. The context
// carries the initialization call path; a factory that performs nested
// lookups must pass it through so cycles stay detectable.
type Factory func(ctx context.Context) (any, error)

// Seed is the discovery output for a single module type. Seeds are produced
// by the external discovery collaborator (typically the manifest loader)
// before the registry is constructed and are read-only afterwards.
type Seed struct {
	Identity    string
	Description string
	Category    string
	Group       string
	Lazy        bool
	Priority    int64
	Interfaces  []string
}

// Descriptor is one module's metadata plus its engine-owned lifecycle state.
// The metadata fields are written once at registry construction; the
// lifecycle fields are guarded by mu, with the state value mirrored in an
// atomic so the initialized fast path needs no lock.
type Descriptor struct {
	Identity    string
	Description string
	Category    string
	Group       string
	Lazy        bool
	Priority    int64

	interfaces map[string]struct{}
	factory    Factory
	order      int // stable discovery index, breaks priority ties

	mu       sync.Mutex
	state    atomic.Int32
	done     chan struct{} // non-nil while initializing, closed on completion
	instance any
	initErr  error
	initDur  time.Duration
	cycleHit bool // set by a nested lookup that resolved back to this descriptor
}

// State returns the descriptor's current lifecycle state.
func (d *Descriptor) State() State {
	return State(d.state.Load())
}

// Instance returns the materialized singleton. The boolean is false unless
// the descriptor is Initialized.
func (d *Descriptor) Instance() (any, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if State(d.state.Load()) != StateInitialized {
		return nil, false
	}
	return d.instance, true
}

// Err returns the error recorded by the most recent failed initialization
// attempt, or nil.
func (d *Descriptor) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.initErr
}

// InitDuration returns how long the most recent initialization attempt took.
func (d *Descriptor) InitDuration() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.initDur
}

// Implements reports whether the descriptor declares the exact interface
// identity. Transitive ancestry is the resolver's business, not the
// descriptor's.
func (d *Descriptor) Implements(iface string) bool {
	_, ok := d.interfaces[iface]
	return ok
}

// Interfaces returns a copy of the declared interface identity set.
func (d *Descriptor) Interfaces() []string {
	out := make([]string, 0, len(d.interfaces))
	for iface := range d.interfaces {
		out = append(out, iface)
	}
	return out
}

// flagCycle records that a nested lookup resolved back to this descriptor
// while it was initializing. The owning frame turns the flag into a Failed
// state once its factory returns.
func (d *Descriptor) flagCycle() {
	d.mu.Lock()
	d.cycleHit = true
	d.mu.Unlock()
}
