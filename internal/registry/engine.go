package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/horizonsvc/horizon/internal/ctxlog"
)

// pathKey carries the initialization call path: the set of descriptor
// identities currently being initialized along this call chain. Factories
// that trigger nested lookups must propagate their context for the cycle
// check to see the chain.
type pathKey struct{}

func callPathFrom(ctx context.Context) map[string]struct{} {
	if path, ok := ctx.Value(pathKey{}).(map[string]struct{}); ok {
		return path
	}
	return nil
}

// withCallPath extends the call path with one more identity. The path is
// copied so sibling initializations triggered by the same factory do not see
// each other's entries.
func withCallPath(ctx context.Context, path map[string]struct{}, identity string) context.Context {
	next := make(map[string]struct{}, len(path)+1)
	for id := range path {
		next[id] = struct{}{}
	}
	next[identity] = struct{}{}
	return context.WithValue(ctx, pathKey{}, next)
}

// ensure drives the descriptor's state machine until this call can report a
// definitive outcome: true once the descriptor is Initialized, false when
// construction failed, a cycle was detected, or a bounded wait on another
// goroutine's in-progress initialization expired.
func (r *Registry) ensure(ctx context.Context, d *Descriptor) bool {
	// Fast path: the atomic store of Initialized happens before the close
	// of the completion channel and after the instance write under the
	// descriptor lock, so observers here see a fully published instance.
	if d.State() == StateInitialized {
		return true
	}

	logger := ctxlog.FromContext(ctx)
	path := callPathFrom(ctx)
	if _, active := path[d.Identity]; active {
		// This call chain is already initializing d; blocking would
		// deadlock and constructing would recurse. Fail fast and let the
		// owning frame record the failure.
		d.flagCycle()
		logger.Error("Circular dependency detected.", "module", d.Identity)
		return false
	}

	d.mu.Lock()
	switch State(d.state.Load()) {
	case StateInitialized:
		d.mu.Unlock()
		return true

	case StateInitializing:
		// Another goroutine owns the attempt; wait for its completion
		// signal, bounded. Timing out never mutates the descriptor — the
		// owner remains responsible for finishing it.
		done := d.done
		d.mu.Unlock()
		select {
		case <-done:
			return d.State() == StateInitialized
		case <-time.After(r.waitTimeout):
			logger.Warn("Gave up waiting for in-progress initialization.",
				"module", d.Identity,
				"error", &WaitTimeoutError{Identity: d.Identity, Timeout: r.waitTimeout})
			return false
		case <-ctx.Done():
			logger.Warn("Context canceled while waiting for in-progress initialization.",
				"module", d.Identity, "error", ctx.Err())
			return false
		}
	}

	// Pending or Failed: claim the attempt.
	d.state.Store(int32(StateInitializing))
	d.initErr = nil
	d.cycleHit = false
	d.done = make(chan struct{})
	done := d.done
	start := time.Now()
	d.mu.Unlock()

	instance, err := construct(withCallPath(ctx, path, d.Identity), d)

	d.mu.Lock()
	d.initDur = time.Since(start)
	if err == nil && d.cycleHit {
		err = &CircularDependencyError{Identity: d.Identity}
	}
	if err != nil {
		d.instance = nil
		d.initErr = err
		d.state.Store(int32(StateFailed))
		close(done)
		d.mu.Unlock()
		logger.Error("Module initialization failed.", "module", d.Identity, "error", err)
		return false
	}
	d.instance = instance
	d.state.Store(int32(StateInitialized))
	close(done)
	duration := d.initDur
	d.mu.Unlock()

	logger.Debug("Module initialized.", "module", d.Identity, "duration", duration)
	return true
}

// construct invokes the descriptor's factory outside any lock, converting
// panics and nil instances into construction errors so no internal failure
// escapes the instantiation boundary.
func construct(ctx context.Context, d *Descriptor) (instance any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			instance = nil
			err = &ConstructionError{Identity: d.Identity, Err: fmt.Errorf("factory panicked: %v", rec)}
		}
	}()

	instance, err = d.factory(ctx)
	if err != nil {
		return nil, &ConstructionError{Identity: d.Identity, Err: err}
	}
	if instance == nil {
		return nil, &ConstructionError{Identity: d.Identity, Err: errors.New("factory returned a nil instance")}
	}
	return instance, nil
}
