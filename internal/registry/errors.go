package registry

import (
	"fmt"
	"time"
)

// NotInitializedError is returned by every lookup that runs before Init.
type NotInitializedError struct {
	Op string
}

func (e *NotInitializedError) Error() string {
	return fmt.Sprintf("registry: %s called before Init", e.Op)
}

// CircularDependencyError is recorded on a descriptor whose construction
// transitively looked itself up. Retrying without breaking the cycle fails
// identically, so the registry never retries it on its own.
type CircularDependencyError struct {
	Identity string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency detected while initializing module %s", e.Identity)
}

// ConstructionError is recorded on a descriptor whose factory returned an
// error, returned nil, or panicked.
type ConstructionError struct {
	Identity string
	Err      error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("construction of module %s failed: %v", e.Identity, e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// WaitTimeoutError describes a bounded wait on another goroutine's
// in-progress initialization that expired. It is a per-call failure only and
// is never recorded on the descriptor; the owning goroutine remains
// responsible for finishing.
type WaitTimeoutError struct {
	Identity string
	Timeout  time.Duration
}

func (e *WaitTimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s waiting for module %s to initialize", e.Timeout, e.Identity)
}
