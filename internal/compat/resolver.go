package compat

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// ParentSource reports the directly declared parent interfaces of an
// interface identity. Unknown identities return nil. Implementations must be
// safe for concurrent use and must not change their answers over the lifetime
// of a Resolver.
type ParentSource interface {
	Parents(iface string) []string
}

// ParentMap is a ParentSource backed by a plain map from interface identity
// to its directly declared parents. A nil ParentMap is valid and reports no
// ancestry at all.
type ParentMap map[string][]string

// Parents implements ParentSource.
func (m ParentMap) Parents(iface string) []string {
	return m[iface]
}

// Resolver answers compatibility queries between declared capability sets and
// requested interface identities. It is safe for concurrent use.
type Resolver struct {
	source ParentSource

	// hierarchy maps an interface identity to its full ancestor closure,
	// including the identity itself.
	hierarchy sync.Map // string -> map[string]struct{}

	// verdicts maps a (module identity, requested interface) pair to the
	// memoized compatibility decision.
	verdicts sync.Map // string -> bool

	flight singleflight.Group
}

// NewResolver returns a Resolver backed by the given parent source.
func NewResolver(source ParentSource) *Resolver {
	if source == nil {
		source = ParentMap(nil)
	}
	return &Resolver{source: source}
}

// Compatible reports whether a module declaring the given capability set
// satisfies the requested interface. The module identity is used only as a
// cache key; the declared set must be immutable for that identity.
func (r *Resolver) Compatible(identity string, declared map[string]struct{}, iface string) bool {
	key := identity + "\x00" + iface
	if v, ok := r.verdicts.Load(key); ok {
		return v.(bool)
	}

	ok := false
	if _, direct := declared[iface]; direct {
		ok = true
	} else {
		for capability := range declared {
			if _, found := r.Closure(capability)[iface]; found {
				ok = true
				break
			}
		}
	}

	r.verdicts.Store(key, ok)
	return ok
}

// Closure returns the full ancestor closure of an interface identity,
// including the identity itself. The returned map is shared and must not be
// mutated by callers.
func (r *Resolver) Closure(iface string) map[string]struct{} {
	if v, ok := r.hierarchy.Load(iface); ok {
		return v.(map[string]struct{})
	}

	// singleflight collapses concurrent first-time walks of the same
	// identity; the walk itself is iterative, so a cyclic extends chain in
	// a malformed hierarchy terminates instead of recursing forever.
	v, _, _ := r.flight.Do(iface, func() (any, error) {
		if v, ok := r.hierarchy.Load(iface); ok {
			return v, nil
		}

		closure := make(map[string]struct{})
		stack := []string{iface}
		for len(stack) > 0 {
			current := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if _, seen := closure[current]; seen {
				continue
			}
			closure[current] = struct{}{}

			if current != iface {
				if cached, ok := r.hierarchy.Load(current); ok {
					for ancestor := range cached.(map[string]struct{}) {
						closure[ancestor] = struct{}{}
					}
					continue
				}
			}
			stack = append(stack, r.source.Parents(current)...)
		}

		r.hierarchy.Store(iface, closure)
		return closure, nil
	})
	return v.(map[string]struct{})
}

// ClearCaches drops both memoization caches. Subsequent queries repopulate
// them from the parent source.
func (r *Resolver) ClearCaches() {
	r.hierarchy.Range(func(k, _ any) bool {
		r.hierarchy.Delete(k)
		return true
	})
	r.verdicts.Range(func(k, _ any) bool {
		r.verdicts.Delete(k)
		return true
	})
}
