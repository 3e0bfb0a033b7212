package registry

import (
	"fmt"
	"sort"
)

// store is the immutable descriptor collection. It is built single-threaded
// before any lookup is possible and never mutated afterwards, so its maps
// and slices are safe for unsynchronized concurrent reads.
type store struct {
	ordered    []*Descriptor // discovery order
	byIdentity map[string]*Descriptor
	byCategory map[string][]*Descriptor
	byGroup    map[string][]*Descriptor
}

func newStore(seeds []Seed, binder *Binder) (*store, error) {
	s := &store{
		byIdentity: make(map[string]*Descriptor, len(seeds)),
		byCategory: make(map[string][]*Descriptor),
		byGroup:    make(map[string][]*Descriptor),
	}

	for i, seed := range seeds {
		if seed.Identity == "" {
			return nil, fmt.Errorf("seed at index %d has an empty identity", i)
		}
		if _, exists := s.byIdentity[seed.Identity]; exists {
			return nil, fmt.Errorf("duplicate module identity '%s'", seed.Identity)
		}
		factory, ok := binder.factory(seed.Identity)
		if !ok {
			return nil, fmt.Errorf("no factory bound for module '%s'", seed.Identity)
		}

		interfaces := make(map[string]struct{}, len(seed.Interfaces))
		for _, iface := range seed.Interfaces {
			interfaces[iface] = struct{}{}
		}

		d := &Descriptor{
			Identity:    seed.Identity,
			Description: seed.Description,
			Category:    seed.Category,
			Group:       seed.Group,
			Lazy:        seed.Lazy,
			Priority:    seed.Priority,
			interfaces:  interfaces,
			factory:     factory,
			order:       i,
		}

		s.ordered = append(s.ordered, d)
		s.byIdentity[d.Identity] = d
		s.byCategory[d.Category] = append(s.byCategory[d.Category], d)
		s.byGroup[d.Group] = append(s.byGroup[d.Group], d)
	}

	return s, nil
}

// eager returns the descriptors with Lazy == false, priority-descending.
func (s *store) eager() []*Descriptor {
	var out []*Descriptor
	for _, d := range s.ordered {
		if !d.Lazy {
			out = append(out, d)
		}
	}
	sortByPriority(out)
	return out
}

// sortByPriority orders descriptors by priority descending; descriptors with
// equal priority keep their discovery order.
func sortByPriority(descriptors []*Descriptor) {
	sort.SliceStable(descriptors, func(i, j int) bool {
		if descriptors[i].Priority != descriptors[j].Priority {
			return descriptors[i].Priority > descriptors[j].Priority
		}
		return descriptors[i].order < descriptors[j].order
	})
}
