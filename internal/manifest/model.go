package manifest

import (
	"github.com/horizonsvc/horizon/internal/registry"
)

// Module is the parsed metadata of one module block.
type Module struct {
	Identity    string
	Description string
	Category    string
	Group       string
	Lazy        bool
	Priority    int64
	Implements  []string

	// Source is the manifest file the block came from, kept for error
	// messages.
	Source string
}

// Model is the merged result of loading every manifest file. It is read-only
// after Load returns and implements compat.ParentSource for the registry's
// hierarchy cache.
type Model struct {
	Modules []*Module

	parents          map[string][]string
	interfaceSources map[string]string
	moduleIndex      map[string]*Module
}

func newModel() *Model {
	return &Model{
		parents:          make(map[string][]string),
		interfaceSources: make(map[string]string),
		moduleIndex:      make(map[string]*Module),
	}
}

// Seeds converts the loaded modules into registry seeds, preserving manifest
// load order.
func (m *Model) Seeds() []registry.Seed {
	seeds := make([]registry.Seed, 0, len(m.Modules))
	for _, mod := range m.Modules {
		seeds = append(seeds, registry.Seed{
			Identity:    mod.Identity,
			Description: mod.Description,
			Category:    mod.Category,
			Group:       mod.Group,
			Lazy:        mod.Lazy,
			Priority:    mod.Priority,
			Interfaces:  mod.Implements,
		})
	}
	return seeds
}

// Parents implements compat.ParentSource using the declared interface blocks.
func (m *Model) Parents(iface string) []string {
	return m.parents[iface]
}

// Module returns the parsed module block for an identity.
func (m *Model) Module(identity string) (*Module, bool) {
	mod, ok := m.moduleIndex[identity]
	return mod, ok
}
