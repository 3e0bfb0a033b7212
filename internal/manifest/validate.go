package manifest

import (
	"context"
	"fmt"
	"strings"

	"github.com/horizonsvc/horizon/internal/ctxlog"
	"github.com/horizonsvc/horizon/internal/registry"
)

// Validate performs a strict parity check between manifest module identities
// and the factories bound into the binary. Both directions are errors: a
// manifest module without a factory cannot be constructed, and a bound
// factory without a manifest is dead code the manifests know nothing about.
// It also warns about interfaces that are extended but never declared, since
// that usually means a typo in an identity.
func Validate(ctx context.Context, m *Model, binder *registry.Binder) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	for _, mod := range m.Modules {
		if !binder.Bound(mod.Identity) {
			errs = append(errs, fmt.Sprintf("module '%s' (%s): no Go factory bound for this identity", mod.Identity, mod.Source))
		}
	}
	for _, identity := range binder.Identities() {
		if _, ok := m.moduleIndex[identity]; !ok {
			errs = append(errs, fmt.Sprintf("factory '%s' is bound but no manifest declares it", identity))
		}
	}

	declared := make(map[string]struct{}, len(m.parents))
	for iface := range m.parents {
		declared[iface] = struct{}{}
	}
	for iface, parents := range m.parents {
		for _, parent := range parents {
			if _, ok := declared[parent]; !ok {
				logger.Warn("Interface extends an undeclared interface; treating it as a root.",
					"interface", iface, "extends", parent)
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("manifest validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
