package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/horizonsvc/horizon/internal/ctxlog"
	"github.com/horizonsvc/horizon/internal/registry"
)

// Run initializes the registry, eagerly materializing every non-lazy module,
// and writes an initialization report. It returns an error if any eager
// module failed to initialize.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.InitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.InitTimeout)
		defer cancel()
	}

	ready, err := a.registry.Init(ctx)
	if err != nil {
		return fmt.Errorf("registry initialization failed: %w", err)
	}
	a.logger.Info("Eager initialization finished.", "ready", ready)

	a.writeReport()

	if failed := a.registry.FailedDescriptors(); len(failed) > 0 {
		identities := make([]string, 0, len(failed))
		for _, d := range failed {
			identities = append(identities, d.Identity)
		}
		return fmt.Errorf("initialization failed for %s", strings.Join(identities, ", "))
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// writeReport prints one line per descriptor: state, identity, and either
// the init duration or the recorded error.
func (a *App) writeReport() {
	fmt.Fprintln(a.outW, "Module initialization report:")
	for _, d := range a.registry.Descriptors() {
		switch d.State() {
		case registry.StateInitialized:
			fmt.Fprintf(a.outW, "  %-12s %s (priority %d, %s)\n",
				d.State(), d.Identity, d.Priority, d.InitDuration().Round(time.Microsecond))
		case registry.StateFailed:
			fmt.Fprintf(a.outW, "  %-12s %s: %v\n", d.State(), d.Identity, d.Err())
		default:
			fmt.Fprintf(a.outW, "  %-12s %s\n", d.State(), d.Identity)
		}
	}
}
