package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/horizonsvc/horizon/internal/ctxlog"
	"github.com/horizonsvc/horizon/internal/manifest"
	"github.com/horizonsvc/horizon/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	model    *manifest.Model
	config   *Config
}

// New is the constructor for the main application. It returns a fully wired
// App instance with its own isolated logger and registry, or panics on a
// startup configuration error (the caller recovers for a clean exit).
func New(outW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := manifest.Load(ctx, cfg.ModulesPath)
	if err != nil {
		// A failure to load manifests is a fatal startup error.
		panic(fmt.Errorf("failed to load module manifests: %w", err))
	}

	binder := registry.NewBinder()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(binder)
	}
	logger.Debug("All module factories bound.", "count", len(binder.Identities()))

	// A mismatch between manifests and compiled-in factories is a
	// programmer error, so we panic.
	if err := manifest.Validate(ctx, model, binder); err != nil {
		panic(err)
	}
	logger.Debug("Manifest validation passed.")

	var opts []registry.Option
	if cfg.WaitTimeout > 0 {
		opts = append(opts, registry.WithWaitTimeout(cfg.WaitTimeout))
	}
	reg, err := registry.New(model.Seeds(), model, binder, opts...)
	if err != nil {
		panic(fmt.Errorf("failed to build registry: %w", err))
	}
	logger.Debug("Registry built.", "modules", len(reg.Descriptors()))

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		model:    model,
		config:   cfg,
	}
}

// Registry returns the application's registry. Consumers resolve their
// modules through it; tests use it to drive lookups directly.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
