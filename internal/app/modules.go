package app

import (
	"github.com/horizonsvc/horizon/internal/registry"
	"github.com/horizonsvc/horizon/modules/clock"
	"github.com/horizonsvc/horizon/modules/env"
	"github.com/horizonsvc/horizon/modules/printer"
)

// coreModules is the definitive list of all modules that are compiled into
// the horizon binary.
var coreModules = []registry.Module{
	&env.Module{},
	&clock.Module{},
	&printer.Module{},
}
