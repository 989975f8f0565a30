package commands

import (
	"strings"

	"github.com/fleetgrid/go-backoffice/internal/logging"
	"github.com/fleetgrid/go-backoffice/pkg/interfaces"
)

const commandModuleRoot = "backoffice.commands"

// CommandLogger returns a module-scoped logger for command handlers,
// enriching it with consistent structured fields.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
