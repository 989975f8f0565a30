package logging

import (
	"context"

	"github.com/fleetgrid/go-backoffice/pkg/interfaces"
)

const (
	rootModule     = "backoffice"
	workflowModule = "backoffice.workflow"
	catalogModule  = "backoffice.catalog"
	vehiclesModule = "backoffice.vehicles"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// WorkflowLogger returns the logger namespace reserved for the workflow engine.
func WorkflowLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, workflowModule)
}

// CatalogLogger returns the logger namespace reserved for catalog registries.
func CatalogLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, catalogModule)
}

// VehiclesLogger returns the logger namespace reserved for vehicle context loading.
func VehiclesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, vehiclesModule)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
