package backoffice

import "github.com/fleetgrid/go-backoffice/internal/runtimeconfig"

var (
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
	ErrProcessNamespaceRequired = runtimeconfig.ErrProcessNamespaceRequired
	ErrProcessEntityTypeInvalid = runtimeconfig.ErrProcessEntityTypeInvalid
)

type (
	Config         = runtimeconfig.Config
	LoggingConfig  = runtimeconfig.LoggingConfig
	WorkflowConfig = runtimeconfig.WorkflowConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
