package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fleetgrid/go-backoffice/internal/catalog"
	"github.com/fleetgrid/go-backoffice/internal/domain"
)

var (
	// ErrLoggingProviderUnknown indicates an unsupported logging provider name.
	ErrLoggingProviderUnknown = errors.New("config: unknown logging provider")
	// ErrLoggingLevelInvalid indicates an unsupported logging level.
	ErrLoggingLevelInvalid = errors.New("config: invalid logging level")
	// ErrLoggingFormatInvalid indicates an unsupported logging format.
	ErrLoggingFormatInvalid = errors.New("config: invalid logging format")
	// ErrProcessNamespaceRequired indicates an entity type mapped to an empty namespace.
	ErrProcessNamespaceRequired = errors.New("config: process namespace required")
	// ErrProcessEntityTypeInvalid indicates a process mapping for an empty entity type.
	ErrProcessEntityTypeInvalid = errors.New("config: process entity type invalid")
)

// LoggingConfig selects and tunes the logger provider.
type LoggingConfig struct {
	Provider  string   `json:"provider"`
	Level     string   `json:"level"`
	Format    string   `json:"format"`
	AddSource bool     `json:"add_source"`
	Focus     []string `json:"focus,omitempty"`
}

// WorkflowConfig maps entity types to the tenant process namespace whose
// catalog governs their workflows.
type WorkflowConfig struct {
	Processes      map[string]string `json:"processes"`
	HandlerTimeout time.Duration     `json:"handler_timeout"`
}

// Config is the root runtime configuration for the back-office module.
type Config struct {
	Logging  LoggingConfig  `json:"logging"`
	Workflow WorkflowConfig `json:"workflow"`
}

// DefaultConfig returns the configuration used when the host supplies none:
// no-op logging and the built-in dealer catalogs mapped per entity type.
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Provider: "noop",
			Level:    "info",
			Format:   "json",
		},
		Workflow: WorkflowConfig{
			Processes: map[string]string{
				string(domain.EntityTypeVehicle):        catalog.NamespacePurchase,
				string(domain.EntityTypeServiceVehicle): catalog.NamespaceService,
			},
			HandlerTimeout: 30 * time.Second,
		},
	}
}

// Validate checks the configuration for unsupported values.
func (c Config) Validate() error {
	if err := c.Logging.validate(); err != nil {
		return err
	}
	return c.Workflow.validate()
}

func (c LoggingConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Provider)) {
	case "", "noop", "gologger":
	default:
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, c.Provider)
	}
	switch strings.ToLower(strings.TrimSpace(c.Level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, c.Level)
	}
	switch strings.ToLower(strings.TrimSpace(c.Format)) {
	case "", "json", "console", "pretty":
	default:
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, c.Format)
	}
	return nil
}

func (c WorkflowConfig) validate() error {
	for entityType, namespace := range c.Processes {
		if strings.TrimSpace(entityType) == "" {
			return ErrProcessEntityTypeInvalid
		}
		if strings.TrimSpace(namespace) == "" {
			return fmt.Errorf("%w: %s", ErrProcessNamespaceRequired, entityType)
		}
	}
	return nil
}

// ProcessTable converts the configured process mapping into the normalized
// entity type keys the engine resolves against.
func (c WorkflowConfig) ProcessTable() map[domain.EntityType]string {
	table := make(map[domain.EntityType]string, len(c.Processes))
	for entityType, namespace := range c.Processes {
		table[domain.NormalizeEntityType(entityType)] = strings.ToLower(strings.TrimSpace(namespace))
	}
	return table
}
