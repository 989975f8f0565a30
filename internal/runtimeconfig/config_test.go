package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/fleetgrid/go-backoffice/internal/catalog"
	"github.com/fleetgrid/go-backoffice/internal/domain"
	"github.com/fleetgrid/go-backoffice/internal/runtimeconfig"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
	if cfg.Workflow.Processes[string(domain.EntityTypeVehicle)] != catalog.NamespacePurchase {
		t.Fatalf("expected vehicles mapped to the purchase process")
	}
	if cfg.Workflow.Processes[string(domain.EntityTypeServiceVehicle)] != catalog.NamespaceService {
		t.Fatalf("expected service vehicles mapped to the service process")
	}
	if cfg.Workflow.HandlerTimeout <= 0 {
		t.Fatalf("expected a positive handler timeout")
	}
}

func TestValidateRejectsUnknownProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "syslog"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestValidateRejectsInvalidLevel(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}
}

func TestValidateRejectsInvalidFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}

func TestValidateRejectsEmptyProcessNamespace(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Workflow.Processes["vehicle"] = "  "
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrProcessNamespaceRequired) {
		t.Fatalf("expected ErrProcessNamespaceRequired, got %v", err)
	}
}

func TestValidateRejectsEmptyEntityType(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Workflow.Processes[" "] = catalog.NamespacePurchase
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrProcessEntityTypeInvalid) {
		t.Fatalf("expected ErrProcessEntityTypeInvalid, got %v", err)
	}
}

func TestProcessTableNormalizesKeys(t *testing.T) {
	cfg := runtimeconfig.Config{
		Workflow: runtimeconfig.WorkflowConfig{
			Processes: map[string]string{
				" Vehicle ": " Dealer.Purchase ",
			},
		},
	}
	table := cfg.Workflow.ProcessTable()
	if table[domain.EntityTypeVehicle] != "dealer.purchase" {
		t.Fatalf("expected normalized mapping, got %+v", table)
	}
}
