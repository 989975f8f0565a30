package domain_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/fleetgrid/go-backoffice/internal/domain"
)

func TestNormalizeEntityType(t *testing.T) {
	if got := domain.NormalizeEntityType("  Vehicle "); got != domain.EntityTypeVehicle {
		t.Fatalf("expected vehicle, got %q", got)
	}
	if got := domain.NormalizeEntityType("SERVICE_VEHICLE"); got != domain.EntityTypeServiceVehicle {
		t.Fatalf("expected service_vehicle, got %q", got)
	}
}

func TestKnownEntityType(t *testing.T) {
	if !domain.KnownEntityType(domain.EntityTypeVehicle) {
		t.Fatalf("expected vehicle to be known")
	}
	if !domain.KnownEntityType(domain.EntityTypeServiceVehicle) {
		t.Fatalf("expected service_vehicle to be known")
	}
	if domain.KnownEntityType("trailer") {
		t.Fatalf("expected trailer to be unknown")
	}
}

func TestEntityRefIsZero(t *testing.T) {
	if !(domain.EntityRef{}).IsZero() {
		t.Fatalf("expected empty ref to be zero")
	}
	ref := domain.EntityRef{Type: domain.EntityTypeVehicle, ID: uuid.New()}
	if ref.IsZero() {
		t.Fatalf("expected populated ref to be non-zero")
	}
}

func TestNormalizeStepKey(t *testing.T) {
	if got := domain.NormalizeStepKey("  Intake.Inspection "); got != "intake.inspection" {
		t.Fatalf("expected normalized key, got %q", got)
	}
	if got := domain.NormalizeStepKey("   "); got != "" {
		t.Fatalf("expected empty key, got %q", got)
	}
}
