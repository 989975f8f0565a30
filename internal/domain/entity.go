package domain

import (
	"strings"

	"github.com/google/uuid"
)

// EntityType identifies the kind of record a workflow tracks.
type EntityType string

const (
	// EntityTypeVehicle marks workflows attached to stock vehicles.
	EntityTypeVehicle EntityType = "vehicle"
	// EntityTypeServiceVehicle marks workflows attached to service vehicles.
	EntityTypeServiceVehicle EntityType = "service_vehicle"
)

// NormalizeEntityType coerces arbitrary entity type strings into a known representation.
func NormalizeEntityType(input string) EntityType {
	return EntityType(strings.ToLower(strings.TrimSpace(input)))
}

// KnownEntityType reports whether the entity type is one the runtime can resolve.
func KnownEntityType(t EntityType) bool {
	switch t {
	case EntityTypeVehicle, EntityTypeServiceVehicle:
		return true
	default:
		return false
	}
}

// EntityRef identifies the subject of a workflow as a tagged pair. The
// workflow engine never inspects the subject directly; resolution happens
// through a per-type lookup table.
type EntityRef struct {
	Type EntityType
	ID   uuid.UUID
}

// IsZero reports whether the reference carries no subject.
func (r EntityRef) IsZero() bool {
	return r.Type == "" && r.ID == uuid.Nil
}

// String renders the reference for log output.
func (r EntityRef) String() string {
	return string(r.Type) + "/" + r.ID.String()
}

// NormalizeStepKey canonicalizes step keys so catalog lookups and persisted
// rows agree regardless of caller formatting.
func NormalizeStepKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
