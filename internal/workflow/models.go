package workflow

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/fleetgrid/go-backoffice/internal/domain"
)

// Workflow tracks one vehicle-like entity through its process. At most one
// workflow exists per (entity_type, entity_id); the current status is never
// stored, it is derived from finished steps at read time.
type Workflow struct {
	bun.BaseModel `bun:"table:workflows,alias:w"`

	ID         uuid.UUID `bun:",pk,type:uuid" json:"id"`
	EntityType string    `bun:"entity_type,notnull" json:"entity_type"`
	EntityID   uuid.UUID `bun:"entity_id,notnull,type:uuid" json:"entity_id"`
	CreatedBy  uuid.UUID `bun:"created_by,notnull,type:uuid" json:"created_by"`
	CreatedAt  time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`

	FinishedSteps []*FinishedStep `bun:"rel:has-many,join:id=workflow_id" json:"finished_steps,omitempty"`
}

// Entity returns the tagged subject reference for the workflow.
func (w *Workflow) Entity() domain.EntityRef {
	if w == nil {
		return domain.EntityRef{}
	}
	return domain.EntityRef{
		Type: domain.NormalizeEntityType(w.EntityType),
		ID:   w.EntityID,
	}
}

// Attachment describes one uploaded file or image stored with a completion.
type Attachment struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size,omitempty"`
}

// FinishedStep is the persisted fact that a step was completed. Unique per
// (workflow_id, step_key); completing the same step again overwrites value,
// attachments and timestamps while keeping the row ID stable.
type FinishedStep struct {
	bun.BaseModel `bun:"table:finished_steps,alias:fs"`

	ID         uuid.UUID    `bun:",pk,type:uuid" json:"id"`
	WorkflowID uuid.UUID    `bun:"workflow_id,notnull,type:uuid" json:"workflow_id"`
	StepKey    string       `bun:"step_key,notnull" json:"step_key"`
	Value      *string      `bun:"value" json:"value,omitempty"`
	Files      []Attachment `bun:"files,type:jsonb" json:"files,omitempty"`
	Images     []Attachment `bun:"images,type:jsonb" json:"images,omitempty"`
	FinishedBy uuid.UUID    `bun:"finished_by,notnull,type:uuid" json:"finished_by"`
	FinishedAt time.Time    `bun:"finished_at,notnull" json:"finished_at"`
}
