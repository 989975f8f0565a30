package workflow

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/fleetgrid/go-backoffice/internal/domain"
)

// WorkflowRepository abstracts storage for workflow records.
type WorkflowRepository interface {
	Create(ctx context.Context, record *Workflow) (*Workflow, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Workflow, error)
	GetByEntity(ctx context.Context, ref domain.EntityRef) (*Workflow, error)
	List(ctx context.Context) ([]*Workflow, error)
}

// FinishedStepRepository abstracts the completion store. Upsert is keyed on
// (workflow_id, step_key) and must preserve the row ID across overwrites;
// Delete is a no-op when the row is absent.
type FinishedStepRepository interface {
	Upsert(ctx context.Context, record *FinishedStep) (*FinishedStep, error)
	Delete(ctx context.Context, workflowID uuid.UUID, stepKey string) error
	ListByWorkflow(ctx context.Context, workflowID uuid.UUID) ([]*FinishedStep, error)
}

// NewWorkflowRepository creates the go-repository-bun repository for workflows.
func NewWorkflowRepository(db *bun.DB) repository.Repository[*Workflow] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Workflow]{
		NewRecord: func() *Workflow { return &Workflow{} },
		GetID: func(w *Workflow) uuid.UUID {
			return w.ID
		},
		SetID: func(w *Workflow, id uuid.UUID) {
			w.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(w *Workflow) string {
			if w == nil {
				return ""
			}
			return w.ID.String()
		},
	})
}

// NewFinishedStepRepository creates the go-repository-bun repository for
// finished step rows.
func NewFinishedStepRepository(db *bun.DB) repository.Repository[*FinishedStep] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*FinishedStep]{
		NewRecord: func() *FinishedStep { return &FinishedStep{} },
		GetID: func(fs *FinishedStep) uuid.UUID {
			return fs.ID
		},
		SetID: func(fs *FinishedStep, id uuid.UUID) {
			fs.ID = id
		},
		GetIdentifier: func() string {
			return "step_key"
		},
		GetIdentifierValue: func(fs *FinishedStep) string {
			if fs == nil {
				return ""
			}
			return fs.StepKey
		},
	})
}
