package workflow

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"

	"github.com/fleetgrid/go-backoffice/internal/domain"
)

// BunWorkflowRepository implements WorkflowRepository on top of bun.
type BunWorkflowRepository struct {
	repo repository.Repository[*Workflow]
}

// NewBunWorkflowRepository creates a bun-backed workflow repository.
func NewBunWorkflowRepository(db *bun.DB) *BunWorkflowRepository {
	return &BunWorkflowRepository{repo: NewWorkflowRepository(db)}
}

func (r *BunWorkflowRepository) Create(ctx context.Context, record *Workflow) (*Workflow, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		// Concurrent creates race past the service's existence check; the
		// unique index on (entity_type, entity_id) decides the winner.
		if isUniqueViolation(err) {
			return nil, ErrWorkflowExists
		}
		return nil, fmt.Errorf("workflow repository error: %w", err)
	}
	return created, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

func (r *BunWorkflowRepository) GetByID(ctx context.Context, id uuid.UUID) (*Workflow, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "workflow", id.String())
	}
	return result, nil
}

func (r *BunWorkflowRepository) GetByEntity(ctx context.Context, ref domain.EntityRef) (*Workflow, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Where("entity_type = ?", string(ref.Type)).
			Where("entity_id = ?", ref.ID).
			Limit(1)
	}))
	if err != nil {
		return nil, mapRepositoryError(err, "workflow", ref.String())
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "workflow", Key: ref.String()}
	}
	return records[0], nil
}

func (r *BunWorkflowRepository) List(ctx context.Context) ([]*Workflow, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

// BunFinishedStepRepository implements FinishedStepRepository on top of bun.
// The upsert runs inside a transaction so a partial failure never leaves an
// orphaned completion row.
type BunFinishedStepRepository struct {
	db *bun.DB
}

// NewBunFinishedStepRepository creates a bun-backed finished step repository.
func NewBunFinishedStepRepository(db *bun.DB) *BunFinishedStepRepository {
	return &BunFinishedStepRepository{db: db}
}

func (r *BunFinishedStepRepository) Upsert(ctx context.Context, record *FinishedStep) (*FinishedStep, error) {
	record.StepKey = domain.NormalizeStepKey(record.StepKey)

	err := r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().
			Model(record).
			On("CONFLICT (workflow_id, step_key) DO UPDATE").
			Set("value = EXCLUDED.value").
			Set("files = EXCLUDED.files").
			Set("images = EXCLUDED.images").
			Set("finished_by = EXCLUDED.finished_by").
			Set("finished_at = EXCLUDED.finished_at").
			Exec(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("finished step repository error: %w", err)
	}

	// Re-read so callers observe the stable row ID on overwrites.
	stored := &FinishedStep{}
	if err := r.db.NewSelect().
		Model(stored).
		Where("workflow_id = ?", record.WorkflowID).
		Where("step_key = ?", record.StepKey).
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("finished step repository error: %w", err)
	}
	return stored, nil
}

func (r *BunFinishedStepRepository) Delete(ctx context.Context, workflowID uuid.UUID, stepKey string) error {
	_, err := r.db.NewDelete().
		Model((*FinishedStep)(nil)).
		Where("workflow_id = ?", workflowID).
		Where("step_key = ?", domain.NormalizeStepKey(stepKey)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("finished step repository error: %w", err)
	}
	return nil
}

func (r *BunFinishedStepRepository) ListByWorkflow(ctx context.Context, workflowID uuid.UUID) ([]*FinishedStep, error) {
	var records []*FinishedStep
	if err := r.db.NewSelect().
		Model(&records).
		Where("workflow_id = ?", workflowID).
		Order("finished_at ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("finished step repository error: %w", err)
	}
	return records, nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
