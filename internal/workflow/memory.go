package workflow

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/fleetgrid/go-backoffice/internal/domain"
)

// MemoryWorkflowRepository is an in-memory implementation for scaffolding and tests.
type MemoryWorkflowRepository struct {
	mu          sync.RWMutex
	workflows   map[uuid.UUID]*Workflow
	entityIndex map[domain.EntityRef]uuid.UUID
}

// NewMemoryWorkflowRepository creates an empty in-memory workflow repository.
func NewMemoryWorkflowRepository() *MemoryWorkflowRepository {
	return &MemoryWorkflowRepository{
		workflows:   make(map[uuid.UUID]*Workflow),
		entityIndex: make(map[domain.EntityRef]uuid.UUID),
	}
}

// Create inserts the supplied workflow.
func (m *MemoryWorkflowRepository) Create(_ context.Context, record *Workflow) (*Workflow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneWorkflow(record)
	m.workflows[copied.ID] = copied
	m.entityIndex[copied.Entity()] = copied.ID
	return cloneWorkflow(copied), nil
}

// GetByID retrieves a workflow by identifier.
func (m *MemoryWorkflowRepository) GetByID(_ context.Context, id uuid.UUID) (*Workflow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.workflows[id]
	if !ok {
		return nil, &NotFoundError{Resource: "workflow", Key: id.String()}
	}
	return cloneWorkflow(rec), nil
}

// GetByEntity retrieves the workflow attached to an entity reference.
func (m *MemoryWorkflowRepository) GetByEntity(_ context.Context, ref domain.EntityRef) (*Workflow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.entityIndex[ref]
	if !ok {
		return nil, &NotFoundError{Resource: "workflow", Key: ref.String()}
	}
	return cloneWorkflow(m.workflows[id]), nil
}

// List returns all workflows.
func (m *MemoryWorkflowRepository) List(_ context.Context) ([]*Workflow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Workflow, 0, len(m.workflows))
	for _, rec := range m.workflows {
		out = append(out, cloneWorkflow(rec))
	}
	return out, nil
}

func cloneWorkflow(src *Workflow) *Workflow {
	if src == nil {
		return nil
	}
	copied := *src
	copied.FinishedSteps = nil
	return &copied
}

type finishedStepKey struct {
	workflowID uuid.UUID
	stepKey    string
}

// MemoryFinishedStepRepository stores completions keyed by (workflow, step).
type MemoryFinishedStepRepository struct {
	mu    sync.RWMutex
	steps map[finishedStepKey]*FinishedStep
}

// NewMemoryFinishedStepRepository creates an empty in-memory completion store.
func NewMemoryFinishedStepRepository() *MemoryFinishedStepRepository {
	return &MemoryFinishedStepRepository{
		steps: make(map[finishedStepKey]*FinishedStep),
	}
}

// Upsert inserts or overwrites the completion for (workflow_id, step_key).
// Overwrites keep the original row ID so audit references stay stable.
func (m *MemoryFinishedStepRepository) Upsert(_ context.Context, record *FinishedStep) (*FinishedStep, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneFinishedStep(record)
	copied.StepKey = domain.NormalizeStepKey(copied.StepKey)
	key := finishedStepKey{workflowID: copied.WorkflowID, stepKey: copied.StepKey}
	if existing, ok := m.steps[key]; ok {
		copied.ID = existing.ID
	}
	m.steps[key] = copied
	return cloneFinishedStep(copied), nil
}

// Delete removes the completion when present; absence is not an error.
func (m *MemoryFinishedStepRepository) Delete(_ context.Context, workflowID uuid.UUID, stepKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.steps, finishedStepKey{workflowID: workflowID, stepKey: domain.NormalizeStepKey(stepKey)})
	return nil
}

// ListByWorkflow returns the completions for one workflow ordered by finish time.
func (m *MemoryFinishedStepRepository) ListByWorkflow(_ context.Context, workflowID uuid.UUID) ([]*FinishedStep, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*FinishedStep, 0)
	for key, rec := range m.steps {
		if key.workflowID != workflowID {
			continue
		}
		out = append(out, cloneFinishedStep(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].FinishedAt.Before(out[j].FinishedAt)
	})
	return out, nil
}

func cloneFinishedStep(src *FinishedStep) *FinishedStep {
	if src == nil {
		return nil
	}
	copied := *src
	if len(src.Files) > 0 {
		copied.Files = append([]Attachment(nil), src.Files...)
	}
	if len(src.Images) > 0 {
		copied.Images = append([]Attachment(nil), src.Images...)
	}
	return &copied
}
