package workflow

import (
	"context"
	"time"

	"github.com/fleetgrid/go-backoffice/internal/catalog"
	"github.com/fleetgrid/go-backoffice/internal/domain"
	"github.com/fleetgrid/go-backoffice/internal/vehicles"
)

// ContextLoader resolves the workflow subject and its related order records.
// Implementations must not read ambient request state; predicates receive
// everything through the step context.
type ContextLoader interface {
	Load(ctx context.Context, ref domain.EntityRef) (vehicles.Subject, error)
}

// ProcessResolver maps a workflow to the tenant namespace whose catalog
// governs it. The default implementation is a static config-driven mapping
// per entity type.
type ProcessResolver interface {
	Namespace(ctx context.Context, wf *Workflow) (string, error)
}

// StaticProcessResolver resolves namespaces from a fixed entity type mapping.
type StaticProcessResolver map[domain.EntityType]string

// Namespace implements ProcessResolver. An unmapped entity type surfaces as a
// missing catalog so callers handle onboarding gaps in one place.
func (r StaticProcessResolver) Namespace(_ context.Context, wf *Workflow) (string, error) {
	if wf == nil {
		return "", ErrWorkflowIDRequired
	}
	namespace, ok := r[domain.NormalizeEntityType(wf.EntityType)]
	if !ok || namespace == "" {
		return "", &catalog.CatalogNotFoundError{Namespace: wf.EntityType}
	}
	return namespace, nil
}

// buildStepContext assembles the evaluation context from the workflow record,
// the subject data and the persisted completions, bound to the catalog so
// cross-step lookups resolve implicit completion. Evaluation is a pure
// function of this value.
func buildStepContext(wf *Workflow, cat catalog.Catalog, subject vehicles.Subject, finished []*FinishedStep, now time.Time) catalog.StepContext {
	completions := make(map[string]catalog.Completion, len(finished))
	for _, step := range finished {
		if step == nil {
			continue
		}
		completions[domain.NormalizeStepKey(step.StepKey)] = catalog.Completion{
			Value:      step.Value,
			FinishedAt: step.FinishedAt,
			FinishedBy: step.FinishedBy.String(),
		}
	}
	stepCtx := catalog.StepContext{
		Now:      now,
		Finished: completions,
		Subject:  subject,
	}
	if wf != nil {
		stepCtx.WorkflowCreatedAt = wf.CreatedAt
	}
	return cat.Bind(stepCtx)
}
