package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fleetgrid/go-backoffice/internal/domain"
	"github.com/fleetgrid/go-backoffice/internal/vehicles"
)

var (
	// ErrNamespaceRequired indicates a catalog lacks its tenant namespace.
	ErrNamespaceRequired = errors.New("catalog: namespace required")
	// ErrStatusesRequired indicates a catalog does not declare any statuses.
	ErrStatusesRequired = errors.New("catalog: at least one status required")
	// ErrStatusKeyRequired indicates a status is missing its key.
	ErrStatusKeyRequired = errors.New("catalog: status key required")
	// ErrStatusStepsRequired indicates a status does not declare any steps.
	ErrStatusStepsRequired = errors.New("catalog: status requires at least one step")
	// ErrStepKeyRequired indicates a step is missing its key.
	ErrStepKeyRequired = errors.New("catalog: step key required")
	// ErrStepNameRequired indicates a step is missing its display name.
	ErrStepNameRequired = errors.New("catalog: step name required")
	// ErrDuplicateStatus indicates duplicate status keys were declared.
	ErrDuplicateStatus = errors.New("catalog: duplicate status")
	// ErrDuplicateStep indicates the same step key was declared more than once.
	ErrDuplicateStep = errors.New("catalog: duplicate step")
)

// Completion mirrors a persisted step completion as predicates see it. The
// engine projects FinishedStep rows into this shape so catalog code never
// depends on storage models.
type Completion struct {
	Value      *string
	FinishedAt time.Time
	FinishedBy string
}

// StepContext carries everything a step predicate may read: the evaluation
// instant, the workflow creation time, the persisted completions keyed by
// step key, and the workflow subject with its related order records.
// Predicates must be pure functions of this context.
type StepContext struct {
	Now               time.Time
	WorkflowCreatedAt time.Time
	Finished          map[string]Completion

	vehicles.Subject

	steps map[string]StepDefinition
}

// StepFinished reports whether another catalog step is finished, counting
// implicit predicate-derived completion when the context is bound to a
// catalog. Unbound contexts fall back to the persisted completion set.
func (c StepContext) StepFinished(key string) bool {
	key = domain.NormalizeStepKey(key)
	if step, ok := c.steps[key]; ok {
		return step.IsFinished(c)
	}
	_, ok := c.Finished[key]
	return ok
}

// Predicate evaluates a boolean condition over the step context.
type Predicate func(StepContext) bool

// RedFlag is a business warning surfaced independently of completion state.
type RedFlag struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Triggered   bool   `json:"triggered"`
}

// RedFlagFunc evaluates an optional warning for a step. Returning nil means
// the step declares no flag for the current context.
type RedFlagFunc func(step StepDefinition, ctx StepContext) *RedFlag

// StepDefinition declares one unit of progress inside a status. Definitions
// are data: behaviour variation between tenants lives in the predicate
// fields, never in engine code.
type StepDefinition struct {
	Key           string
	Name          string
	RequiresValue bool
	AcceptsFiles  bool
	AcceptsImages bool

	// Finished optionally derives completion from related data in addition
	// to the persisted completion set (e.g. a date already filled on the
	// vehicle satisfies the step implicitly).
	Finished Predicate
	// Disabled marks the step inapplicable for this subject. Disabled steps
	// are skipped by the active-step computation and red flag evaluation but
	// still rendered.
	Disabled Predicate
	// RedFlag evaluates the optional warning for this step.
	RedFlag RedFlagFunc
}

// IsFinished reports whether the step is satisfied: either a completion row
// exists for it or the derived predicate holds.
func (s StepDefinition) IsFinished(ctx StepContext) bool {
	if _, ok := ctx.Finished[s.Key]; ok {
		return true
	}
	if s.Finished != nil {
		return s.Finished(ctx)
	}
	return false
}

// IsDisabled reports whether the step is inapplicable for the subject.
func (s StepDefinition) IsDisabled(ctx StepContext) bool {
	if s.Disabled == nil {
		return false
	}
	return s.Disabled(ctx)
}

// Flag evaluates the step's red flag. Disabled steps never flag.
func (s StepDefinition) Flag(ctx StepContext) *RedFlag {
	if s.RedFlag == nil || s.IsDisabled(ctx) {
		return nil
	}
	return s.RedFlag(s, ctx)
}

// StatusDefinition is a named, ordered group of steps representing one phase.
type StatusDefinition struct {
	Key   string
	Name  string
	Steps []StepDefinition
}

// IsCompleted reports whether every non-disabled step in the status is
// finished. A status whose steps are all disabled counts as completed.
func (st StatusDefinition) IsCompleted(ctx StepContext) bool {
	for _, step := range st.Steps {
		if step.IsDisabled(ctx) {
			continue
		}
		if !step.IsFinished(ctx) {
			return false
		}
	}
	return true
}

// Catalog is the compiled, immutable step/status definition for one tenant
// process. Status and step order is the declared order; evaluation never
// reorders it.
type Catalog struct {
	namespace string
	statuses  []StatusDefinition
	steps     map[string]StepDefinition
	order     []string
}

// Compile validates and freezes a catalog. Step keys are normalized and must
// be unique across the whole catalog so persisted completions can never be
// ambiguous.
func Compile(namespace string, statuses ...StatusDefinition) (Catalog, error) {
	namespace = strings.ToLower(strings.TrimSpace(namespace))
	if namespace == "" {
		return Catalog{}, ErrNamespaceRequired
	}
	if len(statuses) == 0 {
		return Catalog{}, fmt.Errorf("%w: %s", ErrStatusesRequired, namespace)
	}

	compiled := Catalog{
		namespace: namespace,
		statuses:  make([]StatusDefinition, 0, len(statuses)),
		steps:     make(map[string]StepDefinition),
	}
	seenStatuses := make(map[string]struct{}, len(statuses))

	for idx, status := range statuses {
		statusKey := strings.ToLower(strings.TrimSpace(status.Key))
		if statusKey == "" {
			return Catalog{}, fmt.Errorf("%w at index %d", ErrStatusKeyRequired, idx)
		}
		if _, exists := seenStatuses[statusKey]; exists {
			return Catalog{}, fmt.Errorf("%w: %s", ErrDuplicateStatus, statusKey)
		}
		seenStatuses[statusKey] = struct{}{}

		if len(status.Steps) == 0 {
			return Catalog{}, fmt.Errorf("%w: %s", ErrStatusStepsRequired, statusKey)
		}

		normalized := StatusDefinition{
			Key:   statusKey,
			Name:  strings.TrimSpace(status.Name),
			Steps: make([]StepDefinition, 0, len(status.Steps)),
		}

		for _, step := range status.Steps {
			stepKey := domain.NormalizeStepKey(step.Key)
			if stepKey == "" {
				return Catalog{}, fmt.Errorf("%w in status %s", ErrStepKeyRequired, statusKey)
			}
			if strings.TrimSpace(step.Name) == "" {
				return Catalog{}, fmt.Errorf("%w: %s", ErrStepNameRequired, stepKey)
			}
			if _, exists := compiled.steps[stepKey]; exists {
				return Catalog{}, fmt.Errorf("%w: %s", ErrDuplicateStep, stepKey)
			}
			step.Key = stepKey
			compiled.steps[stepKey] = step
			compiled.order = append(compiled.order, stepKey)
			normalized.Steps = append(normalized.Steps, step)
		}

		compiled.statuses = append(compiled.statuses, normalized)
	}

	return compiled, nil
}

// MustCompile is Compile for package-level catalog data; invalid declarations
// are programming errors.
func MustCompile(namespace string, statuses ...StatusDefinition) Catalog {
	compiled, err := Compile(namespace, statuses...)
	if err != nil {
		panic(err)
	}
	return compiled
}

// Bind attaches the catalog's step table to a context so cross-step lookups
// (StepFinished, dependency flags) observe implicit completion.
func (c Catalog) Bind(ctx StepContext) StepContext {
	ctx.steps = c.steps
	return ctx
}

// Namespace returns the tenant process key the catalog was compiled for.
func (c Catalog) Namespace() string {
	return c.namespace
}

// Statuses returns the statuses in declared order.
func (c Catalog) Statuses() []StatusDefinition {
	return c.statuses
}

// Step resolves a step definition by normalized key.
func (c Catalog) Step(key string) (StepDefinition, bool) {
	step, ok := c.steps[domain.NormalizeStepKey(key)]
	return step, ok
}

// StepKeys returns every step key in global declared order across statuses.
func (c Catalog) StepKeys() []string {
	return c.order
}
