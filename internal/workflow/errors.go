package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrWorkflowIDRequired = errors.New("workflow: workflow id required")
	ErrEntityRequired     = errors.New("workflow: entity reference required")
	ErrEntityTypeUnknown  = errors.New("workflow: entity type unknown")
	ErrWorkflowExists     = errors.New("workflow: workflow already exists for entity")
	ErrStepKeyRequired    = errors.New("workflow: step key required")
	ErrUnknownStep        = errors.New("workflow: step not present in catalog")
	ErrStepDisabled       = errors.New("workflow: step disabled for this subject")
	ErrValueRequired      = errors.New("workflow: step requires an additional value")
)

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// UnknownStepError signals a step key that does not exist in the workflow's
// resolved catalog. This is a data-integrity problem (a catalog changed after
// rows were recorded under old keys) and must reach an operator, never be
// silently dropped.
type UnknownStepError struct {
	WorkflowID uuid.UUID
	Namespace  string
	StepKey    string
}

func (e *UnknownStepError) Error() string {
	if e == nil {
		return ErrUnknownStep.Error()
	}
	key := strings.TrimSpace(e.StepKey)
	if key == "" {
		return ErrUnknownStep.Error()
	}
	if e.Namespace != "" {
		return fmt.Sprintf("%s: %s (catalog %s)", ErrUnknownStep.Error(), key, e.Namespace)
	}
	return fmt.Sprintf("%s: %s", ErrUnknownStep.Error(), key)
}

func (e *UnknownStepError) Unwrap() error {
	return ErrUnknownStep
}

// StepDisabledError signals an attempt to complete a step that is
// inapplicable for the workflow's subject.
type StepDisabledError struct {
	WorkflowID uuid.UUID
	StepKey    string
}

func (e *StepDisabledError) Error() string {
	if e == nil || strings.TrimSpace(e.StepKey) == "" {
		return ErrStepDisabled.Error()
	}
	return fmt.Sprintf("%s: %s", ErrStepDisabled.Error(), e.StepKey)
}

func (e *StepDisabledError) Unwrap() error {
	return ErrStepDisabled
}

// ValueRequiredError signals a completion attempt without the additional
// value the step declares. User-facing and recoverable.
type ValueRequiredError struct {
	StepKey string
}

func (e *ValueRequiredError) Error() string {
	if e == nil || strings.TrimSpace(e.StepKey) == "" {
		return ErrValueRequired.Error()
	}
	return fmt.Sprintf("%s: %s", ErrValueRequired.Error(), e.StepKey)
}

func (e *ValueRequiredError) Unwrap() error {
	return ErrValueRequired
}
