package workflow

import (
	"time"

	"github.com/google/uuid"

	"github.com/fleetgrid/go-backoffice/internal/catalog"
)

// StepView is one step annotated with its evaluated state for display.
type StepView struct {
	Key           string           `json:"key"`
	Name          string           `json:"name"`
	Finished      bool             `json:"finished"`
	Disabled      bool             `json:"disabled"`
	RequiresValue bool             `json:"requires_value"`
	AcceptsFiles  bool             `json:"accepts_files"`
	AcceptsImages bool             `json:"accepts_images"`
	Value         *string          `json:"value,omitempty"`
	Files         []Attachment     `json:"files,omitempty"`
	Images        []Attachment     `json:"images,omitempty"`
	FinishedAt    *time.Time       `json:"finished_at,omitempty"`
	RedFlag       *catalog.RedFlag `json:"red_flag,omitempty"`
}

// StatusView is one status with its evaluated steps in declared order.
type StatusView struct {
	Key       string     `json:"key"`
	Name      string     `json:"name"`
	Completed bool       `json:"completed"`
	Steps     []StepView `json:"steps"`
}

// WorkflowView is the full evaluated tree returned to the presentation
// layer: statuses in catalog order, the earliest actionable step, and the
// completion percentage over non-disabled steps.
type WorkflowView struct {
	WorkflowID    uuid.UUID    `json:"workflow_id"`
	Namespace     string       `json:"namespace"`
	Statuses      []StatusView `json:"statuses"`
	ActiveStepKey *string      `json:"active_step_key,omitempty"`
	Completion    int          `json:"completion"`
}

// RedFlags collects the triggered flags across every status for list views.
func (v *WorkflowView) RedFlags() []catalog.RedFlag {
	if v == nil {
		return nil
	}
	var flags []catalog.RedFlag
	for _, status := range v.Statuses {
		for _, step := range status.Steps {
			if step.RedFlag != nil && step.RedFlag.Triggered {
				flags = append(flags, *step.RedFlag)
			}
		}
	}
	return flags
}

// render evaluates the catalog against the step context. Ordering is a pure
// function of the catalog; finished-step insertion order never influences it.
func render(wf *Workflow, cat catalog.Catalog, finished []*FinishedStep, ctx catalog.StepContext) *WorkflowView {
	byKey := make(map[string]*FinishedStep, len(finished))
	for _, fs := range finished {
		if fs != nil {
			byKey[fs.StepKey] = fs
		}
	}

	view := &WorkflowView{
		WorkflowID: wf.ID,
		Namespace:  cat.Namespace(),
		Statuses:   make([]StatusView, 0, len(cat.Statuses())),
	}

	var totalSteps, finishedSteps int
	var activeKey *string

	for _, status := range cat.Statuses() {
		statusView := StatusView{
			Key:   status.Key,
			Name:  status.Name,
			Steps: make([]StepView, 0, len(status.Steps)),
		}

		for _, step := range status.Steps {
			disabled := step.IsDisabled(ctx)
			done := step.IsFinished(ctx)

			stepView := StepView{
				Key:           step.Key,
				Name:          step.Name,
				Finished:      done,
				Disabled:      disabled,
				RequiresValue: step.RequiresValue,
				AcceptsFiles:  step.AcceptsFiles,
				AcceptsImages: step.AcceptsImages,
				RedFlag:       step.Flag(ctx),
			}
			if row, ok := byKey[step.Key]; ok {
				stepView.Value = row.Value
				stepView.Files = row.Files
				stepView.Images = row.Images
				finishedAt := row.FinishedAt
				stepView.FinishedAt = &finishedAt
			}

			if !disabled {
				totalSteps++
				if done {
					finishedSteps++
				} else if activeKey == nil {
					key := step.Key
					activeKey = &key
				}
			}

			statusView.Steps = append(statusView.Steps, stepView)
		}

		statusView.Completed = status.IsCompleted(ctx)
		view.Statuses = append(view.Statuses, statusView)
	}

	view.ActiveStepKey = activeKey
	if totalSteps == 0 {
		// A catalog with every step disabled has nothing left to do.
		view.Completion = 100
	} else {
		view.Completion = finishedSteps * 100 / totalSteps
	}
	return view
}
