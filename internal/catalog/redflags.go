package catalog

import (
	"time"

	"github.com/fleetgrid/go-backoffice/internal/domain"
)

// DeadlinePassed flags a step when a reference date plus grace has elapsed
// while the step remains unfinished. The flag is rendered untriggered until
// the deadline passes so the UI can list upcoming deadlines too.
func DeadlinePassed(name, description string, deadline func(StepContext) *time.Time, grace time.Duration) RedFlagFunc {
	return func(step StepDefinition, ctx StepContext) *RedFlag {
		ref := deadline(ctx)
		if ref == nil {
			return nil
		}
		triggered := ctx.Now.After(ref.Add(grace)) && !step.IsFinished(ctx)
		return &RedFlag{Name: name, Description: description, Triggered: triggered}
	}
}

// FinishedAfter flags a step retroactively: the step was completed, but later
// than its reference date allowed.
func FinishedAfter(name, description string, deadline func(StepContext) *time.Time) RedFlagFunc {
	return func(step StepDefinition, ctx StepContext) *RedFlag {
		ref := deadline(ctx)
		if ref == nil {
			return nil
		}
		completion, ok := ctx.Finished[step.Key]
		triggered := ok && completion.FinishedAt.After(*ref)
		return &RedFlag{Name: name, Description: description, Triggered: triggered}
	}
}

// DependencyFinished flags a step when another step was already completed
// while this one is still open, signalling work happening out of order. The
// dependency check goes through StepFinished so implicitly finished steps
// count the same as persisted completions.
func DependencyFinished(name, description, dependsOn string) RedFlagFunc {
	key := domain.NormalizeStepKey(dependsOn)
	return func(step StepDefinition, ctx StepContext) *RedFlag {
		triggered := ctx.StepFinished(key) && !step.IsFinished(ctx)
		return &RedFlag{Name: name, Description: description, Triggered: triggered}
	}
}
