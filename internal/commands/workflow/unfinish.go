package workflowcmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/fleetgrid/go-backoffice/internal/commands"
	"github.com/fleetgrid/go-backoffice/internal/workflow"
	"github.com/fleetgrid/go-backoffice/pkg/interfaces"
)

const unfinishStepMessageType = "backoffice.workflow.unfinish_step"

// UnfinishStepCommand reverts a step completion for corrections.
type UnfinishStepCommand struct {
	WorkflowID uuid.UUID `json:"workflow_id"`
	StepKey    string    `json:"step_key"`
}

// Type implements command.Message.
func (UnfinishStepCommand) Type() string { return unfinishStepMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m UnfinishStepCommand) Validate() error {
	errs := validation.Errors{}
	if m.WorkflowID == uuid.Nil {
		errs["workflow_id"] = validation.NewError("backoffice.workflow.unfinish_step.workflow_id_required", "workflow_id is required")
	}
	if err := validation.Validate(m.StepKey, validation.Required); err != nil {
		errs["step_key"] = validation.NewError("backoffice.workflow.unfinish_step.step_key_required", "step_key is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UnfinishStepHandler reverts completions via the workflow engine.
type UnfinishStepHandler struct {
	inner *commands.Handler[UnfinishStepCommand]
}

// NewUnfinishStepHandler constructs a handler wired to the provided engine.
func NewUnfinishStepHandler(service workflow.Service, logger interfaces.Logger, opts ...commands.HandlerOption[UnfinishStepCommand]) *UnfinishStepHandler {
	exec := func(ctx context.Context, msg UnfinishStepCommand) error {
		_, err := service.UnfinishStep(ctx, msg.WorkflowID, msg.StepKey)
		return err
	}

	handlerOpts := []commands.HandlerOption[UnfinishStepCommand]{
		commands.WithLogger[UnfinishStepCommand](logger),
		commands.WithOperation[UnfinishStepCommand]("workflow.unfinish_step"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &UnfinishStepHandler{
		inner: commands.NewHandler[UnfinishStepCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[UnfinishStepCommand].Execute.
func (h *UnfinishStepHandler) Execute(ctx context.Context, msg UnfinishStepCommand) error {
	return h.inner.Execute(ctx, msg)
}
