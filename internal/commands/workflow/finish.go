package workflowcmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/fleetgrid/go-backoffice/internal/commands"
	"github.com/fleetgrid/go-backoffice/internal/workflow"
	"github.com/fleetgrid/go-backoffice/pkg/interfaces"
)

const finishStepMessageType = "backoffice.workflow.finish_step"

// FinishStepCommand requests completion of one workflow step, optionally
// carrying a value and file/image attachments.
type FinishStepCommand struct {
	WorkflowID uuid.UUID             `json:"workflow_id"`
	StepKey    string                `json:"step_key"`
	Value      *string               `json:"value,omitempty"`
	Files      []workflow.Attachment `json:"files,omitempty"`
	Images     []workflow.Attachment `json:"images,omitempty"`
	FinishedBy uuid.UUID             `json:"finished_by"`
}

// Type implements command.Message.
func (FinishStepCommand) Type() string { return finishStepMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m FinishStepCommand) Validate() error {
	errs := validation.Errors{}
	if m.WorkflowID == uuid.Nil {
		errs["workflow_id"] = validation.NewError("backoffice.workflow.finish_step.workflow_id_required", "workflow_id is required")
	}
	if err := validation.Validate(m.StepKey, validation.Required); err != nil {
		errs["step_key"] = validation.NewError("backoffice.workflow.finish_step.step_key_required", "step_key is required")
	}
	if m.FinishedBy == uuid.Nil {
		errs["finished_by"] = validation.NewError("backoffice.workflow.finish_step.finished_by_required", "finished_by is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// FinishStepHandler completes steps via the workflow engine using the shared
// command handler foundation.
type FinishStepHandler struct {
	inner *commands.Handler[FinishStepCommand]
}

// NewFinishStepHandler constructs a handler wired to the provided engine.
func NewFinishStepHandler(service workflow.Service, logger interfaces.Logger, opts ...commands.HandlerOption[FinishStepCommand]) *FinishStepHandler {
	exec := func(ctx context.Context, msg FinishStepCommand) error {
		_, err := service.FinishStep(ctx, workflow.FinishStepRequest{
			WorkflowID: msg.WorkflowID,
			StepKey:    msg.StepKey,
			Value:      msg.Value,
			Files:      msg.Files,
			Images:     msg.Images,
			FinishedBy: msg.FinishedBy,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[FinishStepCommand]{
		commands.WithLogger[FinishStepCommand](logger),
		commands.WithOperation[FinishStepCommand]("workflow.finish_step"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &FinishStepHandler{
		inner: commands.NewHandler[FinishStepCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[FinishStepCommand].Execute.
func (h *FinishStepHandler) Execute(ctx context.Context, msg FinishStepCommand) error {
	return h.inner.Execute(ctx, msg)
}
