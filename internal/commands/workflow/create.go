package workflowcmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/fleetgrid/go-backoffice/internal/commands"
	"github.com/fleetgrid/go-backoffice/internal/domain"
	"github.com/fleetgrid/go-backoffice/internal/workflow"
	"github.com/fleetgrid/go-backoffice/pkg/interfaces"
)

const createWorkflowMessageType = "backoffice.workflow.create"

// CreateWorkflowCommand starts tracking an entity, typically fired when an
// order is created for a vehicle.
type CreateWorkflowCommand struct {
	EntityType string    `json:"entity_type"`
	EntityID   uuid.UUID `json:"entity_id"`
	CreatedBy  uuid.UUID `json:"created_by"`
}

// Type implements command.Message.
func (CreateWorkflowCommand) Type() string { return createWorkflowMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m CreateWorkflowCommand) Validate() error {
	errs := validation.Errors{}
	if err := validation.Validate(m.EntityType, validation.Required); err != nil {
		errs["entity_type"] = validation.NewError("backoffice.workflow.create.entity_type_required", "entity_type is required")
	}
	if m.EntityID == uuid.Nil {
		errs["entity_id"] = validation.NewError("backoffice.workflow.create.entity_id_required", "entity_id is required")
	}
	if m.CreatedBy == uuid.Nil {
		errs["created_by"] = validation.NewError("backoffice.workflow.create.created_by_required", "created_by is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CreateWorkflowHandler starts workflows via the engine.
type CreateWorkflowHandler struct {
	inner *commands.Handler[CreateWorkflowCommand]
}

// NewCreateWorkflowHandler constructs a handler wired to the provided engine.
func NewCreateWorkflowHandler(service workflow.Service, logger interfaces.Logger, opts ...commands.HandlerOption[CreateWorkflowCommand]) *CreateWorkflowHandler {
	exec := func(ctx context.Context, msg CreateWorkflowCommand) error {
		_, err := service.CreateWorkflow(ctx, workflow.CreateWorkflowRequest{
			Entity: domain.EntityRef{
				Type: domain.NormalizeEntityType(msg.EntityType),
				ID:   msg.EntityID,
			},
			CreatedBy: msg.CreatedBy,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[CreateWorkflowCommand]{
		commands.WithLogger[CreateWorkflowCommand](logger),
		commands.WithOperation[CreateWorkflowCommand]("workflow.create"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CreateWorkflowHandler{
		inner: commands.NewHandler[CreateWorkflowCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[CreateWorkflowCommand].Execute.
func (h *CreateWorkflowHandler) Execute(ctx context.Context, msg CreateWorkflowCommand) error {
	return h.inner.Execute(ctx, msg)
}
