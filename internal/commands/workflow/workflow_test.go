package workflowcmd_test

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/fleetgrid/go-backoffice/internal/catalog"
	workflowcmd "github.com/fleetgrid/go-backoffice/internal/commands/workflow"
	"github.com/fleetgrid/go-backoffice/internal/domain"
	"github.com/fleetgrid/go-backoffice/internal/logging"
	"github.com/fleetgrid/go-backoffice/internal/vehicles"
	"github.com/fleetgrid/go-backoffice/internal/workflow"
)

type stubLoader struct{}

func (stubLoader) Load(context.Context, domain.EntityRef) (vehicles.Subject, error) {
	return vehicles.Subject{}, nil
}

func newEngine(t *testing.T) workflow.Service {
	t.Helper()
	cat, err := catalog.Compile("test.flow",
		catalog.StatusDefinition{
			Key:  "a",
			Name: "Status A",
			Steps: []catalog.StepDefinition{
				{Key: "step1", Name: "Step one"},
			},
		},
	)
	if err != nil {
		t.Fatalf("compile catalog: %v", err)
	}
	registry, err := catalog.NewRegistry(cat)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	return workflow.NewService(
		workflow.NewMemoryWorkflowRepository(),
		workflow.NewMemoryFinishedStepRepository(),
		registry,
		stubLoader{},
		workflow.WithProcessResolver(workflow.StaticProcessResolver{
			domain.EntityTypeVehicle: "test.flow",
		}),
	)
}

func startWorkflow(t *testing.T, svc workflow.Service) *workflow.Workflow {
	t.Helper()
	wf, err := svc.CreateWorkflow(context.Background(), workflow.CreateWorkflowRequest{
		Entity:    domain.EntityRef{Type: domain.EntityTypeVehicle, ID: uuid.New()},
		CreatedBy: uuid.New(),
	})
	if err != nil {
		t.Fatalf("create workflow: %v", err)
	}
	return wf
}

func TestCreateWorkflowHandler(t *testing.T) {
	svc := newEngine(t)
	handler := workflowcmd.NewCreateWorkflowHandler(svc, logging.NoOp())
	entityID := uuid.New()

	err := handler.Execute(context.Background(), workflowcmd.CreateWorkflowCommand{
		EntityType: "vehicle",
		EntityID:   entityID,
		CreatedBy:  uuid.New(),
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	wf, err := svc.GetByEntity(context.Background(), domain.EntityRef{Type: domain.EntityTypeVehicle, ID: entityID})
	if err != nil {
		t.Fatalf("expected workflow created, got %v", err)
	}
	if wf.EntityID != entityID {
		t.Fatalf("expected workflow for entity %s, got %s", entityID, wf.EntityID)
	}
}

func TestCreateWorkflowHandlerValidation(t *testing.T) {
	handler := workflowcmd.NewCreateWorkflowHandler(newEngine(t), logging.NoOp())

	err := handler.Execute(context.Background(), workflowcmd.CreateWorkflowCommand{})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestFinishStepHandler(t *testing.T) {
	svc := newEngine(t)
	wf := startWorkflow(t, svc)
	handler := workflowcmd.NewFinishStepHandler(svc, logging.NoOp())

	err := handler.Execute(context.Background(), workflowcmd.FinishStepCommand{
		WorkflowID: wf.ID,
		StepKey:    "step1",
		FinishedBy: uuid.New(),
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	view, err := svc.Render(context.Background(), wf.ID)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if view.Completion != 100 {
		t.Fatalf("expected finished workflow, got %d%%", view.Completion)
	}
}

func TestFinishStepHandlerPropagatesEngineError(t *testing.T) {
	svc := newEngine(t)
	wf := startWorkflow(t, svc)
	handler := workflowcmd.NewFinishStepHandler(svc, logging.NoOp())

	err := handler.Execute(context.Background(), workflowcmd.FinishStepCommand{
		WorkflowID: wf.ID,
		StepKey:    "bogus",
		FinishedBy: uuid.New(),
	})
	if !errors.Is(err, workflow.ErrUnknownStep) {
		t.Fatalf("expected ErrUnknownStep, got %v", err)
	}
}

func TestFinishStepHandlerValidation(t *testing.T) {
	handler := workflowcmd.NewFinishStepHandler(newEngine(t), logging.NoOp())

	err := handler.Execute(context.Background(), workflowcmd.FinishStepCommand{StepKey: "step1"})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestUnfinishStepHandler(t *testing.T) {
	svc := newEngine(t)
	wf := startWorkflow(t, svc)

	finish := workflowcmd.NewFinishStepHandler(svc, logging.NoOp())
	if err := finish.Execute(context.Background(), workflowcmd.FinishStepCommand{
		WorkflowID: wf.ID,
		StepKey:    "step1",
		FinishedBy: uuid.New(),
	}); err != nil {
		t.Fatalf("finish: %v", err)
	}

	unfinish := workflowcmd.NewUnfinishStepHandler(svc, logging.NoOp())
	if err := unfinish.Execute(context.Background(), workflowcmd.UnfinishStepCommand{
		WorkflowID: wf.ID,
		StepKey:    "step1",
	}); err != nil {
		t.Fatalf("unfinish: %v", err)
	}

	view, err := svc.Render(context.Background(), wf.ID)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if view.Completion != 0 {
		t.Fatalf("expected reverted workflow, got %d%%", view.Completion)
	}
}

func TestUnfinishStepHandlerValidation(t *testing.T) {
	handler := workflowcmd.NewUnfinishStepHandler(newEngine(t), logging.NoOp())

	err := handler.Execute(context.Background(), workflowcmd.UnfinishStepCommand{})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}
