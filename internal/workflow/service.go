package workflow

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fleetgrid/go-backoffice/internal/catalog"
	"github.com/fleetgrid/go-backoffice/internal/domain"
	"github.com/fleetgrid/go-backoffice/internal/logging"
	"github.com/fleetgrid/go-backoffice/pkg/interfaces"
)

// Service exposes the workflow engine use-cases.
type Service interface {
	CreateWorkflow(ctx context.Context, req CreateWorkflowRequest) (*Workflow, error)
	Get(ctx context.Context, id uuid.UUID) (*Workflow, error)
	GetByEntity(ctx context.Context, ref domain.EntityRef) (*Workflow, error)
	Render(ctx context.Context, workflowID uuid.UUID) (*WorkflowView, error)
	FinishStep(ctx context.Context, req FinishStepRequest) (*WorkflowView, error)
	UnfinishStep(ctx context.Context, workflowID uuid.UUID, stepKey string) (*WorkflowView, error)
}

// CreateWorkflowRequest captures the information required to start tracking
// an entity.
type CreateWorkflowRequest struct {
	Entity    domain.EntityRef
	CreatedBy uuid.UUID
}

// FinishStepRequest captures a step completion. Value and attachments are
// optional unless the step declares otherwise.
type FinishStepRequest struct {
	WorkflowID uuid.UUID
	StepKey    string
	Value      *string
	Files      []Attachment
	Images     []Attachment
	FinishedBy uuid.UUID
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp completions and evaluate flags.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// IDGenerator produces identifiers for new records.
type IDGenerator func() uuid.UUID

// WithIDGenerator overrides the identifier generator.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLogger injects the engine logger. Defaults to a no-op logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithProcessResolver overrides how workflows map to catalog namespaces.
func WithProcessResolver(resolver ProcessResolver) ServiceOption {
	return func(s *service) {
		if resolver != nil {
			s.resolver = resolver
		}
	}
}

type service struct {
	workflows WorkflowRepository
	finished  FinishedStepRepository
	registry  *catalog.Registry
	loader    ContextLoader
	resolver  ProcessResolver
	logger    interfaces.Logger
	now       func() time.Time
	id        IDGenerator
}

// NewService constructs the workflow engine. The registry, loader and
// resolver are required collaborators; clock and ID generation default to
// production implementations.
func NewService(
	workflows WorkflowRepository,
	finished FinishedStepRepository,
	registry *catalog.Registry,
	loader ContextLoader,
	opts ...ServiceOption,
) Service {
	svc := &service{
		workflows: workflows,
		finished:  finished,
		registry:  registry,
		loader:    loader,
		resolver:  StaticProcessResolver{},
		logger:    logging.NoOp(),
		now:       time.Now,
		id:        uuid.New,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *service) CreateWorkflow(ctx context.Context, req CreateWorkflowRequest) (*Workflow, error) {
	if req.Entity.IsZero() {
		return nil, ErrEntityRequired
	}
	entityType := domain.NormalizeEntityType(string(req.Entity.Type))
	if !domain.KnownEntityType(entityType) {
		return nil, ErrEntityTypeUnknown
	}

	ref := domain.EntityRef{Type: entityType, ID: req.Entity.ID}
	if existing, err := s.workflows.GetByEntity(ctx, ref); err == nil && existing != nil {
		return nil, ErrWorkflowExists
	} else if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	record := &Workflow{
		ID:         s.id(),
		EntityType: string(entityType),
		EntityID:   req.Entity.ID,
		CreatedBy:  req.CreatedBy,
		CreatedAt:  s.now().UTC(),
	}

	created, err := s.workflows.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("workflow.created", "workflow_id", created.ID.String(), "entity", ref.String())
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Workflow, error) {
	if id == uuid.Nil {
		return nil, ErrWorkflowIDRequired
	}
	return s.workflows.GetByID(ctx, id)
}

func (s *service) GetByEntity(ctx context.Context, ref domain.EntityRef) (*Workflow, error) {
	if ref.IsZero() {
		return nil, ErrEntityRequired
	}
	return s.workflows.GetByEntity(ctx, ref)
}

func (s *service) Render(ctx context.Context, workflowID uuid.UUID) (*WorkflowView, error) {
	wf, cat, err := s.resolve(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	return s.renderWorkflow(ctx, wf, cat)
}

func (s *service) FinishStep(ctx context.Context, req FinishStepRequest) (*WorkflowView, error) {
	stepKey := domain.NormalizeStepKey(req.StepKey)
	if stepKey == "" {
		return nil, ErrStepKeyRequired
	}

	wf, cat, err := s.resolve(ctx, req.WorkflowID)
	if err != nil {
		return nil, err
	}

	step, ok := cat.Step(stepKey)
	if !ok {
		return nil, &UnknownStepError{WorkflowID: wf.ID, Namespace: cat.Namespace(), StepKey: stepKey}
	}

	stepCtx, err := s.buildContext(ctx, wf, cat)
	if err != nil {
		return nil, err
	}
	if step.IsDisabled(stepCtx) {
		return nil, &StepDisabledError{WorkflowID: wf.ID, StepKey: stepKey}
	}
	if step.RequiresValue && emptyValue(req.Value) {
		return nil, &ValueRequiredError{StepKey: stepKey}
	}

	// Attachments the step does not declare are dropped, never stored.
	files := req.Files
	if !step.AcceptsFiles {
		files = nil
	}
	images := req.Images
	if !step.AcceptsImages {
		images = nil
	}

	record := &FinishedStep{
		ID:         s.id(),
		WorkflowID: wf.ID,
		StepKey:    stepKey,
		Value:      req.Value,
		Files:      files,
		Images:     images,
		FinishedBy: req.FinishedBy,
		FinishedAt: s.now().UTC(),
	}
	if _, err := s.finished.Upsert(ctx, record); err != nil {
		return nil, err
	}
	s.logger.Info("workflow.step.finished", "workflow_id", wf.ID.String(), "step", stepKey)

	return s.renderWorkflow(ctx, wf, cat)
}

func (s *service) UnfinishStep(ctx context.Context, workflowID uuid.UUID, stepKey string) (*WorkflowView, error) {
	key := domain.NormalizeStepKey(stepKey)
	if key == "" {
		return nil, ErrStepKeyRequired
	}

	wf, cat, err := s.resolve(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	if _, ok := cat.Step(key); !ok {
		return nil, &UnknownStepError{WorkflowID: wf.ID, Namespace: cat.Namespace(), StepKey: key}
	}

	if err := s.finished.Delete(ctx, wf.ID, key); err != nil {
		return nil, err
	}
	s.logger.Info("workflow.step.unfinished", "workflow_id", wf.ID.String(), "step", key)

	return s.renderWorkflow(ctx, wf, cat)
}

// resolve loads the workflow and the catalog governing it. Catalog lookup
// failures propagate uncaught: masking them would hide tenant
// misconfiguration.
func (s *service) resolve(ctx context.Context, workflowID uuid.UUID) (*Workflow, catalog.Catalog, error) {
	if workflowID == uuid.Nil {
		return nil, catalog.Catalog{}, ErrWorkflowIDRequired
	}
	wf, err := s.workflows.GetByID(ctx, workflowID)
	if err != nil {
		return nil, catalog.Catalog{}, err
	}
	namespace, err := s.resolver.Namespace(ctx, wf)
	if err != nil {
		return nil, catalog.Catalog{}, err
	}
	cat, err := s.registry.Get(namespace)
	if err != nil {
		return nil, catalog.Catalog{}, err
	}
	return wf, cat, nil
}

func (s *service) buildContext(ctx context.Context, wf *Workflow, cat catalog.Catalog) (catalog.StepContext, error) {
	subject, err := s.loader.Load(ctx, wf.Entity())
	if err != nil {
		return catalog.StepContext{}, err
	}
	finished, err := s.finished.ListByWorkflow(ctx, wf.ID)
	if err != nil {
		return catalog.StepContext{}, err
	}
	return buildStepContext(wf, cat, subject, finished, s.now().UTC()), nil
}

func (s *service) renderWorkflow(ctx context.Context, wf *Workflow, cat catalog.Catalog) (*WorkflowView, error) {
	subject, err := s.loader.Load(ctx, wf.Entity())
	if err != nil {
		return nil, err
	}
	finished, err := s.finished.ListByWorkflow(ctx, wf.ID)
	if err != nil {
		return nil, err
	}
	stepCtx := buildStepContext(wf, cat, subject, finished, s.now().UTC())
	return render(wf, cat, finished, stepCtx), nil
}

func emptyValue(value *string) bool {
	return value == nil || strings.TrimSpace(*value) == ""
}
