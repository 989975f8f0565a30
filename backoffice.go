package backoffice

import (
	"github.com/fleetgrid/go-backoffice/internal/catalog"
	workflowcmd "github.com/fleetgrid/go-backoffice/internal/commands/workflow"
	"github.com/fleetgrid/go-backoffice/internal/di"
	"github.com/fleetgrid/go-backoffice/internal/domain"
	"github.com/fleetgrid/go-backoffice/internal/vehicles"
	"github.com/fleetgrid/go-backoffice/internal/workflow"
)

// WorkflowService exports the workflow engine contract for consumers of the
// backoffice package.
type WorkflowService = workflow.Service

// WorkflowView exports the evaluated workflow tree DTO.
type WorkflowView = workflow.WorkflowView

// StatusView exports the evaluated status DTO.
type StatusView = workflow.StatusView

// StepView exports the evaluated step DTO.
type StepView = workflow.StepView

// Attachment exports the file/image attachment DTO.
type Attachment = workflow.Attachment

// FinishStepRequest exports the step completion request payload.
type FinishStepRequest = workflow.FinishStepRequest

// CreateWorkflowRequest exports the workflow creation request payload.
type CreateWorkflowRequest = workflow.CreateWorkflowRequest

// EntityRef exports the tagged subject reference.
type EntityRef = domain.EntityRef

// EntityType exports the subject type tag.
type EntityType = domain.EntityType

// Entity type tags understood by the default context loader.
const (
	EntityTypeVehicle        = domain.EntityTypeVehicle
	EntityTypeServiceVehicle = domain.EntityTypeServiceVehicle
)

// Catalog exports the compiled tenant catalog.
type Catalog = catalog.Catalog

// CatalogRegistry exports the tenant catalog registry.
type CatalogRegistry = catalog.Registry

// StatusDefinition exports the catalog status declaration.
type StatusDefinition = catalog.StatusDefinition

// StepDefinition exports the catalog step declaration.
type StepDefinition = catalog.StepDefinition

// RedFlag exports the business warning DTO.
type RedFlag = catalog.RedFlag

// CompileCatalog validates and freezes a tenant catalog.
var CompileCatalog = catalog.Compile

// Engine errors surfaced to hosts.
var (
	ErrCatalogNotFound = catalog.ErrCatalogNotFound
	ErrUnknownStep     = workflow.ErrUnknownStep
	ErrStepDisabled    = workflow.ErrStepDisabled
	ErrValueRequired   = workflow.ErrValueRequired
	ErrWorkflowExists  = workflow.ErrWorkflowExists
)

// Module represents the top level back-office runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a back-office module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Workflows returns the configured workflow engine.
func (m *Module) Workflows() WorkflowService {
	return m.container.WorkflowService()
}

// Catalogs returns the compiled catalog registry.
func (m *Module) Catalogs() *CatalogRegistry {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.CatalogRegistry()
}

// ContextLoader returns the subject loader used by the engine.
func (m *Module) ContextLoader() *vehicles.Loader {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.ContextLoader()
}

// FinishStep returns the command handler for step completion.
func (m *Module) FinishStep() *workflowcmd.FinishStepHandler {
	return m.container.FinishStepHandler()
}

// UnfinishStep returns the command handler for completion reversal.
func (m *Module) UnfinishStep() *workflowcmd.UnfinishStepHandler {
	return m.container.UnfinishStepHandler()
}

// CreateWorkflow returns the command handler for workflow creation.
func (m *Module) CreateWorkflow() *workflowcmd.CreateWorkflowHandler {
	return m.container.CreateWorkflowHandler()
}
