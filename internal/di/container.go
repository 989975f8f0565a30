package di

import (
	"github.com/uptrace/bun"

	"github.com/fleetgrid/go-backoffice/internal/catalog"
	"github.com/fleetgrid/go-backoffice/internal/commands"
	workflowcmd "github.com/fleetgrid/go-backoffice/internal/commands/workflow"
	"github.com/fleetgrid/go-backoffice/internal/logging"
	"github.com/fleetgrid/go-backoffice/internal/logging/gologger"
	"github.com/fleetgrid/go-backoffice/internal/runtimeconfig"
	"github.com/fleetgrid/go-backoffice/internal/vehicles"
	"github.com/fleetgrid/go-backoffice/internal/workflow"
	"github.com/fleetgrid/go-backoffice/pkg/interfaces"
)

// Container wires module dependencies. Repositories default to the in-memory
// implementations until a bun database is supplied.
type Container struct {
	config runtimeconfig.Config

	bunDB          *bun.DB
	loggerProvider interfaces.LoggerProvider

	extraCatalogs []catalog.Catalog
	registry      *catalog.Registry

	workflowRepo workflow.WorkflowRepository
	finishedRepo workflow.FinishedStepRepository

	vehicleRepo        vehicles.VehicleRepository
	serviceVehicleRepo vehicles.ServiceVehicleRepository
	orderRepo          vehicles.OrderRepository
	loader             *vehicles.Loader

	workflowSvc workflow.Service

	finishHandler   *workflowcmd.FinishStepHandler
	unfinishHandler *workflowcmd.UnfinishStepHandler
	createHandler   *workflowcmd.CreateWorkflowHandler
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB switches every repository onto the supplied bun database.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithLoggerProvider overrides the logging provider derived from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithCatalog registers an additional tenant catalog next to the built-ins.
func WithCatalog(cat catalog.Catalog) Option {
	return func(c *Container) {
		c.extraCatalogs = append(c.extraCatalogs, cat)
	}
}

// WithWorkflowRepositories overrides the persistence layer, used by hosts
// that already own the storage wiring.
func WithWorkflowRepositories(workflows workflow.WorkflowRepository, finished workflow.FinishedStepRepository) Option {
	return func(c *Container) {
		c.workflowRepo = workflows
		c.finishedRepo = finished
	}
}

// WithVehicleRepositories overrides the subject data repositories.
func WithVehicleRepositories(v vehicles.VehicleRepository, sv vehicles.ServiceVehicleRepository, orders vehicles.OrderRepository) Option {
	return func(c *Container) {
		c.vehicleRepo = v
		c.serviceVehicleRepo = sv
		c.orderRepo = orders
	}
}

// NewContainer validates the configuration and assembles the module services.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if c.loggerProvider == nil {
		provider, err := buildLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}

	registry, err := catalog.NewRegistry(append(catalog.Builtin(), c.extraCatalogs...)...)
	if err != nil {
		return nil, err
	}
	c.registry = registry

	if c.workflowRepo == nil || c.finishedRepo == nil {
		if c.bunDB != nil {
			c.workflowRepo = workflow.NewBunWorkflowRepository(c.bunDB)
			c.finishedRepo = workflow.NewBunFinishedStepRepository(c.bunDB)
		} else {
			c.workflowRepo = workflow.NewMemoryWorkflowRepository()
			c.finishedRepo = workflow.NewMemoryFinishedStepRepository()
		}
	}

	if c.vehicleRepo == nil || c.serviceVehicleRepo == nil || c.orderRepo == nil {
		if c.bunDB != nil {
			c.vehicleRepo = vehicles.NewBunVehicleRepository(c.bunDB)
			c.serviceVehicleRepo = vehicles.NewBunServiceVehicleRepository(c.bunDB)
			c.orderRepo = vehicles.NewBunOrderRepository(c.bunDB)
		} else {
			c.vehicleRepo = vehicles.NewMemoryVehicleRepository()
			c.serviceVehicleRepo = vehicles.NewMemoryServiceVehicleRepository()
			c.orderRepo = vehicles.NewMemoryOrderRepository()
		}
	}

	c.loader = vehicles.NewLoader(c.vehicleRepo, c.serviceVehicleRepo, c.orderRepo)

	c.workflowSvc = workflow.NewService(
		c.workflowRepo,
		c.finishedRepo,
		c.registry,
		c.loader,
		workflow.WithLogger(logging.WorkflowLogger(c.loggerProvider)),
		workflow.WithProcessResolver(workflow.StaticProcessResolver(cfg.Workflow.ProcessTable())),
	)

	timeout := cfg.Workflow.HandlerTimeout
	commandLogger := commands.CommandLogger(c.loggerProvider, "workflow")
	c.finishHandler = workflowcmd.NewFinishStepHandler(c.workflowSvc, commandLogger,
		commands.WithTimeout[workflowcmd.FinishStepCommand](timeout))
	c.unfinishHandler = workflowcmd.NewUnfinishStepHandler(c.workflowSvc, commandLogger,
		commands.WithTimeout[workflowcmd.UnfinishStepCommand](timeout))
	c.createHandler = workflowcmd.NewCreateWorkflowHandler(c.workflowSvc, commandLogger,
		commands.WithTimeout[workflowcmd.CreateWorkflowCommand](timeout))

	return c, nil
}

func buildLoggerProvider(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	switch cfg.Provider {
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
	default:
		return nil, nil
	}
}

// Config returns the validated runtime configuration.
func (c *Container) Config() runtimeconfig.Config {
	return c.config
}

// WorkflowService returns the configured workflow engine.
func (c *Container) WorkflowService() workflow.Service {
	return c.workflowSvc
}

// CatalogRegistry returns the compiled catalog registry.
func (c *Container) CatalogRegistry() *catalog.Registry {
	return c.registry
}

// ContextLoader returns the subject loader used by the engine.
func (c *Container) ContextLoader() *vehicles.Loader {
	return c.loader
}

// LoggerProvider returns the provider used for module loggers.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// FinishStepHandler returns the command handler for step completion.
func (c *Container) FinishStepHandler() *workflowcmd.FinishStepHandler {
	return c.finishHandler
}

// UnfinishStepHandler returns the command handler for completion reversal.
func (c *Container) UnfinishStepHandler() *workflowcmd.UnfinishStepHandler {
	return c.unfinishHandler
}

// CreateWorkflowHandler returns the command handler for workflow creation.
func (c *Container) CreateWorkflowHandler() *workflowcmd.CreateWorkflowHandler {
	return c.createHandler
}
