package vehicles

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fleetgrid/go-backoffice/internal/domain"
)

// ErrResolverUnknown indicates a subject lookup for an entity type that has
// no registered resolver.
var ErrResolverUnknown = errors.New("vehicles: no resolver for entity type")

// SubjectResolver loads the subject data for one entity type.
type SubjectResolver func(ctx context.Context, id uuid.UUID) (Subject, error)

// Loader resolves workflow subjects through a per-entity-type table. The
// tagged dispatch keeps the polymorphic owner out of the engine: adding a
// subject kind means registering another resolver.
type Loader struct {
	resolvers map[domain.EntityType]SubjectResolver
}

// NewLoader builds a loader for stock and service vehicles.
func NewLoader(vehicles VehicleRepository, serviceVehicles ServiceVehicleRepository, orders OrderRepository) *Loader {
	loader := &Loader{resolvers: make(map[domain.EntityType]SubjectResolver)}

	loader.Register(domain.EntityTypeVehicle, func(ctx context.Context, id uuid.UUID) (Subject, error) {
		vehicle, err := vehicles.GetByID(ctx, id)
		if err != nil {
			return Subject{}, err
		}
		subject := Subject{Vehicle: vehicle}
		if subject.PurchaseOrder, err = orders.PurchaseOrderByVehicle(ctx, id); err != nil {
			return Subject{}, err
		}
		if subject.SalesOrder, err = orders.SalesOrderByVehicle(ctx, id); err != nil {
			return Subject{}, err
		}
		if subject.TransportOrders, err = orders.TransportOrdersByVehicle(ctx, id); err != nil {
			return Subject{}, err
		}
		if subject.Documents, err = orders.DocumentsByVehicle(ctx, id); err != nil {
			return Subject{}, err
		}
		return subject, nil
	})

	loader.Register(domain.EntityTypeServiceVehicle, func(ctx context.Context, id uuid.UUID) (Subject, error) {
		vehicle, err := serviceVehicles.GetByID(ctx, id)
		if err != nil {
			return Subject{}, err
		}
		return Subject{ServiceVehicle: vehicle}, nil
	})

	return loader
}

// Register adds or replaces the resolver for an entity type.
func (l *Loader) Register(entityType domain.EntityType, resolver SubjectResolver) {
	if resolver == nil {
		return
	}
	l.resolvers[entityType] = resolver
}

// Load resolves the subject for a workflow entity reference.
func (l *Loader) Load(ctx context.Context, ref domain.EntityRef) (Subject, error) {
	resolver, ok := l.resolvers[ref.Type]
	if !ok {
		return Subject{}, fmt.Errorf("%w: %s", ErrResolverUnknown, ref.Type)
	}
	return resolver(ctx, ref.ID)
}
