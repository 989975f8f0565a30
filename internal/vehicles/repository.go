package vehicles

import (
	"context"
	"fmt"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// VehicleRepository resolves stock vehicles.
type VehicleRepository interface {
	Create(ctx context.Context, record *Vehicle) (*Vehicle, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Vehicle, error)
}

// ServiceVehicleRepository resolves service vehicles.
type ServiceVehicleRepository interface {
	Create(ctx context.Context, record *ServiceVehicle) (*ServiceVehicle, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ServiceVehicle, error)
}

// OrderRepository resolves the order records related to one vehicle.
type OrderRepository interface {
	PurchaseOrderByVehicle(ctx context.Context, vehicleID uuid.UUID) (*PurchaseOrder, error)
	SalesOrderByVehicle(ctx context.Context, vehicleID uuid.UUID) (*SalesOrder, error)
	TransportOrdersByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]*TransportOrder, error)
	DocumentsByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]*Document, error)
}

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// NewVehicleRepository creates the go-repository-bun repository for vehicles.
func NewVehicleRepository(db *bun.DB) repository.Repository[*Vehicle] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Vehicle]{
		NewRecord: func() *Vehicle { return &Vehicle{} },
		GetID: func(v *Vehicle) uuid.UUID {
			return v.ID
		},
		SetID: func(v *Vehicle, id uuid.UUID) {
			v.ID = id
		},
		GetIdentifier: func() string {
			return "vin"
		},
		GetIdentifierValue: func(v *Vehicle) string {
			return v.VIN
		},
	})
}

// NewServiceVehicleRepository creates the go-repository-bun repository for
// service vehicles.
func NewServiceVehicleRepository(db *bun.DB) repository.Repository[*ServiceVehicle] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*ServiceVehicle]{
		NewRecord: func() *ServiceVehicle { return &ServiceVehicle{} },
		GetID: func(v *ServiceVehicle) uuid.UUID {
			return v.ID
		},
		SetID: func(v *ServiceVehicle, id uuid.UUID) {
			v.ID = id
		},
		GetIdentifier: func() string {
			return "vin"
		},
		GetIdentifierValue: func(v *ServiceVehicle) string {
			return v.VIN
		},
	})
}
