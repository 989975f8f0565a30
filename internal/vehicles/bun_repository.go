package vehicles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunVehicleRepository implements VehicleRepository on top of bun.
type BunVehicleRepository struct {
	repo repository.Repository[*Vehicle]
}

// NewBunVehicleRepository creates a bun-backed vehicle repository.
func NewBunVehicleRepository(db *bun.DB) *BunVehicleRepository {
	return &BunVehicleRepository{repo: NewVehicleRepository(db)}
}

func (r *BunVehicleRepository) Create(ctx context.Context, record *Vehicle) (*Vehicle, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("vehicle repository error: %w", err)
	}
	return created, nil
}

func (r *BunVehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*Vehicle, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "vehicle", id.String())
	}
	return result, nil
}

// BunServiceVehicleRepository implements ServiceVehicleRepository on top of bun.
type BunServiceVehicleRepository struct {
	repo repository.Repository[*ServiceVehicle]
}

// NewBunServiceVehicleRepository creates a bun-backed service vehicle repository.
func NewBunServiceVehicleRepository(db *bun.DB) *BunServiceVehicleRepository {
	return &BunServiceVehicleRepository{repo: NewServiceVehicleRepository(db)}
}

func (r *BunServiceVehicleRepository) Create(ctx context.Context, record *ServiceVehicle) (*ServiceVehicle, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("service vehicle repository error: %w", err)
	}
	return created, nil
}

func (r *BunServiceVehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*ServiceVehicle, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "service_vehicle", id.String())
	}
	return result, nil
}

// BunOrderRepository implements OrderRepository with direct bun queries; the
// order lookups are by-vehicle filters rather than identifier lookups.
type BunOrderRepository struct {
	db *bun.DB
}

// NewBunOrderRepository creates a bun-backed order repository.
func NewBunOrderRepository(db *bun.DB) *BunOrderRepository {
	return &BunOrderRepository{db: db}
}

func (r *BunOrderRepository) PurchaseOrderByVehicle(ctx context.Context, vehicleID uuid.UUID) (*PurchaseOrder, error) {
	order := &PurchaseOrder{}
	err := r.db.NewSelect().
		Model(order).
		Where("vehicle_id = ?", vehicleID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("purchase order repository error: %w", err)
	}
	return order, nil
}

func (r *BunOrderRepository) SalesOrderByVehicle(ctx context.Context, vehicleID uuid.UUID) (*SalesOrder, error) {
	order := &SalesOrder{}
	err := r.db.NewSelect().
		Model(order).
		Where("vehicle_id = ?", vehicleID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sales order repository error: %w", err)
	}
	return order, nil
}

func (r *BunOrderRepository) TransportOrdersByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]*TransportOrder, error) {
	var orders []*TransportOrder
	if err := r.db.NewSelect().
		Model(&orders).
		Where("vehicle_id = ?", vehicleID).
		Order("pickup_at ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("transport order repository error: %w", err)
	}
	return orders, nil
}

func (r *BunOrderRepository) DocumentsByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]*Document, error) {
	var docs []*Document
	if err := r.db.NewSelect().
		Model(&docs).
		Where("vehicle_id = ?", vehicleID).
		Order("created_at ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("vehicle document repository error: %w", err)
	}
	return docs, nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
