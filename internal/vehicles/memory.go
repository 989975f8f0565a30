package vehicles

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryVehicleRepository is an in-memory implementation for scaffolding and tests.
type MemoryVehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[uuid.UUID]*Vehicle
}

// NewMemoryVehicleRepository creates an empty in-memory vehicle repository.
func NewMemoryVehicleRepository() *MemoryVehicleRepository {
	return &MemoryVehicleRepository{vehicles: make(map[uuid.UUID]*Vehicle)}
}

// Create inserts the supplied vehicle.
func (m *MemoryVehicleRepository) Create(_ context.Context, record *Vehicle) (*Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *record
	m.vehicles[record.ID] = &copied
	out := copied
	return &out, nil
}

// GetByID retrieves a vehicle by identifier.
func (m *MemoryVehicleRepository) GetByID(_ context.Context, id uuid.UUID) (*Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.vehicles[id]
	if !ok {
		return nil, &NotFoundError{Resource: "vehicle", Key: id.String()}
	}
	copied := *rec
	return &copied, nil
}

// MemoryServiceVehicleRepository stores service vehicles in-memory.
type MemoryServiceVehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[uuid.UUID]*ServiceVehicle
}

// NewMemoryServiceVehicleRepository creates an empty repository.
func NewMemoryServiceVehicleRepository() *MemoryServiceVehicleRepository {
	return &MemoryServiceVehicleRepository{vehicles: make(map[uuid.UUID]*ServiceVehicle)}
}

// Create inserts the supplied service vehicle.
func (m *MemoryServiceVehicleRepository) Create(_ context.Context, record *ServiceVehicle) (*ServiceVehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *record
	m.vehicles[record.ID] = &copied
	out := copied
	return &out, nil
}

// GetByID retrieves a service vehicle by identifier.
func (m *MemoryServiceVehicleRepository) GetByID(_ context.Context, id uuid.UUID) (*ServiceVehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.vehicles[id]
	if !ok {
		return nil, &NotFoundError{Resource: "service_vehicle", Key: id.String()}
	}
	copied := *rec
	return &copied, nil
}

// MemoryOrderRepository stores order records in-memory keyed by vehicle.
type MemoryOrderRepository struct {
	mu              sync.RWMutex
	purchaseOrders  map[uuid.UUID]*PurchaseOrder
	salesOrders     map[uuid.UUID]*SalesOrder
	transportOrders map[uuid.UUID][]*TransportOrder
	documents       map[uuid.UUID][]*Document
}

// NewMemoryOrderRepository creates an empty in-memory order repository.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		purchaseOrders:  make(map[uuid.UUID]*PurchaseOrder),
		salesOrders:     make(map[uuid.UUID]*SalesOrder),
		transportOrders: make(map[uuid.UUID][]*TransportOrder),
		documents:       make(map[uuid.UUID][]*Document),
	}
}

// PutPurchaseOrder inserts or replaces the purchase order for a vehicle.
func (m *MemoryOrderRepository) PutPurchaseOrder(order *PurchaseOrder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *order
	m.purchaseOrders[order.VehicleID] = &copied
}

// PutSalesOrder inserts or replaces the sales order for a vehicle.
func (m *MemoryOrderRepository) PutSalesOrder(order *SalesOrder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *order
	m.salesOrders[order.VehicleID] = &copied
}

// AddTransportOrder appends a transport order for a vehicle.
func (m *MemoryOrderRepository) AddTransportOrder(order *TransportOrder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *order
	m.transportOrders[order.VehicleID] = append(m.transportOrders[order.VehicleID], &copied)
}

// AddDocument appends a document for a vehicle.
func (m *MemoryOrderRepository) AddDocument(doc *Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *doc
	m.documents[doc.VehicleID] = append(m.documents[doc.VehicleID], &copied)
}

func (m *MemoryOrderRepository) PurchaseOrderByVehicle(_ context.Context, vehicleID uuid.UUID) (*PurchaseOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.purchaseOrders[vehicleID]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (m *MemoryOrderRepository) SalesOrderByVehicle(_ context.Context, vehicleID uuid.UUID) (*SalesOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.salesOrders[vehicleID]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (m *MemoryOrderRepository) TransportOrdersByVehicle(_ context.Context, vehicleID uuid.UUID) ([]*TransportOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	orders := m.transportOrders[vehicleID]
	out := make([]*TransportOrder, 0, len(orders))
	for _, order := range orders {
		copied := *order
		out = append(out, &copied)
	}
	return out, nil
}

func (m *MemoryOrderRepository) DocumentsByVehicle(_ context.Context, vehicleID uuid.UUID) ([]*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	docs := m.documents[vehicleID]
	out := make([]*Document, 0, len(docs))
	for _, doc := range docs {
		copied := *doc
		out = append(out, &copied)
	}
	return out, nil
}
