package vehicles

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Vehicle is a stock vehicle moving through the purchase process.
type Vehicle struct {
	bun.BaseModel `bun:"table:vehicles,alias:v"`

	ID                 uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	VIN                string     `bun:"vin,notnull" json:"vin"`
	Make               string     `bun:"make,notnull" json:"make"`
	Model              string     `bun:"model,notnull" json:"model"`
	ExpectedDeliveryAt *time.Time `bun:"expected_delivery_at,nullzero" json:"expected_delivery_at,omitempty"`
	PapersReceivedAt   *time.Time `bun:"papers_received_at,nullzero" json:"papers_received_at,omitempty"`
	Sold               bool       `bun:"sold,notnull,default:false" json:"sold"`
	CreatedAt          time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt          time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// ServiceVehicle is a customer vehicle checked in for service work.
type ServiceVehicle struct {
	bun.BaseModel `bun:"table:service_vehicles,alias:sv"`

	ID           uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	VIN          string     `bun:"vin,notnull" json:"vin"`
	CustomerName string     `bun:"customer_name,notnull" json:"customer_name"`
	CheckedInAt  *time.Time `bun:"checked_in_at,nullzero" json:"checked_in_at,omitempty"`
	CreatedAt    time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// PurchaseOrder records the supplier side of a vehicle acquisition.
type PurchaseOrder struct {
	bun.BaseModel `bun:"table:purchase_orders,alias:po"`

	ID                uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	VehicleID         uuid.UUID  `bun:"vehicle_id,notnull,type:uuid" json:"vehicle_id"`
	SupplierName      string     `bun:"supplier_name,notnull" json:"supplier_name"`
	DownPayment       bool       `bun:"down_payment,notnull,default:false" json:"down_payment"`
	DownPaymentAmount *int64     `bun:"down_payment_amount" json:"down_payment_amount,omitempty"`
	OrderedAt         time.Time  `bun:"ordered_at,notnull" json:"ordered_at"`
	InvoiceReceivedAt *time.Time `bun:"invoice_received_at,nullzero" json:"invoice_received_at,omitempty"`
}

// SalesOrder records the customer side of a vehicle sale.
type SalesOrder struct {
	bun.BaseModel `bun:"table:sales_orders,alias:so"`

	ID           uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	VehicleID    uuid.UUID  `bun:"vehicle_id,notnull,type:uuid" json:"vehicle_id"`
	CustomerName string     `bun:"customer_name,notnull" json:"customer_name"`
	DownPayment  bool       `bun:"down_payment,notnull,default:false" json:"down_payment"`
	DeliveryAt   *time.Time `bun:"delivery_at,nullzero" json:"delivery_at,omitempty"`
}

// TransportOrder records inbound or outbound vehicle transport.
type TransportOrder struct {
	bun.BaseModel `bun:"table:transport_orders,alias:to"`

	ID        uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	VehicleID uuid.UUID  `bun:"vehicle_id,notnull,type:uuid" json:"vehicle_id"`
	PickupAt  *time.Time `bun:"pickup_at,nullzero" json:"pickup_at,omitempty"`
	Delivered bool       `bun:"delivered,notnull,default:false" json:"delivered"`
}

// Document is a file attached to a vehicle outside the step flow (contracts,
// registration papers). Step predicates may read these to derive completion.
type Document struct {
	bun.BaseModel `bun:"table:vehicle_documents,alias:vd"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	VehicleID uuid.UUID `bun:"vehicle_id,notnull,type:uuid" json:"vehicle_id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Path      string    `bun:"path,notnull" json:"path"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// Subject bundles every record a step predicate may inspect for one workflow
// subject. Fields are nil when the related record does not exist; predicates
// must treat absence as a normal data state.
type Subject struct {
	Vehicle         *Vehicle
	ServiceVehicle  *ServiceVehicle
	PurchaseOrder   *PurchaseOrder
	SalesOrder      *SalesOrder
	TransportOrders []*TransportOrder
	Documents       []*Document
}
