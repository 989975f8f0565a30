package catalog

import "time"

// Built-in process namespaces. Tenants without a bespoke catalog are mapped
// onto one of these by configuration.
const (
	NamespacePurchase = "dealer.purchase"
	NamespaceService  = "dealer.service"
)

const deliveryPlanningGrace = 48 * time.Hour

// Builtin returns the catalogs shipped with the module: the stock vehicle
// purchase flow and the service vehicle flow. Onboarding a tenant with a
// custom process means compiling another catalog and registering it next to
// these, not changing engine code.
func Builtin() []Catalog {
	return []Catalog{purchaseCatalog(), serviceCatalog()}
}

func purchaseCatalog() Catalog {
	return MustCompile(NamespacePurchase,
		StatusDefinition{
			Key:  "purchase",
			Name: "Purchase Confirmed",
			Steps: []StepDefinition{
				{
					Key:          "purchase.order_signed",
					Name:         "Purchase order signed",
					AcceptsFiles: true,
				},
				{
					Key:           "purchase.down_payment",
					Name:          "Down payment supplier",
					RequiresValue: true,
					Disabled: func(ctx StepContext) bool {
						return ctx.PurchaseOrder == nil || !ctx.PurchaseOrder.DownPayment
					},
				},
			},
		},
		StatusDefinition{
			Key:  "transport",
			Name: "Transport Planned",
			Steps: []StepDefinition{
				{
					Key:           "transport.plan_pickup",
					Name:          "Plan pickup week",
					RequiresValue: true,
					RedFlag: DeadlinePassed(
						"transport_not_planned",
						"expected delivery date passed without a planned pickup",
						func(ctx StepContext) *time.Time {
							if ctx.Vehicle == nil {
								return nil
							}
							return ctx.Vehicle.ExpectedDeliveryAt
						},
						0,
					),
				},
				{
					Key:  "transport.vehicle_received",
					Name: "Vehicle received",
					Finished: func(ctx StepContext) bool {
						for _, order := range ctx.TransportOrders {
							if order != nil && order.Delivered {
								return true
							}
						}
						return false
					},
				},
			},
		},
		StatusDefinition{
			Key:  "intake",
			Name: "Intake",
			Steps: []StepDefinition{
				{
					Key:           "intake.inspection",
					Name:          "Intake inspection",
					AcceptsImages: true,
				},
				{
					Key:          "intake.papers_received",
					Name:         "Vehicle papers received",
					AcceptsFiles: true,
					Finished: func(ctx StepContext) bool {
						return ctx.Vehicle != nil && ctx.Vehicle.PapersReceivedAt != nil
					},
				},
				{
					Key:           "intake.damage_report",
					Name:          "Damage report",
					AcceptsImages: true,
				},
			},
		},
		StatusDefinition{
			Key:  "payment",
			Name: "Payment Supplier",
			Steps: []StepDefinition{
				{
					Key:          "payment.invoice_received",
					Name:         "Supplier invoice received",
					AcceptsFiles: true,
					Finished: func(ctx StepContext) bool {
						return ctx.PurchaseOrder != nil && ctx.PurchaseOrder.InvoiceReceivedAt != nil
					},
				},
				{
					Key:           "payment.supplier_paid",
					Name:          "Supplier paid",
					RequiresValue: true,
					RedFlag: DependencyFinished(
						"invoice_unpaid",
						"supplier invoice received but payment not recorded",
						"payment.invoice_received",
					),
				},
			},
		},
		StatusDefinition{
			Key:  "delivery",
			Name: "Delivery",
			Steps: []StepDefinition{
				{
					Key:           "delivery.schedule",
					Name:          "Schedule delivery",
					RequiresValue: true,
					Disabled: func(ctx StepContext) bool {
						return ctx.SalesOrder == nil
					},
					RedFlag: DeadlinePassed(
						"delivery_unplanned",
						"agreed delivery date is near but delivery is not scheduled",
						func(ctx StepContext) *time.Time {
							if ctx.SalesOrder == nil {
								return nil
							}
							return ctx.SalesOrder.DeliveryAt
						},
						-deliveryPlanningGrace,
					),
				},
				{
					Key:           "delivery.handover",
					Name:          "Customer handover",
					AcceptsImages: true,
					AcceptsFiles:  true,
					Disabled: func(ctx StepContext) bool {
						return ctx.SalesOrder == nil
					},
					RedFlag: FinishedAfter(
						"late_handover",
						"vehicle handed over after the agreed delivery date",
						func(ctx StepContext) *time.Time {
							if ctx.SalesOrder == nil {
								return nil
							}
							return ctx.SalesOrder.DeliveryAt
						},
					),
				},
			},
		},
	)
}

func serviceCatalog() Catalog {
	return MustCompile(NamespaceService,
		StatusDefinition{
			Key:  "reception",
			Name: "Reception",
			Steps: []StepDefinition{
				{
					Key:  "reception.checkin",
					Name: "Vehicle checked in",
					Finished: func(ctx StepContext) bool {
						return ctx.ServiceVehicle != nil && ctx.ServiceVehicle.CheckedInAt != nil
					},
				},
				{
					Key:           "reception.customer_approval",
					Name:          "Customer approved quote",
					RequiresValue: true,
				},
			},
		},
		StatusDefinition{
			Key:  "service",
			Name: "Service",
			Steps: []StepDefinition{
				{
					Key:           "service.work_completed",
					Name:          "Work completed",
					AcceptsImages: true,
				},
				{
					Key:  "service.quality_check",
					Name: "Quality check",
					RedFlag: DependencyFinished(
						"quality_check_pending",
						"work completed but quality check not recorded",
						"service.work_completed",
					),
				},
			},
		},
		StatusDefinition{
			Key:  "return",
			Name: "Return",
			Steps: []StepDefinition{
				{
					Key:           "return.vehicle_returned",
					Name:          "Vehicle returned to customer",
					RequiresValue: true,
				},
			},
		},
	)
}
