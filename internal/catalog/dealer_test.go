package catalog_test

import (
	"testing"
	"time"

	"github.com/fleetgrid/go-backoffice/internal/catalog"
	"github.com/fleetgrid/go-backoffice/internal/vehicles"
)

func TestBuiltinCatalogsRegister(t *testing.T) {
	registry, err := catalog.NewRegistry(catalog.Builtin()...)
	if err != nil {
		t.Fatalf("register builtin catalogs: %v", err)
	}
	for _, ns := range []string{catalog.NamespacePurchase, catalog.NamespaceService} {
		if _, err := registry.Get(ns); err != nil {
			t.Fatalf("expected builtin catalog %s, got %v", ns, err)
		}
	}
}

func TestPurchaseDownPaymentDisabledWithoutAgreement(t *testing.T) {
	registry, err := catalog.NewRegistry(catalog.Builtin()...)
	if err != nil {
		t.Fatalf("register builtin catalogs: %v", err)
	}
	cat, err := registry.Get(catalog.NamespacePurchase)
	if err != nil {
		t.Fatalf("get purchase catalog: %v", err)
	}
	step, ok := cat.Step("purchase.down_payment")
	if !ok {
		t.Fatalf("expected down payment step")
	}

	if !step.IsDisabled(catalog.StepContext{}) {
		t.Fatalf("expected step disabled without a purchase order")
	}

	noDeposit := catalog.StepContext{
		Subject: vehicles.Subject{PurchaseOrder: &vehicles.PurchaseOrder{DownPayment: false}},
	}
	if !step.IsDisabled(noDeposit) {
		t.Fatalf("expected step disabled without agreed down payment")
	}

	withDeposit := catalog.StepContext{
		Subject: vehicles.Subject{PurchaseOrder: &vehicles.PurchaseOrder{DownPayment: true}},
	}
	if step.IsDisabled(withDeposit) {
		t.Fatalf("expected step enabled with agreed down payment")
	}
}

func TestPurchaseVehicleReceivedDerivesFromTransport(t *testing.T) {
	cat := mustGet(t, catalog.NamespacePurchase)
	step, ok := cat.Step("transport.vehicle_received")
	if !ok {
		t.Fatalf("expected vehicle received step")
	}

	open := catalog.StepContext{
		Subject: vehicles.Subject{
			TransportOrders: []*vehicles.TransportOrder{{Delivered: false}},
		},
	}
	if step.IsFinished(open) {
		t.Fatalf("expected step open while transport undelivered")
	}

	delivered := catalog.StepContext{
		Subject: vehicles.Subject{
			TransportOrders: []*vehicles.TransportOrder{{Delivered: false}, {Delivered: true}},
		},
	}
	if !step.IsFinished(delivered) {
		t.Fatalf("expected step derived finished once any transport delivered")
	}
}

func TestPurchasePapersReceivedDerivesFromVehicle(t *testing.T) {
	cat := mustGet(t, catalog.NamespacePurchase)
	step, ok := cat.Step("intake.papers_received")
	if !ok {
		t.Fatalf("expected papers received step")
	}

	if step.IsFinished(catalog.StepContext{Subject: vehicles.Subject{Vehicle: &vehicles.Vehicle{}}}) {
		t.Fatalf("expected step open without papers date")
	}

	received := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	ctx := catalog.StepContext{
		Subject: vehicles.Subject{Vehicle: &vehicles.Vehicle{PapersReceivedAt: &received}},
	}
	if !step.IsFinished(ctx) {
		t.Fatalf("expected step derived finished once papers recorded")
	}
}

func TestPurchaseDeliveryRequiresSalesOrder(t *testing.T) {
	cat := mustGet(t, catalog.NamespacePurchase)

	for _, key := range []string{"delivery.schedule", "delivery.handover"} {
		step, ok := cat.Step(key)
		if !ok {
			t.Fatalf("expected step %s", key)
		}
		if !step.IsDisabled(catalog.StepContext{}) {
			t.Fatalf("expected %s disabled while the vehicle is unsold", key)
		}
		sold := catalog.StepContext{
			Subject: vehicles.Subject{SalesOrder: &vehicles.SalesOrder{}},
		}
		if step.IsDisabled(sold) {
			t.Fatalf("expected %s enabled once a sales order exists", key)
		}
	}
}

func TestPurchaseDeliveryScheduleWarnsBeforeDeadline(t *testing.T) {
	cat := mustGet(t, catalog.NamespacePurchase)
	step, ok := cat.Step("delivery.schedule")
	if !ok {
		t.Fatalf("expected delivery schedule step")
	}

	delivery := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	subject := vehicles.Subject{SalesOrder: &vehicles.SalesOrder{DeliveryAt: &delivery}}

	inside := catalog.StepContext{Now: delivery.Add(-24 * time.Hour), Subject: subject}
	flag := step.Flag(inside)
	if flag == nil || !flag.Triggered {
		t.Fatalf("expected warning inside the 48h planning window, got %+v", flag)
	}

	outside := catalog.StepContext{Now: delivery.Add(-96 * time.Hour), Subject: subject}
	flag = step.Flag(outside)
	if flag == nil || flag.Triggered {
		t.Fatalf("expected no warning well before delivery, got %+v", flag)
	}
}

func TestServiceCheckinDerivesFromReception(t *testing.T) {
	cat := mustGet(t, catalog.NamespaceService)
	step, ok := cat.Step("reception.checkin")
	if !ok {
		t.Fatalf("expected checkin step")
	}

	if step.IsFinished(catalog.StepContext{}) {
		t.Fatalf("expected step open before checkin")
	}

	checkedIn := time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)
	ctx := catalog.StepContext{
		Subject: vehicles.Subject{ServiceVehicle: &vehicles.ServiceVehicle{CheckedInAt: &checkedIn}},
	}
	if !step.IsFinished(ctx) {
		t.Fatalf("expected step derived finished after checkin")
	}
}

func TestPurchaseSupplierPaidFlagsImplicitInvoice(t *testing.T) {
	cat := mustGet(t, catalog.NamespacePurchase)
	step, ok := cat.Step("payment.supplier_paid")
	if !ok {
		t.Fatalf("expected supplier paid step")
	}

	// The invoice step finishes implicitly off the purchase order; the unpaid
	// flag must still see it as the finished dependency.
	received := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	ctx := cat.Bind(catalog.StepContext{
		Subject: vehicles.Subject{
			PurchaseOrder: &vehicles.PurchaseOrder{InvoiceReceivedAt: &received},
		},
	})
	flag := step.Flag(ctx)
	if flag == nil || !flag.Triggered {
		t.Fatalf("expected unpaid flag for implicitly received invoice, got %+v", flag)
	}

	pending := cat.Bind(catalog.StepContext{
		Subject: vehicles.Subject{PurchaseOrder: &vehicles.PurchaseOrder{}},
	})
	flag = step.Flag(pending)
	if flag == nil || flag.Triggered {
		t.Fatalf("expected no flag while invoice outstanding, got %+v", flag)
	}
}

func TestServiceQualityCheckFlagsPendingWork(t *testing.T) {
	cat := mustGet(t, catalog.NamespaceService)
	step, ok := cat.Step("service.quality_check")
	if !ok {
		t.Fatalf("expected quality check step")
	}

	ctx := catalog.StepContext{
		Finished: map[string]catalog.Completion{"service.work_completed": {}},
	}
	flag := step.Flag(ctx)
	if flag == nil || !flag.Triggered {
		t.Fatalf("expected flag when work done but check missing, got %+v", flag)
	}
}

func mustGet(t *testing.T, namespace string) catalog.Catalog {
	t.Helper()
	registry, err := catalog.NewRegistry(catalog.Builtin()...)
	if err != nil {
		t.Fatalf("register builtin catalogs: %v", err)
	}
	cat, err := registry.Get(namespace)
	if err != nil {
		t.Fatalf("get catalog %s: %v", namespace, err)
	}
	return cat
}
