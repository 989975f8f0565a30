package catalog_test

import (
	"errors"
	"testing"
	"time"

	"github.com/fleetgrid/go-backoffice/internal/catalog"
)

func simpleStatus(key string, stepKeys ...string) catalog.StatusDefinition {
	status := catalog.StatusDefinition{Key: key, Name: key}
	for _, sk := range stepKeys {
		status.Steps = append(status.Steps, catalog.StepDefinition{Key: sk, Name: sk})
	}
	return status
}

func TestCompileNormalizesKeys(t *testing.T) {
	cat, err := catalog.Compile(" Dealer.Test ",
		catalog.StatusDefinition{
			Key:  " Intake ",
			Name: "Intake",
			Steps: []catalog.StepDefinition{
				{Key: " Intake.Inspection ", Name: "Inspection"},
			},
		},
	)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if cat.Namespace() != "dealer.test" {
		t.Fatalf("expected normalized namespace, got %q", cat.Namespace())
	}
	if _, ok := cat.Step("INTAKE.INSPECTION"); !ok {
		t.Fatalf("expected lookup to ignore caller formatting")
	}
	if cat.Statuses()[0].Key != "intake" {
		t.Fatalf("expected normalized status key, got %q", cat.Statuses()[0].Key)
	}
}

func TestCompileValidation(t *testing.T) {
	cases := []struct {
		name     string
		ns       string
		statuses []catalog.StatusDefinition
		want     error
	}{
		{
			name: "missing namespace",
			ns:   "  ",
			statuses: []catalog.StatusDefinition{
				simpleStatus("a", "s1"),
			},
			want: catalog.ErrNamespaceRequired,
		},
		{
			name: "no statuses",
			ns:   "dealer.test",
			want: catalog.ErrStatusesRequired,
		},
		{
			name: "status without key",
			ns:   "dealer.test",
			statuses: []catalog.StatusDefinition{
				simpleStatus("", "s1"),
			},
			want: catalog.ErrStatusKeyRequired,
		},
		{
			name: "status without steps",
			ns:   "dealer.test",
			statuses: []catalog.StatusDefinition{
				{Key: "a", Name: "A"},
			},
			want: catalog.ErrStatusStepsRequired,
		},
		{
			name: "step without key",
			ns:   "dealer.test",
			statuses: []catalog.StatusDefinition{
				{Key: "a", Name: "A", Steps: []catalog.StepDefinition{{Name: "no key"}}},
			},
			want: catalog.ErrStepKeyRequired,
		},
		{
			name: "step without name",
			ns:   "dealer.test",
			statuses: []catalog.StatusDefinition{
				{Key: "a", Name: "A", Steps: []catalog.StepDefinition{{Key: "s1"}}},
			},
			want: catalog.ErrStepNameRequired,
		},
		{
			name: "duplicate status",
			ns:   "dealer.test",
			statuses: []catalog.StatusDefinition{
				simpleStatus("a", "s1"),
				simpleStatus("a", "s2"),
			},
			want: catalog.ErrDuplicateStatus,
		},
		{
			name: "duplicate step across statuses",
			ns:   "dealer.test",
			statuses: []catalog.StatusDefinition{
				simpleStatus("a", "s1"),
				simpleStatus("b", "s1"),
			},
			want: catalog.ErrDuplicateStep,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := catalog.Compile(tc.ns, tc.statuses...)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestStepKeysFollowDeclaredOrder(t *testing.T) {
	cat, err := catalog.Compile("dealer.test",
		simpleStatus("a", "s1", "s2"),
		simpleStatus("b", "s3"),
	)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	keys := cat.StepKeys()
	want := []string{"s1", "s2", "s3"}
	if len(keys) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(keys))
	}
	for i, key := range want {
		if keys[i] != key {
			t.Fatalf("expected key %q at %d, got %q", key, i, keys[i])
		}
	}
}

func TestStepIsFinishedFromCompletionOrPredicate(t *testing.T) {
	derived := catalog.StepDefinition{
		Key:  "derived",
		Name: "Derived",
		Finished: func(ctx catalog.StepContext) bool {
			return ctx.Vehicle != nil
		},
	}
	persisted := catalog.StepDefinition{Key: "persisted", Name: "Persisted"}

	ctx := catalog.StepContext{
		Finished: map[string]catalog.Completion{
			"persisted": {FinishedAt: time.Now()},
		},
	}

	if derived.IsFinished(ctx) {
		t.Fatalf("derived step should be open without subject data")
	}
	if !persisted.IsFinished(ctx) {
		t.Fatalf("persisted completion should satisfy the step")
	}
}

func TestFlagSuppressedWhenDisabled(t *testing.T) {
	step := catalog.StepDefinition{
		Key:      "flagged",
		Name:     "Flagged",
		Disabled: func(catalog.StepContext) bool { return true },
		RedFlag: func(catalog.StepDefinition, catalog.StepContext) *catalog.RedFlag {
			return &catalog.RedFlag{Name: "never", Triggered: true}
		},
	}

	if flag := step.Flag(catalog.StepContext{}); flag != nil {
		t.Fatalf("disabled step must not flag, got %+v", flag)
	}
}

func TestStatusCompletedIgnoresDisabledSteps(t *testing.T) {
	status := catalog.StatusDefinition{
		Key:  "a",
		Name: "A",
		Steps: []catalog.StepDefinition{
			{Key: "s1", Name: "S1"},
			{Key: "s2", Name: "S2", Disabled: func(catalog.StepContext) bool { return true }},
		},
	}

	ctx := catalog.StepContext{
		Finished: map[string]catalog.Completion{"s1": {}},
	}
	if !status.IsCompleted(ctx) {
		t.Fatalf("expected status completed when only disabled steps remain")
	}
}

func TestRegistryGet(t *testing.T) {
	cat, err := catalog.Compile("dealer.test", simpleStatus("a", "s1"))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	registry, err := catalog.NewRegistry(cat)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	if _, err := registry.Get("DEALER.TEST"); err != nil {
		t.Fatalf("expected case-insensitive lookup, got %v", err)
	}

	_, err = registry.Get("dealer.unknown")
	if !errors.Is(err, catalog.ErrCatalogNotFound) {
		t.Fatalf("expected ErrCatalogNotFound, got %v", err)
	}
	var notFound *catalog.CatalogNotFoundError
	if !errors.As(err, &notFound) || notFound.Namespace != "dealer.unknown" {
		t.Fatalf("expected CatalogNotFoundError with namespace, got %v", err)
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	cat, err := catalog.Compile("dealer.test", simpleStatus("a", "s1"))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, err := catalog.NewRegistry(cat, cat); !errors.Is(err, catalog.ErrDuplicateCatalog) {
		t.Fatalf("expected ErrDuplicateCatalog, got %v", err)
	}
}
