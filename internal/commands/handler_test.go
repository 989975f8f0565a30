package commands_test

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/fleetgrid/go-backoffice/internal/commands"
)

type testMessage struct {
	Payload string
	invalid bool
}

func (testMessage) Type() string { return "backoffice.test.message" }

func (m testMessage) Validate() error {
	if m.invalid {
		return errors.New("payload rejected")
	}
	return nil
}

func TestHandlerExecutesFunction(t *testing.T) {
	var got string
	handler := commands.NewHandler[testMessage](func(_ context.Context, msg testMessage) error {
		got = msg.Payload
		return nil
	})

	if err := handler.Execute(context.Background(), testMessage{Payload: "hello"}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got != "hello" {
		t.Fatalf("expected function invoked with message, got %q", got)
	}
}

func TestHandlerWrapsValidationFailure(t *testing.T) {
	handler := commands.NewHandler[testMessage](func(context.Context, testMessage) error {
		t.Fatalf("function must not run on invalid message")
		return nil
	})

	err := handler.Execute(context.Background(), testMessage{invalid: true})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestHandlerWrapsExecutionFailure(t *testing.T) {
	cause := errors.New("engine refused")
	handler := commands.NewHandler[testMessage](func(context.Context, testMessage) error {
		return cause
	})

	err := handler.Execute(context.Background(), testMessage{})
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestHandlerRejectsCancelledContext(t *testing.T) {
	handler := commands.NewHandler[testMessage](func(context.Context, testMessage) error {
		t.Fatalf("function must not run with a cancelled context")
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := handler.Execute(ctx, testMessage{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
