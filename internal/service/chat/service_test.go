package chat_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/goleak"

	modelchat "github.com/coordinator-insight/backend/internal/model/chat"
	chat "github.com/coordinator-insight/backend/internal/service/chat"
)

const testWelcome = "Hello! I'm your Transplant Coordinator mentor."

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// started by the genai SDK's opencensus dependency at package init
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"),
	)
}

type completerFunc func(ctx context.Context, history []modelchat.Turn, message string) (string, error)

func (f completerFunc) Complete(ctx context.Context, history []modelchat.Turn, message string) (string, error) {
	return f(ctx, history, message)
}

func echoCompleter() completerFunc {
	return func(_ context.Context, _ []modelchat.Turn, message string) (string, error) {
		return "re: " + message, nil
	}
}

func TestServiceGetSession(t *testing.T) {
	svc := chat.NewService(echoCompleter(), testWelcome)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	got, err := svc.GetSession(ctx, session.ID())
	if err != nil {
		t.Fatalf("GetSession err: %v", err)
	}

	if got.ID() != session.ID() {
		t.Fatalf("unexpected session ID: got %s want %s", got.ID(), session.ID())
	}
	if svc.Count() != 1 {
		t.Fatalf("unexpected session count: %d", svc.Count())
	}
}

func TestServiceGetSessionNotFound(t *testing.T) {
	svc := chat.NewService(echoCompleter(), testWelcome)
	ctx := context.Background()

	if _, err := svc.GetSession(ctx, "missing"); !errors.Is(err, chat.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestServiceCloseSession(t *testing.T) {
	svc := chat.NewService(echoCompleter(), testWelcome)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}
	if err := svc.CloseSession(ctx, session.ID()); err != nil {
		t.Fatalf("CloseSession err: %v", err)
	}
	if svc.Count() != 0 {
		t.Fatalf("session still registered")
	}
	if err := svc.CloseSession(ctx, session.ID()); !errors.Is(err, chat.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound on second close, got %v", err)
	}
	if err := session.Submit(ctx, "hello"); !errors.Is(err, chat.ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
}

func TestServiceSessionsAreIndependent(t *testing.T) {
	svc := chat.NewService(echoCompleter(), testWelcome)
	ctx := context.Background()

	first, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}
	second, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}
	if first.ID() == second.ID() {
		t.Fatalf("sessions share an ID")
	}

	if err := first.Submit(ctx, "hi"); err != nil {
		t.Fatalf("Submit err: %v", err)
	}
	if got := len(second.Snapshot().Messages); got != 1 {
		t.Fatalf("second session transcript changed: %d messages", got)
	}
}
