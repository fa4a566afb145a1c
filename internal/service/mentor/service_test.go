package mentor

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coordinator-insight/backend/internal/model/chat"
	"github.com/coordinator-insight/backend/internal/model/persona"
)

func TestCompleteBuildsRequest(t *testing.T) {
	var got Request
	backend := BackendFunc(func(_ context.Context, req Request) (string, error) {
		got = req
		return "The golden hour refers to...\n\n- Procurement\n", nil
	})
	svc := NewService(backend, persona.Seed()[0], Options{Model: "m-1"}, nil)

	history := []chat.Turn{{Role: chat.RoleAssistant, Content: "Welcome!"}}
	reply, err := svc.Complete(context.Background(), history, "What is the golden hour?")

	require.NoError(t, err)
	assert.Equal(t, "The golden hour refers to...\n\n- Procurement\n", reply)
	assert.Equal(t, "m-1", got.Model)
	assert.Equal(t, DefaultTemperature, got.Temperature)
	assert.Equal(t, history, got.History)
	assert.Equal(t, "What is the golden hour?", got.Message)
	assert.Equal(t, svc.SystemInstruction(), got.SystemInstruction)
}

func TestCompleteClassifiesFailures(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind ErrorKind
	}{
		{"missing key", fmt.Errorf("gemini: %w", ErrMissingCredential), KindAuth},
		{"status 401 text", errors.New("API request failed with status 401"), KindAuth},
		{"quota", errors.New("rate limit exceeded (429)"), KindRateLimited},
		{"malformed", fmt.Errorf("decode: %w", ErrMalformedResponse), KindMalformedResponse},
		{"dial", &net.OpError{Op: "dial", Err: errors.New("connection refused")}, KindNetwork},
		{"deadline", context.DeadlineExceeded, KindNetwork},
		{"unknown", errors.New("boom"), KindNetwork},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			backend := BackendFunc(func(context.Context, Request) (string, error) { return "", tc.err })
			svc := NewService(backend, persona.Seed()[0], Options{}, nil)

			_, err := svc.Complete(context.Background(), nil, "hi")

			var mErr *Error
			require.ErrorAs(t, err, &mErr)
			assert.Equal(t, tc.kind, mErr.Kind)
			assert.Equal(t, tc.kind, KindOf(err))
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestBuildSystemPromptCarriesPersonaRules(t *testing.T) {
	prompt := BuildSystemPrompt(persona.Seed()[0])

	assert.Contains(t, prompt, "Senior Transplant Coordinator acting as a mentor")
	assert.Contains(t, prompt, "about the role of a Transplant Coordinator")
	assert.Contains(t, prompt, "under 150 words")
	assert.Contains(t, prompt, "respectfully decline and advise consulting a doctor")
}

func TestTemperatureOverride(t *testing.T) {
	var got float32
	backend := BackendFunc(func(_ context.Context, req Request) (string, error) {
		got = req.Temperature
		return "ok", nil
	})
	temperature := float32(0.3)
	svc := NewService(backend, persona.Seed()[0], Options{Temperature: &temperature}, nil)
	_, err := svc.Complete(context.Background(), nil, "hi")
	require.NoError(t, err)
	assert.InDelta(t, 0.3, got, 1e-6)
}

func TestTemperatureZeroIsSent(t *testing.T) {
	got := float32(-1)
	backend := BackendFunc(func(_ context.Context, req Request) (string, error) {
		got = req.Temperature
		return "ok", nil
	})
	zero := float32(0)
	svc := NewService(backend, persona.Seed()[0], Options{Temperature: &zero}, nil)
	_, err := svc.Complete(context.Background(), nil, "hi")
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestCompleteKeepsReplyWhitespace(t *testing.T) {
	backend := BackendFunc(func(context.Context, Request) (string, error) {
		return "  indented code\n", nil
	})
	svc := NewService(backend, persona.Seed()[0], Options{}, nil)
	reply, err := svc.Complete(context.Background(), nil, "hi")
	require.NoError(t, err)
	assert.Equal(t, "  indented code\n", reply)
}
