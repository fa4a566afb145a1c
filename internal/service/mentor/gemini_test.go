package mentor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coordinator-insight/backend/internal/model/chat"
)

type geminiBody struct {
	Contents []struct {
		Role  string `json:"role"`
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
	SystemInstruction *struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"systemInstruction"`
}

func TestGeminiBackendGenerate(t *testing.T) {
	var body geminiBody
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"The golden hour refers to..."}]}}]}`))
	}))
	defer srv.Close()

	backend := NewGeminiBackend("test-key", srv.URL)
	reply, err := backend.Generate(context.Background(), Request{
		Model:             "gemini-test",
		SystemInstruction: "be a mentor",
		Temperature:       0.7,
		History: []chat.Turn{
			{Role: chat.RoleAssistant, Content: "Welcome!"},
			{Role: chat.RoleUser, Content: "hello"},
		},
		Message: "What is the golden hour?",
	})

	require.NoError(t, err)
	assert.Equal(t, "The golden hour refers to...", reply)

	require.Len(t, body.Contents, 3)
	assert.Equal(t, "model", body.Contents[0].Role)
	assert.Equal(t, "user", body.Contents[1].Role)
	assert.Equal(t, "user", body.Contents[2].Role)
	assert.Equal(t, "What is the golden hour?", body.Contents[2].Parts[0].Text)
	require.NotNil(t, body.SystemInstruction)
	assert.Equal(t, "be a mentor", body.SystemInstruction.Parts[0].Text)
}

func TestGeminiBackendRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer srv.Close()

	_, err := NewGeminiBackend("test-key", srv.URL).Generate(context.Background(), Request{Message: "hi"})
	require.Error(t, err)
	assert.Equal(t, KindRateLimited, KindOf(err))
}

func TestGeminiBackendMissingKeyFailsOnCall(t *testing.T) {
	backend := NewGeminiBackend("  ", "")

	_, err := backend.Generate(context.Background(), Request{Message: "hi"})
	require.ErrorIs(t, err, ErrMissingCredential)
	assert.Equal(t, KindAuth, KindOf(err))
}
