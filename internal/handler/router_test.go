package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	modelchat "github.com/coordinator-insight/backend/internal/model/chat"
	"github.com/coordinator-insight/backend/internal/model/persona"
	chatService "github.com/coordinator-insight/backend/internal/service/chat"
)

type staticCompleter string

func (s staticCompleter) Complete(context.Context, []modelchat.Turn, string) (string, error) {
	return string(s), nil
}

func newTestRouter() http.Handler {
	store := persona.NewMemoryStore(persona.Seed())
	return NewRouter(Dependencies{
		Personas:       store,
		Chat:           chatService.NewService(staticCompleter("ok"), store.Default().Welcome),
		AllowedOrigins: []string{"https://coordinator.example"},
	})
}

func TestRouterRoutes(t *testing.T) {
	r := newTestRouter()

	cases := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/api/personas", http.StatusOK},
		{http.MethodGet, "/api/journeys/career", http.StatusOK},
		{http.MethodGet, "/api/journeys/patient", http.StatusOK},
		{http.MethodGet, "/api/skills", http.StatusOK},
		{http.MethodPost, "/api/sessions", http.StatusCreated},
		{http.MethodGet, "/api/sessions/unknown", http.StatusNotFound},
		{http.MethodGet, "/api/nothing", http.StatusNotFound},
	}
	for _, tc := range cases {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, tc.status, resp.Code, "%s %s", tc.method, tc.path)
	}
}

func TestRouterAppliesCORS(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/skills", nil)
	req.Header.Set("Origin", "https://coordinator.example")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "https://coordinator.example", resp.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthzReportsSessions(t *testing.T) {
	r := newTestRouter()
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/sessions", nil))

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.True(t, strings.Contains(resp.Body.String(), `"sessions":1`), resp.Body.String())
}
