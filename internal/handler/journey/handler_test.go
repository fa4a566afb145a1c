package journey

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"

	"github.com/coordinator-insight/backend/internal/model/journey"
)

func setupRouter() *chi.Mux {
	r := chi.NewRouter()
	New().RegisterRoutes(r)
	return r
}

func TestJourneyByPerspective(t *testing.T) {
	r := setupRouter()
	for _, p := range []journey.Perspective{journey.Career, journey.Patient} {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/journeys/"+string(p), nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", p, resp.Code)
		}
		var got journey.ContentSet
		if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if diff := cmp.Diff(journey.For(p), got); diff != "" {
			t.Fatalf("%s content mismatch (-want +got):\n%s", p, diff)
		}
	}
}

func TestJourneyUnknownPerspective(t *testing.T) {
	resp := httptest.NewRecorder()
	setupRouter().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/journeys/donor", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestSkills(t *testing.T) {
	resp := httptest.NewRecorder()
	setupRouter().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/skills", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var got struct {
		Skills     []journey.Skill `json:"skills"`
		GoldenHour journey.Callout `json:"goldenHour"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(journey.Skills(), got.Skills); diff != "" {
		t.Fatalf("skills mismatch (-want +got):\n%s", diff)
	}
	if got.GoldenHour.Title != journey.GoldenHour().Title {
		t.Fatalf("unexpected callout: %+v", got.GoldenHour)
	}
}
