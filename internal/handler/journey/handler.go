package journey

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/coordinator-insight/backend/internal/model/journey"
	"github.com/coordinator-insight/backend/pkg/utils"
)

// Handler serves career journey content.
type Handler struct{}

// New creates a journey handler.
func New() *Handler {
	return &Handler{}
}

// RegisterRoutes mounts the journey routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/journeys/{perspective}", h.handleJourney)
	r.Get("/skills", h.handleSkills)
}

func (h *Handler) handleJourney(w http.ResponseWriter, r *http.Request) {
	p, err := journey.Parse(chi.URLParam(r, "perspective"))
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, journey.For(p))
}

func (h *Handler) handleSkills(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"skills":     journey.Skills(),
		"goldenHour": journey.GoldenHour(),
	})
}
