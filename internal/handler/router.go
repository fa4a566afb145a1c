package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/coordinator-insight/backend/internal/handler/chat"
	"github.com/coordinator-insight/backend/internal/handler/journey"
	"github.com/coordinator-insight/backend/internal/handler/persona"
	middlewarePkg "github.com/coordinator-insight/backend/internal/middleware"
	personaModel "github.com/coordinator-insight/backend/internal/model/persona"
	chatService "github.com/coordinator-insight/backend/internal/service/chat"
	"github.com/coordinator-insight/backend/pkg/utils"
)

// Dependencies groups what the router wires into handlers.
type Dependencies struct {
	Personas       personaModel.Store
	Chat           *chatService.Service
	AllowedOrigins []string
	Logger         *zap.Logger
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Dependencies) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(deps.AllowedOrigins))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]any{
			"status":   "ok",
			"sessions": deps.Chat.Count(),
		})
	})

	personaHandler := persona.New(deps.Personas)
	journeyHandler := journey.New()
	chatHandler := chat.New(deps.Chat, logger, middlewarePkg.OriginChecker(deps.AllowedOrigins))

	r.Route("/api", func(api chi.Router) {
		personaHandler.RegisterRoutes(api)
		journeyHandler.RegisterRoutes(api)
		chatHandler.RegisterRoutes(api)
	})

	return r
}
