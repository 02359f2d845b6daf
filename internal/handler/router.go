package handler

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	assistanthandler "github.com/trainloop/fitcoach/internal/handler/assistant"
	"github.com/trainloop/fitcoach/internal/handler/stream"
	"github.com/trainloop/fitcoach/internal/handler/voice"
	middlewarePkg "github.com/trainloop/fitcoach/internal/middleware"
	assistantsvc "github.com/trainloop/fitcoach/internal/service/assistant"
	"github.com/trainloop/fitcoach/internal/service/coach"
	sessionsvc "github.com/trainloop/fitcoach/internal/service/session"
	"github.com/trainloop/fitcoach/pkg/utils"
)

// NewRouter wires HTTP routes to core services. llmResponder may be nil;
// streaming then falls back to the canned responder.
func NewRouter(svc *assistantsvc.Service, sessions *sessionsvc.Store, llmResponder *coach.LLMResponder, fallback coach.Responder) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	assistantHandler := assistanthandler.New(svc)
	voiceHandler := voice.New(svc)
	streamHandler := stream.New(llmResponder, fallback, sessions)

	r.Route("/api", func(api chi.Router) {
		assistantHandler.RegisterRoutes(api)
		voiceHandler.RegisterRoutes(api)

		api.Get("/coach/stream/{sessionID}", func(w http.ResponseWriter, r *http.Request) {
			sessionID := chi.URLParam(r, "sessionID")
			userMessage := r.URL.Query().Get("message")

			if userMessage == "" {
				utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
				return
			}

			if err := streamHandler.HandleStreamRequest(r.Context(), w, sessionID, userMessage); err != nil {
				log.Printf("[stream] error handling request: %v", err)
			}
		})

		api.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	return r
}
