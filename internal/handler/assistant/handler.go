package assistant

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/trainloop/fitcoach/internal/model/fitness"
	assistantsvc "github.com/trainloop/fitcoach/internal/service/assistant"
	"github.com/trainloop/fitcoach/pkg/utils"
)

// Handler exposes the assistant facade over REST.
type Handler struct {
	svc *assistantsvc.Service
}

// New creates the assistant handler.
func New(svc *assistantsvc.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the assistant routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/voice/session", h.handleStartVoice)
	r.Post("/voice/command", h.handleVoiceCommand)

	r.Post("/coach/session", h.handleStartCoaching)
	r.Post("/coach/messages", h.handleCoachingMessage)

	r.Post("/analysis/form", h.handleAnalyzeForm)
	r.Post("/analysis/photo", h.handleAnalyzePhoto)
	r.Post("/analysis/nutrition", h.handleAnalyzeNutrition)

	r.Post("/workouts/generate", h.handleGenerateWorkout)

	r.Get("/sessions", h.handleListSessions)
	r.Get("/sessions/{sessionID}", h.handleGetSession)
	r.Delete("/sessions/{sessionID}", h.handleEndSession)
}

func (h *Handler) handleStartVoice(w http.ResponseWriter, r *http.Request) {
	result := h.svc.StartVoiceRecognition(r.Context())
	if !result.Success {
		utils.RespondJSON(w, statusFor(result.Error), result)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, result)
}

func (h *Handler) handleVoiceCommand(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"sessionId"`
		Audio     []byte `json:"audio"` // base64-encoded by encoding/json
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := h.svc.ProcessVoiceCommand(r.Context(), payload.SessionID, payload.Audio)
	if result.Error != "" {
		utils.RespondJSON(w, statusFor(result.Error), result)
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) handleStartCoaching(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Context map[string]string `json:"context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := h.svc.StartCoachingSession(r.Context(), payload.Context)
	if !result.Success {
		utils.RespondJSON(w, statusFor(result.Error), result)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, result)
}

func (h *Handler) handleCoachingMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"sessionId"`
		Text      string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.SessionID == "" || payload.Text == "" {
		utils.RespondError(w, http.StatusBadRequest, "sessionId and text are required")
		return
	}

	result := h.svc.SendCoachingMessage(r.Context(), payload.SessionID, payload.Text)
	if !result.Success {
		utils.RespondJSON(w, statusFor(result.Error), result)
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) handleAnalyzeForm(w http.ResponseWriter, r *http.Request) {
	mediaRef, ok := decodeMediaRef(w, r)
	if !ok {
		return
	}
	result := h.svc.AnalyzeExerciseForm(r.Context(), mediaRef)
	if !result.Success {
		utils.RespondJSON(w, statusFor(result.Error), result)
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) handleAnalyzePhoto(w http.ResponseWriter, r *http.Request) {
	mediaRef, ok := decodeMediaRef(w, r)
	if !ok {
		return
	}
	result := h.svc.AnalyzeProgressPhoto(r.Context(), mediaRef)
	if !result.Success {
		utils.RespondJSON(w, statusFor(result.Error), result)
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) handleAnalyzeNutrition(w http.ResponseWriter, r *http.Request) {
	mediaRef, ok := decodeMediaRef(w, r)
	if !ok {
		return
	}
	result := h.svc.AnalyzeNutrition(r.Context(), mediaRef)
	if !result.Success {
		utils.RespondJSON(w, statusFor(result.Error), result)
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGenerateWorkout(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Profile   fitness.Profile `json:"profile"`
		Goals     []string        `json:"goals"`
		Equipment []string        `json:"equipment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := h.svc.GeneratePersonalizedWorkout(r.Context(), payload.Profile, payload.Goals, payload.Equipment)
	if !result.Success {
		utils.RespondJSON(w, statusFor(result.Error), result)
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	result := h.svc.GetAllActiveSessions(r.Context())
	if !result.Success {
		utils.RespondJSON(w, statusFor(result.Error), result)
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	result := h.svc.GetActiveSession(r.Context(), sessionID)
	if !result.Success {
		utils.RespondJSON(w, statusFor(result.Error), result)
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) handleEndSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	result := h.svc.EndSession(r.Context(), sessionID)
	if !result.Success {
		utils.RespondJSON(w, statusFor(result.Error), result)
		return
	}
	if result.Session == nil {
		// Already ended or never existed; ending is idempotent in effect.
		utils.RespondJSON(w, http.StatusNotFound, result)
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

func decodeMediaRef(w http.ResponseWriter, r *http.Request) (string, bool) {
	var payload struct {
		MediaRef string `json:"mediaRef"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return "", false
	}
	if payload.MediaRef == "" {
		utils.RespondError(w, http.StatusBadRequest, "mediaRef is required")
		return "", false
	}
	return payload.MediaRef, true
}

// statusFor maps facade error messages onto HTTP status codes. The facade
// reports taxonomy errors as strings, so the mapping is textual.
func statusFor(errMsg string) int {
	switch {
	case strings.Contains(errMsg, "not initialized"):
		return http.StatusServiceUnavailable
	case strings.Contains(errMsg, "session not found"):
		return http.StatusNotFound
	case strings.Contains(errMsg, "unknown action"):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
