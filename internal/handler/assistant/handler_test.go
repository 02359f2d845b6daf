package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/trainloop/fitcoach/internal/alert"
	"github.com/trainloop/fitcoach/internal/command"
	assistantsvc "github.com/trainloop/fitcoach/internal/service/assistant"
	"github.com/trainloop/fitcoach/internal/service/coach"
	sessionsvc "github.com/trainloop/fitcoach/internal/service/session"
	"github.com/trainloop/fitcoach/internal/store"
)

func setupRouter(t *testing.T, initialize bool) (*chi.Mux, *assistantsvc.Service) {
	t.Helper()

	dispatcher := command.NewDispatcher()
	command.RegisterDefaultHandlers(dispatcher, alert.StaticAlerter{})

	svc := assistantsvc.New(assistantsvc.Deps{
		Sessions:    sessionsvc.NewStore(),
		Registry:    command.NewRegistry(command.DefaultBindings()),
		Dispatcher:  dispatcher,
		Responder:   coach.NewCannedResponder(rand.NewSource(3)),
		Analyzer:    coach.CannedAnalyzer{},
		Planner:     coach.CannedPlanner{},
		Transcriber: &coach.CannedTranscriber{},
		KV:          store.NewMemory(),
	})
	if initialize {
		if result := svc.Initialize(context.Background()); !result.Success {
			t.Fatalf("Initialize failed: %s", result.Error)
		}
	}

	r := chi.NewRouter()
	New(svc).RegisterRoutes(r)
	return r, svc
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestCreateCoachingSession(t *testing.T) {
	r, _ := setupRouter(t, true)

	resp := doJSON(t, r, http.MethodPost, "/coach/session", map[string]any{
		"context": map[string]string{"goal": "endurance"},
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var result assistantsvc.SessionResult
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !result.Success || result.Session == nil || result.Session.ID == "" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestCreateSessionBeforeInitialize(t *testing.T) {
	r, _ := setupRouter(t, false)

	resp := doJSON(t, r, http.MethodPost, "/coach/session", map[string]any{})
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}

func TestCoachingMessageFlow(t *testing.T) {
	r, svc := setupRouter(t, true)

	started := svc.StartCoachingSession(context.Background(), nil)

	resp := doJSON(t, r, http.MethodPost, "/coach/messages", map[string]string{
		"sessionId": started.Session.ID,
		"text":      "how do I improve my squat",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var result assistantsvc.MessageResult
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !result.Success || result.Response == "" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestCoachingMessageUnknownSession(t *testing.T) {
	r, _ := setupRouter(t, true)

	resp := doJSON(t, r, http.MethodPost, "/coach/messages", map[string]string{
		"sessionId": "missing",
		"text":      "hello",
	})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestCoachingMessageMissingFields(t *testing.T) {
	r, _ := setupRouter(t, true)

	resp := doJSON(t, r, http.MethodPost, "/coach/messages", map[string]string{})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestVoiceCommandEndpoint(t *testing.T) {
	r, svc := setupRouter(t, true)

	started := svc.StartVoiceRecognition(context.Background())

	resp := doJSON(t, r, http.MethodPost, "/voice/command", map[string]any{
		"sessionId": started.Session.ID,
		"audio":     []byte{0x01},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var result assistantsvc.CommandResult
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !result.Matched || result.Action != "startWorkout" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestSessionLifecycleEndpoints(t *testing.T) {
	r, svc := setupRouter(t, true)

	started := svc.StartCoachingSession(context.Background(), nil)
	id := started.Session.ID

	resp := doJSON(t, r, http.MethodGet, "/sessions/"+id, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	resp = doJSON(t, r, http.MethodDelete, "/sessions/"+id, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 on first delete, got %d", resp.Code)
	}

	resp = doJSON(t, r, http.MethodDelete, "/sessions/"+id, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", resp.Code)
	}

	resp = doJSON(t, r, http.MethodGet, "/sessions/"+id, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.Code)
	}
}

func TestListSessions(t *testing.T) {
	r, svc := setupRouter(t, true)
	ctx := context.Background()

	svc.StartCoachingSession(ctx, nil)
	svc.StartVoiceRecognition(ctx)

	resp := doJSON(t, r, http.MethodGet, "/sessions", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var result assistantsvc.SessionListResult
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(result.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(result.Sessions))
	}
}

func TestAnalysisEndpointRequiresMediaRef(t *testing.T) {
	r, _ := setupRouter(t, true)

	resp := doJSON(t, r, http.MethodPost, "/analysis/form", map[string]string{})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	resp = doJSON(t, r, http.MethodPost, "/analysis/form", map[string]string{"mediaRef": "media://clip"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestGenerateWorkoutEndpoint(t *testing.T) {
	r, _ := setupRouter(t, true)

	resp := doJSON(t, r, http.MethodPost, "/workouts/generate", map[string]any{
		"profile":   map[string]any{"level": "beginner"},
		"goals":     []string{"general fitness"},
		"equipment": []string{"dumbbell"},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var result assistantsvc.WorkoutResult
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Workout == nil || len(result.Workout.Exercises) == 0 {
		t.Fatalf("unexpected workout: %+v", result)
	}
}
