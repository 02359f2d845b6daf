package voice

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/trainloop/fitcoach/internal/alert"
	"github.com/trainloop/fitcoach/internal/command"
	assistantsvc "github.com/trainloop/fitcoach/internal/service/assistant"
	"github.com/trainloop/fitcoach/internal/service/coach"
	sessionsvc "github.com/trainloop/fitcoach/internal/service/session"
	"github.com/trainloop/fitcoach/internal/store"
)

func setupService(t *testing.T) *assistantsvc.Service {
	t.Helper()

	dispatcher := command.NewDispatcher()
	command.RegisterDefaultHandlers(dispatcher, alert.StaticAlerter{})

	svc := assistantsvc.New(assistantsvc.Deps{
		Sessions:    sessionsvc.NewStore(),
		Registry:    command.NewRegistry(command.DefaultBindings()),
		Dispatcher:  dispatcher,
		Responder:   coach.NewCannedResponder(rand.NewSource(9)),
		Analyzer:    coach.CannedAnalyzer{},
		Planner:     coach.CannedPlanner{},
		Transcriber: &coach.CannedTranscriber{},
		KV:          store.NewMemory(),
	})
	if result := svc.Initialize(context.Background()); !result.Success {
		t.Fatalf("Initialize failed: %s", result.Error)
	}
	return svc
}

func TestWebSocketUtteranceRoundTrip(t *testing.T) {
	svc := setupService(t)
	started := svc.StartVoiceRecognition(context.Background())

	r := chi.NewRouter()
	New(svc).RegisterRoutes(r)
	server := httptest.NewServer(r)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/voice/ws/" + started.Session.ID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial err: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(inboundFrame{Type: "utterance", Text: "please start workout"}); err != nil {
		t.Fatalf("write err: %v", err)
	}

	var frame outboundFrame
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read err: %v", err)
	}
	if frame.Type != "command_result" {
		t.Fatalf("unexpected frame type: %s", frame.Type)
	}
	if !frame.Result.Matched || frame.Result.Action != "startWorkout" {
		t.Fatalf("unexpected result: %+v", frame.Result)
	}
	if frame.Result.Message != "Workout session started" {
		t.Fatalf("unexpected message: %q", frame.Result.Message)
	}
}

func TestWebSocketEndFrameClosesSession(t *testing.T) {
	svc := setupService(t)
	started := svc.StartVoiceRecognition(context.Background())

	r := chi.NewRouter()
	New(svc).RegisterRoutes(r)
	server := httptest.NewServer(r)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/voice/ws/" + started.Session.ID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial err: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(inboundFrame{Type: "end"}); err != nil {
		t.Fatalf("write err: %v", err)
	}

	// The server closes the connection after ending the session.
	if err := conn.ReadJSON(&outboundFrame{}); err == nil {
		t.Fatal("expected connection close after end frame")
	}

	lookup := svc.GetActiveSession(context.Background(), started.Session.ID)
	if lookup.Success {
		t.Fatal("session should be gone after end frame")
	}
}

func TestWebSocketUnknownSessionRejected(t *testing.T) {
	svc := setupService(t)

	r := chi.NewRouter()
	New(svc).RegisterRoutes(r)
	server := httptest.NewServer(r)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/voice/ws/missing"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("expected dial to fail for unknown session")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 rejection, got %+v", resp)
	}
}
