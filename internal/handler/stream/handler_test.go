package stream

import (
	"context"
	"math/rand"
	"net/http/httptest"
	"strings"
	"testing"

	model "github.com/trainloop/fitcoach/internal/model/session"
	"github.com/trainloop/fitcoach/internal/service/coach"
	sessionsvc "github.com/trainloop/fitcoach/internal/service/session"
)

func TestHandleStreamRequestFallback(t *testing.T) {
	sessions := sessionsvc.NewStore()
	responder := coach.NewCannedResponder(rand.NewSource(5))
	h := New(nil, responder, sessions)
	ctx := context.Background()

	sess, err := sessions.Create(ctx, model.KindCoaching, nil)
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}

	resp := httptest.NewRecorder()
	if err := h.HandleStreamRequest(ctx, resp, sess.ID, "how many rest days do I need"); err != nil {
		t.Fatalf("HandleStreamRequest err: %v", err)
	}

	if ct := resp.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("unexpected content type: %s", ct)
	}

	body := resp.Body.String()
	for _, event := range []string{`"event":"start"`, `"event":"chunk"`, `"event":"done"`} {
		if !strings.Contains(body, event) {
			t.Fatalf("missing %s in stream:\n%s", event, body)
		}
	}

	updated, err := sessions.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if len(updated.Transcript) != 2 {
		t.Fatalf("expected user+assistant entries, got %d", len(updated.Transcript))
	}
	if updated.Transcript[1].Role != model.RoleAssistant {
		t.Fatalf("unexpected final entry: %+v", updated.Transcript[1])
	}
}

func TestHandleStreamRequestUnknownSession(t *testing.T) {
	sessions := sessionsvc.NewStore()
	h := New(nil, coach.NewCannedResponder(rand.NewSource(5)), sessions)

	resp := httptest.NewRecorder()
	err := h.HandleStreamRequest(context.Background(), resp, "missing", "hello")
	if err == nil {
		t.Fatal("expected error for unknown session")
	}
	if !strings.Contains(resp.Body.String(), `"event":"error"`) {
		t.Fatalf("expected error event in stream:\n%s", resp.Body.String())
	}
}
