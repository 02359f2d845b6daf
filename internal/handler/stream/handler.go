package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	model "github.com/trainloop/fitcoach/internal/model/session"
	"github.com/trainloop/fitcoach/internal/service/coach"
	sessionsvc "github.com/trainloop/fitcoach/internal/service/session"
	"github.com/trainloop/fitcoach/pkg/utils"
)

// Handler streams coaching replies over Server-Sent Events. When an LLM
// responder with streaming enabled is attached, chunks flow as the model
// produces them; otherwise the fallback responder's reply is sent whole.
type Handler struct {
	llm      *coach.LLMResponder
	fallback coach.Responder
	sessions *sessionsvc.Store
}

// New creates the stream handler. llm may be nil.
func New(llm *coach.LLMResponder, fallback coach.Responder, sessions *sessionsvc.Store) *Handler {
	return &Handler{llm: llm, fallback: fallback, sessions: sessions}
}

// Response is one streamed chunk.
type Response struct {
	Event     string `json:"event"`
	Content   string `json:"content,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
	Finished  bool   `json:"finished,omitempty"`
	Error     string `json:"error,omitempty"`
}

// HandleStreamRequest streams the coach's reply to userMessage within the
// given session, persisting both turns to the transcript.
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, sessionID, userMessage string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming unsupported")
	}

	utils.SetupSSEHeaders(w)

	sess, err := h.sessions.Get(ctx, sessionID)
	if err != nil {
		h.sendError(w, flusher, err.Error())
		return err
	}

	sess, err = h.sessions.AppendMessage(ctx, sessionID, model.RoleUser, userMessage)
	if err != nil {
		h.sendError(w, flusher, err.Error())
		return err
	}

	utils.SendSSEChunk(w, flusher, Response{Event: "start", SessionID: sessionID})

	reply, err := h.streamReply(ctx, w, flusher, sessionID, userMessage, sess)
	if err != nil {
		h.sendError(w, flusher, fmt.Sprintf("reply generation failed: %v", err))
		return err
	}

	if _, err := h.sessions.AppendMessage(ctx, sessionID, model.RoleAssistant, reply); err != nil {
		log.Printf("[sse] failed to save coach reply: %v", err)
	}

	utils.SendSSEChunk(w, flusher, Response{Event: "done", SessionID: sessionID, Finished: true})
	return nil
}

func (h *Handler) streamReply(ctx context.Context, w http.ResponseWriter, flusher http.Flusher, sessionID, userMessage string, sess model.Session) (string, error) {
	if h.llm != nil && h.llm.StreamingEnabled() {
		reader, err := h.llm.Stream(ctx, userMessage, sess.Context, sess.Transcript)
		if err != nil {
			return "", err
		}
		defer reader.Close()

		var full strings.Builder
		for {
			chunk, err := reader.Recv()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return "", err
			}
			if chunk.Content == "" {
				continue
			}
			full.WriteString(chunk.Content)
			utils.SendSSEChunk(w, flusher, Response{Event: "chunk", Content: chunk.Content, SessionID: sessionID})
		}
		return full.String(), nil
	}

	reply, err := h.fallback.Respond(ctx, userMessage, sess.Context, sess.Transcript)
	if err != nil {
		return "", err
	}
	utils.SendSSEChunk(w, flusher, Response{Event: "chunk", Content: reply, SessionID: sessionID})
	return reply, nil
}

func (h *Handler) sendError(w http.ResponseWriter, flusher http.Flusher, message string) {
	utils.SendSSEChunk(w, flusher, Response{Event: "error", Error: message, Finished: true})
}
