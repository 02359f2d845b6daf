package voice

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	assistantsvc "github.com/trainloop/fitcoach/internal/service/assistant"
	"github.com/trainloop/fitcoach/pkg/utils"
)

// Handler drives a live voice session over WebSocket: each inbound frame
// carries an utterance (or raw audio) and the command outcome is pushed
// back on the same connection.
type Handler struct {
	svc      *assistantsvc.Service
	upgrader websocket.Upgrader
}

// New creates the voice WebSocket handler.
func New(svc *assistantsvc.Service) *Handler {
	return &Handler{
		svc: svc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the WebSocket endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/voice/ws/{sessionID}", h.handleWebSocket)
}

type inboundFrame struct {
	Type      string `json:"type"` // "utterance", "audio", or "end"
	Text      string `json:"text,omitempty"`
	Audio     []byte `json:"audio,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

type outboundFrame struct {
	Type   string                     `json:"type"`
	Result assistantsvc.CommandResult `json:"result"`
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "sessionID is required")
		return
	}

	if lookup := h.svc.GetActiveSession(r.Context(), sessionID); !lookup.Success {
		utils.RespondError(w, http.StatusNotFound, lookup.Error)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for session=%s: %v", sessionID, err)
		return
	}
	defer conn.Close()

	log.Printf("[ws] voice channel open session=%s", sessionID)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[ws] read error session=%s: %v", sessionID, err)
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			h.writeResult(conn, assistantsvc.CommandResult{Error: "invalid frame"})
			continue
		}

		switch frame.Type {
		case "utterance":
			result := h.svc.ProcessUtterance(r.Context(), sessionID, frame.Text)
			h.writeResult(conn, result)
		case "audio":
			result := h.svc.ProcessVoiceCommand(r.Context(), sessionID, frame.Audio)
			h.writeResult(conn, result)
		case "end":
			h.svc.EndSession(r.Context(), sessionID)
			log.Printf("[ws] voice channel closed session=%s", sessionID)
			return
		default:
			h.writeResult(conn, assistantsvc.CommandResult{Error: "unsupported frame type: " + frame.Type})
		}
	}
}

func (h *Handler) writeResult(conn *websocket.Conn, result assistantsvc.CommandResult) {
	if err := conn.WriteJSON(outboundFrame{Type: "command_result", Result: result}); err != nil {
		log.Printf("[ws] write failed: %v", err)
	}
}
