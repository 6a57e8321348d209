package quiz

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/skillcheck-ai/skillcheck-api/internal/auth"
	"github.com/skillcheck-ai/skillcheck-api/internal/config"
)

// WSHandler streams session snapshots to the browser so the countdown
// stays server-authoritative. Answers may also arrive over the socket.
type WSHandler struct {
	service  Service
	upgrader websocket.Upgrader
}

func NewWSHandler(service Service) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and relays snapshots until the quiz ends
// or the client disconnects. Disconnecting does not abandon the quiz;
// the countdown keeps running server-side.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	updates, cancel, err := h.service.Subscribe(claims.UserID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage{Type: "error", Payload: errorPayload{Message: "no quiz in progress"}})
		return
	}
	defer cancel()

	send := make(chan outboundMessage, 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	// A single writer goroutine keeps websocket writes serialized.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case snap, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage{Type: "state", Payload: snap}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "answer":
			var payload AnswerRequest
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}}
				continue
			}
			snap, err := h.service.Answer(r.Context(), claims.UserID, payload.Answer)
			if err != nil {
				send <- outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			send <- outboundMessage{Type: "state", Payload: snap}
		default:
			send <- outboundMessage{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}
