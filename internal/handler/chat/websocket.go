package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	chatService "github.com/coordinator-insight/backend/internal/service/chat"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
	writeTimeout = 10 * time.Second
)

type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// handleWebSocket carries draft, submit and panel commands in and session
// snapshots out.
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookup(w, r)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	logger := h.logger.With(zap.String("session", session.ID()))
	logger.Debug("websocket connected")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	watcher := session.Watch()
	defer watcher.Close()

	out := make(chan outgoingMessage, 8)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		defer cancel()
		h.writeLoop(ctx, conn, session.ID(), watcher, out)
	}()

	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("websocket read error", zap.Error(err))
			}
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
		h.handleMessage(ctx, session, &msg, out)
	}

	cancel()
	<-writerDone
	logger.Debug("websocket disconnected")
}

func (h *Handler) handleMessage(ctx context.Context, session *chatService.Session, msg *inboundMessage, out chan<- outgoingMessage) {
	switch msg.Type {
	case "draft":
		var data struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			enqueue(ctx, out, errorMessage("invalid draft payload"))
			return
		}
		session.SetDraft(data.Text)
	case "submit":
		var data struct {
			Text *string `json:"text"`
		}
		if len(msg.Data) > 0 {
			if err := json.Unmarshal(msg.Data, &data); err != nil {
				enqueue(ctx, out, errorMessage("invalid submit payload"))
				return
			}
		}
		draft := session.Snapshot().Draft
		if data.Text != nil {
			draft = *data.Text
		}
		// the call outlives the connection; its result still lands in the session
		go func() {
			resp, err := submit(context.WithoutCancel(ctx), session, draft)
			if err != nil {
				enqueue(ctx, out, errorMessage(err.Error()))
				return
			}
			enqueue(ctx, out, outgoingMessage{Type: "submit", Data: resp, Timestamp: time.Now().Unix()})
		}()
	case "panel":
		var data struct {
			Open bool `json:"open"`
		}
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			enqueue(ctx, out, errorMessage("invalid panel payload"))
			return
		}
		if data.Open {
			session.OpenPanel()
		} else {
			session.ClosePanel()
		}
	default:
		enqueue(ctx, out, errorMessage("unsupported message type"))
	}
}

// writeLoop owns every write to conn. The final snapshot of a deleted session
// is followed by a close frame.
func (h *Handler) writeLoop(ctx context.Context, conn *websocket.Conn, sessionID string, watcher *chatService.Watcher, out <-chan outgoingMessage) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	var sent uint64
	first := true
	for {
		var (
			msg    outgoingMessage
			closed bool
		)
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeTimeout))
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
			continue
		case <-watcher.Ready():
			snap := watcher.Latest()
			if !first && snap.Version <= sent {
				continue
			}
			sent, first = snap.Version, false
			msg = outgoingMessage{Type: "snapshot", Data: snap}
			closed = snap.Closed
		case msg = <-out:
		}

		msg.SessionID = sessionID
		if msg.Timestamp == 0 {
			msg.Timestamp = time.Now().Unix()
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(msg); err != nil {
			h.logger.Debug("websocket write failed", zap.String("session", sessionID), zap.Error(err))
			return
		}

		if closed {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"),
				time.Now().Add(writeTimeout))
			// unblocks the read loop
			_ = conn.Close()
			return
		}
	}
}

func enqueue(ctx context.Context, out chan<- outgoingMessage, msg outgoingMessage) {
	select {
	case out <- msg:
	case <-ctx.Done():
	}
}

func errorMessage(message string) outgoingMessage {
	return outgoingMessage{
		Type:      "error",
		Data:      map[string]string{"message": message},
		Timestamp: time.Now().Unix(),
	}
}
