package chat

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/coordinator-insight/backend/pkg/utils"
)

const heartbeatInterval = 15 * time.Second

// handleEvents streams session snapshots over SSE. The stream ends with a
// "closed" event once the session is deleted.
func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	session, ok := h.lookup(w, r)
	if !ok {
		return
	}

	utils.SetupSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	watcher := session.Watch()
	defer watcher.Close()

	ctx := r.Context()
	logger := h.logger.With(zap.String("session", session.ID()))
	logger.Debug("opening event stream")

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	var sent uint64
	first := true
	for {
		select {
		case <-ctx.Done():
			logger.Debug("closing event stream")
			return
		case <-watcher.Ready():
			snap := watcher.Latest()
			if !first && snap.Version <= sent {
				continue
			}
			if err := utils.SendSSEEvent(w, flusher, "snapshot", snap); err != nil {
				logger.Debug("event stream write failed", zap.Error(err))
				return
			}
			sent, first = snap.Version, false
			if snap.Closed {
				_ = utils.SendSSEEvent(w, flusher, "closed", map[string]string{"sessionId": snap.SessionID})
				logger.Debug("session closed, ending event stream")
				return
			}
		case <-ticker.C:
			if err := utils.SendSSEComment(w, flusher, "heartbeat"); err != nil {
				return
			}
		}
	}
}
