package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/itchan-dev/msgboard/shared/logger"
	"github.com/itchan-dev/msgboard/shared/utils"
)

const readyTimeout = 2 * time.Second

// Health answers as long as the process serves http.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteText(w, "ok")
}

// Ready pings the board store and answers 503 while it is unreachable.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := h.health.Ping(ctx); err != nil {
		logger.Log.Warn("store is not ready", "error", err)
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	utils.WriteText(w, "ok")
}
