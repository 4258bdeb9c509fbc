package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/http/requestutil"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/logging"
)

// Refresher triggers an out-of-band fetch.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	refresher Refresher
	state     StateSource
	token     string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(refresher Refresher, state StateSource, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refresher: refresher,
		state:     state,
		token:     token,
		logger:    logger,
	}
}

// Refresh runs one fetch immediately and reports the resulting phase.
// Guarded by ADMIN_TOKEN; returns 401 if missing/invalid.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "refresh not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	if err := h.refresher.Refresh(r.Context()); err != nil {
		logging.Warn(logger, "admin refresh failed", slog.Any("err", err))
		writeError(w, r, http.StatusBadGateway, err.Error(), logger)
		return
	}

	body := map[string]any{"status": "ok"}
	if h.state != nil {
		state := h.state.Snapshot()
		body["phase"] = state.Phase.String()
		body["games"] = len(state.Games)
	}
	writeJSON(w, http.StatusOK, body, logger)
	logging.Info(logger, "admin refresh complete")
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got := r.Header.Get("Authorization")
	want := "Bearer " + h.token
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
