package handlers

import (
	"log/slog"
	nethttp "net/http"
	"net/url"
	"strings"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/dashboard"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/games"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/leaders"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/logging"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/poller"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/present"
)

// StateSource yields the current dashboard snapshot.
type StateSource interface {
	Snapshot() dashboard.State
}

// Handler wires HTTP routes to the dashboard state.
type Handler struct {
	state    StateSource
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler with defaults.
func NewHandler(state StateSource, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		state:    state,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Register mounts the public routes on mux.
func (h *Handler) Register(mux *nethttp.ServeMux) {
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/ready", h.Ready)
	mux.HandleFunc("/api/stats", h.Stats)
	mux.HandleFunc("/dashboard", h.Dashboard)
	mux.HandleFunc("/games", h.GamesToday)
	mux.HandleFunc("/games/today", h.GamesToday)
	mux.HandleFunc("/games/", h.GameByID)
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Stats serves the latest settled payload in the upstream wire shape.
func (h *Handler) Stats(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	state := h.snapshot()
	logger := loggerFromContext(r, h.logger)
	logging.Info(logger, "served stats",
		logging.FieldPhase, state.Phase.String(),
		logging.FieldCount, len(state.Games),
	)
	writeJSON(w, statusForPhase(state.Phase), state.Payload(), h.logger)
}

// Dashboard serves the view model for one tab: ?tab=<category|All Stats>&sort=<column>&dir=<asc|desc>.
func (h *Handler) Dashboard(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	q := r.URL.Query()
	state := h.snapshot()
	view := present.Build(state, q.Get("tab"), nil)

	if raw := strings.TrimSpace(q.Get("sort")); raw != "" {
		col, ok := leaders.ParseColumn(raw)
		if !ok {
			writeError(w, r, nethttp.StatusBadRequest, "unknown sort column", h.logger)
			return
		}
		dir := leaders.ParseDirection(q.Get("dir"))
		if dir == leaders.DirectionNone {
			dir = leaders.DirectionDescending
		}
		sorts := present.Sorts{view.ActiveTab: {Column: col, Direction: dir}}
		view = present.Build(state, view.ActiveTab, sorts)
	}
	writeJSON(w, statusForPhase(state.Phase), view, h.logger)
}

// GamesToday returns the scoreboard for the latest known games.
func (h *Handler) GamesToday(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	state := h.snapshot()
	logger := loggerFromContext(r, h.logger)
	logging.Info(logger, "served scoreboard", logging.FieldCount, len(state.Games))
	writeJSON(w, nethttp.StatusOK, present.BuildScoreboard(state.Games), h.logger)
}

// GameByID returns a specific game if present.
func (h *Handler) GameByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	// Expect path: /games/{id}
	path := strings.TrimPrefix(r.URL.Path, "/games")
	if path == "" || path == "/" {
		writeError(w, r, nethttp.StatusBadRequest, "invalid game id", h.logger)
		return
	}

	id, err := url.PathUnescape(strings.TrimPrefix(path, "/"))
	if err != nil || id == "" || strings.ContainsAny(id, " \t/") {
		writeError(w, r, nethttp.StatusBadRequest, "invalid game id", h.logger)
		return
	}

	game, ok := games.FindByID(h.snapshot().Games, id)
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "game not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, present.BuildScoreCard(game), h.logger)
}

func (h *Handler) snapshot() dashboard.State {
	if h.state == nil {
		return dashboard.Initial()
	}
	return h.state.Snapshot()
}

func statusForPhase(p dashboard.Phase) int {
	switch p {
	case dashboard.PhaseError:
		return nethttp.StatusBadGateway
	case dashboard.PhaseLoading:
		return nethttp.StatusServiceUnavailable
	default:
		return nethttp.StatusOK
	}
}
