// Package ws pushes dashboard state to browser clients over websockets.
package ws

import (
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/dashboard"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/stats"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/logging"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/metrics"
)

// MessageTypeState tags every pushed frame.
const MessageTypeState = "state"

// Message is the frame sent to clients on connect and on every state change.
type Message struct {
	Type       string        `json:"type"`
	Seq        uint64        `json:"seq"`
	Phase      string        `json:"phase"`
	Refreshing bool          `json:"refreshing"`
	UpdatedAt  string        `json:"updatedAt,omitempty"`
	Data       stats.Payload `json:"data"`
}

// NewMessage renders a state into a frame.
func NewMessage(s dashboard.State) Message {
	msg := Message{
		Type:       MessageTypeState,
		Seq:        s.Seq,
		Phase:      s.Phase.String(),
		Refreshing: s.Refreshing,
		Data:       s.Payload(),
	}
	if !s.UpdatedAt.IsZero() {
		msg.UpdatedAt = s.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return msg
}

// StateSource yields the current dashboard snapshot.
type StateSource interface {
	Snapshot() dashboard.State
}

// Hub tracks connected clients and fans state out to them. Slow clients
// are disconnected rather than allowed to block a publish.
type Hub struct {
	state    StateSource
	logger   *slog.Logger
	recorder *metrics.Recorder
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool
	lastSeq uint64
}

// NewHub builds a hub. origins restricts the Origin header; "*" or an empty
// list accepts any origin.
func NewHub(state StateSource, logger *slog.Logger, recorder *metrics.Recorder, origins []string) *Hub {
	h := &Hub{
		state:    state,
		logger:   logger,
		recorder: recorder,
		clients:  make(map[*client]struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(origins),
	}
	return h
}

func originChecker(origins []string) func(r *http.Request) bool {
	if len(origins) == 0 || slices.Contains(origins, "*") {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(origins, origin)
	}
}

// ServeHTTP upgrades the request and streams state frames until the peer
// goes away. The current snapshot is sent first.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn(logging.FromContext(r.Context(), h.logger), "websocket upgrade failed", "err", err)
		return
	}

	c := newClient(uuid.New().String(), conn, h.logger)
	if !h.register(c) {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		_ = conn.Close()
		return
	}

	go c.writePump()
	go c.readPump(func() { h.unregister(c) })
}

// Publish sends the state to every client without blocking. States older
// than the last one published are dropped.
func (h *Hub) Publish(s dashboard.State) {
	msg, err := encode(s)
	if err != nil {
		logging.Error(h.logger, "encode websocket message failed", err, logging.FieldSeq, s.Seq)
		return
	}

	var slow []*client
	sent := 0
	h.mu.Lock()
	if s.Seq < h.lastSeq {
		h.mu.Unlock()
		logging.Info(h.logger, "dropped stale websocket state", logging.FieldSeq, s.Seq, "published_seq", h.lastSeq)
		return
	}
	h.lastSeq = s.Seq
	for c := range h.clients {
		if c.trySend(msg) {
			sent++
			continue
		}
		slow = append(slow, c)
	}
	h.mu.Unlock()

	for _, c := range slow {
		logging.Warn(h.logger, "dropping slow websocket client", logging.FieldClientID, c.id)
		h.unregister(c)
	}
	if h.recorder != nil {
		h.recorder.RecordBroadcast(sent)
	}
}

// ClientCount reports connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
	logging.Info(h.logger, "websocket hub closed")
}

// register adds the client and queues the current snapshot for it.
func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	if h.state != nil {
		if msg, err := encode(h.state.Snapshot()); err == nil {
			c.trySend(msg)
		}
	}
	logging.Info(h.logger, "websocket client connected", logging.FieldClientID, c.id, logging.FieldCount, len(h.clients))
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	logging.Info(h.logger, "websocket client disconnected", logging.FieldClientID, c.id, logging.FieldCount, len(h.clients))
}

func encode(s dashboard.State) ([]byte, error) {
	return sonic.Marshal(NewMessage(s))
}
