package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/dashboard"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/metrics"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/testutil"
)

func dial(t *testing.T, srv *httptest.Server, header http.Header) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg Message
	require.NoError(t, sonic.Unmarshal(data, &msg))
	return msg
}

func TestHubSendsSnapshotOnConnect(t *testing.T) {
	c := testutil.NewController(t, testutil.SamplePayload("game-1"))
	hub := NewHub(c, nil, nil, nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	msg := readMessage(t, dial(t, srv, nil))

	assert.Equal(t, MessageTypeState, msg.Type)
	assert.Equal(t, "ready", msg.Phase)
	assert.Equal(t, testutil.TipoffText, msg.UpdatedAt)
	require.NotNil(t, msg.Data.Stats)
	assert.Equal(t, 2, msg.Data.Stats.Len())
	assert.Len(t, msg.Data.Games, 1)
}

func TestHubPublishesControllerUpdates(t *testing.T) {
	c := dashboard.NewController(nil, nil)
	rec := metrics.NewRecorder()
	hub := NewHub(c, nil, rec, []string{"*"})
	unsubscribe := c.Subscribe(hub.Publish)
	defer unsubscribe()
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	conn := dial(t, srv, nil)
	first := readMessage(t, conn)
	assert.Equal(t, "loading", first.Phase)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	seq := c.Begin()
	c.Complete(seq, testutil.SamplePayload("game-1"), nil)

	var got Message
	for i := 0; i < 4; i++ {
		got = readMessage(t, conn)
		if got.Phase == "ready" {
			break
		}
	}
	assert.Equal(t, "ready", got.Phase)
	assert.Equal(t, seq, got.Seq)
	assert.GreaterOrEqual(t, rec.Dashboard().Broadcasts, 1)
}

func TestHubRejectsUnknownOrigin(t *testing.T) {
	hub := NewHub(nil, nil, nil, []string{"https://allowed.example"})
	srv := httptest.NewServer(hub)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	header := http.Header{"Origin": []string{"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestHubDropsSlowClients(t *testing.T) {
	hub := NewHub(nil, nil, nil, nil)
	slow := &client{id: "slow", send: make(chan []byte, 1)}
	fast := &client{id: "fast", send: make(chan []byte, 4)}
	require.True(t, hub.register(slow))
	require.True(t, hub.register(fast))

	hub.Publish(dashboard.Initial())
	hub.Publish(dashboard.Initial())

	assert.Equal(t, 1, hub.ClientCount())
	assert.Len(t, fast.send, 2)
	_, open := <-slow.send
	assert.True(t, open, "queued frame stays readable")
	_, open = <-slow.send
	assert.False(t, open, "slow client channel is closed")
}

func TestHubCloseRejectsNewClients(t *testing.T) {
	hub := NewHub(nil, nil, nil, nil)
	c := &client{id: "a", send: make(chan []byte, 1)}
	require.True(t, hub.register(c))

	hub.Close()
	hub.Close()

	assert.Equal(t, 0, hub.ClientCount())
	assert.False(t, hub.register(&client{id: "b", send: make(chan []byte, 1)}))
	hub.unregister(c)
}

func TestNewMessageCarriesPayload(t *testing.T) {
	msg := NewMessage(dashboard.Initial())
	assert.Equal(t, "loading", msg.Phase)
	assert.Equal(t, dashboard.MessageLoading, msg.Data.Error)
	assert.Empty(t, msg.UpdatedAt)
}

type stateStub struct{ state dashboard.State }

func (s stateStub) Snapshot() dashboard.State { return s.state }

func TestHubDropsOlderStates(t *testing.T) {
	hub := NewHub(nil, nil, nil, nil)
	c := &client{id: "a", send: make(chan []byte, 4)}
	require.True(t, hub.register(c))

	hub.Publish(dashboard.State{Phase: dashboard.PhaseReady, Seq: 2})
	hub.Publish(dashboard.State{Phase: dashboard.PhaseReady, Seq: 1})
	hub.Publish(dashboard.State{Phase: dashboard.PhaseReady, Seq: 2, Refreshing: true})

	require.Len(t, c.send, 2)
	var msg Message
	require.NoError(t, sonic.Unmarshal(<-c.send, &msg))
	assert.Equal(t, uint64(2), msg.Seq)
	require.NoError(t, sonic.Unmarshal(<-c.send, &msg))
	assert.Equal(t, uint64(2), msg.Seq)
	assert.True(t, msg.Refreshing)
}

func TestHubQueuesSnapshotOnRegister(t *testing.T) {
	hub := NewHub(stateStub{state: dashboard.State{Phase: dashboard.PhaseReady, Seq: 7}}, nil, nil, nil)
	c := &client{id: "a", send: make(chan []byte, 1)}
	require.True(t, hub.register(c))
	hub.Close()

	data, open := <-c.send
	require.True(t, open)
	var msg Message
	require.NoError(t, sonic.Unmarshal(data, &msg))
	assert.Equal(t, uint64(7), msg.Seq)
	_, open = <-c.send
	assert.False(t, open)
}
