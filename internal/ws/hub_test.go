package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnvelope struct {
	Type    string         `json:"type"`
	Payload RefreshPayload `json:"payload"`
}

func dialHub(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(h.ServeWS))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) testEnvelope {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var env testEnvelope
	require.NoError(t, json.Unmarshal(data, &env))
	return env
}

func TestHub_NotifyBumpsVersion(t *testing.T) {
	h := NewHub(zap.NewNop())
	defer h.Close()

	require.Equal(t, int64(0), h.Version())
	h.Notify("created")
	h.Notify("deleted")
	require.Equal(t, int64(2), h.Version())
}

func TestHub_HelloThenRefresh(t *testing.T) {
	h := NewHub(zap.NewNop())
	defer h.Close()

	h.Notify("created")
	require.Eventually(t, func() bool { return len(h.broadcast) == 0 }, time.Second, 5*time.Millisecond)

	conn := dialHub(t, h)

	hello := readEnvelope(t, conn)
	require.Equal(t, TypeHello, hello.Type)
	require.Equal(t, int64(1), hello.Payload.Version)

	h.Notify("updated")

	changed := readEnvelope(t, conn)
	require.Equal(t, TypeQuestionsChanged, changed.Type)
	require.Equal(t, int64(2), changed.Payload.Version)
	require.Equal(t, "updated", changed.Payload.Reason)
}

func TestHub_BroadcastReachesEveryDashboard(t *testing.T) {
	h := NewHub(zap.NewNop())
	defer h.Close()

	a := dialHub(t, h)
	b := dialHub(t, h)
	require.Equal(t, TypeHello, readEnvelope(t, a).Type)
	require.Equal(t, TypeHello, readEnvelope(t, b).Type)
	require.Equal(t, 2, h.Clients())

	h.Notify("created")

	require.Equal(t, int64(1), readEnvelope(t, a).Payload.Version)
	require.Equal(t, int64(1), readEnvelope(t, b).Payload.Version)
}

func TestHub_ClientLeaves(t *testing.T) {
	h := NewHub(zap.NewNop())
	defer h.Close()

	conn := dialHub(t, h)
	readEnvelope(t, conn)
	require.Equal(t, 1, h.Clients())

	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool { return h.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_NotifyAfterCloseDoesNotBlock(t *testing.T) {
	h := NewHub(zap.NewNop())
	h.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 300; i++ {
			h.Notify("created")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Notify blocked after Close")
	}
}
