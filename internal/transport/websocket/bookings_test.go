package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rentaroom/internal/domain"
)

func startHub(t *testing.T) (*BookingHub, context.CancelFunc, string) {
	t.Helper()

	hub := NewBookingHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(w, r, 1)
	}))
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})

	return hub, cancel, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, hub *BookingHub, url string, want int) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool { return hub.ClientCount() == want }, 2*time.Second, 10*time.Millisecond)
	return conn
}

func TestBookingHub_BroadcastsToEveryClient(t *testing.T) {
	hub, _, url := startHub(t)

	first := dial(t, hub, url, 1)
	second := dial(t, hub, url, 2)

	hub.BookingCreated(domain.Message{ID: 7, ListingID: 3, Days: 2, Status: domain.MessageStatusPending})

	for _, conn := range []*websocket.Conn{first, second} {
		var event BookingEvent
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		require.NoError(t, conn.ReadJSON(&event))

		assert.Equal(t, EventBookingCreated, event.Type)
		assert.Equal(t, int64(7), event.Message.ID)
		assert.NotEmpty(t, event.Timestamp)
	}
}

func TestBookingHub_PublishWithoutClients(t *testing.T) {
	hub := NewBookingHub(zap.NewNop())

	// Nothing drains the queue here, so overflow must be dropped.
	for i := 0; i < sendBuffer*2; i++ {
		hub.BookingStatusChanged(domain.Message{ID: int64(i)})
	}

	assert.Zero(t, hub.ClientCount())
}

func TestBookingHub_ShutdownClosesConnections(t *testing.T) {
	hub, cancel, url := startHub(t)

	conn := dial(t, hub, url, 1)

	cancel()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNoStatusReceived), err.Error())
	assert.Zero(t, hub.ClientCount())
}
