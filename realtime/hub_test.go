package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Dosada05/court-finder/models"
)

func startHub(t *testing.T) (*Hub, *httptest.Server, context.CancelFunc) {
	t.Helper()
	hub := NewHub(slog.New(slog.DiscardHandler))
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		room := RoomAll
		if v := r.URL.Query().Get("room"); v != "" {
			room = v
		}
		hub.Attach(conn, room)
	}))
	return hub, srv, cancel
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func waitClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.Clients() == n }, 2*time.Second, 10*time.Millisecond)
}

func TestHubDeliversEvents(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub, srv, cancel := startHub(t)
	defer srv.Close()
	defer cancel()

	all := dial(t, srv, "")
	defer all.Close()
	venue := dial(t, srv, "?room="+RoomForVenue(7))
	defer venue.Close()
	waitClients(t, hub, 2)

	id := 7
	require.NoError(t, hub.Publish(context.Background(), models.VenueEvent{Type: models.EventVenueUpdated, VenueID: &id}))

	for _, c := range []*websocket.Conn{all, venue} {
		require.NoError(t, c.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, raw, err := c.ReadMessage()
		require.NoError(t, err)

		var msg struct {
			Type    string            `json:"type"`
			Payload models.VenueEvent `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, "venue.updated", msg.Type)
		require.NotNil(t, msg.Payload.VenueID)
		assert.Equal(t, 7, *msg.Payload.VenueID)
	}

	// reorder events carry no venue id and only reach the global room
	require.NoError(t, hub.Publish(context.Background(), models.VenueEvent{Type: models.EventVenuesReordered, IDs: []int{1, 2}}))
	require.NoError(t, all.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := all.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(raw), "venues.reordered")

	require.NoError(t, venue.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err = venue.ReadMessage()
	assert.Error(t, err)
}

func TestHubUnregistersOnDisconnect(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub, srv, cancel := startHub(t)
	defer srv.Close()
	defer cancel()

	c := dial(t, srv, "")
	waitClients(t, hub, 1)

	require.NoError(t, c.Close())
	waitClients(t, hub, 0)
}

func TestHubShutdownClosesClients(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub, srv, cancel := startHub(t)
	defer srv.Close()

	c := dial(t, srv, "")
	defer c.Close()
	waitClients(t, hub, 1)

	cancel()
	select {
	case <-hub.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}

	require.NoError(t, c.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := c.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
	assert.Zero(t, hub.Clients())
}
