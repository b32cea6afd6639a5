// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-party-swipe/internal/logger"
	"github.com/MKhiriev/go-party-swipe/models"
)

var upgrader = websocket.Upgrader{}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestConn_DeliversSnapshotsInOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer ws.Close()

		for i, status := range []models.PartyStatus{models.StatusWaiting, models.StatusActive} {
			require.NoError(t, ws.WriteJSON(models.Party{ID: "AB12", Status: status, Total: i}))
		}
		// hold the socket open until the client hangs up
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	conn := Dial(context.Background(), wsURL(srv), logger.Nop())
	defer conn.Close()

	first := receiveSnapshot(t, conn)
	assert.Equal(t, models.StatusWaiting, first.Status)

	second := receiveSnapshot(t, conn)
	assert.Equal(t, models.StatusActive, second.Status)
	assert.Equal(t, 1, second.Total)
}

func TestConn_SendReachesServer(t *testing.T) {
	received := make(chan models.Message, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer ws.Close()

		var msg models.Message
		if err := ws.ReadJSON(&msg); err == nil {
			received <- msg
		}
	}))
	defer srv.Close()

	conn := Dial(context.Background(), wsURL(srv), logger.Nop())
	defer conn.Close()

	require.NoError(t, conn.Send(models.NewSwipeRight("r42")))

	select {
	case msg := <-received:
		assert.Equal(t, models.SwipeRight, msg.Type)
		require.NotNil(t, msg.Payload)
		assert.Equal(t, "r42", msg.Payload.RestaurantID)
	case <-time.After(3 * time.Second):
		t.Fatal("server never received the command")
	}
}

func TestConn_ReconnectsAfterServerDrop(t *testing.T) {
	var dials atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)

		n := dials.Add(1)
		if n == 1 {
			// first connection: one snapshot, then an abrupt drop
			_ = ws.WriteJSON(models.Party{ID: "AB12", Status: models.StatusWaiting})
			ws.Close()
			return
		}

		defer ws.Close()
		_ = ws.WriteJSON(models.Party{ID: "AB12", Status: models.StatusActive})
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	conn := Dial(context.Background(), wsURL(srv), logger.Nop())
	defer conn.Close()

	first := receiveSnapshot(t, conn)
	assert.Equal(t, models.StatusWaiting, first.Status)

	// the second snapshot arrives over the re-established connection
	second := receiveSnapshot(t, conn)
	assert.Equal(t, models.StatusActive, second.Status)
	assert.GreaterOrEqual(t, dials.Load(), int32(2))
}

func TestConn_CloseShutsSnapshotChannel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer ws.Close()
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	conn := Dial(context.Background(), wsURL(srv), logger.Nop())
	require.NoError(t, conn.Close())

	select {
	case _, open := <-conn.Snapshots():
		assert.False(t, open, "snapshot channel must close after Close")
	case <-time.After(3 * time.Second):
		t.Fatal("snapshot channel did not close")
	}

	assert.ErrorIs(t, conn.Send(models.NewQuit()), ErrClosed)
}

func receiveSnapshot(t *testing.T, conn *Conn) models.Party {
	t.Helper()
	select {
	case snap, open := <-conn.Snapshots():
		require.True(t, open, "snapshot channel closed unexpectedly")
		return snap
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return models.Party{}
	}
}
