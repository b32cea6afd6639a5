package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MKhiriev/go-party-swipe/internal/logger"
	"github.com/MKhiriev/go-party-swipe/models"
)

const (
	// writeWait bounds a single snapshot or control frame write.
	writeWait = 10 * time.Second

	// pongWait is how long a silent peer is tolerated before the read side
	// gives up. pingPeriod must be shorter so pings keep the deadline fresh.
	pongWait   = 60 * time.Second
	pingPeriod = 45 * time.Second

	// snapshotBuffer is the per-connection outbound queue. A member that
	// cannot drain this many snapshots is disconnected rather than allowed
	// to stall the room.
	snapshotBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dev server accepts any origin; the TUI client is not a browser.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsClient is one member's live socket. The write pump is the only goroutine
// touching the connection's write side.
type wsClient struct {
	room     *Room
	memberID string

	ws        *websocket.Conn
	snapshots chan models.Party
	done      chan struct{}
	closeOnce sync.Once

	log *logger.Logger
}

func newWSClient(room *Room, memberID string, ws *websocket.Conn, log *logger.Logger) *wsClient {
	return &wsClient{
		room:      room,
		memberID:  memberID,
		ws:        ws,
		snapshots: make(chan models.Party, snapshotBuffer),
		done:      make(chan struct{}),
		log:       log,
	}
}

// push queues a snapshot for delivery. A member whose queue is full is cut
// off; the client's auto-reconnect brings them back with a fresh snapshot.
func (c *wsClient) push(p models.Party) {
	select {
	case c.snapshots <- p:
	case <-c.done:
	default:
		c.log.Warn().Str("member", c.memberID).Msg("snapshot queue full, dropping connection")
		c.shutdown()
	}
}

// shutdown signals both pumps to stop. Safe to call more than once.
func (c *wsClient) shutdown() {
	c.closeOnce.Do(func() { close(c.done) })
}

// serve runs the read pump in the calling goroutine and the write pump in a
// second one; it returns when the member disconnects or the room cuts the
// connection.
func (c *wsClient) serve() {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.writePump()
	}()

	c.readPump()

	c.shutdown()
	wg.Wait()

	c.room.Detach(c.memberID, c)
	_ = c.ws.Close()
}

func (c *wsClient) readPump() {
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg models.Message
		if err := c.ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Debug().Err(err).Str("member", c.memberID).Msg("socket read ended")
			}
			return
		}
		c.room.HandleMessage(c.memberID, msg)
	}
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case snapshot := <-c.snapshots:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteJSON(snapshot); err != nil {
				c.log.Debug().Err(err).Str("member", c.memberID).Msg("snapshot write failed")
				c.shutdown()
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.shutdown()
				return
			}
		case <-c.done:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.ws.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			// unblock the read pump
			_ = c.ws.Close()
			return
		}
	}
}
