// Package transport maintains the persistent duplex socket to the party
// server: one reader goroutine decoding snapshot pushes into an ordered
// channel, one writer goroutine serializing outbound commands, and automatic
// reconnection with capped exponential backoff in between.
package transport

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-party-swipe/internal/logger"
	"github.com/MKhiriev/go-party-swipe/models"
)

const (
	handshakeTimeout = 10 * time.Second
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = 45 * time.Second

	baseBackoff   = 500 * time.Millisecond
	cappedBackoff = 30 * time.Second

	snapshotBuffer = 16
	outboundBuffer = 16
)

// ErrClosed is returned by Send after Close.
var ErrClosed = errors.New("transport closed")

// Conn is a long-lived connection handle shared for the lifetime of a party
// session. It reconnects on its own; consumers only read Snapshots and call
// Send.
type Conn struct {
	url string
	log *logger.Logger

	snapshots chan models.Party
	outbound  chan models.Message

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Dial starts a connection to the websocket endpoint at url and keeps it
// alive until Close or ctx cancellation. Dialing happens in the background;
// the handle is usable immediately.
func Dial(ctx context.Context, url string, log *logger.Logger) *Conn {
	ctx, cancel := context.WithCancel(ctx)
	c := &Conn{
		url:       url,
		log:       log,
		snapshots: make(chan models.Party, snapshotBuffer),
		outbound:  make(chan models.Message, outboundBuffer),
		ctx:       ctx,
		cancel:    cancel,
	}

	c.wg.Add(1)
	go c.run()
	return c
}

// Snapshots delivers party pushes in the order the server sent them. The
// channel closes after Close.
func (c *Conn) Snapshots() <-chan models.Party {
	return c.snapshots
}

// Send queues one outbound command. Fire-and-forget: delivery is attempted
// at most once on the live socket, with no retransmission across reconnects
// of messages already written.
func (c *Conn) Send(msg models.Message) error {
	if c.ctx.Err() != nil {
		return ErrClosed
	}
	select {
	case c.outbound <- msg:
		return nil
	case <-c.ctx.Done():
		return ErrClosed
	}
}

// Close tears the connection down and waits for the background goroutines
// to exit.
func (c *Conn) Close() error {
	c.cancel()
	c.wg.Wait()
	return nil
}

func (c *Conn) run() {
	defer c.wg.Done()
	defer close(c.snapshots)

	for {
		ws := c.connect()
		if ws == nil {
			return
		}
		c.serve(ws)

		select {
		case <-c.ctx.Done():
			return
		default:
			c.log.Info().Str("url", c.url).Msg("connection lost, reconnecting")
		}
	}
}

// connect dials until it succeeds or the transport is closed.
func (c *Conn) connect() *websocket.Conn {
	var ws *websocket.Conn
	backoff := retry.WithCappedDuration(cappedBackoff, retry.NewExponential(baseBackoff))

	err := retry.Do(c.ctx, backoff, func(ctx context.Context) error {
		dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
		conn, _, err := dialer.DialContext(ctx, c.url, nil)
		if err != nil {
			c.log.Warn().Err(err).Str("url", c.url).Msg("dial failed")
			return retry.RetryableError(err)
		}
		ws = conn
		return nil
	})
	if err != nil {
		return nil
	}

	c.log.Info().Str("url", c.url).Msg("connected")
	return ws
}

// serve pumps one live socket until it errors out or the transport closes.
func (c *Conn) serve(ws *websocket.Conn) {
	defer ws.Close()

	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	var once sync.Once
	stop := func() { once.Do(func() { close(done) }) }
	defer stop()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.writeLoop(ws, done)
	}()

	for {
		var snap models.Party
		if err := ws.ReadJSON(&snap); err != nil {
			if c.ctx.Err() == nil {
				c.log.Debug().Err(err).Msg("read loop ended")
			}
			return
		}

		select {
		case c.snapshots <- snap:
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Conn) writeLoop(ws *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg := <-c.outbound:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteJSON(msg); err != nil {
				c.log.Warn().Err(err).Str("type", string(msg.Type)).Msg("write failed")
				return
			}
		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		case <-c.ctx.Done():
			// best effort close frame, then close the socket to unblock
			// the read loop
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			_ = ws.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			_ = ws.Close()
			return
		}
	}
}
