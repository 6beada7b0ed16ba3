package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a frame to the peer
	writeWait = 10 * time.Second

	// Read deadline; refreshed on every pong
	pongWait = 60 * time.Second

	// Maximum inbound frame size
	maxFrameSize = 1 << 20 // 1MB

	// Buffer size for outgoing frames
	sendBufferSize = 64
)

// client wraps a websocket connection with a buffered, drop-on-full send
// queue so that one slow reader never blocks a broadcast.
type client struct {
	ws     *websocket.Conn
	sendCh chan []byte
	done   chan struct{}
	once   sync.Once
	logger *slog.Logger
}

// Ensure client implements the session transport
var _ Conn = (*client)(nil)

func newClient(ws *websocket.Conn, logger *slog.Logger) *client {
	return &client{
		ws:     ws,
		sendCh: make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Send enqueues a frame for delivery. If the buffer is full the frame is
// dropped; there is no retry or backpressure toward the sender.
func (c *client) Send(frame []byte) {
	select {
	case <-c.done:
	case c.sendCh <- frame:
	default:
		c.logger.Warn("frame dropped - send buffer full")
	}
}

// Close shuts the connection down. Safe to call more than once.
func (c *client) Close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.ws.Close()
	})
}

// writePump drains the send queue onto the wire. One per connection.
func (c *client) writePump() {
	defer func() { _ = c.ws.Close() }()
	for {
		select {
		case frame := <-c.sendCh:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// readLoop feeds inbound frames to the session until the transport
// closes. Runs on the connection's handler goroutine.
func (c *client) readLoop(handle func([]byte)) {
	c.ws.SetReadLimit(maxFrameSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		handle(frame)
	}
}
