// Package stream provides Go clients for the animation daemon: a
// websocket subscriber for the frame stream and a REST controller for
// playback commands.
package stream

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/BlackRoad-Interactive/blackroad-animation-controller/pkg/animator"
)

// readTimeout bounds the gap between frames before the connection is
// considered dead. The daemon streams continuously, so a quiet minute
// means trouble.
const readTimeout = 120 * time.Second

// Client subscribes to a daemon's frame stream.
type Client struct {
	url string

	ws *websocket.Conn

	// OnFrame is invoked for every received frame, on the read
	// goroutine. Keep it fast or hand the frame off to a channel.
	OnFrame func(frame animator.Frame)

	// OnError is invoked when the read loop fails.
	OnError func(err error)

	mu        sync.RWMutex
	lastFrame animator.Frame
	hasFrame  bool
	connected bool
	closed    bool
}

// NewClient creates a client for the given websocket URL,
// e.g. "ws://localhost:8090/ws".
func NewClient(url string) *Client {
	return &Client{url: url}
}

// Connect dials the daemon and starts the read loop. The daemon sends
// the current frame immediately, so LastFrame is usually populated
// right after Connect returns.
func (c *Client) Connect() error {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	ws, _, err := dialer.Dial(c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to frame stream: %w", err)
	}

	c.ws = ws
	c.ws.SetReadDeadline(time.Now().Add(readTimeout))

	c.mu.Lock()
	c.connected = true
	c.closed = false
	c.mu.Unlock()

	go c.readLoop()
	return nil
}

func (c *Client) readLoop() {
	defer c.ws.Close()

	for {
		var frame animator.Frame
		if err := c.ws.ReadJSON(&frame); err != nil {
			c.mu.Lock()
			c.connected = false
			wasClosed := c.closed
			c.mu.Unlock()
			if !wasClosed && c.OnError != nil {
				c.OnError(err)
			}
			return
		}
		c.ws.SetReadDeadline(time.Now().Add(readTimeout))

		c.mu.Lock()
		c.lastFrame = frame
		c.hasFrame = true
		c.mu.Unlock()

		if c.OnFrame != nil {
			c.OnFrame(frame)
		}
	}
}

// LastFrame returns the most recently received frame.
func (c *Client) LastFrame() (animator.Frame, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastFrame, c.hasFrame
}

// WaitForFrame blocks until a frame arrives or the timeout passes.
func (c *Client) WaitForFrame(timeout time.Duration) (animator.Frame, error) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if frame, ok := c.LastFrame(); ok {
			return frame, nil
		}
		time.Sleep(10 * time.Millisecond)
	}
	return animator.Frame{}, fmt.Errorf("timeout waiting for frame")
}

// Connected reports whether the read loop is alive.
func (c *Client) Connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// Close shuts the connection down.
func (c *Client) Close() {
	c.mu.Lock()
	c.closed = true
	c.connected = false
	c.mu.Unlock()
	if c.ws != nil {
		c.ws.Close()
	}
}
