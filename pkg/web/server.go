// Package web exposes an animator over HTTP and websockets: REST
// endpoints for playback control and pose queries, plus a websocket
// stream that pushes one frame snapshot per animation tick.
package web

import (
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/BlackRoad-Interactive/blackroad-animation-controller/internal/log"
	"github.com/BlackRoad-Interactive/blackroad-animation-controller/pkg/animator"
	"github.com/BlackRoad-Interactive/blackroad-animation-controller/pkg/clip"
	"github.com/BlackRoad-Interactive/blackroad-animation-controller/pkg/hub"
)

// Options configures the server.
type Options struct {
	// Addr is the listen address, e.g. ":8090".
	Addr string

	// TickInterval is the period of the animation drive loop.
	TickInterval time.Duration
}

// DefaultOptions returns the server defaults: port 8090, 60 updates
// per second.
func DefaultOptions() Options {
	return Options{
		Addr:         ":8090",
		TickInterval: time.Second / 60,
	}
}

// Server drives an animator on a fixed tick and serves control and
// streaming endpoints for it.
//
// The server owns the animator: handlers and the drive loop both take
// the server's lock before touching it, so control commands land
// between ticks.
type Server struct {
	app  *fiber.App
	opts Options

	mu   sync.Mutex
	anim *animator.Animator

	frames *hub.Hub

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewServer creates a server around an animator.
func NewServer(anim *animator.Animator, opts Options) *Server {
	s := &Server{
		opts:   opts,
		anim:   anim,
		frames: hub.New("frames"),
		stopCh: make(chan struct{}),
	}

	app := fiber.New(fiber.Config{
		AppName:               "animd",
		DisableStartupMessage: true,
	})

	// CORS for browser-based viewers
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/state", s.handleState)
	api.Get("/clips", s.handleClips)
	api.Get("/skeleton", s.handleSkeleton)
	api.Post("/play", s.handlePlay)
	api.Post("/stop", s.handleStop)
	api.Post("/pause", s.handlePause)
	api.Post("/resume", s.handleResume)
	api.Post("/blend", s.handleBlend)
	api.Post("/transition", s.handleTransition)
	api.Post("/ik", s.handleIK)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(s.handleFramesWS))

	s.app = app
	return s
}

// App returns the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// FrameHub returns the websocket broadcast hub.
func (s *Server) FrameHub() *hub.Hub {
	return s.frames
}

// Start runs the frame hub, the drive loop, and the HTTP listener. It
// blocks until the listener stops.
func (s *Server) Start() error {
	go s.frames.Run()
	go s.driveLoop()

	log.Info("animation server listening", "addr", s.opts.Addr)
	return s.app.Listen(s.opts.Addr)
}

// Shutdown stops the drive loop and the HTTP listener.
func (s *Server) Shutdown() error {
	s.stopOnce.Do(func() { close(s.stopCh) })
	return s.app.Shutdown()
}

// driveLoop advances the animator once per tick and broadcasts the
// resulting frame to websocket viewers.
func (s *Server) driveLoop() {
	ticker := time.NewTicker(s.opts.TickInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-s.stopCh:
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			s.mu.Lock()
			err := s.anim.Update(dt)
			frame := s.anim.ExportFrame()
			s.mu.Unlock()

			if err != nil {
				log.Warn("animation update failed", "error", err)
				continue
			}
			if s.frames.ClientCount() > 0 {
				if err := s.frames.BroadcastJSON(frame); err != nil {
					log.Warn("frame broadcast failed", "error", err)
				}
			}
		}
	}
}

// AddClip registers a clip with the running animator, replacing any
// clip of the same name. Used for hot reload of watched clip files.
func (s *Server) AddClip(c *clip.Clip) {
	s.mu.Lock()
	s.anim.AddClip(c)
	s.mu.Unlock()
	log.Info("clip registered", "clip", c.Name(), "duration", c.Duration())
}

// handleFramesWS serves one websocket viewer for its whole lifetime.
func (s *Server) handleFramesWS(conn *websocket.Conn) {
	// Send the current frame right away so viewers have a pose before
	// the first tick arrives. The client's write pump is not running
	// yet, so writing here is safe.
	s.mu.Lock()
	frame := s.anim.ExportFrame()
	s.mu.Unlock()
	if err := conn.WriteJSON(frame); err != nil {
		conn.Close()
		return
	}

	hub.NewClient(s.frames, conn).Run()
}
