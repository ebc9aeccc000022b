// ABOUTME: WebSocket bench-control server for the tone driver
// ABOUTME: Accepts JSON tone/melody commands and serializes playback
package remote

import (
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Player is the slice of the driver the server needs.
type Player interface {
	PlayTone(frequencyHz, durationMs, volume int)
	PlayMelody(frequencies, durations []int, volume int)
	Stop()
	IsPlaying() bool
}

// Config holds server configuration.
type Config struct {
	Port       int
	Name       string
	EnableMDNS bool
}

// Command is a client request.
type Command struct {
	Type        string `json:"type"` // tone | melody | stop | status
	Frequency   int    `json:"frequency,omitempty"`
	DurationMs  int    `json:"duration_ms,omitempty"`
	Volume      int    `json:"volume,omitempty"`
	Frequencies []int  `json:"frequencies,omitempty"`
	Durations   []int  `json:"durations,omitempty"`
}

// Reply is the server's response to a command. For tone and melody it is
// sent after playback completes, since driver calls block for the full
// real-time duration.
type Reply struct {
	Type    string `json:"type"`
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
	Playing bool   `json:"playing"`
}

type playRequest struct {
	cmd  Command
	done chan Reply
}

// Server exposes a driver over a /chime WebSocket endpoint. Playback
// commands are serialized through one worker; a command arriving while
// another plays gets a busy reply.
type Server struct {
	config   Config
	driver   Player
	upgrader websocket.Upgrader

	httpServer *http.Server
	mux        *http.ServeMux
	requests   chan playRequest
	advertiser *Advertiser

	// busy is claimed by dispatch before handing a command to the worker,
	// so the busy decision does not depend on goroutine scheduling.
	busy atomic.Bool

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a remote control server around the given driver.
func New(config Config, driver Player) *Server {
	return &Server{
		config: config,
		driver: driver,
		mux:    http.NewServeMux(),
		upgrader: websocket.Upgrader{
			// Bench tool for trusted local networks; all origins accepted.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		requests: make(chan playRequest),
		stopChan: make(chan struct{}),
	}
}

// Start runs the server until Stop is called. Blocking.
func (s *Server) Start() error {
	log.Printf("remote: starting %s on port %d", s.config.Name, s.config.Port)

	if s.config.EnableMDNS {
		s.advertiser = NewAdvertiser(s.config.Name, s.config.Port)
		if err := s.advertiser.Advertise(); err != nil {
			log.Printf("remote: mDNS advertisement failed: %v", err)
		}
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.playLoop()
	}()

	s.mux.HandleFunc("/chime", s.handleWebSocket)

	addr := fmt.Sprintf(":%d", s.config.Port)
	s.httpServer = &http.Server{Addr: addr, Handler: s.mux}

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	log.Printf("remote: listening on %s", addr)

	var serveErr error
	select {
	case <-s.stopChan:
		log.Printf("remote: shutting down")
	case err := <-errChan:
		serveErr = fmt.Errorf("http server failed: %w", err)
		s.Stop()
	}

	s.httpServer.Close()
	s.wg.Wait()

	if s.advertiser != nil {
		s.advertiser.Shutdown()
	}

	return serveErr
}

// Stop shuts the server down.
func (s *Server) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
}

// playLoop executes playback requests one at a time until shutdown.
func (s *Server) playLoop() {
	for {
		select {
		case req := <-s.requests:
			req.done <- s.execute(req.cmd)
		case <-s.stopChan:
			return
		}
	}
}

// execute runs one playback command to completion.
func (s *Server) execute(cmd Command) Reply {
	switch cmd.Type {
	case "tone":
		if cmd.Frequency <= 0 || cmd.DurationMs <= 0 {
			return errorReply("tone requires positive frequency and duration_ms")
		}
		s.driver.PlayTone(cmd.Frequency, cmd.DurationMs, cmd.Volume)

	case "melody":
		if len(cmd.Frequencies) == 0 {
			return errorReply("melody requires frequencies")
		}
		if len(cmd.Frequencies) != len(cmd.Durations) {
			return errorReply("frequencies and durations must have equal length")
		}
		s.driver.PlayMelody(cmd.Frequencies, cmd.Durations, cmd.Volume)

	case "stop":
		s.driver.Stop()

	default:
		return errorReply(fmt.Sprintf("unknown command %q", cmd.Type))
	}

	return Reply{Type: "result", OK: true, Playing: s.driver.IsPlaying()}
}

// handleWebSocket serves one client connection.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("remote: upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	clientID := uuid.New().String()
	log.Printf("remote: client %s connected from %s", clientID, r.RemoteAddr)

	for {
		var cmd Command
		if err := conn.ReadJSON(&cmd); err != nil {
			log.Printf("remote: client %s disconnected: %v", clientID, err)
			return
		}

		reply := s.dispatch(cmd)

		if err := conn.WriteJSON(reply); err != nil {
			log.Printf("remote: client %s write failed: %v", clientID, err)
			return
		}
	}
}

// dispatch routes a command. Status is answered inline; everything else
// goes through the worker and gets a busy reply if playback is active.
func (s *Server) dispatch(cmd Command) Reply {
	if cmd.Type == "status" {
		return Reply{Type: "status", OK: true, Playing: s.driver.IsPlaying()}
	}

	if !s.busy.CompareAndSwap(false, true) {
		return errorReply("busy: playback in progress")
	}
	defer s.busy.Store(false)

	req := playRequest{cmd: cmd, done: make(chan Reply, 1)}

	select {
	case s.requests <- req:
		return <-req.done
	case <-s.stopChan:
		return errorReply("server shutting down")
	}
}

func errorReply(msg string) Reply {
	return Reply{Type: "result", OK: false, Error: msg}
}
