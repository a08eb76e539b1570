package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/termask/internal/config"
	"github.com/muurk/termask/internal/form"
	"github.com/muurk/termask/internal/logging"
	"github.com/muurk/termask/internal/ui"
	"github.com/muurk/termask/internal/version"
)

// DefaultPath is the HTTP path sessions are upgraded on.
const DefaultPath = "/ws"

// Time allowed for a new client to send its hello
const helloWait = 10 * time.Second

// Config holds the server configuration
type Config struct {
	Addr      string       // Listen address, e.g. ":7357"
	Form      *config.Form // Form every session answers
	Palette   ui.Palette   // Colours and glyphs; empty fields use the defaults
	Advertise bool         // Announce the server over mDNS
	Name      string       // mDNS instance name; defaults to the form title

	// OnComplete, when set, is called with the answers of every session
	// that finished the form.
	OnComplete func(remoteAddr string, answers []form.Answer)
}

// Server hosts one form for any number of concurrent websocket sessions.
type Server struct {
	config   Config
	upgrader websocket.Upgrader
	http     *http.Server
	listener net.Listener
	advert   *Advertisement

	wg       sync.WaitGroup
	mu       sync.Mutex
	sessions map[string]*Device
	closing  bool
}

// New creates a new Server instance
func New(cfg Config) (*Server, error) {
	if cfg.Form == nil {
		return nil, errors.New("no form to serve")
	}
	if errs := cfg.Form.Validate(); len(errs) > 0 {
		return nil, &config.FormError{Problems: errs}
	}
	if cfg.Name == "" {
		cfg.Name = cfg.Form.Title
	}

	s := &Server{
		config:   cfg,
		sessions: make(map[string]*Device),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
	s.http = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the HTTP handler serving sessions on DefaultPath.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(DefaultPath, s.handleSession)
	return mux
}

// Listen binds the configured address. It is separate from Serve so
// callers can learn the bound port before serving.
func (s *Server) Listen() (net.Addr, error) {
	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", s.config.Addr, err)
	}
	s.listener = listener
	return listener.Addr(), nil
}

// Start listens, optionally advertises, and serves until ctx is cancelled.
// It then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	if s.listener == nil {
		if _, err := s.Listen(); err != nil {
			return err
		}
	}
	addr := s.listener.Addr()

	logging.Info("Starting form server",
		zap.String("addr", addr.String()),
		zap.String("form", s.config.Form.Title),
		zap.Int("questions", len(s.config.Form.Questions)),
	)

	if s.config.Advertise {
		port := addr.(*net.TCPAddr).Port
		advert, err := Advertise(s.config.Name, port, s.txtRecords())
		if err != nil {
			logging.Warn("Failed to advertise over mDNS", zap.Error(err))
		} else {
			s.advert = advert
		}
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.http.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		logging.Info("Shutdown requested, stopping server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) txtRecords() []string {
	return []string{
		"path=" + DefaultPath,
		"title=" + s.config.Form.Title,
		"version=" + version.Version,
	}
}

// handleSession upgrades one client and runs the form against it.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("Websocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}
	remoteAddr := conn.RemoteAddr().String()
	logging.LogConnection(remoteAddr, "connection_accepted")

	hello, err := readHello(conn)
	if err != nil {
		logging.Warn("Handshake failed",
			zap.String("remote_addr", remoteAddr),
			zap.Error(err),
		)
		_ = conn.WriteJSON(Message{Type: TypeError, Error: err.Error()})
		_ = conn.Close()
		return
	}

	dev := newDevice(conn, hello)

	s.mu.Lock()
	if s.closing {
		s.mu.Unlock()
		_ = dev.send(Message{Type: TypeError, Error: "server is shutting down"})
		_ = dev.Close()
		return
	}
	s.sessions[remoteAddr] = dev
	s.wg.Add(1)
	s.mu.Unlock()

	defer func() {
		_ = dev.Close()
		s.mu.Lock()
		delete(s.sessions, remoteAddr)
		s.mu.Unlock()
		s.wg.Done()
		logging.LogConnection(remoteAddr, "connection_closed")
	}()

	logging.Info("Session started",
		zap.String("remote_addr", remoteAddr),
		zap.String("agent", hello.Agent),
		zap.String("color", hello.Color),
		zap.Int("rows", hello.Rows),
		zap.Int("cols", hello.Cols),
	)

	dev.start()
	s.runSession(dev, hello)
}

func (s *Server) runSession(dev *Device, hello Message) {
	remoteAddr := dev.RemoteAddr()

	if err := dev.send(Message{Type: TypeWelcome, Title: s.config.Form.Title, Version: version.Version}); err != nil {
		logging.Warn("Failed to welcome client", zap.String("remote_addr", remoteAddr), zap.Error(err))
		return
	}

	theme := ui.NewTheme(ui.NewRenderer(io.Discard, ParseProfile(hello.Color)), s.config.Palette)
	answers, err := form.NewRunner(theme).Run(dev, s.config.Form)
	if err != nil {
		logging.Info("Session ended before completion",
			zap.String("remote_addr", remoteAddr),
			zap.Int("answered", len(answers)),
			zap.Error(err),
		)
		_ = dev.send(Message{Type: TypeError, Error: err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := form.WriteYAML(&buf, answers); err != nil {
		_ = dev.send(Message{Type: TypeError, Error: err.Error()})
		return
	}
	if err := dev.send(Message{Type: TypeDone, Text: buf.String()}); err != nil {
		logging.Warn("Failed to deliver answers", zap.String("remote_addr", remoteAddr), zap.Error(err))
	}

	logging.Info("Session completed", zap.String("remote_addr", remoteAddr))
	if s.config.OnComplete != nil {
		s.config.OnComplete(remoteAddr, answers)
	}
}

// readHello reads the client's opening message.
func readHello(conn *websocket.Conn) (Message, error) {
	_ = conn.SetReadDeadline(time.Now().Add(helloWait))
	defer func() { _ = conn.SetReadDeadline(time.Time{}) }()

	_, data, err := conn.ReadMessage()
	if err != nil {
		return Message{}, fmt.Errorf("failed to read hello: %w", err)
	}
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, fmt.Errorf("failed to decode hello: %w", err)
	}
	if m.Type != TypeHello {
		return Message{}, fmt.Errorf("expected %s, got %s", TypeHello, m.Type)
	}
	return m, nil
}

// Shutdown stops accepting sessions, closes the running ones and waits for
// their handlers to return or ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	s.mu.Lock()
	s.closing = true
	for addr, dev := range s.sessions {
		logging.Debug("Closing session", zap.String("remote_addr", addr))
		_ = dev.Close()
	}
	s.mu.Unlock()

	if s.advert != nil {
		s.advert.Shutdown()
	}

	err := s.http.Shutdown(ctx)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logging.Info("Server shutdown complete")
		return err
	case <-ctx.Done():
		logging.Warn("Server shutdown timed out")
		return ctx.Err()
	}
}

// ActiveSessions returns the number of sessions currently answering the form.
func (s *Server) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
