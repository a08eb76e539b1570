package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"github.com/muurk/termask/internal/logging"
	"github.com/muurk/termask/internal/terminal"
	"github.com/muurk/termask/internal/version"
)

// KeyReader is the input half of a terminal.Device.
type KeyReader interface {
	ReadKey() (terminal.Key, error)
}

// SessionError is a failure reported by the server, such as a form that
// could not be completed.
type SessionError struct {
	Message string
}

// Error implements the error interface
func (e *SessionError) Error() string {
	return "remote session failed: " + e.Message
}

// Result is the outcome of a completed remote session.
type Result struct {
	Title   string // Form title from the welcome message
	Version string // Server version
	Answers string // Answers as YAML
}

// Client answers a remote form on a local terminal.
type Client struct {
	dev     terminal.Device
	keys    KeyReader
	profile termenv.Profile
	dialer  *websocket.Dialer
}

// NewClient creates a client that renders on dev and reads keys from it.
func NewClient(dev terminal.Device) *Client {
	return &Client{
		dev:     dev,
		keys:    dev,
		profile: termenv.ANSI256,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: 10 * time.Second,
		},
	}
}

// WithKeys reads keys from r instead of the device.
func (c *Client) WithKeys(r KeyReader) *Client {
	c.keys = r
	return c
}

// WithProfile sets the colour profile the server renders for.
func (c *Client) WithProfile(p termenv.Profile) *Client {
	c.profile = p
	return c
}

// Run connects to url and relays the session until the form completes,
// the server reports an error, or the user interrupts it.
//
// Keys are read by a separate goroutine. When the session ends while that
// goroutine is blocked in ReadKey it stays blocked until the next key.
func (c *Client) Run(ctx context.Context, url string) (*Result, error) {
	header := http.Header{}
	header.Set("User-Agent", version.UserAgent())

	conn, _, err := c.dialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	defer func() { _ = conn.Close() }()

	logging.LogConnection(url, "connected")

	rows, cols, err := c.dev.Size()
	if err != nil {
		return nil, terminal.WrapError("size", err)
	}

	s := &clientSession{conn: conn}
	if err := s.send(Message{
		Type:  TypeHello,
		Rows:  rows,
		Cols:  cols,
		Color: c.profile.Name(),
		Agent: version.UserAgent(),
	}); err != nil {
		return nil, err
	}

	welcome, err := s.receive()
	if err != nil {
		return nil, err
	}
	switch welcome.Type {
	case TypeWelcome:
	case TypeError:
		return nil, &SessionError{Message: welcome.Error}
	default:
		return nil, fmt.Errorf("expected %s, got %s", TypeWelcome, welcome.Type)
	}
	result := &Result{Title: welcome.Title, Version: welcome.Version}

	logging.Info("Remote session started",
		zap.String("url", url),
		zap.String("form", welcome.Title),
		zap.String("server_version", welcome.Version),
	)

	stop := context.AfterFunc(ctx, func() {
		_ = s.close("")
	})
	defer stop()

	go s.forwardKeys(c.keys)

	for {
		m, err := s.receive()
		if err != nil {
			if s.interrupted.Load() {
				return nil, terminal.ErrInterrupted
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, err
		}

		switch m.Type {
		case TypeOp:
			if err := apply(c.dev, m); err != nil {
				_ = s.close("")
				return nil, err
			}
		case TypeDone:
			result.Answers = m.Text
			_ = s.close("")
			logging.Info("Remote session completed", zap.String("url", url))
			return result, nil
		case TypeError:
			_ = s.close("")
			if s.interrupted.Load() {
				return nil, terminal.ErrInterrupted
			}
			return nil, &SessionError{Message: m.Error}
		default:
			logging.Warn("Unexpected message from server", zap.Stringer("message", m))
		}
	}
}

// clientSession is the client end of one connection.
type clientSession struct {
	conn        *websocket.Conn
	writeMu     sync.Mutex
	interrupted atomic.Bool
	closed      atomic.Bool
}

func (s *clientSession) send(m Message) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	if err := s.conn.WriteJSON(m); err != nil {
		return fmt.Errorf("failed to send %s: %w", m, err)
	}
	return nil
}

func (s *clientSession) receive() (Message, error) {
	_, data, err := s.conn.ReadMessage()
	if err != nil {
		var ce *websocket.CloseError
		if errors.As(err, &ce) {
			return Message{}, fmt.Errorf("server closed the session: %w", err)
		}
		return Message{}, fmt.Errorf("connection lost: %w", err)
	}
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, fmt.Errorf("malformed message from server: %w", err)
	}
	return m, nil
}

// close sends a normal close frame with reason once.
func (s *clientSession) close(reason string) error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
	return s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}

// forwardKeys sends every decoded key to the server until reading or
// sending fails. Ctrl+C closes the session as interrupted.
func (s *clientSession) forwardKeys(keys KeyReader) {
	for {
		k, err := keys.ReadKey()
		if err != nil {
			if errors.Is(err, terminal.ErrInterrupted) {
				s.interrupted.Store(true)
				_ = s.close(closeInterrupted)
			}
			logging.Debug("Key forwarding stopped", zap.Error(err))
			return
		}
		if k.Code == terminal.KeyOther {
			continue
		}
		if s.closed.Load() {
			return
		}
		if err := s.send(Message{Type: TypeKey, Key: k.String()}); err != nil {
			logging.Debug("Key forwarding stopped", zap.Error(err))
			return
		}
	}
}
