package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/termask/internal/logging"
	"github.com/muurk/termask/internal/terminal"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192

	// Keys buffered between the connection reader and ReadKey
	keyBuffer = 64

	// Close reason a client sends when its user pressed Ctrl+C
	closeInterrupted = "interrupted"
)

// Default size assumed when a client does not report one
const (
	defaultRows = 24
	defaultCols = 80
)

// ErrSessionClosed is returned by Device operations after Close.
var ErrSessionClosed = errors.New("remote session closed")

// Device is a terminal.Device whose keyboard and screen are at the other end
// of a websocket. Key events are read by a goroutine owned by the Device;
// ReadKey hands them out in arrival order and reports the connection error
// only after every buffered key has been consumed.
type Device struct {
	conn   *websocket.Conn
	remote string

	keys chan terminal.Key
	err  error // set before keys is closed
	done chan struct{}
	once sync.Once

	writeMu sync.Mutex

	sizeMu     sync.Mutex
	rows, cols int
}

// newDevice wraps an upgraded connection. hello is the client's opening
// message and supplies the initial terminal size.
func newDevice(conn *websocket.Conn, hello Message) *Device {
	d := &Device{
		conn:   conn,
		remote: conn.RemoteAddr().String(),
		keys:   make(chan terminal.Key, keyBuffer),
		done:   make(chan struct{}),
	}
	d.setSize(hello.Rows, hello.Cols)
	return d
}

// start launches the reader and the keepalive goroutines.
func (d *Device) start() {
	d.conn.SetReadLimit(maxMessageSize)
	_ = d.conn.SetReadDeadline(time.Now().Add(pongWait))
	d.conn.SetPongHandler(func(string) error {
		return d.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go d.readLoop()
	go d.pingLoop()
}

// RemoteAddr returns the address of the client.
func (d *Device) RemoteAddr() string {
	return d.remote
}

func (d *Device) readLoop() {
	defer close(d.keys)

	for {
		_, data, err := d.conn.ReadMessage()
		if err != nil {
			d.err = readError(err)
			logging.Debug("Session reader stopped",
				zap.String("remote_addr", d.remote),
				zap.Error(err),
			)
			return
		}

		var m Message
		if err := json.Unmarshal(data, &m); err != nil {
			logging.Warn("Dropping malformed message",
				zap.String("remote_addr", d.remote),
				zap.Error(err),
			)
			continue
		}

		switch m.Type {
		case TypeKey:
			k := terminal.ParseKey(m.Key)
			if k.Code == terminal.KeyOther {
				continue
			}
			select {
			case d.keys <- k:
			case <-d.done:
				d.err = ErrSessionClosed
				return
			}
		case TypeResize:
			d.setSize(m.Rows, m.Cols)
			logging.Debug("Client resized",
				zap.String("remote_addr", d.remote),
				zap.Int("rows", m.Rows),
				zap.Int("cols", m.Cols),
			)
		default:
			logging.Warn("Unexpected message from client",
				zap.String("remote_addr", d.remote),
				zap.Stringer("message", m),
			)
		}
	}
}

func (d *Device) pingLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := d.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				logging.Debug("Ping failed",
					zap.String("remote_addr", d.remote),
					zap.Error(err),
				)
				return
			}
		case <-d.done:
			return
		}
	}
}

// readError maps the error that ended the reader to what ReadKey reports.
// A normal close becomes io.EOF, or terminal.ErrInterrupted when the client
// closed because its user pressed Ctrl+C.
func readError(err error) error {
	var ce *websocket.CloseError
	if errors.As(err, &ce) && ce.Code == websocket.CloseNormalClosure {
		if ce.Text == closeInterrupted {
			return terminal.ErrInterrupted
		}
		return io.EOF
	}
	return err
}

func (d *Device) setSize(rows, cols int) {
	if rows <= 0 {
		rows = defaultRows
	}
	if cols <= 0 {
		cols = defaultCols
	}
	d.sizeMu.Lock()
	d.rows, d.cols = rows, cols
	d.sizeMu.Unlock()
}

// send writes one message to the client.
func (d *Device) send(m Message) error {
	select {
	case <-d.done:
		return ErrSessionClosed
	default:
	}

	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	if err := d.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	if err := d.conn.WriteJSON(m); err != nil {
		return fmt.Errorf("failed to send %s: %w", m, err)
	}
	return nil
}

func (d *Device) op(name, text string, n int) error {
	return d.send(Message{Type: TypeOp, Op: name, Text: text, N: n})
}

// ReadKey implements terminal.Device
func (d *Device) ReadKey() (terminal.Key, error) {
	k, ok := <-d.keys
	if !ok {
		return terminal.Key{}, d.err
	}
	return k, nil
}

// WriteLine implements terminal.Device
func (d *Device) WriteLine(text string) error {
	return d.op(OpWriteLine, text, 0)
}

// WriteString implements terminal.Device
func (d *Device) WriteString(text string) error {
	return d.op(OpWrite, text, 0)
}

// MoveCursor implements terminal.Device
func (d *Device) MoveCursor(delta int) error {
	return d.op(OpMoveCursor, "", delta)
}

// ClearLine implements terminal.Device
func (d *Device) ClearLine() error {
	return d.op(OpClearLine, "", 0)
}

// ClearLastLines implements terminal.Device
func (d *Device) ClearLastLines(n int) error {
	return d.op(OpClearLastLines, "", n)
}

// ClearChars implements terminal.Device
func (d *Device) ClearChars(n int) error {
	return d.op(OpClearChars, "", n)
}

// Size implements terminal.Device with the size last reported by the client.
func (d *Device) Size() (int, int, error) {
	d.sizeMu.Lock()
	defer d.sizeMu.Unlock()
	return d.rows, d.cols, nil
}

// Close sends a normal close frame and closes the connection. Pending and
// later ReadKey calls fail. Close is safe to call more than once.
func (d *Device) Close() error {
	var err error
	d.once.Do(func() {
		close(d.done)
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = d.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		err = d.conn.Close()
	})
	return err
}

// apply performs the screen operation carried by m on dev.
func apply(dev terminal.Device, m Message) error {
	var err error
	switch m.Op {
	case OpWriteLine:
		err = dev.WriteLine(m.Text)
	case OpWrite:
		err = dev.WriteString(m.Text)
	case OpMoveCursor:
		err = dev.MoveCursor(m.N)
	case OpClearLine:
		err = dev.ClearLine()
	case OpClearLastLines:
		err = dev.ClearLastLines(m.N)
	case OpClearChars:
		err = dev.ClearChars(m.N)
	default:
		return fmt.Errorf("unknown screen operation %q", m.Op)
	}
	return terminal.WrapError(m.Op, err)
}
