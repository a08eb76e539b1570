package remote

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// MessageType identifies the kind of a Message
type MessageType string

const (
	TypeHello   MessageType = "hello"   // Client introduces its terminal
	TypeResize  MessageType = "resize"  // Client terminal changed size
	TypeKey     MessageType = "key"     // Client key event
	TypeWelcome MessageType = "welcome" // Server accepted the session
	TypeOp      MessageType = "op"      // Server screen operation
	TypeDone    MessageType = "done"    // Form completed; Text holds the answers
	TypeError   MessageType = "error"   // Session failed; Error holds the reason
)

// Screen operations carried by TypeOp messages. Each maps to one
// terminal.Device method.
const (
	OpWriteLine      = "write_line"
	OpWrite          = "write"
	OpMoveCursor     = "move_cursor"
	OpClearLine      = "clear_line"
	OpClearLastLines = "clear_last_lines"
	OpClearChars     = "clear_chars"
)

// Message is the single envelope used in both directions. Fields not used
// by a type are omitted from the JSON.
type Message struct {
	Type MessageType `json:"type"`

	// hello, resize
	Rows  int    `json:"rows,omitempty"`
	Cols  int    `json:"cols,omitempty"`
	Color string `json:"color,omitempty"` // termenv profile name
	Agent string `json:"agent,omitempty"`

	// key
	Key string `json:"key,omitempty"`

	// welcome
	Title   string `json:"title,omitempty"`
	Version string `json:"version,omitempty"`

	// op
	Op string `json:"op,omitempty"`
	N  int    `json:"n,omitempty"`

	// op, done
	Text string `json:"text,omitempty"`

	// error
	Error string `json:"error,omitempty"`
}

// String returns a compact description for logs
func (m Message) String() string {
	switch m.Type {
	case TypeKey:
		return fmt.Sprintf("key(%q)", m.Key)
	case TypeOp:
		return fmt.Sprintf("op(%s n=%d len=%d)", m.Op, m.N, len(m.Text))
	case TypeHello, TypeResize:
		return fmt.Sprintf("%s(%dx%d)", m.Type, m.Rows, m.Cols)
	case TypeError:
		return fmt.Sprintf("error(%s)", m.Error)
	default:
		return string(m.Type)
	}
}

// ParseProfile maps a termenv profile name to the profile. Unknown names
// map to termenv.Ascii so output stays readable.
func ParseProfile(name string) termenv.Profile {
	for _, p := range []termenv.Profile{termenv.TrueColor, termenv.ANSI256, termenv.ANSI, termenv.Ascii} {
		if strings.EqualFold(p.Name(), name) {
			return p
		}
	}
	return termenv.Ascii
}
