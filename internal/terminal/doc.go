// Package terminal is the input device layer used by the prompts in
// internal/prompt.
//
// A prompt never talks to a terminal directly. It reads decoded key events
// and issues a small set of line-oriented screen operations through the
// Device interface:
//
//	ReadKey        blocking read of the next key event
//	WriteLine      append text and terminate the line
//	WriteString    append text without a line break
//	MoveCursor     move the cursor left (negative) or right (positive)
//	ClearLine      erase the current line and return to column 0
//	ClearLastLines erase the n lines above the cursor
//	ClearChars     erase the n cells before the cursor
//	Size           terminal rows and columns
//
// # Implementations
//
// Term drives a real terminal with ANSI escape sequences. It reads from a
// file (normally os.Stdin, switched to raw mode with golang.org/x/term) and
// writes to any io.Writer. The remote package provides a second Device that
// forwards the same operations over a websocket, and the terminaltest
// package provides a scripted Device with a simulated screen for tests.
//
// # Keys
//
// Key events carry a KeyCode and, for printable input, the rune. Key.String
// returns the names Bubble Tea uses ("enter", "up", "backspace", ...), which
// lets prompts describe their bindings with bubbles/key.
//
// # Errors
//
// Every Device operation may fail. Prompts treat any failure as fatal and
// return it wrapped in a *DeviceError that records the operation name.
// Pressing Ctrl+C on a Term surfaces as ErrInterrupted from ReadKey.
package terminal
