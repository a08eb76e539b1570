package terminal

import (
	"errors"
	"fmt"
)

// Device is the line-oriented terminal a prompt runs against.
//
// A prompt owns the Device for the duration of one Ask call; callers must not
// read from or write to it concurrently.
type Device interface {
	// ReadKey blocks until the next key event arrives.
	ReadKey() (Key, error)
	// WriteLine writes text and moves to the start of the next line.
	WriteLine(text string) error
	// WriteString writes text without terminating the line.
	WriteString(text string) error
	// MoveCursor moves the cursor horizontally; negative moves left.
	MoveCursor(delta int) error
	// ClearLine erases the current line and returns to its first column.
	ClearLine() error
	// ClearLastLines erases the n lines above the cursor and moves up to
	// the first of them.
	ClearLastLines(n int) error
	// ClearChars erases the n cells before the cursor.
	ClearChars(n int) error
	// Size reports the terminal height and width.
	Size() (rows, cols int, err error)
}

// ErrInterrupted is returned by ReadKey when the user presses Ctrl+C.
var ErrInterrupted = errors.New("interrupted")

// DeviceError reports a failed Device operation. It is always fatal for the
// prompt that observed it.
type DeviceError struct {
	Op  string // Device operation, e.g. "read key", "write line"
	Err error  // Underlying error reported by the device
}

// Error implements the error interface
func (e *DeviceError) Error() string {
	return fmt.Sprintf("terminal %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *DeviceError) Unwrap() error {
	return e.Err
}

// WrapError wraps err in a *DeviceError for op. A nil err returns nil and an
// error that already is a *DeviceError is returned unchanged.
func WrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var de *DeviceError
	if errors.As(err, &de) {
		return err
	}
	return &DeviceError{Op: op, Err: err}
}

// IsDeviceError checks if an error is a DeviceError
func IsDeviceError(err error) bool {
	var de *DeviceError
	return errors.As(err, &de)
}
