package prompt

import (
	"github.com/muurk/termask/internal/logging"
	"github.com/muurk/termask/internal/terminal"
)

// screen wraps a Device so every failure comes back as a
// *terminal.DeviceError naming the operation.
type screen struct {
	dev   terminal.Device
	title string
}

func newScreen(dev terminal.Device, title string) *screen {
	return &screen{dev: dev, title: title}
}

func (s *screen) readKey() (terminal.Key, error) {
	k, err := s.dev.ReadKey()
	if err != nil {
		return k, terminal.WrapError("read key", err)
	}
	logging.LogKey(s.title, k.String())
	return k, nil
}

func (s *screen) writeLine(text string) error {
	return terminal.WrapError("write line", s.dev.WriteLine(text))
}

func (s *screen) writeString(text string) error {
	return terminal.WrapError("write string", s.dev.WriteString(text))
}

func (s *screen) moveCursor(delta int) error {
	if delta == 0 {
		return nil
	}
	return terminal.WrapError("move cursor", s.dev.MoveCursor(delta))
}

func (s *screen) clearLine() error {
	return terminal.WrapError("clear line", s.dev.ClearLine())
}

func (s *screen) clearLastLines(n int) error {
	if n <= 0 {
		return nil
	}
	return terminal.WrapError("clear last lines", s.dev.ClearLastLines(n))
}

func (s *screen) clearChars(n int) error {
	if n <= 0 {
		return nil
	}
	return terminal.WrapError("clear chars", s.dev.ClearChars(n))
}

func (s *screen) rows() (int, error) {
	rows, _, err := s.dev.Size()
	if err != nil {
		return 0, terminal.WrapError("size", err)
	}
	return rows, nil
}
