package prompt

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/muurk/termask/internal/terminal"
	"github.com/muurk/termask/internal/terminal/terminaltest"
	"github.com/muurk/termask/internal/ui"
)

var plain = ui.PlainTheme(ui.Palette{})

func minLength(n int) Validator[string] {
	return func(s string) (string, error) {
		if len(s) < n {
			return "", NewValidationError("Too short")
		}
		return s, nil
	}
}

func TestText_RoundTrip(t *testing.T) {
	scr := terminaltest.New(10, terminaltest.Type("abc\n")...)

	got, err := NewText("Name?").Theme(plain).Ask(scr)
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if got != "abc" {
		t.Errorf("Ask() = %q, want %q", got, "abc")
	}
	if want := []string{"? Name? abc"}; !reflect.DeepEqual(scr.Lines(), want) {
		t.Errorf("screen = %q, want %q", scr.Lines(), want)
	}
	if scr.Current() != "" {
		t.Errorf("current line = %q, want empty", scr.Current())
	}
}

func TestText_EmptyAnswer(t *testing.T) {
	scr := terminaltest.New(10, terminal.Enter)

	got, err := NewText("Name?").Theme(plain).Ask(scr)
	if err != nil || got != "" {
		t.Fatalf("Ask() = %q, %v; want empty answer", got, err)
	}
}

func TestInput_Rendering(t *testing.T) {
	tests := []struct {
		name    string
		def     string
		keys    []terminal.Key
		wantCur string
		wantCol int
	}{
		{"typing", "", terminaltest.Type("abc"), "❯❯ abc", 6},
		{"default", "hello", nil, "❯❯ hello", 8},
		{"left", "", terminaltest.Seq("abc", terminal.Left, terminal.Left), "❯❯ abc", 4},
		{"insert in middle", "", terminaltest.Seq("ac", terminal.Left, "b"), "❯❯ abc", 5},
		{"backspace at end", "", terminaltest.Seq("abc", terminal.Backspace), "❯❯ ab", 5},
		{"backspace in middle", "", terminaltest.Seq("abc", terminal.Left, terminal.Backspace), "❯❯ ac", 4},
		{"backspace at start", "ab", terminaltest.Seq(terminal.Left, terminal.Left, terminal.Backspace), "❯❯ ab", 3},
		{"backspace on empty", "", []terminal.Key{terminal.Backspace}, "❯❯ ", 3},
		{"right past end", "ab", terminaltest.Seq(terminal.Right, terminal.Right), "❯❯ ab", 5},
		{"left then right", "ab", terminaltest.Seq(terminal.Left, terminal.Right), "❯❯ ab", 5},
		{"ignored keys", "", terminaltest.Seq("a", terminal.Up, terminal.Down, terminal.Key{Code: terminal.KeyOther}), "❯❯ a", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scr := terminaltest.New(10, tt.keys...)

			_, err := NewText("Q").Default(tt.def).Theme(plain).Ask(scr)
			if !errors.Is(err, io.EOF) {
				t.Fatalf("Ask() error = %v, want io.EOF once keys run out", err)
			}
			if got := scr.Current(); got != tt.wantCur {
				t.Errorf("input line = %q, want %q", got, tt.wantCur)
			}
			if got := scr.Column(); got != tt.wantCol {
				t.Errorf("cursor column = %d, want %d", got, tt.wantCol)
			}
			if want := []string{"? Q (<enter> to proceed)"}; !reflect.DeepEqual(scr.Lines(), want) {
				t.Errorf("lines = %q, want %q", scr.Lines(), want)
			}
		})
	}
}

func TestInput_CharsetFilter(t *testing.T) {
	scr := terminaltest.New(10, terminaltest.Seq("a1b", terminal.Left, "2c", "\n")...)

	got, err := NewText("Letters").Charset(RuneRange('a', 'z')...).Theme(plain).Ask(scr)
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if got != "acb" {
		t.Errorf("Ask() = %q, want %q", got, "acb")
	}
}

func TestInput_CharsetRejectedKeyDoesNotRepaint(t *testing.T) {
	scr := terminaltest.New(10, terminaltest.Type("ab1")...)

	_, _ = NewText("Letters").Charset(RuneRange('a', 'z')...).Theme(plain).Ask(scr)

	writes := 0
	for _, op := range scr.Ops {
		if op == "write string" {
			writes++
		}
	}
	// prompt prefix plus one write per accepted rune
	if writes != 3 {
		t.Errorf("write string ops = %d, want 3 (%v)", writes, scr.Ops)
	}
}

func TestInput_RetryAfterRejection(t *testing.T) {
	scr := terminaltest.New(10, terminaltest.Type("ab\n")...)

	_, err := NewInput("Name?", minLength(3)).Theme(plain).Ask(scr)
	if !errors.Is(err, io.EOF) {
		t.Fatalf("Ask() error = %v, want io.EOF", err)
	}
	want := []string{"? Name? (<enter> to proceed)", "X Too short"}
	if !reflect.DeepEqual(scr.Lines(), want) {
		t.Errorf("lines = %q, want %q", scr.Lines(), want)
	}
	if scr.Current() != "❯❯ ab" || scr.Column() != 5 {
		t.Errorf("input = %q col %d, want buffer kept with cursor at end", scr.Current(), scr.Column())
	}

	// second rejection replaces the first, then success clears everything
	scr2 := terminaltest.New(10, terminaltest.Type("ab\n\nc\n")...)
	got, err := NewInput("Name?", minLength(3)).Theme(plain).Ask(scr2)
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if got != "abc" {
		t.Errorf("Ask() = %q, want %q", got, "abc")
	}
	if want := []string{"? Name? abc"}; !reflect.DeepEqual(scr2.Lines(), want) {
		t.Errorf("lines = %q, want %q", scr2.Lines(), want)
	}
}

func TestInput_ErrorLineReplaced(t *testing.T) {
	calls := 0
	validate := func(s string) (string, error) {
		calls++
		return "", Invalidf("attempt %d", calls)
	}
	scr := terminaltest.New(10, terminal.Enter, terminal.Enter)

	_, _ = NewInput("Q", validate).Theme(plain).Ask(scr)

	want := []string{"? Q (<enter> to proceed)", "X attempt 2"}
	if !reflect.DeepEqual(scr.Lines(), want) {
		t.Errorf("lines = %q, want %q", scr.Lines(), want)
	}
}

func TestInput_DeviceErrors(t *testing.T) {
	boom := errors.New("boom")
	scr := terminaltest.New(10, terminaltest.Type("a\n")...)
	scr.WriteErr = boom

	_, err := NewText("Q").Theme(plain).Ask(scr)
	if !errors.Is(err, boom) {
		t.Fatalf("Ask() error = %v, want boom", err)
	}
	var de *terminal.DeviceError
	if !errors.As(err, &de) || de.Op != "write line" {
		t.Errorf("Ask() error = %#v, want DeviceError for write line", err)
	}

	_, err = NewText("Q").Theme(plain).Ask(terminaltest.New(10))
	if !terminal.IsDeviceError(err) || !errors.Is(err, io.EOF) {
		t.Errorf("Ask() with no keys error = %v, want device error wrapping EOF", err)
	}
}

func TestInput_Interrupted(t *testing.T) {
	dev := &interruptDevice{Screen: terminaltest.New(10)}

	_, err := NewText("Q").Theme(plain).Ask(dev)
	if !errors.Is(err, terminal.ErrInterrupted) {
		t.Errorf("Ask() error = %v, want ErrInterrupted", err)
	}
}

type interruptDevice struct {
	*terminaltest.Screen
}

func (d *interruptDevice) ReadKey() (terminal.Key, error) {
	return terminal.Key{}, terminal.ErrInterrupted
}

func TestInput_ValidatorSeesWholeBuffer(t *testing.T) {
	var seen []string
	validate := func(s string) (int, error) {
		seen = append(seen, s)
		if !strings.HasSuffix(s, "!") {
			return 0, NewValidationError("needs !")
		}
		return len(s), nil
	}
	scr := terminaltest.New(10, terminaltest.Type("hi\n!\n")...)

	got, err := NewInput("Q", validate).Theme(plain).Ask(scr)
	if err != nil || got != 3 {
		t.Fatalf("Ask() = %d, %v; want 3", got, err)
	}
	if want := []string{"hi", "hi!"}; !reflect.DeepEqual(seen, want) {
		t.Errorf("validator saw %q, want %q", seen, want)
	}
}
