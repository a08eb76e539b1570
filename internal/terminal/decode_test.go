package terminal

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestDecoder_ReadKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Key
	}{
		{"printable ascii", "ab", []Key{Char('a'), Char('b')}},
		{"multibyte rune", "é✓", []Key{Char('é'), Char('✓')}},
		{"space", " ", []Key{Space}},
		{"carriage return", "\r", []Key{Enter}},
		{"line feed", "\n", []Key{Enter}},
		{"delete as backspace", "\x7f", []Key{Backspace}},
		{"ctrl-h as backspace", "\x08", []Key{Backspace}},
		{"arrow keys", "\x1b[A\x1b[B\x1b[C\x1b[D", []Key{Up, Down, Right, Left}},
		{"ss3 arrow keys", "\x1bOA\x1bOB", []Key{Up, Down}},
		{"modified arrow", "\x1b[1;5C", []Key{Right}},
		{"delete key is other", "\x1b[3~", []Key{{Code: KeyOther}}},
		{"tab is other", "\t", []Key{{Code: KeyOther}}},
		{"lone escape", "\x1b", []Key{{Code: KeyOther}}},
		{"alt key is other", "\x1bx", []Key{{Code: KeyOther}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecoder(strings.NewReader(tt.input))
			for i, want := range tt.want {
				got, err := d.ReadKey()
				if err != nil {
					t.Fatalf("ReadKey() #%d error = %v", i, err)
				}
				if got != want {
					t.Errorf("ReadKey() #%d = %+v, want %+v", i, got, want)
				}
			}
			if _, err := d.ReadKey(); !errors.Is(err, io.EOF) {
				t.Errorf("expected io.EOF after input, got %v", err)
			}
		})
	}
}

func TestDecoder_CtrlC(t *testing.T) {
	d := NewDecoder(strings.NewReader("a\x03"))
	if _, err := d.ReadKey(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := d.ReadKey(); !errors.Is(err, ErrInterrupted) {
		t.Errorf("expected ErrInterrupted, got %v", err)
	}
}
