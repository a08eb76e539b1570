package remote

import (
	"encoding/json"
	"testing"

	"github.com/muesli/termenv"
)

func TestParseProfile(t *testing.T) {
	tests := []struct {
		name string
		want termenv.Profile
	}{
		{"TrueColor", termenv.TrueColor},
		{"truecolor", termenv.TrueColor},
		{"ANSI256", termenv.ANSI256},
		{"ANSI", termenv.ANSI},
		{"Ascii", termenv.Ascii},
		{"", termenv.Ascii},
		{"sixel", termenv.Ascii},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseProfile(tt.name); got != tt.want {
				t.Errorf("ParseProfile(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestMessage_OmitsUnusedFields(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want string
	}{
		{"key", Message{Type: TypeKey, Key: "enter"}, `{"type":"key","key":"enter"}`},
		{"op", Message{Type: TypeOp, Op: OpClearLastLines, N: 2}, `{"type":"op","op":"clear_last_lines","n":2}`},
		{"hello", Message{Type: TypeHello, Rows: 24, Cols: 80, Color: "Ascii"}, `{"type":"hello","rows":24,"cols":80,"color":"Ascii"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.msg)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Marshal() = %s, want %s", data, tt.want)
			}
		})
	}
}

func TestMessage_String(t *testing.T) {
	tests := []struct {
		msg  Message
		want string
	}{
		{Message{Type: TypeKey, Key: "x"}, `key("x")`},
		{Message{Type: TypeResize, Rows: 40, Cols: 120}, "resize(40x120)"},
		{Message{Type: TypeOp, Op: OpWrite, Text: "abc"}, "op(write n=0 len=3)"},
		{Message{Type: TypeError, Error: "boom"}, "error(boom)"},
		{Message{Type: TypeWelcome}, "welcome"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.msg.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
