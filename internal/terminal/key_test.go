package terminal

import (
	"errors"
	"io"
	"testing"
)

func TestKey_StringRoundTrip(t *testing.T) {
	keys := []Key{Enter, Backspace, Up, Down, Left, Right, Space, Char('x'), Char('7'), Char('❯')}
	for _, k := range keys {
		t.Run(k.Code.String()+"/"+k.String(), func(t *testing.T) {
			if got := ParseKey(k.String()); got != k {
				t.Errorf("ParseKey(%q) = %+v, want %+v", k.String(), got, k)
			}
		})
	}
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		{"space", Space},
		{"enter", Enter},
		{"ctrl+x", Key{Code: KeyOther}},
		{"", Key{Code: KeyOther}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseKey(tt.name); got != tt.want {
				t.Errorf("ParseKey(%q) = %+v, want %+v", tt.name, got, tt.want)
			}
		})
	}
}

func TestWrapError(t *testing.T) {
	if WrapError("read key", nil) != nil {
		t.Fatal("WrapError(nil) should be nil")
	}

	err := WrapError("read key", io.ErrClosedPipe)
	if !IsDeviceError(err) {
		t.Fatalf("expected DeviceError, got %T", err)
	}
	if !errors.Is(err, io.ErrClosedPipe) {
		t.Error("wrapped error should unwrap to the original")
	}
	if got := err.Error(); got != "terminal read key: io: read/write on closed pipe" {
		t.Errorf("Error() = %q", got)
	}

	again := WrapError("write line", err)
	if again != err {
		t.Error("wrapping a DeviceError twice should return it unchanged")
	}
}
