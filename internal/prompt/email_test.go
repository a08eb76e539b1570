package prompt

import (
	"strings"
	"testing"

	"github.com/muurk/termask/internal/terminal/terminaltest"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"simple", "ada@example.com", ""},
		{"subdomain", "ada.lovelace@mail.example.org", ""},
		{"plus tag", "ada+notes@example.com", ""},
		{"missing separator", "ada.example.com", "Missing @ separator"},
		{"empty local", "@example.com", "The local part is empty"},
		{"long local", strings.Repeat("a", 65) + "@example.com", "The local part is too long"},
		{"empty domain", "ada@", "The domain is empty"},
		{"long domain", "ada@" + strings.Repeat("a.", 128) + "com", "The domain is too long"},
		{"long label", "ada@" + strings.Repeat("a", 64) + ".com", "The subdomain is too long"},
		{"leading dot in domain", "ada@.example.com", "Invalid placement of a '.'"},
		{"double dot in domain", "ada@example..com", "Invalid placement of a '.'"},
		{"double dot in local", "ada..l@example.com", "Invalid placement of a '.'"},
		{"unbalanced quotes", "\"ada@example.com", "Unbalanced quotes"},
		{"stray quote", "a\"da@example.com", "Unbalanced quotes"},
		{"unbalanced comment", "ada(home@example.com", "An invalid comment is present"},
		{"bad ip literal", "ada@[300.1.1.1]", "Invalid IP address"},
		{"display name", "Ada <ada@example.com>", "An invalid character is present"},
		{"space", "ada lovelace@example.com", "An invalid character is present"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := ValidateEmail(tt.input)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateEmail(%q) error = %v", tt.input, err)
				}
				if addr.Address != tt.input {
					t.Errorf("Address = %q, want %q", addr.Address, tt.input)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, want %q", tt.input, err, tt.wantErr)
			}
			if err != nil && !IsValidationError(err) {
				t.Errorf("error %T is not a ValidationError", err)
			}
		})
	}
}

func TestEmail_Ask(t *testing.T) {
	scr := terminaltest.New(10, terminaltest.Type("ada\n@example.com\n")...)

	addr, err := NewEmail("Email?").Theme(plain).Ask(scr)
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if addr.Address != "ada@example.com" {
		t.Errorf("Ask() = %q", addr.Address)
	}
	if got := scr.Text(); got != "? Email? ada@example.com" {
		t.Errorf("screen = %q", got)
	}
}
