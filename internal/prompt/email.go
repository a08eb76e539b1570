package prompt

import (
	"net/mail"
	"net/netip"
	"strings"

	"github.com/muurk/termask/internal/terminal"
	"github.com/muurk/termask/internal/ui"
)

// Length limits from RFC 5321
const (
	maxLocalPart  = 64
	maxDomain     = 254
	maxDomainPart = 63
)

// Email asks for an email address.
type Email struct {
	title string
	def   string
	keys  KeyMap
	theme *ui.Theme
}

// NewEmail creates an email input with the given title.
func NewEmail(title string) *Email {
	return &Email{title: title, keys: DefaultKeyMap()}
}

// Default pre-fills the buffer.
func (e *Email) Default(addr string) *Email {
	e.def = addr
	return e
}

// Theme sets the theme used for rendering.
func (e *Email) Theme(t *ui.Theme) *Email {
	e.theme = t
	return e
}

// KeyMap replaces the key bindings.
func (e *Email) KeyMap(k KeyMap) *Email {
	e.keys = k
	return e
}

// Ask runs the prompt on dev until a well-formed address is entered.
func (e *Email) Ask(dev terminal.Device) (*mail.Address, error) {
	return NewInput(e.title, ValidateEmail).
		Default(e.def).
		Theme(e.theme).
		KeyMap(e.keys).
		Ask(dev)
}

// ValidateEmail checks that input is a bare address (no display name or
// angle brackets). Failures are *ValidationError values naming the part of
// the address that is wrong.
func ValidateEmail(input string) (*mail.Address, error) {
	at := strings.LastIndexByte(input, '@')
	if at < 0 {
		return nil, NewValidationError("Missing @ separator")
	}
	local, domain := input[:at], input[at+1:]

	switch {
	case local == "":
		return nil, NewValidationError("The local part is empty")
	case len(local) > maxLocalPart:
		return nil, NewValidationError("The local part is too long")
	case domain == "":
		return nil, NewValidationError("The domain is empty")
	case len(domain) > maxDomain:
		return nil, NewValidationError("The domain is too long")
	}

	if err := checkLocal(local); err != nil {
		return nil, err
	}
	if err := checkDomain(domain); err != nil {
		return nil, err
	}

	if strings.ContainsAny(input, "<> \t") {
		return nil, NewValidationError("An invalid character is present")
	}
	addr, err := mail.ParseAddress(input)
	if err != nil || addr.Name != "" {
		return nil, NewValidationError("An invalid character is present")
	}
	return addr, nil
}

func checkLocal(local string) error {
	if strings.HasPrefix(local, "\"") {
		if !balancedQuotes(local) {
			return NewValidationError("Unbalanced quotes")
		}
		return nil
	}
	if strings.Count(local, "(") != strings.Count(local, ")") {
		return NewValidationError("An invalid comment is present")
	}
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") || strings.Contains(local, "..") {
		return NewValidationError("Invalid placement of a '.'")
	}
	if strings.Contains(local, "\"") {
		return NewValidationError("Unbalanced quotes")
	}
	return nil
}

// balancedQuotes reports whether a quoted local part is closed by its last
// character, honouring backslash escapes.
func balancedQuotes(local string) bool {
	if len(local) < 2 || !strings.HasSuffix(local, "\"") {
		return false
	}
	escaped := false
	for i := 1; i < len(local)-1; i++ {
		switch {
		case escaped:
			escaped = false
		case local[i] == '\\':
			escaped = true
		case local[i] == '"':
			return false
		}
	}
	return !escaped
}

func checkDomain(domain string) error {
	if strings.HasPrefix(domain, "[") {
		if !strings.HasSuffix(domain, "]") {
			return NewValidationError("Invalid IP address")
		}
		literal := strings.TrimPrefix(domain[1:len(domain)-1], "IPv6:")
		if _, err := netip.ParseAddr(literal); err != nil {
			return NewValidationError("Invalid IP address")
		}
		return nil
	}
	if strings.Count(domain, "(") != strings.Count(domain, ")") {
		return NewValidationError("An invalid comment is present")
	}
	for _, label := range strings.Split(domain, ".") {
		if label == "" {
			return NewValidationError("Invalid placement of a '.'")
		}
		if len(label) > maxDomainPart {
			return NewValidationError("The subdomain is too long")
		}
	}
	return nil
}
