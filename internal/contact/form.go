package contact

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

var (
	ErrEmptyField   = errors.New("contact: empty field")
	ErrInvalidEmail = errors.New("contact: invalid email")
)

// RE2's \s is ASCII only; the classes also exclude \v, Unicode spaces and U+FEFF.
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

func isBlankRune(r rune) bool {
	return unicode.IsSpace(r) || unicode.Is(unicode.Z, r) || r == '\uFEFF'
}

func blank(s string) bool {
	return strings.TrimFunc(s, isBlankRune) == ""
}

// Form holds the three contact fields exactly as typed by the visitor.
type Form struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate checks that no field is blank and then that the email looks like
// local@domain.tld. The email pattern is applied to the raw value.
func (f Form) Validate() error {
	if blank(f.Name) || blank(f.Email) || blank(f.Message) {
		return ErrEmptyField
	}
	if !emailPattern.MatchString(f.Email) {
		return ErrInvalidEmail
	}
	return nil
}

func (f Form) IsZero() bool {
	return f == Form{}
}
