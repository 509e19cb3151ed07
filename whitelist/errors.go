package whitelist

import (
	"errors"
	"fmt"
)

// ErrEmptyName is returned when the candidate server name is empty or
// whitespace only.
var ErrEmptyName = errors.New("server name is empty")

// ErrInvalidEncoding is returned when a name cannot be converted to its
// ASCII (punycode) form.
type ErrInvalidEncoding struct {
	Name   string
	Source error
}

func (e ErrInvalidEncoding) Error() string {
	return fmt.Sprintf("invalid encoding for server name (%s): %v", e.Name, e.Source)
}

func (e ErrInvalidEncoding) Unwrap() error {
	return e.Source
}

// ErrInvalidFormat is returned when a name is too long or contains
// characters outside the hostname alphabet.
type ErrInvalidFormat struct {
	Name string
}

func (e ErrInvalidFormat) Error() string {
	return fmt.Sprintf("invalid server name format (%s)", e.Name)
}

// ErrIPAddress is returned when the candidate parses as a literal IP
// address. Kind is "IPv4Address" or "IPv6Address", the spelling quoted in
// the user-facing security message.
type ErrIPAddress struct {
	Name string
	Kind string
}

func (e ErrIPAddress) Error() string {
	return fmt.Sprintf("server name (%s) is a direct IP address (%s)", e.Name, e.Kind)
}

// ErrBlockedPattern is returned when the candidate matches one of the
// block rules. Pattern carries the rule's printable form for the
// user-facing security message.
type ErrBlockedPattern struct {
	Name    string
	Pattern string
}

func (e ErrBlockedPattern) Error() string {
	return fmt.Sprintf("server name (%s) matches blocked pattern '%s'", e.Name, e.Pattern)
}

// ErrNotApproved is returned when the candidate passes every block rule but
// is absent from the approved set. Default deny.
type ErrNotApproved struct {
	Name string
}

func (e ErrNotApproved) Error() string {
	return fmt.Sprintf("server name (%s) not in approved list", e.Name)
}

// errEmptyLabel is wrapped by ErrInvalidEncoding for names with leading or
// consecutive dots, which the punycode conversion cannot represent.
var errEmptyLabel = errors.New("empty label")
