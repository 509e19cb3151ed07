package config

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownLogFormat = errors.New("unknown log_format (must be 'plain' or 'json')")
	ErrEmptyServerName  = errors.New("server name cannot be empty")
	ErrEmptyTCPAddress  = errors.New("tcp_laddr is required when transport is 'tcp'")
	ErrRetryWaitOrder   = errors.New("retry_max_wait must not be below retry_initial_wait")
)

// ErrInSection is returned if validate basic does not pass for any underlying
// config section.
type ErrInSection struct {
	Err     error
	Section string
}

func (e ErrInSection) Error() string {
	return fmt.Sprintf("error in [%s] section: %s", e.Section, e.Err.Error())
}

func (e ErrInSection) Unwrap() error {
	return e.Err
}

// ErrUnknownTransport is returned for transport values other than "stdio"
// and "tcp".
type ErrUnknownTransport struct {
	Transport string
}

func (e ErrUnknownTransport) Error() string {
	return fmt.Sprintf("unknown transport %q (must be 'stdio' or 'tcp')", e.Transport)
}

// ErrUnknownTimeZone is returned when the configured time zone name cannot
// be resolved against the IANA database.
type ErrUnknownTimeZone struct {
	Zone string
	Err  error
}

func (e ErrUnknownTimeZone) Error() string {
	return fmt.Sprintf("unknown time zone %s", e.Zone)
}

func (e ErrUnknownTimeZone) Unwrap() error {
	return e.Err
}

// ErrNonPositive reports a duration or count field that must be above zero.
type ErrNonPositive struct {
	Field string
}

func (e ErrNonPositive) Error() string {
	return e.Field + " must be positive"
}

// ErrNegative reports a field that must not be below zero.
type ErrNegative struct {
	Field string
}

func (e ErrNegative) Error() string {
	return e.Field + " can't be negative"
}
