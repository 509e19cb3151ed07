package server

import "fmt"

// ErrListen is returned when the TCP listener cannot be bound.
type ErrListen struct {
	Addr string
	Err  error
}

func (e ErrListen) Error() string {
	return fmt.Sprintf("failed to listen on %s: %v", e.Addr, e.Err)
}

func (e ErrListen) Unwrap() error {
	return e.Err
}

// ErrPanicked is the internal-error payload for a handler that panicked.
type ErrPanicked struct {
	Value any
}

func (e ErrPanicked) Error() string {
	return fmt.Sprintf("panic in handler: %v", e.Value)
}
