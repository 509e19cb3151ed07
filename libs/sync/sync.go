//go:build !deadlock
// +build !deadlock

// Package sync provides stand-ins for the standard library mutexes which
// switch to deadlock-detecting implementations when built with the
// "deadlock" tag.
package sync

import "sync"

// A Mutex is a mutual exclusion lock.
type Mutex struct {
	sync.Mutex
}

// An RWMutex is a reader/writer mutual exclusion lock.
type RWMutex struct {
	sync.RWMutex
}
