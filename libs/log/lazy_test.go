package log_test

import (
	"fmt"
	"testing"

	"github.com/ntpmcp/ntpmcp/libs/log"
)

type countingStringer struct {
	calls int
}

func (c *countingStringer) String() string {
	c.calls++
	return "evaluated"
}

func TestLazySprintf(t *testing.T) {
	lazy := log.NewLazySprintf("server %s attempt %d", "pool.ntp.org", 2)
	want := fmt.Sprintf("server %s attempt %d", "pool.ntp.org", 2)
	if lazy.String() != want {
		t.Fatalf("expected %s, got %s", want, lazy.String())
	}
}

func TestLazySprintfDefersFormatting(t *testing.T) {
	inner := &countingStringer{}
	lazy := log.NewLazySprintf("%s", inner)
	if inner.calls != 0 {
		t.Fatalf("expected no formatting before String(), got %d calls", inner.calls)
	}
	_ = lazy.String()
	if inner.calls != 1 {
		t.Fatalf("expected exactly one formatting call, got %d", inner.calls)
	}
}
