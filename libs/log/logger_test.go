package log_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/ntpmcp/ntpmcp/libs/log"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := log.NewLogger(&buf)
	logger.Info("Querying time source",
		"server", "pool.ntp.org",
		"attempt", 1,
		"timeout", "5s")

	msg := strings.TrimSpace(buf.String())
	if !strings.Contains(msg, "Querying time source") {
		t.Errorf("expected logger output to contain the message, got %s", msg)
	}
	if !strings.Contains(msg, "pool.ntp.org") {
		t.Errorf("expected logger output to contain the server keyval, got %s", msg)
	}
}

func TestNewJSONLoggerNoTS(t *testing.T) {
	var buf bytes.Buffer

	logger := log.NewJSONLoggerNoTS(&buf)
	logger.With("module", "mcp").Error("request failed", "code", -32601)

	want := `{"level":"ERROR","msg":"request failed","module":"mcp","code":-32601}`
	have := strings.TrimSpace(buf.String())
	if want != have {
		t.Errorf("\nwant '%s'\nhave '%s'", want, have)
	}
}

func TestWithPropagatesContext(t *testing.T) {
	var buf bytes.Buffer

	logger := log.NewJSONLoggerNoTS(&buf).With("module", "cache")
	logger.Info("hit", "age", "12s")

	want := `{"level":"INFO","msg":"hit","module":"cache","age":"12s"}`
	have := strings.TrimSpace(buf.String())
	if want != have {
		t.Errorf("\nwant '%s'\nhave '%s'", want, have)
	}
}

func BenchmarkLoggerSimple(b *testing.B) {
	benchmarkRunner(b, log.NewLogger(io.Discard), baseInfoMessage)
}

func BenchmarkLoggerContextual(b *testing.B) {
	benchmarkRunner(b, log.NewLogger(io.Discard), withInfoMessage)
}

func benchmarkRunner(b *testing.B, logger log.Logger, f func(log.Logger)) {
	b.Helper()
	lc := logger.With("common_key", "common_value")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f(lc)
	}
}

var (
	baseInfoMessage = func(logger log.Logger) { logger.Info("foo_message", "foo_key", "foo_value") }
	withInfoMessage = func(logger log.Logger) { logger.With("a", "b").Info("c", "d", "f") }
)
