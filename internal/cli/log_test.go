package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	logger.Debug("hidden debug line")
	logger.Info("visible info line")

	out := buf.String()
	if strings.Contains(out, "hidden debug line") {
		t.Error("debug message logged at info level")
	}
	if !strings.Contains(out, "visible info line") {
		t.Errorf("info message missing from output: %q", out)
	}
}

func TestLoggerRoundTripsThroughContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.DebugLevel)

	ctx := withLogger(context.Background(), logger)
	loggerFromContext(ctx).Debug("threaded")

	if !strings.Contains(buf.String(), "threaded") {
		t.Errorf("context logger did not write: %q", buf.String())
	}
}

func TestLoggerFromContextFallback(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Error("loggerFromContext() returned nil without an attached logger")
	}
}

func TestDebugfAdapter(t *testing.T) {
	var buf bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&buf, log.DebugLevel))

	debugf(ctx)("resolved %d of %d", 3, 5)

	if !strings.Contains(buf.String(), "resolved 3 of 5") {
		t.Errorf("debugf output = %q", buf.String())
	}
}
