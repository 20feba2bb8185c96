package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestJSONLoggerLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo)

	log.Debug("hidden")
	log.Info("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug record emitted at info level: %s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, `"key":"value"`) {
		t.Fatalf("missing info record: %s", out)
	}
}

func TestWithCarriesAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo).With("component", "serve")
	log.Info("ready")

	if !strings.Contains(buf.String(), `"component":"serve"`) {
		t.Fatalf("With attribute not carried: %s", buf.String())
	}
}

func TestPrettyHandlerOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := Pretty(&buf, slog.LevelDebug)
	log.Warn("low disk", "free_mb", 12)

	out := buf.String()
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "low disk") {
		t.Fatalf("unexpected pretty output: %q", out)
	}
	if !strings.Contains(out, "free_mb=12") {
		t.Fatalf("missing attribute: %q", out)
	}
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo)
	ctx := WithContext(context.Background(), log)
	FromContext(ctx).Info("from context")

	if !strings.Contains(buf.String(), "from context") {
		t.Fatalf("context did not carry the logger")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
