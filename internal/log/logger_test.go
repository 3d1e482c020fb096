package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Stuart-0728/cqnu/internal/errors"
)

func captureLogger(level Level, format Format) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:       level,
		Format:      format,
		Output:      NewOutput(&buf),
		ServiceName: "test",
	})
	return logger, &buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v\n%s", err, buf.String())
	}
	return entry
}

func TestLoggerLevels(t *testing.T) {
	logger, buf := captureLogger(LevelWarn, FormatJSON)

	logger.Debug("debug message")
	logger.Info("info message")
	if buf.Len() != 0 {
		t.Errorf("messages below Warn were emitted: %s", buf.String())
	}

	logger.Warn("warn message")
	logger.Error("error message")
	out := buf.String()
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("Warn/Error messages missing from output: %s", out)
	}
}

func TestLoggerJSONOutput(t *testing.T) {
	logger, buf := captureLogger(LevelInfo, FormatJSON)

	logger.Info("request completed", "method", "GET", "status", 200)

	entry := lastEntry(t, buf)
	if entry["msg"] != "request completed" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["method"] != "GET" {
		t.Errorf("method = %v", entry["method"])
	}
	if entry["status"] != float64(200) {
		t.Errorf("status = %v", entry["status"])
	}
}

func TestLoggerTextOutput(t *testing.T) {
	logger, buf := captureLogger(LevelInfo, FormatText)

	logger.Info("session restored", "username", "alice")

	out := buf.String()
	if !strings.Contains(out, "session restored") || !strings.Contains(out, "username=alice") {
		t.Errorf("text output missing fields: %s", out)
	}
}

func TestLoggerWith(t *testing.T) {
	logger, buf := captureLogger(LevelInfo, FormatJSON)

	scoped := logger.With("component", "session")
	scoped.Info("phase changed", "phase", "authenticated")

	entry := lastEntry(t, buf)
	if entry["component"] != "session" {
		t.Errorf("component = %v, want session", entry["component"])
	}
	if entry["phase"] != "authenticated" {
		t.Errorf("phase = %v", entry["phase"])
	}
}

func TestLoggerWithError(t *testing.T) {
	t.Run("coded error", func(t *testing.T) {
		logger, buf := captureLogger(LevelInfo, FormatJSON)

		err := errors.Wrap(errors.ErrCodeNetUnavailable, "network error",
			errors.New(errors.ErrCodeAPIRequestFailed, "connection refused"))
		logger.WithError(err).Warn("request failed")

		entry := lastEntry(t, buf)
		if entry["error_code"] != "NET-001" {
			t.Errorf("error_code = %v, want NET-001", entry["error_code"])
		}
		if entry["error"] != "network error" {
			t.Errorf("error = %v", entry["error"])
		}
		if cause, _ := entry["cause"].(string); !strings.Contains(cause, "connection refused") {
			t.Errorf("cause = %v", entry["cause"])
		}
	})

	t.Run("plain error", func(t *testing.T) {
		logger, buf := captureLogger(LevelInfo, FormatJSON)

		logger.WithError(errTimeout{}).Warn("request failed")

		entry := lastEntry(t, buf)
		if entry["error"] != "timeout" {
			t.Errorf("error = %v, want timeout", entry["error"])
		}
		if _, ok := entry["error_code"]; ok {
			t.Error("plain error should not carry an error_code")
		}
	})

	t.Run("nil error", func(t *testing.T) {
		logger, _ := captureLogger(LevelInfo, FormatJSON)

		if got := logger.WithError(nil); got != logger {
			t.Error("WithError(nil) should return the receiver unchanged")
		}
	})
}

type errTimeout struct{}

func (errTimeout) Error() string { return "timeout" }
