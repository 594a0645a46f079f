package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", File: "api.log", MaxSize: 10}, false},
		{"bad level", Config{Level: "trace", File: "api.log", MaxSize: 10}, true},
		{"no file", Config{Level: "info", MaxSize: 10}, true},
		{"zero size", Config{Level: "info", File: "api.log"}, true},
		{"negative backups", Config{Level: "info", File: "api.log", MaxSize: 1, MaxBackups: -1}, true},
		{"negative age", Config{Level: "info", File: "api.log", MaxSize: 1, MaxAge: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewLoggerWritesFileAndConsole(t *testing.T) {
	var console bytes.Buffer
	file := filepath.Join(t.TempDir(), "logs", "api.log")

	logger, err := NewLogger(&Config{Level: "INFO", File: file, Console: &console})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	logger.Debug("hidden %d", 1)
	logger.Info("visible %d", 2)
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if strings.Contains(console.String(), "hidden") {
		t.Errorf("debug line should be filtered at info level: %q", console.String())
	}
	if !strings.Contains(console.String(), "visible 2") {
		t.Errorf("expected info line on console, got %q", console.String())
	}

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "visible 2") {
		t.Errorf("expected info line in log file, got %q", string(data))
	}
}

func TestNewLoggerRejectsInvalidLevel(t *testing.T) {
	_, err := NewLogger(&Config{Level: "loud", File: filepath.Join(t.TempDir(), "api.log")})
	if err == nil {
		t.Fatal("expected error for invalid level")
	}
	var ctxErr *ErrorWithContext
	if !errors.As(err, &ctxErr) {
		t.Fatalf("expected ErrorWithContext, got %T", err)
	}
}

func TestLogHTTPRequestGatedByConfig(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, "debug")

	logger.LogHTTPRequest("rid", "POST", "/api/contact", "127.0.0.1", 200, 10, "1ms")
	if buf.Len() != 0 {
		t.Errorf("request line written while LogRequests is off: %q", buf.String())
	}

	logger.logRequests = true
	logger.LogHTTPRequest("rid", "POST", "/api/contact", "127.0.0.1", 200, 10, "1ms")
	if !strings.Contains(buf.String(), "/api/contact") {
		t.Errorf("expected request line, got %q", buf.String())
	}
}

func TestLogHTTPErrorAlwaysWritten(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, "error")

	logger.LogHTTPError("rid", "POST", "/api/contact", "127.0.0.1", 500, "Failed to send", errors.New("provider down"))
	if !strings.Contains(buf.String(), "provider down") {
		t.Errorf("expected error cause in log, got %q", buf.String())
	}
}

func TestWrapError(t *testing.T) {
	if WrapError(nil, "ctx") != nil {
		t.Error("WrapError(nil) should be nil")
	}
	base := errors.New("boom")
	err := WrapError(base, "sending")
	if !errors.Is(err, base) {
		t.Error("wrapped error should unwrap to base")
	}
	if err.Error() != "sending: boom" {
		t.Errorf("Error() = %q", err.Error())
	}
}
