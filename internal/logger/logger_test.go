package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/samvad-hq/samvad-http/internal/config"
)

func TestInitWriterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	if _, err := InitWriter(&config.Config{AppName: "t", Env: "test", LogLevel: "warn"}, &buf); err != nil {
		t.Fatalf("InitWriter: %v", err)
	}
	defer func() { S = nil }()

	InfoObj("hidden", "k", 1)
	WarnObj("shown", "k", map[string]any{"a": 1})
	_ = Close()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one log line, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not json: %v", err)
	}
	if entry["msg"] != "shown" || entry["app"] != "t" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("missing ts field: %v", entry)
	}
}

func TestZapLoggerWritesStructuredField(t *testing.T) {
	var buf bytes.Buffer
	sugar, err := InitWriter(&config.Config{LogLevel: "debug"}, &buf)
	if err != nil {
		t.Fatalf("InitWriter: %v", err)
	}
	defer func() { S = nil }()

	log := NewZapLogger(sugar)
	log.DebugObj("request", "request", map[string]any{"method": "GET"})
	_ = sugar.Sync()

	if !strings.Contains(buf.String(), `"request":{"method":"GET"}`) {
		t.Fatalf("structured field missing: %s", buf.String())
	}
}

func TestHelpersAreSafeBeforeInit(t *testing.T) {
	S = nil
	InfoObj("x", "k", 1)
	ErrorObj("x", "k", 1)
	if err := Close(); err != nil {
		t.Fatalf("Close before Init: %v", err)
	}
	NewZapLogger(nil).InfoObj("x", "k", 1)
}
