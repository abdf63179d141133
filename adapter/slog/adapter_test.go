package slogadapter

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/trickstertwo/cutelog"
)

func testRecord(level cutelog.Level) cutelog.Record {
	return cutelog.Record{
		At:          time.Date(2024, 12, 31, 23, 59, 59, 123456789, time.UTC),
		Level:       level,
		PID:         255,
		GoroutineID: 16,
		Label:       "state changed",
		Message:     `{"from":"old","count":2}`,
	}
}

func decode(t *testing.T, line []byte) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(line, &m); err != nil {
		t.Fatalf("json unmarshal: %v; line=%s", err, line)
	}
	return m
}

func TestSlogAdapter_JSONHandler_EmitsRecordFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	a := New(slog.New(h))

	rec := testRecord(cutelog.LevelInfo)
	a.Log(rec)

	m := decode(t, buf.Bytes())
	// slog's JSON handler writes milliseconds.
	if m["time"] != "2024-12-31T23:59:59.123Z" {
		t.Fatalf("time mismatch: %v", m["time"])
	}
	if m["msg"] != "state changed" || m["level"] != "INFO" || m["severity"] != "INFO" {
		t.Fatalf("entry mismatch: %v", m)
	}
	if m["pid"] != "ff" || m["tid"] != "10" {
		t.Fatalf("pid/tid mismatch: %v %v", m["pid"], m["tid"])
	}
	payload, _ := m["payload"].(map[string]any)
	if payload["from"] != "old" || payload["count"] != float64(2) {
		t.Fatalf("payload mismatch: %#v", m["payload"])
	}
}

func TestSlogAdapter_FatalLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	a := NewAdapter(Config{Writer: &buf, MinLevel: cutelog.LevelDebug})
	a.Log(testRecord(cutelog.LevelFatal))

	m := decode(t, buf.Bytes())
	// slog has no name for 12 and renders it relative to ERROR.
	if m["level"] != "ERROR+4" || m["severity"] != "FATAL" {
		t.Fatalf("fatal mapping: %v / %v", m["level"], m["severity"])
	}
}

func TestSlogAdapter_SetMinLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	a := NewAdapter(Config{Writer: &buf, MinLevel: cutelog.LevelError})
	a.Log(testRecord(cutelog.LevelWarn))
	if buf.Len() != 0 {
		t.Fatalf("warn should be filtered: %s", buf.String())
	}
	a.SetMinLevel(cutelog.LevelWarn)
	a.Log(testRecord(cutelog.LevelWarn))
	if buf.Len() == 0 {
		t.Fatal("warn not emitted after SetMinLevel")
	}

	New(nil).SetMinLevel(cutelog.LevelError) // no LevelVar: no-op
}

func TestSlogAdapter_TextFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	a := NewAdapter(Config{Writer: &buf, MinLevel: cutelog.LevelDebug, Format: FormatText})
	a.Log(testRecord(cutelog.LevelDebug))

	out := buf.String()
	if !strings.Contains(out, `msg="state changed"`) || !strings.Contains(out, "severity=DEBUG") {
		t.Fatalf("text output: %q", out)
	}
}

func TestSlogBackendRegistered(t *testing.T) {
	t.Setenv(cutelog.EnvBackend, "")
	t.Setenv(cutelog.EnvSeverity, "")
	t.Setenv(cutelog.EnvEnvFile, "")

	var buf bytes.Buffer
	l, err := cutelog.New(cutelog.Settings{Backend: "slog", Writer: &buf})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	l.Error("App", "boom")

	m := decode(t, buf.Bytes())
	if m["msg"] != "App" || m["payload"] != "boom" {
		t.Fatalf("entry mismatch: %v", m)
	}
}
