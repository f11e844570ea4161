package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"prestige/internal/config"
)

func TestConsoleHandlerFormatsComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar, false))

	logger = NewComponentLogger(logger, "analysis")
	logger.Info("catalog attributed", String(FieldPlatform, "Disney+"), Int("titles", 3), String("note", "two words"))

	line := buf.String()
	if !strings.Contains(line, " INFO analysis: catalog attributed") {
		t.Fatalf("unexpected console prefix: %q", line)
	}
	if !strings.Contains(line, "platform=Disney+") {
		t.Fatalf("expected platform field, got %q", line)
	}
	if !strings.Contains(line, "titles=3") {
		t.Fatalf("expected titles field, got %q", line)
	}
	if !strings.Contains(line, `note="two words"`) {
		t.Fatalf("expected quoted value, got %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should be rendered as prefix only, got %q", line)
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, levelVar, false))

	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %q", buf.String())
	}
	logger.Warn("shown")
	if !strings.Contains(buf.String(), "WARN shown") {
		t.Fatalf("expected warn line, got %q", buf.String())
	}
}

func TestConsoleHandlerGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, new(slog.LevelVar), false))
	logger.WithGroup("counts").Info("done", Int("winners", 2))
	if !strings.Contains(buf.String(), "counts.winners=2") {
		t.Fatalf("expected grouped key, got %q", buf.String())
	}
}

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "prestige.log")
	logger, closeLog, err := New(Options{Level: "debug", Format: "json", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer closeLog()
	logger.Debug("classified", String(FieldPlatform, "netflix"), Error(errors.New("boom")))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &record); err != nil {
		t.Fatalf("decode json log: %v (%s)", err, data)
	}
	if record["level"] != "debug" {
		t.Fatalf("expected lowercase level, got %v", record["level"])
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key in %v", record)
	}
	if record["platform"] != "netflix" {
		t.Fatalf("expected platform field, got %v", record["platform"])
	}
	if record["error"] != "boom" {
		t.Fatalf("expected error field, got %v", record["error"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfigCreatesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "log")
	cfg.Logging.Format = "json"

	logger, closeLog, err := NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("hello")
	if err := closeLog(); err != nil {
		t.Fatalf("close log: %v", err)
	}

	path := filepath.Join(cfg.Paths.LogDir, "prestige.log")
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected log file: %v", err)
	}
	if !strings.Contains(string(before), "hello") {
		t.Fatalf("expected hello in log file, got %q", before)
	}

	logger.Info("after close")
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if string(after) != string(before) {
		t.Fatalf("log file written after close: %q", after)
	}
	if err := closeLog(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, new(slog.LevelVar), false))

	WarnWithContext(logger, "rows skipped", "award_rows_skipped", String(FieldImpact, "rows excluded"))

	line := buf.String()
	for _, want := range []string{"event_type=award_rows_skipped", `error_hint="check logs for details"`, `impact="rows excluded"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
}

func TestRunIDContext(t *testing.T) {
	ctx := WithRunID(context.Background(), "abc")
	id, ok := RunIDFromContext(ctx)
	if !ok || id != "abc" {
		t.Fatalf("RunIDFromContext = %q, %v", id, ok)
	}
	if _, ok := RunIDFromContext(context.Background()); ok {
		t.Fatal("expected no run id on empty context")
	}

	var buf bytes.Buffer
	logger := WithContext(ctx, slog.New(newConsoleHandler(&buf, new(slog.LevelVar), false)))
	logger.Info("tagged")
	if !strings.Contains(buf.String(), "run_id=abc") {
		t.Fatalf("expected run_id field, got %q", buf.String())
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("nop logger should not be enabled")
	}
	logger.Error("ignored")
}

func TestNewFromConfigToRedirectsStderr(t *testing.T) {
	cfg := config.Default()
	var buf bytes.Buffer

	logger, closeLog, err := NewFromConfigTo(&cfg, &buf)
	if err != nil {
		t.Fatalf("NewFromConfigTo returned error: %v", err)
	}
	defer closeLog()
	logger.Warn("redirected")
	if !strings.Contains(buf.String(), "WARN redirected") {
		t.Fatalf("expected redirected output, got %q", buf.String())
	}
}
