package log

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		level slog.Level
		ok    bool
	}{
		{"trace", LevelTrace, true},
		{"DEBUG", slog.LevelDebug, true},
		{"info", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"none", slog.LevelError, false},
		{"", slog.LevelError, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, ok := ParseLevel(tt.input)
			if level != tt.level || ok != tt.ok {
				t.Errorf("expected (%v, %v), got (%v, %v)", tt.level, tt.ok, level, ok)
			}
		})
	}
}

func TestNewHandlerFiltersLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, "warn", true))
	logger.Info("hidden")
	logger.Warn("shown", slog.String("k", "v"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record should be filtered: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"k":"v"`) {
		t.Errorf("expected JSON warn record, got %s", out)
	}

	buf.Reset()
	slog.New(NewHandler(&buf, "none", false)).Error("dropped")
	if buf.Len() != 0 {
		t.Errorf("none should discard, got %q", buf.String())
	}
}

func TestFileReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "easycode.log")

	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer f.Close()

	if _, err := f.Write([]byte("first\n")); err != nil {
		t.Fatal(err)
	}
	rotated := filepath.Join(dir, "logs", "easycode.bak")
	if err := os.Rename(path, rotated); err != nil {
		t.Fatal(err)
	}
	if err := f.Reopen(); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte("second\n")); err != nil {
		t.Fatal(err)
	}

	old, _ := os.ReadFile(rotated)
	cur, _ := os.ReadFile(path)
	if string(old) != "first\n" || string(cur) != "second\n" {
		t.Errorf("unexpected contents: rotated %q, current %q", old, cur)
	}
}
