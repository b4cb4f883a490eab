package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
)

// LevelTrace sits below slog.LevelDebug for the chattiest output.
const LevelTrace = slog.Level(-8)

// ParseLevel maps a level name to a slog level. ok is false for "none",
// which disables logging.
func ParseLevel(s string) (level slog.Level, ok bool) {
	switch strings.ToLower(s) {
	case "trace":
		return LevelTrace, true
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelError, false
	}
}

// File is a log file that can be reopened after it has been rotated.
type File struct {
	path string
	mu   sync.Mutex
	fh   *os.File
}

func OpenFile(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory for '%s': %w", path, err)
	}
	f := &File{path: path}
	if err := f.Reopen(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fh.Write(p)
}

// Reopen closes the current handle and opens path again.
func (f *File) Reopen() error {
	fh, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("could not open log file '%s': %w", f.path, err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fh != nil {
		_ = f.fh.Close()
	}
	f.fh = fh
	return nil
}

func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fh == nil {
		return nil
	}
	err := f.fh.Close()
	f.fh = nil
	return err
}

// reopenOnHangup reopens f on every SIGHUP so external rotation works:
//
//	mv easycode.log easycode.bak && kill -HUP <pid>
func (f *File) reopenOnHangup() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGHUP)
	go func() {
		for range sigs {
			if err := f.Reopen(); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
	}()
}

// NewHandler builds the handler for w. A level of "none" discards everything.
func NewHandler(w io.Writer, level string, json bool) slog.Handler {
	lvl, ok := ParseLevel(level)
	if !ok {
		return slog.DiscardHandler
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if json {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// Setup installs the default slog logger. Logs go to file when set,
// otherwise to stderr. The returned func closes the log file.
func Setup(level, file string, json bool) (func() error, error) {
	var w io.Writer = os.Stderr
	closer := func() error { return nil }

	if file != "" {
		if _, ok := ParseLevel(level); ok {
			f, err := OpenFile(file)
			if err != nil {
				return closer, err
			}
			f.reopenOnHangup()
			w, closer = f, f.Close
		}
	}

	slog.SetDefault(slog.New(NewHandler(w, level, json)))
	return closer, nil
}
