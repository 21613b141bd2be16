package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// sink is where log lines go. The file is non-nil only when Enable opened it.
type sink struct {
	mu     sync.Mutex
	w      io.Writer
	file   *os.File
	counts map[string]int
}

var std = &sink{counts: make(map[string]int)}

// Path returns ~/.config/go-metronome/debug.log
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-metronome", "debug.log"), nil
}

// Enable truncates the debug log and starts writing to it.
func Enable() error {
	std.mu.Lock()
	defer std.mu.Unlock()

	if std.w != nil {
		return nil
	}

	p, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	std.file, std.w = f, f
	std.line("debug", "=== go-metronome debug log ===")
	return nil
}

// SetOutput redirects logging to w. A nil w turns logging off.
func SetOutput(w io.Writer) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.release()
	std.w = w
}

// Disable stops debug logging
func Disable() {
	SetOutput(nil)
}

// Enabled reports whether Log writes anywhere
func Enabled() bool {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.w != nil
}

func (s *sink) release() {
	if s.file == nil {
		return
	}
	s.file.Close()
	s.file = nil
}

// line writes one timestamped entry; s.mu must be held.
func (s *sink) line(category, msg string) {
	fmt.Fprintf(s.w, "%s %-8s| %s\n", time.Now().Format("15:04:05.000"), category, msg)
	if s.file != nil {
		// sync per line so a crash leaves the tail on disk
		s.file.Sync()
	}
}

// Log writes a message under category. It is a no-op while logging is off.
func Log(category, format string, args ...any) {
	std.mu.Lock()
	defer std.mu.Unlock()
	if std.w == nil {
		return
	}
	std.line(category, fmt.Sprintf(format, args...))
}

// LogEvery writes one in n calls for the same category and format.
// Meant for per-beat and per-frame events.
func LogEvery(n int, category, format string, args ...any) {
	std.mu.Lock()
	defer std.mu.Unlock()

	key := category + "\x00" + format
	std.counts[key]++
	count := std.counts[key]
	if std.w == nil || (n > 1 && count%n != 0) {
		return
	}
	std.line(category, fmt.Sprintf(format, args...)+fmt.Sprintf(" (every %d, count=%d)", n, count))
}
