// Package logging provides per-component file logging for xrmkit runs.
//
// Every component in a process writes to the same run-scoped file under
// ~/.xrmkit/logs/, named by a generated run ID, so one automation run
// produces one interleaved log.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	runID     string
	runIDOnce sync.Once

	logDir  string
	dirOnce sync.Once
	dirErr  error
)

// RunID returns the identifier shared by all loggers in this process.
func RunID() string {
	runIDOnce.Do(func() {
		runID = uuid.New().String()
	})
	return runID
}

func ensureLogDir() error {
	dirOnce.Do(func() {
		home, err := os.UserHomeDir()
		if err != nil {
			dirErr = fmt.Errorf("resolving home directory: %w", err)
			return
		}
		logDir = filepath.Join(home, ".xrmkit", "logs")
		if err := os.MkdirAll(logDir, 0o750); err != nil {
			dirErr = fmt.Errorf("creating log directory: %w", err)
		}
	})
	return dirErr
}

// Logger writes timestamped, component-tagged entries to the run log.
type Logger struct {
	component string
	file      *os.File
	out       *log.Logger
	mu        sync.Mutex
	closeOnce sync.Once
	path      string
}

// NewLogger creates a logger for one component. When the log file cannot
// be opened the returned logger writes to stderr instead; the error tells
// the caller it is running in fallback mode.
func NewLogger(component string) (*Logger, error) {
	if err := ensureLogDir(); err != nil {
		return fallbackLogger(component), err
	}

	path := filepath.Join(logDir, RunID()+"-xrmkit.log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fallbackLogger(component), fmt.Errorf("opening log file: %w", err)
	}

	return &Logger{
		component: component,
		file:      file,
		out:       log.New(file, "", 0),
		path:      path,
	}, nil
}

func fallbackLogger(component string) *Logger {
	return &Logger{
		component: component,
		out:       log.New(os.Stderr, "", 0),
	}
}

func (l *Logger) write(level, format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ts := time.Now().Format("2006-01-02 15:04:05.000")
	l.out.Printf("[%s] [%s] [%s] %s", ts, l.component, level, fmt.Sprintf(format, v...))
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, v ...any) { l.write("DEBUG", format, v...) }

// Infof logs at info level.
func (l *Logger) Infof(format string, v ...any) { l.write("INFO", format, v...) }

// Warnf logs at warn level.
func (l *Logger) Warnf(format string, v ...any) { l.write("WARN", format, v...) }

// Errorf logs at error level.
func (l *Logger) Errorf(format string, v ...any) { l.write("ERROR", format, v...) }

// Path returns the log file path, empty in fallback mode.
func (l *Logger) Path() string { return l.path }

// Close closes the log file. Safe to call more than once.
func (l *Logger) Close() error {
	var err error
	l.closeOnce.Do(func() {
		if l.file != nil {
			err = l.file.Close()
		}
	})
	return err
}
