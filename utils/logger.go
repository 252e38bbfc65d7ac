package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	logMu  sync.RWMutex
	logger = zerolog.Nop()
)

// LogFileName returns the daily log file name for the given day
func LogFileName(day time.Time) string {
	return fmt.Sprintf("chai-%s.log", day.Format("2006-01-02"))
}

// dailyFile is an io.Writer that appends to the current day's log file and
// switches files at the first write after midnight
type dailyFile struct {
	mu   sync.Mutex
	dir  string
	now  func() time.Time
	name string
	file *os.File
}

func newDailyFile(dir string, now func() time.Time) (*dailyFile, error) {
	d := &dailyFile{dir: dir, now: now}
	if err := d.openFor(now()); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *dailyFile) openFor(day time.Time) error {
	name := LogFileName(day)
	file, err := os.OpenFile(filepath.Join(d.dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	if d.file != nil {
		d.file.Close()
	}
	d.name = name
	d.file = file
	return nil
}

func (d *dailyFile) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if now := d.now(); LogFileName(now) != d.name {
		// Keep writing to the old file if the new one cannot be opened.
		if err := d.openFor(now); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
	return d.file.Write(p)
}

// InitLogger initializes the logger. Entries are written as JSON lines to a
// daily file under logsDir; development also echoes to the console.
func InitLogger(logsDir, env string) error {
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	file, err := newDailyFile(logsDir, time.Now)
	if err != nil {
		return err
	}

	level := zerolog.InfoLevel
	var out io.Writer = file
	if env == "development" {
		level = zerolog.DebugLevel
		out = zerolog.MultiLevelWriter(file, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	SetLogger(zerolog.New(out).Level(level).With().Timestamp().Caller().Logger())
	return nil
}

// SetLogger replaces the process logger
func SetLogger(l zerolog.Logger) {
	logMu.Lock()
	logger = l
	logMu.Unlock()
}

// Logger returns the process logger for structured entries
func Logger() *zerolog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	l := logger
	return &l
}

// LogInfo logs an informational message
func LogInfo(format string, v ...interface{}) {
	Logger().Info().CallerSkipFrame(1).Msgf(format, v...)
}

// LogWarn logs a warning
func LogWarn(format string, v ...interface{}) {
	Logger().Warn().CallerSkipFrame(1).Msgf(format, v...)
}

// LogError logs an error message
func LogError(format string, v ...interface{}) {
	Logger().Error().CallerSkipFrame(1).Msgf(format, v...)
}

// LogDebug logs a debug message
func LogDebug(format string, v ...interface{}) {
	Logger().Debug().CallerSkipFrame(1).Msgf(format, v...)
}

// LogRequest logs HTTP request details
func LogRequest(method, path, ip, requestID string, status int, duration time.Duration) {
	Logger().Info().
		Str("method", method).
		Str("path", path).
		Str("ip", ip).
		Str("request_id", requestID).
		Int("status", status).
		Dur("duration", duration).
		Msg("request")
}

// LogErrorWithStack logs an error with stack trace
func LogErrorWithStack(err error, stack []byte) {
	Logger().Error().Err(err).Bytes("stack", stack).Msg("panic recovered")
}
