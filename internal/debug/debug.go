package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

// EnvVar names the environment variable holding the log file path.
const EnvVar = "CELADON_DEBUG"

var (
	mu      sync.Mutex
	logFile *os.File
	logger  *log.Logger
	loaded  bool

	// stderr receives the error when the path in EnvVar cannot be opened.
	stderr io.Writer = os.Stderr
)

// Init starts debug logging to path. An empty path disables logging.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()
	return initLocked(path)
}

func initLocked(path string) error {
	loaded = true
	closeLocked()
	if path == "" {
		logger = nil
		return nil
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open debug log: %w", err)
	}
	logFile = f
	logger = New(f, log.DebugLevel)
	return nil
}

// loadEnvLocked starts logging to the path in EnvVar. A path that cannot
// be opened is reported once on stderr and leaves logging off.
func loadEnvLocked() {
	path := os.Getenv(EnvVar)
	if err := initLocked(path); err != nil {
		New(stderr, log.WarnLevel).Warn("debug logging disabled", "env", EnvVar, "path", path, "err", err)
	}
}

// New returns a logger in the format used for debug output.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
		Level:           level,
	})
}

// Close closes the debug log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeLocked()
}

func closeLocked() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	logger = nil
	return err
}

// Log writes a formatted message to the debug log.
func Log(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !loaded {
		loadEnvLocked()
	}
	if logger == nil {
		return
	}
	logger.Debugf(format, args...)
}

// Enabled reports whether debug output is being written.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	if !loaded {
		loadEnvLocked()
	}
	return logger != nil
}

// Logger returns the debug logger, or a logger that discards everything
// when debug output is disabled.
func Logger() *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !loaded {
		loadEnvLocked()
	}
	if logger == nil {
		return New(io.Discard, log.FatalLevel)
	}
	return logger
}
