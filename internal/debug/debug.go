// Package debug provides opt-in file logging for issuedeck.
// Logging is only enabled when --debug is passed at startup.
// Logs go to ~/.issuedeck/debug.log unless a path is configured, and the
// file is truncated on each launch.
package debug

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	// LogFileName is the name of the debug log file.
	LogFileName = "debug.log"
	// LogDirName is the name of the directory containing the log file.
	LogDirName = ".issuedeck"
)

var (
	mu      sync.RWMutex
	enabled bool
	logger  *log.Logger
	logFile *os.File

	// getLogPath is a function variable to allow overriding in tests.
	getLogPath = defaultGetLogPath
)

// Options controls Init.
type Options struct {
	Enable bool
	// Path overrides the default log location when non-empty.
	Path string
}

// Init initializes the debug logging system.
// If opts.Enable is false, all logging operations become no-ops.
func Init(opts Options) error {
	mu.Lock()
	defer mu.Unlock()

	enabled = opts.Enable
	if !opts.Enable {
		logger = log.New(io.Discard, "", 0)
		return nil
	}

	logPath := strings.TrimSpace(opts.Path)
	if logPath == "" {
		path, err := getLogPath()
		if err != nil {
			return fmt.Errorf("determine log path: %w", err)
		}
		logPath = path
	}

	//nolint:gosec // G301: User config directory needs standard permissions
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	//nolint:gosec // G304: Log path is computed from user home or config, not remote input
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logFile = f

	logger = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds)
	logger.Printf("=== issuedeck debug log started at %s ===", time.Now().Format(time.RFC3339))

	return nil
}

// Close closes the debug log file if open.
// Safe to call even if logging is disabled.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// Logf writes a formatted debug message if debug logging is enabled.
func Logf(format string, v ...any) {
	mu.RLock()
	defer mu.RUnlock()

	if !enabled || logger == nil {
		return
	}
	logger.Printf(format, v...)
}

// Enabled returns whether debug logging is currently enabled.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Logger tags every line with a component name, e.g. "[github] query org/repo".
type Logger struct {
	component string
}

// For returns a Logger for the named component.
func For(component string) Logger {
	return Logger{component: component}
}

// Printf logs a formatted message under the component tag.
func (l Logger) Printf(format string, v ...any) {
	Logf("[%s] "+format, append([]any{l.component}, v...)...)
}

// Event logs a message followed by sorted key=value pairs.
// A trailing key without a value is logged as key=<missing>.
func (l Logger) Event(msg string, kv ...any) {
	if !Enabled() {
		return
	}
	Logf("[%s] %s%s", l.component, msg, formatFields(kv))
}

func formatFields(kv []any) string {
	if len(kv) == 0 {
		return ""
	}
	pairs := make([]string, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		key := fmt.Sprint(kv[i])
		if i+1 >= len(kv) {
			pairs = append(pairs, key+"=<missing>")
			continue
		}
		pairs = append(pairs, fmt.Sprintf("%s=%v", key, kv[i+1]))
	}
	sort.Strings(pairs)
	return " " + strings.Join(pairs, " ")
}

func defaultGetLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine user home: %w", err)
	}
	return filepath.Join(home, LogDirName, LogFileName), nil
}

// GetLogPath returns the default path to the debug log file.
func GetLogPath() (string, error) {
	return getLogPath()
}
