// Package logger is the process-wide stderr logger of the grantcraft CLI.
//
// Debug, Info and Section output appears only in verbose mode (--verbose or
// GRANTCRAFT_VERBOSE). Warnings and errors are always written.
package logger

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"time"
)

// VerboseEnv enables verbose mode when set to a true value.
const VerboseEnv = "GRANTCRAFT_VERBOSE"

// Level is the severity of a log line.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "LEVEL(" + strconv.Itoa(int(l)) + ")"
	}
}

// state is guarded by one mutex so concurrent lines never interleave.
var state = struct {
	sync.Mutex
	verbose bool
	out     io.Writer
}{
	verbose: verboseFromEnv(),
	out:     os.Stderr,
}

func verboseFromEnv() bool {
	v, err := strconv.ParseBool(os.Getenv(VerboseEnv))
	return err == nil && v
}

// SetVerbose turns verbose output on or off.
func SetVerbose(v bool) {
	state.Lock()
	state.verbose = v
	state.Unlock()
}

// IsVerbose reports whether verbose output is on.
func IsVerbose() bool {
	state.Lock()
	defer state.Unlock()
	return state.verbose
}

// SetOutput redirects log output. Tests use it to capture lines.
func SetOutput(w io.Writer) {
	state.Lock()
	state.out = w
	state.Unlock()
}

// Enabled reports whether a line at l would be written.
func Enabled(l Level) bool {
	return l >= LevelWarn || IsVerbose()
}

func logf(l Level, format string, args ...any) {
	state.Lock()
	defer state.Unlock()
	if l < LevelWarn && !state.verbose {
		return
	}
	fmt.Fprintf(state.out, "[%s] %s\n", l, fmt.Sprintf(format, args...))
}

// Debug writes a verbose-only diagnostic line.
func Debug(format string, args ...any) { logf(LevelDebug, format, args...) }

// Info writes a verbose-only progress line.
func Info(format string, args ...any) { logf(LevelInfo, format, args...) }

// Warn writes a warning.
func Warn(format string, args ...any) { logf(LevelWarn, format, args...) }

// Error writes an error.
func Error(format string, args ...any) { logf(LevelError, format, args...) }

// Section writes a verbose-only header separating pipeline stages.
func Section(name string) {
	state.Lock()
	defer state.Unlock()
	if state.verbose {
		fmt.Fprintf(state.out, "\n=== %s ===\n", name)
	}
}

// Timed logs how long a stage took when the returned func is called:
//
//	defer logger.Timed("ingest")()
func Timed(stage string) func() {
	start := time.Now()
	return func() {
		Debug("%s took %s", stage, time.Since(start).Round(time.Millisecond))
	}
}
