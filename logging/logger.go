// Package logging provides the error and debug loggers shared by the
// player. Both tee to stderr and to a timestamped file in the log dir.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	mu          sync.Mutex
	logDir      string
	errorLogger = log.New(os.Stderr, "", log.LstdFlags)
	debugLogger *log.Logger
)

// Setup points the loggers at dir. A dir of "" logs to stderr only.
func Setup(dir string, debug bool) {
	mu.Lock()
	logDir = dir
	errorLogger = log.New(teeFile("error"), "", log.LstdFlags)
	mu.Unlock()
	SetDebug(debug)
}

// SetDebug enables or disables the debug logger.
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	if enabled {
		debugLogger = log.New(teeFile("debug"), "", log.LstdFlags)
	} else {
		debugLogger = nil
	}
}

// setOutput sends both loggers to w only.
func setOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	errorLogger = log.New(w, "", 0)
	if debugLogger != nil {
		debugLogger = log.New(w, "", 0)
	}
}

func Errorf(format string, v ...interface{}) {
	mu.Lock()
	l := errorLogger
	mu.Unlock()
	l.Printf(format, v...)
}

func Debugf(format string, v ...interface{}) {
	mu.Lock()
	l := debugLogger
	mu.Unlock()
	if l != nil {
		l.Printf(format, v...)
	}
}

// DebugEnabled reports whether Debugf writes anywhere.
func DebugEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return debugLogger != nil
}

// teeFile returns stderr, plus a new <kind>-<timestamp>.log file when a log
// dir is configured. Callers hold mu.
func teeFile(kind string) io.Writer {
	if logDir == "" {
		return os.Stderr
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "could not create log directory: %v\n", err)
		return os.Stderr
	}
	ts := time.Now().Format("20060102-150405")
	f, err := os.Create(filepath.Join(logDir, fmt.Sprintf("%s-%s.log", kind, ts)))
	if err != nil {
		return os.Stderr
	}
	return io.MultiWriter(os.Stderr, f)
}
