package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LogFilePath builds the log file path for a simulation session.
func LogFilePath(logsDir, sessionName string, sessionStart time.Time) string {
	if sessionName == "" {
		sessionName = "session"
	}
	return filepath.Join(
		logsDir,
		fmt.Sprintf("swb.%s.%s.log", sessionName, sessionStart.Format("20060102_150405")),
	)
}

// OpenLogFile creates the directory for path if needed and opens the file for appending.
func OpenLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}
