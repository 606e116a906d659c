package utils

import (
	"log"
	"os"
)

// LoggerConfig controls how the application logger is built.
type LoggerConfig struct {
	// Output stream (os.Stdout, a file, etc.)
	Output *os.File
	// Enable ANSI colors for console output
	EnableColors bool
}

// InitLogger builds the application logger.
func InitLogger(config ...LoggerConfig) *log.Logger {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	prefix := "[Study Planner] "
	if cfg.EnableColors {
		prefix = "\033[36m" + prefix + "\033[0m"
	}

	return log.New(cfg.Output, prefix, log.LstdFlags|log.LUTC)
}

// StatusColor returns the ANSI color for an HTTP status code.
func StatusColor(status int) string {
	switch {
	case status >= 500:
		return "\033[31m" // red
	case status >= 400:
		return "\033[33m" // yellow
	case status >= 300:
		return "\033[36m" // cyan
	case status >= 200:
		return "\033[32m" // green
	default:
		return "\033[37m" // white
	}
}
