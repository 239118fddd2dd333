// Package logging builds the file-backed logrus logger. The terminal is
// owned by the TUI and the command output, so log lines only ever go to
// a rotated file.
package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New creates a logger writing to fileName with rotation. An empty
// fileName discards all output, which keeps tests and one-off runs
// quiet.
func New(fileName, level string) *logrus.Logger {
	log := logrus.New()
	log.SetLevel(Level(level))

	if fileName == "" {
		log.SetOutput(io.Discard)
		return log
	}
	if !strings.HasSuffix(fileName, ".log") {
		fileName += ".log"
	}

	log.SetOutput(&lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		Compress:   true,
	})
	return log
}

// Level maps a config string to a logrus level, defaulting to info.
func Level(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
