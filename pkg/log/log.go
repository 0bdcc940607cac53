// Package log configures the process-wide logger.
package log

import (
	"io"
	"os"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds a logrus logger writing to stderr, and additionally to a
// rotated file when SEVENSEG_LOG_FILE is set. SEVENSEG_LOG_LEVEL
// selects the level (default info).
func New() *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(os.Getenv("SEVENSEG_LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.SetFormatter(&formatter.Formatter{
		TimestampFormat: "15:04:05.000",
		HideKeys:        false,
	})

	writers := []io.Writer{os.Stderr}
	if file := os.Getenv("SEVENSEG_LOG_FILE"); file != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    20, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
		})
	}
	logger.SetOutput(io.MultiWriter(writers...))

	return logger
}
