// Package logging builds the structured logger every asterixfeed
// component writes through: a logrus.Logger writing to stdout or, when
// a log directory is configured, to a rolling file sink managed by
// lumberjack (optionally gzip-compressing rolled-over files).
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls where logs go and how they are rotated. A zero
// value is valid: it logs to stdout only, with no file sink.
type Config struct {
	// Dir, if non-empty, is the directory rolling log files are
	// written to. Empty means file logging is disabled.
	Dir string
	// Filename names the active log file within Dir. Defaults to
	// "asterixfeed.log" when Dir is set and Filename is empty.
	Filename string
	// MaxSizeMB is the size a log file may reach before it is rolled.
	MaxSizeMB int
	// MaxBackups bounds how many rolled-over files are kept.
	MaxBackups int
	// MaxAgeDays bounds how long a rolled-over file is kept.
	MaxAgeDays int
	// Compress gzips rolled-over files.
	Compress bool
	// Verbose raises the logger to debug level.
	Verbose bool
	// ToStdout additionally writes every entry to stdout, useful when
	// Dir is set but an operator still wants console output.
	ToStdout bool
}

// New builds a logrus.Logger configured per cfg. When cfg.Dir is
// empty, it logs to stdout only; otherwise it writes through a
// lumberjack.Logger, which owns rotation and compression without the
// caller's code having to poll for date changes or compress files
// itself.
func New(cfg Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if cfg.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	if cfg.Dir == "" {
		return logger
	}

	filename := cfg.Filename
	if filename == "" {
		filename = "asterixfeed.log"
	}

	roller := &lumberjack.Logger{
		Filename:   cfg.Dir + "/" + filename,
		MaxSize:    orDefault(cfg.MaxSizeMB, 100),
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}

	var out io.Writer = roller
	if cfg.ToStdout {
		out = io.MultiWriter(roller, logger.Out)
	}
	logger.SetOutput(out)

	return logger
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
