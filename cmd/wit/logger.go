package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logDirEnv      = "WIT_LOG_DIR"
	logFileName    = "wit.log"
	logMaxSizeMB   = 10
	logMaxBackups  = 3
	logMaxAgeDays  = 28
	logDirPerm     = 0o750
	defaultLogName = "wit"
)

// logFileWriter is kept for closeLogFile.
var logFileWriter io.WriteCloser

// initLogger builds the invocation logger. verbose selects debug and quiet
// selects warn; otherwise configured (log.level from config.toml) applies,
// falling back to info. Output goes to stderr, as console text on a
// terminal and JSON otherwise, and is mirrored as JSON into a rotating log
// file when one can be opened.
func initLogger(verbose, quiet bool, configured string) zerolog.Logger {
	level := selectLevel(verbose, quiet, configured)
	console := selectOutput()

	writer := console
	if fw, err := createLogFileWriter(); err == nil {
		logFileWriter = fw
		writer = zerolog.MultiLevelWriter(console, fw)
	}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

func selectLevel(verbose, quiet bool, configured string) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	}
	if lvl, err := zerolog.ParseLevel(configured); err == nil && lvl != zerolog.NoLevel {
		return lvl
	}
	return zerolog.InfoLevel
}

func selectOutput() io.Writer {
	if term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	}
	return os.Stderr
}

func createLogFileWriter() (io.WriteCloser, error) {
	dir, err := logDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, logDirPerm); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	return &lumberjack.Logger{
		Filename:   filepath.Join(dir, logFileName),
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
		MaxAge:     logMaxAgeDays,
		Compress:   true,
	}, nil
}

// logDir is $WIT_LOG_DIR, or wit/ under the user cache directory.
func logDir() (string, error) {
	if dir := os.Getenv(logDirEnv); dir != "" {
		return dir, nil
	}
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	return filepath.Join(cache, defaultLogName), nil
}

func closeLogFile() {
	if logFileWriter != nil {
		_ = logFileWriter.Close()
		logFileWriter = nil
	}
}
