package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper/internal/config"
)

const (
	ErrorLogName = "error.log"
	RunLogName   = "run.log"
)

func fileHook(path string, level logrus.Level) (logrus.Hook, error) {
	return rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   path,
		MaxSize:    5,
		MaxBackups: 3,
		MaxAge:     28,
		Level:      level,
		Formatter:  &logrus.JSONFormatter{},
	})
}

// New builds the process logger. Errors always go to error.log in
// cfg.LogDir; with cfg.Debug every debug event also goes to run.log.
func New(cfg config.Config, out io.Writer) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: out == os.Stderr})

	logLevel := logrus.InfoLevel
	if cfg.Debug {
		logLevel = logrus.DebugLevel
	}
	log.SetLevel(logLevel)

	if cfg.LogDir == "" {
		return log, nil
	}
	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create log dir: %w", err)
	}

	hook, err := fileHook(filepath.Join(cfg.LogDir, ErrorLogName), logrus.ErrorLevel)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", ErrorLogName, err)
	}
	log.AddHook(hook)

	if cfg.Debug {
		hook, err := fileHook(filepath.Join(cfg.LogDir, RunLogName), logrus.DebugLevel)
		if err != nil {
			return nil, fmt.Errorf("unable to open %s: %w", RunLogName, err)
		}
		log.AddHook(hook)
	}

	return log, nil
}
