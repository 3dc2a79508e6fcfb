package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/config"
)

func TestNewWithoutLogDir(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.LogDir = ""

	log, err := New(cfg, &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())

	log.Debug("hidden")
	log.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewDebugWritesFiles(t *testing.T) {
	var buf bytes.Buffer
	dir := t.TempDir()
	cfg := config.Default()
	cfg.LogDir = dir
	cfg.Debug = true

	log, err := New(cfg, &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log.Debug("debug event")
	log.Error("something broke")

	run, err := os.ReadFile(filepath.Join(dir, RunLogName))
	require.NoError(t, err)
	assert.Contains(t, string(run), "debug event")
	assert.Contains(t, string(run), "something broke")

	errs, err := os.ReadFile(filepath.Join(dir, ErrorLogName))
	require.NoError(t, err)
	assert.NotContains(t, string(errs), "debug event")
	assert.Contains(t, string(errs), "something broke")
}
