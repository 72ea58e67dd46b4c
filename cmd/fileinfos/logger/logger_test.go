package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDisabled(t *testing.T) {
	require.NoError(t, Init(Options{}))
	assert.False(t, L.Enabled(t.Context(), slog.LevelError))
}

func TestInitStderr(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init(Options{Enabled: true, Level: slog.LevelDebug, Stderr: &buf}))
	t.Cleanup(func() { _ = Init(Options{}) })

	Debug("visit storage", "path", `doc\A`)
	assert.Contains(t, buf.String(), "visit storage")
	assert.Contains(t, buf.String(), `path=doc\A`)

	ForFile("Budget.xls").Warn("open storage failed")
	assert.Contains(t, buf.String(), "file=Budget.xls")
}

func TestInitLogDir(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, logFileName(time.Now().AddDate(0, 0, -(retentionDays+5))))
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(stale, nil, 0o600))
	require.NoError(t, os.WriteFile(other, nil, 0o600))

	require.NoError(t, Init(Options{Enabled: true, LogDir: dir, Level: slog.LevelInfo}))
	t.Cleanup(func() { _ = Init(Options{}) })
	Warn("open storage failed", "code", "0x80030109")

	data, err := os.ReadFile(filepath.Join(dir, logFileName(time.Now())))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"open storage failed"`)

	assert.NoFileExists(t, stale)
	assert.FileExists(t, other)
}
