package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(zapcore.AddSync(&buf))
	t.Cleanup(func() { SetOutput(os.Stdout) })
	return &buf
}

func TestNewWritesNamedConsoleLines(t *testing.T) {
	buf := captureOutput(t)

	logger := New("logging-test")
	logger.With(zap.Int("primary", 2)).Info("new primary")

	out := buf.String()
	assert.Contains(t, out, "logging-test")
	assert.Contains(t, out, "new primary")
	assert.Contains(t, out, `{"primary": 2}`)
	assert.Contains(t, out, "info")
}

func TestLevelerPerName(t *testing.T) {
	buf := captureOutput(t)

	logger := New("leveled")
	assert.Equal(t, zapcore.InfoLevel, GetLeveler().GetLevel("leveled"))

	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	GetLeveler().SetLevel("leveled", zapcore.DebugLevel)
	logger.Debug("shown")
	assert.Contains(t, buf.String(), "shown")

	assert.Equal(t, zapcore.InfoLevel, GetLeveler().GetLevel("never-created"))
}

func TestSetLevelAppliesToAllLoggers(t *testing.T) {
	buf := captureOutput(t)

	a := New("all-a")
	b := New("all-b")
	SetLevel(zapcore.ErrorLevel)
	t.Cleanup(func() { SetLevel(zapcore.InfoLevel) })

	a.Info("a info")
	b.Warn("b warn")
	assert.Empty(t, buf.String())

	b.Error("b error")
	assert.Contains(t, buf.String(), "b error")
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lights.log")

	restore, err := OpenFile(path)
	require.NoError(t, err)

	New("file-test").Info("to the file")
	restore()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to the file")
}
