package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reset() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer reset()

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestLevels_WhenVerbose(t *testing.T) {
	defer reset()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("resolved item %d", 5)
	Info("exported %d bytes", 12)
	Warn("submit failed: %v", "timeout")
	Section("Terms")

	assert.Equal(t,
		"[DEBUG] resolved item 5\n[INFO] exported 12 bytes\n[WARN] submit failed: timeout\n\n=== Terms ===\n",
		buf.String())
}

func TestLevels_WhenNotVerbose(t *testing.T) {
	defer reset()
	var buf bytes.Buffer
	SetOutput(&buf)

	Debug("x")
	Info("x")
	Warn("x")
	Section("x")

	assert.Zero(t, buf.Len())
}

func TestToFile(t *testing.T) {
	defer reset()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)
	path := filepath.Join(t.TempDir(), "logs", "annotator.log")

	restore, err := ToFile(path)
	require.NoError(t, err)
	Info("while the screen is busy")
	require.NoError(t, restore())
	Info("after")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[INFO] while the screen is busy")
	assert.NotContains(t, string(data), "after")
	assert.Equal(t, "[INFO] after\n", buf.String())
}
