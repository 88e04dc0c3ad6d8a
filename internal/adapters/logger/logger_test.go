package logger_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ply/internal/adapters/logger"
)

func newBuffered(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	lg, ok := logger.New().(*logger.Logger)
	require.True(t, ok)
	var buf bytes.Buffer
	lg.SetOutput(&buf)
	return lg, &buf
}

func TestLogger_Info(t *testing.T) {
	lg, buf := newBuffered(t)

	lg.Info("play started")

	assert.Contains(t, buf.String(), "INFO")
	assert.Contains(t, buf.String(), "play started")
}

func TestLogger_Warn(t *testing.T) {
	lg, buf := newBuffered(t)

	lg.Warn("host skipped")

	assert.Contains(t, buf.String(), "WARN")
	assert.Contains(t, buf.String(), "host skipped")
}

func TestLogger_Error(t *testing.T) {
	lg, buf := newBuffered(t)

	lg.Error(os.ErrPermission)

	assert.Contains(t, buf.String(), "ERROR")
	assert.Contains(t, buf.String(), "permission denied")
}
