package loggers

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ParsesLevel(t *testing.T) {
	logger, err := New("warn")
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("verbose")
	assert.Error(t, err)
}

func TestCtx_ReturnsContextLogger(t *testing.T) {
	logger, err := New("debug")
	require.NoError(t, err)

	ctx := logger.WithContext(context.Background())
	assert.Equal(t, zerolog.DebugLevel, Ctx(ctx).GetLevel())
}

func TestNewWithWriter_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter("info", &buf)
	require.NoError(t, err)

	logger.Info().Str(FieldComponent, "cli").Msg("hello")
	logger.Debug().Msg("dropped")

	out := buf.String()
	assert.Contains(t, out, `"component":"cli"`)
	assert.Contains(t, out, `"message":"hello"`)
	assert.NotContains(t, out, "dropped")
}
