package logutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_AppendsToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "hard75.log")

	for _, msg := range []string{"first", "second"} {
		logger, closer, err := New("debug", file)
		require.NoError(t, err)
		logger.Info().Msg(msg)
		closer()
	}

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"first"`)
	assert.Contains(t, string(data), `"message":"second"`)
	assert.Contains(t, string(data), `"app":"hard75"`)
}

func TestNew_Level(t *testing.T) {
	file := filepath.Join(t.TempDir(), "hard75.log")

	logger, closer, err := New("", file)
	require.NoError(t, err)
	t.Cleanup(closer)
	assert.Equal(t, DefaultLevel, logger.GetLevel())

	logger, closer, err = New("warn", file)
	require.NoError(t, err)
	t.Cleanup(closer)
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New("loud", "")
	assert.ErrorContains(t, err, `invalid log level "loud"`)
}
