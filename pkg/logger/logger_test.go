package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zap.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zap.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zap.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zap.InfoLevel, ParseLevel(""))
	assert.Equal(t, zap.InfoLevel, ParseLevel("verbose"))
}

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"production", "development"} {
		l, err := NewLogger(env, "debug")
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zap.DebugLevel))
	}
}
