package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	l, err := New(Options{Level: "debug"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = New(Options{})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))

	_, err = New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestMust(t *testing.T) {
	assert.Panics(t, func() { Must(nil, errors.New("boom")) })
}

func TestNamed(t *testing.T) {
	assert.NotNil(t, Named(nil, "x"))

	base, err := New(Options{Development: true})
	require.NoError(t, err)
	assert.NotNil(t, Named(base, "svc"))
}
