package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestSetLevel(t *testing.T) {
	defer level.SetLevel(level.Level())

	assert.NoError(t, SetLevel(""))
	assert.NoError(t, SetLevel("warn"))
	assert.Equal(t, zapcore.WarnLevel, level.Level())

	assert.Error(t, SetLevel("loud"))
	assert.Equal(t, zapcore.WarnLevel, level.Level())
}

func TestGetAndNamed(t *testing.T) {
	Init("test")
	assert.NotNil(t, Get())
	assert.NotNil(t, Named("http"))
	Sync()
}
