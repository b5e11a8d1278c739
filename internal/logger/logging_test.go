package logger

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestSetup(t *testing.T) {
	prev := log.GetLevel()
	defer log.SetLevel(prev)

	Setup(true)
	assert.Equal(t, log.DebugLevel, log.GetLevel())
	assert.Equal(t, log.DebugLevel, New("kotoba").GetLevel())

	Setup(false)
	assert.Equal(t, log.WarnLevel, log.GetLevel())
	assert.Equal(t, log.WarnLevel, New("kotoba").GetLevel())
}

func TestNewWithConfig(t *testing.T) {
	var buf bytes.Buffer
	prevOut := output
	output = &buf
	defer func() { output = prevOut }()

	l := NewWithConfig("srv", log.InfoLevel, false, false, log.TextFormatter)
	l.Debug("hidden")
	l.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "srv")
	assert.Contains(t, buf.String(), "shown")
}
