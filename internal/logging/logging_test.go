package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestInitializeLevels(t *testing.T) {
	t.Setenv("ATTMS_DEBUG", "")

	Initialize(false)
	assert.Equal(t, log.WarnLevel, Logger.GetLevel())

	Initialize(true)
	assert.Equal(t, log.DebugLevel, Logger.GetLevel())
}

func TestInitializeFromEnv(t *testing.T) {
	t.Setenv("ATTMS_DEBUG", "1")

	Initialize(false)
	assert.Equal(t, log.DebugLevel, Logger.GetLevel())
}

func TestSetOutputKeepsLevel(t *testing.T) {
	t.Setenv("ATTMS_DEBUG", "")
	Initialize(false)

	var buf bytes.Buffer
	SetOutput(&buf)
	Logger.Info("hidden")
	Logger.Warn("shown", "pr", 32)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "pr=32")
}

func TestSetOutputKeepsDebugTimestamps(t *testing.T) {
	t.Setenv("ATTMS_DEBUG", "")
	Initialize(true)

	var buf bytes.Buffer
	SetOutput(&buf)
	Logger.Debug("hello")

	assert.Regexp(t, `^\d{2}:\d{2}:\d{2} DEBU attms: hello`, buf.String())
}
