package speech

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergiopachon/birdie/internal/logging"
)

func TestBuildCommandFlags(t *testing.T) {
	cmd := buildCommand("espeak-ng", "hola", "es")
	assert.Equal(t, []string{"espeak-ng", "-v", "es", "hola"}, cmd.Args)

	cmd = buildCommand("espeak-ng", "hola", "")
	assert.Equal(t, []string{"espeak-ng", "hola"}, cmd.Args)

	// say takes no language flag.
	cmd = buildCommand("say", "hola", "es")
	assert.Equal(t, []string{"say", "hola"}, cmd.Args)
}

func TestNewCommandNarratorPicksDefault(t *testing.T) {
	n := NewCommandNarrator("", logging.Noop())
	assert.NotEmpty(t, n.command)

	n = NewCommandNarrator("festival", logging.Noop())
	assert.Equal(t, "festival", n.command)
}

func TestSpeakMissingBinary(t *testing.T) {
	n := NewCommandNarrator("definitely-not-a-tts-binary", logging.Noop())
	err := n.Speak("hola", "es")
	assert.Error(t, err)
	// A failed start leaves nothing to stop.
	assert.NoError(t, n.Stop())
}

func TestSpeakAndStop(t *testing.T) {
	// sleep stands in for a long-running TTS process; Stop must kill it.
	n := NewCommandNarrator("sleep", logging.Noop())
	require.NoError(t, n.Speak("30", ""))
	require.NoError(t, n.Stop())

	n.mu.Lock()
	assert.Nil(t, n.current)
	n.mu.Unlock()
}

func TestStopWithoutSpeak(t *testing.T) {
	n := NewCommandNarrator("espeak-ng", logging.Noop())
	assert.NoError(t, n.Stop())
}
