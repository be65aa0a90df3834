package playback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEstimatorWordMath(t *testing.T) {
	est := NewEstimator(250*time.Millisecond, 5*time.Second, 0)

	// 4 words at 250ms plus the 5s response allowance.
	assert.Equal(t, 6*time.Second, est("uno dos tres cuatro"))

	// Runs of whitespace do not inflate the word count.
	assert.Equal(t, 6*time.Second, est("  uno   dos\ttres\ncuatro  "))
}

func TestEstimatorMinimumFloor(t *testing.T) {
	est := DefaultEstimator()

	// A one-word text would compute 5.25s; the floor lifts it to 7s.
	assert.Equal(t, DefaultMinimumDuration, est("hola"))
	assert.Equal(t, DefaultMinimumDuration, est(""))
}

func TestEstimatorLongTextExceedsFloor(t *testing.T) {
	est := DefaultEstimator()

	text := "Nueva notificación de WhatsApp, de Ana: llegamos a las ocho y media de la noche"
	words := 16
	want := time.Duration(words)*DefaultPerWord + DefaultResponseAllowance
	assert.Equal(t, want, est(text))
}
