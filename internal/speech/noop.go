package speech

// NoopNarrator discards all narration requests. Used when no TTS engine
// is available and as a safe default in tests.
type NoopNarrator struct{}

func (NoopNarrator) Speak(text, lang string) error { return nil }
func (NoopNarrator) Stop() error                   { return nil }
