// Package speech provides narrator adapters used by the playback
// controller. The narration capability is fire-and-forget: Speak offers
// no completion signal usable for timing.
package speech

// Narrator is the external text-to-speech boundary.
type Narrator interface {
	// Speak starts narrating text in the given language. It returns
	// once the utterance has been handed to the engine, not when the
	// engine finishes speaking.
	Speak(text, lang string) error

	// Stop cancels any in-flight narration. Safe to call when nothing
	// is speaking.
	Stop() error
}
