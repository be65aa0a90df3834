// Package settings provides user preferences persistence for birdie.
// Settings are stored as TOML at ~/.config/birdie/settings.toml.
package settings

import "time"

// Port and interval bounds. The port range is a plausibility hint for
// the UI, not a hard constraint.
const (
	MinPort = 1024
	MaxPort = 65535

	MinIntervalMs = 500
	MaxIntervalMs = 10000
)

// Settings holds every user-tunable knob, including the single
// persisted credential (the speech-to-text API key).
type Settings struct {
	// CDPPort is the Chrome remote debugging port to connect to.
	CDPPort int `toml:"cdp_port"`

	// MonitorIntervalMs is the tab polling interval in milliseconds.
	MonitorIntervalMs int64 `toml:"monitor_interval_ms"`

	// NarrationLang is the language passed to the TTS engine.
	NarrationLang string `toml:"narration_lang"`

	// MsPerWord is the per-word narration time allowance.
	MsPerWord int64 `toml:"ms_per_word"`

	// ResponseAllowanceMs is the fixed allowance for the user to react
	// after a narration.
	ResponseAllowanceMs int64 `toml:"response_allowance_ms"`

	// MinNarrationMs is the floor for the estimated narration hold.
	MinNarrationMs int64 `toml:"min_narration_ms"`

	// SpeechCommand overrides the TTS binary. Empty picks a platform
	// default.
	SpeechCommand string `toml:"speech_command"`

	// SttAPIKey is the Google Cloud Speech-to-Text API key.
	SttAPIKey string `toml:"stt_api_key"`

	// SttLanguageCode is the transcription language.
	SttLanguageCode string `toml:"stt_language_code"`
}

// Default returns the settings used when no file exists yet.
func Default() Settings {
	return Settings{
		CDPPort:             9222,
		MonitorIntervalMs:   2000,
		NarrationLang:       "es",
		MsPerWord:           250,
		ResponseAllowanceMs: 5000,
		MinNarrationMs:      7000,
		SttLanguageCode:     "es-ES",
	}
}

// Normalize fills zero values with defaults and clamps the monitor
// interval to its documented bounds.
func (s *Settings) Normalize() {
	def := Default()
	if s.CDPPort == 0 {
		s.CDPPort = def.CDPPort
	}
	if s.MonitorIntervalMs == 0 {
		s.MonitorIntervalMs = def.MonitorIntervalMs
	}
	if s.MonitorIntervalMs < MinIntervalMs {
		s.MonitorIntervalMs = MinIntervalMs
	}
	if s.MonitorIntervalMs > MaxIntervalMs {
		s.MonitorIntervalMs = MaxIntervalMs
	}
	if s.NarrationLang == "" {
		s.NarrationLang = def.NarrationLang
	}
	if s.MsPerWord <= 0 {
		s.MsPerWord = def.MsPerWord
	}
	if s.ResponseAllowanceMs <= 0 {
		s.ResponseAllowanceMs = def.ResponseAllowanceMs
	}
	if s.MinNarrationMs <= 0 {
		s.MinNarrationMs = def.MinNarrationMs
	}
	if s.SttLanguageCode == "" {
		s.SttLanguageCode = def.SttLanguageCode
	}
}

// PortLooksValid reports whether the configured port is in the
// documented range. Used for UI hinting only.
func (s *Settings) PortLooksValid() bool {
	return s.CDPPort >= MinPort && s.CDPPort <= MaxPort
}

// MonitorInterval returns the polling interval as a duration.
func (s *Settings) MonitorInterval() time.Duration {
	return time.Duration(s.MonitorIntervalMs) * time.Millisecond
}

// PerWord returns the per-word allowance as a duration.
func (s *Settings) PerWord() time.Duration {
	return time.Duration(s.MsPerWord) * time.Millisecond
}

// ResponseAllowance returns the response allowance as a duration.
func (s *Settings) ResponseAllowance() time.Duration {
	return time.Duration(s.ResponseAllowanceMs) * time.Millisecond
}

// MinNarration returns the narration floor as a duration.
func (s *Settings) MinNarration() time.Duration {
	return time.Duration(s.MinNarrationMs) * time.Millisecond
}
