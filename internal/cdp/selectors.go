// Package cdp implements the Chrome DevTools Protocol subsystem: the
// debugging session lifecycle, tab discovery, script execution, and the
// polling monitor that watches configured tabs for new messages.
package cdp

import "fmt"

// SelectorConfig describes how to extract chat content from a known
// messaging site. A tab whose domain has a config is a "monitored tab"
// candidate.
type SelectorConfig struct {
	Domain          string
	MessageSelector string
	SenderSelector  string
	SourceName      string
}

// selectorConfigs lists the supported messaging platforms.
var selectorConfigs = []SelectorConfig{
	{
		Domain:          "meet.google.com",
		MessageSelector: "[data-is-own-message='false'] span[data-message-text]",
		SenderSelector:  "[data-sender-nickname]",
		SourceName:      "google-meet",
	},
	{
		Domain:          "teams.microsoft.com",
		MessageSelector: "[data-testid='message-content']",
		SenderSelector:  "[data-testid='message-sender']",
		SourceName:      "teams",
	},
	{
		Domain:          "discord.com",
		MessageSelector: "[data-testid='message-content']",
		SenderSelector:  "[data-testid='username']",
		SourceName:      "discord",
	},
	{
		Domain:          "web.whatsapp.com",
		MessageSelector: "[data-testid='msg-container'] [class*='message']",
		SenderSelector:  "[data-testid='msg-sender']",
		SourceName:      "whatsapp",
	},
	{
		Domain:          "web.telegram.org",
		MessageSelector: ".message-content",
		SenderSelector:  ".message-sender",
		SourceName:      "telegram",
	},
}

// SelectorFor returns the selector config for a domain.
func SelectorFor(domain string) (SelectorConfig, bool) {
	for _, cfg := range selectorConfigs {
		if cfg.Domain == domain {
			return cfg, true
		}
	}
	return SelectorConfig{}, false
}

// HasSelectorFor reports whether a content-extraction rule exists for
// the domain.
func HasSelectorFor(domain string) bool {
	_, ok := SelectorFor(domain)
	return ok
}

// contentScript builds the in-page expression that collects the visible
// messages matched by the config's message selector, newest last, one
// per line.
func contentScript(cfg SelectorConfig) string {
	return fmt.Sprintf(`(function() {
		const content = [];
		document.querySelectorAll(%q).forEach((el) => {
			const text = el.textContent && el.textContent.trim();
			if (text) content.push(text);
		});
		return content.join('\n');
	})()`, cfg.MessageSelector)
}

// senderScript builds the expression that reads the most recent sender
// label, when the platform exposes one.
func senderScript(cfg SelectorConfig) string {
	if cfg.SenderSelector == "" {
		return ""
	}
	return fmt.Sprintf(`(function() {
		const els = document.querySelectorAll(%q);
		if (els.length === 0) return '';
		const last = els[els.length - 1];
		return (last.textContent && last.textContent.trim()) || '';
	})()`, cfg.SenderSelector)
}
