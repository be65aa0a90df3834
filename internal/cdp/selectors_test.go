package cdp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorForKnownDomains(t *testing.T) {
	for _, domain := range []string{
		"meet.google.com",
		"teams.microsoft.com",
		"discord.com",
		"web.whatsapp.com",
		"web.telegram.org",
	} {
		cfg, ok := SelectorFor(domain)
		require.True(t, ok, domain)
		assert.Equal(t, domain, cfg.Domain)
		assert.NotEmpty(t, cfg.MessageSelector)
		assert.NotEmpty(t, cfg.SourceName)
	}
}

func TestSelectorForUnknownDomain(t *testing.T) {
	_, ok := SelectorFor("example.com")
	assert.False(t, ok)
	assert.False(t, HasSelectorFor("docs.google.com"))
}

func TestContentScriptEmbedsSelector(t *testing.T) {
	cfg, _ := SelectorFor("web.telegram.org")
	script := contentScript(cfg)
	assert.Contains(t, script, cfg.MessageSelector)
	assert.Contains(t, script, "querySelectorAll")
}

func TestSenderScriptEmptyWithoutSelector(t *testing.T) {
	assert.Empty(t, senderScript(SelectorConfig{Domain: "x"}))

	cfg, _ := SelectorFor("discord.com")
	script := senderScript(cfg)
	assert.True(t, strings.Contains(script, cfg.SenderSelector))
}
