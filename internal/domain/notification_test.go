package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEvent() NotificationEvent {
	return NotificationEvent{
		AppName:   "WhatsApp",
		Sender:    "Ana",
		Message:   "Hola, ¿cómo estás?",
		Timestamp: "2025-06-15T10:30:00Z",
	}
}

func TestNewNotificationAssignsID(t *testing.T) {
	a, err := NewNotification(validEvent())
	require.NoError(t, err)
	b, err := NewNotification(validEvent())
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "WhatsApp", a.AppName)
	assert.Equal(t, 2025, a.Timestamp.Year())
}

func TestValidateRejectsMissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*NotificationEvent)
	}{
		{"empty app name", func(ev *NotificationEvent) { ev.AppName = "" }},
		{"empty message", func(ev *NotificationEvent) { ev.Message = "" }},
		{"empty timestamp", func(ev *NotificationEvent) { ev.Timestamp = "" }},
		{"malformed timestamp", func(ev *NotificationEvent) { ev.Timestamp = "yesterday" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev := validEvent()
			tc.mutate(&ev)
			assert.Error(t, ev.Validate())
			_, err := NewNotification(ev)
			assert.Error(t, err)
		})
	}
}

func TestValidateAllowsEmptySender(t *testing.T) {
	ev := validEvent()
	ev.Sender = ""
	assert.NoError(t, ev.Validate())
}

func TestParseNotificationEvent(t *testing.T) {
	data := []byte(`{"app_name":"Telegram","sender":"Luis","message":"nos vemos","timestamp":"2025-06-15T10:30:00Z"}`)
	ev, err := ParseNotificationEvent(data)
	require.NoError(t, err)
	assert.Equal(t, "Telegram", ev.AppName)
	assert.Equal(t, "Luis", ev.Sender)
	assert.Equal(t, "nos vemos", ev.Message)

	_, err = ParseNotificationEvent([]byte("{broken"))
	assert.Error(t, err)
}

func TestNarrationText(t *testing.T) {
	n, err := NewNotification(validEvent())
	require.NoError(t, err)
	assert.Equal(t, "Nueva notificación de WhatsApp, de Ana: Hola, ¿cómo estás?", n.NarrationText())
}

func TestExtractDomain(t *testing.T) {
	assert.Equal(t, "web.whatsapp.com", ExtractDomain("https://web.whatsapp.com/"))
	assert.Equal(t, "meet.google.com", ExtractDomain("https://meet.google.com/abc-defg-hij?authuser=0"))
	assert.Equal(t, "", ExtractDomain("notaurl"))
	assert.Equal(t, "", ExtractDomain("://missing-scheme"))
}
