// Package domain provides the domain layer for birdie.
// It contains the notification, tab, and detected-message value objects
// shared by the playback and monitoring subsystems.
package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Notification represents a single captured desktop notification.
// Notifications are immutable once created; the ID is assigned at
// ingestion time and is used only for display-list identity.
type Notification struct {
	ID        string
	AppName   string
	Sender    string
	Message   string
	Timestamp time.Time
	AppIcon   string
}

// NotificationEvent is the inbound wire format emitted by the native
// notification source. The timestamp is an ISO-8601 string.
type NotificationEvent struct {
	AppName   string `json:"app_name"`
	Sender    string `json:"sender"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	AppIcon   string `json:"app_icon,omitempty"`
}

// NewNotification creates a notification from an inbound event,
// assigning a fresh process-unique ID.
func NewNotification(ev NotificationEvent) (*Notification, error) {
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	ts, err := time.Parse(time.RFC3339, ev.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp format: %w", err)
	}
	return &Notification{
		ID:        uuid.NewString(),
		AppName:   ev.AppName,
		Sender:    ev.Sender,
		Message:   ev.Message,
		Timestamp: ts,
		AppIcon:   ev.AppIcon,
	}, nil
}

// Validate validates the inbound event and returns an error if invalid.
func (ev NotificationEvent) Validate() error {
	if ev.AppName == "" {
		return fmt.Errorf("notification app name cannot be empty")
	}
	if ev.Message == "" {
		return fmt.Errorf("notification message cannot be empty")
	}
	if ev.Timestamp == "" {
		return fmt.Errorf("notification timestamp cannot be empty")
	}
	if _, err := time.Parse(time.RFC3339, ev.Timestamp); err != nil {
		return fmt.Errorf("invalid timestamp format: %w", err)
	}
	return nil
}

// ParseNotificationEvent decodes a single JSON-encoded notification event.
func ParseNotificationEvent(data []byte) (NotificationEvent, error) {
	var ev NotificationEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return NotificationEvent{}, fmt.Errorf("decode notification event: %w", err)
	}
	return ev, nil
}

// NarrationText renders the notification as the text handed to the
// narrator. Commas instead of periods keep some TTS engines from
// cutting the utterance short.
func (n *Notification) NarrationText() string {
	return fmt.Sprintf("Nueva notificación de %s, de %s: %s", n.AppName, n.Sender, n.Message)
}
