package domain

import "errors"

var (
	// ErrNotConnected is returned when a DevTools operation is attempted
	// without an established connection.
	ErrNotConnected = errors.New("no hay conexión con Chrome. Conecta primero")

	// ErrTabNotFound is returned when no tab matches a lookup.
	ErrTabNotFound = errors.New("tab not found")

	// ErrQueueEmpty is returned when playback is requested with nothing
	// queued. Callers treat it as a guarded no-op, not a failure.
	ErrQueueEmpty = errors.New("notification queue is empty")

	// ErrAlreadyPlaying is returned when playback is requested while a
	// narration is still in flight.
	ErrAlreadyPlaying = errors.New("narration already in progress")
)
