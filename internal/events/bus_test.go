package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishReachesSubscribers(t *testing.T) {
	b := NewBus()
	var got []any
	b.Subscribe(NotificationReceived, func(p any) { got = append(got, p) })

	b.Publish(NotificationReceived, "hola")
	b.Publish(NotificationReceived, 42)

	assert.Equal(t, []any{"hola", 42}, got)
}

func TestPublishIsScopedToEventName(t *testing.T) {
	b := NewBus()
	var playback, detected int
	b.Subscribe(PlaybackChanged, func(any) { playback++ })
	b.Subscribe(CDPMessageDetected, func(any) { detected++ })

	b.Publish(PlaybackChanged, nil)
	b.Publish(PlaybackChanged, nil)

	assert.Equal(t, 2, playback)
	assert.Equal(t, 0, detected)
}

func TestSubscribersRunInOrder(t *testing.T) {
	b := NewBus()
	var order []int
	b.Subscribe("ev", func(any) { order = append(order, 1) })
	b.Subscribe("ev", func(any) { order = append(order, 2) })

	b.Publish("ev", nil)

	assert.Equal(t, []int{1, 2}, order)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBus()
	var calls int
	unsubscribe := b.Subscribe("ev", func(any) { calls++ })

	b.Publish("ev", nil)
	unsubscribe()
	b.Publish("ev", nil)

	assert.Equal(t, 1, calls)
}

func TestUnsubscribeLeavesOthersAlone(t *testing.T) {
	b := NewBus()
	var first, second int
	cancelFirst := b.Subscribe("ev", func(any) { first++ })
	b.Subscribe("ev", func(any) { second++ })

	cancelFirst()
	b.Publish("ev", nil)

	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

func TestPublishWithoutSubscribers(t *testing.T) {
	b := NewBus()
	assert.NotPanics(t, func() { b.Publish("nobody-listens", "payload") })
}
