package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventHub_PublishSubscribe(t *testing.T) {
	h := NewEventHub()
	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	h.Publish(ConversionCompleted, ConversionEvent{ID: "abc", From: "meter", To: "foot", Kind: "success", Magnitude: 3.28})

	ev := <-ch
	assert.Equal(t, ConversionCompleted, ev.Name)

	payload, err := DecodeAs[ConversionEvent](ev)
	require.NoError(t, err)
	assert.Equal(t, "abc", payload.ID)
	assert.Equal(t, 3.28, payload.Magnitude)
}

func TestEventHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	h := NewEventHub()
	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	for i := 0; i < 100; i++ {
		h.Publish(HistoryCleared, struct{}{})
	}
	assert.Len(t, ch, cap(ch))

	h.mu.RLock()
	assert.Equal(t, uint64(100-subscriberBuffer), h.subs[ch].dropped)
	h.mu.RUnlock()
}

func TestEventHub_Filter(t *testing.T) {
	h := NewEventHub()
	all := h.Subscribe()
	defer h.Unsubscribe(all)
	onlyConfig := h.Subscribe(ConfigChanged)
	defer h.Unsubscribe(onlyConfig)

	h.Publish(HistoryCleared, struct{}{})
	h.Publish(ConfigChanged, 3)

	require.Len(t, all, 2)
	require.Len(t, onlyConfig, 1)

	ev := <-onlyConfig
	assert.Equal(t, ConfigChanged, ev.Name)
	assert.Equal(t, uint64(2), ev.ID)

	first := <-all
	second := <-all
	assert.Equal(t, uint64(1), first.ID)
	assert.Equal(t, uint64(2), second.ID)
}

func TestEventHub_Unsubscribe(t *testing.T) {
	h := NewEventHub()
	ch := h.Subscribe()
	assert.Equal(t, 1, h.Subscribers())

	h.Unsubscribe(ch)
	assert.Equal(t, 0, h.Subscribers())
	_, open := <-ch
	assert.False(t, open)

	// Unsubscribing twice is a no-op.
	h.Unsubscribe(ch)
}

func TestEventHub_NilHub(t *testing.T) {
	var h *EventHub
	assert.NotPanics(t, func() { h.Publish(ConfigChanged, 1) })
}

func TestDecodeAs_Empty(t *testing.T) {
	v, err := DecodeAs[ConversionEvent](Event{Name: ConversionCompleted})
	require.NoError(t, err)
	assert.Equal(t, ConversionEvent{}, v)
}
