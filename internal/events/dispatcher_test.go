package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []Event
	d.Subscribe(EventApplicationSubmitted, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	err := d.Publish(context.Background(), Event{ID: "evt-1", Type: EventApplicationSubmitted})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "evt-1", got[0].ID)
}

func TestDispatcherSkipsOtherTypes(t *testing.T) {
	d := NewInMemoryDispatcher()

	calls := 0
	d.Subscribe(EventApplicationStatusChanged, func(_ context.Context, _ Event) error {
		calls++
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventApplicationSubmitted}))
	assert.Zero(t, calls)
}

func TestDispatcherContinuesAfterHandlerError(t *testing.T) {
	d := NewInMemoryDispatcher()

	second := false
	d.Subscribe(EventApplicationSubmitted, func(_ context.Context, _ Event) error {
		return errors.New("handler failure")
	})
	d.Subscribe(EventApplicationSubmitted, func(_ context.Context, _ Event) error {
		second = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventApplicationSubmitted}))
	assert.True(t, second)
}
