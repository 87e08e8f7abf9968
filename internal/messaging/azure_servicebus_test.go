package messaging

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/config"
	"github.com/stretchr/testify/require"
)

func TestDisabledBusPublishIsNoop(t *testing.T) {
	bus, err := NewServiceBus(config.AzureConfig{QueueName: "events"})
	require.NoError(t, err)
	require.False(t, bus.Enabled())
	require.NoError(t, bus.Publish(context.Background(), ClientCreated, map[string]string{"id": "1"}))
	require.NoError(t, bus.Close())
}

func TestDisabledBusConsumeReturnsOnCancel(t *testing.T) {
	bus, err := NewServiceBus(config.AzureConfig{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, bus.Consume(ctx, func(context.Context, Event) error { return nil }))
}

func TestHandleMessage(t *testing.T) {
	event, err := NewEvent(ClientUpdated, map[string]string{"id": "c-1"})
	require.NoError(t, err)
	body, err := json.Marshal(event)
	require.NoError(t, err)

	var got Event
	err = handleMessage(context.Background(), body, func(_ context.Context, e Event) error {
		got = e
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, ClientUpdated, got.Type)
	require.JSONEq(t, `{"id":"c-1"}`, string(got.Payload))

	require.Error(t, handleMessage(context.Background(), []byte("{"), nil))
	require.Error(t, handleMessage(context.Background(), []byte(`{"payload":{}}`), nil))
}
