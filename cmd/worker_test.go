package cmd

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/dbtest"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/messaging"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/repositories"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/services"
)

func TestReindexHandlerIgnoresOtherEvents(t *testing.T) {
	svc := services.New(&services.Dependencies{Store: repositories.NewStore(dbtest.Open(t))})
	handler := reindexHandler(svc.Clients)

	event, err := messaging.NewEvent(messaging.InvoiceCreated, map[string]string{"id": "x"})
	require.NoError(t, err)
	require.NoError(t, handler(context.Background(), event))
}

func TestReindexHandlerSkipsMalformedPayload(t *testing.T) {
	svc := services.New(&services.Dependencies{Store: repositories.NewStore(dbtest.Open(t))})
	handler := reindexHandler(svc.Clients)

	event := messaging.Event{Type: messaging.ClientUpdated, Payload: json.RawMessage(`"not an object"`)}
	require.NoError(t, handler(context.Background(), event))
}

func TestReindexHandlerWithoutIndexIsNoop(t *testing.T) {
	svc := services.New(&services.Dependencies{Store: repositories.NewStore(dbtest.Open(t))})
	handler := reindexHandler(svc.Clients)

	event, err := messaging.NewEvent(messaging.ClientCreated, map[string]string{"id": "missing"})
	require.NoError(t, err)
	require.NoError(t, handler(context.Background(), event))
}
