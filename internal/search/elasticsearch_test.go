package search

import (
	"context"
	"strings"
	"testing"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/config"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
	"github.com/stretchr/testify/require"
)

func TestDisabledClient(t *testing.T) {
	c, err := NewElasticClient(config.ElasticConfig{Enabled: false})
	require.NoError(t, err)
	require.False(t, c.Enabled())

	ctx := context.Background()
	require.ErrorIs(t, c.IndexClient(ctx, &models.Client{}), ErrDisabled)
	require.ErrorIs(t, c.DeleteClient(ctx, "x"), ErrDisabled)
	_, err = c.SearchClients(ctx, "ahmad", 5)
	require.ErrorIs(t, err, ErrDisabled)
}

func TestClientDocument(t *testing.T) {
	client := &models.Client{FirstName: "Ahmad", SecondName: "Ali", ThirdName: "Saleh", LastName: "Omar", Phone: "0501234567"}
	client.ID = "c-1"

	doc := ClientDocument(client)
	require.Equal(t, "c-1", doc["id"])
	require.Equal(t, "Ahmad Ali Saleh Omar", doc["fullName"])
	require.Equal(t, "0501234567", doc["phone"])
}

func TestDecodeIDs(t *testing.T) {
	body := `{"hits":{"hits":[{"_source":{"id":"a"}},{"_source":{}},{"_source":{"id":"b"}}]}}`
	ids, err := decodeIDs(strings.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, ids)
}
