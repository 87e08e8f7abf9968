package cache

import (
	"context"
	"testing"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/config"
	"github.com/stretchr/testify/require"
)

func TestDisabledCache(t *testing.T) {
	c, err := NewRedisCache(config.RedisConfig{Enabled: false})
	require.NoError(t, err)
	require.False(t, c.Enabled())

	ctx := context.Background()
	var out string
	require.ErrorIs(t, c.Get(ctx, "k", &out), ErrDisabled)
	require.ErrorIs(t, c.Set(ctx, "k", "v", 0), ErrDisabled)
	require.ErrorIs(t, c.Delete(ctx, "k"), ErrDisabled)
	require.NoError(t, c.Close())
}

func TestKeys(t *testing.T) {
	require.Equal(t, "invoice-view:abc:en", InvoiceViewKey("abc", "en"))
	require.Equal(t, "client-report:abc", ClientReportKey("abc"))
	require.Equal(t, "car-types:active=true", CarTypesKey(true))
}
