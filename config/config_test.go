package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, "0.0.0.0:8080", cfg.Server.Address)
	require.Equal(t, 30*time.Second, cfg.Server.Timeout)
	require.Equal(t, float64(15), cfg.Invoice.TaxRate)
	require.True(t, cfg.Invoice.EnforceTransitions)
	require.True(t, cfg.Orders.EnforceTransitions)
	require.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	require.Equal(t, "ar", cfg.I18n.DefaultLanguage)
	require.Equal(t, "Asia/Riyadh", cfg.I18n.Timezone)
	require.Equal(t, "Asia/Riyadh", cfg.I18n.Location().String())
	require.False(t, cfg.Redis.Enabled)
}

func TestLoadConfigFromYAML(t *testing.T) {
	dir := t.TempDir()
	body := []byte(`
environment: staging
server:
  address: 127.0.0.1:9000
invoice:
  tax_rate: 5
orders:
  enforce_transitions: false
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), body, 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	require.Equal(t, "staging", cfg.Environment)
	require.Equal(t, "127.0.0.1:9000", cfg.Server.Address)
	require.Equal(t, float64(5), cfg.Invoice.TaxRate)
	require.False(t, cfg.Orders.EnforceTransitions)
	// untouched keys keep their defaults
	require.True(t, cfg.Invoice.EnforceTransitions)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("UMBRELLA_INVOICE_TAX_RATE", "10")
	t.Setenv("UMBRELLA_AUTH_JWT_SECRET", "s3cret")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, float64(10), cfg.Invoice.TaxRate)
	require.Equal(t, "s3cret", cfg.Auth.JWTSecret)
}

func TestValidateRejectsBadTaxRate(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	cfg.Invoice.TaxRate = 120
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownTimezone(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	cfg.I18n.Timezone = "Mars/Olympus"
	require.Error(t, cfg.Validate())
	require.Equal(t, time.UTC, cfg.I18n.Location())
}

func TestValidateRequiresSecretInProduction(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	cfg.Environment = "production"
	cfg.Auth.JWTSecret = ""
	require.Error(t, cfg.Validate())
}

func TestFormatIndex(t *testing.T) {
	require.Equal(t, "umbrella-clients", FormatIndex(ElasticConfig{Prefix: "umbrella"}, "clients"))
}
