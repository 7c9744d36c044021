package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_ApplyPlatformDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://shop@db/shop")
	t.Setenv("PORT", "9000")

	cfg := Config{Addr: defaultAddr}
	cfg.applyPlatformDefaults()
	assert.Equal(t, "postgres://shop@db/shop", cfg.Database.URL)
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr)

	explicit := Config{Addr: "127.0.0.1:7000", Database: DatabaseConfig{URL: "postgres://other"}}
	explicit.applyPlatformDefaults()
	assert.Equal(t, "postgres://other", explicit.Database.URL)
	assert.Equal(t, "127.0.0.1:7000", explicit.Addr)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Database:       DatabaseConfig{Driver: "postgres", URL: "postgres://shop@db/shop"},
			StaffKeyPepper: "pepper",
			Invoice: InvoiceConfig{
				RateLimit: RateLimitConfig{Max: 30, Window: time.Minute},
			},
		}
	}

	cfg := valid()
	require.NoError(t, cfg.validate())

	cfg = valid()
	cfg.Database.URL = ""
	require.ErrorContains(t, cfg.validate(), "database URL is required")

	cfg = valid()
	cfg.StaffKeyPepper = ""
	require.ErrorContains(t, cfg.validate(), "pepper")

	cfg = valid()
	cfg.Invoice.RateLimit.Max = 0
	require.Error(t, cfg.validate())
}
