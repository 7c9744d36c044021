package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

const defaultAddr = "0.0.0.0:8080"

// Config holds the complete admin server configuration, loadable from
// environment variables (SHOP_ prefix), flags, or YAML config files.
type Config struct {
	Addr           string `default:"0.0.0.0:8080" usage:"Admin server listen address"`
	Database       DatabaseConfig
	StaffKeyPepper string `usage:"HMAC pepper for staff key hashing (SHOP_STAFF_KEY_PEPPER)" flag:"staff-key-pepper"`
	Stripe         StripeConfig
	Invoice        InvoiceConfig
	Redis          RedisConfig
	S3             S3Config
	Graceful       GracefulConfig
}

// DatabaseConfig selects the persistence backend.
type DatabaseConfig struct {
	Driver string `default:"postgres" usage:"Database driver: postgres, sqlite or mysql"`
	URL    string `usage:"Database connection URL (SHOP_DATABASE_URL or DATABASE_URL)" flag:"database-url"`
}

// StripeConfig is used to build payment links.
type StripeConfig struct {
	SecretKey string `usage:"Stripe secret key; test keys link to the test dashboard" flag:"stripe-secret-key"`
}

// InvoiceConfig controls PDF rendering.
type InvoiceConfig struct {
	WkhtmltopdfPath string        `usage:"Path to the wkhtmltopdf binary (default: lookup in PATH)" flag:"wkhtmltopdf-path"`
	CacheTTL        time.Duration `default:"24h" usage:"Lifetime of cached invoices in Redis" flag:"invoice-cache-ttl"`
	RateLimit       RateLimitConfig
}

// RateLimitConfig controls the per-staff sliding window limiter of PDF
// rendering.
type RateLimitConfig struct {
	Max    int           `default:"30" usage:"Max PDF renders per window"`
	Window time.Duration `default:"1m" usage:"Rate limit window duration"`
}

// RedisConfig enables the invoice cache when Addr is set.
type RedisConfig struct {
	Addr     string `usage:"Redis address (host:port); empty disables the invoice cache" flag:"redis-addr"`
	Password string `usage:"Redis password"`
	DB       int    `default:"0" usage:"Redis database number"`
}

// S3Config enables invoice archiving when Bucket is set.
type S3Config struct {
	Bucket    string `usage:"Bucket for archived invoices; empty disables archiving" flag:"s3-bucket"`
	Region    string `default:"us-east-1" usage:"S3 region"`
	Endpoint  string `usage:"Custom S3 endpoint, e.g. MinIO"`
	AccessKey string `usage:"Static access key (default: AWS credential chain)"`
	SecretKey string `usage:"Static secret key"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config files,
// and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "SHOP",
		Files:     []string{"config.yaml", "/etc/shop/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Database.URL == "" {
		return errors.New("database URL is required: set SHOP_DATABASE_URL or DATABASE_URL")
	}
	if c.StaffKeyPepper == "" {
		return errors.New("staff key pepper is required: set SHOP_STAFF_KEY_PEPPER")
	}
	if c.Invoice.RateLimit.Max <= 0 || c.Invoice.RateLimit.Window <= 0 {
		return errors.New("invoice rate limit must be positive")
	}
	return nil
}

// applyPlatformDefaults maps platform-provided environment variables (Railway,
// Render, etc.) that use standard names like DATABASE_URL and PORT to the
// application's SHOP_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.Database.URL == "" {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			c.Database.URL = v
		}
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == defaultAddr {
		c.Addr = "0.0.0.0:" + port
	}
}
