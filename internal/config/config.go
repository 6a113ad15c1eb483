package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	App      AppConfig
	Backend  BackendConfig
	Identity IdentityConfig
	Purchase PurchaseConfig
	Gateway  GatewayConfig
	Cache    CacheConfig
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"abod-card"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	Debug       bool   `envconfig:"APP_DEBUG" default:"false"`
}

// BackendConfig holds settings for the remote store backend.
type BackendConfig struct {
	BaseURL string        `envconfig:"BACKEND_BASE_URL" default:"https://abod-digital.preview.emergentagent.com/api"`
	Timeout time.Duration `envconfig:"BACKEND_TIMEOUT" default:"30s"`
}

// IdentityConfig holds buyer identity resolution settings.
type IdentityConfig struct {
	// TelegramUserID is the verified platform user id, when the app is opened
	// through the bot. Zero means no platform handshake happened.
	TelegramUserID int64 `envconfig:"TELEGRAM_USER_ID" default:"0"`
	// GuestStorePath is the local SQLite file holding the guest profile.
	GuestStorePath string `envconfig:"GUEST_STORE_PATH" default:"./data/guest.db"`
}

// PurchaseConfig holds purchase flow settings.
type PurchaseConfig struct {
	// SupportPhone is the WhatsApp contact guest orders are handed off to.
	SupportPhone string `envconfig:"SUPPORT_PHONE" default:"967783380906"`
	// DefaultWindow is shown for pending orders when the backend supplies no
	// estimated completion time.
	DefaultWindow string        `envconfig:"DEFAULT_FULFILLMENT_WINDOW" default:"10-30 minutes"`
	SubmitTimeout time.Duration `envconfig:"PURCHASE_SUBMIT_TIMEOUT" default:"30s"`
	// NavigateDelay is how long success and insufficient-balance messages stay
	// on screen before the flow navigates away.
	NavigateDelay time.Duration `envconfig:"PURCHASE_NAVIGATE_DELAY" default:"3s"`
}

// GatewayConfig holds settings for the reverse-proxy gateway.
type GatewayConfig struct {
	Host            string        `envconfig:"GATEWAY_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"GATEWAY_PORT" default:"8080"`
	UpstreamURL     string        `envconfig:"GATEWAY_UPSTREAM_URL" default:"https://abod-digital.preview.emergentagent.com"`
	ReadTimeout     time.Duration `envconfig:"GATEWAY_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"GATEWAY_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"GATEWAY_SHUTDOWN_TIMEOUT" default:"30s"`
}

// CacheConfig holds catalog response cache settings for the gateway.
type CacheConfig struct {
	Type string        `envconfig:"CACHE_TYPE" default:"memory"`
	TTL  time.Duration `envconfig:"CACHE_TTL" default:"5m"`

	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

// Address returns the gateway listen address in host:port format.
func (g *GatewayConfig) Address() string {
	return fmt.Sprintf("%s:%d", g.Host, g.Port)
}

// RedisAddress returns the Redis address in host:port format.
func (c *CacheConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode.
func (a *AppConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
