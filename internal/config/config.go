package config

import (
	"fmt"
	"strings"
	"time"

	"rentalhub-storefront-api/internal/model"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server      ServerConfig
	App         AppConfig
	Cache       CacheConfig
	Inventory   InventoryConfig
	Images      ImageConfig
	ServiceArea ServiceAreaConfig
	Site        SiteConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"rentalhub-storefront"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	Debug       bool   `envconfig:"APP_DEBUG" default:"false"`
	Version     string `envconfig:"APP_VERSION" default:"1.0.0"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
}

// CacheConfig holds settings for the read-through cache in front of the index.
type CacheConfig struct {
	Type      string        `envconfig:"CACHE_TYPE" default:"memory"` // memory or redis
	TTL       time.Duration `envconfig:"CACHE_TTL" default:"2m"`
	KeyPrefix string        `envconfig:"CACHE_KEY_PREFIX" default:"rentalhub"`

	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

// InventoryConfig holds the external search index settings.
type InventoryConfig struct {
	APIKey              string        `envconfig:"INVENTORY_API_KEY" default:""`
	BaseURL             string        `envconfig:"INVENTORY_BASE_URL" default:"https://search.equipmentindex.io"`
	Timeout             time.Duration `envconfig:"INVENTORY_TIMEOUT" default:"10s"`
	RateLimit           float64       `envconfig:"INVENTORY_RATE_LIMIT" default:"5"` // requests per second
	RateBurst           int           `envconfig:"INVENTORY_RATE_BURST" default:"5"`
	CandidateMultiplier int           `envconfig:"INVENTORY_CANDIDATE_MULTIPLIER" default:"4"`
	DefaultLimit        int           `envconfig:"INVENTORY_DEFAULT_LIMIT" default:"24"`
}

// ImageConfig holds the optional image host override.
type ImageConfig struct {
	BaseURL string `envconfig:"IMAGE_BASE_URL" default:""`
}

// ServiceAreaConfig describes the business's coverage zone.
type ServiceAreaConfig struct {
	Lat          float64 `envconfig:"SERVICE_AREA_LAT" default:"30.2241"`
	Lon          float64 `envconfig:"SERVICE_AREA_LON" default:"-92.0198"`
	RadiusMiles  float64 `envconfig:"SERVICE_AREA_RADIUS_MILES" default:"100"`
	City         string  `envconfig:"SERVICE_AREA_CITY" default:"Lafayette"`
	State        string  `envconfig:"SERVICE_AREA_STATE" default:"LA"`
	BusinessName string  `envconfig:"BUSINESS_NAME" default:"Acadiana Equipment Rentals"`
}

// SiteConfig holds public site settings used for canonical URLs and sitemaps.
type SiteConfig struct {
	BaseURL string   `envconfig:"SITE_BASE_URL" default:"https://www.acadianaequipment.com"`
	Locales []string `envconfig:"SITE_LOCALES" default:"en,es"`
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RedisAddress returns the Redis address in host:port format.
func (c *CacheConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode.
func (a *AppConfig) IsDevelopment() bool {
	return strings.EqualFold(a.Environment, "development")
}

// EffectiveLogLevel is LOG_LEVEL, forced to debug when APP_DEBUG is set.
func (a *AppConfig) EffectiveLogLevel() string {
	if a.Debug {
		return "debug"
	}
	return a.LogLevel
}

// Configured reports whether the index credentials are present.
func (i *InventoryConfig) Configured() bool {
	return strings.TrimSpace(i.APIKey) != ""
}

// Area converts the settings into the immutable domain value.
func (s ServiceAreaConfig) Area() model.ServiceArea {
	return model.ServiceArea{
		Center:       model.Coordinates{Lat: s.Lat, Lon: s.Lon},
		RadiusMiles:  s.RadiusMiles,
		City:         s.City,
		State:        strings.ToUpper(s.State),
		BusinessName: s.BusinessName,
	}
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
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

// validate rejects settings the rest of the process cannot run with. A
// missing inventory key is allowed: it surfaces per request as a 500.
func (c *Config) validate() error {
	if c.ServiceArea.RadiusMiles <= 0 {
		return fmt.Errorf("config: SERVICE_AREA_RADIUS_MILES must be positive")
	}
	if c.ServiceArea.City == "" || c.ServiceArea.State == "" {
		return fmt.Errorf("config: SERVICE_AREA_CITY and SERVICE_AREA_STATE are required")
	}
	if len(c.Site.Locales) == 0 {
		return fmt.Errorf("config: SITE_LOCALES must list at least one locale")
	}
	for i, loc := range c.Site.Locales {
		c.Site.Locales[i] = strings.ToLower(strings.TrimSpace(loc))
	}
	if c.Site.Locales[0] != "en" {
		return fmt.Errorf("config: SITE_LOCALES must start with en")
	}
	if c.Inventory.RateLimit <= 0 {
		return fmt.Errorf("config: INVENTORY_RATE_LIMIT must be positive")
	}
	if c.Inventory.CandidateMultiplier < 1 {
		c.Inventory.CandidateMultiplier = 1
	}
	c.Site.BaseURL = strings.TrimRight(c.Site.BaseURL, "/")
	return nil
}
