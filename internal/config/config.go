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
	Server  ServerConfig
	App     AppConfig
	API     APIConfig
	KV      KVConfig
	Refresh RefreshConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"127.0.0.1"`
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"travio-api"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	Version     string `envconfig:"APP_VERSION" default:"1.0.0"`
}

// APIConfig holds remote inventory API settings.
type APIConfig struct {
	BaseURL string        `envconfig:"API_BASE_URL" default:"https://api-ta-pbb-5o1x.vercel.app/api"`
	Timeout time.Duration `envconfig:"API_TIMEOUT" default:"15s"`
}

// KVConfig holds persistent key-value store settings.
type KVConfig struct {
	Backend string `envconfig:"KV_BACKEND" default:"sqlite"` // sqlite, mysql, redis, or memory

	// SQLite settings
	SQLitePath string `envconfig:"KV_SQLITE_PATH" default:"./data/travio.db"`

	// MySQL settings
	MySQLHost     string `envconfig:"KV_MYSQL_HOST" default:"localhost"`
	MySQLPort     int    `envconfig:"KV_MYSQL_PORT" default:"3306"`
	MySQLName     string `envconfig:"KV_MYSQL_NAME" default:"travio"`
	MySQLUser     string `envconfig:"KV_MYSQL_USER" default:"root"`
	MySQLPassword string `envconfig:"KV_MYSQL_PASS" default:""`

	// Redis settings
	RedisHost     string `envconfig:"KV_REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"KV_REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"KV_REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"KV_REDIS_DB" default:"0"`
}

// RefreshConfig holds catalog refresh scheduler settings.
type RefreshConfig struct {
	Enabled  bool          `envconfig:"REFRESH_ENABLED" default:"true"`
	Interval time.Duration `envconfig:"REFRESH_INTERVAL" default:"15m"`
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// MySQLDSN returns the MySQL data source name.
func (k *KVConfig) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		k.MySQLUser, k.MySQLPassword, k.MySQLHost, k.MySQLPort, k.MySQLName)
}

// RedisAddress returns the Redis address in host:port format.
func (k *KVConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", k.RedisHost, k.RedisPort)
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
