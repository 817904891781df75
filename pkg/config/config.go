package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Catalog  CatalogConfig
	Checkout CheckoutConfig
	Redis    RedisConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
	LogLevel    string
}

type ServerConfig struct {
	Port             string
	CORSAllowOrigins []string
	RequestTimeout   time.Duration
	ShutdownTimeout  time.Duration
}

// DatabaseConfig selects the store. URL wins when set; otherwise Host selects
// PostgreSQL and an empty Host falls back to the SQLite file at SQLitePath.
type DatabaseConfig struct {
	URL             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	SQLitePath      string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string
}

type JWTConfig struct {
	SecretKey string
	ExpiresIn time.Duration
}

type CatalogConfig struct {
	MaxPageLimit int
}

type CheckoutConfig struct {
	AllowNegativeStock bool
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration
}

// Enabled reports whether a Redis endpoint was configured.
func (c RedisConfig) Enabled() bool {
	return c.RedisHost != ""
}

const devJWTSecret = "dev-secret-change-me"

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "myShop"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Port:             getEnv("PORT", "8000"),
			CORSAllowOrigins: getEnvAsList("CORS_ALLOW_ORIGINS", []string{"*"}),
			RequestTimeout:   getEnvAsDuration("REQUEST_TIMEOUT", 10*time.Second),
			ShutdownTimeout:  getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			Host:            getEnv("DB_HOST", ""),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Name:            getEnv("DB_NAME", "ecommerce"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			SQLitePath:      getEnv("DB_SQLITE_PATH", "ecommerce.db"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", time.Hour),
			LogLevel:        getEnv("DB_LOG_LEVEL", "warn"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
			ExpiresIn: time.Duration(getEnvAsInt("JWT_EXPIRE_MINUTES", 30)) * time.Minute,
		},
		Catalog: CatalogConfig{
			MaxPageLimit: getEnvAsInt("PRODUCTS_MAX_LIMIT", 100),
		},
		Checkout: CheckoutConfig{
			AllowNegativeStock: getEnvAsBool("ALLOW_NEGATIVE_STOCK", false),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", ""),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvAsInt("REDIS_DB", 0),
			CacheTTL:      getEnvAsDuration("REDIS_CACHE_TTL", 5*time.Minute),
		},
	}

	if cfg.JWT.SecretKey == "" {
		if cfg.IsProduction() {
			return nil, errors.New("missing jwt secret")
		}
		cfg.JWT.SecretKey = devJWTSecret
	}

	if cfg.JWT.ExpiresIn <= 0 {
		return nil, errors.New("jwt expiry must be positive")
	}

	if cfg.Catalog.MaxPageLimit <= 0 {
		return nil, errors.New("products max limit must be positive")
	}

	if cfg.Database.Host != "" && cfg.Database.URL == "" && cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if val, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if val, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsList(key string, defaultVal []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultVal
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}

	return out
}
