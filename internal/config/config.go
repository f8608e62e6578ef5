package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	StoreFile     = "file"
	StoreRedis    = "redis"
	StoreMySQL    = "mysql"
	StorePostgres = "postgres"

	CatalogHTTP  = "http"
	CatalogMySQL = "mysql"
)

type Config struct {
	AppEnv   string `validate:"required"`
	LogLevel string `validate:"oneof=debug info warn warning error"`
	Port     string `validate:"required,numeric"`

	CatalogSource  string        `validate:"oneof=http mysql"`
	CatalogBaseURL string        `validate:"required,url"`
	CatalogTimeout time.Duration `validate:"gt=0s"`

	CartStore      string `validate:"oneof=file redis mysql postgres"`
	CartStorageKey string `validate:"required"`
	CartFilePath   string `validate:"required_if=CartStore file"`
	RedisAddr      string `validate:"required_if=CartStore redis"`
	MySQLDSN       string
	PGDSN          string `validate:"required_if=CartStore postgres"`
}

// Load reads the configuration from the environment. Variables from the
// given env files (or ./.env when none are given and it exists) fill in
// anything the process environment does not set.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return Config{}, fmt.Errorf("load env files: %w", err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	timeout, err := time.ParseDuration(getenv("CATALOG_TIMEOUT", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("CATALOG_TIMEOUT: %w", err)
	}

	cfg := Config{
		AppEnv:   getenv("APP_ENV", "dev"),
		LogLevel: getenv("LOG_LEVEL", "info"),
		Port:     getenv("APP_PORT", "8080"),

		CatalogSource:  getenv("CATALOG_SOURCE", CatalogHTTP),
		CatalogBaseURL: getenv("CATALOG_BASE_URL", "http://localhost:3333"),
		CatalogTimeout: timeout,

		CartStore:      getenv("CART_STORE", StoreFile),
		CartStorageKey: getenv("CART_STORAGE_KEY", "@RocketShoes:cart"),
		CartFilePath:   getenv("CART_FILE_PATH", "data/cart.json"),
		RedisAddr:      getenv("REDIS_ADDR", "localhost:6379"),
		MySQLDSN:       os.Getenv("MYSQL_DSN"),
		PGDSN:          os.Getenv("PG_DSN"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if (c.CartStore == StoreMySQL || c.CatalogSource == CatalogMySQL) && c.MySQLDSN == "" {
		return errors.New("invalid config: MYSQL_DSN is required when mysql is used")
	}
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
