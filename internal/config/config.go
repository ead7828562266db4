package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreDriverPostgres  = "postgres"
	StoreDriverSQLite    = "sqlite"
	StoreDriverFirestore = "firestore"
)

type HTTPConfig struct {
	Host string
	Port int
}

type StoreConfig struct {
	Driver             string
	FirestoreProjectID string
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	AccessSecret string
}

type QuoteConfig struct {
	Validity       time.Duration
	ExpirySchedule string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	Store       StoreConfig
	DB          DBConfig
	Auth        AuthConfig
	Quotes      QuoteConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")

	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	v.SetDefault("QUOTE_VALIDITY", 72*time.Hour)
	v.SetDefault("QUOTE_EXPIRY_SCHEDULE", "@every 1h")

	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		Store: StoreConfig{
			Driver:             v.GetString("STORE_DRIVER"),
			FirestoreProjectID: v.GetString("FIRESTORE_PROJECT_ID"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Quotes: QuoteConfig{
			Validity:       v.GetDuration("QUOTE_VALIDITY"),
			ExpirySchedule: v.GetString("QUOTE_EXPIRY_SCHEDULE"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.Store.Driver {
	case StoreDriverPostgres, StoreDriverSQLite:
		if cfg.DB.DSN == "" {
			return fmt.Errorf("DB_DSN is required")
		}
	case StoreDriverFirestore:
		if cfg.Store.FirestoreProjectID == "" {
			return fmt.Errorf("FIRESTORE_PROJECT_ID is required")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.Quotes.Validity <= 0 {
		return fmt.Errorf("QUOTE_VALIDITY must be positive")
	}
	return nil
}
