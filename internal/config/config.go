package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
	}
	Log struct {
		Level  string
		Pretty bool
	}
	// TokenLifetime is how long tokens issued at signup/signin stay valid.
	// Zero means tokens never expire.
	TokenLifetime   time.Duration
	ShutdownTimeout time.Duration
}

// Load reads config from environment (BOOKMARKS_ prefix), an optional .env
// file and an optional bookmarks.yaml.
func Load() (*Config, error) {
	_ = godotenv.Load() // optional .env, never overrides the real environment

	v := viper.New()
	v.SetEnvPrefix("BOOKMARKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("bookmarks")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("token.lifetime", "720h")
	v.SetDefault("shutdown.timeout", "10s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Pretty = v.GetBool("log.pretty")

	lifetime, err := time.ParseDuration(v.GetString("token.lifetime"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKMARKS_TOKEN_LIFETIME: %w", err)
	}
	if lifetime < 0 {
		return nil, fmt.Errorf("BOOKMARKS_TOKEN_LIFETIME must not be negative")
	}
	cfg.TokenLifetime = lifetime

	shutdown, err := time.ParseDuration(v.GetString("shutdown.timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKMARKS_SHUTDOWN_TIMEOUT: %w", err)
	}
	cfg.ShutdownTimeout = shutdown

	switch cfg.DB.Driver {
	case "":
		return nil, fmt.Errorf("BOOKMARKS_DB_DRIVER is required (sqlite3, mysql, postgres)")
	case "sqlite3", "mysql", "postgres":
	default:
		return nil, fmt.Errorf("unsupported BOOKMARKS_DB_DRIVER %q: must be sqlite3, mysql, or postgres", cfg.DB.Driver)
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("BOOKMARKS_DB_DSN is required")
	}

	return cfg, nil
}
