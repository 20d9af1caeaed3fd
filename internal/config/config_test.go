package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	v.Set("db.driver", "sqlite3")
	v.Set("db.dsn", "file:bookmarks.db")

	cfg, err := fromViper(v)
	if err != nil {
		t.Fatalf("fromViper: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("addr = %q, want %q", cfg.HTTP.Addr, ":8080")
	}
	if cfg.TokenLifetime != 720*time.Hour {
		t.Errorf("token lifetime = %v, want 720h", cfg.TokenLifetime)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("shutdown timeout = %v, want 10s", cfg.ShutdownTimeout)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level = %q, want info", cfg.Log.Level)
	}
}

func TestFromViper_Errors(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]string
		wantErr string
	}{
		{"missing driver", map[string]string{"db.dsn": "x"}, "BOOKMARKS_DB_DRIVER is required"},
		{"unknown driver", map[string]string{"db.driver": "oracle", "db.dsn": "x"}, "unsupported"},
		{"missing dsn", map[string]string{"db.driver": "postgres"}, "BOOKMARKS_DB_DSN is required"},
		{"bad lifetime", map[string]string{"db.driver": "mysql", "db.dsn": "x", "token.lifetime": "soon"}, "BOOKMARKS_TOKEN_LIFETIME"},
		{"negative lifetime", map[string]string{"db.driver": "mysql", "db.dsn": "x", "token.lifetime": "-1h"}, "must not be negative"},
		{"bad shutdown", map[string]string{"db.driver": "mysql", "db.dsn": "x", "shutdown.timeout": "later"}, "BOOKMARKS_SHUTDOWN_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			for k, val := range tt.values {
				v.Set(k, val)
			}
			_, err := fromViper(v)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("BOOKMARKS_DB_DRIVER", "sqlite3")
	t.Setenv("BOOKMARKS_DB_DSN", "file::memory:")
	t.Setenv("BOOKMARKS_HTTP_ADDR", ":9999")
	t.Setenv("BOOKMARKS_TOKEN_LIFETIME", "0s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != ":9999" {
		t.Errorf("addr = %q, want %q", cfg.HTTP.Addr, ":9999")
	}
	if cfg.TokenLifetime != 0 {
		t.Errorf("token lifetime = %v, want 0", cfg.TokenLifetime)
	}
}
