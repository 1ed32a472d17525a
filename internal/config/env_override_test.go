package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvOverrides(t *testing.T) {
	t.Run("MINIPM_DB and MINIPM_DB_DRIVER", func(t *testing.T) {
		t.Setenv("MINIPM_DB", "/tmp/pm.db")
		t.Setenv("MINIPM_DB_DRIVER", "sqlite")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "/tmp/pm.db", cfg.Database.Path)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
	})

	t.Run("empty variables leave values alone", func(t *testing.T) {
		t.Setenv("MINIPM_ADDR", "")
		t.Setenv("MINIPM_LOG_LEVEL", "")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "127.0.0.1:8000", cfg.Server.Addr)
		assert.Equal(t, "info", cfg.Logging.Level)
	})

	t.Run("MINIPM_CORS_ORIGINS splits and trims", func(t *testing.T) {
		t.Setenv("MINIPM_CORS_ORIGINS", " https://pm.example.com, ,https://admin.example.com")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, []string{"https://pm.example.com", "https://admin.example.com"}, cfg.Server.CORSOrigins)
	})

	t.Run("MINIPM_LOG_LEVEL", func(t *testing.T) {
		t.Setenv("MINIPM_LOG_LEVEL", "debug")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "debug", cfg.Logging.Level)
	})
}
