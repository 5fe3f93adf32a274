package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"ARFLOW_APP_NAME":                os.Getenv("ARFLOW_APP_NAME"),
		"ARFLOW_APP_ENV":                 os.Getenv("ARFLOW_APP_ENV"),
		"ARFLOW_APP_PORT":                os.Getenv("ARFLOW_APP_PORT"),
		"ARFLOW_DATABASE_HOST":           os.Getenv("ARFLOW_DATABASE_HOST"),
		"ARFLOW_DATABASE_PORT":           os.Getenv("ARFLOW_DATABASE_PORT"),
		"ARFLOW_DATABASE_USER":           os.Getenv("ARFLOW_DATABASE_USER"),
		"ARFLOW_DATABASE_PASSWORD":       os.Getenv("ARFLOW_DATABASE_PASSWORD"),
		"ARFLOW_DATABASE_DBNAME":         os.Getenv("ARFLOW_DATABASE_DBNAME"),
		"ARFLOW_DATABASE_SSLMODE":        os.Getenv("ARFLOW_DATABASE_SSLMODE"),
		"ARFLOW_DATABASE_MAX_OPEN_CONNS": os.Getenv("ARFLOW_DATABASE_MAX_OPEN_CONNS"),
		"ARFLOW_DATABASE_MAX_IDLE_CONNS": os.Getenv("ARFLOW_DATABASE_MAX_IDLE_CONNS"),
		"ARFLOW_JWT_SECRET":              os.Getenv("ARFLOW_JWT_SECRET"),
		"ARFLOW_SYNC_POLL_INTERVAL":      os.Getenv("ARFLOW_SYNC_POLL_INTERVAL"),
		"APP_ENV":                        os.Getenv("APP_ENV"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "arflow-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "", cfg.Database.Password)
		assert.Equal(t, "arflow", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, time.Minute, cfg.Sync.PollInterval)
		assert.Equal(t, "stub", cfg.Storage.Provider)
		assert.Equal(t, "*/5 * * * *", cfg.Scheduler.EscalationSchedule)
	})

	t.Run("loads values from environment variables with ARFLOW prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("ARFLOW_APP_NAME", "test-app")
		os.Setenv("ARFLOW_APP_ENV", "testing")
		os.Setenv("ARFLOW_APP_PORT", "9000")
		os.Setenv("ARFLOW_DATABASE_HOST", "testdb.local")
		os.Setenv("ARFLOW_DATABASE_PORT", "5433")
		os.Setenv("ARFLOW_DATABASE_USER", "testuser")
		os.Setenv("ARFLOW_DATABASE_PASSWORD", "testpass")
		os.Setenv("ARFLOW_DATABASE_DBNAME", "testdb")
		os.Setenv("ARFLOW_DATABASE_SSLMODE", "require")
		os.Setenv("ARFLOW_DATABASE_MAX_OPEN_CONNS", "50")
		os.Setenv("ARFLOW_DATABASE_MAX_IDLE_CONNS", "10")
		os.Setenv("ARFLOW_SYNC_POLL_INTERVAL", "2m")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.Equal(t, 2*time.Minute, cfg.Sync.PollInterval)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("ARFLOW_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("ARFLOW_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("zero MaxOpenConns uses default", func(t *testing.T) {
		clearEnv()
		os.Setenv("ARFLOW_DATABASE_MAX_OPEN_CONNS", "0")

		cfg, err := Load()
		require.NoError(t, err)
		// 0 is treated as "not set", so default (25) is used
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	})

	t.Run("validates MaxIdleConns cannot be negative", func(t *testing.T) {
		clearEnv()
		os.Setenv("ARFLOW_DATABASE_MAX_IDLE_CONNS", "-1")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns cannot be negative")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	originalEnv := map[string]string{
		"ARFLOW_APP_ENV":           os.Getenv("ARFLOW_APP_ENV"),
		"ARFLOW_JWT_SECRET":        os.Getenv("ARFLOW_JWT_SECRET"),
		"ARFLOW_DATABASE_PASSWORD": os.Getenv("ARFLOW_DATABASE_PASSWORD"),
		"ARFLOW_DATABASE_SSLMODE":  os.Getenv("ARFLOW_DATABASE_SSLMODE"),
		"ARFLOW_COOKIE_SECURE":     os.Getenv("ARFLOW_COOKIE_SECURE"),
		"ARFLOW_STORAGE_PROVIDER":  os.Getenv("ARFLOW_STORAGE_PROVIDER"),
		"APP_ENV":                  os.Getenv("APP_ENV"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	setValidProductionBase := func() {
		os.Setenv("ARFLOW_APP_ENV", "production")
		os.Setenv("ARFLOW_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		os.Setenv("ARFLOW_DATABASE_PASSWORD", "secure-password")
		os.Setenv("ARFLOW_DATABASE_SSLMODE", "require")
		os.Setenv("ARFLOW_COOKIE_SECURE", "true")
		os.Setenv("ARFLOW_STORAGE_PROVIDER", "s3")
	}

	t.Run("requires jwt.secret in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Unsetenv("ARFLOW_JWT_SECRET")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret is required in production")
	})

	t.Run("requires jwt.secret at least 32 characters in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Setenv("ARFLOW_JWT_SECRET", "short-secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret must be at least 32 characters")
	})

	t.Run("requires database.password in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Unsetenv("ARFLOW_DATABASE_PASSWORD")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Setenv("ARFLOW_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("rejects stub storage in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Setenv("ARFLOW_STORAGE_PROVIDER", "stub")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.provider cannot be 'stub' in production")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost")
		assert.Contains(t, dsn, "5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		// URL-encoded password should be in the DSN
		assert.Contains(t, dsn, "pass%40word%23123")
	})

	t.Run("handles empty password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "",
			DBName:   "db",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.NotEmpty(t, dsn)
	})
}
