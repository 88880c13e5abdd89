package config

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	base := func() Config {
		return Config{
			Port:          "8000",
			Env:           "development",
			JWTSecret:     "secure-secret-at-least-32-chars-long",
			DBPassword:    "secure-password",
			IndexCacheTTL: 20,
		}
	}

	t.Run("valid development config", func(t *testing.T) {
		c := base()
		assert.NoError(t, c.Validate())
	})

	t.Run("missing port", func(t *testing.T) {
		c := base()
		c.Port = ""
		assert.Error(t, c.Validate())
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		c := base()
		c.JWTSecret = ""
		assert.Error(t, c.Validate())
	})

	t.Run("negative cache ttl", func(t *testing.T) {
		c := base()
		c.IndexCacheTTL = -1
		assert.Error(t, c.Validate())
	})

	t.Run("zero cache ttl disables caching", func(t *testing.T) {
		c := base()
		c.IndexCacheTTL = 0
		assert.NoError(t, c.Validate())
		assert.Equal(t, time.Duration(0), c.IndexCacheExpiry())
	})
}

func TestConfig_ValidateProduction(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		jwtSecret   string
		dbPassword  string
		expectError bool
	}{
		{"Production with strong settings", "production", "secure-secret-at-least-32-chars-long", "secure-password", false},
		{"Prod alias with strong settings", "prod", "secure-secret-at-least-32-chars-long", "secure-password", false},
		{"Production with default secret", "production", "your-secret-key-change-in-production", "secure-password", true},
		{"Production with short secret", "production", "too-short", "secure-password", true},
		{"Production with default db password", "production", "secure-secret-at-least-32-chars-long", "password", true},
		{"Production with empty db password", "production", "secure-secret-at-least-32-chars-long", "", true},
		{"Development with short secret is warned not rejected", "development", "dev-secret", "password", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{
				Port:          "8000",
				Env:           tt.env,
				JWTSecret:     tt.jwtSecret,
				DBPassword:    tt.dbPassword,
				DBSSLMode:     "require",
				IndexCacheTTL: 20,
			}

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	defer os.Unsetenv("APP_ENV")
	defer viper.Reset()

	os.Setenv("APP_ENV", "development")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8000", c.Port)
	assert.Equal(t, "yatube", c.DBName)
	assert.Equal(t, "/auth/login/", c.LoginURL)
	assert.Equal(t, 20, c.IndexCacheTTL)
	assert.Equal(t, 20*time.Second, c.IndexCacheExpiry())
}
