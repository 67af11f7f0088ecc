package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearPlatformEnv blanks the plain variables a host may have set.
func clearPlatformEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "MONGO_URI", "DATABASE_URL"} {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearPlatformEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
	assert.Equal(t, "students", cfg.Database.Name)
	assert.Equal(t, "students-api", cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
	assert.False(t, cfg.Observability.NewRelicEnabled())
}

func TestLoadConfig_WellKnownVariables(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("MONGO_URI", "mongodb://db:27017")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mongodb://db:27017", cfg.Database.URI)
}

func TestLoadConfig_PrefixedVariables(t *testing.T) {
	clearPlatformEnv(t)
	t.Setenv("STUDENTS_PRIMARY__ENV", "production")
	t.Setenv("STUDENTS_SERVER__READ_TIMEOUT", "5")
	t.Setenv("STUDENTS_DATABASE__DRIVER", "postgres")
	t.Setenv("STUDENTS_DATABASE__URI", "postgres://u:p@localhost:5432/students")
	t.Setenv("STUDENTS_OBSERVABILITY__LOGGING__LEVEL", "warn")
	t.Setenv("STUDENTS_OBSERVABILITY__LOGGING__SLOW_QUERY_THRESHOLD", "250ms")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Primary.Env)
	assert.Equal(t, 5, cfg.Server.ReadTimeout)
	assert.Equal(t, 30, cfg.Server.WriteTimeout)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://u:p@localhost:5432/students", cfg.Database.URI)
	assert.Equal(t, "warn", cfg.Observability.Logging.Level)
	assert.Equal(t, 250*time.Millisecond, cfg.Observability.Logging.SlowQueryThreshold)
	assert.Equal(t, "production", cfg.Observability.Environment)
	assert.True(t, cfg.Observability.IsProduction())
}

func TestLoadConfig_PlainPortWinsOverPrefixed(t *testing.T) {
	t.Setenv("STUDENTS_SERVER__PORT", "6000")
	t.Setenv("PORT", "7000")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Server.Port)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown driver", env: map[string]string{"STUDENTS_DATABASE__DRIVER": "sqlite"}},
		{name: "non numeric port", env: map[string]string{"PORT": "http"}},
		{name: "bad log level", env: map[string]string{"STUDENTS_OBSERVABILITY__LOGGING__LEVEL": "loud"}},
		{name: "bad log format", env: map[string]string{"STUDENTS_OBSERVABILITY__LOGGING__FORMAT": "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MemoryDriverNeedsNoURI(t *testing.T) {
	t.Setenv("STUDENTS_DATABASE__DRIVER", "memory")
	t.Setenv("STUDENTS_DATABASE__URI", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "server.port", envKey("STUDENTS_SERVER__PORT"))
	assert.Equal(t, "observability.new_relic.license_key", envKey("STUDENTS_OBSERVABILITY__NEW_RELIC__LICENSE_KEY"))
	assert.Equal(t, "", wellKnownKey("HOME"))
	assert.Equal(t, "database.uri", wellKnownKey("DATABASE_URL"))
}
