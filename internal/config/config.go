// Package config manages environment variables.
//
// It reads variables from the `.env` file and the process environment,
// loads them into structured Go types (struct), and validates that
// required values are present so they can be reused across the
// application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults (port 5000, local MongoDB, any CORS origin).
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read twice:

	1. Prefixed variables: STUDENTS_<SECTION>__<KEY>
	   The prefix is removed, the rest is lowercased and "__" becomes the
	   koanf "." delimiter, so STUDENTS_SERVER__READ_TIMEOUT -> server.read_timeout.

	2. A handful of well-known plain variables (PORT, MONGO_URI, DATABASE_URL)
	   that hosting platforms inject. They are mapped onto their koanf keys and
	   win over the prefixed form.
*/

const envPrefix = "STUDENTS_"

// Database drivers understood by the database and repository packages.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config is the root configuration object for the application.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required,numeric"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`
}

// DatabaseConfig selects the document store and how to reach it.
//
// URI is the full connection string (mongodb://... or postgres://...).
// Name is the MongoDB database name; postgres takes it from the URI.
type DatabaseConfig struct {
	Driver          string `koanf:"driver" validate:"required,oneof=mongo postgres memory"`
	URI             string `koanf:"uri" validate:"required_unless=Driver memory"`
	Name            string `koanf:"name" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"min=1"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"min=0"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"min=0"`
	PingTimeout     int    `koanf:"ping_timeout" validate:"min=1"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "5000",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Driver:          DriverMongo,
			URI:             "mongodb://localhost:27017",
			Name:            "students",
			MaxOpenConns:    25,
			ConnMaxLifetime: 300,
			ConnMaxIdleTime: 60,
			PingTimeout:     10,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// envKey maps STUDENTS_SERVER__PORT to server.port.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
}

// wellKnownKey maps plain platform variables onto koanf keys.
// Returning "" tells the env provider to skip the variable.
func wellKnownKey(s string) string {
	switch s {
	case "PORT":
		return "server.port"
	case "MONGO_URI", "DATABASE_URL":
		return "database.uri"
	default:
		return ""
	}
}

// LoadConfig loads configuration from environment variables on top of
// DefaultConfig, validates it, applies observability defaults and returns it.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("could not load prefixed env variables: %w", err)
	}

	// An empty PORT or MONGO_URI keeps the previous value.
	wellKnown := env.ProviderWithValue("", ".", func(key, value string) (string, any) {
		if value == "" {
			return "", nil
		}
		return wellKnownKey(key), value
	})
	if err := k.Load(wellKnown, nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	// Unmarshal keeps fields that have no key in koanf, so defaults survive.
	mainConfig := DefaultConfig()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	mainConfig.Observability.ServiceName = "students-api"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
