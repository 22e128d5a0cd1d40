// Package config reads runtime settings from the environment, an optional
// .env file and an optional config file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	KeyPort           = "PORT"
	KeyDBDriver       = "DB_DRIVER"
	KeyDatabaseURL    = "DATABASE_URL"
	KeyJWTSecret      = "JWT_SECRET"
	KeyClientURL      = "CLIENT_URL"
	KeyAllowedOrigins = "ALLOWED_ORIGINS"
	KeyLogLevel       = "LOG_LEVEL"
	KeyLogFormat      = "LOG_FORMAT"
	KeyGinMode        = "GIN_MODE"
	KeySeedOnStart    = "SEED_ON_START"
)

// DefaultOrigins are the local development client addresses always allowed
// by CORS.
var DefaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:3001",
	"http://localhost:5173",
}

type Config struct {
	Port           string
	DBDriver       string
	DatabaseURL    string
	JWTSecret      string
	ClientURL      string
	AllowedOrigins []string
	LogLevel       string
	LogFormat      string
	GinMode        string
	SeedOnStart    bool
}

// Load resolves settings in increasing precedence: defaults, the config
// file (when configFile is not empty), a .env file in the working directory,
// the process environment.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()

	v.SetDefault(KeyPort, "3000")
	v.SetDefault(KeyDBDriver, "sqlite")
	v.SetDefault(KeyDatabaseURL, "construction_management.db")
	v.SetDefault(KeyJWTSecret, "")
	v.SetDefault(KeyClientURL, "")
	v.SetDefault(KeyAllowedOrigins, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyGinMode, "release")
	v.SetDefault(KeySeedOnStart, false)

	if configFile != "" {
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}

	v.AutomaticEnv()

	cfg := &Config{
		Port:        v.GetString(KeyPort),
		DBDriver:    strings.ToLower(v.GetString(KeyDBDriver)),
		DatabaseURL: v.GetString(KeyDatabaseURL),
		JWTSecret:   v.GetString(KeyJWTSecret),
		ClientURL:   v.GetString(KeyClientURL),
		LogLevel:    v.GetString(KeyLogLevel),
		LogFormat:   v.GetString(KeyLogFormat),
		GinMode:     v.GetString(KeyGinMode),
		SeedOnStart: v.GetBool(KeySeedOnStart),
	}

	cfg.AllowedOrigins = origins(cfg.ClientURL, v.GetString(KeyAllowedOrigins))

	return cfg, nil
}

// Validate checks the settings needed to serve requests.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("%s environment variable is not set", KeyJWTSecret)
	}

	switch c.DBDriver {
	case "sqlite", "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported %s %q", KeyDBDriver, c.DBDriver)
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

func origins(clientURL, extra string) []string {
	result := append([]string(nil), DefaultOrigins...)
	seen := make(map[string]bool, len(result))

	for _, origin := range result {
		seen[origin] = true
	}

	candidates := append([]string{clientURL}, strings.Split(extra, ",")...)

	for _, origin := range candidates {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")

		if origin == "" || seen[origin] {
			continue
		}

		seen[origin] = true
		result = append(result, origin)
	}

	return result
}

func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level

	if err := l.UnmarshalText([]byte(level)); err != nil {
		return 0, fmt.Errorf("invalid %s %q", KeyLogLevel, level)
	}

	return l, nil
}

// NewLogger builds the process logger. format is "json" or "text".
func NewLogger(level, format string, w io.Writer) (*slog.Logger, error) {
	l, err := ParseLevel(level)

	if err != nil {
		return nil, err
	}

	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: l}

	switch strings.ToLower(format) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid %s %q", KeyLogFormat, format)
	}
}
