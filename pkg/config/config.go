package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// ConfigPathENV overrides the config file location.
const ConfigPathENV = "LIBRIVERSE_CONFIG_PATH"

// envPrefix namespaces every environment variable, e.g.
// LIBRIVERSE_SERVER__PORT maps to server.port.
const envPrefix = "LIBRIVERSE_"

// Config holds all application configuration. Values are loaded in
// order: built-in defaults, then an optional YAML config file, then
// environment variables. Config is immutable after Load.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Auth     AuthConfig     `koanf:"auth"`
	SMTP     SMTPConfig     `koanf:"smtp"`
}

type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

type DatabaseConfig struct {
	FilePath          string        `koanf:"file_path"`
	Debug             bool          `koanf:"debug"`
	BusyTimeout       time.Duration `koanf:"busy_timeout"`
	MaxRetries        int           `koanf:"max_retries"`
	ConnectRetryCount int           `koanf:"connect_retry_count"`
	ConnectRetryDelay time.Duration `koanf:"connect_retry_delay"`
}

type AuthConfig struct {
	JWTSecret string `koanf:"jwt_secret"`
}

type SMTPConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	From     string `koanf:"from"`
	UseTLS   bool   `koanf:"use_tls"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 4070,
		},
		Database: DatabaseConfig{
			FilePath:          "./tmp/libriverse.sqlite",
			BusyTimeout:       5 * time.Second,
			MaxRetries:        3,
			ConnectRetryCount: 5,
			ConnectRetryDelay: 2 * time.Second,
		},
		Auth: AuthConfig{},
		SMTP: SMTPConfig{
			Port:   587,
			UseTLS: true,
		},
	}
}

// New loads and validates the application configuration.
func New() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, errors.WithStack(err)
	}

	if path := configFilePath(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "failed to load config file %s", path)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, errors.WithStack(err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.WithStack(err)
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("auth.jwt_secret is required (set LIBRIVERSE_AUTH__JWT_SECRET)")
	}

	return cfg, nil
}

// envTransformFunc maps environment variable names to koanf config paths,
// e.g. LIBRIVERSE_SERVER__PORT -> server.port.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

func configFilePath() string {
	if path := os.Getenv(ConfigPathENV); path != "" {
		return path
	}
	for _, path := range []string{"config.yaml", "config.yml"} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
