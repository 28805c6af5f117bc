package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/Alturino/catalog/internal/log"
)

type Application struct {
	Env     string `mapstructure:"env"     json:"env"`
	Host    string `mapstructure:"host"    json:"host"`
	Version string `mapstructure:"version" json:"version"`
	Port    int    `mapstructure:"port"    json:"port"`
}

type Database struct {
	URL            string `mapstructure:"url"             json:"-"`
	Name           string `mapstructure:"name"            json:"name"`
	Host           string `mapstructure:"host"            json:"host"`
	MigrationPath  string `mapstructure:"migration_path"  json:"migration_path"`
	Password       string `mapstructure:"password"        json:"-"`
	Username       string `mapstructure:"username"        json:"username"`
	MaxConnections int32  `mapstructure:"max_connections" json:"max_connections"`
	MinConnections int32  `mapstructure:"min_connections" json:"min_connections"`
	Port           uint16 `mapstructure:"port"            json:"port"`
}

// ConnString prefers an explicit url over the discrete fields.
func (d Database) ConnString() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.Username,
		d.Password,
		d.Host,
		d.Port,
		d.Name,
	)
}

type Cache struct {
	URL      string `mapstructure:"url"      json:"-"`
	Host     string `mapstructure:"host"     json:"host"`
	Password string `mapstructure:"password" json:"-"`
	Database int    `mapstructure:"database" json:"database"`
	Port     uint16 `mapstructure:"port"     json:"port"`
}

type Otel struct {
	Host    string `mapstructure:"host"    json:"host"`
	Port    int    `mapstructure:"port"    json:"port"`
	Enabled bool   `mapstructure:"enabled" json:"enabled"`
}

func (o Otel) Endpoint() string {
	return fmt.Sprintf("%s:%d", o.Host, o.Port)
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" json:"allowed_origins"`
}

type Config struct {
	Database    `mapstructure:"db"          json:"db"`
	Cache       `mapstructure:"cache"       json:"cache"`
	Application `mapstructure:"application" json:"application"`
	Otel        `mapstructure:"otel"        json:"otel"`
	Cors        `mapstructure:"cors"        json:"cors"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("application.env", "production")
	v.SetDefault("application.host", "0.0.0.0")
	v.SetDefault("application.port", 8000)
	v.SetDefault("application.version", "1.0.0")
	v.SetDefault("db.max_connections", 10)
	v.SetDefault("db.min_connections", 1)
	v.SetDefault("db.migration_path", "file://migrations")
	v.SetDefault("cache.host", "redis")
	v.SetDefault("cache.port", 6379)
	v.SetDefault("otel.host", "otel-collector")
	v.SetDefault("otel.port", 4317)
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
}

// InitConfig reads env/<filename>.yaml, then lets DATABASE_URL, REDIS_URL and
// ALLOWED_ORIGINS override the file. A missing file is not an error.
func InitConfig(c context.Context, filename string, paths ...string) (Config, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "config InitConfig").
		Str(log.KeyProcess, "init config").
		Str("filename", filename).
		Logger()

	v := viper.New()
	setDefaults(v)
	v.SetConfigName(filename)
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"./env"}
	}
	for _, path := range paths {
		v.AddConfigPath(path)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"db.url":               "DATABASE_URL",
		"cache.url":            "REDIS_URL",
		"cors.allowed_origins": "ALLOWED_ORIGINS",
		"application.env":      "APPLICATION_ENV",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			err = fmt.Errorf("failed binding env=%s with error=%w", env, err)
			logger.Error().Err(err).Msg(err.Error())
			return Config{}, err
		}
	}

	logger = logger.With().Str(log.KeyProcess, "reading config").Logger()
	logger.Info().Msg("reading config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			err = fmt.Errorf("error when reading config with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			return Config{}, err
		}
		logger.Warn().Msg("config file not found, using defaults and environment")
	} else {
		logger.Info().Msg("read config")
	}

	logger = logger.With().Str(log.KeyProcess, "unmarshaling config").Logger()
	logger.Info().Msg("unmarshaling config")
	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		err = fmt.Errorf("error unmarshaling config with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return Config{}, err
	}
	cfg.Cors.AllowedOrigins = splitOrigins(cfg.Cors.AllowedOrigins)
	logger.Info().Any(log.KeyConfig, cfg).Msg("unmarshalled config")

	return cfg, nil
}

// splitOrigins flattens comma separated entries, which is how ALLOWED_ORIGINS arrives.
func splitOrigins(origins []string) []string {
	result := make([]string, 0, len(origins))
	for _, origin := range origins {
		for _, o := range strings.Split(origin, ",") {
			if o = strings.TrimSpace(o); o != "" {
				result = append(result, o)
			}
		}
	}
	return result
}
