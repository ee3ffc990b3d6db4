package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port string `yaml:"port" env:"PORT"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"ADDR"`
	Password string `yaml:"password" env:"PASSWORD"`
	DB       int    `yaml:"db" env:"DB"`
	TTL      string `yaml:"ttl" env:"TTL"`
}

type PostgresConfig struct {
	URL string `yaml:"url" env:"URL"`
}

type QuizConfig struct {
	LandmarkTTL       string `yaml:"landmarkTTL" env:"LANDMARK_TTL"`
	SessionTTL        string `yaml:"sessionTTL" env:"SESSION_TTL"`
	DefaultDifficulty string `yaml:"defaultDifficulty" env:"DEFAULT_DIFFICULTY"`
	Seed              int64  `yaml:"seed" env:"SEED"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

// Config is read from YAML and then overridden by GEOQUIZ_* environment variables.
type Config struct {
	Server   ServerConfig   `yaml:"server" envPrefix:"SERVER_"`
	Redis    RedisConfig    `yaml:"redis" envPrefix:"REDIS_"`
	Postgres PostgresConfig `yaml:"postgres" envPrefix:"POSTGRES_"`
	Quiz     QuizConfig     `yaml:"quiz" envPrefix:"QUIZ_"`
	Log      LogConfig      `yaml:"log" envPrefix:"LOG_"`
}

// Defaults returns the configuration used when no file is present.
func Defaults() Config {
	return Config{
		Server: ServerConfig{Port: "8080"},
		Redis:  RedisConfig{TTL: "30m"},
		Quiz: QuizConfig{
			LandmarkTTL:       "10m",
			SessionTTL:        "30m",
			DefaultDifficulty: "easy",
		},
		Log: LogConfig{Level: "info", Format: "console"},
	}
}

// Load reads YAML config from path. A missing file leaves the defaults in place.
func Load(path string) (Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "GEOQUIZ_"}); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
