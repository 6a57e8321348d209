package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"dsn"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Gemini struct {
		Model string `yaml:"model"`
	} `yaml:"gemini"`
	Quiz struct {
		Mode               string `yaml:"mode"`
		Questions          int    `yaml:"questions"`
		SecondsPerQuestion int    `yaml:"seconds_per_question"`
	} `yaml:"quiz"`
	Auth struct {
		AdminEmails []string `yaml:"admin_emails"`
		TokenTTL    string   `yaml:"token_ttl"`
	} `yaml:"auth"`
}

// Load reads YAML config from path and applies environment overrides.
// A missing file is not an error; defaults plus environment are enough
// to run in demo mode.
func Load(path string) (Config, error) {
	cfg := Config{}

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = n
		}
	}
	if v := os.Getenv("QUIZ_MODE"); v != "" {
		cfg.Quiz.Mode = v
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-2.5-flash"
	}
	if cfg.Quiz.Mode == "" {
		cfg.Quiz.Mode = "closed"
	}
	if cfg.Quiz.Questions <= 0 {
		cfg.Quiz.Questions = 5
	}
	if cfg.Quiz.SecondsPerQuestion <= 0 {
		cfg.Quiz.SecondsPerQuestion = 60
	}
	if cfg.Auth.TokenTTL == "" {
		cfg.Auth.TokenTTL = "24h"
	}

	return cfg, nil
}

// TokenTTLDuration parses the configured token lifetime, falling back to 24h.
func (c Config) TokenTTLDuration() time.Duration {
	if d, err := time.ParseDuration(c.Auth.TokenTTL); err == nil {
		return d
	}
	return 24 * time.Hour
}
