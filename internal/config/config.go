package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

type Config struct {
	App    AppConfig    `toml:"app"`
	Auth   AuthConfig   `toml:"auth"`
	SQLite SQLiteConfig `toml:"sqlite"`
	Upload UploadConfig `toml:"upload"`
	CORS   CORSConfig   `toml:"cors"`
}

type AppConfig struct {
	Name          string `toml:"name"`
	Env           string `toml:"env"`
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	PublicBaseURL string `toml:"public_base_url"`
	GinMode       string `toml:"gin_mode"`
}

type AuthConfig struct {
	JWTSecret      string `toml:"jwt_secret"`
	TokenTTLMinute int    `toml:"token_ttl_minute"`
}

type SQLiteConfig struct {
	Path string `toml:"path"`
}

type UploadConfig struct {
	Dir string `toml:"dir"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

func Load() (*Config, error) {
	cfg := defaultConfig()

	configPath := getEnv("CONFIG_FILE", "configs/config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("decode config file failed: %w", err)
		}
	}

	overrideByEnv(cfg)
	return cfg, nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:          "gopherblog",
			Env:           "dev",
			Host:          "0.0.0.0",
			Port:          8000,
			PublicBaseURL: "http://localhost:8000",
			GinMode:       "debug",
		},
		Auth: AuthConfig{
			JWTSecret:      "change-me-in-production",
			TokenTTLMinute: 60,
		},
		SQLite: SQLiteConfig{
			Path: "blog.db",
		},
		Upload: UploadConfig{
			Dir: "uploads",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}
}

func overrideByEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnvAsInt("APP_PORT", cfg.App.Port)
	cfg.App.PublicBaseURL = getEnv("APP_PUBLIC_BASE_URL", cfg.App.PublicBaseURL)
	cfg.App.GinMode = getEnv("GIN_MODE", cfg.App.GinMode)

	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.TokenTTLMinute = getEnvAsInt("TOKEN_TTL_MINUTE", cfg.Auth.TokenTTLMinute)

	cfg.SQLite.Path = getEnv("SQLITE_PATH", cfg.SQLite.Path)
	cfg.Upload.Dir = getEnv("UPLOAD_DIR", cfg.Upload.Dir)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
