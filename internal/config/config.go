package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Auth      AuthConfig      `yaml:"auth"`
	Transport TransportConfig `yaml:"transport"`
	Ranker    RankerConfig    `yaml:"ranker"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type AuthConfig struct {
	Enabled bool `yaml:"enabled"`
	// DefaultActorID identifies requests when auth is disabled (local dev).
	DefaultActorID int64 `yaml:"default_actor_id"`
}

type TransportConfig struct {
	// Mode is "http" or "stdio" (assistant-only, no REST surface).
	Mode string `yaml:"mode"`
}

type RankerConfig struct {
	BaseURL string `yaml:"base_url"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "peerlink.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Auth: AuthConfig{
			Enabled:        true,
			DefaultActorID: 1,
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		Ranker: RankerConfig{
			BaseURL: "http://localhost:8000",
		},
	}

	if path := os.Getenv("PEERLINK_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("PEERLINK_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("PEERLINK_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PEERLINK_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("PEERLINK_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("PEERLINK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if mode := os.Getenv("PEERLINK_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if authStr := os.Getenv("PEERLINK_AUTH_ENABLED"); authStr != "" {
		enabled, err := strconv.ParseBool(authStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PEERLINK_AUTH_ENABLED: %w", err)
		}
		cfg.Auth.Enabled = enabled
	}
	if rankerURL := os.Getenv("PEERLINK_RANKER_URL"); rankerURL != "" {
		cfg.Ranker.BaseURL = rankerURL
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
