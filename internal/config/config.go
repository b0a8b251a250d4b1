package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	LLM      LLMConfig      `yaml:"llm"`
	Auth     AuthConfig     `yaml:"auth"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port        int `yaml:"port"`
	MetricsPort int `yaml:"metrics_port"`
}

// DatabaseConfig selects the relational store. Driver is "sqlite3" for local
// development and tests, "postgres" in production.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// LLMConfig configures the completion provider.
type LLMConfig struct {
	Provider        string `yaml:"provider"`
	Model           string `yaml:"model"`
	APIKey          string `yaml:"api_key"`
	BaseURL         string `yaml:"base_url"`
	AzureEndpoint   string `yaml:"azure_endpoint"`
	AzureDeployment string `yaml:"azure_deployment"`
}

// AuthConfig holds the JWT signing settings.
type AuthConfig struct {
	JWTSecret    string `yaml:"jwt_secret"`
	TokenTTLDays int    `yaml:"token_ttl_days"`
}

// Load reads the YAML config file, then layers environment variables on top.
// A .env file is honored when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:        8080,
			MetricsPort: 9090,
		},
		Database: DatabaseConfig{
			Driver: "sqlite3",
			DSN:    "shopfront.db",
		},
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o",
		},
		Auth: AuthConfig{
			TokenTTLDays: 30,
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnv(cfg)

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth configuration missing: set JWT_SECRET or auth.jwt_secret")
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.LLM.Provider = getEnv("LLM_PROVIDER", cfg.LLM.Provider)
	cfg.LLM.Model = getEnv("LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.BaseURL = getEnv("OPENAI_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.AzureEndpoint = getEnv("AZURE_OPENAI_ENDPOINT", cfg.LLM.AzureEndpoint)
	cfg.LLM.AzureDeployment = getEnv("AZURE_OPENAI_DEPLOYMENT_NAME", cfg.LLM.AzureDeployment)

	switch cfg.LLM.Provider {
	case "azure":
		cfg.LLM.APIKey = getEnv("AZURE_OPENAI_API_KEY", cfg.LLM.APIKey)
	default:
		cfg.LLM.APIKey = getEnv("OPENAI_API_KEY", cfg.LLM.APIKey)
	}

	cfg.Database.Driver = getEnv("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.DSN = getEnv("DATABASE_URL", cfg.Database.DSN)
	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)

	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Server.Port = port
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
