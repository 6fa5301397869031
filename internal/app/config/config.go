package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL  string
	HTTPAddr     string
	GiteaBaseURL string
	GiteaToken   string
	SlackToken   string
	SlackChannel string
}

// Load reads configuration from the environment, after loading a .env file
// if one is present. Read once at startup; nothing reloads.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		HTTPAddr:     os.Getenv("HTTP_ADDR"),
		GiteaBaseURL: os.Getenv("GITEA_BASE_URL"),
		GiteaToken:   os.Getenv("GITEA_API_TOKEN"),
		SlackToken:   os.Getenv("SLACK_TOKEN"),
		SlackChannel: os.Getenv("SLACK_CHANNEL"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.GiteaToken == "" {
		return Config{}, fmt.Errorf("GITEA_API_TOKEN is required")
	}
	if cfg.SlackToken == "" {
		return Config{}, fmt.Errorf("SLACK_TOKEN is required")
	}
	if cfg.SlackChannel == "" {
		return Config{}, fmt.Errorf("SLACK_CHANNEL is required")
	}

	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":4242"
	}
	if cfg.GiteaBaseURL == "" {
		cfg.GiteaBaseURL = "http://localhost:3000/api/v1"
	}

	return cfg, nil
}
