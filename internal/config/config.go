// Package config resolves runtime settings: built-in defaults, then a .env
// file, then process environment. Command-line flags override on top in cmd.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Host        string
	Model       string
	Temperature float64
	TopP        float64
	Timeout     time.Duration
}

func Default() Config {
	return Config{
		Host:        "http://localhost:11434",
		Model:       "mistral-small3.2:latest",
		Temperature: 0.7,
		TopP:        0.9,
		Timeout:     45 * time.Second,
	}
}

// Load layers the .env file and environment over the defaults. A missing
// .env file is not an error.
func Load() Config {
	_ = godotenv.Load()

	cfg := Default()
	if v := os.Getenv("OLLAMA_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("STANCE_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("STANCE_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Temperature = f
		}
	}
	if v := os.Getenv("STANCE_TOP_P"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.TopP = f
		}
	}
	return cfg
}
