package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config is the application configuration, read from the environment
// (optionally seeded from a .env file by main).
type Config struct {
	OpenAI       OpenAIConfig
	SerperAPIKey string
	OutputDir    string
	CatalogPath  string
}

// OpenAIConfig holds the model parameters shared by the question
// sequencing and analysis capabilities.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// MissingCredentialError reports a required secret that is not set. It is
// a precondition failure, surfaced before any capability call is
// attempted and never silently defaulted.
type MissingCredentialError struct {
	Name string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("%s is not set", e.Name)
}

// Load reads the configuration from environment variables.
func Load() *Config {
	return &Config{
		OpenAI: OpenAIConfig{
			APIKey:      os.Getenv("OPENAI_API_KEY"),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			MaxTokens:   getEnvAsInt("OPENAI_MAX_TOKENS", 4000),
			Temperature: getEnvAsFloat("OPENAI_TEMPERATURE", 0.3),
		},
		SerperAPIKey: os.Getenv("SERPER_API_KEY"),
		OutputDir:    getEnv("OUTPUT_DIR", "output"),
		CatalogPath:  getEnv("CATALOG_PATH", "config/questions.yaml"),
	}
}

// Validate checks that every required credential is present.
func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return &MissingCredentialError{Name: "OPENAI_API_KEY"}
	}
	if c.SerperAPIKey == "" {
		return &MissingCredentialError{Name: "SERPER_API_KEY"}
	}
	if c.OpenAI.MaxTokens <= 0 {
		return fmt.Errorf("OPENAI_MAX_TOKENS must be positive")
	}
	if c.OpenAI.Temperature < 0 || c.OpenAI.Temperature > 2 {
		return fmt.Errorf("OPENAI_TEMPERATURE must be between 0 and 2")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
