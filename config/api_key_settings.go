package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// APIKeySettings maps the environment variables holding credentials
type APIKeySettings struct {
	APIKey string `envconfig:"COINRANKING_API_KEY"`
}

// LoadAPIKey loads the CoinRanking API key from the environment.
// envFile is loaded first when it exists; variables already set in the
// process environment win over the file.
func LoadAPIKey(envFile string) (string, error) {
	if envFile == "" {
		envFile = ".env"
	}

	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return "", fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	var settings APIKeySettings
	if err := envconfig.Process("", &settings); err != nil {
		return "", err
	}

	return settings.APIKey, nil
}
