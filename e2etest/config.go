package e2etest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/status-im/coin-browser/config"
)

// createTestConfig writes a config pointing at the mock server and returns its path
func createTestConfig(mockURL, port string, pageSize int) (string, error) {
	tempDir, err := os.MkdirTemp("", "coin-browser-test")
	if err != nil {
		return "", err
	}

	envFile := filepath.Join(tempDir, ".env")
	if err := os.WriteFile(envFile, []byte("COINRANKING_API_KEY=test-api-key\n"), 0644); err != nil {
		os.RemoveAll(tempDir)
		return "", err
	}

	configContent := fmt.Sprintf(`
coinranking:
  base_url: "%s"
  connection_timeout: 2s
  request_timeout: 5s
  rate_limit:
    rate_limit_per_minute: 6000   # no pacing in tests
    burst: 100

connectivity:
  probe_interval: 1s
  probe_timeout: 500ms
  cache_ttl: 2s

listing:
  page_size: %d

favorites:
  sqlite_path: "%s"

server:
  port: "%s"

log_level: "error"
env_file: "%s"
`, mockURL, pageSize, filepath.Join(tempDir, "favorites.db"), port, envFile)

	configPath := filepath.Join(tempDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		os.RemoveAll(tempDir)
		return "", err
	}

	return configPath, nil
}

// loadTestConfig creates and loads test configuration
func loadTestConfig(mockURL, port string, pageSize int) (*config.Config, string, error) {
	configPath, err := createTestConfig(mockURL, port, pageSize)
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.LoadConfig(configPath, nil)
	if err != nil {
		os.RemoveAll(filepath.Dir(configPath))
		return nil, "", err
	}

	return cfg, configPath, nil
}

// cleanupTestConfig removes the temporary directory with configuration
func cleanupTestConfig(configPath string) {
	os.RemoveAll(filepath.Dir(configPath))
}
