package cli

import (
	"os"
	"path/filepath"
)

// Config holds CLI configuration
type Config struct {
	ServerURL       string
	Token           string
	CredentialsFile string
	Output          string
	Verbose         bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:       getEnvOrDefault("CTFARENA_API_URL", "http://localhost:8000"),
		Token:           os.Getenv("CTFARENA_TOKEN"),
		CredentialsFile: getEnvOrDefault("CTFARENA_CREDENTIALS_FILE", defaultCredentialsFile()),
		Output:          "text",
		Verbose:         false,
	}
}

func defaultCredentialsFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ctfarena/credentials.json"
	}
	return filepath.Join(home, ".ctfarena", "credentials.json")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
