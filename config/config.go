package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultBaseURL is used when neither flag, config file nor environment
// provide one.
const DefaultBaseURL = "http://127.0.0.1:8000/api"

// Credential files read as a last fallback, matching the layout used by
// the hub's own tooling.
const (
	usernameFile = "username"
	tokenFile    = "api_key"
)

// Load loads the configuration from file, environment and credential files
func Load(configPath string) (*Config, error) {
	// Best-effort .env load so HUB01_* variables can live next to the
	// binary during development.
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("hub01")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".hub01"))
		}

		// Check /etc
		v.AddConfigPath("/etc/hub01/")
	}

	v.SetEnvPrefix("HUB01")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The config file is optional unless a path was given explicitly;
	// flags, environment and credential files may cover everything.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Credential file fallback from the original tooling layout.
	if cfg.Username == "" {
		cfg.Username = readCredentialFile(usernameFile)
	}
	if cfg.Token == "" {
		cfg.Token = readCredentialFile(tokenFile)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", DefaultBaseURL)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// readCredentialFile returns the trimmed contents of a credential file in
// the working directory, or empty when the file is absent or unreadable.
func readCredentialFile(name string) string {
	data, err := os.ReadFile(name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
