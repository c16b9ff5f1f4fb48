package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const configFileName = "causeswipe_config"

// EmailConfig enables best-effort email delivery of notifications via Gmail
type EmailConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Sender          string `yaml:"sender,omitempty" validate:"omitempty,email"`
	CredentialsFile string `yaml:"credentialsFile,omitempty"`
	TokenFile       string `yaml:"tokenFile,omitempty"`
}

// Config represents the application configuration
type Config struct {
	ListenAddr  string `yaml:"listenAddr" validate:"required"`
	DatabaseURL string `yaml:"databaseURL" validate:"required"`

	// NotificationPageSize caps getNotifications when the caller passes no
	// limit; defaults to 50
	NotificationPageSize int `yaml:"notificationPageSize,omitempty" validate:"omitempty,min=1"`
	// LeaderboardSize is the default leaderboard length; defaults to 10
	LeaderboardSize int `yaml:"leaderboardSize,omitempty" validate:"omitempty,min=1"`

	Email *EmailConfig `yaml:"email,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from causeswipe_config.yaml,
// looking in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the environment-specific configuration file
// (causeswipe_config_<env>.yaml), falling back to the base file name when
// env is empty
func LoadWithEnv(env string) (*Config, error) {
	name := configFileName
	if env != "" {
		name = fmt.Sprintf("%s_%s", configFileName, env)
	}

	configPath, err := findConfigFile(name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Email != nil && cfg.Email.Enabled {
		if cfg.Email.Sender == "" || cfg.Email.CredentialsFile == "" || cfg.Email.TokenFile == "" {
			return fmt.Errorf("config validation failed: email requires sender, credentialsFile and tokenFile")
		}
	}

	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.NotificationPageSize == 0 {
		cfg.NotificationPageSize = 50
	}
	if cfg.LeaderboardSize == 0 {
		cfg.LeaderboardSize = 10
	}
}

// findConfigFile searches for the named file in the current directory and
// home directory
func findConfigFile(fileName string) (string, error) {
	if _, err := os.Stat(fileName); err == nil {
		return fileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, fileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", fileName)
}
