package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration options for the server. It is constructed
// once at process start and passed into the request-handling layer; nothing
// reads configuration from globals after that.
type Config struct {
	// Server configuration
	Port     int  `mapstructure:"port"`
	UseHTTPS bool `mapstructure:"use_https"`

	// TLS material, only consulted when UseHTTPS is set
	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file"`

	// Cross-origin policy
	AllowedOrigins []string `mapstructure:"allowed_origins"`

	// Logging configuration
	Debug   bool   `mapstructure:"debug"`    // Enable debug logging
	LogFile string `mapstructure:"log_file"` // Path to log file; empty means stderr
}

const (
	// Default configuration values
	DefaultPort      = 3000
	DefaultConfigDir = ".repopatch"
)

// DefaultAllowedOrigins mirror the origins the bundled web UI is served from
// during local development.
var DefaultAllowedOrigins = []string{
	"http://localhost:8080",
	"http://127.0.0.1:8080",
}

// Load loads configuration from an optional .env file, the config file, and
// environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	// Hoist a local .env into the process environment first, so both viper
	// and the plain lookups below see it.
	_ = godotenv.Load()

	config := &Config{
		Port:           DefaultPort,
		AllowedOrigins: DefaultAllowedOrigins,
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getConfigDir())

	v.SetEnvPrefix("REPOPATCH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is not an error
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Unprefixed variables are honored too, so a plain PORT=8090 works.
	if port := os.Getenv("PORT"); port != "" {
		fmt.Sscanf(port, "%d", &config.Port)
	}
	if use := os.Getenv("USE_HTTPS"); use != "" {
		config.UseHTTPS = use == "true"
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.AllowedOrigins = SplitOrigins(origins)
	}

	return config, nil
}

// SplitOrigins parses a comma-separated origin list, dropping empty entries.
func SplitOrigins(s string) []string {
	var origins []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			origins = append(origins, part)
		}
	}
	return origins
}

// getConfigDir returns the path to the config directory
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, DefaultConfigDir)
}
