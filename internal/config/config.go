// Package config provides configuration management for Filmvault.
// Configuration can be loaded from YAML files and environment variables.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// StorageConfig holds the locations of the record files. The embedding
// application supplies fixed paths; nothing here is negotiated at runtime.
type StorageConfig struct {
	// DataDir is the root directory that holds the record files and the
	// poster directory.
	DataDir string `mapstructure:"data_dir"`

	// UsersFile is the user record file name, relative to DataDir.
	UsersFile string `mapstructure:"users_file"`

	// MoviesFile is the movie catalog file name, relative to DataDir.
	MoviesFile string `mapstructure:"movies_file"`

	// TicketsFile is the booking ledger file name, relative to DataDir.
	TicketsFile string `mapstructure:"tickets_file"`

	// PostersDir is the poster image directory name, relative to DataDir.
	PostersDir string `mapstructure:"posters_dir"`
}

// UsersPath returns the full path of the user record file.
func (c StorageConfig) UsersPath() string {
	return filepath.Join(c.DataDir, c.UsersFile)
}

// MoviesPath returns the full path of the movie catalog file.
func (c StorageConfig) MoviesPath() string {
	return filepath.Join(c.DataDir, c.MoviesFile)
}

// TicketsPath returns the full path of the booking ledger file.
func (c StorageConfig) TicketsPath() string {
	return filepath.Join(c.DataDir, c.TicketsFile)
}

// PostersPath returns the full path of the poster directory.
func (c StorageConfig) PostersPath() string {
	return filepath.Join(c.DataDir, c.PostersDir)
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	TimeFormat string `mapstructure:"time_format"`
}

// Load reads configuration from the specified file and environment variables.
// Environment variables take precedence over file values.
// Environment variables are prefixed with FILMVAULT_ and use _ as separator.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Environment variable configuration
	v.SetEnvPrefix("FILMVAULT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file configuration
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/filmvault")
	}

	// Read config file (optional - environment variables can be used instead)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is acceptable - use defaults and env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Storage defaults
	v.SetDefault("storage.data_dir", "./data")
	v.SetDefault("storage.users_file", "users.txt")
	v.SetDefault("storage.movies_file", "movies.txt")
	v.SetDefault("storage.tickets_file", "ticket.txt")
	v.SetDefault("storage.posters_dir", "posters")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")
	v.SetDefault("logging.time_format", time.RFC3339)
}

// Validate checks the configuration for required values and valid ranges.
func (c *Config) Validate() error {
	if c.Storage.DataDir == "" {
		return fmt.Errorf("storage.data_dir is required")
	}
	if c.Storage.UsersFile == "" {
		return fmt.Errorf("storage.users_file is required")
	}
	if c.Storage.MoviesFile == "" {
		return fmt.Errorf("storage.movies_file is required")
	}
	if c.Storage.TicketsFile == "" {
		return fmt.Errorf("storage.tickets_file is required")
	}
	if c.Storage.PostersDir == "" {
		return fmt.Errorf("storage.posters_dir is required")
	}

	validLevels := map[string]bool{
		"trace": true, "debug": true, "info": true,
		"warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("logging.level must be one of: trace, debug, info, warn, error, fatal, panic")
	}

	return nil
}

// MustLoad loads configuration or panics on error.
// Useful for main function initialization.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}
