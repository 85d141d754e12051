package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Storage     StorageConfig     `mapstructure:"storage"`
	Attachments AttachmentsConfig `mapstructure:"attachments"`
	Logger      LoggerConfig      `mapstructure:"logger"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// StorageConfig selects and parameterizes the persistence backend
type StorageConfig struct {
	Backend    string `mapstructure:"backend"` // "file" or "sqlite"
	DataDir    string `mapstructure:"data_dir"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// AttachmentsConfig holds the note-attachment directory
type AttachmentsConfig struct {
	Dir string `mapstructure:"dir"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	Filename string `mapstructure:"filename"`
}

// Load loads configuration from various sources
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors)
	_ = godotenv.Load()

	// Configure viper
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	setDefaults()

	// Bind environment variables
	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDerived(&cfg)

	// Validate configuration
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	// App defaults
	viper.SetDefault("app.name", "StudentPlanner")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.environment", "development")

	// Storage defaults
	viper.SetDefault("storage.backend", "file")
	viper.SetDefault("storage.data_dir", "data")
	viper.SetDefault("storage.sqlite_path", "")

	// Attachments defaults
	viper.SetDefault("attachments.dir", "")

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "json")
	viper.SetDefault("logger.output", "stdout")
}

func bindEnvVars() {
	// App
	viper.BindEnv("app.name", "APP_NAME")
	viper.BindEnv("app.version", "APP_VERSION")
	viper.BindEnv("app.environment", "APP_ENVIRONMENT")

	// Storage
	viper.BindEnv("storage.backend", "STORAGE_BACKEND")
	viper.BindEnv("storage.data_dir", "STORAGE_DATA_DIR")
	viper.BindEnv("storage.sqlite_path", "STORAGE_SQLITE_PATH")

	// Attachments
	viper.BindEnv("attachments.dir", "ATTACHMENTS_DIR")

	// Logger
	viper.BindEnv("logger.level", "LOG_LEVEL")
	viper.BindEnv("logger.format", "LOG_FORMAT")
	viper.BindEnv("logger.output", "LOG_OUTPUT")
	viper.BindEnv("logger.filename", "LOG_FILENAME")
}

// applyDerived fills paths that default relative to the data directory.
func applyDerived(cfg *Config) {
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = filepath.Join(cfg.Storage.DataDir, "planner.db")
	}
	if cfg.Attachments.Dir == "" {
		cfg.Attachments.Dir = filepath.Join(cfg.Storage.DataDir, "notes")
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Storage.DataDir == "" {
		return fmt.Errorf("storage data directory is required")
	}

	switch cfg.Storage.Backend {
	case "file", "sqlite":
	default:
		return fmt.Errorf("unknown storage backend %q (expected file or sqlite)", cfg.Storage.Backend)
	}

	return nil
}

// IsDevelopment returns true if the environment is development
func (cfg *AppConfig) IsDevelopment() bool {
	return cfg.Environment == "development"
}
