package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	EngineSQLite = "sqlite"
	EngineMemory = "memory"
)

type Config struct {
	DataDir     string        `mapstructure:"data_dir"`
	DBPath      string        `mapstructure:"db_path"`
	StringsFile string        `mapstructure:"strings_file"`
	JournalDir  string        `mapstructure:"journal_dir"`
	Storage     StorageConfig `mapstructure:"storage"`
	Logging     LoggingConfig `mapstructure:"logging"`
}

type StorageConfig struct {
	Engine string `mapstructure:"engine"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// File receives the log stream while the TUI owns the terminal.
	File string `mapstructure:"file"`
}

// Load reads configuration from configPath (or <dataDir>/config.yaml when
// configPath is empty) and SLEEPTRACKER_* environment variables. A missing
// config file is not an error. Paths left empty are placed under the data dir.
func Load(configPath, dataDir string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	if dataDir != "" {
		v.Set("data_dir", dataDir)
	}

	v.SetEnvPrefix("SLEEPTRACKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := configPath != ""
	if !explicit {
		configPath = filepath.Join(v.GetString("data_dir"), "config.yaml")
	}
	if _, err := os.Stat(configPath); err == nil {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else if explicit || !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("stat config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.normalize()
	cfg.fillPaths()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("db_path", "")
	v.SetDefault("strings_file", "")
	v.SetDefault("journal_dir", "")

	v.SetDefault("storage.engine", EngineSQLite)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.file", "")
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "sleeptracker")
	}
	return ".sleeptracker"
}

// normalize lower-cases the enumerated settings so env values such as
// "SQLite" or "INFO" are accepted.
func (c *Config) normalize() {
	c.Storage.Engine = strings.ToLower(strings.TrimSpace(c.Storage.Engine))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
}

func (c *Config) fillPaths() {
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, "sleep.db")
	}
	if c.JournalDir == "" {
		c.JournalDir = filepath.Join(c.DataDir, "journal")
	}
	if c.Logging.File == "" {
		c.Logging.File = filepath.Join(c.DataDir, "sleeptracker.log")
	}
}

func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	switch c.Storage.Engine {
	case EngineSQLite, EngineMemory:
	default:
		return fmt.Errorf("storage.engine must be %q or %q, got %q", EngineSQLite, EngineMemory, c.Storage.Engine)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}
