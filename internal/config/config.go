package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/julianstephens/classlog/internal/constants"
)

// Config is the resolved application configuration.
// Precedence: environment > config file > defaults. Command-line flags are
// applied on top by the caller.
type Config struct {
	Database             string `mapstructure:"database"`
	UserID               string `mapstructure:"user_id"`
	Debug                bool   `mapstructure:"debug"`
	LogLevel             string `mapstructure:"log_level"`
	NotificationsEnabled bool   `mapstructure:"notifications_enabled"`
	Timezone             string `mapstructure:"timezone"`

	dir string
	v   *viper.Viper
}

// Dir returns the directory holding the config file and logs.
func (c *Config) Dir() string {
	return c.dir
}

// FilePath returns the path of the YAML config file, whether or not it exists.
func (c *Config) FilePath() string {
	return filepath.Join(c.dir, constants.ConfigFileName+"."+constants.ConfigFileType)
}

// Load reads configuration from dir. An empty dir means the default config
// directory. A .env file in the working directory or in dir is loaded first
// when present; variables already set in the environment win.
func Load(dir string) (*Config, error) {
	if dir == "" {
		dir = constants.DefaultConfigDir
	}
	dir, err := ExpandPath(dir)
	if err != nil {
		return nil, err
	}

	if err := loadDotEnv(".env", filepath.Join(dir, ".env")); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("database", constants.DefaultConfigPath)
	v.SetDefault("user_id", "")
	v.SetDefault("debug", false)
	v.SetDefault("log_level", "")
	v.SetDefault("notifications_enabled", true)
	v.SetDefault("timezone", "")

	v.SetConfigName(constants.ConfigFileName)
	v.SetConfigType(constants.ConfigFileType)
	v.AddConfigPath(dir)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{dir: dir, v: v}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// SetUserID records the user id and persists it to the config file.
func (c *Config) SetUserID(id string) error {
	c.UserID = id
	c.v.Set("user_id", id)
	return c.save()
}

// Set persists an arbitrary key. Unknown keys are rejected.
func (c *Config) Set(key, value string) error {
	switch key {
	case "database":
		c.Database = value
	case "user_id":
		c.UserID = value
	case "log_level":
		c.LogLevel = value
	case "timezone":
		c.Timezone = value
	case "debug", "notifications_enabled":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
		if key == "debug" {
			c.Debug = b
		} else {
			c.NotificationsEnabled = b
		}
		c.v.Set(key, b)
		return c.save()
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	c.v.Set(key, value)
	return c.save()
}

// Keys lists the settable configuration keys.
func Keys() []string {
	return []string{"database", "user_id", "debug", "log_level", "notifications_enabled", "timezone"}
}

func (c *Config) save() error {
	if err := os.MkdirAll(c.dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := c.v.WriteConfigAs(c.FilePath()); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}

// loadDotEnv loads every existing file in paths, skipping missing ones.
func loadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected true or false, got %q", s)
}
