// Package config loads settings from config.yaml, TODO_* environment
// variables and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const appName = "todo"

// Config holds all client configuration.
type Config struct {
	Storage StorageConfig
	AI      AIConfig
	Logger  LoggerConfig
	UI      UIConfig
}

type StorageConfig struct {
	Backend       string // file, sqlite or redis
	Key           string
	Dir           string
	SQLitePath    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type AIConfig struct {
	Enabled       bool
	Model         string
	APIURL        string
	Timeout       time.Duration
	RatePerMinute int
	CacheSize     int
	CacheTTL      time.Duration
}

type LoggerConfig struct {
	Level        string
	Encoding     string
	File         string
	ColorEnabled bool
}

type UIConfig struct {
	Theme string // dark, light or mono
	Sound bool
	Tick  time.Duration
}

// Load reads configuration. When path is empty config.yaml is searched in
// ./config, . and the user config dir; a missing file is not an error.
func Load(path string) (*Config, error) {
	// .env is optional; it usually only carries GEMINI_API_KEY.
	_ = godotenv.Load()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		if dir, err := ConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix("TODO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Storage: StorageConfig{
			Backend:       strings.ToLower(v.GetString("storage.backend")),
			Key:           v.GetString("storage.key"),
			Dir:           v.GetString("storage.dir"),
			SQLitePath:    v.GetString("storage.sqlite_path"),
			RedisAddr:     v.GetString("storage.redis_addr"),
			RedisPassword: v.GetString("storage.redis_password"),
			RedisDB:       v.GetInt("storage.redis_db"),
		},
		AI: AIConfig{
			Enabled:       v.GetBool("ai.enabled"),
			Model:         v.GetString("ai.model"),
			APIURL:        v.GetString("ai.api_url"),
			Timeout:       v.GetDuration("ai.timeout"),
			RatePerMinute: v.GetInt("ai.rate_per_minute"),
			CacheSize:     v.GetInt("ai.cache_size"),
			CacheTTL:      v.GetDuration("ai.cache_ttl"),
		},
		Logger: LoggerConfig{
			Level:        v.GetString("logger.level"),
			Encoding:     v.GetString("logger.encoding"),
			File:         v.GetString("logger.file"),
			ColorEnabled: v.GetBool("logger.color_enabled"),
		},
		UI: UIConfig{
			Theme: strings.ToLower(v.GetString("ui.theme")),
			Sound: v.GetBool("ui.sound"),
			Tick:  v.GetDuration("ui.tick"),
		},
	}
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = filepath.Join(cfg.Storage.Dir, "todo.db")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	dataDir, err := DataDir()
	if err != nil {
		dataDir = "."
	}

	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.key", "tasks")
	v.SetDefault("storage.dir", dataDir)
	v.SetDefault("storage.sqlite_path", "")
	v.SetDefault("storage.redis_addr", "127.0.0.1:6379")
	v.SetDefault("storage.redis_password", "")
	v.SetDefault("storage.redis_db", 0)

	v.SetDefault("ai.enabled", true)
	v.SetDefault("ai.model", "gemini-2.5-flash")
	v.SetDefault("ai.api_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("ai.timeout", "15s")
	v.SetDefault("ai.rate_per_minute", 10)
	v.SetDefault("ai.cache_size", 64)
	v.SetDefault("ai.cache_ttl", "10m")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.file", "")
	v.SetDefault("logger.color_enabled", true)

	v.SetDefault("ui.theme", "dark")
	v.SetDefault("ui.sound", false)
	v.SetDefault("ui.tick", "1m")
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case "file", "sqlite", "redis":
	default:
		return fmt.Errorf("config: storage.backend must be file, sqlite or redis, got %q", c.Storage.Backend)
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		return errors.New("config: storage.key must not be empty")
	}
	if c.AI.Timeout <= 0 {
		return errors.New("config: ai.timeout must be greater than 0")
	}
	if c.AI.RatePerMinute < 0 {
		return errors.New("config: ai.rate_per_minute must not be negative")
	}
	if c.UI.Tick <= 0 {
		return errors.New("config: ui.tick must be greater than 0")
	}
	return nil
}

// DataDir is $XDG_DATA_HOME/todo, or ~/.local/share/todo.
func DataDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, appName), nil
}

// ConfigDir is $XDG_CONFIG_HOME/todo, or ~/.config/todo.
func ConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, appName), nil
}
