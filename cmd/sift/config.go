package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/fwojciec/sift/agent"
)

// Config holds the resolved runtime configuration. Values come from, in
// increasing precedence: built-in defaults, an optional sift.yaml config
// file, SIFT_-prefixed environment variables, and command-line flags.
type Config struct {
	APIKey        string  `mapstructure:"api_key"`
	Model         string  `mapstructure:"model"`
	Temperature   float64 `mapstructure:"temperature"`
	MaxIterations int     `mapstructure:"max_iterations"`
	DataDir       string  `mapstructure:"data_dir"`
	DefaultLog    string  `mapstructure:"default_log"`
	UploadsDir    string  `mapstructure:"uploads_dir"`
	LogLevel      string  `mapstructure:"log_level"`
	LogFormat     string  `mapstructure:"log_format"`
	LogFile       string  `mapstructure:"log_file"`
}

func loadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("api_key", "")
	v.SetDefault("model", "")
	v.SetDefault("temperature", 0.2)
	v.SetDefault("max_iterations", agent.DefaultMaxIterations)
	v.SetDefault("data_dir", "data")
	v.SetDefault("default_log", "")
	v.SetDefault("uploads_dir", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("log_file", "")

	v.SetEnvPrefix("SIFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("sift")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.DefaultLog == "" {
		cfg.DefaultLog = filepath.Join(cfg.DataDir, "application.log")
	}
	if cfg.UploadsDir == "" {
		cfg.UploadsDir = filepath.Join(cfg.DataDir, "uploads")
	}
	return cfg, nil
}
