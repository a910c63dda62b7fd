package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	ChainID           string
	APIKey            string
	Out               string
	Format            string
	SQLitePath        string
	PGDSN             string
	Summary           string
	RPCURL            string
	MaxPages          int
	RequestsPerSecond float64
	Timeout           time.Duration
	MetricsAddr       string
	LogLevel          string
}

// Load merges .env, config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	if err := loadDotEnv(cfgFile); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetEnvPrefix("TAGGER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("chain-id", "1")
	v.SetDefault("out", "./data/tags.jsonl")
	v.SetDefault("format", "jsonl")
	v.SetDefault("summary", "./data/summary.json")
	v.SetDefault("max-pages", 0)
	v.SetDefault("rps", 0.0)
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		ChainID:           strings.TrimSpace(v.GetString("chain-id")),
		APIKey:            strings.TrimSpace(v.GetString("api-key")),
		Out:               v.GetString("out"),
		Format:            strings.ToLower(v.GetString("format")),
		SQLitePath:        v.GetString("sqlite"),
		PGDSN:             v.GetString("pg-dsn"),
		Summary:           v.GetString("summary"),
		RPCURL:            v.GetString("rpc"),
		MaxPages:          v.GetInt("max-pages"),
		RequestsPerSecond: v.GetFloat64("rps"),
		Timeout:           v.GetDuration("timeout"),
		MetricsAddr:       v.GetString("metrics-addr"),
		LogLevel:          v.GetString("log-level"),
	}

	return cfg, nil
}

// Validate checks the values a fetch cannot run without.
func (c Config) Validate() error {
	if c.ChainID == "" {
		return fmt.Errorf("chain id is required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("api key is required")
	}
	if c.MaxPages < 0 {
		return fmt.Errorf("max pages must be >= 0")
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("rps must be >= 0")
	}
	return nil
}

// loadDotEnv loads .env files from the working directory and the config
// file's directory. Variables already set in the environment win.
func loadDotEnv(cfgFile string) error {
	paths := []string{".env"}
	if cfgFile != "" {
		if p := filepath.Join(filepath.Dir(cfgFile), ".env"); p != ".env" {
			paths = append(paths, p)
		}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}
