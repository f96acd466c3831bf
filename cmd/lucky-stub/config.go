package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultAddr             = "127.0.0.1:8000"
	defaultStreamChunkSize  = 7
	defaultStreamChunkDelay = 40 * time.Millisecond
)

// stubConfig holds the fixture server settings.
type stubConfig struct {
	Addr             string        `mapstructure:"addr"`
	Fixtures         string        `mapstructure:"fixtures"`
	StreamChunkSize  int           `mapstructure:"stream-chunk-size"`
	StreamChunkDelay time.Duration `mapstructure:"stream-chunk-delay"`
}

func loadStubConfig(configPath string) (stubConfig, error) {
	var cfg stubConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("LUCKY_STUB")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("addr", defaultAddr)
	v.SetDefault("fixtures", "")
	v.SetDefault("stream-chunk-size", defaultStreamChunkSize)
	v.SetDefault("stream-chunk-delay", defaultStreamChunkDelay)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "lucky", "stub.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	if strings.HasPrefix(cfg.Fixtures, "~/") {
		cfg.Fixtures = filepath.Join(home, cfg.Fixtures[2:])
	}
	if cfg.StreamChunkSize <= 0 {
		return cfg, fmt.Errorf("invalid stream-chunk-size: %d", cfg.StreamChunkSize)
	}

	return cfg, nil
}
