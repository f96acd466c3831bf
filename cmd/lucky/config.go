package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tinytelemetry/lucky/internal/luckyapi"
	"github.com/tinytelemetry/lucky/internal/typewriter"

	"github.com/spf13/viper"
)

const (
	defaultBaseURL     = "http://127.0.0.1:8000"
	defaultWheelSettle = 100 * time.Millisecond
)

// clientConfig holds the TUI client settings.
type clientConfig struct {
	BaseURL          string        `mapstructure:"base-url"`
	RequestTimeout   time.Duration `mapstructure:"request-timeout"`
	FortuneCharDelay time.Duration `mapstructure:"fortune-char-delay"`
	NameCharDelay    time.Duration `mapstructure:"name-char-delay"`
	WheelSettleDelay time.Duration `mapstructure:"wheel-settle-delay"`
	SoundEnabled     bool          `mapstructure:"sound-enabled"`
	ShareDir         string        `mapstructure:"share-dir"`
	LogFile          string        `mapstructure:"log-file"`
}

func loadClientConfig(configPath string) (clientConfig, error) {
	var cfg clientConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("LUCKY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("base-url", defaultBaseURL)
	v.SetDefault("request-timeout", luckyapi.DefaultTimeout)
	v.SetDefault("fortune-char-delay", typewriter.FortuneDelay)
	v.SetDefault("name-char-delay", typewriter.NameDelay)
	v.SetDefault("wheel-settle-delay", defaultWheelSettle)
	v.SetDefault("sound-enabled", true)
	v.SetDefault("share-dir", filepath.Join(home, "Pictures", "lucky"))
	v.SetDefault("log-file", filepath.Join(home, ".local", "state", "lucky", "lucky.log"))

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "lucky", "config.yml"))
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

	for _, p := range []*string{&cfg.ShareDir, &cfg.LogFile} {
		if strings.HasPrefix(*p, "~/") {
			*p = filepath.Join(home, (*p)[2:])
		}
	}
	if cfg.BaseURL == "" {
		return cfg, errors.New("base-url must not be empty")
	}
	if cfg.RequestTimeout <= 0 {
		return cfg, fmt.Errorf("invalid request-timeout: %s", cfg.RequestTimeout)
	}

	return cfg, nil
}
