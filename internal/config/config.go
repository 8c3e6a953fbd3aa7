package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const (
	DefaultAddr           = "localhost:8080"
	DefaultDBPath         = "stego.db"
	DefaultMaxCarrierSize = 10 << 20 // 10 MiB
	DefaultMaxMessageSize = 1 << 20  // 1 MiB
	DefaultMaxWidth       = 1920
	DefaultMaxHeight      = 1080
	DefaultGalleryLimit   = 50
	DefaultLogLevel       = "info"

	EnvPrefix = "STEGO"
)

type Config struct {
	Addr   string `mapstructure:"addr"`
	DBPath string `mapstructure:"db"`
	// Token gates the upload endpoint. Empty disables authentication.
	Token string `mapstructure:"token"`

	MaxCarrierSize int64 `mapstructure:"max-carrier-size"`
	MaxMessageSize int64 `mapstructure:"max-message-size"`
	MaxWidth       int   `mapstructure:"max-width"`
	MaxHeight      int   `mapstructure:"max-height"`
	GalleryLimit   int   `mapstructure:"gallery-limit"`

	LogLevel string `mapstructure:"log-level"`
}

func Default() *Config {
	return &Config{
		Addr:           DefaultAddr,
		DBPath:         DefaultDBPath,
		MaxCarrierSize: DefaultMaxCarrierSize,
		MaxMessageSize: DefaultMaxMessageSize,
		MaxWidth:       DefaultMaxWidth,
		MaxHeight:      DefaultMaxHeight,
		GalleryLimit:   DefaultGalleryLimit,
		LogLevel:       DefaultLogLevel,
	}
}

func (cfg *Config) Validate() error {
	if cfg.Addr == "" {
		return errors.New("invalid `addr`; expected: non-empty listen address")
	}
	if cfg.DBPath == "" {
		return errors.New("invalid `db`; expected: non-empty database path")
	}
	if cfg.MaxCarrierSize < 1 {
		return fmt.Errorf("invalid `max-carrier-size`; expected: >= 1, given: %d", cfg.MaxCarrierSize)
	}
	if cfg.MaxMessageSize < 1 {
		return fmt.Errorf("invalid `max-message-size`; expected: >= 1, given: %d", cfg.MaxMessageSize)
	}
	if cfg.MaxWidth < 1 || cfg.MaxHeight < 1 {
		return fmt.Errorf("invalid `max-width`/`max-height`; expected: >= 1, given: %dx%d", cfg.MaxWidth, cfg.MaxHeight)
	}
	if cfg.GalleryLimit < 1 {
		return fmt.Errorf("invalid `gallery-limit`; expected: >= 1, given: %d", cfg.GalleryLimit)
	}
	if _, err := cfg.Level(); err != nil {
		return fmt.Errorf("invalid `log-level`: %w", err)
	}
	return nil
}

func (cfg *Config) Level() (zapcore.Level, error) {
	return zapcore.ParseLevel(cfg.LogLevel)
}

// Load reads the config file (if any) and STEGO_* environment variables
// into a copy of the defaults. Values bound to flags on v take precedence.
func Load(v *viper.Viper, file string) (*Config, error) {
	cfg := Default()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for key, value := range map[string]any{
		"addr":             cfg.Addr,
		"db":               cfg.DBPath,
		"token":            cfg.Token,
		"max-carrier-size": cfg.MaxCarrierSize,
		"max-message-size": cfg.MaxMessageSize,
		"max-width":        cfg.MaxWidth,
		"max-height":       cfg.MaxHeight,
		"gallery-limit":    cfg.GalleryLimit,
		"log-level":        cfg.LogLevel,
	} {
		v.SetDefault(key, value)
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
