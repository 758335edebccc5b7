package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

// Config is the full server configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Database DatabaseConfig `mapstructure:"database"`
	Game     GameConfig     `mapstructure:"game"`
}

// ServerConfig configures the websocket listener.
type ServerConfig struct {
	Address       string        `mapstructure:"address"`
	ChoiceTimeout time.Duration `mapstructure:"choice_timeout"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DatabaseConfig configures the replay store. An empty DSN disables
// replay persistence.
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

// GameConfig carries the base rule values.
type GameConfig struct {
	BaseDrawCount      int `mapstructure:"base_draw_count"`
	BaseAttackRange    int `mapstructure:"base_attack_range"`
	AttackLimitPerTurn int `mapstructure:"attack_limit_per_turn"`
	InitialHealth      int `mapstructure:"initial_health"`
}

// Load reads configuration from the given YAML file, with LOTK_-prefixed
// environment variables overriding file values. A missing file is not an
// error; defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("LOTK")
	v.AutomaticEnv()

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.choice_timeout", 60*time.Second)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("database.dsn", "")
	v.SetDefault("game.base_draw_count", 2)
	v.SetDefault("game.base_attack_range", 1)
	v.SetDefault("game.attack_limit_per_turn", 1)
	v.SetDefault("game.initial_health", 4)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		var pathErr *fs.PathError
		if !errors.As(err, &notFound) && !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
