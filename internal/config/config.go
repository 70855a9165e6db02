package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/aaronzipp/who-is-the-wolf/internal/game"
)

// Config holds the server settings
type Config struct {
	Mode         string        `mapstructure:"mode"`
	Port         int           `mapstructure:"port"`
	LogLevel     string        `mapstructure:"log_level"`
	Secret       string        `mapstructure:"secret"`
	PublicURL    string        `mapstructure:"public_url"`
	AllowOrigins []string      `mapstructure:"allow_origins"`
	ReadLimit    int64         `mapstructure:"read_limit"`
	PingPeriod   time.Duration `mapstructure:"ping_period"`

	Store StoreConfig `mapstructure:"store"`
	Game  GameConfig  `mapstructure:"game"`
}

// StoreConfig selects the persistence backend
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// GameConfig holds session defaults and timers
type GameConfig struct {
	Capacity      int           `mapstructure:"capacity"`
	MinorityCount int           `mapstructure:"minority_count"`
	VotingWindow  time.Duration `mapstructure:"voting_window"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Load reads config/config.<CONFIG_ENV>.yaml, then lets WOLF_* variables
// (and a .env file) override it. WOLF_STORE_DSN falls back to DATABASE_URL.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Debug().Str("module", "config").Msg("loaded .env")
	}

	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)
	v.SetConfigFile(fileName)

	v.SetEnvPrefix("WOLF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("secret", "")
	v.SetDefault("public_url", "http://localhost:8080")
	v.SetDefault("allow_origins", []string{"http://localhost:5173"})
	v.SetDefault("read_limit", 4096)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("store.driver", DriverMemory)
	v.SetDefault("store.dsn", "")
	v.SetDefault("game.capacity", 6)
	v.SetDefault("game.minority_count", 1)
	v.SetDefault("game.voting_window", "24h")
	v.SetDefault("game.sweep_interval", "30s")

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Store.DSN == "" {
		cfg.Store.DSN = os.Getenv("DATABASE_URL")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	log.Info().Str("module", "config").Str("mode", cfg.Mode).Int("port", cfg.Port).
		Str("store", cfg.Store.Driver).Msg("configuration ready")
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	switch c.Store.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Store.DSN == "" {
			errs = append(errs, errors.New("store.dsn (or DATABASE_URL) is required for the postgres store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store.driver %q", c.Store.Driver))
	}
	if c.Game.Capacity < game.MinCapacity || c.Game.Capacity > game.MaxCapacity || c.Game.MinorityCount < 1 || c.Game.MinorityCount >= c.Game.Capacity {
		errs = append(errs, fmt.Errorf("invalid game defaults: capacity=%d minority_count=%d", c.Game.Capacity, c.Game.MinorityCount))
	}
	if c.Game.VotingWindow <= 0 || c.Game.SweepInterval <= 0 {
		errs = append(errs, errors.New("game.voting_window and game.sweep_interval must be positive"))
	}
	if c.Mode == "release" && c.Secret == "" {
		errs = append(errs, errors.New("secret is required in release mode"))
	}
	return errors.Join(errs...)
}
