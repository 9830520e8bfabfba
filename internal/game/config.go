package game

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible dungeon generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64 `toml:"seed" env:"DEEPCAVERN_SEED"`

	Depth            int `toml:"depth"              env:"DEEPCAVERN_DEPTH"`      // BSP levels above the boss cavern
	Width            int `toml:"width"              env:"DEEPCAVERN_WIDTH"`      // BSP level width
	Height           int `toml:"height"             env:"DEEPCAVERN_HEIGHT"`     // BSP level height
	CavernSize       int `toml:"cavern_size"        env:"DEEPCAVERN_CAVERN_SIZE"`
	MonstersPerLevel int `toml:"monsters_per_level" env:"DEEPCAVERN_MONSTERS_PER_LEVEL"`
	ItemsPerLevel    int `toml:"items_per_level"    env:"DEEPCAVERN_ITEMS_PER_LEVEL"`

	LogLevel  string `toml:"log_level"  env:"DEEPCAVERN_LOG_LEVEL"`
	LogFormat string `toml:"log_format" env:"DEEPCAVERN_LOG_FORMAT"` // "text" or "json"
	LogFile   string `toml:"log_file"   env:"DEEPCAVERN_LOG_FILE"`

	Telemetry         bool   `toml:"telemetry"          env:"DEEPCAVERN_TELEMETRY"`
	TelemetryEndpoint string `toml:"telemetry_endpoint" env:"DEEPCAVERN_TELEMETRY_ENDPOINT"`
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() Config {
	return Config{
		Depth:            3,
		Width:            80,
		Height:           24,
		CavernSize:       60,
		MonstersPerLevel: 15,
		ItemsPerLevel:    10,
		LogLevel:         "info",
		LogFormat:        "text",
		LogFile:          "deepcavern.log",
	}
}

// LoadConfig applies, in order, the defaults, the TOML file at path (if
// path is set and the file exists) and DEEPCAVERN_* environment variables.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the game cannot be built with.
func (c Config) Validate() error {
	switch {
	case c.Depth < 0:
		return fmt.Errorf("depth must not be negative, got %d", c.Depth)
	case c.Width < 20 || c.Height < 20:
		return fmt.Errorf("levels must be at least 20x20, got %dx%d", c.Width, c.Height)
	case c.CavernSize < 20:
		return fmt.Errorf("cavern size must be at least 20, got %d", c.CavernSize)
	case c.MonstersPerLevel < 0 || c.ItemsPerLevel < 0:
		return errors.New("spawn counts must not be negative")
	}
	return nil
}
