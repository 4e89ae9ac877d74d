package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/mitchelldurbincs/cellwars/internal/game/core"
)

// Config holds all configuration for the application
type Config struct {
	Game        GameConfig        `mapstructure:"game"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	UI          UIConfig          `mapstructure:"ui"`
	Development DevelopmentConfig `mapstructure:"development"`
}

// GameConfig holds game mechanics configuration
type GameConfig struct {
	GridSize   int    `mapstructure:"grid_size"`
	Difficulty string `mapstructure:"difficulty"`
	// MaxTurns ends the game in a stalemate once exceeded; 0 disables the limit
	MaxTurns int `mapstructure:"max_turns"`
	// Seed for map generation and combat; 0 seeds from the clock
	Seed  int64       `mapstructure:"seed"`
	Costs CostsConfig `mapstructure:"costs"`
}

// CostsConfig holds the resource price of each target-bearing action
type CostsConfig struct {
	DestroyWall int `mapstructure:"destroy_wall"`
	ClearRuin   int `mapstructure:"clear_ruin"`
	FoundCity   int `mapstructure:"found_city"`
	Attack      int `mapstructure:"attack"`
}

// LoggingConfig holds log output settings. The terminal belongs to the game,
// so logs always go to a file.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// UIConfig holds terminal presentation settings
type UIConfig struct {
	ShowCoordinates bool `mapstructure:"show_coordinates"`
	ShowPower       bool `mapstructure:"show_power"`
}

// DevelopmentConfig holds development/debug settings
type DevelopmentConfig struct {
	PanicLog       string `mapstructure:"panic_log"`
	VerboseLogging bool   `mapstructure:"verbose_logging"`
}

var (
	// mu guards cfg and v; the watcher reloads from fsnotify's goroutine.
	// A published *Config is never modified, only replaced.
	mu  sync.RWMutex
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Game defaults
	v.SetDefault("game.grid_size", 10)
	v.SetDefault("game.difficulty", "standard")
	v.SetDefault("game.max_turns", 0)
	v.SetDefault("game.seed", 0)

	// Cost defaults
	v.SetDefault("game.costs.destroy_wall", 10)
	v.SetDefault("game.costs.clear_ruin", 5)
	v.SetDefault("game.costs.found_city", 20)
	v.SetDefault("game.costs.attack", 5)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "cellwars.log")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age_days", 28)
	v.SetDefault("logging.compress", false)

	// UI defaults
	v.SetDefault("ui.show_coordinates", true)
	v.SetDefault("ui.show_power", true)

	// Development defaults
	v.SetDefault("development.panic_log", "panic.log")
	v.SetDefault("development.verbose_logging", false)
}

// Init initializes the configuration
func Init(configPath string) error {
	nv := viper.New()

	// Set defaults before loading any config
	setViperDefaults(nv)

	if configPath != "" {
		nv.SetConfigFile(configPath)
	} else {
		// Default config locations
		nv.SetConfigName("config")
		nv.SetConfigType("yaml")
		nv.AddConfigPath(".")
		nv.AddConfigPath("./config")
		nv.AddConfigPath("$HOME/.config/cellwars")
	}

	// Set environment variable prefix
	nv.SetEnvPrefix("CELLWARS")
	nv.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	nv.AutomaticEnv()

	if err := nv.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; use defaults
	}

	loaded := &Config{}
	if err := nv.Unmarshal(loaded); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(loaded); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	mu.Lock()
	v, cfg = nv, loaded
	mu.Unlock()
	return nil
}

// Get returns the global config instance
func Get() *Config {
	mu.RLock()
	current := cfg
	mu.RUnlock()
	if current != nil {
		return current
	}

	// Initialize with defaults if not already initialized
	if err := Init(""); err != nil {
		panic("failed to initialize config with defaults: " + err.Error())
	}
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// Set allows runtime config updates, e.g. from command line flags
func Set(key string, value interface{}) {
	mu.Lock()
	defer mu.Unlock()
	v.Set(key, value)
	// Re-unmarshal into a fresh struct so earlier Get results stay intact
	next := &Config{}
	if err := v.Unmarshal(next); err == nil {
		cfg = next
	}
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	mu.RLock()
	defer mu.RUnlock()
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. Reloaded values that
// fail validation are dropped and reported through onChange.
func WatchConfig(onChange func(*Config, error)) {
	mu.RLock()
	watched := v
	mu.RUnlock()

	watched.OnConfigChange(func(e fsnotify.Event) {
		mu.Lock()
		next := &Config{}
		err := watched.Unmarshal(next)
		if err == nil {
			err = Validate(next)
		}
		// A later Init replaces v; stale watchers stop publishing
		if err == nil && v == watched {
			cfg = next
		}
		current := cfg
		mu.Unlock()

		if onChange != nil {
			onChange(current, err)
		}
	})
	watched.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	// Validate game mechanics
	if c.Game.GridSize < 2 {
		return fmt.Errorf("game.grid_size must be at least 2")
	}
	if c.Game.GridSize > 26 {
		return fmt.Errorf("game.grid_size must be at most 26")
	}
	if c.Game.MaxTurns < 0 {
		return fmt.Errorf("game.max_turns must be non-negative")
	}
	if _, err := core.ParseDifficulty(c.Game.Difficulty); err != nil {
		return fmt.Errorf("game.difficulty: %w", err)
	}

	costs := map[string]int{
		"game.costs.destroy_wall": c.Game.Costs.DestroyWall,
		"game.costs.clear_ruin":   c.Game.Costs.ClearRuin,
		"game.costs.found_city":   c.Game.Costs.FoundCity,
		"game.costs.attack":       c.Game.Costs.Attack,
	}
	for key, value := range costs {
		if value < 0 {
			return fmt.Errorf("%s must be non-negative", key)
		}
	}

	// Validate logging
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console")
	}
	if c.Logging.File == "" {
		return fmt.Errorf("logging.file must be set")
	}
	if c.Logging.MaxSizeMB <= 0 {
		return fmt.Errorf("logging.max_size_mb must be positive")
	}
	if c.Logging.MaxBackups < 0 || c.Logging.MaxAgeDays < 0 {
		return fmt.Errorf("logging.max_backups and logging.max_age_days must be non-negative")
	}

	return nil
}
