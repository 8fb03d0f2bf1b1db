// Package config loads the game settings from an optional YAML file, the
// environment and the command line, in that order of precedence.
package config

import (
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/diegok/blobvolley/internal/protocol"
)

// Default values for configuration
const (
	DefaultPoints      = 15
	DefaultTickRate    = 60
	DefaultBotStrength = 5
	MaxTickRate        = 240
	MaxBotStrength     = 10
)

// Config holds the application configuration
type Config struct {
	PointsToWin int                 `yaml:"points-to-win" env:"BLOBVOLLEY_POINTS" env-default:"15"`
	TickRate    int                 `yaml:"tick-rate" env:"BLOBVOLLEY_TICK_RATE" env-default:"60"`
	Left        protocol.PlayerKind `yaml:"left" env:"BLOBVOLLEY_LEFT" env-default:"human"`
	Right       protocol.PlayerKind `yaml:"right" env:"BLOBVOLLEY_RIGHT" env-default:"computer"`
	BotStrength int                 `yaml:"bot-strength" env:"BLOBVOLLEY_BOT_STRENGTH" env-default:"5"`
	Mute        bool                `yaml:"mute" env:"BLOBVOLLEY_MUTE" env-default:"false"`
	LogLevel    string              `yaml:"log-level" env:"BLOBVOLLEY_LOG_LEVEL" env-default:"info"`
	LogFile     string              `yaml:"log-file" env:"BLOBVOLLEY_LOG_FILE"`
}

// Load reads the config file at path, if any, then the environment
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, eris.Wrapf(err, "unable to load config file %s", path)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, eris.Wrap(err, "unable to read config from environment")
	}
	return cfg, nil
}

// RegisterFlags adds the command line flags that can override the loaded
// config
func RegisterFlags(fs *pflag.FlagSet) {
	left, right := protocol.Human, protocol.Computer

	fs.Int("points", DefaultPoints, "points to win (>=1)")
	fs.Int("tick-rate", DefaultTickRate, "simulation ticks per second (1-240)")
	fs.Var(&left, "left", "left player: human or computer")
	fs.Var(&right, "right", "right player: human or computer")
	fs.Int("strength", DefaultBotStrength, "computer player strength (0-10)")
	fs.Bool("mute", false, "disable sound")
	fs.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	fs.String("log-file", "", "write logs to this file")
}

// ApplyFlags copies every flag set explicitly on the command line into c
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "points":
			c.PointsToWin, err = fs.GetInt(f.Name)
		case "tick-rate":
			c.TickRate, err = fs.GetInt(f.Name)
		case "left":
			err = c.Left.Set(f.Value.String())
		case "right":
			err = c.Right.Set(f.Value.String())
		case "strength":
			c.BotStrength, err = fs.GetInt(f.Name)
		case "mute":
			c.Mute, err = fs.GetBool(f.Name)
		case "log-level":
			c.LogLevel, err = fs.GetString(f.Name)
		case "log-file":
			c.LogFile, err = fs.GetString(f.Name)
		}
	})
	if err != nil {
		return eris.Wrap(err, "invalid flag")
	}
	return nil
}

// Validate checks every setting is in range
func (c *Config) Validate() error {
	if c.PointsToWin < 1 {
		return eris.Errorf("points must be at least 1, got %d", c.PointsToWin)
	}
	if c.TickRate < 1 || c.TickRate > MaxTickRate {
		return eris.Errorf("tick rate must be between 1 and %d, got %d", MaxTickRate, c.TickRate)
	}
	if c.BotStrength < 0 || c.BotStrength > MaxBotStrength {
		return eris.Errorf("strength must be between 0 and %d, got %d", MaxBotStrength, c.BotStrength)
	}
	if !c.Left.Valid() || !c.Right.Valid() {
		return eris.Errorf("players must be human or computer, got %v and %v", c.Left, c.Right)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level
func (c *Config) Level() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, eris.Wrapf(err, "invalid log level %q", c.LogLevel)
	}
	return lvl, nil
}
