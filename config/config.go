// Package config loads the TOML runtime configuration and builds the logger.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Window  WindowConfig            `toml:"window"`
	Timing  TimingConfig            `toml:"timing"`
	Logging LoggingConfig           `toml:"logging"`
	Audio   AudioConfig             `toml:"audio"`
	Network NetworkConfig           `toml:"network"`
	Stage   StageConfig             `toml:"stage"`
	UI      UIConfig                `toml:"ui"`
	Sprites map[string]SpriteConfig `toml:"sprites"`
	Fonts   map[string]FontConfig   `toml:"fonts"`
}

type WindowConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type TimingConfig struct {
	TargetFPS int `toml:"target_fps"`
}

// Period returns the target frame period
func (t TimingConfig) Period() time.Duration {
	return time.Second / time.Duration(t.TargetFPS)
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // Empty logs to stderr
}

type AudioConfig struct {
	Enabled    bool    `toml:"enabled"`
	SampleRate int     `toml:"sample_rate"`
	Volume     float64 `toml:"volume"`
}

type NetworkConfig struct {
	Listen    string `toml:"listen"` // Hub address, empty disables
	Peer      string `toml:"peer"`   // Hub URL to dial, empty disables
	SendEvery int    `toml:"send_every"`
	MaxPeers  int    `toml:"max_peers"`
}

type StageConfig struct {
	Path        string `toml:"path"`
	LoadOnStart bool   `toml:"load_on_start"`
}

type UIConfig struct {
	Document string `toml:"document"`
}

type SpriteConfig struct {
	Glyph string `toml:"glyph"`
	FG    string `toml:"fg"`
	BG    string `toml:"bg"`
}

type FontConfig struct {
	FG   string `toml:"fg"`
	BG   string `toml:"bg"`
	Bold bool   `toml:"bold"`
}

// Load reads path over the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes TOML over the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Window: WindowConfig{Width: 800, Height: 600},
		Timing: TimingConfig{TargetFPS: 60},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			Volume:     0.5,
		},
		Network: NetworkConfig{
			SendEvery: 3,
			MaxPeers:  16,
		},
		Stage:   StageConfig{Path: "stage.yaml"},
		Sprites: map[string]SpriteConfig{},
		Fonts:   map[string]FontConfig{},
	}
}

func (c *Config) Validate() error {
	if c.Timing.TargetFPS <= 0 {
		return fmt.Errorf("%w: timing.target_fps must be positive, got %d", ErrInvalid, c.Timing.TargetFPS)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size must be positive, got %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio.volume must be in [0, 1], got %g", ErrInvalid, c.Audio.Volume)
	}
	if c.Audio.Enabled && c.Audio.SampleRate <= 0 {
		return fmt.Errorf("%w: audio.sample_rate must be positive", ErrInvalid)
	}
	if c.Network.Listen != "" && c.Network.Peer != "" {
		return fmt.Errorf("%w: network.listen and network.peer are exclusive", ErrInvalid)
	}
	for key, s := range c.Sprites {
		if n := len([]rune(s.Glyph)); n > 1 {
			return fmt.Errorf("%w: sprites.%s.glyph must be one character", ErrInvalid, key)
		}
	}
	return nil
}
