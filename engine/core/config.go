package core

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
)

// MaxCommandsCeiling is the largest per-frame command count whose depth
// keys stay non-negative.
const MaxCommandsCeiling = 1000

// Config for the engine run and the UI renderer.
type Config struct {
	Title      string     `toml:"title"`
	Width      int        `toml:"width"`
	Height     int        `toml:"height"`
	VSync      bool       `toml:"vsync"`
	ClearColor [4]float32 `toml:"clear_color"` // RGBA

	MaxTriangles    int     `toml:"max_triangles"`
	MaxCommands     int     `toml:"max_commands"`
	ScaleFactor     float32 `toml:"scale_factor"`
	DefaultFontSize float32 `toml:"default_font_size"`
	DefaultLineH    float32 `toml:"default_line_height"`
	LogLevel        string  `toml:"log_level"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() Config {
	return Config{
		Title:           "tessel",
		Width:           1280,
		Height:          720,
		VSync:           true,
		ClearColor:      [4]float32{0.08, 0.10, 0.12, 1},
		MaxTriangles:    10000,
		MaxCommands:     MaxCommandsCeiling,
		ScaleFactor:     1,
		DefaultFontSize: 30,
		DefaultLineH:    42,
		LogLevel:        "info",
	}
}

// DecodeConfig parses TOML on top of DefaultConfig and validates the result.
func DecodeConfig(data string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.Decode(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a TOML file. A missing file yields DefaultConfig.
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	}
	return DecodeConfig(string(b))
}

func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.MaxTriangles <= 0:
		return fmt.Errorf("%w: max_triangles must be positive, got %d", ErrInvalidConfig, c.MaxTriangles)
	case c.MaxCommands <= 0 || c.MaxCommands > MaxCommandsCeiling:
		return fmt.Errorf("%w: max_commands must be in (0, %d], got %d", ErrInvalidConfig, MaxCommandsCeiling, c.MaxCommands)
	case c.ScaleFactor <= 0:
		return fmt.Errorf("%w: scale_factor must be positive, got %g", ErrInvalidConfig, c.ScaleFactor)
	case c.DefaultFontSize <= 0:
		return fmt.Errorf("%w: default_font_size must be positive, got %g", ErrInvalidConfig, c.DefaultFontSize)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level maps LogLevel to a slog level. Empty means info.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return lvl, nil
}
