// Package config loads the collatz command's YAML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gliu20/collatz-encoder/endian"
	"github.com/gliu20/collatz-encoder/limb"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Config is the on-disk configuration. Zero fields fall back to Default.
type Config struct {
	Log       LogConfig   `yaml:"log"`
	Arena     ArenaConfig `yaml:"arena"`
	ByteOrder string      `yaml:"byte_order"`
	Verify    bool        `yaml:"verify"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// ArenaConfig controls limb buffer recycling.
type ArenaConfig struct {
	Enabled     bool `yaml:"enabled"`
	MaxCapacity int  `yaml:"max_capacity"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Arena: ArenaConfig{
			Enabled:     true,
			MaxCapacity: limb.DefaultArenaMaxCapacity,
		},
		ByteOrder: "little",
	}
}

// Load reads the YAML file at path on top of Default. An empty path returns
// Default unchanged.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes YAML on top of Default and validates the result. Unknown keys
// are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q (want text or json)", ErrInvalid, c.Log.Format)
	}

	if c.Arena.MaxCapacity < 0 {
		return fmt.Errorf("%w: arena.max_capacity %d is negative", ErrInvalid, c.Arena.MaxCapacity)
	}

	if _, err := endian.Parse(c.ByteOrder); err != nil {
		return fmt.Errorf("%w: byte_order: %w", ErrInvalid, err)
	}

	return nil
}

// SlogLevel converts Log.Level to a slog.Level.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}

	return level, nil
}

// Engine returns the byte order named by ByteOrder.
func (c Config) Engine() endian.EndianEngine {
	engine, err := endian.Parse(c.ByteOrder)
	if err != nil {
		return endian.GetLittleEndianEngine()
	}

	return engine
}

// NewArena returns the arena described by Arena, or nil when disabled.
func (c Config) NewArena() *limb.Arena {
	if !c.Arena.Enabled {
		return nil
	}

	return limb.NewArena(c.Arena.MaxCapacity)
}

// Marshal renders c as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
