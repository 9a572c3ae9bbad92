// Package config loads the game settings from a YAML file, with overrides
// from the environment and .env files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/plus3/platformer/camera"
	"github.com/plus3/platformer/errs"
	"github.com/plus3/platformer/input"
	"gopkg.in/yaml.v3"
)

const (
	EnvConfig   = "PLATFORMER_CONFIG"
	EnvMap      = "PLATFORMER_MAP"
	EnvLogLevel = "PLATFORMER_LOG_LEVEL"

	DefaultPath = "platformer.yaml"
)

type Screen struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Scale  float64 `yaml:"scale"`
}

type Paths struct {
	Map         string `yaml:"map"`
	Atlas       string `yaml:"atlas"`
	Spritesheet string `yaml:"spritesheet"`
	DebugSheet  string `yaml:"debug_sheet"`
}

type Camera struct {
	Margin camera.Margin `yaml:"margin"`
	Zoom   float64       `yaml:"zoom"`
}

// Player describes the entity spawned for keyboard control
type Player struct {
	Name      string       `yaml:"name"`
	Asset     string       `yaml:"asset"`
	X         float64      `yaml:"x"`
	Y         float64      `yaml:"y"`
	Width     float64      `yaml:"width"`
	Height    float64      `yaml:"height"`
	MaxSpeedX float64      `yaml:"max_speed_x"`
	MaxSpeedY float64      `yaml:"max_speed_y"`
	Gravity   float64      `yaml:"gravity"`
	Tuning    input.Tuning `yaml:",inline"`
}

type Config struct {
	TileSize float64 `yaml:"tile_size"`
	Screen   Screen  `yaml:"screen"`
	Paths    Paths   `yaml:"paths"`
	Camera   Camera  `yaml:"camera"`
	Player   Player  `yaml:"player"`
	TickRate int     `yaml:"tick_rate"`
	LogLevel string  `yaml:"log_level"`
}

// Default returns the stock settings
func Default() Config {
	return Config{
		TileSize: 70,
		Screen: Screen{
			Width:  70 * 18,
			Height: 70 * 15,
			Scale:  1,
		},
		Paths: Paths{
			Map:         "assets/map.map",
			Atlas:       "assets/tiles.json",
			Spritesheet: "assets/tiles.png",
			DebugSheet:  "assets/debug.png",
		},
		Camera: Camera{
			Margin: camera.UniformMargin(camera.DefaultMargin),
			Zoom:   1,
		},
		Player: Player{
			Name:      "player",
			Asset:     "hillSmall",
			X:         100,
			Y:         100,
			Width:     48,
			Height:    106,
			MaxSpeedX: 10,
			MaxSpeedY: 20,
			Gravity:   0.5,
			Tuning:    input.DefaultTuning(),
		},
		TickRate: 60,
		LogLevel: "info",
	}
}

// Decode reads YAML settings from r over the defaults
func Decode(r io.Reader) (Config, error) {
	cfg := Default()

	data, err := io.ReadAll(r)
	if err != nil {
		return cfg, errs.IO("read config", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errs.Decode("decode config", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errs.Decode("decode config", err)
	}
	return cfg, nil
}

// Load reads the YAML file at path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), errs.IO("open config", err)
	}
	defer f.Close()

	return Decode(f)
}

// FromEnv loads .env files, then the config file named by PLATFORMER_CONFIG
// (or platformer.yaml), then applies the remaining environment overrides.
// Missing .env files are ignored.
func FromEnv(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Default(), errs.Decode("load "+file, err)
		}
	}

	path := os.Getenv(EnvConfig)
	if path == "" {
		path = DefaultPath
	}

	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvMap); v != "" {
		c.Paths.Map = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
}

// Validate checks that sizes and rates are usable
func (c Config) Validate() error {
	if c.TileSize <= 0 {
		return fmt.Errorf("tile_size must be positive, got %v", c.TileSize)
	}
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Screen.Scale <= 0 {
		return fmt.Errorf("screen scale must be positive, got %v", c.Screen.Scale)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive, got %d", c.TickRate)
	}
	if c.Player.Width < 0 || c.Player.Height < 0 {
		return fmt.Errorf("player size cannot be negative")
	}
	return nil
}
