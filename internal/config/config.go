package config

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Playback PlaybackConfig `toml:"playback"`
	Render   RenderConfig   `toml:"render"`
	FFmpeg   FFmpegConfig   `toml:"ffmpeg"`
}

type PlaybackConfig struct {
	FPS       float64 `toml:"fps"`
	StartTime float64 `toml:"start_time"`
	DropEvery int     `toml:"drop_every"`
}

type RenderConfig struct {
	Font         string  `toml:"font"`
	FontSize     int     `toml:"font_size"`
	PrimaryColor string  `toml:"primary_color"`
	OutlineColor string  `toml:"outline_color"`
	Outline      float64 `toml:"outline"`
	Width        int     `toml:"width"`
	Height       int     `toml:"height"`
}

type FFmpegConfig struct {
	FFmpegPath  string `toml:"ffmpeg_path"`
	FFprobePath string `toml:"ffprobe_path"`
}

func DefaultConfig() *Config {
	return &Config{
		Playback: PlaybackConfig{
			FPS:       30,
			StartTime: 0,
			DropEvery: 0,
		},
		Render: RenderConfig{
			Font:         "Arial",
			FontSize:     48,
			PrimaryColor: "#FFFFFF",
			OutlineColor: "#000000",
			Outline:      2,
			Width:        1920,
			Height:       1080,
		},
	}
}

func ConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "cueshift"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config at path over the defaults. An empty path means the
// default location, where a missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := ConfigPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse config %s: unknown key %q", path, undecoded[0].String())
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Playback.FPS <= 0 || math.IsNaN(c.Playback.FPS) {
		return fmt.Errorf("playback.fps must be positive")
	}
	if c.Playback.StartTime < 0 {
		return fmt.Errorf("playback.start_time must not be negative")
	}
	if c.Playback.DropEvery < 0 {
		return fmt.Errorf("playback.drop_every must not be negative")
	}
	if c.Render.FontSize <= 0 {
		return fmt.Errorf("render.font_size must be positive")
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render.width and render.height must be positive")
	}
	if c.Render.Outline < 0 {
		return fmt.Errorf("render.outline must not be negative")
	}
	if _, err := ASSColor(c.Render.PrimaryColor); err != nil {
		return fmt.Errorf("render.primary_color: %w", err)
	}
	if _, err := ASSColor(c.Render.OutlineColor); err != nil {
		return fmt.Errorf("render.outline_color: %w", err)
	}
	return nil
}

func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Save writes the config to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return c.Encode(f)
}

// ASSColor converts "#RRGGBB" or "#AARRGGBB" into ASS "&HAABBGGRR" form.
// Alpha follows ASS, where 00 is opaque.
func ASSColor(hex string) (string, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	alpha := "00"
	switch len(s) {
	case 6:
	case 8:
		alpha, s = s[:2], s[2:]
	default:
		return "", fmt.Errorf("invalid color %q", hex)
	}
	if _, err := strconv.ParseUint(alpha+s, 16, 32); err != nil {
		return "", fmt.Errorf("invalid color %q", hex)
	}

	r, g, b := s[0:2], s[2:4], s[4:6]
	return strings.ToUpper("&H" + alpha + b + g + r), nil
}
