package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/stuxvii/lsd-thumbnail-server/engine/core"
	"github.com/stuxvii/lsd-thumbnail-server/engine/renderer"
)

const (
	// Environment variables read on startup.
	EnvConfigPath = "LSD_CONFIG"
	EnvDBPassword = "DB_PASSWORD"
)

// Duration is a time.Duration that reads from strings such as "30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type DatabaseConfig struct {
	User string `toml:"user"`
	// Only ever read from DB_PASSWORD.
	Password string `toml:"-"`
	Host     string `toml:"host"`
	Port     uint16 `toml:"port"`
	Name     string `toml:"name"`
}

type ApplicationConfig struct {
	// The application name, printed on startup.
	Name string `toml:"name"`
	// Address the HTTP ingress listens on.
	ListenAddr string `toml:"listen_addr"`
	// Item asset paths are resolved against this directory.
	AssetRoot string `toml:"asset_root"`
	// Render target size. Output PNGs are always this size.
	Width  uint32 `toml:"width"`
	Height uint32 `toml:"height"`
	// Frames per second of the render loop.
	RefreshRate uint32 `toml:"refresh_rate"`
	// How long a caller waits for its render before giving up.
	RenderTimeout Duration `toml:"render_timeout"`
	// debug, info, warn or error.
	LogLevel string `toml:"log_level"`
	// Optional .fnt file, relative to AssetRoot, for the diagnostic overlay.
	OverlayFont string         `toml:"overlay_font"`
	Database    DatabaseConfig `toml:"database"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Name:          "LSDBLOX Avatar Server",
		ListenAddr:    "127.0.0.1:6767",
		AssetRoot:     "/srv/http",
		Width:         1024,
		Height:        1024,
		RefreshRate:   60,
		RenderTimeout: Duration{30 * time.Second},
		LogLevel:      "info",
		Database: DatabaseConfig{
			User: "usr",
			Host: "localhost",
			Port: 3306,
			Name: "appdb",
		},
	}
}

// LoadApplicationConfig loads .env if present, then the TOML file at path
// (or $LSD_CONFIG when path is empty) over the defaults. A missing config
// file is only an error when it was asked for explicitly.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := DefaultApplicationConfig()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
			core.LogWarn("config file %s not found, using defaults", path)
		default:
			return nil, err
		}
	}

	cfg.Database.Password = os.Getenv(EnvDBPassword)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ApplicationConfig) Validate() error {
	if c.Width == 0 || c.Height == 0 {
		return fmt.Errorf("render target must not be empty, got %dx%d", c.Width, c.Height)
	}
	if c.Width > renderer.MaxTargetSize || c.Height > renderer.MaxTargetSize {
		return fmt.Errorf("render target %dx%d exceeds %d on a side", c.Width, c.Height, renderer.MaxTargetSize)
	}
	if c.RefreshRate == 0 {
		return fmt.Errorf("refresh_rate must be positive")
	}
	if c.RenderTimeout.Duration <= 0 {
		return fmt.Errorf("render_timeout must be positive")
	}
	return nil
}
