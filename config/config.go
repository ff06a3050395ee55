// Package config loads the panelwire service configuration from a JSON file
// and watches it for changes.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/katalvlaran/panelwire/codec"
	"github.com/katalvlaran/panelwire/decoration"
	"github.com/katalvlaran/panelwire/wire"
)

// ErrUnknownDriver indicates a store driver other than memory, sqlite or postgres.
var ErrUnknownDriver = errors.New("config: unknown store driver")

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the service configuration.
type Config struct {
	Addr string `json:"addr"`

	Store struct {
		Driver string `json:"driver"`
		DSN    string `json:"dsn"`
	} `json:"store"`

	// ColorMode is one of the decoration.ColorMode names.
	ColorMode    string  `json:"colorMode"`
	PathWidth    float32 `json:"pathWidth"`
	MaxDimension int     `json:"maxDimension"`

	// Nil lists keep the codec defaults.
	NoSymmetryIDs []wire.ObjectID `json:"noSymmetryIds,omitempty"`
	SideExitIDs   []wire.ObjectID `json:"sideExitIds,omitempty"`

	PreviewSize   int `json:"previewSize"`
	ThumbnailSize int `json:"thumbnailSize"`
}

// Default returns the configuration written when no file exists.
func Default() Config {
	var c Config
	c.Addr = ":38870"
	c.Store.Driver = DriverMemory
	c.ColorMode = decoration.Default.String()
	c.PathWidth = 1
	c.MaxDimension = codec.DefaultMaxDimension
	c.PreviewSize = 512
	c.ThumbnailSize = 128
	return c
}

// Load reads path over the defaults. A missing file is created holding the
// defaults.
func Load(path string) (Config, error) {
	c := Default()
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, Save(path, c)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config.Load(%s): %w", path, err)
	}
	if err := json.Unmarshal(b, &c); err != nil {
		return Config{}, fmt.Errorf("config.Load(%s): %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("config.Load(%s): %w", path, err)
	}
	return c, nil
}

// Save writes c to path as indented JSON, creating parent directories.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config.Save(%s): %w", path, err)
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config.Save(%s): %w", path, err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("config.Save(%s): %w", path, err)
	}
	return nil
}

// Validate checks the driver and colour mode names.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("driver %q: %w", c.Store.Driver, ErrUnknownDriver)
	}
	_, err := c.Mode()
	return err
}

// Mode parses ColorMode. An empty name is decoration.Default.
func (c Config) Mode() (decoration.ColorMode, error) {
	if c.ColorMode == "" {
		return decoration.Default, nil
	}
	return decoration.ParseColorMode(c.ColorMode)
}

// PanelContext builds the codec context for id.
func (c Config) PanelContext(id wire.ObjectID, logger *log.Logger) codec.PanelContext {
	return codec.PanelContext{
		ID:            id,
		Logger:        logger,
		MaxDimension:  c.MaxDimension,
		NoSymmetryIDs: c.NoSymmetryIDs,
		SideExitIDs:   c.SideExitIDs,
	}
}

// EncodeOptions translates the colour mode and path width into codec options.
func (c Config) EncodeOptions() []codec.EncodeOption {
	var opts []codec.EncodeOption
	if m, err := c.Mode(); err == nil && m != decoration.Default {
		opts = append(opts, codec.WithColorMode(m))
	}
	if c.PathWidth > 0 && c.PathWidth != 1 {
		opts = append(opts, codec.WithPathWidth(c.PathWidth))
	}
	return opts
}
