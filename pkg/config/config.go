// Package config loads run settings from resourceocr.yaml and RESOURCEOCR_* env vars.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"resourceocr/pkg/grid"
	"resourceocr/pkg/inventory"
)

// Thresholds are template-match confidences.
type Thresholds struct {
	Anchor          float64 `mapstructure:"anchor"`
	Memorial        float64 `mapstructure:"memorial"`
	Autograph       float64 `mapstructure:"autograph"`
	TriageMemorial  float64 `mapstructure:"triage_memorial"`
	TriageAutograph float64 `mapstructure:"triage_autograph"`
}

type Config struct {
	ScreenshotDir     string              `mapstructure:"screenshot_dir"`
	ScreenshotPattern string              `mapstructure:"screenshot_pattern"`
	Window            int                 `mapstructure:"window"`
	IconDir           string              `mapstructure:"icon_dir"`
	DebugDir          string              `mapstructure:"debug_dir"`
	AutographRows     int                 `mapstructure:"autograph_rows"`
	ListenAddr        string              `mapstructure:"listen_addr"`
	Thresholds        Thresholds          `mapstructure:"thresholds"`
	Geometry          grid.Geometry       `mapstructure:"geometry"`
	Roster            map[string][]string `mapstructure:"roster"`
}

// Default returns the settings for a stock Nox install on a 1080p screen.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		ScreenshotDir:     filepath.Join(home, "Nox_share", "ImageShare", "Screenshots"),
		ScreenshotPattern: "Screenshot_*.png",
		Window:            15,
		IconDir:           "icon",
		AutographRows:     4,
		ListenAddr:        ":8081",
		Thresholds: Thresholds{
			Anchor:          grid.DefaultAnchorConfidence,
			Memorial:        0.93,
			Autograph:       0.90,
			TriageMemorial:  0.93,
			TriageAutograph: 0.92,
		},
		Geometry: grid.DefaultGeometry(),
	}
}

// Load reads path, or ./resourceocr.yaml when path is empty. A missing default
// file is not an error; the defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()
	v := viper.New()
	v.SetEnvPrefix("RESOURCEOCR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// scalar defaults make the keys visible to AutomaticEnv
	v.SetDefault("screenshot_dir", cfg.ScreenshotDir)
	v.SetDefault("screenshot_pattern", cfg.ScreenshotPattern)
	v.SetDefault("window", cfg.Window)
	v.SetDefault("icon_dir", cfg.IconDir)
	v.SetDefault("debug_dir", cfg.DebugDir)
	v.SetDefault("autograph_rows", cfg.AutographRows)
	v.SetDefault("listen_addr", cfg.ListenAddr)
	v.SetDefault("thresholds.anchor", cfg.Thresholds.Anchor)
	v.SetDefault("thresholds.memorial", cfg.Thresholds.Memorial)
	v.SetDefault("thresholds.autograph", cfg.Thresholds.Autograph)
	v.SetDefault("thresholds.triage_memorial", cfg.Thresholds.TriageMemorial)
	v.SetDefault("thresholds.triage_autograph", cfg.Thresholds.TriageAutograph)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("resourceocr")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Window <= 0 {
		return fmt.Errorf("window must be positive, got %d", c.Window)
	}
	if c.AutographRows <= 0 {
		return fmt.Errorf("autograph_rows must be positive, got %d", c.AutographRows)
	}
	if c.Geometry.Columns <= 0 || c.Geometry.Cell.Width <= 0 || c.Geometry.Cell.Height <= 0 {
		return fmt.Errorf("geometry: columns and cell size must be positive")
	}
	if len(c.Geometry.AnchorHeights) == 0 {
		return fmt.Errorf("geometry: anchor_heights must list at least one window")
	}
	for name, th := range map[string]float64{
		"anchor":           c.Thresholds.Anchor,
		"memorial":         c.Thresholds.Memorial,
		"autograph":        c.Thresholds.Autograph,
		"triage_memorial":  c.Thresholds.TriageMemorial,
		"triage_autograph": c.Thresholds.TriageAutograph,
	} {
		if th <= 0 || th > 1 {
			return fmt.Errorf("threshold %s out of range: %v", name, th)
		}
	}
	return nil
}

// BuildRoster returns the configured roster, or the built-in one when the config
// lists no members.
func (c *Config) BuildRoster() (*inventory.Roster, error) {
	if len(c.Roster) == 0 {
		return inventory.DefaultRoster(), nil
	}
	members := map[inventory.Group][]string{}
	for name, list := range c.Roster {
		g, err := inventory.ParseGroup(name)
		if err != nil {
			return nil, fmt.Errorf("roster: %w", err)
		}
		members[g] = list
	}
	return inventory.NewRoster(members)
}
