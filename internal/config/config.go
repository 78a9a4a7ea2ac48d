// Package config loads seam-mcp settings from TOML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "seam-mcp"

// LogLevelEnv overrides log_level when set.
const LogLevelEnv = "SEAM_MCP_LOG_LEVEL"

// Defaults.
const (
	DefaultLogLevel         = "info"
	DefaultOverlayColor     = "#FF0000"
	DefaultOCRLanguage      = "eng"
	DefaultOCRMinConfidence = 0.5
	DefaultMaxPixels        = 16_000_000
)

type Config struct {
	LogLevel         string  `koanf:"log_level"`          // debug, info, warn, error
	OverlayColor     string  `koanf:"overlay_color"`      // seam overlay color, "#RRGGBB"
	OCRLanguage      string  `koanf:"ocr_language"`       // Tesseract language code
	OCRMinConfidence float64 `koanf:"ocr_min_confidence"` // 0.0-1.0
	MaxPixels        int     `koanf:"max_pixels"`         // larger images are rejected; 0 disables the check
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{MaxPixels: -1}
	cfg.applyDefaults()
	return cfg
}

// Load reads the user and working-directory config files, in that order.
func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given TOML files in order; later files win and missing
// files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	cfg := &Config{MaxPixels: -1}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if lvl := os.Getenv(LogLevelEnv); lvl != "" {
		cfg.LogLevel = lvl
	}
	cfg.applyDefaults()

	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("log_level %q: %w", cfg.LogLevel, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.OverlayColor == "" {
		c.OverlayColor = DefaultOverlayColor
	}
	if c.OCRLanguage == "" {
		c.OCRLanguage = DefaultOCRLanguage
	}
	if c.OCRMinConfidence <= 0 || c.OCRMinConfidence > 1 {
		c.OCRMinConfidence = DefaultOCRMinConfidence
	}
	// Unset stays at the -1 marker; an explicit 0 disables the limit.
	if c.MaxPixels < 0 {
		c.MaxPixels = DefaultMaxPixels
	}
}

// Level returns the parsed log level, falling back to info.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/seam-mcp/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./seam-mcp.toml (highest priority)
		appName + ".toml",
	}
}
