package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/alnah/go-chathtml/internal/chat"
	"github.com/alnah/go-chathtml/internal/fileutil"
	"github.com/alnah/go-chathtml/internal/logging"
	"github.com/alnah/go-chathtml/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxNameLength  = 100  // Display names
	MaxPathLength  = 4096 // PATH_MAX on Linux
	MaxStyleLength = 50   // Chroma style names
)

// appDirName is the directory under the user config dir searched for configs.
const appDirName = "go-chathtml"

// Config holds all configuration for conversation rendering.
type Config struct {
	Render   RenderConfig   `yaml:"render"`
	Cache    CacheConfig    `yaml:"cache"`
	Assets   AssetsConfig   `yaml:"assets"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Log      LogConfig      `yaml:"log"`
}

// RenderConfig defines conversation rendering defaults.
type RenderConfig struct {
	Mode          string `yaml:"mode"` // "cai-chat", "chat", "instruct"
	NameUser      string `yaml:"nameUser"`
	NameAssistant string `yaml:"nameAssistant"`
	ResetCache    bool   `yaml:"resetCache"` // Bust the user avatar browser cache
}

// CacheConfig defines the thumbnail cache location.
type CacheConfig struct {
	Dir string `yaml:"dir"` // Empty = "cache"
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// MarkdownConfig defines markdown rendering options.
type MarkdownConfig struct {
	Highlight      bool   `yaml:"highlight"`
	HighlightStyle string `yaml:"highlightStyle"` // Chroma style name
	UnsafeHTML     bool   `yaml:"unsafeHTML"`     // Pass raw HTML through
}

// LogConfig defines logger options.
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "text", "json"
}

// Validate checks enumerations and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if c.Render.Mode != "" && chat.ParseMode(c.Render.Mode) == chat.ModeUnknown {
		return fmt.Errorf("%w: render.mode %q (must be one of %s)",
			ErrInvalidValue, c.Render.Mode, strings.Join(chat.ModeNames(), ", "))
	}
	if err := validateFieldLength("render.nameUser", c.Render.NameUser, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("render.nameAssistant", c.Render.NameAssistant, MaxNameLength); err != nil {
		return err
	}

	if err := validateFieldLength("cache.dir", c.Cache.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}

	if err := validateFieldLength("markdown.highlightStyle", c.Markdown.HighlightStyle, MaxStyleLength); err != nil {
		return err
	}
	if c.Markdown.HighlightStyle != "" && !slices.Contains(styles.Names(), c.Markdown.HighlightStyle) {
		return fmt.Errorf("%w: markdown.highlightStyle %q is not a known Chroma style",
			ErrInvalidValue, c.Markdown.HighlightStyle)
	}

	if c.Log.Level != "" && !slices.Contains(logging.Levels(), c.Log.Level) {
		return fmt.Errorf("%w: log.level %q (must be one of %s)",
			ErrInvalidValue, c.Log.Level, strings.Join(logging.Levels(), ", "))
	}
	if c.Log.Format != "" && !slices.Contains(logging.Formats(), c.Log.Format) {
		return fmt.Errorf("%w: log.format %q (must be one of %s)",
			ErrInvalidValue, c.Log.Format, strings.Join(logging.Formats(), ", "))
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			Mode:          "chat",
			NameUser:      "You",
			NameAssistant: "Assistant",
		},
		Cache: CacheConfig{Dir: "cache"},
		Markdown: MarkdownConfig{
			Highlight:      true,
			HighlightStyle: "monokai",
		},
		Log: LogConfig{Level: logging.LevelInfo, Format: logging.FormatText},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.ReadFile(configPath, cfg, true); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-chathtml/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
