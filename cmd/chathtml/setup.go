package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-chathtml"
	"github.com/alnah/go-chathtml/internal/config"
	"github.com/alnah/go-chathtml/internal/hints"
	"github.com/alnah/go-chathtml/internal/logging"
	"github.com/sirupsen/logrus"
)

// session bundles what every command needs after flag parsing.
type session struct {
	cfg      *config.Config
	log      *logrus.Logger
	renderer *chathtml.Renderer
}

// setup loads config, merges common flags and builds the logger and renderer.
func setup(f *commonFlags, env *Environment) (*session, error) {
	cfg, err := loadConfig(f)
	if err != nil {
		return nil, err
	}

	log := logging.New(cfg.Log.Level, cfg.Log.Format, env.Stderr)

	r, err := newRenderer(cfg, env, log)
	if err != nil {
		return nil, err
	}

	return &session{cfg: cfg, log: log, renderer: r}, nil
}

// loadConfig loads the config named by --config, or the defaults, and
// applies common flags on top (CLI wins).
func loadConfig(f *commonFlags) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if f.config != "" {
		loaded, err := config.LoadConfig(f.config)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(userConfigCandidates(f.config)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	mergeCommonFlags(f, cfg)

	// Flags bypass LoadConfig validation.
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeCommonFlags applies explicitly set common flags to cfg.
func mergeCommonFlags(f *commonFlags, cfg *config.Config) {
	if f.cacheDir != "" {
		cfg.Cache.Dir = f.cacheDir
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	if f.noHighlight {
		cfg.Markdown.Highlight = false
	}
	if f.logFormat != "" {
		cfg.Log.Format = f.logFormat
	}
	if f.verbose {
		cfg.Log.Level = logging.LevelDebug
	}
	if f.quiet {
		cfg.Log.Level = logging.LevelError
	}
}

// userConfigCandidates returns the user config paths a config name maps to.
func userConfigCandidates(name string) []string {
	if name == "" || filepath.Base(name) != name {
		return nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, "go-chathtml", name+".yaml")}
}

// newRenderer builds a chathtml.Renderer from cfg.
func newRenderer(cfg *config.Config, env *Environment, log logrus.FieldLogger) (*chathtml.Renderer, error) {
	opts := []chathtml.Option{
		chathtml.WithCacheDir(cfg.Cache.Dir),
		chathtml.WithLogger(log),
		chathtml.WithClock(env.Now),
	}

	switch {
	case env.AssetLoader != nil:
		opts = append(opts, chathtml.WithAssetLoader(env.AssetLoader))
	case cfg.Assets.BasePath != "":
		opts = append(opts, chathtml.WithAssetPath(cfg.Assets.BasePath))
	}

	if cfg.Markdown.Highlight {
		opts = append(opts, chathtml.WithHighlighting(cfg.Markdown.HighlightStyle))
	}
	if cfg.Markdown.UnsafeHTML {
		opts = append(opts, chathtml.WithUnsafeHTML())
	}

	r, err := chathtml.NewRenderer(opts...)
	if err != nil {
		if errors.Is(err, chathtml.ErrStyleNotFound) {
			return nil, fmt.Errorf("%w%s", err, hints.ForStyleNotFound(chathtml.StyleNames()))
		}
		return nil, err
	}
	return r, nil
}
