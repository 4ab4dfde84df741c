package chathtml

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-chathtml/internal/assets"
	"github.com/alnah/go-chathtml/internal/chat"
	"github.com/alnah/go-chathtml/internal/logging"
	"github.com/alnah/go-chathtml/internal/markup"
	"github.com/alnah/go-chathtml/internal/thread"
	"github.com/alnah/go-chathtml/internal/thumbnail"
	"github.com/sirupsen/logrus"
)

// DefaultCacheDir is the cache directory used when none is configured.
const DefaultCacheDir = thumbnail.DefaultDir

const cacheDirPermissions = 0o750

// Option configures a Renderer.
type Option func(*rendererConfig)

type rendererConfig struct {
	cacheDir       string
	assetPath      string
	assetLoader    AssetLoader
	highlight      bool
	highlightStyle string
	unsafeHTML     bool
	logger         logrus.FieldLogger
	now            func() time.Time
}

// WithCacheDir sets the directory for thumbnails and avatar files.
func WithCacheDir(dir string) Option {
	return func(c *rendererConfig) {
		c.cacheDir = dir
	}
}

// WithAssetPath loads styles and templates from dir, falling back to the
// built-in assets for any file that is missing.
func WithAssetPath(dir string) Option {
	return func(c *rendererConfig) {
		c.assetPath = dir
	}
}

// WithAssetLoader sets a custom asset loader. It takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *rendererConfig) {
		c.assetLoader = loader
	}
}

// WithHighlighting enables Chroma syntax highlighting for fenced code.
// An empty style selects monokai.
func WithHighlighting(style string) Option {
	return func(c *rendererConfig) {
		c.highlight = true
		c.highlightStyle = style
	}
}

// WithUnsafeHTML lets raw HTML in messages pass through to the output.
func WithUnsafeHTML() Option {
	return func(c *rendererConfig) {
		c.unsafeHTML = true
	}
}

// WithLogger sets the logger for debug traces.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *rendererConfig) {
		c.logger = l
	}
}

// WithClock sets the time source for avatar cache-busting.
func WithClock(now func() time.Time) Option {
	return func(c *rendererConfig) {
		c.now = now
	}
}

// Renderer renders conversations, documents and threads, and owns the
// thumbnail cache. Safe for concurrent use.
type Renderer struct {
	cfg          rendererConfig
	converter    *markup.Converter
	cache        *thumbnail.Cache
	chat         *chat.Renderer
	threadCSS    string
	highlightCSS string
}

// NewRenderer creates a Renderer. All assets are loaded up front, so a
// missing or malformed style or template fails here rather than mid-render.
func NewRenderer(opts ...Option) (*Renderer, error) {
	cfg := rendererConfig{
		cacheDir: DefaultCacheDir,
		logger:   logging.Discard(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.cacheDir == "" {
		cfg.cacheDir = DefaultCacheDir
	}

	loader, err := resolveLoader(cfg)
	if err != nil {
		return nil, err
	}

	var mdOpts []markup.Option
	if cfg.highlight {
		mdOpts = append(mdOpts, markup.WithHighlighting(cfg.highlightStyle))
	}
	if cfg.unsafeHTML {
		mdOpts = append(mdOpts, markup.WithUnsafeHTML())
	}
	converter := markup.NewConverter(mdOpts...)

	highlightCSS, err := converter.HighlightCSS()
	if err != nil {
		return nil, err
	}

	chatRenderer, err := chat.NewRenderer(converter, cfg.cacheDir, loader,
		chat.WithClock(cfg.now),
		chat.WithLogger(cfg.logger),
		chat.WithExtraCSS(highlightCSS),
	)
	if err != nil {
		return nil, err
	}

	threadCSS, err := loader.LoadStyle(assets.StyleThread)
	if err != nil {
		return nil, fmt.Errorf("loading thread style: %w", err)
	}

	return &Renderer{
		cfg:          cfg,
		converter:    converter,
		cache:        thumbnail.New(cfg.cacheDir, thumbnail.WithLogger(cfg.logger)),
		chat:         chatRenderer,
		threadCSS:    threadCSS,
		highlightCSS: highlightCSS,
	}, nil
}

func resolveLoader(cfg rendererConfig) (AssetLoader, error) {
	if cfg.assetLoader != nil {
		return cfg.assetLoader, nil
	}
	resolver, err := assets.NewAssetResolver(cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAssetPath, err)
	}
	return resolver, nil
}

// Render builds the HTML for history, most recent turn first.
// ModeUnknown returns an empty string and no error.
func (r *Renderer) Render(ctx context.Context, history []Turn, nameUser, nameAssistant string, mode Mode, resetCache bool) (string, error) {
	return r.chat.Render(ctx, history, nameUser, nameAssistant, mode, resetCache)
}

// RenderMarkup normalizes a single message and converts it to HTML.
func (r *Renderer) RenderMarkup(ctx context.Context, text string) (string, error) {
	return r.converter.Render(ctx, text)
}

// Normalize rewrites the custom quote and code markers of text into
// Markdown without rendering it.
func (r *Renderer) Normalize(text string) string {
	return markup.ToMarkdown(text)
}

// RenderReadable renders text as a standalone readable document.
func (r *Renderer) RenderReadable(ctx context.Context, text string) (string, error) {
	return r.chat.RenderReadable(ctx, text)
}

// RenderThread renders a plain-text thread dump.
func (r *Renderer) RenderThread(raw string) string {
	return thread.Render(raw, r.threadCSS)
}

// Thumbnail returns the cached thumbnail path for the image at path,
// regenerating it when the source has changed.
func (r *Renderer) Thumbnail(path string) (string, error) {
	return r.cache.Get(path)
}

// InstallAvatar writes a thumbnail of src as the fixed avatar file for
// role and returns its path.
func (r *Renderer) InstallAvatar(src string, role AvatarRole) (string, error) {
	name, ok := role.fileName()
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidAvatarRole, role)
	}
	if err := os.MkdirAll(r.cfg.cacheDir, cacheDirPermissions); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCacheDir, err)
	}

	dst := filepath.Join(r.cfg.cacheDir, name)
	if err := thumbnail.WriteThumbnail(src, dst, nil); err != nil {
		return "", err
	}
	r.cfg.logger.WithFields(logrus.Fields{"role": string(role), "path": dst}).Debug("avatar installed")
	return dst, nil
}

// HighlightCSS returns the syntax highlighting stylesheet, or an empty
// string when highlighting is disabled. It is already included in every
// conversation style block.
func (r *Renderer) HighlightCSS() string {
	return r.highlightCSS
}

// CacheDir returns the thumbnail and avatar directory.
func (r *Renderer) CacheDir() string {
	return r.cache.Dir()
}
