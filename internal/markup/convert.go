package markup

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// DefaultHighlightStyle is the Chroma style used when highlighting is
// enabled without an explicit style.
const DefaultHighlightStyle = "monokai"

// Renderer abstracts normalization plus Markdown to HTML conversion.
type Renderer interface {
	Render(ctx context.Context, text string) (string, error)
}

// Option configures a Converter.
type Option func(*converterConfig)

type converterConfig struct {
	highlight      bool
	highlightStyle string
	unsafeHTML     bool
}

// WithHighlighting enables Chroma syntax highlighting for fenced code.
// An empty style selects DefaultHighlightStyle.
func WithHighlighting(style string) Option {
	return func(c *converterConfig) {
		if style == "" {
			style = DefaultHighlightStyle
		}
		c.highlight = true
		c.highlightStyle = style
	}
}

// WithUnsafeHTML lets raw HTML in messages (e.g. inline <img> tags from
// picture uploads) pass through instead of being omitted.
func WithUnsafeHTML() Option {
	return func(c *converterConfig) {
		c.unsafeHTML = true
	}
}

// Converter normalizes conversation text and renders it with Goldmark.
// Safe for concurrent use.
type Converter struct {
	md  goldmark.Markdown
	cfg converterConfig
}

// NewConverter creates a Converter with GFM extensions.
// Hard wraps stay off: single newlines are insignificant, which is why
// ToMarkdown doubles them outside code.
func NewConverter(opts ...Option) *Converter {
	var cfg converterConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	extensions := []goldmark.Extender{
		extension.GFM, // Tables, strikethrough, autolinks, task lists
	}
	if cfg.highlight {
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithStyle(cfg.highlightStyle),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true), // stylesheet comes from HighlightCSS
			),
		))
	}

	rendererOpts := []renderer.Option{html.WithXHTML()}
	if cfg.unsafeHTML {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	md := goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithRendererOptions(rendererOpts...),
	)

	return &Converter{md: md, cfg: cfg}
}

// Render normalizes text with ToMarkdown and converts it to an HTML fragment.
// Empty input yields an empty fragment.
func (c *Converter) Render(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	normalized := ToMarkdown(text)
	if normalized == "" {
		return "", nil
	}

	return c.ToHTML(normalized)
}

// ToHTML converts already-normalized Markdown to an HTML fragment.
func (c *Converter) ToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return buf.String(), nil
}

// HighlightCSS returns the stylesheet matching the highlight classes, or an
// empty string when highlighting is disabled.
func (c *Converter) HighlightCSS() (string, error) {
	if !c.cfg.highlight {
		return "", nil
	}

	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(c.cfg.highlightStyle)); err != nil {
		return "", fmt.Errorf("writing highlight CSS: %w", err)
	}
	return buf.String(), nil
}

// Compile-time interface check.
var _ Renderer = (*Converter)(nil)
