package chat

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alnah/go-chathtml/internal/assets"
	"github.com/alnah/go-chathtml/internal/fileutil"
	"github.com/alnah/go-chathtml/internal/logging"
	"github.com/alnah/go-chathtml/internal/markup"
	"github.com/sirupsen/logrus"
)

// Avatar files read from the cache directory. They are written by an
// external uploader, never by the renderer.
const (
	AvatarCharacter = "pfp_character.png"
	AvatarMe        = "pfp_me.png"
)

// AvatarURLPrefix is the path under which the UI serves local files.
const AvatarURLPrefix = "file/"

// Sentinel errors for conversation rendering.
var (
	ErrLoadAsset     = errors.New("failed to load chat asset")
	ErrParseTemplate = errors.New("failed to parse chat template")
	ErrExecute       = errors.New("failed to execute chat template")
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithClock sets the time source for the user avatar cache-buster.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		r.now = now
	}
}

// WithLogger sets the logger used for dispatch traces.
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Renderer) {
		r.log = l
	}
}

// WithExtraCSS appends css to every style block, e.g. syntax highlighting rules.
func WithExtraCSS(css string) Option {
	return func(r *Renderer) {
		r.extraCSS = css
	}
}

// layout pairs a parsed template with its style sheet.
type layout struct {
	tmpl *template.Template
	css  string
}

// turnView is one turn as seen by the templates.
type turnView struct {
	User      template.HTML
	Assistant template.HTML
}

// pageView is the template data for one rendered history.
type pageView struct {
	NameUser        string
	NameAssistant   string
	AssistantAvatar string
	UserAvatar      string
	Turns           []turnView
}

// Renderer assembles conversation HTML. Templates and styles are loaded
// once at construction. Safe for concurrent use.
type Renderer struct {
	md       markup.Renderer
	cacheDir string
	now      func() time.Time
	log      logrus.FieldLogger
	extraCSS string

	caiChat     layout
	chat        layout
	instruct    layout
	readableCSS string
}

// NewRenderer loads every template and style through loader.
// cacheDir is where the avatar files are looked up.
func NewRenderer(md markup.Renderer, cacheDir string, loader assets.AssetLoader, opts ...Option) (*Renderer, error) {
	r := &Renderer{
		md:       md,
		cacheDir: cacheDir,
		now:      time.Now,
		log:      logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}

	var err error
	if r.caiChat, err = loadLayout(loader, assets.TemplateCaiChat, assets.StyleCaiChat); err != nil {
		return nil, err
	}
	if r.chat, err = loadLayout(loader, assets.TemplateChat, assets.StyleBubbleChat); err != nil {
		return nil, err
	}
	if r.instruct, err = loadLayout(loader, assets.TemplateInstruct, assets.StyleInstruct); err != nil {
		return nil, err
	}
	if r.readableCSS, err = loader.LoadStyle(assets.StyleReadable); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadAsset, err)
	}

	return r, nil
}

func loadLayout(loader assets.AssetLoader, templateName, styleName string) (layout, error) {
	src, err := loader.LoadTemplate(templateName)
	if err != nil {
		return layout{}, fmt.Errorf("%w: %w", ErrLoadAsset, err)
	}
	css, err := loader.LoadStyle(styleName)
	if err != nil {
		return layout{}, fmt.Errorf("%w: %w", ErrLoadAsset, err)
	}
	tmpl, err := template.New(templateName).Parse(src)
	if err != nil {
		return layout{}, fmt.Errorf("%w: %s: %v", ErrParseTemplate, templateName, err)
	}
	return layout{tmpl: tmpl, css: css}, nil
}

// Render builds the HTML for history in the given mode, most recent turn
// first. ModeUnknown yields an empty string and no error.
func (r *Renderer) Render(ctx context.Context, history []Turn, nameUser, nameAssistant string, mode Mode, resetCache bool) (string, error) {
	switch mode {
	case ModeCaiChat:
		return r.renderCaiChat(ctx, history, nameUser, nameAssistant, resetCache)
	case ModeChat:
		return r.renderChat(ctx, history)
	case ModeInstruct:
		return r.renderInstruct(ctx, history)
	default:
		r.log.WithField("mode", mode.String()).Debug("nothing to render")
		return "", nil
	}
}

func (r *Renderer) renderCaiChat(ctx context.Context, history []Turn, nameUser, nameAssistant string, resetCache bool) (string, error) {
	turns, err := r.turns(ctx, history)
	if err != nil {
		return "", err
	}

	userQuery := ""
	if resetCache {
		userQuery = strconv.FormatInt(r.now().UnixMilli(), 10)
	}

	return r.execute(r.caiChat, pageView{
		NameUser:        nameUser,
		NameAssistant:   nameAssistant,
		AssistantAvatar: r.avatarSrc(AvatarCharacter, url.QueryEscape(nameAssistant)),
		UserAvatar:      r.avatarSrc(AvatarMe, userQuery),
		Turns:           turns,
	})
}

func (r *Renderer) renderChat(ctx context.Context, history []Turn) (string, error) {
	turns, err := r.turns(ctx, history)
	if err != nil {
		return "", err
	}
	return r.execute(r.chat, pageView{Turns: turns})
}

func (r *Renderer) renderInstruct(ctx context.Context, history []Turn) (string, error) {
	turns, err := r.turns(ctx, history)
	if err != nil {
		return "", err
	}
	return r.execute(r.instruct, pageView{Turns: turns})
}

// turns renders every message, newest turn first.
func (r *Renderer) turns(ctx context.Context, history []Turn) ([]turnView, error) {
	views := make([]turnView, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		user, err := r.md.Render(ctx, history[i].User)
		if err != nil {
			return nil, fmt.Errorf("turn %d user: %w", i, err)
		}
		assistant, err := r.md.Render(ctx, history[i].Assistant)
		if err != nil {
			return nil, fmt.Errorf("turn %d assistant: %w", i, err)
		}
		// #nosec G203 -- fragments come from the markdown renderer
		views = append(views, turnView{
			User:      template.HTML(user),
			Assistant: template.HTML(assistant),
		})
	}
	return views, nil
}

// avatarSrc returns the img source for an avatar file, or "" when the file
// is absent. An empty query is omitted. Absolute cache directories are
// joined without doubling the separator after the prefix.
func (r *Renderer) avatarSrc(file, query string) string {
	local := filepath.Join(r.cacheDir, file)
	if !fileutil.FileExists(local) {
		return ""
	}
	src := path.Join(AvatarURLPrefix, filepath.ToSlash(local))
	if query != "" {
		src += "?" + query
	}
	return src
}

func (r *Renderer) execute(l layout, page pageView) (string, error) {
	var buf bytes.Buffer
	if err := l.tmpl.Execute(&buf, page); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExecute, err)
	}
	return r.styleBlock(l.css) + buf.String(), nil
}

func (r *Renderer) styleBlock(css string) string {
	if r.extraCSS != "" {
		css += "\n" + r.extraCSS
	}
	return markup.StyleBlock(css)
}

// RenderReadable renders text as a standalone document body in the
// readable style.
func (r *Renderer) RenderReadable(ctx context.Context, text string) (string, error) {
	body, err := r.md.Render(ctx, text)
	if err != nil {
		return "", err
	}
	return r.styleBlock(r.readableCSS) + `<div class="container">` + body + `</div>`, nil
}
