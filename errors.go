package chathtml

import (
	"errors"

	"github.com/alnah/go-chathtml/internal/assets"
	"github.com/alnah/go-chathtml/internal/chat"
	"github.com/alnah/go-chathtml/internal/markup"
	"github.com/alnah/go-chathtml/internal/thumbnail"
)

// Sentinel errors for library operations.
var (
	ErrHTMLConversion = markup.ErrHTMLConversion

	// Asset loading errors.
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrTemplateNotFound = assets.ErrTemplateNotFound
	ErrInvalidAssetPath = errors.New("invalid asset path")

	// Conversation errors.
	ErrTemplate   = chat.ErrParseTemplate
	ErrTranscript = chat.ErrTranscript

	// Thumbnail errors.
	ErrCacheDir       = thumbnail.ErrCacheDir
	ErrSourceImage    = thumbnail.ErrSourceImage
	ErrWriteThumbnail = thumbnail.ErrWriteThumbnail

	ErrInvalidAvatarRole = errors.New("invalid avatar role")
)
