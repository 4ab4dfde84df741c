package chathtml

import (
	"github.com/alnah/go-chathtml/internal/assets"
	"github.com/alnah/go-chathtml/internal/chat"
)

// Turn is one user message and the assistant reply that followed it.
type Turn = chat.Turn

// Mode selects the presentation style of a rendered conversation.
type Mode = chat.Mode

// Conversation modes.
const (
	ModeUnknown  = chat.ModeUnknown
	ModeCaiChat  = chat.ModeCaiChat
	ModeChat     = chat.ModeChat
	ModeInstruct = chat.ModeInstruct
)

// ParseMode maps "cai-chat", "chat" and "instruct" to a Mode.
// Anything else is ModeUnknown.
func ParseMode(name string) Mode {
	return chat.ParseMode(name)
}

// ModeNames lists the names accepted by ParseMode.
func ModeNames() []string {
	return chat.ModeNames()
}

// Transcript is a conversation stored on disk, in YAML or JSON.
type Transcript = chat.Transcript

// LoadTranscript reads a transcript file.
func LoadTranscript(path string) (*Transcript, error) {
	return chat.LoadTranscript(path)
}

// ParseTranscript decodes transcript content.
func ParseTranscript(data []byte) (*Transcript, error) {
	return chat.ParseTranscript(data)
}

// AssetLoader loads CSS styles and HTML templates by name.
// Implement it to serve assets from somewhere other than disk.
type AssetLoader = assets.AssetLoader

// StyleNames lists the built-in style names.
func StyleNames() []string {
	return assets.StyleNames()
}

// AvatarRole selects which fixed avatar file an image is installed as.
type AvatarRole string

// Avatar roles.
const (
	AvatarCharacter AvatarRole = "character"
	AvatarMe        AvatarRole = "me"
)

// fileName returns the fixed file name for the role.
func (r AvatarRole) fileName() (string, bool) {
	switch r {
	case AvatarCharacter:
		return chat.AvatarCharacter, true
	case AvatarMe:
		return chat.AvatarMe, true
	default:
		return "", false
	}
}
