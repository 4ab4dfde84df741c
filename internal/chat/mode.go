package chat

// Mode selects the presentation style of a rendered conversation.
type Mode int

const (
	// ModeUnknown renders nothing.
	ModeUnknown Mode = iota
	// ModeCaiChat shows avatars and names beside each message.
	ModeCaiChat
	// ModeChat shows messages as chat bubbles.
	ModeChat
	// ModeInstruct shows alternating assistant and user panels.
	ModeInstruct
)

// Wire names accepted by ParseMode.
const (
	modeCaiChatName  = "cai-chat"
	modeChatName     = "chat"
	modeInstructName = "instruct"
)

// ParseMode maps a mode name to a Mode. Unrecognized names yield
// ModeUnknown rather than an error.
func ParseMode(name string) Mode {
	switch name {
	case modeCaiChatName:
		return ModeCaiChat
	case modeChatName:
		return ModeChat
	case modeInstructName:
		return ModeInstruct
	default:
		return ModeUnknown
	}
}

// String returns the wire name, or "unknown".
func (m Mode) String() string {
	switch m {
	case ModeCaiChat:
		return modeCaiChatName
	case ModeChat:
		return modeChatName
	case ModeInstruct:
		return modeInstructName
	default:
		return "unknown"
	}
}

// ModeNames lists the names of all renderable modes.
func ModeNames() []string {
	return []string{modeCaiChatName, modeChatName, modeInstructName}
}

// Turn is one user message and the assistant reply that followed it.
type Turn struct {
	User      string `yaml:"user" json:"user"`
	Assistant string `yaml:"assistant" json:"assistant"`
}
