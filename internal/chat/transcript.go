package chat

import (
	"errors"
	"fmt"

	"github.com/alnah/go-chathtml/internal/yamlutil"
)

// ErrTranscript indicates a transcript file has an invalid shape.
var ErrTranscript = errors.New("invalid transcript")

// Transcript is a conversation stored on disk, in YAML or JSON.
type Transcript struct {
	Mode          string `yaml:"mode"`
	NameUser      string `yaml:"name_user"`
	NameAssistant string `yaml:"name_assistant"`
	History       []Turn `yaml:"history"`
}

// UnmarshalYAML accepts a turn either as a {user, assistant} mapping or as
// a two-element [user, assistant] sequence.
func (t *Turn) UnmarshalYAML(unmarshal func(any) error) error {
	var pair []string
	if err := unmarshal(&pair); err == nil {
		if len(pair) != 2 {
			return fmt.Errorf("%w: turn has %d elements, want 2", ErrTranscript, len(pair))
		}
		t.User, t.Assistant = pair[0], pair[1]
		return nil
	}

	type plain Turn
	var p plain
	if err := unmarshal(&p); err != nil {
		return err
	}
	*t = Turn(p)
	return nil
}

// ParseTranscript decodes a transcript and checks its mode name.
func ParseTranscript(data []byte) (*Transcript, error) {
	var tr Transcript
	if err := yamlutil.UnmarshalStrict(data, &tr); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTranscript, err)
	}
	if err := tr.validate(); err != nil {
		return nil, err
	}
	return &tr, nil
}

// LoadTranscript reads and decodes the transcript at path.
func LoadTranscript(path string) (*Transcript, error) {
	var tr Transcript
	if err := yamlutil.ReadFile(path, &tr, true); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTranscript, err)
	}
	if err := tr.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &tr, nil
}

func (tr *Transcript) validate() error {
	if tr.Mode != "" && ParseMode(tr.Mode) == ModeUnknown {
		return fmt.Errorf("%w: unknown mode %q", ErrTranscript, tr.Mode)
	}
	return nil
}
