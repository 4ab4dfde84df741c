package chat

import "testing"

func TestParseMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Mode
	}{
		{"cai-chat", ModeCaiChat},
		{"chat", ModeChat},
		{"instruct", ModeInstruct},
		{"", ModeUnknown},
		{"Chat", ModeUnknown},
		{"notebook", ModeUnknown},
	}

	for _, tt := range tests {
		if got := ParseMode(tt.input); got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestMode_StringRoundTrip(t *testing.T) {
	t.Parallel()

	for _, name := range ModeNames() {
		if got := ParseMode(name).String(); got != name {
			t.Errorf("ParseMode(%q).String() = %q", name, got)
		}
	}
	if got := ModeUnknown.String(); got != "unknown" {
		t.Errorf("ModeUnknown.String() = %q, want %q", got, "unknown")
	}
}
