package main

import (
	"strings"
	"testing"
)

func TestRunMain_Commands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"no command", nil, ExitUsage, "", "Usage: chathtml"},
		{"version", []string{"version"}, ExitSuccess, "chathtml dev", ""},
		{"version flag", []string{"--version"}, ExitSuccess, "chathtml dev", ""},
		{"help", []string{"help"}, ExitSuccess, "Commands:", ""},
		{"help render", []string{"help", "render"}, ExitSuccess, "Usage: chathtml render", ""},
		{"help avatar", []string{"help", "avatar"}, ExitSuccess, "--role", ""},
		{"help unknown", []string{"help", "bogus"}, ExitSuccess, "", "Unknown command: bogus"},
		{"unknown command", []string{"bogus"}, ExitUsage, "", "Unknown command: bogus"},
		{"completion usage", []string{"completion"}, ExitSuccess, "Supported shells:", ""},
		{"completion bash", []string{"completion", "bash"}, ExitSuccess, "complete -F", ""},
		{"completion bad shell", []string{"completion", "tcsh"}, ExitUsage, "", "unsupported shell"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv("")
			code := runMain(append([]string{"chathtml"}, tt.args...), env.Environment)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if tt.wantStdout != "" && !strings.Contains(env.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want to contain %q", env.stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want to contain %q", env.stderr.String(), tt.wantStderr)
			}
		})
	}
}
