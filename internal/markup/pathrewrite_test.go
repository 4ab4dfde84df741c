package markup

// Notes:
// - RewriteRelativePaths is tested through its public behavior on fragments
//   shaped like rendered conversations.
// - Path traversal is checked by observing that the reference is unchanged.

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRewriteRelativePaths
// ---------------------------------------------------------------------------

func TestRewriteRelativePaths(t *testing.T) {
	t.Parallel()

	sourceDir := "/chats"
	if runtime.GOOS == "windows" {
		sourceDir = `C:\chats`
	}

	tests := []struct {
		name         string
		html         string
		sourceDir    string
		keep         []string
		wantContains []string
	}{
		{"relative image", `<img src="./img/cat.png">`, sourceDir, nil, []string{`src="file://`, `cat.png"`}},
		{"relative image without dot", `<img src="img/cat.png">`, sourceDir, nil, []string{`src="file://`}},
		{"relative link", `<a href="notes.txt">n</a>`, sourceDir, nil, []string{`href="file://`}},
		{"absolute path unchanged", `<img src="/abs/cat.png">`, sourceDir, nil, []string{`src="/abs/cat.png"`}},
		{"https unchanged", `<img src="https://example.com/a.png">`, sourceDir, nil, []string{`src="https://example.com/a.png"`}},
		{"data uri unchanged", `<img src="data:image/png;base64,AA==">`, sourceDir, nil, []string{`src="data:image/png;base64,AA=="`}},
		{"mailto unchanged", `<a href="mailto:a@b.c">m</a>`, sourceDir, nil, []string{`href="mailto:a@b.c"`}},
		{"anchor unchanged", `<a href="#top">t</a>`, sourceDir, nil, []string{`href="#top"`}},
		{"protocol relative unchanged", `<img src="//cdn.example.com/a.png">`, sourceDir, nil, []string{`src="//cdn.example.com/a.png"`}},
		{"script unchanged", `<script src="./x.js"></script>`, sourceDir, nil, []string{`src="./x.js"`}},
		{"kept prefix unchanged", `<img src="file/cache/pfp_me.png?1">`, sourceDir, []string{"file/"}, []string{`src="file/cache/pfp_me.png?1"`}},
		{"empty source dir unchanged", `<img src="./cat.png">`, "", nil, []string{`src="./cat.png"`}},
		{"nested message body", `<div class="message-body"><p><img src="cat.png"></p></div>`, sourceDir, nil, []string{`src="file://`, `class="message-body"`}},
		{"style block kept", `<style>.a > .b { color: red; }</style><img src="a.png">`, sourceDir, nil, []string{`<style>.a > .b { color: red; }</style>`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteRelativePaths(tt.html, tt.sourceDir, tt.keep...)
			if err != nil {
				t.Fatalf("RewriteRelativePaths unexpected error: %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("RewriteRelativePaths(%q) = %q, want to contain %q", tt.html, got, want)
				}
			}
		})
	}
}

func TestRewriteRelativePaths_PathTraversal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name      string
		src       string
		rewritten bool
	}{
		{"parent directory blocked", "../secret.png", false},
		{"double dot in middle blocked", "img/../../secret.png", false},
		{"subdirectory allowed", "img/cat.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteRelativePaths(`<img src="`+tt.src+`">`, dir)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rewritten := strings.Contains(got, "file://"); rewritten != tt.rewritten {
				t.Errorf("rewritten = %v, want %v (output %q)", rewritten, tt.rewritten, got)
			}
		})
	}
}

func TestPathToFileURL(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}

	tests := []struct {
		path string
		want string
	}{
		{"/chats/cat.png", "file:///chats/cat.png"},
		{"/chats/my cat.png", "file:///chats/my%20cat.png"},
	}
	for _, tt := range tests {
		if got := pathToFileURL(filepath.FromSlash(tt.path)); got != tt.want {
			t.Errorf("pathToFileURL(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
