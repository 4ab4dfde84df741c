package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver(\"\") error = %v", err)
		}
		if resolver.HasCustomLoader() {
			t.Error("expected no custom loader for empty path")
		}
	})

	t.Run("invalid custom path", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestAssetResolver_CustomFirstWithFallback(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeAsset(t, tmpDir, "styles", "bubble-chat.css", ".text-you { color: hotpink; }")
	writeAsset(t, tmpDir, "templates", "instruct.html", `<div id="chat">mine</div>`)

	resolver, err := NewAssetResolver(tmpDir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}
	if !resolver.HasCustomLoader() {
		t.Fatal("expected custom loader")
	}

	tests := []struct {
		name        string
		load        func() (string, error)
		wantContain string
	}{
		{
			name:        "custom style wins",
			load:        func() (string, error) { return resolver.LoadStyle(StyleBubbleChat) },
			wantContain: "hotpink",
		},
		{
			name:        "missing custom style falls back",
			load:        func() (string, error) { return resolver.LoadStyle(StyleCaiChat) },
			wantContain: ".circle-bot",
		},
		{
			name:        "custom template wins",
			load:        func() (string, error) { return resolver.LoadTemplate(TemplateInstruct) },
			wantContain: "mine",
		},
		{
			name:        "missing custom template falls back",
			load:        func() (string, error) { return resolver.LoadTemplate(TemplateChat) },
			wantContain: "text-bot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.load()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(got, tt.wantContain) {
				t.Errorf("got %q, want it to contain %q", got, tt.wantContain)
			}
		})
	}
}

func TestAssetResolver_ValidationNotMasked(t *testing.T) {
	t.Parallel()

	resolver, err := NewAssetResolver(t.TempDir())
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	if _, err := resolver.LoadStyle("../escape"); !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("LoadStyle(../escape) error = %v, want ErrInvalidAssetName", err)
	}
}
