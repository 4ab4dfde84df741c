package main

// Notes:
// - discoverFiles / resolveOutputPath: we test file and directory inputs,
//   output mirroring and extension filtering.
// - renderParams: we test flag > transcript > config precedence.
// - runRender: we render real transcripts end to end with the embedded
//   assets and check exit codes through runMain.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/alnah/go-chathtml"
	"github.com/alnah/go-chathtml/internal/config"
)

// ---------------------------------------------------------------------------
// TestDiscoverFiles - Transcript discovery
// ---------------------------------------------------------------------------

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", sampleTranscript)
	writeFile(t, dir, "nested/b.json", `{"history": []}`)
	writeFile(t, dir, "nested/c.YML", sampleTranscript)
	writeFile(t, dir, "notes.txt", "ignored")

	files, err := discoverFiles(dir, filepath.Join(dir, "out"))
	if err != nil {
		t.Fatalf("discoverFiles unexpected error: %v", err)
	}

	var got []string
	for _, f := range files {
		rel, _ := filepath.Rel(dir, f.OutputPath)
		got = append(got, filepath.ToSlash(rel))
	}
	sort.Strings(got)

	want := []string{"out/a.html", "out/nested/b.html", "out/nested/c.html"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("outputs = %v, want %v", got, want)
	}
}

func TestDiscoverFiles_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "chat.yml", sampleTranscript)

	files, err := discoverFiles(path, "")
	if err != nil {
		t.Fatalf("discoverFiles unexpected error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("got %d files, want 1", len(files))
	}
	if want := filepath.Join(dir, "chat.html"); files[0].OutputPath != want {
		t.Errorf("OutputPath = %q, want %q", files[0].OutputPath, want)
	}
}

func TestDiscoverFiles_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	txt := writeFile(t, dir, "notes.txt", "x")

	if _, err := discoverFiles(txt, ""); !errors.Is(err, ErrInvalidExtension) {
		t.Errorf("discoverFiles(.txt) error = %v, want ErrInvalidExtension", err)
	}
	if _, err := discoverFiles(filepath.Join(dir, "missing.yaml"), ""); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("discoverFiles(missing) error = %v, want os.ErrNotExist", err)
	}
}

// ---------------------------------------------------------------------------
// TestResolveOutputPath - Output path mapping
// ---------------------------------------------------------------------------

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		output  string
		baseDir string
		want    string
	}{
		{"beside input", "docs/chat.yaml", "", "", filepath.Join("docs", "chat.html")},
		{"explicit html file", "docs/chat.yaml", "out/page.html", "", "out/page.html"},
		{"output dir", "docs/chat.yaml", "out", "", filepath.Join("out", "chat.html")},
		{"mirrors tree", "docs/a/b/chat.json", "out", "docs", filepath.Join("out", "a", "b", "chat.html")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := resolveOutputPath(tt.input, tt.output, tt.baseDir); got != tt.want {
				t.Errorf("resolveOutputPath(%q, %q, %q) = %q, want %q", tt.input, tt.output, tt.baseDir, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRenderParams_Resolve - Mode and name precedence
// ---------------------------------------------------------------------------

func TestRenderParams_Resolve(t *testing.T) {
	t.Parallel()

	cfg := config.RenderConfig{Mode: "instruct", NameUser: "You", NameAssistant: "Assistant"}

	tests := []struct {
		name          string
		params        renderParams
		transcript    chathtml.Transcript
		wantMode      chathtml.Mode
		wantUser      string
		wantAssistant string
	}{
		{
			name:          "config defaults",
			params:        renderParams{cfg: cfg},
			wantMode:      chathtml.ModeInstruct,
			wantUser:      "You",
			wantAssistant: "Assistant",
		},
		{
			name:          "transcript overrides config",
			params:        renderParams{cfg: cfg},
			transcript:    chathtml.Transcript{Mode: "chat", NameUser: "Alice"},
			wantMode:      chathtml.ModeChat,
			wantUser:      "Alice",
			wantAssistant: "Assistant",
		},
		{
			name:          "flags override transcript",
			params:        renderParams{cfg: cfg, flagMode: "cai-chat", flagUser: "Bob", flagAssistant: "Eve"},
			transcript:    chathtml.Transcript{Mode: "chat", NameUser: "Alice", NameAssistant: "Bot"},
			wantMode:      chathtml.ModeCaiChat,
			wantUser:      "Bob",
			wantAssistant: "Eve",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mode, user, assistant := tt.params.resolve(&tt.transcript)
			if mode != tt.wantMode || user != tt.wantUser || assistant != tt.wantAssistant {
				t.Errorf("resolve() = (%v, %q, %q), want (%v, %q, %q)",
					mode, user, assistant, tt.wantMode, tt.wantUser, tt.wantAssistant)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRenderBatch - Worker pool behavior
// ---------------------------------------------------------------------------

// countingRenderer returns a fixed page and records history lengths.
type countingRenderer struct{}

func (countingRenderer) Render(_ context.Context, history []chathtml.Turn, nameUser, _ string, mode chathtml.Mode, _ bool) (string, error) {
	return "<p>" + mode.String() + ":" + nameUser + "</p>", nil
}

func TestRenderBatch_WritesEveryFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var files []FileToRender
	for _, name := range []string{"a", "b", "c", "d"} {
		in := writeFile(t, dir, name+".yaml", sampleTranscript)
		files = append(files, FileToRender{InputPath: in, OutputPath: filepath.Join(dir, "out", name+".html")})
	}

	results := renderBatch(context.Background(), countingRenderer{}, files, renderParams{}, 3)
	if len(results) != len(files) {
		t.Fatalf("got %d results, want %d", len(results), len(files))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Errorf("result %d error: %v", i, r.Err)
			continue
		}
		if got := readFile(t, files[i].OutputPath); got != "<p>chat:Alice</p>" {
			t.Errorf("output %d = %q, want %q", i, got, "<p>chat:Alice</p>")
		}
	}
}

func TestRenderBatch_CancelledContext(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeFile(t, dir, "a.yaml", sampleTranscript)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := renderBatch(ctx, countingRenderer{}, []FileToRender{{InputPath: in, OutputPath: filepath.Join(dir, "a.html")}}, renderParams{}, 1)
	if !errors.Is(results[0].Err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", results[0].Err)
	}
}

func TestRenderFile_BadTranscript(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeFile(t, dir, "bad.yaml", "history: [[\n")

	r := renderFile(context.Background(), countingRenderer{}, FileToRender{InputPath: in, OutputPath: filepath.Join(dir, "bad.html")}, renderParams{})
	if !errors.Is(r.Err, chathtml.ErrTranscript) {
		t.Errorf("error = %v, want ErrTranscript", r.Err)
	}
	if _, err := os.Stat(filepath.Join(dir, "bad.html")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("output written for failed transcript: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestRunRender - End-to-end through runMain
// ---------------------------------------------------------------------------

func TestRunRender_SingleTranscript(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeFile(t, dir, "chat.yaml", sampleTranscript)
	out := filepath.Join(dir, "page.html")

	env := newTestEnv("")
	code := runMain([]string{"chathtml", "render", in, "-o", out, "--cache-dir", filepath.Join(dir, "cache")}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d; stderr: %s", code, ExitSuccess, env.stderr.String())
	}

	html := readFile(t, out)
	for _, want := range []string{"<style>", "<strong>answer</strong>", "second answer", "first question"} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Index(html, "second answer") > strings.Index(html, "first question") {
		t.Error("newest turn should be rendered first")
	}
	if !strings.Contains(env.stdout.String(), "Created "+out) {
		t.Errorf("stdout = %q, want Created line", env.stdout.String())
	}
}

func TestRunRender_FlagsOverrideTranscript(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeFile(t, dir, "chat.yaml", sampleTranscript)
	out := filepath.Join(dir, "page.html")

	env := newTestEnv("")
	code := runMain([]string{"chathtml", "render", in, "-o", out, "-q", "--mode", "cai-chat", "--user", "Zed", "--cache-dir", filepath.Join(dir, "cache")}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d; stderr: %s", code, env.stderr.String())
	}

	html := readFile(t, out)
	if !strings.Contains(html, "Zed") {
		t.Error("output missing flag user name")
	}
	if strings.Contains(html, "Alice") {
		t.Error("transcript user name should be overridden")
	}
	if env.stdout.Len() != 0 {
		t.Errorf("quiet run printed %q", env.stdout.String())
	}
}

func TestRunRender_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := writeFile(t, dir, "good.yaml", sampleTranscript)
	writeFile(t, dir, "batch/ok.yaml", sampleTranscript)
	writeFile(t, dir, "batch/broken.yaml", "history: {user: 1\n")
	cache := filepath.Join(dir, "cache")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no input", []string{"render"}, ExitIO},
		{"unknown mode", []string{"render", good, "--mode", "novel"}, ExitUsage},
		{"bad workers", []string{"render", good, "-w", "-1"}, ExitUsage},
		{"unknown flag", []string{"render", good, "--nope"}, ExitUsage},
		{"missing file", []string{"render", filepath.Join(dir, "missing.yaml")}, ExitIO},
		{"empty dir", []string{"render", t.TempDir()}, ExitIO},
		{"partial batch", []string{"render", filepath.Join(dir, "batch"), "--cache-dir", cache}, ExitGeneral},
		{"missing config", []string{"render", good, "--config", filepath.Join(dir, "nope.yaml")}, ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv("")
			if got := runMain(append([]string{"chathtml"}, tt.args...), env.Environment); got != tt.want {
				t.Errorf("exit code = %d, want %d; stderr: %s", got, tt.want, env.stderr.String())
			}
		})
	}
}

func TestRunRender_AbsolutePaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeFile(t, dir, "chats/pic.yaml", "mode: chat\nhistory:\n  - [\"look\", \"![cat](img/cat.png)\"]\n")
	out := filepath.Join(dir, "site", "pic.html")

	env := newTestEnv("")
	code := runMain([]string{"chathtml", "render", in, "-o", out, "-q", "--absolute-paths", "--cache-dir", filepath.Join(dir, "cache")}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d; stderr: %s", code, env.stderr.String())
	}

	html := readFile(t, out)
	if !strings.Contains(html, `src="file://`) || !strings.Contains(html, "/chats/img/cat.png") {
		t.Errorf("relative image not resolved against transcript dir: %s", html)
	}
}

func TestRunRender_HelpFlag(t *testing.T) {
	t.Parallel()

	env := newTestEnv("")
	if code := runMain([]string{"chathtml", "render", "--help"}, env.Environment); code != ExitSuccess {
		t.Errorf("exit code = %d, want %d", code, ExitSuccess)
	}
	if !strings.Contains(env.stderr.String(), "Usage: chathtml render") {
		t.Errorf("stderr = %q, want render usage", env.stderr.String())
	}
}
