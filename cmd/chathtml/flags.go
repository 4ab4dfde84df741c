package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config      string
	quiet       bool
	verbose     bool
	cacheDir    string
	assetPath   string
	noHighlight bool
	logFormat   string
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common        commonFlags
	output        string
	mode          string
	nameUser      string
	nameAssistant string
	resetCache    bool
	workers       int
	watch         bool
	absolutePaths bool
}

// documentFlags holds flags for the readable and thread commands.
type documentFlags struct {
	common commonFlags
	output string
}

// avatarFlags holds flags for the avatar command.
type avatarFlags struct {
	common commonFlags
	role   string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
	fs.StringVar(&f.cacheDir, "cache-dir", "", "thumbnail and avatar directory")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with custom styles/ and templates/")
	fs.BoolVar(&f.noHighlight, "no-highlight", false, "disable syntax highlighting")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text, json")
}

// newFlagSet creates a FlagSet that reports errors instead of exiting.
func newFlagSet(name string, usage func(io.Writer), stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { usage(stderr) }
	return fs
}

// parseWith parses args, wrapping failures so they map to a usage exit code.
func parseWith(fs *flag.FlagSet, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, &flagError{err: err}
	}
	return fs.Args(), nil
}

// defineRenderFlags registers the render command flags on fs.
func defineRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVarP(&f.mode, "mode", "m", "", "render mode: cai-chat, chat, instruct")
	fs.StringVar(&f.nameUser, "user", "", "user display name")
	fs.StringVar(&f.nameAssistant, "assistant", "", "assistant display name")
	fs.BoolVar(&f.resetCache, "reset-cache", false, "bust the user avatar browser cache")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.watch, "watch", false, "re-render transcripts when they change")
	fs.BoolVar(&f.absolutePaths, "absolute-paths", false, "resolve relative image and link paths against the transcript directory")
	addCommonFlags(fs, &f.common)
}

// defineDocumentFlags registers the readable and thread command flags on fs.
func defineDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output file (default stdout)")
	addCommonFlags(fs, &f.common)
}

// defineAvatarFlags registers the avatar command flags on fs.
func defineAvatarFlags(fs *flag.FlagSet, f *avatarFlags) {
	fs.StringVar(&f.role, "role", "", "avatar role: character, me")
	addCommonFlags(fs, &f.common)
}

func parseRenderFlags(args []string, stderr io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newFlagSet("render", printRenderUsage, stderr)
	defineRenderFlags(fs, f)

	positional, err := parseWith(fs, args)
	return f, positional, err
}

func parseDocumentFlags(name string, usage func(io.Writer), args []string, stderr io.Writer) (*documentFlags, []string, error) {
	f := &documentFlags{}
	fs := newFlagSet(name, usage, stderr)
	defineDocumentFlags(fs, f)

	positional, err := parseWith(fs, args)
	return f, positional, err
}

func parseCommonFlags(name string, usage func(io.Writer), args []string, stderr io.Writer) (*commonFlags, []string, error) {
	f := &commonFlags{}
	fs := newFlagSet(name, usage, stderr)
	addCommonFlags(fs, f)

	positional, err := parseWith(fs, args)
	return f, positional, err
}

func parseAvatarFlags(args []string, stderr io.Writer) (*avatarFlags, []string, error) {
	f := &avatarFlags{}
	fs := newFlagSet("avatar", printAvatarUsage, stderr)
	defineAvatarFlags(fs, f)

	positional, err := parseWith(fs, args)
	return f, positional, err
}
