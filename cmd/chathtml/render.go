package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/alnah/go-chathtml"
	"github.com/alnah/go-chathtml/internal/config"
	"github.com/alnah/go-chathtml/internal/fileutil"
	"github.com/alnah/go-chathtml/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrReadInput        = errors.New("failed to read input")
	ErrWriteOutput      = errors.New("failed to write output")
	ErrUnknownMode      = errors.New("unknown render mode")
	ErrInvalidExtension = errors.New("transcript must have .yaml, .yml or .json extension")
	ErrMissingArgument  = errors.New("missing argument")
	ErrBatchFailed      = errors.New("some transcripts failed to render")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// transcriptExtensions lists the file types discovered as transcripts.
var transcriptExtensions = []string{".yaml", ".yml", ".json"}

// ConversationRenderer is the rendering contract used by the batch.
type ConversationRenderer interface {
	Render(ctx context.Context, history []chathtml.Turn, nameUser, nameAssistant string, mode chathtml.Mode, resetCache bool) (string, error)
}

// Compile-time interface implementation check.
var _ ConversationRenderer = (*chathtml.Renderer)(nil)

// FileToRender represents a single transcript to process.
type FileToRender struct {
	InputPath  string
	OutputPath string
}

// RenderResult holds the outcome of a single render.
type RenderResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// renderParams resolves mode and names per transcript.
// Precedence: flag > transcript > config.
type renderParams struct {
	flagMode      string
	flagUser      string
	flagAssistant string
	cfg           config.RenderConfig
	resetCache    bool
	absolutePaths bool
}

func (p renderParams) resolve(tr *chathtml.Transcript) (mode chathtml.Mode, nameUser, nameAssistant string) {
	mode = chathtml.ParseMode(firstNonEmpty(p.flagMode, tr.Mode, p.cfg.Mode))
	nameUser = firstNonEmpty(p.flagUser, tr.NameUser, p.cfg.NameUser)
	nameAssistant = firstNonEmpty(p.flagAssistant, tr.NameAssistant, p.cfg.NameAssistant)
	return mode, nameUser, nameAssistant
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// runRender orchestrates transcript discovery, batch rendering and watching.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if flags.mode != "" && chathtml.ParseMode(flags.mode) == chathtml.ModeUnknown {
		return fmt.Errorf("%w: %q%s", ErrUnknownMode, flags.mode, hints.ForUnknownMode(chathtml.ModeNames()))
	}
	if len(positional) == 0 {
		return fmt.Errorf("%w: transcript file or directory required", ErrNoInput)
	}
	inputPath := positional[0]

	s, err := setup(&flags.common, env)
	if err != nil {
		return err
	}
	configureMaxProcs(s.log)

	params := renderParams{
		flagMode:      flags.mode,
		flagUser:      flags.nameUser,
		flagAssistant: flags.nameAssistant,
		cfg:           s.cfg.Render,
		resetCache:    flags.resetCache || s.cfg.Render.ResetCache,
		absolutePaths: flags.absolutePaths,
	}

	files, err := discoverFiles(inputPath, flags.output)
	if err != nil {
		return fmt.Errorf("discovering transcripts: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no transcripts found in %s", ErrNoInput, inputPath)
	}

	workers := resolveWorkers(flags.workers)
	s.log.WithField("workers", workers).WithField("files", len(files)).Debug("rendering batch")

	results := renderBatch(ctx, s.renderer, files, params, workers)
	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)

	if flags.watch {
		w := &watcher{
			input:    inputPath,
			output:   flags.output,
			renderer: s.renderer,
			params:   params,
			quiet:    flags.common.quiet,
			verbose:  flags.common.verbose,
			env:      env,
			log:      s.log,
		}
		return w.run(ctx)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrBatchFailed, failed, len(results))
	}
	return nil
}

// renderBatch processes files concurrently with a bounded worker pool.
func renderBatch(ctx context.Context, r ConversationRenderer, files []FileToRender, params renderParams, workers int) []RenderResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(workers, len(files))

	results := make([]RenderResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = RenderResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = renderFile(ctx, r, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// renderFile renders a single transcript and writes the HTML output.
func renderFile(ctx context.Context, r ConversationRenderer, f FileToRender, params renderParams) RenderResult {
	start := time.Now()
	result := RenderResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) RenderResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	tr, err := chathtml.LoadTranscript(f.InputPath)
	if err != nil {
		return fail(fmt.Errorf("%w%s", err, hints.ForTranscript()))
	}

	mode, nameUser, nameAssistant := params.resolve(tr)
	html, err := r.Render(ctx, tr.History, nameUser, nameAssistant, mode, params.resetCache)
	if err != nil {
		return fail(err)
	}
	if params.absolutePaths {
		html, err = chathtml.RewriteRelativePaths(html, filepath.Dir(f.InputPath))
		if err != nil {
			return fail(err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return fail(fmt.Errorf("%w: creating output directory: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory()))
	}
	if err := fileutil.WriteFileAtomic(f.OutputPath, []byte(html), filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}

	result.Duration = time.Since(start)
	return result
}

// discoverFiles finds all transcripts under inputPath.
func discoverFiles(inputPath, output string) ([]FileToRender, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !isTranscript(inputPath) {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(inputPath))
		}
		return []FileToRender{{InputPath: inputPath, OutputPath: resolveOutputPath(inputPath, output, "")}}, nil
	}

	var files []FileToRender
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !isTranscript(path) {
			return nil
		}
		files = append(files, FileToRender{InputPath: path, OutputPath: resolveOutputPath(path, output, inputPath)})
		return nil
	})

	return files, err
}

// isTranscript reports whether path has a transcript extension.
func isTranscript(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range transcriptExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// resolveOutputPath determines the HTML output path for a transcript.
// An output ending in .html is used as-is; otherwise it is a directory
// mirroring the input tree.
func resolveOutputPath(inputPath, output, baseInputDir string) string {
	// ReplaceExt only fails on an invalid extension, and "html" is valid.
	htmlName, _ := fileutil.ReplaceExt(filepath.Base(inputPath), "html")

	if output == "" {
		return filepath.Join(filepath.Dir(inputPath), htmlName)
	}

	if strings.HasSuffix(output, ".html") {
		return output
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(output, filepath.Dir(relPath), htmlName)
		}
	}

	return filepath.Join(output, htmlName)
}

// ResultSummary holds the count of succeeded and failed renders.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed renders.
func countResults(results []RenderResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs render results and returns the failure count.
func printResults(results []RenderResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
