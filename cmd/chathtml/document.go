package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alnah/go-chathtml/internal/fileutil"
	"github.com/alnah/go-chathtml/internal/hints"
)

// documentKind selects what runDocument produces from its input text.
type documentKind int

const (
	documentReadable documentKind = iota
	documentThread
)

// stdinArg names standard input as the document source.
const stdinArg = "-"

// runDocument renders a text file, or stdin, as a readable page or a thread.
func runDocument(ctx context.Context, args []string, env *Environment, kind documentKind) error {
	name, usage := "readable", printReadableUsage
	if kind == documentThread {
		name, usage = "thread", printThreadUsage
	}

	flags, positional, err := parseDocumentFlags(name, usage, args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return fmt.Errorf("%w: input file or - for stdin required", ErrNoInput)
	}

	text, err := readInput(positional[0], env.Stdin)
	if err != nil {
		return err
	}

	s, err := setup(&flags.common, env)
	if err != nil {
		return err
	}

	var html string
	switch kind {
	case documentThread:
		html = s.renderer.RenderThread(text)
	default:
		html, err = s.renderer.RenderReadable(ctx, text)
		if err != nil {
			return err
		}
	}

	if err := writeOutput(flags.output, html, env.Stdout); err != nil {
		return err
	}
	if flags.output != "" && !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", flags.output)
	}
	return nil
}

// readInput reads path, or stdin when path is "-".
func readInput(path string, stdin io.Reader) (string, error) {
	if path == stdinArg {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("%w: stdin: %v", ErrReadInput, err)
		}
		return string(data), nil
	}

	// #nosec G304 -- path is a user-supplied CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return string(data), nil
}

// writeOutput writes html to path atomically, or to stdout when path is empty.
func writeOutput(path, html string, stdout io.Writer) error {
	if path == "" {
		if _, err := io.WriteString(stdout, html); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("%w: creating output directory: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}
	if err := fileutil.WriteFileAtomic(path, []byte(html), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}
