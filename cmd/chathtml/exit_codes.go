package main

import (
	"errors"
	"os"

	"github.com/alnah/go-chathtml"
	"github.com/alnah/go-chathtml/internal/config"
	flag "github.com/spf13/pflag"
)

// Exit codes for the chathtml CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitImage   = 4 // Image decode or thumbnail errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Image errors (exit 4)
	if errors.Is(err, chathtml.ErrSourceImage) ||
		errors.Is(err, chathtml.ErrWriteThumbnail) {
		return ExitImage
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, chathtml.ErrStyleNotFound) ||
		errors.Is(err, chathtml.ErrTemplateNotFound) ||
		errors.Is(err, chathtml.ErrInvalidAssetPath) ||
		errors.Is(err, chathtml.ErrTemplate) ||
		errors.Is(err, chathtml.ErrTranscript) ||
		errors.Is(err, chathtml.ErrInvalidAvatarRole) ||
		errors.Is(err, ErrUnknownMode) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrMissingArgument) ||
		errors.Is(err, ErrUnsupportedShell) ||
		isFlagError(err) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, chathtml.ErrCacheDir) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	return ExitGeneral
}

// flagError marks pflag parse failures.
type flagError struct{ err error }

func (e *flagError) Error() string { return e.err.Error() }
func (e *flagError) Unwrap() error { return e.err }

func isFlagError(err error) bool {
	var fe *flagError
	return errors.As(err, &fe) && !errors.Is(err, flag.ErrHelp)
}
