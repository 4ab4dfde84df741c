package main

// Notes:
// - exitCodeFor: we test the sentinel errors of the library, config and CLI,
//   plus wrapped errors to verify the errors.Is chain.
// - Exit code constants: we verify Unix conventions (0=success, 1=general,
//   2=usage) and custom codes below 126.

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/alnah/go-chathtml"
	"github.com/alnah/go-chathtml/internal/config"
	flag "github.com/spf13/pflag"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		// Image errors (exit 4)
		{"source image", chathtml.ErrSourceImage, ExitImage},
		{"write thumbnail", chathtml.ErrWriteThumbnail, ExitImage},
		{"wrapped source image", fmt.Errorf("avatar: %w", chathtml.ErrSourceImage), ExitImage},

		// Usage errors (exit 2)
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"invalid value", config.ErrInvalidValue, ExitUsage},
		{"style not found", chathtml.ErrStyleNotFound, ExitUsage},
		{"transcript", chathtml.ErrTranscript, ExitUsage},
		{"avatar role", chathtml.ErrInvalidAvatarRole, ExitUsage},
		{"unknown mode", ErrUnknownMode, ExitUsage},
		{"worker count", ErrInvalidWorkerCount, ExitUsage},
		{"extension", ErrInvalidExtension, ExitUsage},
		{"missing argument", ErrMissingArgument, ExitUsage},
		{"unsupported shell", ErrUnsupportedShell, ExitUsage},
		{"flag error", &flagError{err: errors.New("unknown flag: --nope")}, ExitUsage},

		// I/O errors (exit 3)
		{"not exist", os.ErrNotExist, ExitIO},
		{"permission", os.ErrPermission, ExitIO},
		{"cache dir", chathtml.ErrCacheDir, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"read input", ErrReadInput, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"wrapped not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// General
		{"batch failed", ErrBatchFailed, ExitGeneral},
		{"unknown error", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Errorf("standard codes = %d/%d/%d, want 0/1/2", ExitSuccess, ExitGeneral, ExitUsage)
	}
	for _, code := range []int{ExitIO, ExitImage} {
		if code <= ExitUsage || code >= 126 {
			t.Errorf("custom exit code %d outside (2, 126)", code)
		}
	}
}

func TestIsFlagError_HelpIsNotUsageError(t *testing.T) {
	t.Parallel()

	if isFlagError(&flagError{err: flag.ErrHelp}) {
		t.Error("isFlagError(ErrHelp) = true, want false")
	}
}
