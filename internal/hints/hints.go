// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"

	"github.com/alnah/go-chathtml/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForCacheDir returns hints for cache directory creation or write errors.
func ForCacheDir(dir string) string {
	hints := []string{"check " + dir + " is writable or use --cache-dir"}
	if IsInContainer() {
		hints = append(hints, "mount a writable volume for the cache in Docker")
	}
	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (inside go-chathtml/) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/go-chathtml/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForUnknownMode returns hints when a render mode is not recognized.
func ForUnknownMode(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("use --mode with one of: " + strings.Join(available, ", "))
}

// ForImage returns hints for source image errors.
func ForImage() string {
	return format("supported formats: PNG, JPEG, GIF, BMP, TIFF")
}

// ForTranscript returns hints for transcript files that fail to parse.
func ForTranscript() string {
	return format("expected YAML or JSON with a history list of {user, assistant} entries")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
