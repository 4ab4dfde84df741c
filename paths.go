package chathtml

import (
	"fmt"

	"github.com/alnah/go-chathtml/internal/chat"
	"github.com/alnah/go-chathtml/internal/markup"
)

// RewriteRelativePaths resolves relative image and link references in
// rendered HTML against sourceDir, turning them into file:// URLs so the
// page can be opened from another directory. Avatar URLs are left as is.
func RewriteRelativePaths(html, sourceDir string) (string, error) {
	out, err := markup.RewriteRelativePaths(html, sourceDir, chat.AvatarURLPrefix)
	if err != nil {
		return "", fmt.Errorf("%w: rewriting paths: %v", ErrHTMLConversion, err)
	}
	return out, nil
}
