package markup

import "strings"

// StyleBlock wraps css in a <style> element. Closing-tag sequences are
// escaped so stylesheet content cannot end the block early.
func StyleBlock(css string) string {
	return "<style>" + sanitizeCSS(css) + "</style>"
}

// sanitizeCSS escapes "</" so a stylesheet cannot close its <style> element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
