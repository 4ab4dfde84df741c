// Package markup turns raw conversation text into HTML fragments.
//
// Rendering happens in two stages:
//   - ToMarkdown rewrites the custom \begin{blockquote} and \begin{code}
//     markers into markdown and normalizes blank lines outside code fences
//   - Converter renders the normalized markdown via Goldmark, optionally
//     with Chroma syntax highlighting for fenced code
//
// Both stages are free of side effects. Malformed markers never fail:
// unterminated fences are closed and unmatched blockquote markers pass
// through as literal text.
package markup
