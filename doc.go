// Package chathtml renders language model conversations as styled HTML.
//
// # Quick Start
//
// Create a renderer and render a history, most recent turn first:
//
//	r, err := chathtml.NewRenderer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	html, err := r.Render(ctx, []chathtml.Turn{
//	    {User: "Hello", Assistant: "Hi there!"},
//	}, "You", "Bot", chathtml.ModeChat, false)
//
// The result is a single fragment: an inline <style> block followed by the
// conversation container, ready to inject into a page.
//
// # Rendering Pipeline
//
// Every message goes through the same stages:
//
//  1. \begin{blockquote} spans become "> " quoted lines
//  2. \begin{code} and \end{code} become fenced code blocks
//  3. blank lines are doubled outside code so each line is a paragraph,
//     and an unterminated fence is closed
//  4. Markdown to HTML via Goldmark (GFM, optional Chroma highlighting)
//
// # Modes
//
// ModeCaiChat shows avatars and names, ModeChat shows bubbles and
// ModeInstruct shows alternating panels. ModeUnknown renders nothing and
// is not an error.
//
// # Thumbnails
//
// Thumbnail returns a 350px wide PNG rendition of an image, cached in the
// cache directory and rebuilt only when the source modification time
// changes. Avatars for ModeCaiChat are read from the same directory as
// pfp_character.png and pfp_me.png.
//
// # Configuration
//
//	r, err := chathtml.NewRenderer(
//	    chathtml.WithCacheDir("/var/cache/chat"),
//	    chathtml.WithAssetPath("/path/to/custom/assets"),
//	    chathtml.WithHighlighting("github"),
//	)
//
// Custom assets override the built-in styles/<name>.css and
// templates/<name>.html files; missing ones fall back to the defaults.
package chathtml
