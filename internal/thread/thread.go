// Package thread renders plain-text imageboard thread dumps as HTML.
//
// Input is a sequence of lines. A line starting with "--- " opens a post and
// carries the post number as its second field; "-----" lines separate
// threads and are dropped. Every other line belongs to the current post.
package thread

import (
	"regexp"
	"strings"

	"github.com/alnah/go-chathtml/internal/markup"
)

const (
	headerPrefix = "--- "
	separator    = "-----"
)

var (
	quotePattern     = regexp.MustCompile(`(&gt;&gt;[0-9]*)`)
	greentextPattern = regexp.MustCompile(`^(&gt;(.*?)(<br>|</div>))`)
	messagePattern   = regexp.MustCompile(`^<blockquote class="message">(&gt;(.*?)(<br>|</div>))`)
)

// Post is one parsed thread entry.
type Post struct {
	Number string
	// Body holds the raw post lines, each terminated by "\n".
	Body string
}

// Parse splits raw into posts. Text before the first header forms a post
// with an empty number.
func Parse(raw string) []Post {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.TrimSuffix(raw, "\n")
	if raw == "" {
		return nil
	}

	var (
		posts   []Post
		current *Post
		body    strings.Builder
	)
	flush := func() {
		if current != nil {
			current.Body = body.String()
			posts = append(posts, *current)
		}
		body.Reset()
	}

	for _, line := range strings.Split(raw, "\n") {
		switch {
		case line == separator:
			continue
		case strings.HasPrefix(line, headerPrefix):
			flush()
			current = &Post{Number: postNumber(line)}
		default:
			if current == nil {
				current = &Post{}
			}
			body.WriteString(line)
			body.WriteByte('\n')
		}
	}
	flush()

	return posts
}

// postNumber returns the second space-separated field of a header line.
func postNumber(header string) string {
	fields := strings.Split(header, " ")
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}

// Render converts raw thread text to an HTML document styled with css.
// The first post is the original post, the rest are replies.
func Render(raw, css string) string {
	var sb strings.Builder
	sb.WriteString(markup.StyleBlock(css))
	sb.WriteString(`<div id="parent"><div id="container">`)

	for i, p := range Parse(raw) {
		class := "reply"
		if i == 0 {
			class = "op"
		}
		sb.WriteString(`<div class="` + class + `">`)
		sb.WriteString(renderPost(p))
		sb.WriteString("</div>\n")
	}
	sb.WriteString("</div></div>")

	return markGreentext(sb.String())
}

// renderPost escapes the body, marks quote references and turns newlines
// into line breaks.
func renderPost(p Post) string {
	src := strings.ReplaceAll(p.Body, ">", "&gt;")
	src = quotePattern.ReplaceAllString(src, `<span class="quote">${1}</span>`)
	src = strings.ReplaceAll(src, "\n", "<br>\n")

	return `<span class="name">Anonymous </span> <span class="number">No.` + p.Number + "</span>\n" +
		`<blockquote class="message">` + src + "\n"
}

// markGreentext wraps each output line that begins with an escaped ">",
// directly or right after the message opener, in a greentext span.
func markGreentext(doc string) string {
	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		line = greentextPattern.ReplaceAllString(line, `<span class="greentext">${1}</span>`)
		line = messagePattern.ReplaceAllString(line, `<blockquote class="message"><span class="greentext">${1}</span>`)
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
