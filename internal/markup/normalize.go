package markup

import (
	"regexp"
	"strings"
)

// Custom markers emitted by models trained on LaTeX-flavored transcripts.
const (
	beginBlockquote = `\begin{blockquote}`
	endBlockquote   = `\end{blockquote}`
	beginCode       = `\begin{code}`
	endCode         = `\end{code}`
)

// Fence is the markdown code fence delimiter.
const Fence = "```"

// Precompiled regex patterns.
var (
	// Non-greedy, spans newlines
	blockquotePattern = regexp.MustCompile(`(?s)\\begin\{blockquote\}(.*?)\\end\{blockquote\}`)

	// A fence glued to the preceding character on the same line
	gluedFencePattern = regexp.MustCompile("(.)```")
)

// lineState tracks whether a line sits inside a fenced code block.
type lineState int

const (
	inText lineState = iota
	inCode
)

// classifiedLine pairs a line with the state it was emitted in.
type classifiedLine struct {
	text  string
	state lineState
}

// ToMarkdown converts custom quote and code markers to markdown and forces
// paragraph breaks between lines outside code fences.
// Order matters: blockquotes first, then fences, then blank-line spacing.
func ToMarkdown(text string) string {
	text = expandBlockquotes(text)
	text = translateCodeMarkers(text)
	return joinLines(classifyLines(strings.Split(text, "\n")))
}

// expandBlockquotes strips blockquote markers and prefixes every line
// break inside the quoted span with "> ".
func expandBlockquotes(text string) string {
	return blockquotePattern.ReplaceAllStringFunc(text, func(m string) string {
		m = strings.ReplaceAll(m, "\n", "\n> ")
		m = strings.ReplaceAll(m, beginBlockquote, "")
		return strings.ReplaceAll(m, endBlockquote, "")
	})
}

// translateCodeMarkers replaces code markers with fences and makes sure
// every fence starts its own line.
func translateCodeMarkers(text string) string {
	text = strings.ReplaceAll(text, beginCode, Fence)
	text = strings.ReplaceAll(text, endCode, Fence)
	return gluedFencePattern.ReplaceAllString(text, "$1\n"+Fence)
}

// classifyLines runs the fence state machine over lines. The returned state
// is the one left open after the last line.
func classifyLines(lines []string) ([]classifiedLine, lineState) {
	out := make([]classifiedLine, 0, len(lines))
	state := inText

	for _, line := range lines {
		if isFenceLine(line) {
			state = toggle(state)
		}
		out = append(out, classifiedLine{text: line, state: state})
	}

	return out, state
}

// joinLines keeps code lines verbatim and separates text lines with a blank
// line. An open fence at the end is closed.
func joinLines(lines []classifiedLine, final lineState) string {
	var sb strings.Builder

	for _, l := range lines {
		sb.WriteString(l.text)
		if l.state == inCode {
			sb.WriteString("\n")
		} else {
			sb.WriteString("\n\n")
		}
	}

	if final == inCode {
		sb.WriteString(Fence)
	}

	return strings.TrimSpace(sb.String())
}

// isFenceLine reports whether a line opens or closes a fence.
// Only spaces are ignored as indentation, tabs are not.
func isFenceLine(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " "), Fence)
}

func toggle(s lineState) lineState {
	if s == inCode {
		return inText
	}
	return inCode
}
