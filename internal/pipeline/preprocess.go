package pipeline

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// HTML comments, including one left open until end of input
	htmlComment = regexp.MustCompile(`(?s)<!--(.*?)(?:-->|$)`)

	// Content already wrapped as an HTML document or starting as a paragraph
	htmlDocument  = regexp.MustCompile(`(?s)^<html>.*</html>$`)
	htmlParagraph = regexp.MustCompile(`(?s)^<p>.*</p>`)
)

// commentPlaceholder is the visible replacement for a stripped comment.
const commentPlaceholder = "(html comment removed: %s)"

// StripComments replaces every HTML comment with a visible placeholder
// carrying its escaped body. Comments are never dropped silently, and an
// unterminated comment runs to the end of the input.
func StripComments(content string) string {
	if !strings.Contains(content, "<!--") {
		return content
	}
	return htmlComment.ReplaceAllStringFunc(content, func(match string) string {
		body := htmlComment.FindStringSubmatch(match)[1]
		return strings.Replace(commentPlaceholder, "%s", html.EscapeString(body), 1)
	})
}

// IsHTML reports whether content should skip markdown conversion. It is
// HTML when wrapped in <html>...</html>, or when it starts with <p> and a
// closing </p> follows.
func IsHTML(content string) bool {
	return htmlDocument.MatchString(content) || htmlParagraph.MatchString(content)
}

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}
