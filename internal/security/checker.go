// Package security scans rendered HTML for constructs that can execute
// script or alter the hosting document.
//
// The checker is a backstop behind the allow-list sanitizer. It normalizes
// the HTML to undo common encoding evasions and reports every named
// pattern that matches. Any match makes the content unacceptable.
package security

import (
	"errors"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// ErrDangerousContent is wrapped by every *Error.
var ErrDangerousContent = errors.New("dangerous content detected")

// maxDecodeRounds bounds repeated entity decoding ("&amp;lt;" -> "<").
const maxDecodeRounds = 3

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	tagSpan       = regexp.MustCompile(`<[^>]*(?:>|$)`)
)

// Error lists the patterns that matched.
type Error struct {
	Patterns []string
}

func (e *Error) Error() string {
	return ErrDangerousContent.Error() + ": " + strings.Join(e.Patterns, ", ")
}

func (e *Error) Unwrap() error {
	return ErrDangerousContent
}

// Options controls a single Check call.
type Options struct {
	// AllowScriptTag skips the check entirely.
	AllowScriptTag bool
	// Patterns limits the scan to the named patterns. Empty scans all.
	Patterns []string
	// Logger receives the skip warning and match reports. Nil discards.
	Logger *slog.Logger
}

// Check returns a *Error naming every dangerous pattern found in
// htmlContent, or nil.
func Check(htmlContent string, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if opts.AllowScriptTag {
		logger.Warn("security check skipped", "reason", "insecure script tags allowed")
		return nil
	}

	matched := match(htmlContent, opts.Patterns)
	if len(matched) == 0 {
		return nil
	}
	logger.Warn("dangerous content detected", "patterns", matched)
	return &Error{Patterns: matched}
}

// Matches returns the names of all patterns found in htmlContent, in
// table order. Each view is tested normalized and compacted, with all
// whitespace inside tags removed. Script tags and template constructs
// are searched in the whole decoded text, so entity-encoded variants
// fail closed; every other pattern only sees real tags.
func Matches(htmlContent string) []string {
	return match(htmlContent, nil)
}

func match(htmlContent string, only []string) []string {
	text := Normalize(htmlContent)
	textCompacted := compactTags(text)
	markup := Normalize(markupView(htmlContent))
	markupCompacted := compactTags(markup)

	var matched []string
	for _, p := range patterns {
		if len(only) > 0 && !slices.Contains(only, p.name) {
			continue
		}
		normalized, compacted := markup, markupCompacted
		if p.text {
			normalized, compacted = text, textCompacted
		}
		if p.re.MatchString(normalized) || p.re.MatchString(compacted) {
			matched = append(matched, p.name)
		}
	}
	return matched
}

// markupView keeps the raw source of every tag plus the content of
// style and script elements. Other text, comments and doctypes become a
// single space.
func markupView(s string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	rawText := false
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return b.String()
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			b.Write(z.Raw())
			name, _ := z.TagName()
			rawText = tt == html.StartTagToken && rawTextElements[string(name)]
		case html.TextToken:
			if rawText {
				b.Write(z.Raw())
			} else {
				b.WriteByte(' ')
			}
			rawText = false
		default:
			b.WriteByte(' ')
			rawText = false
		}
	}
}

var rawTextElements = map[string]bool{"style": true, "script": true}

// Normalize decodes HTML entities, drops control and invisible format
// characters, applies NFKC folding and collapses whitespace runs.
func Normalize(s string) string {
	for range maxDecodeRounds {
		decoded := html.UnescapeString(s)
		if decoded == s {
			break
		}
		s = decoded
	}

	s = strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r' || r == '\f':
			return ' '
		case unicode.IsControl(r), unicode.Is(unicode.Cf, r):
			return -1
		}
		return r
	}, s)

	s = norm.NFKC.String(s)
	return whitespaceRun.ReplaceAllString(s, " ")
}

// compactTags removes whitespace inside every "<...>" span so that
// "< s c r i p t >" reads as "<script>".
func compactTags(s string) string {
	return tagSpan.ReplaceAllStringFunc(s, func(tag string) string {
		return strings.Join(strings.Fields(tag), "")
	})
}
