package pipeline

import (
	"regexp"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"mvdan.cc/xurls/v2"

	"github.com/openhive-network/denser-sub002/account"
	"github.com/openhive-network/denser-sub002/internal/htmldom"
)

var (
	// Bare URLs with a scheme; only http(s) ones are linked
	urlPattern = xurls.Strict()

	// #tag at the start of text or after whitespace
	hashtagPattern = regexp.MustCompile(`(?i)(^|\s)(#[-a-z\d]+)`)
	numericHashtag = regexp.MustCompile(`^#\d+$`)

	// @account not preceded by a word or URL character
	mentionPattern = regexp.MustCompile(`(?i)(^|[^a-zA-Z0-9_!#$%&*@＠/])([@＠])([a-z][-.a-z\d]+[a-z\d])`)

	// URLs shown as images instead of links
	imageURL = regexp.MustCompile(`(?i)\.(?:jpe?g|png|gif|webp)(?:\?\S*)?$`)

	// Download links never linked automatically
	skippedURL = regexp.MustCompile(`(?i)\.(?:zip|exe)$`)
)

// token is one replaced span of a text node.
type token struct {
	start, end int
	node       *html.Node
}

// linkify splits text into text nodes and generated elements. It returns
// nil when nothing in text was linked.
func (p *domProcessor) linkify(text string) []*html.Node {
	var tokens []token

	urlSpans := urlPattern.FindAllStringIndex(text, -1)
	for _, span := range urlSpans {
		if node := p.urlNode(text[span[0]:span[1]]); node != nil {
			tokens = append(tokens, token{span[0], span[1], node})
		}
	}

	// Tags and mentions are only looked for between URLs.
	gapStart := 0
	for _, span := range append(urlSpans, []int{len(text), len(text)}) {
		if span[0] > gapStart {
			tokens = append(tokens, p.tagTokens(text, gapStart, span[0])...)
		}
		gapStart = span[1]
	}

	if len(tokens) == 0 {
		return nil
	}
	slices.SortFunc(tokens, func(a, b token) int { return a.start - b.start })

	var nodes []*html.Node
	pos := 0
	for _, tok := range tokens {
		if tok.start < pos {
			continue
		}
		if tok.start > pos {
			nodes = append(nodes, htmldom.NewText(text[pos:tok.start]))
		}
		nodes = append(nodes, tok.node)
		pos = tok.end
	}
	if pos < len(text) {
		nodes = append(nodes, htmldom.NewText(text[pos:]))
	}
	return nodes
}

// tagTokens finds hashtags and mentions in text[from:to].
func (p *domProcessor) tagTokens(text string, from, to int) []token {
	segment := text[from:to]
	var tokens []token

	for _, m := range hashtagPattern.FindAllStringSubmatchIndex(segment, -1) {
		tag := segment[m[4]:m[5]]
		if numericHashtag.MatchString(tag) {
			continue
		}
		tokens = append(tokens, token{from + m[4], from + m[5], p.hashtagNode(tag)})
	}

	for _, m := range mentionPattern.FindAllStringSubmatchIndex(segment, -1) {
		end := m[7]
		if end < len(segment) && segment[end] == '-' {
			continue
		}
		name := strings.ToLower(segment[m[6]:m[7]])
		if !account.IsValid(name) {
			continue
		}
		tokens = append(tokens, token{from + m[4], from + end, p.mentionNode(segment[m[4]:end], name)})
	}
	return tokens
}

func (p *domProcessor) hashtagNode(tag string) *html.Node {
	value := strings.ToLower(strings.TrimPrefix(tag, "#"))
	p.add("hashtags", &p.res.Hashtags, value)

	href := "/trending/" + value
	if p.opts.HashtagURL != nil {
		href = p.opts.HashtagURL(value)
	}
	a := htmldom.NewElement(atom.A, html.Attribute{Key: "href", Val: href})
	a.AppendChild(htmldom.NewText(tag))
	return a
}

func (p *domProcessor) mentionNode(display, name string) *html.Node {
	p.add("usertags", &p.res.Usertags, name)

	href := "/@" + name
	if p.opts.UsertagURL != nil {
		href = p.opts.UsertagURL(name)
	}
	a := htmldom.NewElement(atom.A, html.Attribute{Key: "href", Val: href})
	a.AppendChild(htmldom.NewText(display))
	return a
}

// urlNode builds the element for a bare URL, or nil to leave it as text.
func (p *domProcessor) urlNode(raw string) *html.Node {
	lower := strings.ToLower(raw)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return nil
	}
	if skippedURL.MatchString(lower) {
		return nil
	}

	if imageURL.MatchString(lower) {
		p.add("images", &p.res.Images, raw)
		return htmldom.NewElement(atom.Img, html.Attribute{Key: "src", Val: p.proxy(raw)})
	}

	if p.opts.Links != nil {
		if _, ok := p.opts.Links.SanitizeLink(raw, raw); !ok {
			div := htmldom.NewElement(atom.Div,
				html.Attribute{Key: "class", Val: "phishy"},
				html.Attribute{Key: "title", Val: p.opts.PhishingWarning},
			)
			div.AppendChild(htmldom.NewText(raw))
			return div
		}
	}

	p.add("links", &p.res.Links, raw)
	a := htmldom.NewElement(atom.A, html.Attribute{Key: "href", Val: raw})
	a.AppendChild(htmldom.NewText(raw))
	return a
}
