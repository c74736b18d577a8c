// Package sanitize enforces the tag and attribute allow-list on rendered
// HTML.
//
// Sanitize runs in two steps. A DOM pass applies the per-tag rules that
// need more than a static allow-list: iframe sources are checked against
// the embed whitelist and rebuilt, images are validated or hidden, div
// classes and titles are restricted, table cell styles are filtered and
// links get rel, target, title and class attributes from the link policy.
// The result then goes through a bluemonday policy that drops every tag,
// attribute and URL scheme not explicitly allowed.
package sanitize

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/openhive-network/denser-sub002/internal/embed"
	"github.com/openhive-network/denser-sub002/internal/htmldom"
	"github.com/openhive-network/denser-sub002/internal/locale"
	"github.com/openhive-network/denser-sub002/links"
)

// BrokenImageSrc replaces image sources that are not absolute or
// protocol-relative URLs.
const BrokenImageSrc = "brokenimg.jpg"

// imageSrc accepts absolute http(s) and protocol-relative sources.
var imageSrc = regexp.MustCompile(`(?i)^(?:https?:)?//`)

// Options configures a Sanitizer.
type Options struct {
	// Embeds supplies the iframe whitelist. Nil rejects every iframe.
	Embeds *embed.Registry
	// Links detects phishing and pseudo-local links. Nil skips the check.
	Links *links.Sanitizer
	// IsLinkSafe is consulted before Links. Nil treats every link as safe.
	IsLinkSafe func(url string) bool

	AddNofollow       bool
	AddTargetBlank    bool
	InternalLinkClass string
	ExternalLinkClass string
	// AddExternalClass picks ExternalLinkClass for matching links and
	// InternalLinkClass for the rest. Nil falls back to the local check.
	AddExternalClass func(url string) bool

	DoNotShowImages bool
	// Size overrides iframe width and height.
	Size embed.Size
	// Messages provides the localized placeholder and warning strings.
	Messages locale.Messages
}

// Sanitizer is safe for concurrent use.
type Sanitizer struct {
	opts   Options
	policy *bluemonday.Policy
}

// New builds a Sanitizer and its allow-list policy.
func New(opts Options) *Sanitizer {
	return &Sanitizer{
		opts:   opts,
		policy: newPolicy(opts.Messages.PhishingWarning),
	}
}

// Sanitize returns the sanitized HTML and the downgrade events recorded
// while producing it. Downgrades replace content with a safe placeholder
// and never fail the call.
func (s *Sanitizer) Sanitize(htmlContent string) (string, []string, error) {
	root, err := htmldom.Parse(htmlContent)
	if err != nil {
		return "", nil, fmt.Errorf("parsing HTML: %w", err)
	}

	t := &transform{opts: &s.opts}
	t.walk(root)

	rendered, err := htmldom.RenderChildren(root)
	if err != nil {
		return "", nil, fmt.Errorf("rendering HTML: %w", err)
	}

	out, err := htmldom.Normalize(s.policy.Sanitize(rendered))
	if err != nil {
		return "", nil, fmt.Errorf("normalizing HTML: %w", err)
	}
	return out, t.errors, nil
}

// transform holds the state of one DOM pass.
type transform struct {
	opts   *Options
	errors []string
}

func (t *transform) walk(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode && !t.element(c) {
			t.walk(c)
		}
		c = next
	}
}

// element applies the rule for n. It reports whether n was replaced.
func (t *transform) element(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Iframe:
		return t.iframe(n)
	case atom.Img:
		return t.img(n)
	case atom.Div:
		t.div(n)
	case atom.Td, atom.Th:
		t.cell(n)
	case atom.A:
		t.anchor(n)
	}
	return false
}

func (t *transform) iframe(n *html.Node) bool {
	src := strings.TrimSpace(htmldom.Attr(n, "src"))

	normalized, ok := "", false
	if t.opts.Embeds != nil {
		normalized, ok = t.opts.Embeds.AllowIframe(src)
	}
	if !ok {
		t.errors = append(t.errors, "Invalid iframe URL: "+src)
		htmldom.Replace(n, placeholder("(Unsupported "+src+")"))
		return true
	}

	n.Attr = []html.Attribute{
		{Key: "src", Val: normalized},
		{Key: "width", Val: strconv.Itoa(t.opts.Size.Width)},
		{Key: "height", Val: strconv.Itoa(t.opts.Size.Height)},
		{Key: "frameborder", Val: "0"},
		{Key: "allowfullscreen", Val: "allowfullscreen"},
		{Key: "webkitallowfullscreen", Val: "webkitallowfullscreen"},
		{Key: "mozallowfullscreen", Val: "mozallowfullscreen"},
	}
	return false
}

func (t *transform) img(n *html.Node) bool {
	if t.opts.DoNotShowImages {
		htmldom.Replace(n, placeholder(t.opts.Messages.NoImage))
		return true
	}

	src := strings.TrimSpace(htmldom.Attr(n, "src"))
	switch {
	case !imageSrc.MatchString(src):
		t.errors = append(t.errors, t.opts.Messages.BrokenImage)
		src = BrokenImageSrc
	case strings.HasPrefix(strings.ToLower(src), "http://"):
		src = "//" + src[len("http://"):]
	}

	attrs := []html.Attribute{{Key: "src", Val: src}}
	if alt := htmldom.Attr(n, "alt"); strings.TrimSpace(alt) != "" {
		attrs = append(attrs, html.Attribute{Key: "alt", Val: alt})
	}
	n.Attr = attrs
	return false
}

func (t *transform) div(n *html.Node) {
	class := htmldom.Attr(n, "class")
	title := htmldom.Attr(n, "title")

	var attrs []html.Attribute
	if slices.Contains(DivClasses, class) {
		attrs = append(attrs, html.Attribute{Key: "class", Val: class})
		if class == "phishy" && title == t.opts.Messages.PhishingWarning {
			attrs = append(attrs, html.Attribute{Key: "title", Val: title})
		}
	}
	n.Attr = attrs
}

func (t *transform) cell(n *html.Node) {
	style := htmldom.Attr(n, "style")
	if cellStylePattern.MatchString(style) {
		n.Attr = []html.Attribute{{Key: "style", Val: style}}
		return
	}
	n.Attr = nil
}

func (t *transform) anchor(n *html.Node) {
	href := strings.TrimSpace(htmldom.Attr(n, "href"))
	title := htmldom.Attr(n, "title")
	id := htmldom.Attr(n, "id")

	local := t.isLocal(href)
	unsafe := href != "" && t.isUnsafe(href, htmldom.Text(n))

	var rel, target string
	switch {
	case unsafe:
		rel = "nofollow noopener"
		title = t.opts.Messages.PhishingWarning
		if t.opts.AddTargetBlank {
			target = "_blank"
		}
	case !local:
		rel = "noopener"
		if t.opts.AddNofollow {
			rel = "nofollow noopener"
		}
		if t.opts.AddTargetBlank {
			target = "_blank"
		}
	}

	external := !local
	if t.opts.AddExternalClass != nil {
		external = t.opts.AddExternalClass(href)
	}
	class := t.opts.InternalLinkClass
	if external {
		class = t.opts.ExternalLinkClass
	}

	var attrs []html.Attribute
	for _, a := range []html.Attribute{
		{Key: "href", Val: href},
		{Key: "id", Val: id},
		{Key: "class", Val: class},
		{Key: "title", Val: title},
		{Key: "rel", Val: rel},
		{Key: "target", Val: target},
	} {
		if a.Val != "" {
			attrs = append(attrs, a)
		}
	}
	n.Attr = attrs
}

func (t *transform) isLocal(href string) bool {
	if t.opts.Links != nil {
		return t.opts.Links.IsLocal(href)
	}
	return href == "" || strings.HasPrefix(href, "#") ||
		(strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "//"))
}

func (t *transform) isUnsafe(href, text string) bool {
	if t.opts.IsLinkSafe != nil && !t.opts.IsLinkSafe(href) {
		return true
	}
	if t.opts.Links != nil {
		if _, ok := t.opts.Links.SanitizeLink(href, text); !ok {
			return true
		}
	}
	return false
}

func placeholder(text string) *html.Node {
	div := htmldom.NewElement(atom.Div)
	div.AppendChild(htmldom.NewText(text))
	return div
}
