package pipeline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/openhive-network/denser-sub002/internal/embed"
	"github.com/openhive-network/denser-sub002/internal/htmldom"
	"github.com/openhive-network/denser-sub002/links"
)

// DOMOptions configures ProcessDOM.
type DOMOptions struct {
	// HashtagURL and UsertagURL build hrefs for #tags and @mentions.
	HashtagURL func(tag string) string
	UsertagURL func(account string) string
	// ImageProxy rewrites image sources after normalization. Nil keeps
	// them as they are.
	ImageProxy func(url string) string
	// IPFSPrefix replaces the leading "/ipfs" or "//ipfs" of IPFS image
	// paths.
	IPFSPrefix string
	// Links flags phishing URLs found in plain text. Nil disables it.
	Links *links.Sanitizer
	// Embeds marks embeddable media URLs in text. Nil disables it.
	Embeds *embed.Registry
	// PhishingWarning is the title placed on flagged text URLs.
	PhishingWarning string
}

// DOMResult is the rewritten HTML plus everything collected on the way.
// Collections are de-duplicated and keep first-seen order.
type DOMResult struct {
	HTML     string
	Hashtags []string
	Usertags []string
	Images   []string
	Links    []string
	Embeds   []embed.Metadata
}

// ProcessDOM parses htmlContent, links mentions, hashtags and bare URLs in
// text, marks embeddable media, normalizes image sources and wraps loose
// iframes. Text inside a, code and pre is left alone.
func ProcessDOM(htmlContent string, opts DOMOptions) (*DOMResult, error) {
	root, err := htmldom.Parse(htmlContent)
	if err != nil {
		return nil, err
	}

	p := &domProcessor{
		opts: opts,
		res:  &DOMResult{},
		seen: make(map[string]map[string]struct{}),
	}
	p.walk(root)

	out, err := htmldom.RenderChildren(root)
	if err != nil {
		return nil, err
	}
	p.res.HTML = out
	return p.res, nil
}

type domProcessor struct {
	opts DOMOptions
	res  *DOMResult
	seen map[string]map[string]struct{}
}

// walk visits n's children. Nodes inserted while visiting a child are
// not revisited.
func (p *domProcessor) walk(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch c.Type {
		case html.ElementNode:
			p.element(c)
		case html.TextNode:
			p.text(c)
		}
		c = next
	}
}

func (p *domProcessor) element(n *html.Node) {
	switch n.DataAtom {
	case atom.A:
		if href := strings.TrimSpace(htmldom.Attr(n, "href")); href != "" {
			p.add("links", &p.res.Links, href)
		}
		return
	case atom.Code, atom.Pre, atom.Script, atom.Style, atom.Textarea:
		return
	case atom.Img:
		p.image(n)
		return
	case atom.Iframe:
		p.iframe(n)
		return
	}
	p.walk(n)
}

func (p *domProcessor) image(n *html.Node) {
	src := strings.TrimSpace(htmldom.Attr(n, "src"))
	if src == "" {
		return
	}
	src = p.normalizeImage(src)
	p.add("images", &p.res.Images, src)
	htmldom.SetAttr(n, "src", p.proxy(src))
}

// normalizeImage applies the IPFS prefix and upgrades protocol-relative
// sources to https.
func (p *domProcessor) normalizeImage(src string) string {
	if p.opts.IPFSPrefix != "" {
		prefix := strings.TrimSuffix(p.opts.IPFSPrefix, "/")
		for _, ipfs := range []string{"//ipfs/", "/ipfs/"} {
			if strings.HasPrefix(src, ipfs) {
				return prefix + src[len(ipfs)-1:]
			}
		}
	}
	if strings.HasPrefix(src, "//") {
		return "https:" + src
	}
	return src
}

func (p *domProcessor) proxy(src string) string {
	if p.opts.ImageProxy == nil {
		return src
	}
	return p.opts.ImageProxy(src)
}

// iframe wraps n in div.videoWrapper unless it already is.
func (p *domProcessor) iframe(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	if parent.DataAtom == atom.Div && htmldom.Attr(parent, "class") == "videoWrapper" {
		return
	}
	wrapper := htmldom.NewElement(atom.Div, html.Attribute{Key: "class", Val: "videoWrapper"})
	parent.InsertBefore(wrapper, n)
	parent.RemoveChild(n)
	wrapper.AppendChild(n)
}

func (p *domProcessor) text(n *html.Node) {
	if strings.TrimSpace(n.Data) == "" {
		return
	}

	content := n.Data
	if p.opts.Embeds != nil {
		var found []embed.Metadata
		content, found = p.opts.Embeds.MarkText(content)
		for _, md := range found {
			p.res.Embeds = append(p.res.Embeds, md)
			if md.Image != "" {
				p.add("images", &p.res.Images, md.Image)
			}
			if md.Link != "" {
				p.add("links", &p.res.Links, md.Link)
			}
		}
	}

	nodes := p.linkify(content)
	if nodes == nil {
		n.Data = content
		return
	}
	for _, m := range nodes {
		n.Parent.InsertBefore(m, n)
	}
	n.Parent.RemoveChild(n)
}

// add appends v to dst once per collection.
func (p *domProcessor) add(collection string, dst *[]string, v string) {
	set, ok := p.seen[collection]
	if !ok {
		set = make(map[string]struct{})
		p.seen[collection] = set
	}
	if _, dup := set[v]; dup {
		return
	}
	set[v] = struct{}{}
	*dst = append(*dst, v)
}
