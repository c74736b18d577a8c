package sanitize

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// allowedElements is the complete tag allow-list.
var allowedElements = []string{
	"div", "iframe", "a", "p", "b", "i", "q", "br", "ul", "li", "ol", "img",
	"h1", "h2", "h3", "h4", "h5", "h6", "hr", "blockquote", "pre", "code",
	"em", "strong", "center", "table", "thead", "tbody", "tr", "th", "td",
	"strike", "sup", "sub", "del", "details", "summary",
}

// DivClasses are the only class values a div may carry.
var DivClasses = []string{
	"pull-right", "pull-left", "text-justify", "text-rtl", "text-center",
	"text-right", "videoWrapper", "phishy",
}

var (
	divClassPattern  = regexp.MustCompile(`^(?:pull-right|pull-left|text-justify|text-rtl|text-center|text-right|videoWrapper|phishy)$`)
	cellStylePattern = regexp.MustCompile(`^text-align:(?:right|center)$`)
	linkRelPattern   = regexp.MustCompile(`^(?:nofollow )?noopener$`)
	linkTarget       = regexp.MustCompile(`^_(?:blank|self)$`)
	cssClassPattern  = regexp.MustCompile(`^[A-Za-z0-9_ -]+$`)
	idPattern        = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_:.-]*$`)
	sizePattern      = regexp.MustCompile(`^\d+$`)
	fullscreenValue  = regexp.MustCompile(`(?i)^(?:|true|allowfullscreen|webkitallowfullscreen|mozallowfullscreen)$`)
	frameborderValue = regexp.MustCompile(`^0$`)
)

// newPolicy builds the allow-list. phishingWarning is the only title a
// div may carry.
func newPolicy(phishingWarning string) *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements(allowedElements...)
	p.AllowNoAttrs().OnElements(withoutAttrs()...)

	p.RequireParseableURLs(true)
	p.AllowRelativeURLs(true)
	p.AllowURLSchemes("http", "https", "hive")

	// Links
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("rel").Matching(linkRelPattern).OnElements("a")
	p.AllowAttrs("target").Matching(linkTarget).OnElements("a")
	p.AllowAttrs("class").Matching(cssClassPattern).OnElements("a")
	p.AllowAttrs("id").Matching(idPattern).OnElements("a")
	p.AllowAttrs("title").OnElements("a")

	// Images
	p.AllowAttrs("src", "alt").OnElements("img")

	// Iframes
	p.AllowAttrs("src").OnElements("iframe")
	p.AllowAttrs("width", "height").Matching(sizePattern).OnElements("iframe")
	p.AllowAttrs("frameborder").Matching(frameborderValue).OnElements("iframe")
	p.AllowAttrs("allowfullscreen", "webkitallowfullscreen", "mozallowfullscreen").
		Matching(fullscreenValue).OnElements("iframe")

	// Layout divs
	p.AllowAttrs("class").Matching(divClassPattern).OnElements("div")
	p.AllowAttrs("title").Matching(exactly(phishingWarning)).OnElements("div")

	// Table cell alignment
	p.AllowAttrs("style").Matching(cellStylePattern).OnElements("td", "th")

	return p
}

// withoutAttrs lists the allowed elements that stay meaningful with no
// attributes left.
func withoutAttrs() []string {
	var out []string
	for _, el := range allowedElements {
		switch el {
		case "a", "img", "iframe":
			continue
		}
		out = append(out, el)
	}
	return out
}

func exactly(s string) *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(s) + `$`)
}
