// Package embed recognizes third-party media URLs in text and turns them
// into iframes.
//
// Embedding happens in two passes. During DOM processing, MarkText replaces
// a recognized URL with a marker of the form
//
//	~~~ embed:<id> <type> ~~~
//
// The marker is plain text built from characters the sanitizer leaves
// alone. After sanitization, InsertAssets swaps each marker for the HTML
// its embedder generates from the id alone, so the sanitizer never sees
// the author's original URL inside an iframe src.
package embed

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	markerOpen  = "~~~ embed:"
	markerClose = " ~~~"
)

// markerHeader matches "<id> <type> ~~~" right after markerOpen.
var markerHeader = regexp.MustCompile(`^([A-Za-z0-9.?/=_-]+) ([a-z]+) ~~~`)

// Size is the width and height given to generated iframes.
type Size struct {
	Width  int
	Height int
}

// Metadata describes one recognized URL.
type Metadata struct {
	// ID regenerates the embed without the original URL.
	ID string
	// URL is the exact substring of the text that was recognized.
	URL string
	// Type is the embedder's marker type.
	Type string
	// Image is a preview image, if the platform has one.
	Image string
	// Link is the canonical page URL for the media.
	Link string
}

// Embedder is one supported platform.
type Embedder interface {
	// Type is the marker discriminant, lower-case letters only.
	Type() string
	// Metadata recognizes the first platform URL in text.
	Metadata(text string) (*Metadata, bool)
	// Embed renders the iframe HTML for id.
	Embed(id string, size Size) string
	// Whitelist returns the iframe src rule for this platform.
	Whitelist() WhitelistEntry
}

// Marker returns the placeholder text for id.
func Marker(id, typ string) string {
	return markerOpen + id + " " + typ + markerClose
}

// Registry holds the embedders in detection order.
type Registry struct {
	embedders []Embedder
	byType    map[string]Embedder
	whitelist []WhitelistEntry
}

// NewRegistry returns the standard platforms. pageDomain is the host the
// rendered page is served from; Twitch requires it as the "parent"
// parameter.
func NewRegistry(pageDomain string) *Registry {
	return NewRegistryWith(
		[]Embedder{
			YouTube{},
			Vimeo{},
			Twitch{ParentDomain: pageDomain},
			Spotify{},
			ThreeSpeak{},
			Twitter{},
		},
		SoundCloudWhitelist(),
	)
}

// NewRegistryWith builds a registry from explicit embedders. extra adds
// iframe rules for platforms that have no text embedder.
func NewRegistryWith(embedders []Embedder, extra ...WhitelistEntry) *Registry {
	r := &Registry{
		embedders: embedders,
		byType:    make(map[string]Embedder, len(embedders)),
	}
	for _, e := range embedders {
		r.byType[e.Type()] = e
		r.whitelist = append(r.whitelist, e.Whitelist())
	}
	r.whitelist = append(r.whitelist, extra...)
	return r
}

// MarkText replaces every recognized URL in text with its marker and
// returns the rewritten text and what was found, in detection order.
func (r *Registry) MarkText(text string) (string, []Metadata) {
	var found []Metadata
	for _, e := range r.embedders {
		for {
			md, ok := e.Metadata(text)
			if !ok || md.URL == "" || !strings.Contains(text, md.URL) {
				break
			}
			text = strings.Replace(text, md.URL, Marker(md.ID, e.Type()), 1)
			found = append(found, *md)
		}
	}
	return text, found
}

// InsertAssets resolves markers in a single left-to-right scan. Markers
// with a malformed header or an unknown type are left as they are.
func (r *Registry) InsertAssets(htmlContent string, size Size) string {
	sections := strings.Split(htmlContent, markerOpen)
	if len(sections) == 1 {
		return htmlContent
	}

	var b strings.Builder
	b.Grow(len(htmlContent))
	b.WriteString(sections[0])

	for _, section := range sections[1:] {
		m := markerHeader.FindStringSubmatch(section)
		if m == nil {
			b.WriteString(markerOpen)
			b.WriteString(section)
			continue
		}
		e, ok := r.byType[m[2]]
		if !ok {
			b.WriteString(markerOpen)
			b.WriteString(section)
			continue
		}
		b.WriteString(e.Embed(m[1], size))
		b.WriteString(section[len(m[0]):])
	}
	return b.String()
}

// Whitelist returns every iframe src rule, embedders first.
func (r *Registry) Whitelist() []WhitelistEntry {
	out := make([]WhitelistEntry, len(r.whitelist))
	copy(out, r.whitelist)
	return out
}

// AllowIframe checks src against the whitelist. The first rule whose
// pattern matches decides: its normalized URL is returned, or false if
// the rule rejects the source.
func (r *Registry) AllowIframe(src string) (string, bool) {
	for _, w := range r.whitelist {
		if w.Pattern.MatchString(src) {
			return w.Normalize(src)
		}
	}
	return "", false
}

// videoWrapper renders the standard responsive iframe wrapper.
func videoWrapper(src string, size Size, extraAttrs string) string {
	return fmt.Sprintf(
		`<div class="videoWrapper"><iframe width="%d" height="%d" src="%s" frameborder="0" allowfullscreen="allowfullscreen" webkitallowfullscreen="webkitallowfullscreen" mozallowfullscreen="mozallowfullscreen"%s></iframe></div>`,
		size.Width, size.Height, src, extraAttrs,
	)
}
