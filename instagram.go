package renderer

import (
	"fmt"
	"html"
	"regexp"
)

// InstagramPluginName is the name the CLI config uses for InstagramPlugin.
const InstagramPluginName = "instagram"

var (
	// A line holding nothing but an Instagram post, reel or tv URL.
	instagramLine = regexp.MustCompile(
		`(?im)^[ \t]*https?://(?:www\.)?instagram\.com/(p|reel|tv)/([A-Za-z0-9_-]+)/?(?:\?[^\s]*)?[ \t]*$`)

	// The token left by PreProcess, optionally wrapped in its own paragraph.
	instagramToken = regexp.MustCompile(`(?:<p>)?%%instagram:(p|reel|tv)/([A-Za-z0-9_-]+)%%(?:</p>)?`)
)

// InstagramPlugin turns standalone Instagram links into the blockquote
// markup Instagram's embed script expects. The host page loads that
// script; no <script> is ever emitted here.
type InstagramPlugin struct{}

// NewInstagramPlugin returns an InstagramPlugin.
func NewInstagramPlugin() *InstagramPlugin {
	return &InstagramPlugin{}
}

func (*InstagramPlugin) Name() string { return InstagramPluginName }

// PreProcess replaces each Instagram URL line with a plain-text token that
// survives markdown conversion and sanitization.
func (*InstagramPlugin) PreProcess(text string) string {
	return instagramLine.ReplaceAllString(text, "%%instagram:${1}/${2}%%")
}

// PostProcess expands tokens into blockquotes.
func (*InstagramPlugin) PostProcess(htmlContent string) string {
	return instagramToken.ReplaceAllStringFunc(htmlContent, func(tok string) string {
		m := instagramToken.FindStringSubmatch(tok)
		return instagramBlockquote(m[1], m[2])
	})
}

func instagramBlockquote(kind, id string) string {
	permalink := html.EscapeString(fmt.Sprintf("https://www.instagram.com/%s/%s/", kind, id))
	return fmt.Sprintf(
		`<blockquote class="instagram-media" data-instgrm-permalink="%s" data-instgrm-version="14">`+
			`<a href="%s" target="_blank" rel="noopener">%s</a></blockquote>`,
		permalink, permalink, permalink)
}
