package renderer

import (
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/text/language"

	"github.com/openhive-network/denser-sub002/internal/locale"
	"github.com/openhive-network/denser-sub002/links"
	"github.com/openhive-network/denser-sub002/phishing"
)

// Default embed dimensions in pixels.
const (
	DefaultAssetsWidth  = 640
	DefaultAssetsHeight = 480
)

// cssClassPattern limits configured link classes to plain class lists.
var cssClassPattern = regexp.MustCompile(`^[A-Za-z0-9_ -]*$`)

// Options configures a Renderer. It is read once by New and never
// modified afterwards.
type Options struct {
	// BaseURL is the site the content is rendered for. Its host decides
	// which links are local and which link titles look pseudo-local.
	BaseURL string

	// Breaks turns single newlines in markdown paragraphs into <br>.
	Breaks bool

	// SkipSanitization bypasses the tag sanitizer. Dangerous.
	SkipSanitization bool

	// AllowInsecureScriptTags bypasses the security checker. Dangerous.
	AllowInsecureScriptTags bool

	AddNofollowToLinks    bool
	AddTargetBlankToLinks bool

	// Optional classes for local and external links.
	CSSClassForInternalLinks string
	CSSClassForExternalLinks string

	// DoNotShowImages replaces every image with a placeholder.
	DoNotShowImages bool

	// IPFSPrefix replaces "/ipfs" in IPFS image paths, e.g.
	// "https://ipfs.io/ipfs".
	IPFSPrefix string

	// AssetsWidth and AssetsHeight size every iframe.
	AssetsWidth  int
	AssetsHeight int

	ImageProxyFn                         func(url string) string
	HashtagURLFn                         func(tag string) string
	UsertagURLFn                         func(account string) string
	IsLinkSafeFn                         func(url string) bool
	AddExternalCSSClassToMatchingLinksFn func(url string) bool

	// Plugins run in order: PreProcess before rendering, PostProcess after.
	Plugins []Plugin

	// Locale selects the language of placeholders and warnings. Unknown
	// languages fall back to English.
	Locale string

	// MaxInputBytes rejects larger inputs before any work. Zero disables
	// the limit.
	MaxInputBytes int
}

// DefaultOptions returns options for baseURL with working callbacks:
// images are not proxied, hashtags link to /trending/<tag>, mentions to
// /@<account>, every link is considered safe, and links to other hosts
// get the external class.
func DefaultOptions(baseURL string) Options {
	return Options{
		BaseURL:                              baseURL,
		AssetsWidth:                          DefaultAssetsWidth,
		AssetsHeight:                         DefaultAssetsHeight,
		ImageProxyFn:                         func(u string) string { return u },
		HashtagURLFn:                         func(tag string) string { return "/trending/" + tag },
		UsertagURLFn:                         func(account string) string { return "/@" + account },
		IsLinkSafeFn:                         func(string) bool { return true },
		AddExternalCSSClassToMatchingLinksFn: externalTo(baseURL),
		Locale:                               locale.DefaultLanguage,
	}
}

// externalTo matches URLs whose host differs from baseURL's host.
// Relative links have no host and never match.
func externalTo(baseURL string) func(string) bool {
	var baseHost string
	if u, err := url.Parse(strings.TrimSpace(baseURL)); err == nil {
		baseHost = u.Hostname()
	}
	return func(raw string) bool {
		u, err := url.Parse(strings.TrimSpace(raw))
		if err != nil || u.Hostname() == "" {
			return false
		}
		return !strings.EqualFold(u.Hostname(), baseHost)
	}
}

// Validate checks every field and returns a *ConfigError naming the
// first invalid one.
func (o *Options) Validate() error {
	if strings.TrimSpace(o.BaseURL) == "" {
		return configErrorf("baseUrl", "must not be empty")
	}
	if _, err := links.NewSanitizer(o.BaseURL, phishing.NewWithBuiltin(nil)); err != nil {
		return configErrorf("baseUrl", "%v", err)
	}

	if o.AssetsWidth <= 0 {
		return configErrorf("assetsWidth", "must be a positive integer, got %d", o.AssetsWidth)
	}
	if o.AssetsHeight <= 0 {
		return configErrorf("assetsHeight", "must be a positive integer, got %d", o.AssetsHeight)
	}

	if !cssClassPattern.MatchString(o.CSSClassForInternalLinks) {
		return configErrorf("cssClassForInternalLinks", "invalid class list %q", o.CSSClassForInternalLinks)
	}
	if !cssClassPattern.MatchString(o.CSSClassForExternalLinks) {
		return configErrorf("cssClassForExternalLinks", "invalid class list %q", o.CSSClassForExternalLinks)
	}

	if o.IPFSPrefix != "" {
		u, err := url.Parse(o.IPFSPrefix)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return configErrorf("ipfsPrefix", "must be an absolute http(s) URL, got %q", o.IPFSPrefix)
		}
	}

	switch {
	case o.ImageProxyFn == nil:
		return configErrorf("imageProxyFn", "must be set")
	case o.HashtagURLFn == nil:
		return configErrorf("hashtagUrlFn", "must be set")
	case o.UsertagURLFn == nil:
		return configErrorf("usertagUrlFn", "must be set")
	case o.IsLinkSafeFn == nil:
		return configErrorf("isLinkSafeFn", "must be set")
	case o.AddExternalCSSClassToMatchingLinksFn == nil:
		return configErrorf("addExternalCssClassToMatchingLinksFn", "must be set")
	}

	for i, p := range o.Plugins {
		if p == nil {
			return configErrorf("plugins", "plugin %d is nil", i)
		}
		if strings.TrimSpace(p.Name()) == "" {
			return configErrorf("plugins", "plugin %d has no name", i)
		}
	}

	if o.Locale != "" {
		if _, err := language.Parse(o.Locale); err != nil {
			return configErrorf("locale", "invalid language tag %q", o.Locale)
		}
	}

	if o.MaxInputBytes < 0 {
		return configErrorf("maxInputBytes", "must not be negative, got %d", o.MaxInputBytes)
	}
	return nil
}

// Option configures collaborators of a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithPhishing sets the phishing domain set. The default is
// phishing.Default().
func WithPhishing(domains *phishing.DomainSet) Option {
	return func(r *Renderer) {
		if domains != nil {
			r.domains = domains
		}
	}
}
