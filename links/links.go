// Package links decides whether a link in user content may be rendered as
// a live anchor.
//
// A link is rejected when its host is on the phishing list, or when it is
// pseudo-local: the visible text names the site's own domain while the
// target points somewhere else.
package links

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/openhive-network/denser-sub002/phishing"
)

// Sentinel errors for sanitizer construction.
var (
	ErrInvalidBaseURL = errors.New("invalid base URL")
	ErrNoBaseDomain   = errors.New("could not extract top level domain from base URL")
)

var topLevelDomainPattern = regexp.MustCompile(`([^\s/$.?#]+\.[^\s/$.?#]+)$`)

// Sanitizer checks links against a base URL and a phishing set.
// It holds no mutable state and is safe for concurrent use.
type Sanitizer struct {
	baseURL            *url.URL
	topLevelBaseDomain string
	domains            *phishing.DomainSet
}

// NewSanitizer derives the site's top-level base domain from baseURL.
// A nil domains uses phishing.Default().
func NewSanitizer(baseURL string, domains *phishing.DomainSet) (*Sanitizer, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("%w: %q has no host", ErrInvalidBaseURL, baseURL)
	}

	tld := topLevelDomainPattern.FindString(strings.ToLower(u.Hostname()))
	if tld == "" {
		return nil, fmt.Errorf("%w: %q", ErrNoBaseDomain, baseURL)
	}

	if domains == nil {
		domains = phishing.Default()
	}
	return &Sanitizer{
		baseURL:            u,
		topLevelBaseDomain: tld,
		domains:            domains,
	}, nil
}

// TopLevelBaseDomain returns the last two labels of the base host,
// e.g. "hive.blog" for https://www.hive.blog/.
func (s *Sanitizer) TopLevelBaseDomain() string {
	return s.topLevelBaseDomain
}

// Host returns the base URL's host name.
func (s *Sanitizer) Host() string {
	return s.baseURL.Hostname()
}

// SanitizeLink returns the normalized link and true, or "" and false when
// the link is phishy or pseudo-local.
func (s *Sanitizer) SanitizeLink(rawURL, title string) (string, bool) {
	link := Normalize(rawURL)
	if s.domains.LooksPhishy(link) {
		return "", false
	}
	if s.IsPseudoLocal(link, title) {
		return "", false
	}
	return link, true
}

// IsPseudoLocal reports whether title mentions the base domain while
// link does not. Comparison is case-insensitive; anchors are never
// pseudo-local.
func (s *Sanitizer) IsPseudoLocal(link, title string) bool {
	if strings.HasPrefix(link, "#") {
		return false
	}
	link = strings.ToLower(link)
	title = strings.ToLower(title)
	return strings.Contains(title, s.topLevelBaseDomain) &&
		!strings.Contains(link, s.topLevelBaseDomain)
}

// IsLocal reports whether link is relative or points at the base host.
func (s *Sanitizer) IsLocal(link string) bool {
	link = strings.TrimSpace(link)
	if link == "" || strings.HasPrefix(link, "#") {
		return true
	}
	if strings.HasPrefix(link, "/") && !strings.HasPrefix(link, "//") {
		return true
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	if u.Scheme == "hive" {
		return true
	}
	return strings.EqualFold(u.Hostname(), s.baseURL.Hostname())
}

// Normalize prepends https:// to links without a recognized prefix.
// Anchors, root-relative paths, protocol-relative URLs and http, https
// and hive URLs are returned unchanged.
func Normalize(rawURL string) string {
	if hasKnownPrefix(rawURL) {
		return rawURL
	}
	return "https://" + rawURL
}

func hasKnownPrefix(link string) bool {
	if strings.HasPrefix(link, "#") || strings.HasPrefix(link, "//") {
		return true
	}
	if strings.HasPrefix(link, "/") {
		return true
	}
	lower := strings.ToLower(link)
	for _, p := range []string{"http://", "https://", "hive://"} {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}
