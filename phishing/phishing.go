// Package phishing detects links that point at known phishing hosts.
//
// A DomainSet combines an immutable built-in list with a custom list that
// can be changed at runtime. DomainSet is safe for concurrent use, so a
// single set can be shared by every render in the process; Default returns
// that shared set.
package phishing

import (
	"net/url"
	"sort"
	"strings"
	"sync"
)

// DomainSet is a lock-protected set of phishing domains.
type DomainSet struct {
	builtin map[string]struct{}

	mu     sync.RWMutex
	custom map[string]struct{}
}

var defaultSet = New()

// Default returns the process-wide set used when no set is configured.
func Default() *DomainSet {
	return defaultSet
}

// New returns a set seeded with the built-in domain list and no custom
// domains.
func New() *DomainSet {
	return NewWithBuiltin(builtinDomains)
}

// NewWithBuiltin returns a set whose immutable part is domains instead of
// the built-in list.
func NewWithBuiltin(domains []string) *DomainSet {
	builtin := make(map[string]struct{}, len(domains))
	for _, d := range domains {
		if d = normalizeDomain(d); d != "" {
			builtin[d] = struct{}{}
		}
	}
	return &DomainSet{
		builtin: builtin,
		custom:  make(map[string]struct{}),
	}
}

// LooksPhishy reports whether rawURL's host is a listed domain or a
// subdomain of one. Malformed URLs are never phishy.
func (s *DomainSet) LooksPhishy(rawURL string) bool {
	host := hostOf(rawURL)
	if host == "" {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for {
		if s.containsLocked(host) {
			return true
		}
		dot := strings.IndexByte(host, '.')
		if dot < 0 {
			return false
		}
		host = host[dot+1:]
	}
}

// Contains reports whether domain itself is listed.
func (s *DomainSet) Contains(domain string) bool {
	domain = normalizeDomain(domain)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.containsLocked(domain)
}

func (s *DomainSet) containsLocked(domain string) bool {
	if _, ok := s.builtin[domain]; ok {
		return true
	}
	_, ok := s.custom[domain]
	return ok
}

// AddDomain adds a custom domain. Blank input is ignored.
func (s *DomainSet) AddDomain(domain string) {
	s.AddDomains([]string{domain})
}

// AddDomains adds several custom domains under one lock.
func (s *DomainSet) AddDomains(domains []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range domains {
		if d = normalizeDomain(d); d != "" {
			s.custom[d] = struct{}{}
		}
	}
}

// RemoveDomain removes a custom domain and reports whether it was present.
// Built-in domains cannot be removed.
func (s *DomainSet) RemoveDomain(domain string) bool {
	domain = normalizeDomain(domain)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.custom[domain]; !ok {
		return false
	}
	delete(s.custom, domain)
	return true
}

// ClearCustomDomains drops every custom domain.
func (s *DomainSet) ClearCustomDomains() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.custom = make(map[string]struct{})
}

// Domains returns the sorted union of built-in and custom domains.
func (s *DomainSet) Domains() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.builtin)+len(s.custom))
	for d := range s.builtin {
		out = append(out, d)
	}
	for d := range s.custom {
		if _, dup := s.builtin[d]; !dup {
			out = append(out, d)
		}
	}
	sort.Strings(out)
	return out
}

// CustomDomains returns the sorted custom domains.
func (s *DomainSet) CustomDomains() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.custom))
	for d := range s.custom {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// DomainCount returns the number of distinct domains in the set.
func (s *DomainSet) DomainCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.builtin)
	for d := range s.custom {
		if _, dup := s.builtin[d]; !dup {
			n++
		}
	}
	return n
}

// LooksPhishy checks rawURL against the default set.
func LooksPhishy(rawURL string) bool {
	return defaultSet.LooksPhishy(rawURL)
}

func normalizeDomain(d string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(d)), ".")
}

// hostOf extracts the lower-case host of rawURL, accepting scheme-less
// input such as "example.com/path".
func hostOf(rawURL string) string {
	raw := strings.TrimSpace(rawURL)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") && !strings.HasPrefix(raw, "//") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return normalizeDomain(u.Hostname())
}
