package links

import (
	"errors"
	"testing"

	"github.com/openhive-network/denser-sub002/phishing"
)

func newTestSanitizer(t *testing.T) *Sanitizer {
	t.Helper()

	s, err := NewSanitizer("https://hive.blog/", phishing.New())
	if err != nil {
		t.Fatalf("NewSanitizer() error = %v", err)
	}
	return s
}

// ---------------------------------------------------------------------------
// TestNewSanitizer - Base URL handling
// ---------------------------------------------------------------------------

func TestNewSanitizer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		baseURL string
		wantTLD string
		wantErr error
	}{
		{name: "plain host", baseURL: "https://hive.blog", wantTLD: "hive.blog"},
		{name: "subdomain host", baseURL: "https://www.Hive.Blog/trending", wantTLD: "hive.blog"},
		{name: "host with port", baseURL: "http://localhost.test:8080/", wantTLD: "localhost.test"},
		{name: "no host", baseURL: "/relative", wantErr: ErrInvalidBaseURL},
		{name: "single label host", baseURL: "http://localhost:3000", wantErr: ErrNoBaseDomain},
		{name: "unparseable", baseURL: "http://[::1", wantErr: ErrInvalidBaseURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := NewSanitizer(tt.baseURL, nil)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewSanitizer(%q) error = %v, want %v", tt.baseURL, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSanitizer(%q) error = %v", tt.baseURL, err)
			}
			if got := s.TopLevelBaseDomain(); got != tt.wantTLD {
				t.Errorf("TopLevelBaseDomain() = %q, want %q", got, tt.wantTLD)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestSanitizeLink - Phishing and pseudo-local detection
// ---------------------------------------------------------------------------

func TestSanitizeLink(t *testing.T) {
	t.Parallel()

	s := newTestSanitizer(t)

	tests := []struct {
		name   string
		url    string
		title  string
		want   string
		wantOK bool
	}{
		{name: "known phishing domain", url: "https://stemit.com/", title: "https://stemit.com/", wantOK: false},
		{name: "pseudo-local mismatch", url: "https://example.com/@x", title: "https://hive.blog/@x", wantOK: false},
		{name: "pseudo-local is case-insensitive", url: "https://example.com/", title: "Visit HIVE.BLOG", wantOK: false},
		{name: "missing protocol is prepended", url: "hive.blog/@x", title: "x", want: "https://hive.blog/@x", wantOK: true},
		{name: "title and url agree", url: "https://hive.blog/@x", title: "hive.blog/@x", want: "https://hive.blog/@x", wantOK: true},
		{name: "external with neutral title", url: "https://example.com", title: "example", want: "https://example.com", wantOK: true},
		{name: "anchor", url: "#top", title: "hive.blog", want: "#top", wantOK: true},
		{name: "root relative", url: "/trending", title: "trending", want: "/trending", wantOK: true},
		{name: "protocol relative", url: "//example.com/a", title: "a", want: "//example.com/a", wantOK: true},
		{name: "hive scheme", url: "hive://sign/op", title: "sign", want: "hive://sign/op", wantOK: true},
		{name: "empty title", url: "https://example.com", title: "", want: "https://example.com", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := s.SanitizeLink(tt.url, tt.title)
			if ok != tt.wantOK {
				t.Fatalf("SanitizeLink(%q, %q) ok = %v, want %v", tt.url, tt.title, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("SanitizeLink(%q, %q) = %q, want %q", tt.url, tt.title, got, tt.want)
			}
		})
	}
}

func TestSanitizeLink_CustomPhishingDomain(t *testing.T) {
	t.Parallel()

	domains := phishing.NewWithBuiltin(nil)
	s, err := NewSanitizer("https://hive.blog", domains)
	if err != nil {
		t.Fatalf("NewSanitizer() error = %v", err)
	}

	if _, ok := s.SanitizeLink("https://evil.test/", "evil"); !ok {
		t.Fatal("evil.test should pass before it is listed")
	}
	domains.AddDomain("evil.test")
	if _, ok := s.SanitizeLink("https://evil.test/", "evil"); ok {
		t.Error("evil.test should be rejected once listed")
	}
}

// ---------------------------------------------------------------------------
// TestIsLocal / TestNormalize
// ---------------------------------------------------------------------------

func TestIsLocal(t *testing.T) {
	t.Parallel()

	s := newTestSanitizer(t)

	tests := []struct {
		link string
		want bool
	}{
		{link: "/@alice", want: true},
		{link: "#anchor", want: true},
		{link: "https://hive.blog/@alice", want: true},
		{link: "https://HIVE.blog", want: true},
		{link: "hive://sign/tx", want: true},
		{link: "//example.com/x", want: false},
		{link: "https://example.com", want: false},
		{link: "https://sub.hive.blog", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			t.Parallel()

			if got := s.IsLocal(tt.link); got != tt.want {
				t.Errorf("IsLocal(%q) = %v, want %v", tt.link, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"example.com":          "https://example.com",
		"www.example.com/a?b":  "https://www.example.com/a?b",
		"HTTP://example.com":   "HTTP://example.com",
		"https://example.com":  "https://example.com",
		"/path":                "/path",
		"//cdn.example.com/x":  "//cdn.example.com/x",
		"#frag":                "#frag",
		"hive://sign/transfer": "hive://sign/transfer",
		"javascript:alert(1)":  "https://javascript:alert(1)",
	}

	for in, want := range tests {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}
