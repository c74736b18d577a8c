package renderer

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/openhive-network/denser-sub002/phishing"
)

// ---------------------------------------------------------------------------
// TestOptionsValidate - Field validation
// ---------------------------------------------------------------------------

func TestOptionsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*Options)
		wantField string
	}{
		{"defaults", func(*Options) {}, ""},
		{"empty base url", func(o *Options) { o.BaseURL = "" }, "baseUrl"},
		{"base url without host", func(o *Options) { o.BaseURL = "/relative" }, "baseUrl"},
		{"base url without domain", func(o *Options) { o.BaseURL = "http://localhost" }, "baseUrl"},
		{"zero width", func(o *Options) { o.AssetsWidth = 0 }, "assetsWidth"},
		{"negative height", func(o *Options) { o.AssetsHeight = -1 }, "assetsHeight"},
		{"internal class with quote", func(o *Options) { o.CSSClassForInternalLinks = `a"b` }, "cssClassForInternalLinks"},
		{"external class with angle", func(o *Options) { o.CSSClassForExternalLinks = "<x>" }, "cssClassForExternalLinks"},
		{"class list ok", func(o *Options) { o.CSSClassForExternalLinks = "ext link-out" }, ""},
		{"ipfs prefix relative", func(o *Options) { o.IPFSPrefix = "/ipfs" }, "ipfsPrefix"},
		{"ipfs prefix ftp", func(o *Options) { o.IPFSPrefix = "ftp://ipfs.io/ipfs" }, "ipfsPrefix"},
		{"ipfs prefix ok", func(o *Options) { o.IPFSPrefix = "https://ipfs.io/ipfs" }, ""},
		{"nil image proxy", func(o *Options) { o.ImageProxyFn = nil }, "imageProxyFn"},
		{"nil hashtag url", func(o *Options) { o.HashtagURLFn = nil }, "hashtagUrlFn"},
		{"nil usertag url", func(o *Options) { o.UsertagURLFn = nil }, "usertagUrlFn"},
		{"nil link safety", func(o *Options) { o.IsLinkSafeFn = nil }, "isLinkSafeFn"},
		{"nil external class predicate", func(o *Options) { o.AddExternalCSSClassToMatchingLinksFn = nil }, "addExternalCssClassToMatchingLinksFn"},
		{"nil plugin", func(o *Options) { o.Plugins = []Plugin{nil} }, "plugins"},
		{"unnamed plugin", func(o *Options) { o.Plugins = []Plugin{PluginFuncs{}} }, "plugins"},
		{"bad locale", func(o *Options) { o.Locale = "not a tag!" }, "locale"},
		{"unsupported locale falls back", func(o *Options) { o.Locale = "fr" }, ""},
		{"negative input limit", func(o *Options) { o.MaxInputBytes = -1 }, "maxInputBytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := DefaultOptions(testBaseURL)
			tt.mutate(&opts)
			err := opts.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}

			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Validate() error = %v, want *ConfigError", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.wantField)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Error("error should wrap ErrInvalidConfig")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDefaultOptions - Callback defaults
// ---------------------------------------------------------------------------

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions(testBaseURL)

	if opts.AssetsWidth != DefaultAssetsWidth || opts.AssetsHeight != DefaultAssetsHeight {
		t.Errorf("size = %dx%d, want %dx%d", opts.AssetsWidth, opts.AssetsHeight, DefaultAssetsWidth, DefaultAssetsHeight)
	}
	if got := opts.ImageProxyFn("https://x.com/a.png"); got != "https://x.com/a.png" {
		t.Errorf("ImageProxyFn() = %q, want identity", got)
	}
	if got := opts.HashtagURLFn("hive"); got != "/trending/hive" {
		t.Errorf("HashtagURLFn() = %q, want %q", got, "/trending/hive")
	}
	if got := opts.UsertagURLFn("alice"); got != "/@alice" {
		t.Errorf("UsertagURLFn() = %q, want %q", got, "/@alice")
	}
	if !opts.IsLinkSafeFn("https://example.com") {
		t.Error("IsLinkSafeFn() should accept by default")
	}
	for link, want := range map[string]bool{
		"https://example.com":   true,
		"//example.com/a.png":   true,
		testBaseURL + "/@alice": false,
		"/trending/hive":        false,
		"#section":              false,
	} {
		if got := opts.AddExternalCSSClassToMatchingLinksFn(link); got != want {
			t.Errorf("AddExternalCSSClassToMatchingLinksFn(%q) = %v, want %v", link, got, want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestConfigError - Error formatting
// ---------------------------------------------------------------------------

func TestConfigError(t *testing.T) {
	t.Parallel()

	err := &ConfigError{Field: "assetsWidth", Reason: "must be a positive integer, got 0"}
	want := "invalid configuration: assetsWidth: must be a positive integer, got 0"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

// ---------------------------------------------------------------------------
// TestOptions - Functional options
// ---------------------------------------------------------------------------

func TestWithLogger(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.DiscardHandler)
	r := newTestRenderer(t, nil, WithLogger(logger))
	if r.logger != logger {
		t.Error("WithLogger() did not set the logger")
	}

	r = newTestRenderer(t, nil, WithLogger(nil))
	if r.logger == nil {
		t.Error("WithLogger(nil) should keep the default logger")
	}
}

func TestWithPhishing(t *testing.T) {
	t.Parallel()

	domains := phishing.New()
	r := newTestRenderer(t, nil, WithPhishing(domains))
	if r.domains != domains {
		t.Error("WithPhishing() did not set the domain set")
	}

	r = newTestRenderer(t, nil, WithPhishing(nil))
	if r.domains != phishing.Default() {
		t.Error("WithPhishing(nil) should keep the default set")
	}
}
