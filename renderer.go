package renderer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openhive-network/denser-sub002/internal/embed"
	"github.com/openhive-network/denser-sub002/internal/locale"
	"github.com/openhive-network/denser-sub002/internal/pipeline"
	"github.com/openhive-network/denser-sub002/internal/sanitize"
	"github.com/openhive-network/denser-sub002/internal/security"
	"github.com/openhive-network/denser-sub002/links"
	"github.com/openhive-network/denser-sub002/phishing"
)

// preSanitizePatterns are checked on the DOM output before the sanitizer
// drops script elements along with their content.
var preSanitizePatterns = []string{"script-tag"}

// Result is the rendered HTML plus what was collected while rendering it.
// Collections keep first-seen order without duplicates.
type Result struct {
	HTML     string
	Hashtags []string
	Usertags []string
	Images   []string
	Links    []string
	// Errors lists sanitization downgrades: blocked iframes and broken
	// images replaced by placeholders.
	Errors []string
}

// Renderer turns untrusted markdown or HTML into display-safe HTML.
// Create with New. A Renderer is immutable and safe for concurrent use.
type Renderer struct {
	opts      Options
	logger    *slog.Logger
	domains   *phishing.DomainSet
	messages  locale.Messages
	links     *links.Sanitizer
	embeds    *embed.Registry
	converter pipeline.HTMLConverter
	sanitizer *sanitize.Sanitizer
}

// New validates opts and builds a Renderer. Invalid options return a
// *ConfigError naming the field.
func New(opts Options, options ...Option) (*Renderer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	r := &Renderer{
		opts:    opts,
		logger:  slog.New(slog.DiscardHandler),
		domains: phishing.Default(),
	}
	for _, o := range options {
		o(r)
	}
	r.opts.Plugins = append([]Plugin(nil), opts.Plugins...)

	ls, err := links.NewSanitizer(opts.BaseURL, r.domains)
	if err != nil {
		return nil, &ConfigError{Field: "baseUrl", Reason: err.Error()}
	}
	r.links = ls
	r.messages = locale.For(opts.Locale)
	r.embeds = embed.NewRegistry(ls.Host())
	r.converter = pipeline.NewGoldmarkConverter(opts.Breaks)
	r.sanitizer = sanitize.New(sanitize.Options{
		Embeds:            r.embeds,
		Links:             ls,
		IsLinkSafe:        opts.IsLinkSafeFn,
		AddNofollow:       opts.AddNofollowToLinks,
		AddTargetBlank:    opts.AddTargetBlankToLinks,
		InternalLinkClass: opts.CSSClassForInternalLinks,
		ExternalLinkClass: opts.CSSClassForExternalLinks,
		AddExternalClass:  opts.AddExternalCSSClassToMatchingLinksFn,
		DoNotShowImages:   opts.DoNotShowImages,
		Size:              r.size(),
		Messages:          r.messages,
	})
	return r, nil
}

// Render returns the display-safe HTML for input.
func (r *Renderer) Render(ctx context.Context, input string) (string, error) {
	res, err := r.RenderResult(ctx, input)
	if err != nil {
		return "", err
	}
	return res.HTML, nil
}

// RenderResult renders input and returns the HTML with the hashtags,
// mentions, images and links found in it.
//
// A *SecurityError means dangerous content survived sanitization, or a
// script element was present in the input. No partial output is
// returned in that case.
func (r *Renderer) RenderResult(ctx context.Context, input string) (result *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = fmt.Errorf("internal error: %v", rec)
		}
	}()

	if err := r.validateInput(input); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := preProcess(r.opts.Plugins, input)
	text = pipeline.StripComments(text)

	htmlContent := text
	if !pipeline.IsHTML(text) {
		htmlContent, err = r.converter.ToHTML(ctx, pipeline.NormalizeLineEndings(text))
		if err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dom, err := pipeline.ProcessDOM(htmlContent, r.domOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	if !r.opts.AllowInsecureScriptTags {
		if err := security.Check(dom.HTML, r.securityOptions(preSanitizePatterns)); err != nil {
			return nil, err
		}
	}

	out := dom.HTML
	var downgrades []string
	if r.opts.SkipSanitization {
		r.logger.Warn("sanitization skipped")
	} else {
		out, downgrades, err = r.sanitizer.Sanitize(out)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
		}
		for _, d := range downgrades {
			r.logger.Info("content downgraded", "event", d)
		}
	}

	if err := security.Check(out, r.securityOptions(nil)); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out = r.embeds.InsertAssets(out, r.size())
	out = postProcess(r.opts.Plugins, out)

	r.logger.Debug("rendered",
		"inputBytes", len(input),
		"outputBytes", len(out),
		"embeds", len(dom.Embeds),
		"downgrades", len(downgrades))

	return &Result{
		HTML:     out,
		Hashtags: dom.Hashtags,
		Usertags: dom.Usertags,
		Images:   dom.Images,
		Links:    dom.Links,
		Errors:   downgrades,
	}, nil
}

// validateInput checks input constraints before any processing.
func (r *Renderer) validateInput(input string) error {
	if input == "" {
		return ErrEmptyInput
	}
	if r.opts.MaxInputBytes > 0 && len(input) > r.opts.MaxInputBytes {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrInputTooLarge, len(input), r.opts.MaxInputBytes)
	}
	return nil
}

func (r *Renderer) domOptions() pipeline.DOMOptions {
	return pipeline.DOMOptions{
		HashtagURL:      r.opts.HashtagURLFn,
		UsertagURL:      r.opts.UsertagURLFn,
		ImageProxy:      r.opts.ImageProxyFn,
		IPFSPrefix:      r.opts.IPFSPrefix,
		Links:           r.links,
		Embeds:          r.embeds,
		PhishingWarning: r.messages.PhishingWarning,
	}
}

func (r *Renderer) securityOptions(patterns []string) security.Options {
	return security.Options{
		AllowScriptTag: r.opts.AllowInsecureScriptTags,
		Patterns:       patterns,
		Logger:         r.logger,
	}
}

func (r *Renderer) size() embed.Size {
	return embed.Size{Width: r.opts.AssetsWidth, Height: r.opts.AssetsHeight}
}
