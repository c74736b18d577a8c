// Package renderer turns untrusted Hive post bodies, markdown or HTML,
// into HTML that is safe to display, with embedded media.
//
// # Quick Start
//
// Build a renderer once and reuse it from any goroutine:
//
//	r, err := renderer.New(renderer.DefaultOptions("https://hive.blog"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := r.Render(ctx, "Hello @alice, watch https://youtu.be/dQw4w9WgXcQ")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Use RenderResult to also get the hashtags, mentions, images and links
// found in the post, and the list of content that was replaced by a
// placeholder.
//
// # Rendering Pipeline
//
//  1. Plugin pre-processing, in registration order
//  2. HTML comments replaced by a visible placeholder
//  3. Markdown to HTML via goldmark, unless the input already is HTML
//  4. DOM pass: mentions, hashtags and bare URLs become links, media URLs
//     become embed markers, images are normalized and proxied
//  5. Tag sanitizer: element rewrites, then the bluemonday allow-list
//  6. Security check for script and other dangerous constructs
//  7. Embed markers replaced by canonical iframes
//  8. Plugin post-processing
//
// Embeds are resolved after sanitization, so a third-party URL from the
// post never reaches an iframe src. Only canonical URLs built by the
// embedders do.
//
// # Configuration
//
// Options is validated once by New. Invalid fields come back as a
// *ConfigError:
//
//	opts := renderer.DefaultOptions("https://hive.blog")
//	opts.Breaks = true
//	opts.AssetsWidth, opts.AssetsHeight = 560, 315
//	opts.ImageProxyFn = func(u string) string {
//	    return "https://images.hive.blog/0x0/" + u
//	}
//	opts.Plugins = []renderer.Plugin{renderer.NewInstagramPlugin()}
//
//	r, err := renderer.New(opts,
//	    renderer.WithLogger(slog.Default()),
//	    renderer.WithPhishing(phishing.Default()),
//	)
//
// # Error Handling
//
// Errors can be matched with errors.Is and errors.As:
//
//	_, err := r.Render(ctx, input)
//	var secErr *renderer.SecurityError
//	switch {
//	case errors.As(err, &secErr):
//	    // secErr.Patterns names what was found
//	case errors.Is(err, renderer.ErrEmptyInput):
//	    // nothing to render
//	}
package renderer
