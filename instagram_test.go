package renderer

import (
	"context"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestInstagramPlugin_PreProcess - Standalone URL lines
// ---------------------------------------------------------------------------

func TestInstagramPlugin_PreProcess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "post",
			input: "https://www.instagram.com/p/CxYz123/",
			want:  "%%instagram:p/CxYz123%%",
		},
		{
			name:  "reel with query",
			input: "https://instagram.com/reel/Ab_c-9?igshid=xyz",
			want:  "%%instagram:reel/Ab_c-9%%",
		},
		{
			name:  "tv with surrounding lines",
			input: "before\n  https://www.instagram.com/tv/Q1/  \nafter",
			want:  "before\n%%instagram:tv/Q1%%\nafter",
		},
		{
			name:  "inline url untouched",
			input: "see https://www.instagram.com/p/CxYz123/ here",
			want:  "see https://www.instagram.com/p/CxYz123/ here",
		},
		{
			name:  "profile url untouched",
			input: "https://www.instagram.com/hiveio/",
			want:  "https://www.instagram.com/hiveio/",
		},
	}

	p := NewInstagramPlugin()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := p.PreProcess(tt.input); got != tt.want {
				t.Errorf("PreProcess() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestInstagramPlugin_PostProcess - Token expansion
// ---------------------------------------------------------------------------

func TestInstagramPlugin_PostProcess(t *testing.T) {
	t.Parallel()

	const blockquote = `<blockquote class="instagram-media" data-instgrm-permalink="https://www.instagram.com/p/CxYz123/" data-instgrm-version="14">` +
		`<a href="https://www.instagram.com/p/CxYz123/" target="_blank" rel="noopener">https://www.instagram.com/p/CxYz123/</a></blockquote>`

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"own paragraph", "<p>%%instagram:p/CxYz123%%</p>\n", blockquote + "\n"},
		{"bare token", "%%instagram:p/CxYz123%%", blockquote},
		{"no token", "<p>hello</p>", "<p>hello</p>"},
		{"unknown kind", "<p>%%instagram:story/CxYz123%%</p>", "<p>%%instagram:story/CxYz123%%</p>"},
	}

	p := NewInstagramPlugin()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := p.PostProcess(tt.input); got != tt.want {
				t.Errorf("PostProcess() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestInstagramPlugin_Render - Through the renderer
// ---------------------------------------------------------------------------

func TestInstagramPlugin_Render(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t, func(o *Options) {
		o.Plugins = []Plugin{NewInstagramPlugin()}
	})

	got, err := r.Render(context.Background(), "Look:\n\nhttps://www.instagram.com/p/CxYz123_ab/?igshid=abc\n")
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	want := `<blockquote class="instagram-media" data-instgrm-permalink="https://www.instagram.com/p/CxYz123_ab/"`
	if !strings.Contains(got, want) {
		t.Errorf("Render() = %q, want %q", got, want)
	}
	if strings.Contains(got, "<p><blockquote") || strings.Contains(got, "<script") {
		t.Errorf("Render() = %q, unexpected wrapper or script", got)
	}
}
