package pipeline

// Notes:
// - Assertions use substrings where goldmark's exact whitespace is not the
//   point of the test.

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ---------------------------------------------------------------------------
// TestGoldmarkConverter_ToHTML
// ---------------------------------------------------------------------------

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		breaks       bool
		input        string
		want         string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:  "paragraph",
			input: "hello",
			want:  "<p>hello</p>\n",
		},
		{
			name:   "soft break kept without breaks",
			breaks: false,
			input:  "a\nb",
			want:   "<p>a\nb</p>\n",
		},
		{
			name:   "hard break with breaks",
			breaks: true,
			input:  "a\nb",
			want:   "<p>a<br />\nb</p>\n",
		},
		{
			name:         "strikethrough",
			input:        "~~gone~~",
			wantContains: []string{"<del>gone</del>"},
		},
		{
			name:         "table alignment as style",
			input:        "| a | b |\n|--:|:-:|\n| 1 | 2 |",
			wantContains: []string{`<th style="text-align:right">a</th>`, `<td style="text-align:center">2</td>`},
		},
		{
			name:         "raw html passes through",
			input:        `<div class="pull-left">x</div>`,
			wantContains: []string{`<div class="pull-left">x</div>`},
		},
		{
			name:         "blockquote unaffected",
			input:        "> quoted",
			wantContains: []string{"<blockquote>"},
			wantExcludes: []string{"<details>"},
		},
		{
			name:  "spoiler with title",
			input: ">! [Ending] the butler\n> did it",
			want:  "<details><summary>Ending</summary><p>the butler did it</p></details>\n",
		},
		{
			name:  "spoiler default title",
			input: ">! secret",
			want:  "<details><summary>Reveal spoiler</summary><p>secret</p></details>\n",
		},
		{
			name:         "spoiler escapes markup",
			input:        ">! [<b>t</b>] <i>x</i>",
			wantContains: []string{"<summary>&lt;b&gt;t&lt;/b&gt;</summary>", "<p>&lt;i&gt;x&lt;/i&gt;</p>"},
		},
		{
			name:         "spoiler ends at blank line",
			input:        ">! hidden\n\nvisible",
			wantContains: []string{"<p>hidden</p></details>", "<p>visible</p>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewGoldmarkConverter(tt.breaks).ToHTML(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			if tt.want != "" && got != tt.want {
				t.Errorf("ToHTML() = %q, want %q", got, tt.want)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML() = %q, missing %q", got, want)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("ToHTML() = %q, should not contain %q", got, exclude)
				}
			}
		})
	}
}

func TestGoldmarkConverter_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter(false).ToHTML(ctx, "hello")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}

func TestSpoiler_ParsesNode(t *testing.T) {
	t.Parallel()

	source := []byte(">! [Click] hidden\n> more\n\nafter")
	md := goldmark.New(goldmark.WithExtensions(Spoiler))
	doc := md.Parser().Parse(text.NewReader(source))

	var spoilers []*SpoilerNode
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if s, ok := n.(*SpoilerNode); ok && entering {
			spoilers = append(spoilers, s)
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	if len(spoilers) != 1 {
		t.Fatalf("found %d spoiler nodes, want 1", len(spoilers))
	}
	got := spoilers[0]
	if got.Title != "Click" {
		t.Errorf("Title = %q, want %q", got.Title, "Click")
	}
	if strings.Join(got.Body, "|") != "hidden|more" {
		t.Errorf("Body = %q, want [hidden more]", got.Body)
	}
	if got.Kind() != KindSpoiler {
		t.Errorf("Kind() = %v, want KindSpoiler", got.Kind())
	}
}

func TestSpoiler_RendersJoinedBody(t *testing.T) {
	t.Parallel()

	got, err := NewGoldmarkConverter(false).ToHTML(context.Background(), ">! [Click] hidden\n> more")
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}
	want := "<details><summary>Click</summary><p>hidden more</p></details>\n"
	if got != want {
		t.Errorf("ToHTML() = %q, want %q", got, want)
	}
}
