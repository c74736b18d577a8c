package pipeline

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// DefaultSpoilerTitle labels a spoiler written without [title].
const DefaultSpoilerTitle = "Reveal spoiler"

// spoilerPriority runs ahead of the blockquote parser (800), which would
// otherwise claim every '>' line.
const spoilerPriority = 799

// spoilerOpen matches ">! [title] first line".
var spoilerOpen = regexp.MustCompile(`^>!\s*(?:\[([^\]]*)\])?\s*(.*)$`)

// KindSpoiler is the goldmark node kind for spoiler blocks.
var KindSpoiler = ast.NewNodeKind("Spoiler")

// SpoilerNode is a collapsed block opened by ">!" and continued by
// following ">" lines.
type SpoilerNode struct {
	ast.BaseBlock
	Title string
	Body  []string
}

var _ ast.Node = (*SpoilerNode)(nil)

// Kind implements ast.Node.
func (n *SpoilerNode) Kind() ast.NodeKind {
	return KindSpoiler
}

// Dump implements ast.Node.
func (n *SpoilerNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Title": n.Title,
		"Body":  strings.Join(n.Body, "|"),
	}, nil)
}

type spoilerParser struct{}

func (spoilerParser) Trigger() []byte {
	return []byte{'>'}
}

func (spoilerParser) Open(_ ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || pos >= len(line) {
		return nil, parser.NoChildren
	}

	m := spoilerOpen.FindSubmatch(bytes.TrimRight(line[pos:], "\r\n"))
	if m == nil {
		return nil, parser.NoChildren
	}

	node := &SpoilerNode{Title: strings.TrimSpace(string(m[1]))}
	if first := strings.TrimSpace(string(m[2])); first != "" {
		node.Body = append(node.Body, first)
	}
	reader.Advance(segment.Len() - 1)
	return node, parser.NoChildren
}

func (spoilerParser) Continue(node ast.Node, reader text.Reader, _ parser.Context) parser.State {
	line, segment := reader.PeekLine()
	if util.IsBlank(line) {
		return parser.Close
	}

	trimmed := bytes.TrimLeft(line, " \t")
	if len(trimmed) == 0 || trimmed[0] != '>' {
		return parser.Close
	}
	body := bytes.TrimPrefix(trimmed[1:], []byte{'!'})
	if content := strings.TrimSpace(string(body)); content != "" {
		n := node.(*SpoilerNode)
		n.Body = append(n.Body, content)
	}
	reader.Advance(segment.Len() - 1)
	return parser.Continue | parser.NoChildren
}

func (spoilerParser) Close(ast.Node, text.Reader, parser.Context) {}

func (spoilerParser) CanInterruptParagraph() bool {
	return true
}

func (spoilerParser) CanAcceptIndentedLine() bool {
	return false
}

type spoilerRenderer struct{}

func (spoilerRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindSpoiler, renderSpoiler)
}

// renderSpoiler writes <details><summary>title</summary><p>body</p></details>.
// Title and body are escaped text.
func renderSpoiler(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*SpoilerNode)

	title := n.Title
	if title == "" {
		title = DefaultSpoilerTitle
	}

	_, _ = w.WriteString("<details><summary>")
	_, _ = w.Write(util.EscapeHTML([]byte(title)))
	_, _ = w.WriteString("</summary><p>")
	_, _ = w.Write(util.EscapeHTML([]byte(strings.Join(n.Body, " "))))
	_, _ = w.WriteString("</p></details>\n")
	return ast.WalkSkipChildren, nil
}

type spoilerExtension struct{}

// Spoiler adds ">! [title] text" spoiler blocks to a goldmark instance.
var Spoiler goldmark.Extender = spoilerExtension{}

func (spoilerExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithBlockParsers(
		util.Prioritized(spoilerParser{}, spoilerPriority),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(spoilerRenderer{}, 500),
	))
}
