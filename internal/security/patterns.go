package security

import "regexp"

// pattern is one named dangerous construct. Text patterns run on the
// whole decoded document; the rest only see real tags.
type pattern struct {
	name string
	re   *regexp.Regexp
	text bool
}

// attrURL matches the start of a URL-bearing attribute value.
const attrURL = `(?:href|src|action|formaction|xlink:href|data|poster|background)\s*=\s*["']?\s*`

// patterns are matched against normalized views of the HTML. Tag and
// attribute patterns only see tags found by the tokenizer, so escaped
// text such as "i &lt; n; online = 1" in a code listing cannot open a
// fake tag. Go's regexp is RE2, which runs in linear
// time, so none of these can backtrack catastrophically.
var patterns = []pattern{
	// Executable or document-altering elements.
	{"script-tag", regexp.MustCompile(`(?i)<\s*/?\s*script\b`), true},
	{"object-tag", regexp.MustCompile(`(?i)<\s*object\b`), false},
	{"embed-tag", regexp.MustCompile(`(?i)<\s*embed\b`), false},
	{"applet-tag", regexp.MustCompile(`(?i)<\s*applet\b`), false},
	{"form-tag", regexp.MustCompile(`(?i)<\s*form\b`), false},
	{"input-tag", regexp.MustCompile(`(?i)<\s*(?:input|button|textarea|select)\b`), false},
	{"base-tag", regexp.MustCompile(`(?i)<\s*base\b`), false},
	{"meta-refresh", regexp.MustCompile(`(?i)<\s*meta\b[^>]*http-equiv\s*=\s*["']?\s*refresh`), false},
	{"style-tag", regexp.MustCompile(`(?i)<\s*style\b`), false},
	{"link-stylesheet", regexp.MustCompile(`(?i)<\s*link\b[^>]*\brel\s*=\s*["']?\s*(?:stylesheet|import)`), false},
	{"frameset-tag", regexp.MustCompile(`(?i)<\s*(?:frameset|frame)\b`), false},

	// Event handlers on any tag.
	{"event-handler", regexp.MustCompile(`(?i)<[a-z][a-z0-9-]*\b[^>]*[\s"'/]on[a-z]+\s*=`), false},
	{"slash-event-handler", regexp.MustCompile(`(?i)<[a-z0-9]+/+on[a-z]+\s*=`), false},

	// Script-capable URL schemes in URL attributes.
	{"javascript-url", regexp.MustCompile(`(?i)` + attrURL + `javascript:`), false},
	{"vbscript-url", regexp.MustCompile(`(?i)` + attrURL + `vbscript:`), false},
	{"livescript-url", regexp.MustCompile(`(?i)` + attrURL + `livescript:`), false},
	{"data-html-url", regexp.MustCompile(`(?i)data:\s*(?:text/html|application/xhtml|image/svg\+xml)`), false},

	// Active CSS inside style attributes or blocks.
	{"css-expression", regexp.MustCompile(`(?i)style\s*=\s*["'][^"']*expression\s*\(`), false},
	{"css-behavior", regexp.MustCompile(`(?i)style\s*=\s*["'][^"']*(?:behavior\s*:|-moz-binding)`), false},
	{"css-import", regexp.MustCompile(`(?i)<\s*style\b[^>]*>[^<]*@import`), false},
	{"css-javascript-url", regexp.MustCompile(`(?i)style\s*=\s*["'][^"']*url\s*\(\s*["']?\s*(?:javascript|vbscript):`), false},

	// SVG carrying script.
	{"svg-script", regexp.MustCompile(`(?i)<\s*svg\b[^>]*>.*<\s*script\b`), false},
	{"svg-handler", regexp.MustCompile(`(?i)<\s*svg\b[^>]*\son[a-z]+\s*=`), false},
	{"svg-animate-href", regexp.MustCompile(`(?i)<\s*(?:animate|set)\b[^>]*attributename\s*=\s*["']?\s*(?:xlink:)?href`), false},

	// Client-side template injection.
	{"template-constructor", regexp.MustCompile(`(?i)\{\{[^}]*constructor[^}]*\}\}`), true},
	{"bracket-constructor", regexp.MustCompile(`(?i)\[\s*["']constructor["']\s*\]`), true},
}

// PatternNames lists every pattern name in match order.
func PatternNames() []string {
	names := make([]string, len(patterns))
	for i, p := range patterns {
		names[i] = p.name
	}
	return names
}
