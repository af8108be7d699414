package web

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

var (
	descRenderer  goldmark.Markdown
	htmlSanitizer *bluemonday.Policy
)

func init() {
	// Descriptions are plain text. The only construct recognized is a bare
	// URL, so headings, lists, emphasis and code spans stay literal.
	p := parser.NewParser(
		parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 1000)),
		parser.WithInlineParsers(util.Prioritized(extension.NewLinkifyParser(), 999)),
	)
	r := renderer.NewRenderer(renderer.WithNodeRenderers(
		util.Prioritized(html.NewRenderer(), 1000),
		util.Prioritized(literalTextRenderer{}, 100),
	))
	descRenderer = goldmark.New(goldmark.WithParser(p), goldmark.WithRenderer(r))

	htmlSanitizer = bluemonday.UGCPolicy()
}

// literalTextRenderer writes text nodes exactly as they appear in the source.
// The stock renderer would resolve backslash escapes and entity references.
type literalTextRenderer struct{}

func (literalTextRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindText, renderLiteralText)
}

func renderLiteralText(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Text)
	_, _ = w.Write(util.EscapeHTML(n.Segment.Value(source)))
	if n.SoftLineBreak() || n.HardLineBreak() {
		_ = w.WriteByte(' ')
	}
	return ast.WalkContinue, nil
}

// RenderDescription converts a repository description to sanitized HTML.
// Text is escaped verbatim and bare URLs become nofollow links.
// Returns empty string for empty input.
func RenderDescription(src string) string {
	// Collapsing whitespace keeps the description one paragraph and leaves
	// no line ending for a trailing backslash to turn into a break.
	src = strings.Join(strings.Fields(src), " ")
	if src == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := descRenderer.Convert([]byte(src), &buf); err != nil {
		return htmlSanitizer.Sanitize(string(util.EscapeHTML([]byte(src))))
	}

	return htmlSanitizer.Sanitize(buf.String())
}

// SanitizeImageURL returns raw if it is an absolute http(s) URL, otherwise "".
func SanitizeImageURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return ""
	}
	return u.String()
}
