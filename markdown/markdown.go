// Package markdown renders blog post bodies to HTML as templ components.
package markdown

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Raw HTML in posts is dropped: goldmark escapes it unless WithUnsafe is set.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
	),
)

// Markdown returns a templ.Component that renders content as HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return md.Convert([]byte(content), w)
	})
}

// PlainText returns the text of the first paragraphs of content with all
// markup removed, cut at a word boundary to at most max bytes. Headings and
// code blocks are skipped. It is used as a summary for posts without one.
func PlainText(content string, max int) string {
	source := []byte(content)
	doc := md.Parser().Parse(text.NewReader(source))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch n.Kind() {
		case ast.KindHeading, ast.KindFencedCodeBlock, ast.KindCodeBlock, ast.KindHTMLBlock:
			return ast.WalkSkipChildren, nil
		case ast.KindParagraph:
			if !entering && b.Len() > 0 {
				b.WriteByte(' ')
			}
		case ast.KindText:
			if entering {
				t := n.(*ast.Text)
				b.Write(t.Segment.Value(source))
				if t.SoftLineBreak() || t.HardLineBreak() {
					b.WriteByte(' ')
				}
			}
		}
		if b.Len() > max {
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return truncateWords(strings.Join(strings.Fields(b.String()), " "), max)
}

func truncateWords(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	} else {
		// No space to break on; back off to a rune boundary.
		for len(cut) > 0 && !isRuneStart(s[len(cut)]) {
			cut = cut[:len(cut)-1]
		}
	}
	return strings.TrimRight(cut, " ,;:") + "…"
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
