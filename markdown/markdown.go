// Package markdown renders post bodies to HTML with goldmark and collects
// the heading outline and plain text the rest of the site derives from them.
package markdown

import (
	"bytes"
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

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Footnote),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// Heading is one entry of a document outline.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// Document is a rendered Markdown body.
type Document struct {
	HTML     string
	Headings []Heading
	// Text is the readable text of the body with whitespace collapsed.
	// Code blocks are left out.
	Text string
}

// Outline returns the headings between minLevel and maxLevel inclusive.
func (d Document) Outline(minLevel, maxLevel int) []Heading {
	var out []Heading
	for _, h := range d.Headings {
		if h.Level >= minLevel && h.Level <= maxLevel {
			out = append(out, h)
		}
	}
	return out
}

// Render converts source to HTML and walks the AST once for headings and text.
func Render(source string) (Document, error) {
	src := []byte(source)
	root := md.Parser().Parse(text.NewReader(src))

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, src, root); err != nil {
		return Document{}, err
	}

	doc := Document{HTML: buf.String()}
	var plain strings.Builder
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
			return ast.WalkSkipChildren, nil
		case *ast.Heading:
			if entering {
				id, _ := node.AttributeString("id")
				idBytes, _ := id.([]byte)
				doc.Headings = append(doc.Headings, Heading{
					Level: node.Level,
					ID:    string(idBytes),
					Text:  nodeText(node, src),
				})
			}
		case *ast.Text:
			if entering {
				plain.Write(node.Segment.Value(src))
				if node.SoftLineBreak() || node.HardLineBreak() {
					plain.WriteByte(' ')
				}
			}
		case *ast.String:
			if entering {
				plain.Write(node.Value)
			}
		}
		if !entering && n.Type() == ast.TypeBlock {
			plain.WriteByte(' ')
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return Document{}, err
	}
	doc.Text = strings.Join(strings.Fields(plain.String()), " ")
	return doc, nil
}

func nodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// Markdown returns a templ.Component that writes the rendered body verbatim.
func Markdown(doc Document) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, doc.HTML)
		return err
	})
}
