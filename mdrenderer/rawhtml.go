package mdrenderer

import (
	"bytes"
	"net/url"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
	"golang.org/x/net/html"
)

// READMEs often embed raw <img> and <a> tags; their targets get the same
// treatment as markdown links.

var _ renderer.NodeRenderer = &rawHTMLRenderer{}

type rawHTMLRenderer struct{}

func (rh *rawHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHTMLBlock, rh.renderHTMLBlock)
	reg.Register(ast.KindRawHTML, rh.renderRawHTML)
}

func (rh *rawHTMLRenderer) renderHTMLBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.HTMLBlock)
	var buf bytes.Buffer
	for i := 0; i < n.Lines().Len(); i++ {
		line := n.Lines().At(i)
		buf.Write(line.Value(source))
	}
	if n.HasClosure() {
		buf.Write(n.ClosureLine.Value(source))
	}
	_, err := w.Write(rewriteHTML(buf.Bytes(), documentBase(node)))
	return ast.WalkSkipChildren, err
}

func (rh *rawHTMLRenderer) renderRawHTML(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	n := node.(*ast.RawHTML)
	var buf bytes.Buffer
	for i := 0; i < n.Segments.Len(); i++ {
		segment := n.Segments.At(i)
		buf.Write(segment.Value(source))
	}
	_, err := w.Write(rewriteHTML(buf.Bytes(), documentBase(node)))
	return ast.WalkSkipChildren, err
}

func documentBase(n ast.Node) *url.URL {
	doc := n.OwnerDocument()
	if doc == nil {
		return nil
	}
	base, _ := doc.Meta()[baseMetaKey].(*url.URL)
	return base
}

// rewriteHTML resolves href and src attributes. Tags it does not touch are
// copied byte for byte.
func rewriteHTML(raw []byte, base *url.URL) []byte {
	if base == nil {
		return raw
	}
	var buf bytes.Buffer
	z := html.NewTokenizer(bytes.NewReader(raw))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		original := bytes.Clone(z.Raw())
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			buf.Write(original)
			continue
		}

		tok := z.Token()
		changed := false
		for i, attr := range tok.Attr {
			if attr.Key != "href" && attr.Key != "src" {
				continue
			}
			if dest, ok := resolve(base, attr.Val); ok {
				tok.Attr[i].Val = dest
				changed = true
			}
		}
		if changed {
			buf.WriteString(tok.String())
		} else {
			buf.Write(original)
		}
	}
	return buf.Bytes()
}

type RawHTMLConv struct{}

func (conv *RawHTMLConv) Extend(md goldmark.Markdown) {
	md.Renderer().AddOptions(renderer.WithNodeRenderers(util.Prioritized(&rawHTMLRenderer{}, 100)))
}
