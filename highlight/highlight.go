// Package highlight adds syntax highlighting to already rendered README fragments.
//
// Highlighting is cosmetic. Pages are complete and correct without it, so the
// work is scheduled after they are written and failures only get logged.
package highlight

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var ErrUnknownStyle = errors.New("unknown chroma style")

// Enhancer is safe for concurrent use.
type Enhancer struct {
	style     *chroma.Style
	formatter *chtml.Formatter
}

func NewEnhancer(styleName string) (*Enhancer, error) {
	style, ok := styles.Registry[styleName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, styleName)
	}
	return &Enhancer{
		style:     style,
		formatter: newFormatter(),
	}, nil
}

// Identical to the options of mdrenderer.WithInlineHighlighting
func newFormatter() *chtml.Formatter {
	return chtml.New(chtml.WithClasses(true), chtml.TabWidth(4))
}

// Enhance rewrites every <pre><code class="language-x"> block with a known lexer.
// It reports whether anything changed; when nothing did, the input is returned as is.
func (e *Enhancer) Enhance(fragment string) (string, bool, error) {
	if !strings.Contains(fragment, "<pre") {
		return fragment, false, nil
	}
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return fragment, false, fmt.Errorf("could not parse fragment: %w", err)
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}

	var blocks []*html.Node
	walk(body, func(n *html.Node) {
		if n.DataAtom == atom.Pre {
			blocks = append(blocks, n)
		}
	})

	changed := false
	for _, pre := range blocks {
		code := pre.FirstChild
		if code == nil || code.DataAtom != atom.Code || code.NextSibling != nil {
			continue
		}
		lexer := lexerFor(code)
		if lexer == nil {
			continue
		}

		var buf bytes.Buffer
		it, err := lexer.Tokenise(nil, textContent(code))
		if err != nil {
			return fragment, false, fmt.Errorf("could not tokenise %s block: %w", lexer.Config().Name, err)
		}
		if err := e.formatter.Format(&buf, e.style, it); err != nil {
			return fragment, false, fmt.Errorf("could not format %s block: %w", lexer.Config().Name, err)
		}

		highlighted, err := html.ParseFragment(&buf, body)
		if err != nil {
			return fragment, false, fmt.Errorf("could not parse highlighted block: %w", err)
		}
		for _, n := range highlighted {
			pre.Parent.InsertBefore(n, pre)
		}
		pre.Parent.RemoveChild(pre)
		changed = true
	}
	if !changed {
		return fragment, false, nil
	}

	var out strings.Builder
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&out, c); err != nil {
			return fragment, false, err
		}
	}
	return out.String(), true, nil
}

func lexerFor(code *html.Node) chroma.Lexer {
	for _, attr := range code.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, class := range strings.Fields(attr.Val) {
			if lang, ok := strings.CutPrefix(class, "language-"); ok {
				return lexers.Get(lang)
			}
		}
	}
	return nil
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	})
	return sb.String()
}

// StyleCSS returns the stylesheet for a chroma style, scoped under scope (may be empty).
func StyleCSS(styleName, scope string) (string, error) {
	style, ok := styles.Registry[styleName]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, styleName)
	}
	var buf bytes.Buffer
	if err := newFormatter().WriteCSS(&buf, style); err != nil {
		return "", err
	}
	if scope == "" {
		return buf.String(), nil
	}
	return fmt.Sprintf("%s {%s}", scope, buf.String()), nil
}
