package mdrenderer

import (
	"net/url"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Relative link and image destinations are resolved against the README base URL

var _ parser.ASTTransformer = &LinkTransformer{}

type LinkTransformer struct{}

func (lt *LinkTransformer) Transform(doc *ast.Document, _ text.Reader, pc parser.Context) {
	base, _ := pc.Get(baseKey).(*url.URL)
	if base == nil {
		return
	}
	_ = ast.Walk(doc, func(n ast.Node, enter bool) (ast.WalkStatus, error) {
		if !enter {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Link:
			if dest, ok := resolve(base, string(n.Destination)); ok {
				n.Destination = []byte(dest)
			}
		case *ast.Image:
			if dest, ok := resolve(base, string(n.Destination)); ok {
				n.Destination = []byte(dest)
			}
		}
		return ast.WalkContinue, nil
	})
}

type LinkConv struct{}

func (conv *LinkConv) Extend(md goldmark.Markdown) {
	md.Parser().AddOptions(
		parser.WithASTTransformers(util.Prioritized(&LinkTransformer{}, 100)),
	)
}

// resolve reports whether target is relative and, if so, its absolute form.
// Fragments, queries and scheme-qualified targets stay as they are.
// Protocol-relative targets take the scheme of base.
func resolve(base *url.URL, target string) (string, bool) {
	t := strings.TrimSpace(target)
	if t == "" || t[0] == '#' || t[0] == '?' {
		return target, false
	}
	ref, err := url.Parse(t)
	if err != nil {
		// READMEs often carry a literal % ("100%.md").
		if ref, err = url.Parse(escapePercent(t)); err != nil {
			return target, false
		}
	}
	if ref.IsAbs() {
		return target, false
	}
	return base.ResolveReference(ref).String(), true
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// escapePercent rewrites every % that does not start an escape sequence as %25.
func escapePercent(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && (i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2])) {
			sb.WriteString("%25")
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
