// Package mdrenderer turns proposal READMEs into HTML.
//
// The output is NOT safe to display: raw HTML from the README is passed through
// and must go through the sanitizer package first.
package mdrenderer

import (
	"bytes"
	"fmt"
	"net/url"

	chtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/tc39tracker/tracker"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

var (
	baseKey = parser.NewContextKey()
)

const baseMetaKey = "base_url"

type options struct {
	highlightStyle string
}

type Option func(*options)

// WithInlineHighlighting highlights fenced code while rendering, instead of
// leaving it to the deferred highlight pass.
func WithInlineHighlighting(style string) Option {
	return func(o *options) {
		o.highlightStyle = style
	}
}

// Renderer is safe for concurrent use. The same input always produces the same output.
type Renderer struct {
	md goldmark.Markdown
}

func New(opts ...Option) *Renderer {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	exts := []goldmark.Extender{extension.GFM, extension.Footnote, &LinkConv{}, &HeadingConv{}, &RawHTMLConv{}}
	if o.highlightStyle != "" {
		exts = append(exts, highlighting.NewHighlighting(
			highlighting.WithStyle(o.highlightStyle),
			highlighting.WithFormatOptions( // Keep in line with highlight.Enhancer
				chtml.TabWidth(4),
				chtml.WithClasses(true),
			),
		))
	}

	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID(), parser.WithAttribute()),
		goldmark.WithRendererOptions(html.WithXHTML(), html.WithUnsafe()),
	)
	return &Renderer{md}
}

// Render converts markdown to HTML. Relative link and image targets are resolved
// against baseURL; an empty baseURL leaves them untouched.
func (r *Renderer) Render(markdown string, baseURL string) (string, error) {
	base, err := parseBase(baseURL)
	if err != nil {
		return "", err
	}

	src := []byte(markdown)
	pctx := parser.NewContext()
	pctx.Set(baseKey, base)

	doc := r.md.Parser().Parse(text.NewReader(src), parser.WithContext(pctx))
	doc.OwnerDocument().Meta()[baseMetaKey] = base

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, src, doc); err != nil {
		return "", fmt.Errorf("could not render markdown: %w", err)
	}
	return buf.String(), nil
}

func parseBase(baseURL string) (*url.URL, error) {
	if baseURL == "" {
		return nil, nil
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, tracker.WrapStatus(tracker.ErrInvalidBaseURL, err)
	}
	if !base.IsAbs() || base.Host == "" {
		return nil, tracker.WrapStatus(tracker.ErrInvalidBaseURL, fmt.Errorf("%q is not an absolute URL", baseURL))
	}
	return base, nil
}
