package theme

// Rule is a single CSS rule scoped under the markdown article.
type Rule struct {
	Selector     string
	Declarations [][2]string
}

// MarkdownStyle is the README styling of one variant.
type MarkdownStyle struct {
	Scope string
	Rules []Rule
}

func markdownStyle(c Colors) MarkdownStyle {
	return MarkdownStyle{
		Scope: ".markdown-body",
		Rules: []Rule{
			{"", [][2]string{{"color", c.Foreground}, {"line-height", "1.6"}, {"word-wrap", "break-word"}}},
			{"a", [][2]string{{"color", c.Primary}, {"text-decoration", "none"}}},
			{"a:hover", [][2]string{{"text-decoration", "underline"}}},
			{"h2, h3", [][2]string{{"padding-bottom", ".3em"}, {"border-bottom", "1px solid " + c.Border}}},
			{"code", [][2]string{{"background", c.Code}, {"border-radius", "4px"}, {"padding", ".2em .4em"}, {"font-size", "85%"}}},
			{"pre", [][2]string{{"background", c.Code}, {"border-radius", "4px"}, {"padding", "1rem"}, {"overflow", "auto"}}},
			{"pre code", [][2]string{{"background", "transparent"}, {"padding", "0"}}},
			{"blockquote", [][2]string{{"margin", "0"}, {"padding", "0 1em"}, {"border-left", ".25em solid " + c.Border}}},
			{"table", [][2]string{{"border-collapse", "collapse"}, {"display", "block"}, {"overflow", "auto"}}},
			{"th, td", [][2]string{{"border", "1px solid " + c.Border}, {"padding", "6px 13px"}}},
			{"img", [][2]string{{"max-width", "100%"}, {"background", c.Card}}},
			{"hr", [][2]string{{"border", "0"}, {"height", "1px"}, {"background", c.Border}}},
		},
	}
}
