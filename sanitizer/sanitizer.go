// Package sanitizer reduces untrusted HTML to the subset the site is willing to display.
package sanitizer

import (
	"html/template"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var (
	classNames  = regexp.MustCompile(`^[\w\- ]+$`)
	headingIDs  = regexp.MustCompile(`^[\w\-]+$`)
	alignValues = regexp.MustCompile(`^(left|right|center)$`)
	dimensions  = regexp.MustCompile(`^\d+(%|px)?$`)

	// bluemonday policies are safe for concurrent use once built
	policy = newPolicy()
)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements("p", "br", "hr", "blockquote",
		"em", "strong", "b", "i", "del", "s", "sup", "sub",
		"ul", "ol", "li",
		"pre", "code",
		"table", "thead", "tbody", "tr",
		"details", "summary",
	)
	p.AllowAttrs("id").Matching(headingIDs).OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowElements("h1", "h2", "h3", "h4", "h5", "h6")

	p.RequireParseableURLs(true)
	p.AllowURLSchemes("http", "https", "mailto")
	p.AllowRelativeURLs(true)
	p.AllowAttrs("href", "title").OnElements("a")
	p.AllowAttrs("src", "alt", "title").OnElements("img")
	p.AllowAttrs("width", "height").Matching(dimensions).OnElements("img")

	p.AllowAttrs("class").Matching(classNames).OnElements("pre", "code", "span")
	p.AllowAttrs("start").Matching(bluemonday.Integer).OnElements("ol")
	p.AllowAttrs("align").Matching(alignValues).OnElements("th", "td", "p")
	p.AllowElements("th", "td")

	return p
}

// Sanitize returns the allowlisted subset of raw. It never fails: malformed markup
// degrades to whatever the tokenizer could recover. Sanitize(Sanitize(x)) == Sanitize(x).
func Sanitize(raw string) string {
	if raw == "" {
		return ""
	}
	return policy.Sanitize(raw)
}

// SanitizeHTML is Sanitize for html/template consumers.
func SanitizeHTML(raw string) template.HTML {
	return template.HTML(Sanitize(raw))
}
