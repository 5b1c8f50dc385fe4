// Package theme holds the two colour schemes of the site.
//
// The theme is resolved once per render and handed to every view explicitly.
package theme

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tc39tracker/tracker"
)

type Variant string

const (
	Light Variant = "light"
	Dark  Variant = "dark"
)

var Variants = []Variant{Light, Dark}

func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case Light, Dark:
		return v, nil
	default:
		return "", tracker.WrapStatus(tracker.ErrInvalidVariant, fmt.Errorf("variant %q", s))
	}
}

// Colors is a fixed token set, so both variants always carry the same keys.
type Colors struct {
	Background string
	Foreground string
	Primary    string
	Black      string
	White      string
	Gray       string
	Pink       string
	Yellow     string
	Header     string
	Card       string
	Footer     string
	Border     string
	Code       string
}

// Tokens maps CSS custom property names (without the leading "--color-") to values.
func (c Colors) Tokens() map[string]string {
	return map[string]string{
		"background": c.Background,
		"foreground": c.Foreground,
		"primary":    c.Primary,
		"black":      c.Black,
		"white":      c.White,
		"gray":       c.Gray,
		"pink":       c.Pink,
		"yellow":     c.Yellow,
		"header":     c.Header,
		"card":       c.Card,
		"footer":     c.Footer,
		"border":     c.Border,
		"code":       c.Code,
	}
}

type Theme struct {
	Name     Variant
	Colors   Colors
	Markdown MarkdownStyle
	// CodeStyle is the chroma style used for highlighted code blocks
	CodeStyle string
}

var themes = map[Variant]Theme{
	Light: newTheme(Light, palette{
		background: gray, foreground: black, primary: blue,
		header: white, card: white, footer: white,
	}, "github"),
	Dark: newTheme(Dark, palette{
		background: night, foreground: snow, primary: yellow,
		header: ink, card: ink, footer: night,
	}, "github-dark"),
}

// Resolve is a pure lookup. Every call gets its own copy of the markdown rules.
func Resolve(v Variant) (Theme, error) {
	th, ok := themes[v]
	if !ok {
		return Theme{}, tracker.WrapStatus(tracker.ErrInvalidVariant, fmt.Errorf("variant %q", string(v)))
	}
	th.Markdown.Rules = slices.Clone(th.Markdown.Rules)
	for i := range th.Markdown.Rules {
		th.Markdown.Rules[i].Declarations = slices.Clone(th.Markdown.Rules[i].Declarations)
	}
	return th, nil
}

// MustResolve panics on unknown variants. Meant for constants.
func MustResolve(v Variant) Theme {
	th, err := Resolve(v)
	if err != nil {
		panic(err)
	}
	return th
}
