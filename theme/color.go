package theme

import (
	"github.com/lucasb-eyer/go-colorful"
)

const (
	white  = "#FFFFFF"
	gray   = "#F4F6FB"
	black  = "#000000"
	pink   = "#DB83DD"
	yellow = "#FAB005"
	blue   = "#5800FF"

	night = "#16161D"
	ink   = "#22222C"
	snow  = "#F4F6FB"
)

type palette struct {
	background, foreground, primary string
	header, card, footer            string
}

func mustParseHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("mustParseHex: " + err.Error())
	}
	return c
}

// blend mixes a towards b in Lab space; t=0 is a, t=1 is b.
func blend(a, b string, t float64) string {
	return mustParseHex(a).BlendLab(mustParseHex(b), t).Clamped().Hex()
}

func newTheme(v Variant, p palette, codeStyle string) Theme {
	colors := Colors{
		Background: p.background,
		Foreground: p.foreground,
		Primary:    p.primary,
		Black:      black,
		White:      white,
		Gray:       gray,
		Pink:       pink,
		Yellow:     yellow,
		Header:     p.header,
		Card:       p.card,
		Footer:     p.footer,
		Border:     blend(p.card, p.foreground, 0.12),
		Code:       blend(p.card, p.foreground, 0.06),
	}
	// every token goes through the parser, a typo panics at init
	for _, val := range colors.Tokens() {
		mustParseHex(val)
	}
	return Theme{
		Name:      v,
		Colors:    colors,
		Markdown:  markdownStyle(colors),
		CodeStyle: codeStyle,
	}
}
