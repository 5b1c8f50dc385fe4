package theme

import (
	"fmt"
	"slices"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// componentCSS styles the views. Colours only come from custom properties.
const componentCSS = `
body { margin: 0; background: var(--color-background); color: var(--color-foreground); font-family: Nunito, sans-serif; }
header.site-header { background: var(--color-header); padding: 1rem 2rem; }
header.site-header a { color: var(--color-foreground); text-decoration: none; font-weight: 800; }
footer.site-footer { background: var(--color-footer); padding: 2rem; text-align: center; }
.page { width: 80%; margin: 0 auto; padding: 2rem 0; }
.stage-section h2 a { color: var(--color-foreground); }
.card-grid { display: flex; flex-wrap: wrap; gap: 1rem; }
.proposal-card { color: var(--color-foreground); text-decoration: none; background: var(--color-card); border: 1px solid var(--color-border); border-radius: 4px; padding: 2rem 3rem; display: flex; flex: 1; justify-content: center; align-items: center; position: relative; transition: all .4s ease; }
.proposal-card:hover { background: var(--color-primary); border-color: var(--color-primary); color: var(--color-black); }
.proposal-card:hover .feather-star { fill: var(--color-black); }
.proposal-card .stars { position: absolute; top: 1rem; right: 1rem; display: flex; align-items: center; gap: .25rem; font-size: .8rem; }
.proposal-layout { display: flex; gap: 2rem; }
.proposal-layout article { flex: 1; max-width: 80%; }
aside.sidebar { display: flex; flex-direction: column; gap: 2rem; min-width: 20%; }
.detail-card { display: flex; flex-direction: column; background: var(--color-card); border: 1px solid var(--color-border); padding: 1rem; }
.detail-card h2, .detail-card h3 { margin: 0 0 1rem 0; }
.detail-card h3 { font-size: 1rem; }
.info-row { display: flex; align-items: center; gap: .5rem; }
.champion-list { display: flex; flex-direction: column; gap: 1rem; padding: 0; list-style: none; }
.champion-name { padding: .25rem 1rem; color: var(--color-white); background: var(--color-black); border-radius: 4px; font-size: .85rem; text-decoration: none; transition: .4s ease; }
.champion-name:hover { background: var(--color-primary); color: var(--color-black); }
.disclaimer { color: var(--color-foreground); opacity: .8; font-size: .9rem; }
@media (max-width: 768px) { .proposal-layout { flex-direction: column; } .proposal-layout article { max-width: 100%; } }
`

func (th Theme) customProperties() string {
	tokens := th.Colors.Tokens()
	keys := make([]string, 0, len(tokens))
	for key := range tokens {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	var sb strings.Builder
	sb.WriteString(":root {")
	for _, key := range keys {
		fmt.Fprintf(&sb, " --color-%s: %s;", key, tokens[key])
	}
	fmt.Fprintf(&sb, " color-scheme: %s; }\n", th.Name)
	return sb.String()
}

func (m MarkdownStyle) css() string {
	var sb strings.Builder
	for _, rule := range m.Rules {
		sel := m.Scope
		if rule.Selector != "" {
			parts := strings.Split(rule.Selector, ",")
			for i := range parts {
				parts[i] = m.Scope + " " + strings.TrimSpace(parts[i])
			}
			sel = strings.Join(parts, ", ")
		}
		sb.WriteString(sel)
		sb.WriteString(" {")
		for _, decl := range rule.Declarations {
			fmt.Fprintf(&sb, " %s: %s;", decl[0], decl[1])
		}
		sb.WriteString(" }\n")
	}
	return sb.String()
}

// RawCSS is the unminified stylesheet of the theme.
func (th Theme) RawCSS() string {
	return th.customProperties() + componentCSS + th.Markdown.css()
}

// CSS is the minified stylesheet of the theme.
func (th Theme) CSS() (string, error) {
	return MinifyCSS(th.RawCSS())
}

func MinifyCSS(css string) (string, error) {
	rez := api.Transform(css, api.TransformOptions{
		Loader:            api.LoaderCSS,
		MinifyWhitespace:  true,
		MinifySyntax:      true,
		MinifyIdentifiers: false,
		Engines: []api.Engine{
			{Name: api.EngineChrome, Version: "100"},
			{Name: api.EngineFirefox, Version: "100"},
			{Name: api.EngineSafari, Version: "11"},
		},
	})
	if len(rez.Errors) > 0 {
		return "", fmt.Errorf("found %d errors in stylesheet: %s", len(rez.Errors), rez.Errors[0].Text)
	}
	return string(rez.Code), nil
}
