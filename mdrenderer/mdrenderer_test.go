package mdrenderer

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tc39tracker/tracker"
)

const testBase = "https://github.com/tc39/proposal-optional-chaining/blob/HEAD/"

var targetAttr = regexp.MustCompile(`(?:href|src)="([^"]*)"`)

type testCase struct {
	Name     string
	Source   string
	Relative []string
	Absolute []string
}

func getCases() []testCase {
	return []testCase{
		{Name: "markdown link", Source: "See [the spec](spec.html) for details.", Relative: []string{"spec.html"}},
		{Name: "nested path", Source: "[tests](tests/cases/a.js)", Relative: []string{"tests/cases/a.js"}},
		{Name: "image", Source: "![diagram](img/flow.png)", Relative: []string{"img/flow.png"}},
		{Name: "absolute link", Source: "[tc39](https://tc39.es/)", Absolute: []string{"https://tc39.es/"}},
		{Name: "mailto", Source: "[mail](mailto:chair@tc39.es)", Absolute: []string{"mailto:chair@tc39.es"}},
		{Name: "reference link", Source: "[explainer][e]\n\n[e]: docs/explainer.md", Relative: []string{"docs/explainer.md"}},
		{Name: "inline raw html", Source: "Logo: <img src=\"logo.svg\" width=\"40\"> inline", Relative: []string{"logo.svg"}},
		{Name: "html block", Source: "<p align=\"center\">\n  <a href=\"docs/index.md\"><img src=\"banner.png\"></a>\n</p>\n", Relative: []string{"docs/index.md", "banner.png"}},
		{Name: "mixed", Source: "# Title\n\n[a](a.md) and [b](https://example.com/b) and ![c](c.png)", Relative: []string{"a.md", "c.png"}, Absolute: []string{"https://example.com/b"}},
		{Name: "stray percent link", Source: "[pct](100%.md)", Relative: []string{"100%25.md"}},
		{Name: "stray percent image", Source: "![img](50%-chart.png)", Relative: []string{"50%25-chart.png"}},
		{Name: "stray percent raw html", Source: "<img src=\"50%-chart.png\">", Relative: []string{"50%25-chart.png"}},
		{Name: "protocol relative", Source: "[proto](//cdn.example.com/x.js)", Absolute: []string{"https://cdn.example.com/x.js"}},
		{Name: "protocol relative raw html", Source: "<p><img src=\"//cdn.example.com/logo.png\"></p>", Absolute: []string{"https://cdn.example.com/logo.png"}},
	}
}

func TestRenderResolvesRelativeTargets(t *testing.T) {
	r := New()
	for _, tc := range getCases() {
		t.Run(tc.Name, func(t *testing.T) {
			out, err := r.Render(tc.Source, testBase)
			require.NoError(t, err)

			for _, rel := range tc.Relative {
				assert.Contains(t, out, `"`+testBase+rel+`"`)
				assert.NotContains(t, out, `"`+rel+`"`)
			}
			for _, abs := range tc.Absolute {
				assert.Contains(t, out, `"`+abs+`"`)
			}

			for _, m := range targetAttr.FindAllStringSubmatch(out, -1) {
				target := m[1]
				if strings.Contains(target, "://") || strings.HasPrefix(target, "mailto:") || strings.HasPrefix(target, "#") {
					continue
				}
				t.Errorf("relative target %q left in output %q", target, out)
			}
		})
	}
}

func TestRenderKeepsFragments(t *testing.T) {
	out, err := New().Render("[usage](#usage) [q](?tab=readme)", testBase)
	require.NoError(t, err)
	assert.Contains(t, out, `href="#usage"`)
	assert.Contains(t, out, `href="?tab=readme"`)
}

func TestRenderWithoutBase(t *testing.T) {
	out, err := New().Render("[a](a.md)", "")
	require.NoError(t, err)
	assert.Contains(t, out, `href="a.md"`)
}

func TestRenderInvalidBase(t *testing.T) {
	for _, base := range []string{"relative/path/", "http://[::1", "/only/a/path"} {
		_, err := New().Render("[a](a.md)", base)
		assert.ErrorIs(t, err, tracker.ErrInvalidBaseURL, "base %q", base)
	}
}

func TestRenderShiftsHeadings(t *testing.T) {
	out, err := New().Render("# Optional Chaining\n\n###### Deep", testBase)
	require.NoError(t, err)
	assert.Contains(t, out, `<h2 id="optional-chaining">Optional Chaining</h2>`)
	assert.Contains(t, out, `<h6 id="deep">Deep</h6>`)
}

func TestRenderDeterministic(t *testing.T) {
	r := New()
	src := "# A\n\n[x](x.md)\n\n```js\nconst a = 1;\n```\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\nfoot[^1]\n\n[^1]: note"
	first, err := r.Render(src, testBase)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := r.Render(src, testBase)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Contains(t, first, `<code class="language-js">`)
}

func TestRenderConcurrent(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			base := fmt.Sprintf("https://github.com/tc39/proposal-%d/blob/HEAD/", i)
			out, err := r.Render("[a](a.md) <img src=\"b.png\">", base)
			assert.NoError(t, err)
			assert.Contains(t, out, base+"a.md")
			assert.Contains(t, out, base+"b.png")
		}()
	}
	wg.Wait()
}

func TestInlineHighlighting(t *testing.T) {
	out, err := New(WithInlineHighlighting("github")).Render("```js\nconst a = 1;\n```", testBase)
	require.NoError(t, err)
	assert.Contains(t, out, `class="chroma"`)
}
