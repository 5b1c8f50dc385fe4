package site

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tc39tracker/tracker"
	"github.com/tc39tracker/tracker/content"
	"github.com/tc39tracker/tracker/highlight"
	"github.com/tc39tracker/tracker/mdrenderer"
	"github.com/tc39tracker/tracker/theme"
)

const datasetYAML = `
proposals:
  - title: Optional Chaining
    stage: 4
    type: proposal
    link: https://github.com/tc39/proposal-optional-chaining
    stars: 120
    champions: [Jane Doe]
    readme: optional-chaining.md
  - title: Broken Stage
    stage: 5
    type: proposal
    champions: [Jane Doe]
  - title: Class Fields
    title_html: Class Fields
    stage: 4
    type: proposal
    champions: [Daniel Ehrenberg]
`

const readme = "# Optional Chaining\n\n```js\nconst x = a?.b;\n```\n\n[Spec](spec.html)\n"

func loadDataset(t *testing.T) *content.Dataset {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "data/proposals.yaml", []byte(datasetYAML), 0644))
	require.NoError(t, afero.WriteFile(fsys, "data/optional-chaining.md", []byte(readme), 0644))
	ds, err := content.Load(context.Background(), fsys, "data")
	require.NoError(t, err)
	return ds
}

func newPages(t *testing.T, th theme.Theme) *Pages {
	t.Helper()
	assets, err := NewAssets(th)
	require.NoError(t, err)
	return &Pages{
		Theme:      th,
		SiteTitle:  "TC39 Proposals",
		Markdown:   mdrenderer.New(),
		Assets:     assets,
		Disclaimer: true,
	}
}

func readFile(t *testing.T, fsys afero.Fs, name string) string {
	t.Helper()
	data, err := afero.ReadFile(fsys, name)
	require.NoError(t, err, name)
	return string(data)
}

func TestPageFile(t *testing.T) {
	assert.Equal(t, "index.html", PageFile("/"))
	assert.Equal(t, "stages/index.html", PageFile("/stages"))
	assert.Equal(t, "proposals/Optional Chaining/index.html", PageFile("/proposals/Optional%20Chaining"))
	assert.Equal(t, "proposals/a%2Fb/index.html", PageFile("/proposals/a%2Fb"))
	assert.Equal(t, "champions/%2E%2E/index.html", PageFile("/champions/%2E%2E"))
}

func TestBuild(t *testing.T) {
	out := afero.NewMemMapFs()
	th := theme.MustResolve(theme.Light)
	b := NewBuilder(out, newPages(t, th), 4, nil)

	rep, err := b.Build(context.Background(), loadDataset(t))
	require.NoError(t, err)

	require.Len(t, rep.Failures, 1)
	assert.Equal(t, "/proposals/Broken%20Stage", rep.Failures[0].Page)
	assert.ErrorIs(t, rep.Failures[0].Err, tracker.ErrUnknownStage)
	assert.True(t, rep.Failed())

	index := readFile(t, out, "index.html")
	assert.Contains(t, index, `href="/proposals/Optional%20Chaining"`)
	assert.NotContains(t, index, "Broken Stage")
	assert.NotContains(t, index, "Class Fields")

	page := readFile(t, out, "proposals/Optional Chaining/index.html")
	assert.Contains(t, page, "Stage 4")
	assert.Contains(t, page, `href="/champions/Jane%20Doe"`)
	assert.Contains(t, page, `href="https://github.com/tc39/proposal-optional-chaining/blob/HEAD/spec.html"`)
	assert.Contains(t, page, "<h2")
	assert.NotContains(t, page, `class="chroma"`)

	ok, err := afero.Exists(out, "proposals/Broken Stage/index.html")
	require.NoError(t, err)
	assert.False(t, ok)

	champion := readFile(t, out, "champions/Jane Doe/index.html")
	assert.Contains(t, champion, "Optional Chaining")
	assert.Contains(t, readFile(t, out, "stages/index.html"), "Stage 2.7")

	require.Len(t, rep.Assets, 1)
	assert.True(t, strings.HasPrefix(rep.Assets[0], "assets/theme-light-"))
	css := readFile(t, out, rep.Assets[0])
	assert.Contains(t, css, "--color-background")
	assert.Contains(t, index, `href="/`+rep.Assets[0]+`"`)
}

func TestBuildDeferredHighlighting(t *testing.T) {
	out := afero.NewMemMapFs()
	th := theme.MustResolve(theme.Dark)
	enh, err := highlight.NewEnhancer(th.CodeStyle)
	require.NoError(t, err)

	b := NewBuilder(out, newPages(t, th), 2, highlight.NewQueue(enh, 2))
	_, err = b.Build(context.Background(), loadDataset(t))
	require.NoError(t, err)

	page := readFile(t, out, "proposals/Optional Chaining/index.html")
	assert.Contains(t, page, `class="chroma"`)
	assert.Contains(t, page, "Stage 4")
}

func TestBuildCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := NewBuilder(afero.NewMemMapFs(), newPages(t, theme.MustResolve(theme.Light)), 1, nil)
	_, err := b.Build(ctx, loadDataset(t))
	require.ErrorIs(t, err, context.Canceled)
}

func TestStylesheetScopesCode(t *testing.T) {
	css, err := Stylesheet(theme.MustResolve(theme.Light))
	require.NoError(t, err)
	assert.Contains(t, css, ".markdown-body .chroma")
}

func TestProposalECMABase(t *testing.T) {
	pg := newPages(t, theme.MustResolve(theme.Light))
	pg.ECMABaseURL = "https://mirror.example.org/standards/"

	e, err := loadDataset(t).Lookup("Optional Chaining")
	require.NoError(t, err)
	page, err := pg.Proposal(context.Background(), e, "")
	require.NoError(t, err)
	assert.Contains(t, string(page), `href="https://mirror.example.org/standards/proposal/"`)
}
