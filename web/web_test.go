package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tc39tracker/tracker/content"
	"github.com/tc39tracker/tracker/highlight"
	"github.com/tc39tracker/tracker/mdrenderer"
	"github.com/tc39tracker/tracker/site"
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
  - title: a/b
    stage: 1
    type: proposal
    champions: [John Roe]
  - title: Decimal %2F notes
    stage: 1
    type: proposal
    champions: [John Roe]
`

const readme = "# Optional Chaining\n\n```js\nconst x = a?.b;\n```\n"

func newWeb(t *testing.T, queue *highlight.Queue) *Web {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "data/proposals.yaml", []byte(datasetYAML), 0644))
	require.NoError(t, afero.WriteFile(fsys, "data/optional-chaining.md", []byte(readme), 0644))
	ds, err := content.Load(context.Background(), fsys, "data")
	require.NoError(t, err)

	rt, err := New(ds, mdrenderer.New(), Options{
		SiteTitle:      "TC39 Proposals",
		DefaultVariant: theme.Light,
		Disclaimer:     true,
		CacheSize:      100,
		Queue:          queue,
	})
	require.NoError(t, err)
	return rt
}

func get(t *testing.T, h http.Handler, target string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	return rec.Code, string(body)
}

type testCase struct {
	Name     string
	Target   string
	Code     int
	Contains string
}

func TestRoutes(t *testing.T) {
	h := newWeb(t, nil).Handler()

	cases := []testCase{
		{Name: "index", Target: "/", Code: 200, Contains: `href="/proposals/Optional%20Chaining"`},
		{Name: "stages", Target: "/stages", Code: 200, Contains: "Stage 2.7"},
		{Name: "trailing slash", Target: "/stages/", Code: 200, Contains: "Stage 2.7"},
		{Name: "proposal", Target: "/proposals/Optional%20Chaining", Code: 200, Contains: `href="/champions/Jane%20Doe"`},
		{Name: "escaped slash", Target: "/proposals/a%2Fb", Code: 200, Contains: "Stage 1"},
		{Name: "literal escape in title", Target: "/proposals/Decimal%20%252F%20notes", Code: 200, Contains: "Decimal %2F notes"},
		{Name: "champion", Target: "/champions/Jane%20Doe", Code: 200, Contains: "Optional Chaining"},
		{Name: "missing proposal", Target: "/proposals/Pipeline", Code: 404, Contains: "Page not found"},
		{Name: "missing champion", Target: "/champions/Nobody", Code: 404, Contains: "Page not found"},
		{Name: "unknown stage", Target: "/proposals/Broken%20Stage", Code: 500, Contains: "Internal Server Error"},
		{Name: "unknown route", Target: "/nope", Code: 404, Contains: "Page not found"},
		{Name: "dark theme", Target: "/?theme=dark", Code: 200, Contains: `data-theme="dark"`},
		{Name: "bad theme", Target: "/?theme=purple", Code: 400, Contains: "Unknown theme variant"},
	}
	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			code, body := get(t, h, tc.Target)
			assert.Equal(t, tc.Code, code)
			assert.Contains(t, body, tc.Contains)
		})
	}
}

func TestThemeCookie(t *testing.T) {
	h := newWeb(t, nil).Handler()
	req := httptest.NewRequest(http.MethodGet, "/stages", nil)
	req.AddCookie(&http.Cookie{Name: themeCookie, Value: "dark"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-theme="dark"`)
}

func TestAssets(t *testing.T) {
	rt := newWeb(t, nil)
	h := rt.Handler()
	name := rt.assets.HashName(site.StylesheetName(theme.MustResolve(theme.Dark)))

	code, body := get(t, h, "/assets/"+name)
	assert.Equal(t, 200, code)
	assert.Contains(t, body, "--color-background")

	_, index := get(t, h, "/?theme=dark")
	assert.Contains(t, index, `href="/assets/`+name+`"`)
}

func TestGzip(t *testing.T) {
	h := newWeb(t, nil).Handler()
	req := httptest.NewRequest(http.MethodGet, "/stages", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
}

func TestDeferredHighlighting(t *testing.T) {
	enh, err := highlight.NewEnhancer("github")
	require.NoError(t, err)
	queue := highlight.NewQueue(enh, 1)
	h := newWeb(t, queue).Handler()

	_, first := get(t, h, "/proposals/Optional%20Chaining")
	assert.Contains(t, first, `class="language-js"`)

	queue.Wait()
	_, second := get(t, h, "/proposals/Optional%20Chaining")
	assert.Contains(t, second, `class="chroma"`)
}

func TestServeDrainsQueueOnShutdown(t *testing.T) {
	enh, err := highlight.NewEnhancer("github")
	require.NoError(t, err)
	queue := highlight.NewQueue(enh, 1)
	rt := newWeb(t, queue)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- rt.Serve(ctx, "127.0.0.1:0") }()

	var applied atomic.Bool
	queue.Schedule(context.Background(), "pending", `<pre><code class="language-js">const x = 1;</code></pre>`, func(string) error {
		applied.Store(true)
		return nil
	})
	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.True(t, applied.Load())
}
