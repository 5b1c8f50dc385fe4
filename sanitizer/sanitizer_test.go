package sanitizer

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var eventAttr = regexp.MustCompile(`(?i)<[^>]*\son[a-z]+\s*=`)

func getCases() []string {
	return []string{
		"",
		"plain text & more",
		`<p>Hello <strong>world</strong></p>`,
		`<script>alert(1)</script><p>after</p>`,
		`<SCRIPT src="https://evil.example/x.js"></SCRIPT>`,
		`<img src="x.png" onerror="alert(1)">`,
		`<p onclick="steal()" style="color:red">styled</p>`,
		`<a href="javascript:alert(1)">bad link</a>`,
		`<a href="https://tc39.es/" onmouseover="x()">good link</a>`,
		`<a href="docs/spec.md#intro">relative</a>`,
		`<div><p>unclosed <b>bold`,
		`<iframe src="https://evil.example"></iframe><h2 id="usage">Usage</h2>`,
		`<pre><code class="language-js">const a = 1 &lt; 2;</code></pre>`,
		`<span class="x&quot; onclick=&quot;y">quoted</span>`,
		`<<<>>> </p> <p <p>`,
		`<svg><script>alert(1)</script></svg>`,
		`<table><tr><td align="center" onclick="x">cell</td></tr></table>`,
	}
}

func TestSanitizeRemovesScripts(t *testing.T) {
	for _, in := range getCases() {
		out := Sanitize(in)
		assert.NotContains(t, strings.ToLower(out), "<script", "input %q", in)
		assert.False(t, eventAttr.MatchString(out), "event handler survived: %q -> %q", in, out)
		assert.NotContains(t, out, "javascript:", "input %q", in)
		assert.NotContains(t, out, "<iframe", "input %q", in)
		assert.NotContains(t, out, "style=", "input %q", in)
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	for _, in := range getCases() {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "input %q", in)
	}
}

func TestSanitizeKeepsAllowlisted(t *testing.T) {
	out := Sanitize(`<h2 id="usage">Usage</h2><p>See <a href="https://tc39.es/">tc39</a>.</p><ul><li><em>a</em></li></ul><img src="https://example.com/a.png" alt="diagram">`)
	assert.Contains(t, out, `<h2 id="usage">Usage</h2>`)
	assert.Contains(t, out, `href="https://tc39.es/"`)
	assert.Contains(t, out, `<li><em>a</em></li>`)
	assert.Contains(t, out, `src="https://example.com/a.png"`)
	assert.Contains(t, out, `alt="diagram"`)

	code := Sanitize(`<pre><code class="language-js">x</code></pre>`)
	assert.Equal(t, `<pre><code class="language-js">x</code></pre>`, code)
}

func TestSanitizeDropsScriptContent(t *testing.T) {
	assert.Equal(t, "<p>after</p>", Sanitize(`<script>alert(1)</script><p>after</p>`))
}

func BenchmarkSanitize(b *testing.B) {
	in := strings.Repeat(`<p onclick="x">Some <a href="https://example.com">text</a></p><script>1</script>`, 200)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Sanitize(in)
	}
}
