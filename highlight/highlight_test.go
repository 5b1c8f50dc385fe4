package highlight

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnhance(t *testing.T) {
	enh, err := NewEnhancer("github")
	require.NoError(t, err)

	in := `<h2 id="usage">Usage</h2><pre><code class="language-js">const a = b?.c &lt; 1;
</code></pre><p>after</p>`
	out, changed, err := enh.Enhance(in)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Contains(t, out, `class="chroma"`)
	assert.Contains(t, out, `<h2 id="usage">Usage</h2>`)
	assert.Contains(t, out, `<p>after</p>`)
	assert.Contains(t, out, "&lt;")
	assert.NotContains(t, out, "language-js")
}

func TestEnhanceLeavesUnknownLanguages(t *testing.T) {
	enh, err := NewEnhancer("github-dark")
	require.NoError(t, err)

	for _, in := range []string{
		`<p>no code here</p>`,
		`<pre><code>plain</code></pre>`,
		`<pre><code class="language-definitely-not-a-language">x</code></pre>`,
	} {
		out, changed, err := enh.Enhance(in)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, in, out)
	}
}

func TestUnknownStyle(t *testing.T) {
	_, err := NewEnhancer("no-such-style")
	assert.ErrorIs(t, err, ErrUnknownStyle)
	_, err = StyleCSS("no-such-style", ".dark")
	assert.ErrorIs(t, err, ErrUnknownStyle)
}

func TestStyleCSS(t *testing.T) {
	css, err := StyleCSS("github", ".light")
	require.NoError(t, err)
	assert.Contains(t, css, ".light {")
	assert.Contains(t, css, ".chroma")
}

func TestQueue(t *testing.T) {
	enh, err := NewEnhancer("github")
	require.NoError(t, err)
	q := NewQueue(enh, 2)

	var mu sync.Mutex
	applied := map[string]string{}
	apply := func(name string) func(string) error {
		return func(s string) error {
			mu.Lock()
			defer mu.Unlock()
			applied[name] = s
			return nil
		}
	}

	ctx := context.Background()
	q.Schedule(ctx, "code", `<pre><code class="language-go">package main</code></pre>`, apply("code"))
	q.Schedule(ctx, "plain", `<p>nothing</p>`, apply("plain"))
	q.Schedule(ctx, "broken-apply", `<pre><code class="language-go">x := 1</code></pre>`, func(string) error {
		return errors.New("disk full")
	})
	q.Wait()

	assert.Contains(t, applied["code"], "chroma")
	_, ok := applied["plain"]
	assert.False(t, ok, "apply must not run when nothing changed")
}

func TestQueueCancelled(t *testing.T) {
	enh, err := NewEnhancer("github")
	require.NoError(t, err)
	q := NewQueue(enh, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	q.Schedule(ctx, "x", `<pre><code class="language-go">x</code></pre>`, func(string) error {
		called = true
		return nil
	})
	q.Wait()
	assert.False(t, called)
}
