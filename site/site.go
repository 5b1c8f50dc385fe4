// Package site assembles the static site into a filesystem.
//
// Every page is rendered independently: a page that fails is reported and
// logged, the rest of the site is still written.
package site

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"github.com/tc39tracker/tracker"
	"github.com/tc39tracker/tracker/content"
	"github.com/tc39tracker/tracker/highlight"
	"github.com/tc39tracker/tracker/integrations/prometheus"
	"golang.org/x/sync/errgroup"
)

type Failure struct {
	Page string
	Err  error
}

type Report struct {
	Pages    int
	Assets   []string
	Failures []Failure

	mu sync.Mutex
}

func (r *Report) written(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Pages++
	prometheus.PagesRendered.WithLabelValues(kind).Inc()
}

func (r *Report) failed(ctx context.Context, kind, page string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Failures = append(r.Failures, Failure{Page: page, Err: err})
	prometheus.RenderFailures.WithLabelValues(kind).Inc()
	slog.ErrorContext(ctx, "Couldn't build page", slog.String("page", page), slog.Any("err", err))
}

func (r *Report) Failed() bool {
	return len(r.Failures) > 0
}

type Builder struct {
	out     afero.Fs
	pages   *Pages
	workers int
	// queue is nil when deferred highlighting is off
	queue *highlight.Queue
}

func NewBuilder(out afero.Fs, pages *Pages, workers int, queue *highlight.Queue) *Builder {
	if workers < 1 {
		workers = 1
	}
	return &Builder{out: out, pages: pages, workers: workers, queue: queue}
}

// PageFile maps a navigation path to the file serving it.
// Segments are stored decoded, like static file servers look them up, unless
// decoding would introduce a path separator.
func PageFile(urlPath string) string {
	segments := strings.Split(strings.Trim(urlPath, "/"), "/")
	for i, seg := range segments {
		dec, err := url.PathUnescape(seg)
		if err != nil || strings.Contains(dec, "/") || dec == "." || dec == ".." {
			continue
		}
		segments[i] = dec
	}
	return path.Join(append(segments, "index.html")...)
}

func (b *Builder) write(name string, data []byte) error {
	if err := b.out.MkdirAll(path.Dir(name), 0755); err != nil {
		return err
	}
	return afero.WriteFile(b.out, name, data, 0644)
}

// Build writes the whole site. The returned error is only set when the build
// could not run at all; page failures are in the report.
func (b *Builder) Build(ctx context.Context, ds *content.Dataset) (*Report, error) {
	rep := &Report{}

	for _, name := range b.pages.Assets.Names() {
		data, err := b.pages.Assets.Read(name)
		if err != nil {
			return nil, fmt.Errorf("couldn't read asset %q: %w", name, err)
		}
		hashed := path.Join("assets", b.pages.Assets.HashName(name))
		if err := b.write(hashed, data); err != nil {
			return nil, fmt.Errorf("couldn't write asset %q: %w", hashed, err)
		}
		rep.Assets = append(rep.Assets, hashed)
		prometheus.PagesRendered.WithLabelValues("asset").Inc()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	page := func(kind, urlPath string, render func(ctx context.Context) ([]byte, error), written func(ctx context.Context)) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := render(gctx)
			if err != nil {
				rep.failed(gctx, kind, urlPath, err)
				return nil
			}
			if err := b.write(PageFile(urlPath), data); err != nil {
				rep.failed(gctx, kind, urlPath, err)
				return nil
			}
			rep.written(kind)
			if written != nil {
				written(gctx)
			}
			return nil
		})
	}

	page("index", "/", func(ctx context.Context) ([]byte, error) {
		return b.pages.Index(ctx, ds)
	}, nil)
	page("stages", "/stages", b.pages.Stages, nil)
	for _, e := range ds.Entries {
		var readme string
		page("proposal", e.Proposal.Path(), func(ctx context.Context) ([]byte, error) {
			readme = b.pages.Readme(ctx, e)
			return b.pages.Proposal(ctx, e, readme)
		}, func(ctx context.Context) {
			if readme != "" {
				b.scheduleHighlight(ctx, e, readme)
			}
		})
	}
	for _, name := range ds.People() {
		page("champion", tracker.ChampionPath(name), func(ctx context.Context) ([]byte, error) {
			return b.pages.Champion(ctx, ds, name)
		}, nil)
	}

	err := g.Wait()
	if b.queue != nil {
		b.queue.Wait()
	}
	if err != nil {
		return rep, err
	}
	slog.InfoContext(ctx, "Site built", slog.Int("pages", rep.Pages), slog.Int("failures", len(rep.Failures)))
	return rep, nil
}

// scheduleHighlight rewrites the proposal page once its code blocks are
// highlighted. The plain page is already complete, so a failure changes nothing.
func (b *Builder) scheduleHighlight(ctx context.Context, e *content.Entry, readme string) {
	if b.queue == nil {
		return
	}
	urlPath := e.Proposal.Path()
	// the build context ends before the queue drains
	ctx = context.WithoutCancel(ctx)
	b.queue.Schedule(ctx, urlPath, readme, func(enhanced string) error {
		data, err := b.pages.Proposal(ctx, e, enhanced)
		if err != nil {
			return err
		}
		return b.write(PageFile(urlPath), data)
	})
}

// Open is the default output filesystem rooted at dir.
func Open(dir string) (afero.Fs, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return afero.NewBasePathFs(afero.NewOsFs(), dir), nil
}
