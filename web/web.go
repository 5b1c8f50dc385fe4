// Package web is the preview server. It renders the same pages as the static
// build, on demand, and keeps them in memory.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/Yiling-J/theine-go"
	"github.com/benbjohnson/hashfs"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/gzhttp"
	"github.com/tc39tracker/tracker/content"
	"github.com/tc39tracker/tracker/highlight"
	"github.com/tc39tracker/tracker/mdrenderer"
	"github.com/tc39tracker/tracker/site"
	"github.com/tc39tracker/tracker/theme"
)

type Options struct {
	SiteTitle      string
	DefaultVariant theme.Variant
	Disclaimer     bool
	FontsURL       string
	ECMABaseURL    string
	// CacheSize is the number of rendered pages kept in memory
	CacheSize int64
	// Queue is nil when deferred highlighting is off
	Queue *highlight.Queue
}

// Web is the struct representing this whole package
type Web struct {
	ds     *content.Dataset
	pages  map[theme.Variant]*site.Pages
	assets *site.Assets
	cache  *theine.Cache[string, []byte]
	queue  *highlight.Queue

	defaultVariant theme.Variant
}

func New(ds *content.Dataset, md *mdrenderer.Renderer, opts Options) (*Web, error) {
	if _, err := theme.Resolve(opts.DefaultVariant); err != nil {
		return nil, err
	}

	themes := make([]theme.Theme, 0, len(theme.Variants))
	for _, v := range theme.Variants {
		themes = append(themes, theme.MustResolve(v))
	}
	assets, err := site.NewAssets(themes...)
	if err != nil {
		return nil, err
	}

	pages := make(map[theme.Variant]*site.Pages, len(themes))
	for _, th := range themes {
		pages[th.Name] = &site.Pages{
			Theme:       th,
			SiteTitle:   opts.SiteTitle,
			Markdown:    md,
			Assets:      assets,
			Disclaimer:  opts.Disclaimer,
			FontsURL:    opts.FontsURL,
			ECMABaseURL: opts.ECMABaseURL,
		}
	}

	size := opts.CacheSize
	if size < 1 {
		size = 1
	}
	cache, err := theine.NewBuilder[string, []byte](size).Build()
	if err != nil {
		return nil, fmt.Errorf("couldn't build page cache: %w", err)
	}

	return &Web{
		ds:     ds,
		pages:  pages,
		assets: assets,
		cache:  cache,
		queue:  opts.Queue,

		defaultVariant: opts.DefaultVariant,
	}, nil
}

// Handler returns the router of the preview server
func (rt *Web) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Recoverer)
	r.Use(logRequests)

	r.Mount("/assets", http.StripPrefix("/assets", hashfs.FileServer(rt.assets.FS)))

	r.Group(func(r chi.Router) {
		r.Use(rt.initTheme)
		r.Get("/", rt.index())
		r.Get("/stages", rt.stages())
		r.Get("/proposals/{title}", rt.proposal())
		r.Get("/champions/{name}", rt.champion())
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			rt.statusPage(w, r, http.StatusNotFound, "Page not found")
		})
	})

	return gzhttp.GzipHandler(r)
}

// Serve runs the server until ctx is cancelled.
func (rt *Web) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           rt.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.WarnContext(ctx, "Error shutting down preview server", slog.Any("err", err))
		}
		// No handler can schedule highlighting past this point.
		if rt.queue != nil {
			rt.queue.Wait()
		}
	}()

	slog.InfoContext(ctx, "Preview server listening", slog.String("addr", "http://"+addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-drained
	return nil
}
