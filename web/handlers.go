package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/tc39tracker/tracker"
	"github.com/tc39tracker/tracker/integrations/prometheus"
	"github.com/tc39tracker/tracker/site"
)

func (rt *Web) pagesFor(r *http.Request) *site.Pages {
	if pg, ok := rt.pages[themeVariant(r.Context())]; ok {
		return pg
	}
	return rt.pages[rt.defaultVariant]
}

func cacheKey(pg *site.Pages, urlPath string) string {
	return string(pg.Theme.Name) + ":" + urlPath
}

type renderFunc func(r *http.Request, pg *site.Pages) (page []byte, cached func(), err error)

// plain adapts a render without follow-up work.
func plain(render func(r *http.Request, pg *site.Pages) ([]byte, error)) renderFunc {
	return func(r *http.Request, pg *site.Pages) ([]byte, func(), error) {
		page, err := render(r, pg)
		return page, nil, err
	}
}

// cached serves the page at the request path, rendering it on a cache miss.
// Failed renders are not cached. The callback of a render runs once its page
// is in the cache.
func (rt *Web) cached(kind string, render renderFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pg := rt.pagesFor(r)
		key := cacheKey(pg, r.URL.EscapedPath())
		page, ok := rt.cache.Get(key)
		if !ok {
			var (
				after func()
				err   error
			)
			page, after, err = render(r, pg)
			if err != nil {
				prometheus.RenderFailures.WithLabelValues(kind).Inc()
				rt.errorPage(w, r, err)
				return
			}
			prometheus.PagesRendered.WithLabelValues(kind).Inc()
			rt.cache.Set(key, page, 1)
			if after != nil {
				after()
			}
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write(page); err != nil {
			slog.DebugContext(r.Context(), "Couldn't write page", slog.Any("err", err))
		}
	}
}

func (rt *Web) index() http.HandlerFunc {
	return rt.cached("index", plain(func(r *http.Request, pg *site.Pages) ([]byte, error) {
		return pg.Index(r.Context(), rt.ds)
	}))
}

func (rt *Web) stages() http.HandlerFunc {
	return rt.cached("stages", plain(func(r *http.Request, pg *site.Pages) ([]byte, error) {
		return pg.Stages(r.Context())
	}))
}

func (rt *Web) proposal() http.HandlerFunc {
	return rt.cached("proposal", func(r *http.Request, pg *site.Pages) ([]byte, func(), error) {
		e, err := rt.ds.Lookup(urlParam(r, "title"))
		if err != nil {
			return nil, nil, err
		}
		readme := pg.Readme(r.Context(), e)
		page, err := pg.Proposal(r.Context(), e, readme)
		if err != nil {
			return nil, nil, err
		}
		if rt.queue == nil || readme == "" {
			return page, nil, nil
		}
		key := cacheKey(pg, r.URL.EscapedPath())
		ctx := context.WithoutCancel(r.Context())
		return page, func() {
			rt.queue.Schedule(ctx, key, readme, func(enhanced string) error {
				page, err := pg.Proposal(ctx, e, enhanced)
				if err != nil {
					return err
				}
				rt.cache.Set(key, page, 1)
				return nil
			})
		}, nil
	})
}

func (rt *Web) champion() http.HandlerFunc {
	return rt.cached("champion", plain(func(r *http.Request, pg *site.Pages) ([]byte, error) {
		return pg.Champion(r.Context(), rt.ds, urlParam(r, "name"))
	}))
}

// urlParam undoes the escaping chi leaves in place when it routed on the raw
// path (e.g. an escaped slash). Params matched against r.URL.Path are already
// decoded.
func urlParam(r *http.Request, key string) string {
	val := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return val
	}
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePath != "" {
		return val
	}
	if dec, err := url.PathUnescape(val); err == nil {
		return dec
	}
	return val
}

func (rt *Web) errorPage(w http.ResponseWriter, r *http.Request, err error) {
	code := tracker.ErrorCode(err)
	if errors.Is(err, tracker.ErrNotFound) {
		rt.statusPage(w, r, http.StatusNotFound, "Page not found")
		return
	}
	slog.WarnContext(r.Context(), "Couldn't render page", slog.String("path", r.URL.Path), slog.Any("err", err))
	rt.statusPage(w, r, code, http.StatusText(code))
}

func (rt *Web) statusPage(w http.ResponseWriter, r *http.Request, code int, message string) {
	pg := rt.pagesFor(r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	page, err := pg.Status(r.Context(), code, message)
	if err != nil {
		slog.WarnContext(r.Context(), "Error rendering status page", slog.Any("err", err))
		page = []byte(message)
	}
	if _, err := w.Write(page); err != nil {
		slog.DebugContext(r.Context(), "Couldn't write status page", slog.Any("err", err))
	}
}
