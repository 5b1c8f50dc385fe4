package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/schema"
	"github.com/tc39tracker/tracker/theme"
)

type ctxKey string

const themeKey = ctxKey("theme")

const themeCookie = "tracker-theme"

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

type pageQuery struct {
	Theme string `schema:"theme"`
}

func themeVariant(ctx context.Context) theme.Variant {
	v, _ := ctx.Value(themeKey).(theme.Variant)
	return v
}

// initTheme picks the variant from the query, then the cookie, then the default.
// An explicit but unknown variant in the query is a client error.
func (rt *Web) initTheme(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		variant := rt.defaultVariant

		if c, _ := r.Cookie(themeCookie); c != nil {
			if v, err := theme.ParseVariant(c.Value); err == nil {
				variant = v
			}
		}

		var q pageQuery
		if err := decoder.Decode(&q, r.URL.Query()); err != nil {
			rt.statusPage(w, r, http.StatusBadRequest, "Invalid query")
			return
		}
		if q.Theme != "" {
			v, err := theme.ParseVariant(q.Theme)
			if err != nil {
				rt.statusPage(w, r, http.StatusBadRequest, err.Error())
				return
			}
			variant = v
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), themeKey, variant)))
	})
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.DebugContext(r.Context(), "Served request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("took", time.Since(start)),
		)
	})
}
