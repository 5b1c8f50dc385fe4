package prometheus

import (
	"fmt"
	"log/slog"
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tc39tracker/tracker/internal/config"
)

var (
	enabled = config.GenFlag[bool]("integrations.prometheus.enabled", false, "Enable Prometheus metrics")
	port    = config.GenFlag[int]("integrations.prometheus.port", 8071, "Prometheus metrics port")
)

var (
	PagesRendered = promauto.NewCounterVec(prom.CounterOpts{
		Name: "tracker_pages_rendered_total",
		Help: "Pages rendered, by page kind",
	}, []string{"kind"})

	RenderFailures = promauto.NewCounterVec(prom.CounterOpts{
		Name: "tracker_render_failures_total",
		Help: "Pages that could not be rendered, by page kind",
	}, []string{"kind"})

	IntegrityWarnings = promauto.NewCounter(prom.CounterOpts{
		Name: "tracker_integrity_warnings_total",
		Help: "Proposal records with data-integrity problems",
	})

	HighlightTasks = promauto.NewCounterVec(prom.CounterOpts{
		Name: "tracker_highlight_tasks_total",
		Help: "Deferred highlighting tasks, by outcome",
	}, []string{"result"})
)

// InitMetrics starts the /metrics listener when the flag is enabled.
func InitMetrics() {
	if !enabled.Value() {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(fmt.Sprintf(":%d", port.Value()), mux); err != nil {
			slog.Error("Error with Prometheus metrics", slog.Any("err", err))
		}
	}()
}
