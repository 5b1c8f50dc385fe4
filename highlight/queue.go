package highlight

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tc39tracker/tracker/integrations/prometheus"
	"golang.org/x/sync/semaphore"
)

// Queue runs enhancement tasks in the background.
type Queue struct {
	enh *Enhancer
	sem *semaphore.Weighted
	wg  sync.WaitGroup
}

func NewQueue(enh *Enhancer, workers int) *Queue {
	if workers < 1 {
		workers = 1
	}
	return &Queue{enh: enh, sem: semaphore.NewWeighted(int64(workers))}
}

// Schedule returns immediately. apply is only called with a fragment that was
// actually highlighted; on any failure the caller keeps what it already has.
func (q *Queue) Schedule(ctx context.Context, name string, fragment string, apply func(string) error) {
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		if err := q.sem.Acquire(ctx, 1); err != nil {
			prometheus.HighlightTasks.WithLabelValues("cancelled").Inc()
			return
		}
		defer q.sem.Release(1)
		if ctx.Err() != nil {
			prometheus.HighlightTasks.WithLabelValues("cancelled").Inc()
			return
		}

		out, changed, err := q.enh.Enhance(fragment)
		if err != nil {
			prometheus.HighlightTasks.WithLabelValues("failed").Inc()
			slog.WarnContext(ctx, "Couldn't highlight code blocks", slog.String("page", name), slog.Any("err", err))
			return
		}
		if !changed {
			prometheus.HighlightTasks.WithLabelValues("skipped").Inc()
			return
		}
		if err := apply(out); err != nil {
			prometheus.HighlightTasks.WithLabelValues("failed").Inc()
			slog.WarnContext(ctx, "Couldn't apply highlighted fragment", slog.String("page", name), slog.Any("err", err))
			return
		}
		prometheus.HighlightTasks.WithLabelValues("ok").Inc()
	}()
}

// Wait blocks until every scheduled task finished.
func (q *Queue) Wait() {
	q.wg.Wait()
}
