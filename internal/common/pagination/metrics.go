package pagination

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "post_listing_requests_total",
		Help: "Paginated post listing requests by status and page bucket",
	}, []string{"status", "page_range"})

	durationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "post_listing_duration_seconds",
		Help:    "Post listing duration by stage (handler, list, count)",
		Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1, 2},
	}, []string{"operation"})

	matchedTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "post_published_total",
		Help: "Published posts matching the last listing filter",
	})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "post_listing_errors_total",
		Help: "Post listing failures by kind (database, timeout)",
	}, []string{"type"})
)

// pageBuckets bound the page_range label; pages past the last bound share "100+".
var pageBuckets = []struct {
	max   int
	label string
}{
	{10, "1-10"},
	{50, "11-50"},
	{100, "51-100"},
}

func pageRange(page int) string {
	for _, b := range pageBuckets {
		if page <= b.max {
			return b.label
		}
	}
	return "100+"
}

// RecordRequest counts a listing answered with status.
func RecordRequest(status, page int) {
	requestsTotal.WithLabelValues(strconv.Itoa(status), pageRange(page)).Inc()
}

// RecordDuration observes one listing stage.
func RecordDuration(operation string, d time.Duration) {
	durationSeconds.WithLabelValues(operation).Observe(d.Seconds())
}

// UpdateTotalCount publishes the row count of the last COUNT query.
func UpdateTotalCount(n int64) {
	matchedTotal.Set(float64(n))
}

// RecordError counts a failed listing; kind is "database" or "timeout".
func RecordError(kind string) {
	errorsTotal.WithLabelValues(kind).Inc()
}

// LogPage writes one debug record describing a served page.
func LogPage(ctx context.Context, logger *slog.Logger, p Params, returned int, d time.Duration) {
	logger.LogAttrs(ctx, slog.LevelDebug, "post page served",
		slog.Int("page", p.Page),
		slog.Int("limit", p.Limit),
		slog.Int("returned", returned),
		slog.Duration("duration", d))
}
