package postgres

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"techup-blog/internal/observability/metrics"
)

// psql renders squirrel builders with PostgreSQL $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// timed starts a db_query_duration_seconds observation for op.
//
//	defer timed("posts.list_page")()
func timed(op string) func() {
	start := time.Now()
	return func() { metrics.RecordDBQuery(op, time.Since(start)) }
}
