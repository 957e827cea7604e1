package postgres

import (
	"context"
	"time"

	"github.com/polkiloo/printshop/internal/pkg/ratelimit"
)

// rateLimitStore keeps fixed-window counters in upload_rate_limits so every
// instance sees the same count. Attempts saturate at maxAttempts+1.
type rateLimitStore struct {
	storage *Storage
}

var _ ratelimit.Limiter = (*rateLimitStore)(nil)

func (s *rateLimitStore) CheckLimit(ctx context.Context, identifier string, maxAttempts int, window time.Duration) (ratelimit.Result, error) {
	const query = `INSERT INTO upload_rate_limits AS l (identifier, attempts, window_start)
                   VALUES ($1, 1, $2)
                   ON CONFLICT (identifier) DO UPDATE SET
                     attempts = CASE WHEN $2::timestamptz - l.window_start > $3::bigint * INTERVAL '1 millisecond'
                                     THEN 1 ELSE LEAST(l.attempts + 1, $4::int + 1) END,
                     window_start = CASE WHEN $2::timestamptz - l.window_start > $3::bigint * INTERVAL '1 millisecond'
                                         THEN $2::timestamptz ELSE l.window_start END
                   RETURNING attempts, window_start`

	var (
		attempts    int
		windowStart time.Time
	)
	now := s.storage.clock()
	err := s.storage.pool.QueryRow(ctx, query, identifier, now, window.Milliseconds(), maxAttempts).Scan(&attempts, &windowStart)
	if err != nil {
		return ratelimit.Result{}, err
	}

	res := ratelimit.Result{
		Allowed: attempts <= maxAttempts,
		ResetAt: windowStart.Add(window),
	}
	if res.Allowed {
		res.Remaining = maxAttempts - attempts
	}
	return res, nil
}
