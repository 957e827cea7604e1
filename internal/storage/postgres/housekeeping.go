package postgres

import (
	"context"
	"time"
)

// PruneRateLimits deletes counters whose window started before cutoff.
func (s *Storage) PruneRateLimits(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM upload_rate_limits WHERE window_start < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// PruneSecurityEvents deletes events that occurred before cutoff.
func (s *Storage) PruneSecurityEvents(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM security_events WHERE occurred_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
