package postgres

import (
	"context"

	"github.com/polkiloo/printshop/internal/domain/model"
)

type securityEventRepository struct {
	storage *Storage
}

func (r *securityEventRepository) Append(ctx context.Context, event model.SecurityEvent) error {
	const query = `INSERT INTO security_events
                   (event_type, reason, file_name, file_size, mime_type, client_ip, user_agent, occurred_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = r.storage.clock()
	}
	_, err := r.storage.pool.Exec(ctx, query,
		string(event.Type), event.Reason, event.FileName, event.FileSize,
		event.MimeType, event.ClientIP, event.UserAgent, occurredAt)
	return err
}

func (r *securityEventRepository) ListRecent(ctx context.Context, limit int) ([]model.SecurityEvent, error) {
	const query = `SELECT id, event_type, reason, file_name, file_size, mime_type, client_ip, user_agent, occurred_at
                   FROM security_events ORDER BY occurred_at DESC, id DESC LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.SecurityEvent{}
	for rows.Next() {
		var (
			e         model.SecurityEvent
			eventType string
		)
		if err := rows.Scan(&e.ID, &eventType, &e.Reason, &e.FileName, &e.FileSize, &e.MimeType, &e.ClientIP, &e.UserAgent, &e.OccurredAt); err != nil {
			return nil, err
		}
		e.Type = model.SecurityEventType(eventType)
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
