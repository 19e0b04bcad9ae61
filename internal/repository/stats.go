package repository

import (
	"context"
	"fmt"

	"github.com/yonas-t/earnbot/internal/domain"
)

func (r *Repository) Stats(ctx context.Context) (*domain.Stats, error) {
	var s domain.Stats
	err := r.db.QueryRow(ctx,
		`SELECT
		    (SELECT COUNT(*) FROM users),
		    (SELECT COUNT(*) FROM users WHERE is_registered = TRUE),
		    (SELECT COALESCE(SUM(points), 0) FROM users),
		    (SELECT COUNT(*) FROM tasks),
		    (SELECT COUNT(*) FROM withdrawal_requests WHERE status = 'pending')`).
		Scan(&s.TotalUsers, &s.RegisteredUsers, &s.TotalPoints, &s.TotalTasks, &s.PendingWithdrawals)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return &s, nil
}
