package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yonas-t/earnbot/internal/domain"
)

// AddReferral attributes referredID to referrerID and credits the bonus, all
// in one transaction. The unique constraint on referred_id is the authority:
// the pre-existence check on users is only an early exit. Any duplicate maps
// to ErrAlreadyReferred with no credit.
func (r *Repository) AddReferral(ctx context.Context, referrerID, referredID, bonus int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE telegram_id = $1)`, referredID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check referred user: %w", err)
	}
	if exists {
		return domain.ErrAlreadyReferred
	}

	tag, err := tx.Exec(ctx,
		`INSERT INTO referrals (referrer_id, referred_id, points_earned)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (referred_id) DO NOTHING`,
		referrerID, referredID, bonus)
	if err != nil {
		return fmt.Errorf("insert referral: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyReferred
	}

	tag, err = tx.Exec(ctx,
		`UPDATE users SET points = points + $1, referral_points = referral_points + $1
		 WHERE telegram_id = $2`,
		bonus, referrerID)
	if err != nil {
		return fmt.Errorf("credit referrer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Unknown referrer id in the payload; do not keep the referral row.
		return domain.ErrUserNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *Repository) ReferralStats(ctx context.Context, telegramID int64) (*domain.ReferralStats, error) {
	var stats domain.ReferralStats
	err := r.db.QueryRow(ctx,
		`SELECT
		    (SELECT COUNT(*) FROM referrals WHERE referrer_id = $1),
		    (SELECT COALESCE(SUM(points_earned), 0) FROM referrals WHERE referrer_id = $1),
		    COALESCE((SELECT referral_points FROM users WHERE telegram_id = $1), 0),
		    (SELECT referrer_id FROM referrals WHERE referred_id = $1)`,
		telegramID).Scan(&stats.TotalReferrals, &stats.PointsEarned, &stats.ReferralPoints, &stats.ReferredBy)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("referral stats: %w", err)
	}
	return &stats, nil
}
