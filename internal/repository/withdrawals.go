package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yonas-t/earnbot/internal/domain"
)

const withdrawalColumns = `id, user_id, points, status, COALESCE(payout_ref, ''), created_at, processed_at`

func scanWithdrawal(row pgx.Row) (*domain.WithdrawalRequest, error) {
	var w domain.WithdrawalRequest
	err := row.Scan(&w.ID, &w.UserID, &w.Points, &w.Status, &w.PayoutRef, &w.CreatedAt, &w.ProcessedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *Repository) CreateWithdrawal(ctx context.Context, telegramID, points int64) (*domain.WithdrawalRequest, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO withdrawal_requests (user_id, points) VALUES ($1, $2)
		 RETURNING `+withdrawalColumns,
		telegramID, points)
	w, err := scanWithdrawal(row)
	if err != nil {
		return nil, fmt.Errorf("create withdrawal request: %w", err)
	}
	return w, nil
}

func (r *Repository) GetWithdrawal(ctx context.Context, id int64) (*domain.WithdrawalRequest, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+withdrawalColumns+` FROM withdrawal_requests WHERE id = $1`, id)
	w, err := scanWithdrawal(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("get withdrawal request: %w", err)
	}
	return w, nil
}

// ApproveWithdrawal deducts points from the requesting user and marks the
// request approved, in one transaction. The request must still be pending
// and the user's balance must cover the amount; otherwise nothing mutates.
// points may differ from the requested figure (the admin has the final say)
// and the approved amount is written back to the row.
func (r *Repository) ApproveWithdrawal(ctx context.Context, id, points int64, payoutRef string) (*domain.WithdrawalRequest, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var userID int64
	var status domain.WithdrawalStatus
	err = tx.QueryRow(ctx,
		`SELECT user_id, status FROM withdrawal_requests WHERE id = $1 FOR UPDATE`,
		id).Scan(&userID, &status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("lock withdrawal request: %w", err)
	}
	if status != domain.WithdrawalPending {
		return nil, domain.ErrRequestNotPending
	}

	tag, err := tx.Exec(ctx,
		`UPDATE users SET points = points - $1
		 WHERE telegram_id = $2 AND points >= $1`,
		points, userID)
	if err != nil {
		if isCheckViolation(err) {
			return nil, domain.ErrInsufficientPoints
		}
		return nil, fmt.Errorf("deduct points: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrInsufficientPoints
	}

	row := tx.QueryRow(ctx,
		`UPDATE withdrawal_requests
		 SET points = $2, status = 'approved', payout_ref = $3, processed_at = now()
		 WHERE id = $1
		 RETURNING `+withdrawalColumns,
		id, points, payoutRef)
	w, err := scanWithdrawal(row)
	if err != nil {
		return nil, fmt.Errorf("mark approved: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return w, nil
}

// RejectWithdrawal flips a specific pending request to rejected. The balance
// is untouched.
func (r *Repository) RejectWithdrawal(ctx context.Context, id int64) (*domain.WithdrawalRequest, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE withdrawal_requests
		 SET status = 'rejected', processed_at = now()
		 WHERE id = $1 AND status = 'pending'
		 RETURNING `+withdrawalColumns,
		id)
	w, err := scanWithdrawal(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrRequestNotPending
		}
		return nil, fmt.Errorf("mark rejected: %w", err)
	}
	return w, nil
}
