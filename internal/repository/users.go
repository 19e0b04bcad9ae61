package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yonas-t/earnbot/internal/domain"
)

const userColumns = `id, telegram_id, phone_number, points, is_registered, payment_method, payment_detail, referral_points, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.TelegramID,
		&u.PhoneNumber,
		&u.Points,
		&u.IsRegistered,
		&u.PaymentMethod,
		&u.PaymentDetail,
		&u.ReferralPoints,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE telegram_id = $1`, telegramID)
	u, err := scanUser(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// CreateUser registers a user keyed by telegram id. A pre-existing row is
// left untouched, matching the contact-share "insert or ignore" semantics.
func (r *Repository) CreateUser(ctx context.Context, telegramID int64, phoneNumber string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (telegram_id, phone_number, is_registered)
		 VALUES ($1, $2, TRUE)
		 ON CONFLICT (telegram_id) DO NOTHING`,
		telegramID, phoneNumber)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *Repository) UpdatePaymentSettings(ctx context.Context, telegramID int64, method domain.PaymentMethod, detail string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET payment_method = $1, payment_detail = $2 WHERE telegram_id = $3`,
		method, detail, telegramID)
	if err != nil {
		return fmt.Errorf("update payment settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// RegisteredUserIDs returns telegram ids of all registered users, for broadcast fan-out.
func (r *Repository) RegisteredUserIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT telegram_id FROM users WHERE is_registered = TRUE ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list registered users: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan telegram id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate registered users: %w", err)
	}
	return ids, nil
}
