package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yonas-t/earnbot/internal/domain"
)

func newMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return New(mock), mock
}

func userRows(createdAt time.Time) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "telegram_id", "phone_number", "points", "is_registered",
		"payment_method", "payment_detail", "referral_points", "created_at",
	}).AddRow(int64(1), int64(999), "+251911123456", int64(120), true, domain.PaymentMethodCBE, "1000123456789", int64(50), createdAt)
}

func TestGetUserByTelegramID(t *testing.T) {
	repo, mock := newMock(t)
	createdAt := time.Now()

	query := regexp.QuoteMeta(`SELECT ` + userColumns + ` FROM users WHERE telegram_id = $1`)

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(int64(999)).WillReturnRows(userRows(createdAt))

		user, err := repo.GetUserByTelegramID(context.Background(), 999)
		require.NoError(t, err)
		assert.Equal(t, int64(999), user.TelegramID)
		assert.Equal(t, int64(120), user.Points)
		assert.Equal(t, domain.PaymentMethodCBE, user.PaymentMethod)
		assert.True(t, user.IsRegistered)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows([]string{"id"}))

		_, err := repo.GetUserByTelegramID(context.Background(), 1)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(int64(999)).
			WillReturnError(errors.New("database error"))

		_, err := repo.GetUserByTelegramID(context.Background(), 999)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestCreateUser(t *testing.T) {
	repo, mock := newMock(t)

	query := regexp.QuoteMeta(`INSERT INTO users (telegram_id, phone_number, is_registered)
		 VALUES ($1, $2, TRUE)
		 ON CONFLICT (telegram_id) DO NOTHING`)

	t.Run("inserts new user", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(int64(999), "+251911123456").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := repo.CreateUser(context.Background(), 999, "+251911123456")
		assert.NoError(t, err)
	})

	t.Run("existing row is left untouched", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(int64(999), "+251911123456").
			WillReturnResult(pgxmock.NewResult("INSERT", 0))

		err := repo.CreateUser(context.Background(), 999, "+251911123456")
		assert.NoError(t, err)
	})
}

func TestUpdatePaymentSettings(t *testing.T) {
	repo, mock := newMock(t)

	query := regexp.QuoteMeta(`UPDATE users SET payment_method = $1, payment_detail = $2 WHERE telegram_id = $3`)

	t.Run("updates existing user", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(domain.PaymentMethodTeleBirr, "0911123456", int64(999)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.UpdatePaymentSettings(context.Background(), 999, domain.PaymentMethodTeleBirr, "0911123456")
		assert.NoError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(domain.PaymentMethodTeleBirr, "0911123456", int64(1)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.UpdatePaymentSettings(context.Background(), 1, domain.PaymentMethodTeleBirr, "0911123456")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestRegisteredUserIDs(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT telegram_id FROM users WHERE is_registered = TRUE ORDER BY id`)).
		WillReturnRows(pgxmock.NewRows([]string{"telegram_id"}).
			AddRow(int64(10)).AddRow(int64(20)).AddRow(int64(30)))

	ids, err := repo.RegisteredUserIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 20, 30}, ids)
}
