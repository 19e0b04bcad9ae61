package service

import (
	"context"
	"fmt"

	"github.com/yonas-t/earnbot/internal/domain"
)

type userRepo interface {
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	CreateUser(ctx context.Context, telegramID int64, phoneNumber string) error
	UpdatePaymentSettings(ctx context.Context, telegramID int64, method domain.PaymentMethod, detail string) error
}

type UserService struct {
	repo userRepo
}

func NewUserService(repo userRepo) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	return s.repo.GetUserByTelegramID(ctx, telegramID)
}

// IsRegistered reports whether a registered user row exists for telegramID.
func (s *UserService) IsRegistered(ctx context.Context, telegramID int64) (bool, error) {
	user, err := s.repo.GetUserByTelegramID(ctx, telegramID)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return false, nil
		}
		return false, err
	}
	return user.IsRegistered, nil
}

// Register creates the user row from a contact share. Re-registering is a
// no-op: an existing row is left untouched.
func (s *UserService) Register(ctx context.Context, telegramID int64, phoneNumber string) error {
	if err := s.repo.CreateUser(ctx, telegramID, phoneNumber); err != nil {
		return fmt.Errorf("register user: %w", err)
	}
	return nil
}

func (s *UserService) SetPaymentDetails(ctx context.Context, telegramID int64, method domain.PaymentMethod, detail string) error {
	if !method.Valid() || detail == "" {
		return domain.ErrNoPaymentDetails
	}
	return s.repo.UpdatePaymentSettings(ctx, telegramID, method, detail)
}
