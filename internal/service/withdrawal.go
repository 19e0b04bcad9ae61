package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/yonas-t/earnbot/internal/domain"
)

type withdrawalRepo interface {
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	CreateWithdrawal(ctx context.Context, telegramID, points int64) (*domain.WithdrawalRequest, error)
	GetWithdrawal(ctx context.Context, id int64) (*domain.WithdrawalRequest, error)
	ApproveWithdrawal(ctx context.Context, id, points int64, payoutRef string) (*domain.WithdrawalRequest, error)
	RejectWithdrawal(ctx context.Context, id int64) (*domain.WithdrawalRequest, error)
}

type WithdrawalService struct {
	repo    withdrawalRepo
	minimum int64
}

func NewWithdrawalService(repo withdrawalRepo, minimum int64) *WithdrawalService {
	return &WithdrawalService{repo: repo, minimum: minimum}
}

func (s *WithdrawalService) Minimum() int64 {
	return s.minimum
}

// Eligible checks the preconditions for opening a withdrawal prompt:
// configured payment details and a balance at or above the floor.
func (s *WithdrawalService) Eligible(ctx context.Context, telegramID int64) (*domain.User, error) {
	user, err := s.repo.GetUserByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if !user.HasPaymentDetails() {
		return nil, domain.ErrNoPaymentDetails
	}
	if user.Points < s.minimum {
		return user, domain.ErrInsufficientPoints
	}
	return user, nil
}

// Request validates the entered amount and inserts a pending request.
// Nothing is written when the amount is malformed, below the floor, or
// above the current balance.
func (s *WithdrawalService) Request(ctx context.Context, telegramID int64, amountText string) (*domain.WithdrawalRequest, *domain.User, error) {
	points, err := strconv.ParseInt(strings.TrimSpace(amountText), 10, 64)
	if err != nil {
		return nil, nil, domain.ErrInvalidAmount
	}
	if points < s.minimum {
		return nil, nil, domain.ErrBelowMinimum
	}

	user, err := s.repo.GetUserByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, nil, err
	}
	if points > user.Points {
		return nil, user, domain.ErrInsufficientPoints
	}

	req, err := s.repo.CreateWithdrawal(ctx, telegramID, points)
	if err != nil {
		return nil, nil, err
	}
	return req, user, nil
}

func (s *WithdrawalService) Get(ctx context.Context, id int64) (*domain.WithdrawalRequest, error) {
	return s.repo.GetWithdrawal(ctx, id)
}

// Approve deducts the admin-entered amount and marks the request approved,
// tagging it with a fresh payout reference. The repository guards the
// pending status and the balance floor.
func (s *WithdrawalService) Approve(ctx context.Context, id int64, amountText string) (*domain.WithdrawalRequest, error) {
	points, err := strconv.ParseInt(strings.TrimSpace(amountText), 10, 64)
	if err != nil || points <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	return s.repo.ApproveWithdrawal(ctx, id, points, uuid.NewString())
}

func (s *WithdrawalService) Reject(ctx context.Context, id int64) (*domain.WithdrawalRequest, error) {
	return s.repo.RejectWithdrawal(ctx, id)
}
