package service

import (
	"context"
	"errors"
	"testing"

	"github.com/yonas-t/earnbot/internal/domain"
)

type stubWithdrawalRepo struct {
	user       *domain.User
	userErr    error
	created    *domain.WithdrawalRequest
	createErr  error
	approved   *domain.WithdrawalRequest
	approveErr error
	payoutRef  string
	points     int64
	rejected   *domain.WithdrawalRequest
	rejectErr  error
}

func (s *stubWithdrawalRepo) GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	return s.user, s.userErr
}

func (s *stubWithdrawalRepo) CreateWithdrawal(ctx context.Context, telegramID, points int64) (*domain.WithdrawalRequest, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = &domain.WithdrawalRequest{ID: 1, UserID: telegramID, Points: points, Status: domain.WithdrawalPending}
	return s.created, nil
}

func (s *stubWithdrawalRepo) GetWithdrawal(ctx context.Context, id int64) (*domain.WithdrawalRequest, error) {
	return s.created, nil
}

func (s *stubWithdrawalRepo) ApproveWithdrawal(ctx context.Context, id, points int64, payoutRef string) (*domain.WithdrawalRequest, error) {
	if s.approveErr != nil {
		return nil, s.approveErr
	}
	s.points, s.payoutRef = points, payoutRef
	s.approved = &domain.WithdrawalRequest{ID: id, Points: points, Status: domain.WithdrawalApproved, PayoutRef: payoutRef}
	return s.approved, nil
}

func (s *stubWithdrawalRepo) RejectWithdrawal(ctx context.Context, id int64) (*domain.WithdrawalRequest, error) {
	if s.rejectErr != nil {
		return nil, s.rejectErr
	}
	s.rejected = &domain.WithdrawalRequest{ID: id, Status: domain.WithdrawalRejected}
	return s.rejected, nil
}

func eligibleUser(points int64) *domain.User {
	return &domain.User{
		TelegramID:    999,
		Points:        points,
		IsRegistered:  true,
		PaymentMethod: domain.PaymentMethodCBE,
		PaymentDetail: "1000123456789",
	}
}

func TestWithdrawalService_Eligible(t *testing.T) {
	tests := []struct {
		name    string
		user    *domain.User
		userErr error
		wantErr error
	}{
		{"eligible", eligibleUser(100), nil, nil},
		{"unknown user", nil, domain.ErrUserNotFound, domain.ErrUserNotFound},
		{"no payment details", &domain.User{TelegramID: 999, Points: 100}, nil, domain.ErrNoPaymentDetails},
		{"below minimum", eligibleUser(10), nil, domain.ErrInsufficientPoints},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewWithdrawalService(&stubWithdrawalRepo{user: tt.user, userErr: tt.userErr}, 30)

			_, err := svc.Eligible(context.Background(), 999)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestWithdrawalService_Request(t *testing.T) {
	tests := []struct {
		name       string
		amountText string
		balance    int64
		wantErr    error
		wantPoints int64
	}{
		{"valid", "50", 100, nil, 50},
		{"whole balance", "100", 100, nil, 100},
		{"with whitespace", " 50 ", 100, nil, 50},
		{"not a number", "fifty", 100, domain.ErrInvalidAmount, 0},
		{"below minimum", "10", 100, domain.ErrBelowMinimum, 0},
		{"over balance", "150", 100, domain.ErrInsufficientPoints, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubWithdrawalRepo{user: eligibleUser(tt.balance)}
			svc := NewWithdrawalService(repo, 30)

			req, _, err := svc.Request(context.Background(), 999, tt.amountText)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if repo.created != nil {
					t.Fatalf("nothing may be written on a rejected amount")
				}
				return
			}
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if req.Points != tt.wantPoints {
				t.Fatalf("expected %d points, got %d", tt.wantPoints, req.Points)
			}
		})
	}
}

func TestWithdrawalService_Approve(t *testing.T) {
	repo := &stubWithdrawalRepo{}
	svc := NewWithdrawalService(repo, 30)

	req, err := svc.Approve(context.Background(), 1, "40")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if req.Points != 40 {
		t.Fatalf("expected 40 points, got %d", req.Points)
	}
	if repo.payoutRef == "" {
		t.Fatalf("expected a payout reference to be assigned")
	}
}

func TestWithdrawalService_ApproveInvalidAmount(t *testing.T) {
	repo := &stubWithdrawalRepo{}
	svc := NewWithdrawalService(repo, 30)

	for _, amount := range []string{"", "abc", "0", "-5"} {
		if _, err := svc.Approve(context.Background(), 1, amount); !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("amount %q: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
	if repo.approved != nil {
		t.Fatalf("invalid amounts must not reach the repository")
	}
}

func TestWithdrawalService_RejectPassthrough(t *testing.T) {
	repo := &stubWithdrawalRepo{rejectErr: domain.ErrRequestNotPending}
	svc := NewWithdrawalService(repo, 30)

	if _, err := svc.Reject(context.Background(), 1); !errors.Is(err, domain.ErrRequestNotPending) {
		t.Fatalf("expected ErrRequestNotPending, got %v", err)
	}
}
