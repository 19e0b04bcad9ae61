package service

import (
	"context"
	"errors"
	"testing"

	"github.com/yonas-t/earnbot/internal/domain"
)

type stubUserRepo struct {
	user      *domain.User
	userErr   error
	created   bool
	updateErr error
	method    domain.PaymentMethod
	detail    string
}

func (s *stubUserRepo) GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	return s.user, s.userErr
}

func (s *stubUserRepo) CreateUser(ctx context.Context, telegramID int64, phoneNumber string) error {
	s.created = true
	return nil
}

func (s *stubUserRepo) UpdatePaymentSettings(ctx context.Context, telegramID int64, method domain.PaymentMethod, detail string) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.method, s.detail = method, detail
	return nil
}

func TestUserService_IsRegistered(t *testing.T) {
	tests := []struct {
		name    string
		user    *domain.User
		userErr error
		want    bool
	}{
		{"registered", &domain.User{IsRegistered: true}, nil, true},
		{"row without registration", &domain.User{IsRegistered: false}, nil, false},
		{"no row", nil, domain.ErrUserNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(&stubUserRepo{user: tt.user, userErr: tt.userErr})

			got, err := svc.IsRegistered(context.Background(), 1)
			if err != nil {
				t.Fatalf("is registered: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestUserService_SetPaymentDetails(t *testing.T) {
	repo := &stubUserRepo{}
	svc := NewUserService(repo)

	err := svc.SetPaymentDetails(context.Background(), 1, domain.PaymentMethodTeleBirr, "0911123456")
	if err != nil {
		t.Fatalf("set payment details: %v", err)
	}
	if repo.method != domain.PaymentMethodTeleBirr || repo.detail != "0911123456" {
		t.Fatalf("stored %q/%q", repo.method, repo.detail)
	}
}

func TestUserService_SetPaymentDetailsRejectsBadInput(t *testing.T) {
	repo := &stubUserRepo{}
	svc := NewUserService(repo)

	if err := svc.SetPaymentDetails(context.Background(), 1, "paypal", "x"); !errors.Is(err, domain.ErrNoPaymentDetails) {
		t.Fatalf("expected ErrNoPaymentDetails for unknown method, got %v", err)
	}
	if err := svc.SetPaymentDetails(context.Background(), 1, domain.PaymentMethodCBE, ""); !errors.Is(err, domain.ErrNoPaymentDetails) {
		t.Fatalf("expected ErrNoPaymentDetails for empty detail, got %v", err)
	}
	if repo.method != "" {
		t.Fatalf("invalid input must not reach the repository")
	}
}
