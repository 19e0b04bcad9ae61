package service

import (
	"context"
	"errors"
	"testing"

	"github.com/yonas-t/earnbot/internal/domain"
)

type stubReferralRepo struct {
	addErr     error
	referrerID int64
	referredID int64
	bonus      int64
	stats      *domain.ReferralStats
}

func (s *stubReferralRepo) AddReferral(ctx context.Context, referrerID, referredID, bonus int64) error {
	if s.addErr != nil {
		return s.addErr
	}
	s.referrerID, s.referredID, s.bonus = referrerID, referredID, bonus
	return nil
}

func (s *stubReferralRepo) ReferralStats(ctx context.Context, telegramID int64) (*domain.ReferralStats, error) {
	return s.stats, nil
}

func TestReferralService_Process(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		referredID int64
		addErr     error
		wantErr    error
	}{
		{"valid payload", "12345", 999, nil, nil},
		{"empty payload", "", 999, nil, domain.ErrInvalidReferral},
		{"non-numeric payload", "abc", 999, nil, domain.ErrInvalidReferral},
		{"negative payload", "-5", 999, nil, domain.ErrInvalidReferral},
		{"self referral", "999", 999, nil, domain.ErrSelfReferral},
		{"already referred", "12345", 999, domain.ErrAlreadyReferred, domain.ErrAlreadyReferred},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubReferralRepo{addErr: tt.addErr}
			svc := NewReferralService(repo, 50)

			referrerID, err := svc.Process(context.Background(), tt.payload, tt.referredID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("process: %v", err)
			}
			if referrerID != 12345 {
				t.Fatalf("expected referrer 12345, got %d", referrerID)
			}
			if repo.bonus != 50 {
				t.Fatalf("expected bonus 50, got %d", repo.bonus)
			}
		})
	}
}
