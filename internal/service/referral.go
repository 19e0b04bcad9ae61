package service

import (
	"context"
	"strconv"

	"github.com/yonas-t/earnbot/internal/domain"
)

type referralRepo interface {
	AddReferral(ctx context.Context, referrerID, referredID, bonus int64) error
	ReferralStats(ctx context.Context, telegramID int64) (*domain.ReferralStats, error)
}

type ReferralService struct {
	repo  referralRepo
	bonus int64
}

func NewReferralService(repo referralRepo, bonus int64) *ReferralService {
	return &ReferralService{repo: repo, bonus: bonus}
}

// Process handles the /start deep-link payload of a first-time user. It
// returns the credited referrer id so the caller can notify them. A missing
// or malformed payload, a self-referral, and an already-referred user are
// all quiet no-ops from the registrant's point of view.
func (s *ReferralService) Process(ctx context.Context, payload string, referredID int64) (int64, error) {
	if payload == "" {
		return 0, domain.ErrInvalidReferral
	}
	referrerID, err := strconv.ParseInt(payload, 10, 64)
	if err != nil || referrerID <= 0 {
		return 0, domain.ErrInvalidReferral
	}
	if referrerID == referredID {
		return 0, domain.ErrSelfReferral
	}

	if err := s.repo.AddReferral(ctx, referrerID, referredID, s.bonus); err != nil {
		return 0, err
	}
	return referrerID, nil
}

func (s *ReferralService) Bonus() int64 {
	return s.bonus
}

func (s *ReferralService) Stats(ctx context.Context, telegramID int64) (*domain.ReferralStats, error) {
	return s.repo.ReferralStats(ctx, telegramID)
}
