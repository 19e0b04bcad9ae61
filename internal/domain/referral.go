package domain

import "time"

type Referral struct {
	ID           int64
	ReferrerID   int64
	ReferredID   int64
	PointsEarned int64
	CreatedAt    time.Time
}

// ReferralStats is the aggregate shown by /referrals.
type ReferralStats struct {
	TotalReferrals int64
	PointsEarned   int64
	ReferralPoints int64
	ReferredBy     *int64
}
