package domain

import "time"

type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "pending"
	WithdrawalApproved WithdrawalStatus = "approved"
	WithdrawalRejected WithdrawalStatus = "rejected"
)

type WithdrawalRequest struct {
	ID          int64
	UserID      int64 // telegram id of the requesting user
	Points      int64
	Status      WithdrawalStatus
	PayoutRef   string
	CreatedAt   time.Time
	ProcessedAt *time.Time
}
