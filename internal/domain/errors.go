package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrTaskAlreadyDone    = errors.New("task already completed today")
	ErrWatchNotStarted    = errors.New("watch session not started")
	ErrWatchTooShort      = errors.New("watch time too short")
	ErrAlreadyReferred    = errors.New("user already referred")
	ErrSelfReferral       = errors.New("cannot refer yourself")
	ErrInvalidReferral    = errors.New("invalid referral payload")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrNoPaymentDetails   = errors.New("payment details not configured")
	ErrBelowMinimum       = errors.New("amount below withdrawal minimum")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrRequestNotPending  = errors.New("withdrawal request is not pending")
	ErrRequestNotFound    = errors.New("withdrawal request not found")
	ErrInvalidTask        = errors.New("invalid task definition")
)
