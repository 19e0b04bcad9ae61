package service

import (
	"sync"
	"time"
)

// PromptStep tags what kind of reply a chat is expected to send next.
type PromptStep string

const (
	StepWithdrawAmount PromptStep = "withdraw_amount"
	StepPaymentDetail  PromptStep = "payment_detail"
	StepBroadcastText  PromptStep = "broadcast_text"
	StepAddTask        PromptStep = "add_task"
	StepApproveAmount  PromptStep = "approve_amount"
)

type pendingPrompt struct {
	step      PromptStep
	payload   string
	expiresAt time.Time
}

// PromptStore holds at most one pending prompt per chat. A prompt is
// consumed exactly once: Consume returns it and clears it atomically, so
// two concurrently pending flows can never cross-wire each other's replies.
type PromptStore struct {
	mu      sync.Mutex
	pending map[int64]pendingPrompt
	ttl     time.Duration
	now     func() time.Time
}

func NewPromptStore(ttl time.Duration) *PromptStore {
	return &PromptStore{
		pending: make(map[int64]pendingPrompt),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Set arms a prompt for chatID. A newer prompt replaces any pending one.
func (s *PromptStore) Set(chatID int64, step PromptStep, payload string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[chatID] = pendingPrompt{
		step:      step,
		payload:   payload,
		expiresAt: s.now().Add(s.ttl),
	}
}

// Consume returns and clears the pending prompt for chatID. Expired prompts
// are dropped as if they never existed.
func (s *PromptStore) Consume(chatID int64) (PromptStep, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[chatID]
	if !ok {
		return "", "", false
	}
	delete(s.pending, chatID)
	if s.now().After(p.expiresAt) {
		return "", "", false
	}
	return p.step, p.payload, true
}

// Clear drops the pending prompt for chatID, if any.
func (s *PromptStore) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, chatID)
}

// Cleanup drops expired prompts and returns how many were dropped.
func (s *PromptStore) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for chatID, p := range s.pending {
		if now.After(p.expiresAt) {
			delete(s.pending, chatID)
			n++
		}
	}
	return n
}
