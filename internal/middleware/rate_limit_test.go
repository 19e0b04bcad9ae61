package middleware

import (
	"context"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func TestRateLimit_DropsBurstOverflow(t *testing.T) {
	calls := 0
	next := func(ctx context.Context, b *bot.Bot, update *models.Update) {
		calls++
	}
	handler := RateLimit(1, 2)(next)

	for range 5 {
		handler(context.Background(), nil, messageFrom(1))
	}

	if calls != 2 {
		t.Fatalf("expected burst of 2 to pass, got %d", calls)
	}
}

func TestRateLimit_PerChatIsolation(t *testing.T) {
	calls := map[int64]int{}
	next := func(ctx context.Context, b *bot.Bot, update *models.Update) {
		calls[update.Message.Chat.ID]++
	}
	handler := RateLimit(1, 1)(next)

	handler(context.Background(), nil, messageFrom(1))
	handler(context.Background(), nil, messageFrom(1))
	handler(context.Background(), nil, messageFrom(2))

	if calls[1] != 1 || calls[2] != 1 {
		t.Fatalf("expected one call per chat, got %v", calls)
	}
}

func TestRateLimit_CallbacksAreNotLimited(t *testing.T) {
	calls := 0
	next := func(ctx context.Context, b *bot.Bot, update *models.Update) {
		calls++
	}
	handler := RateLimit(1, 1)(next)

	cb := &models.Update{CallbackQuery: &models.CallbackQuery{From: models.User{ID: 1}}}
	for range 5 {
		handler(context.Background(), nil, cb)
	}

	if calls != 5 {
		t.Fatalf("expected all callbacks to pass, got %d", calls)
	}
}
