package middleware

import (
	"context"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"golang.org/x/time/rate"
)

// RateLimit returns middleware that drops messages from chats sending
// faster than the configured rate. Callback queries are not limited; the
// finish-task flow would otherwise punish fast clickers.
func RateLimit(perSecond float64, burst int) bot.Middleware {
	var mu sync.Mutex
	limiters := make(map[int64]*rate.Limiter)

	limiterFor := func(chatID int64) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[chatID]
		if !ok {
			l = rate.NewLimiter(rate.Limit(perSecond), burst)
			limiters[chatID] = l
		}
		return l
	}

	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if update.Message == nil {
				next(ctx, b, update)
				return
			}

			if !limiterFor(update.Message.Chat.ID).Allow() {
				return
			}
			next(ctx, b, update)
		}
	}
}
