package middleware

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/yonas-t/earnbot/internal/domain"
)

type ctxKey string

const userKey ctxKey = "user"

type userGetter interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
}

// GetUser extracts the loaded user from context. Nil means the sender has
// not registered yet.
func GetUser(ctx context.Context) *domain.User {
	u, ok := ctx.Value(userKey).(*domain.User)
	if !ok {
		return nil
	}
	return u
}

// UserLoader returns middleware that loads an existing user row into the
// context. It never creates rows; registration goes through the contact
// share flow.
func UserLoader(users userGetter) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			var from *models.User
			if update.Message != nil {
				from = update.Message.From
			} else if update.CallbackQuery != nil {
				from = &update.CallbackQuery.From
			}

			if from != nil {
				user, err := users.GetByTelegramID(ctx, from.ID)
				if err == nil && user != nil {
					ctx = context.WithValue(ctx, userKey, user)
				}
			}

			next(ctx, b, update)
		}
	}
}
