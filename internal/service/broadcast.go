package service

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type messageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

type broadcastRepo interface {
	RegisteredUserIDs(ctx context.Context) ([]int64, error)
}

type BroadcastService struct {
	repo broadcastRepo
}

func NewBroadcastService(repo broadcastRepo) *BroadcastService {
	return &BroadcastService{repo: repo}
}

// Send delivers text to every registered user sequentially. A delivery
// failure (blocked bot, deleted account) is tallied and the run continues.
func (s *BroadcastService) Send(ctx context.Context, sender messageSender, text string) (sent, failed int, err error) {
	ids, err := s.repo.RegisteredUserIDs(ctx)
	if err != nil {
		return 0, 0, err
	}

	for _, id := range ids {
		_, sendErr := sender.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: id,
			Text:   text,
		})
		if sendErr != nil {
			slog.Debug("broadcast delivery failed", "user_id", id, "error", sendErr)
			failed++
			continue
		}
		sent++
	}
	return sent, failed, nil
}
