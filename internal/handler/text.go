package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/yonas-t/earnbot/internal/service"
)

// HandleDefault routes updates the command handlers did not claim: contact
// shares and replies to pending prompts. A text with no pending prompt is
// ignored.
func (h *Handler) HandleDefault(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	if update.Message.Contact != nil {
		h.HandleContact(ctx, b, update)
		return
	}

	text := update.Message.Text
	if text == "" || text[0] == '/' {
		return
	}

	chatID := update.Message.Chat.ID
	step, payload, ok := h.prompts.Consume(chatID)
	if !ok {
		return
	}

	switch step {
	case service.StepWithdrawAmount:
		h.handleWithdrawAmount(ctx, b, chatID, text)
	case service.StepPaymentDetail:
		h.handlePaymentDetail(ctx, b, chatID, payload, text)
	}
}
