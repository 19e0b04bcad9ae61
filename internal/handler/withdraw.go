package handler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/shopspring/decimal"
	"github.com/yonas-t/earnbot/internal/domain"
	"github.com/yonas-t/earnbot/internal/service"
)

func (h *Handler) handleWithdraw(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID

	if !h.membership.IsMember(ctx, chatID) {
		h.sendJoinPrompt(ctx, b, chatID)
		return
	}

	user, err := h.withdrawals.Eligible(ctx, chatID)
	switch err {
	case nil:
	case domain.ErrUserNotFound:
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Please register first using /start",
		})
		return
	case domain.ErrNoPaymentDetails:
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text: "⚠️ Please set up your payment details first!\n" +
				"Use /settings to configure your payment method.",
		})
		return
	case domain.ErrInsufficientPoints:
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   fmt.Sprintf("❌ You need at least %d points to withdraw.", h.withdrawals.Minimum()),
		})
		return
	default:
		slog.Error("withdrawal eligibility", "error", err, "chat_id", chatID)
		return
	}

	h.prompts.Set(chatID, service.StepWithdrawAmount, "")

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: fmt.Sprintf(
			"💰 *Withdrawal Request*\n\n"+
				"Current Balance: %d points\n"+
				"Please enter the amount of points you want to withdraw:\n"+
				"_(Minimum: %d points)_",
			user.Points, h.withdrawals.Minimum()),
		ParseMode: models.ParseModeMarkdown,
	})
}

// handleWithdrawAmount consumes the amount reply armed by /withdraw.
func (h *Handler) handleWithdrawAmount(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	req, user, err := h.withdrawals.Request(ctx, chatID, text)
	switch err {
	case nil:
	case domain.ErrInvalidAmount, domain.ErrBelowMinimum:
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   fmt.Sprintf("❌ Minimum withdrawal amount is %d points.", h.withdrawals.Minimum()),
		})
		return
	case domain.ErrInsufficientPoints:
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   fmt.Sprintf("❌ You only have %d points available.", user.Points),
		})
		return
	default:
		slog.Error("create withdrawal request", "error", err, "chat_id", chatID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Something went wrong. Please try again.",
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "✅ Your withdrawal request has been sent to admin for approval.",
	})

	etb := h.cfg.PointValueETB.Mul(decimal.NewFromInt(req.Points))
	h.notifier.WithdrawalRequested(user, req, etb)
}
