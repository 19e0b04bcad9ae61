package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/yonas-t/earnbot/internal/domain"
	"github.com/yonas-t/earnbot/internal/middleware"
	tg "github.com/yonas-t/earnbot/internal/telegram"
)

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID

	if !h.membership.IsMember(ctx, chatID) {
		h.sendJoinPrompt(ctx, b, chatID)
		return
	}

	user := middleware.GetUser(ctx)
	if user != nil && user.IsRegistered {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text: "🎉 *Welcome Back!*\n\n" +
				"✨ You are already registered!\n" +
				"📝 Use /help to see available commands.",
			ParseMode:   models.ParseModeMarkdown,
			ReplyMarkup: tg.RemoveKeyboard(),
		})
		return
	}

	// Referral payload, only meaningful for first-time users.
	parts := strings.SplitN(update.Message.Text, " ", 2)
	if len(parts) > 1 {
		h.processReferral(ctx, b, strings.TrimSpace(parts[1]), chatID)
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "Welcome to the bot! Please share your phone number to register.",
		ReplyMarkup: tg.ContactKeyboard("Share Phone Number"),
	})
}

func (h *Handler) processReferral(ctx context.Context, b *bot.Bot, payload string, referredID int64) {
	referrerID, err := h.referrals.Process(ctx, payload, referredID)
	if err != nil {
		switch err {
		case domain.ErrInvalidReferral, domain.ErrSelfReferral, domain.ErrAlreadyReferred:
			// quiet no-op for the registrant
		default:
			slog.Error("process referral", "error", err, "referred_id", referredID)
		}
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: referrerID,
		Text: fmt.Sprintf(
			"🎉 *Congratulations!*\n\n"+
				"👤 Someone joined using your referral link!\n"+
				"💰 You earned %d points!", h.referrals.Bonus()),
		ParseMode: models.ParseModeMarkdown,
	})
}

// HandleContact completes registration from a shared contact.
func (h *Handler) HandleContact(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Contact == nil {
		return
	}

	chatID := update.Message.Chat.ID
	phone := update.Message.Contact.PhoneNumber

	if err := h.users.Register(ctx, chatID, phone); err != nil {
		slog.Error("register user", "error", err, "chat_id", chatID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Error registering user.",
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "Thank you! You are registered. Use /help to see available commands.",
		ReplyMarkup: tg.RemoveKeyboard(),
	})

	h.notifier.Registered(chatID, phone)
}

func (h *Handler) handleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString("🤖 *Available Commands:*\n\n")
	for _, cmd := range UserCommands {
		sb.WriteString(fmt.Sprintf("/%s - %s\n", cmd.Command, cmd.Description))
	}
	sb.WriteString(fmt.Sprintf(
		"\n💡 *Tips:*\n"+
			"• Complete daily tasks to earn points\n"+
			"• Watch videos fully to get rewards\n"+
			"• Refer friends to earn %d points per referral\n"+
			"• Withdraw when you reach %d points",
		h.cfg.ReferralBonus, h.cfg.WithdrawMinimum))

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    update.Message.Chat.ID,
		Text:      sb.String(),
		ParseMode: models.ParseModeMarkdown,
	})
}

func (h *Handler) sendJoinPrompt(ctx context.Context, b *bot.Bot, chatID int64) {
	var sb strings.Builder
	sb.WriteString("⚠️ You must join the following channels to use the bot:\n")
	for i, channel := range h.membership.Channels() {
		sb.WriteString(fmt.Sprintf("%d. [Channel %d](https://t.me/%s)\n", i+1, i+1, channel))
	}
	sb.WriteString("\nPlease join the channels and then try again.")

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      sb.String(),
		ParseMode: models.ParseModeMarkdown,
	})
}
