package handler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/yonas-t/earnbot/internal/middleware"
	tg "github.com/yonas-t/earnbot/internal/telegram"
)

func (h *Handler) handleBalance(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID

	if !h.membership.IsMember(ctx, chatID) {
		h.sendJoinPrompt(ctx, b, chatID)
		return
	}

	user := middleware.GetUser(ctx)
	if user == nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Please register first using /start",
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   fmt.Sprintf("Your current balance is: %d points", user.Points),
	})
}

func (h *Handler) handleReferrals(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID

	stats, err := h.referrals.Stats(ctx, chatID)
	if err != nil {
		slog.Error("referral stats", "error", err, "chat_id", chatID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Error fetching referral statistics.",
		})
		return
	}

	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("get bot info", "error", err)
		return
	}
	referralLink := fmt.Sprintf("https://t.me/%s?start=%d", me.Username, chatID)

	referredNote := ""
	if stats.ReferredBy != nil {
		referredNote = "🔄 You were referred by someone\n"
	}

	text := fmt.Sprintf(
		"🎯 *Your Referral Statistics*\n\n"+
			"👥 Total Referrals: %d\n"+
			"💰 Referral Points Earned: %d\n"+
			"%s\n"+
			"*How to Refer:*\n"+
			"1. Share your unique referral link\n"+
			"2. Earn %d points for each new user\n\n"+
			"🔗 *Your Referral Link:*\n`%s`\n\n"+
			"💡 *Share this link with your friends to earn points!*",
		stats.TotalReferrals,
		stats.ReferralPoints,
		referredNote,
		h.referrals.Bonus(),
		referralLink,
	)

	shareURL := fmt.Sprintf("https://t.me/share/url?url=%s", referralLink)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdown,
		ReplyMarkup: tg.InlineKeyboard(tg.ButtonRow(
			tg.URLButton("📤 Share Referral Link", shareURL),
		)),
	})
}
