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
	"github.com/yonas-t/earnbot/internal/service"
	tg "github.com/yonas-t/earnbot/internal/telegram"
)

func (h *Handler) handleSettings(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID

	currentDetails := ""
	if user := middleware.GetUser(ctx); user != nil && user.HasPaymentDetails() {
		currentDetails = fmt.Sprintf(
			"\n*Current Payment Details:*\n"+
				"Method: %s\n"+
				"Number: `%s`\n",
			strings.ToUpper(string(user.PaymentMethod)), user.PaymentDetail)
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: "⚙️ *Payment Settings*\n\n" +
			"Choose payment method:\n" +
			"🏦 Available options:\n" +
			"• CBE Bank\n" +
			"• TeleBirr\n" +
			currentDetails + "\n" +
			"Select your preferred method:",
		ParseMode: models.ParseModeMarkdown,
		ReplyMarkup: tg.InlineKeyboard(tg.ButtonRow(
			tg.InlineButton("CBE Bank 🏦", "set_cbe"),
			tg.InlineButton("TeleBirr 📱", "set_telebirr"),
		)),
	})
}

func (h *Handler) handleSetMethod(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: update.CallbackQuery.ID})

	method := domain.PaymentMethod(strings.TrimPrefix(update.CallbackQuery.Data, "set_"))
	if !method.Valid() {
		return
	}

	msg := update.CallbackQuery.Message.Message
	if msg == nil {
		return
	}
	chatID := msg.Chat.ID

	label := "CBE Bank account number"
	if method == domain.PaymentMethodTeleBirr {
		label = "TeleBirr phone number"
	}

	h.prompts.Set(chatID, service.StepPaymentDetail, string(method))

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   fmt.Sprintf("📝 Please enter your %s:", label),
	})
}

// handlePaymentDetail consumes the detail reply armed by a set_ callback.
func (h *Handler) handlePaymentDetail(ctx context.Context, b *bot.Bot, chatID int64, method, detail string) {
	err := h.users.SetPaymentDetails(ctx, chatID, domain.PaymentMethod(method), strings.TrimSpace(detail))
	if err != nil {
		slog.Error("update payment details", "error", err, "chat_id", chatID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Error updating payment details. Please try again.",
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "✅ Payment details updated successfully!",
	})
}
