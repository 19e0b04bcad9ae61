package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/shopspring/decimal"
	"github.com/yonas-t/earnbot/internal/domain"
)

// Notifier pushes operational events to the admin chat through the admin
// bot. Delivery is best effort; a failed notification is logged, never
// surfaced to the triggering user.
type Notifier struct {
	bot         *bot.Bot
	adminChatID int64
}

func NewNotifier(b *bot.Bot, adminChatID int64) *Notifier {
	return &Notifier{bot: b, adminChatID: adminChatID}
}

func (n *Notifier) send(text string, keyboard models.ReplyMarkup) {
	if n.adminChatID == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	params := &bot.SendMessageParams{
		ChatID:    n.adminChatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdown,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	if _, err := n.bot.SendMessage(ctx, params); err != nil {
		slog.Error("admin notification failed", "error", err)
	}
}

// WithdrawalRequested posts the request card with accept/reject controls
// keyed by the request id.
func (n *Notifier) WithdrawalRequested(user *domain.User, req *domain.WithdrawalRequest, etb decimal.Decimal) {
	text := fmt.Sprintf(
		"🆕 *New Withdrawal Request #%d*\n\n"+
			"👤 User ID: %d\n"+
			"💰 Requested: %d points (≈ %s ETB)\n"+
			"💳 Current Balance: %d points\n"+
			"\n*Payment Details:*\n"+
			"Method: %s\n"+
			"Details: `%s`",
		req.ID,
		user.TelegramID,
		req.Points,
		etb.StringFixed(2),
		user.Points,
		strings.ToUpper(string(user.PaymentMethod)),
		user.PaymentDetail,
	)

	n.send(text, InlineKeyboard(ButtonRow(
		InlineButton("✅ Accept", fmt.Sprintf("accept_%d", req.ID)),
		InlineButton("❌ Reject", fmt.Sprintf("reject_%d", req.ID)),
	)))
}

// Registered posts a notice that a new user finished registration.
func (n *Notifier) Registered(telegramID int64, phoneNumber string) {
	n.send(fmt.Sprintf("👤 *New Registration*\n\n*ID:* `%d`\n*Phone:* `%s`", telegramID, phoneNumber), nil)
}
