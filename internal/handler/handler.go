package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/yonas-t/earnbot/internal/config"
	"github.com/yonas-t/earnbot/internal/service"
	"github.com/yonas-t/earnbot/internal/telegram"
)

// Handler holds the user-facing bot's command and callback handlers.
type Handler struct {
	bot         *bot.Bot
	cfg         *config.Config
	users       *service.UserService
	tasks       *service.TaskService
	referrals   *service.ReferralService
	withdrawals *service.WithdrawalService
	membership  *service.MembershipService
	prompts     *service.PromptStore
	notifier    *telegram.Notifier
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot         *bot.Bot
	Cfg         *config.Config
	Users       *service.UserService
	Tasks       *service.TaskService
	Referrals   *service.ReferralService
	Withdrawals *service.WithdrawalService
	Membership  *service.MembershipService
	Prompts     *service.PromptStore
	Notifier    *telegram.Notifier
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:         deps.Bot,
		cfg:         deps.Cfg,
		users:       deps.Users,
		tasks:       deps.Tasks,
		referrals:   deps.Referrals,
		withdrawals: deps.Withdrawals,
		membership:  deps.Membership,
		prompts:     deps.Prompts,
		notifier:    deps.Notifier,
	}
}

// Register registers all command and callback handlers on the user bot.
func (h *Handler) Register() {
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/daily", bot.MatchTypePrefix, h.handleDaily)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/balance", bot.MatchTypePrefix, h.handleBalance)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/withdraw", bot.MatchTypePrefix, h.handleWithdraw)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypePrefix, h.handleHelp)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/settings", bot.MatchTypePrefix, h.handleSettings)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/referrals", bot.MatchTypePrefix, h.handleReferrals)

	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "watch_", bot.MatchTypePrefix, h.handleWatch)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "finish_", bot.MatchTypePrefix, h.handleFinish)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "set_", bot.MatchTypePrefix, h.handleSetMethod)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "completed", bot.MatchTypeExact, h.handleNoop)
}

// handleNoop acknowledges callbacks from non-interactive buttons.
func (h *Handler) handleNoop(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery != nil {
		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: update.CallbackQuery.ID,
		})
	}
}
