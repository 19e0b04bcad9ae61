package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/shopspring/decimal"
	"github.com/yonas-t/earnbot/internal/config"
	"github.com/yonas-t/earnbot/internal/domain"
	"github.com/yonas-t/earnbot/internal/service"
	tg "github.com/yonas-t/earnbot/internal/telegram"
)

type statsProvider interface {
	Stats(ctx context.Context) (*domain.Stats, error)
}

// Admin holds the admin bot's command and callback handlers. Every handler
// runs behind the AdminOnly middleware; userBot is the user-facing bot used
// to reach end users for broadcasts and withdrawal decisions.
type Admin struct {
	bot         *bot.Bot
	userBot     *bot.Bot
	cfg         *config.Config
	tasks       *service.TaskService
	broadcasts  *service.BroadcastService
	withdrawals *service.WithdrawalService
	stats       statsProvider
	prompts     *service.PromptStore
	preview     *service.PreviewService
}

// AdminDeps contains all dependencies required to construct an Admin.
type AdminDeps struct {
	Bot         *bot.Bot
	UserBot     *bot.Bot
	Cfg         *config.Config
	Tasks       *service.TaskService
	Broadcasts  *service.BroadcastService
	Withdrawals *service.WithdrawalService
	Stats       statsProvider
	Prompts     *service.PromptStore
	Preview     *service.PreviewService
}

func NewAdmin(deps AdminDeps) *Admin {
	return &Admin{
		bot:         deps.Bot,
		userBot:     deps.UserBot,
		cfg:         deps.Cfg,
		tasks:       deps.Tasks,
		broadcasts:  deps.Broadcasts,
		withdrawals: deps.Withdrawals,
		stats:       deps.Stats,
		prompts:     deps.Prompts,
		preview:     deps.Preview,
	}
}

// Register registers all command and callback handlers on the admin bot.
func (a *Admin) Register() {
	a.bot.RegisterHandler(bot.HandlerTypeMessageText, "/broadcast", bot.MatchTypePrefix, a.handleBroadcast)
	a.bot.RegisterHandler(bot.HandlerTypeMessageText, "/stats", bot.MatchTypePrefix, a.handleStats)
	a.bot.RegisterHandler(bot.HandlerTypeMessageText, "/addtask", bot.MatchTypePrefix, a.handleAddTask)
	a.bot.RegisterHandler(bot.HandlerTypeMessageText, "/deletetask", bot.MatchTypePrefix, a.handleDeleteTask)
	a.bot.RegisterHandler(bot.HandlerTypeMessageText, "/tasks", bot.MatchTypePrefix, a.handleViewTasks)

	a.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "delete_", bot.MatchTypePrefix, a.handleDeleteCallback)
	a.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "accept_", bot.MatchTypePrefix, a.handleAccept)
	a.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "reject_", bot.MatchTypePrefix, a.handleReject)
}

func (a *Admin) handleBroadcast(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	a.prompts.Set(chatID, service.StepBroadcastText, "")

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "Please enter the message you want to broadcast:",
	})
}

func (a *Admin) handleBroadcastText(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	sent, failed, err := a.broadcasts.Send(ctx, a.userBot, text)
	if err != nil {
		slog.Error("broadcast", "error", err)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Error fetching users.",
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   fmt.Sprintf("Broadcast completed!\nSuccess: %d\nFailed: %d", sent, failed),
	})
}

func (a *Admin) handleStats(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	stats, err := a.stats.Stats(ctx)
	if err != nil {
		slog.Error("stats", "error", err)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Error fetching statistics.",
		})
		return
	}

	liability := a.cfg.PointValueETB.Mul(decimal.NewFromInt(stats.TotalPoints))

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: fmt.Sprintf(
			"📊 Bot Statistics\n\n"+
				"Total Users: %d\n"+
				"Registered Users: %d\n"+
				"Total Points Distributed: %d (≈ %s ETB)\n"+
				"Tasks: %d\n"+
				"Pending Withdrawals: %d",
			stats.TotalUsers,
			stats.RegisteredUsers,
			stats.TotalPoints,
			liability.StringFixed(2),
			stats.TotalTasks,
			stats.PendingWithdrawals),
	})
}

func (a *Admin) handleViewTasks(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	tasks, err := a.tasks.List(ctx)
	if err != nil || len(tasks) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "No tasks available.",
		})
		return
	}

	// Long listings are split at task boundaries to stay under the message
	// size limit.
	var sb strings.Builder
	sb.WriteString("📝 Available Tasks:\n\n")
	for _, task := range tasks {
		entry := fmt.Sprintf("ID: %d\nTitle: %s\nVideo: %s\nPoints: %d\n\n",
			task.ID, task.Title, task.VideoURL, task.Points)
		if sb.Len()+len(entry) > config.MaxTelegramMessageLen {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   sb.String(),
			})
			sb.Reset()
		}
		sb.WriteString(entry)
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   sb.String(),
	})
}

func (a *Admin) handleDeleteTask(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	tasks, err := a.tasks.List(ctx)
	if err != nil || len(tasks) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "No tasks available.",
		})
		return
	}

	var rows [][]models.InlineKeyboardButton
	for _, task := range tasks {
		rows = append(rows, tg.ButtonRow(
			tg.InlineButton(task.Title, fmt.Sprintf("delete_%d", task.ID)),
		))
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "Select task to delete:",
		ReplyMarkup: tg.InlineKeyboard(rows...),
	})
}

func (a *Admin) handleDeleteCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: update.CallbackQuery.ID})

	taskID, chatID, messageID, ok := callbackTarget(update, "delete_")
	if !ok {
		return
	}

	if err := a.tasks.Delete(ctx, taskID); err != nil {
		slog.Error("delete task", "error", err, "task_id", taskID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Error deleting task.",
		})
		return
	}

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      "Task deleted successfully!",
	})
}
