package handler

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/yonas-t/earnbot/internal/domain"
	tg "github.com/yonas-t/earnbot/internal/telegram"
)

func (h *Handler) handleDaily(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID

	if !h.membership.IsMember(ctx, chatID) {
		h.sendJoinPrompt(ctx, b, chatID)
		return
	}

	tasks, err := h.tasks.Daily(ctx, chatID)
	if err != nil {
		slog.Error("daily tasks", "error", err, "chat_id", chatID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Error loading tasks. Please try again.",
		})
		return
	}

	if len(tasks) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text: "📺 *No More Tasks*\n\n" +
				"✨ You've completed all tasks for today!\n" +
				"🌟 Come back tomorrow for more.",
			ParseMode: models.ParseModeMarkdown,
		})
		return
	}

	for _, task := range tasks {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text: fmt.Sprintf(
				"📝 *Task:* %s\n\n"+
					"ℹ️ *Instructions:*\n"+
					"1️⃣ Click \"Watch Video\" to start\n"+
					"2️⃣ Watch for at least %d seconds\n"+
					"3️⃣ Click \"Finish Task\" to earn %d points",
				task.Title, h.cfg.WatchSeconds, task.Points),
			ParseMode: models.ParseModeMarkdown,
			ReplyMarkup: tg.InlineKeyboard(tg.ButtonRow(
				tg.InlineButton("▶️ Watch Video", fmt.Sprintf("watch_%d", task.ID)),
				tg.InlineButton("✅ Finish Task", fmt.Sprintf("finish_%d", task.ID)),
			)),
		})
	}
}

func (h *Handler) handleWatch(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	taskID, chatID, _, ok := callbackTarget(update, "watch_")
	if !ok {
		return
	}

	userID := update.CallbackQuery.From.ID

	task, err := h.tasks.StartWatch(ctx, userID, taskID)
	if err != nil {
		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: update.CallbackQuery.ID,
			Text:            "❌ Error loading video",
		})
		return
	}

	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: update.CallbackQuery.ID,
		Text:            fmt.Sprintf("🎥 Video started. Watch for at least %d seconds.", h.cfg.WatchSeconds),
	})

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   fmt.Sprintf("🎥 Watch video here: %s", task.VideoURL),
	})
}

func (h *Handler) handleFinish(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	taskID, chatID, messageID, ok := callbackTarget(update, "finish_")
	if !ok {
		return
	}

	userID := update.CallbackQuery.From.ID

	reward, remaining, err := h.tasks.Finish(ctx, userID, taskID)
	switch err {
	case nil:
	case domain.ErrWatchNotStarted:
		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: update.CallbackQuery.ID,
			Text:            "⚠️ Please watch the video first!",
			ShowAlert:       true,
		})
		return
	case domain.ErrWatchTooShort:
		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: update.CallbackQuery.ID,
			Text:            fmt.Sprintf("⏳ Watch the video and wait %d more seconds", int(math.Ceil(remaining.Seconds()))),
			ShowAlert:       true,
		})
		return
	case domain.ErrTaskAlreadyDone:
		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: update.CallbackQuery.ID,
			Text:            "❌ Task already completed",
		})
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ You have already completed this task today.",
		})
		return
	default:
		slog.Error("finish task", "error", err, "user_id", userID, "task_id", taskID)
		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: update.CallbackQuery.ID,
			Text:            "❌ Something went wrong. Please try again.",
		})
		return
	}

	b.EditMessageReplyMarkup(ctx, &bot.EditMessageReplyMarkupParams{
		ChatID:    chatID,
		MessageID: messageID,
		ReplyMarkup: tg.InlineKeyboard(tg.ButtonRow(
			tg.InlineButton("✅ Task Completed", "completed"),
		)),
	})

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: fmt.Sprintf(
			"🎉 *Task Completed!*\n\n"+
				"🎯 You earned %d points!\n"+
				"💰 Use /balance to check your earnings\n"+
				"📝 Use /daily for more tasks", reward),
		ParseMode: models.ParseModeMarkdown,
	})

	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: update.CallbackQuery.ID,
		Text:            "✅ Task completed successfully!",
	})
}

// callbackTarget parses "<prefix><id>" callback data and resolves the
// originating chat and message.
func callbackTarget(update *models.Update, prefix string) (id, chatID int64, messageID int, ok bool) {
	idStr := strings.TrimPrefix(update.CallbackQuery.Data, prefix)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, 0, 0, false
	}

	msg := update.CallbackQuery.Message.Message
	if msg == nil {
		return 0, 0, 0, false
	}
	return id, msg.Chat.ID, msg.ID, true
}
