package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/shopspring/decimal"
	"github.com/yonas-t/earnbot/internal/domain"
	"github.com/yonas-t/earnbot/internal/service"
)

func (a *Admin) handleAddTask(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	a.prompts.Set(chatID, service.StepAddTask, "")

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: fmt.Sprintf("Please send the task in this format:\n\n"+
			"Title | Video URL | Points\n\n"+
			"Example:\nWatch product demo | https://youtu.be/abc123 | 20\n\n"+
			"Points are optional (default: %d).", a.cfg.TaskRewardDefault),
	})
}

func (a *Admin) handleAddTaskText(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	parts := strings.Split(text, "|")
	if len(parts) < 2 || len(parts) > 3 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Invalid format. Use: Title | Video URL | Points",
		})
		return
	}

	// Points are optional; omitted means the configured default reward.
	points := a.cfg.TaskRewardDefault
	if len(parts) == 3 {
		var err error
		points, err = strconv.ParseInt(strings.TrimSpace(parts[2]), 10, 64)
		if err != nil {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   "Points must be a number.",
			})
			return
		}
	}

	task, err := a.tasks.Add(ctx, parts[0], parts[1], points)
	switch err {
	case nil:
	case domain.ErrInvalidTask:
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Invalid task. Check the title length, the video URL and the points range.",
		})
		return
	default:
		slog.Error("add task", "error", err)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Error adding task.",
		})
		return
	}

	confirmation := fmt.Sprintf("Task added successfully!\nID: %d\nTitle: %s\nPoints: %d",
		task.ID, task.Title, task.Points)
	if pageTitle := a.preview.Title(ctx, task.VideoURL); pageTitle != "" {
		confirmation += fmt.Sprintf("\nVideo: %s", pageTitle)
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   confirmation,
	})
}

func (a *Admin) handleAccept(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: update.CallbackQuery.ID})

	requestID, chatID, _, ok := callbackTarget(update, "accept_")
	if !ok {
		return
	}

	req, err := a.withdrawals.Get(ctx, requestID)
	if err != nil {
		slog.Error("get withdrawal request", "error", err, "request_id", requestID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Withdrawal request not found.",
		})
		return
	}
	if req.Status != domain.WithdrawalPending {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   fmt.Sprintf("Request #%d was already %s.", req.ID, req.Status),
		})
		return
	}

	a.prompts.Set(chatID, service.StepApproveAmount, strconv.FormatInt(requestID, 10))

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: fmt.Sprintf("Request #%d: user requested %d points.\n"+
			"Enter the amount of points to deduct:", req.ID, req.Points),
	})
}

func (a *Admin) handleApproveAmount(ctx context.Context, b *bot.Bot, chatID int64, payload, text string) {
	requestID, err := strconv.ParseInt(payload, 10, 64)
	if err != nil {
		return
	}

	req, err := a.withdrawals.Approve(ctx, requestID, text)
	switch err {
	case nil:
	case domain.ErrInvalidAmount:
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Invalid amount. Please use /stats to review and try again.",
		})
		return
	case domain.ErrRequestNotPending, domain.ErrRequestNotFound:
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   fmt.Sprintf("Request #%d is no longer pending.", requestID),
		})
		return
	case domain.ErrInsufficientPoints:
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "The user no longer has enough points for that amount.",
		})
		return
	default:
		slog.Error("approve withdrawal", "error", err, "request_id", requestID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Error processing withdrawal.",
		})
		return
	}

	etb := a.cfg.PointValueETB.Mul(decimal.NewFromInt(req.Points))

	a.userBot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: req.UserID,
		Text: fmt.Sprintf("✅ Your withdrawal of %d points (≈ %s ETB) has been approved!\n"+
			"Payout reference: %s", req.Points, etb.StringFixed(2), req.PayoutRef),
	})

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: fmt.Sprintf("Request #%d approved: %d points deducted from user %d.\nPayout reference: %s",
			req.ID, req.Points, req.UserID, req.PayoutRef),
	})
}

func (a *Admin) handleReject(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: update.CallbackQuery.ID})

	requestID, chatID, _, ok := callbackTarget(update, "reject_")
	if !ok {
		return
	}

	req, err := a.withdrawals.Reject(ctx, requestID)
	switch err {
	case nil:
	case domain.ErrRequestNotPending, domain.ErrRequestNotFound:
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   fmt.Sprintf("Request #%d is no longer pending.", requestID),
		})
		return
	default:
		slog.Error("reject withdrawal", "error", err, "request_id", requestID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Error processing withdrawal.",
		})
		return
	}

	a.userBot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: req.UserID,
		Text:   "❌ Your withdrawal request has been rejected. Please contact support.",
	})

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   fmt.Sprintf("Request #%d rejected. The user has been notified.", req.ID),
	})
}

// HandleDefault routes replies to prompts armed by admin commands.
func (a *Admin) HandleDefault(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	text := update.Message.Text
	if text == "" || text[0] == '/' {
		return
	}

	chatID := update.Message.Chat.ID
	step, payload, ok := a.prompts.Consume(chatID)
	if !ok {
		return
	}

	switch step {
	case service.StepBroadcastText:
		a.handleBroadcastText(ctx, b, chatID, text)
	case service.StepAddTask:
		a.handleAddTaskText(ctx, b, chatID, text)
	case service.StepApproveAmount:
		a.handleApproveAmount(ctx, b, chatID, payload, text)
	}
}
