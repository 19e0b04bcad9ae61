package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"golang.org/x/sync/errgroup"

	earnbot "github.com/yonas-t/earnbot"
	"github.com/yonas-t/earnbot/internal/config"
	"github.com/yonas-t/earnbot/internal/handler"
	"github.com/yonas-t/earnbot/internal/middleware"
	"github.com/yonas-t/earnbot/internal/repository"
	"github.com/yonas-t/earnbot/internal/service"
	"github.com/yonas-t/earnbot/internal/telegram"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	migrationsFS, err := fs.Sub(earnbot.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	repo := repository.New(pool)

	// In-memory state: watch sessions and pending prompts, one store per bot.
	watchStore := service.NewWatchStore(time.Duration(cfg.WatchSeconds)*time.Second, config.WatchSessionTTL)
	userPrompts := service.NewPromptStore(config.PromptTTL)
	adminPrompts := service.NewPromptStore(config.PromptTTL)

	// Initialize services
	userService := service.NewUserService(repo)
	taskService := service.NewTaskService(repo, watchStore, cfg.DailyTaskLimit)
	referralService := service.NewReferralService(repo, cfg.ReferralBonus)
	withdrawalService := service.NewWithdrawalService(repo, cfg.WithdrawMinimum)
	broadcastService := service.NewBroadcastService(repo)
	previewService := service.NewPreviewService(config.PreviewTimeout)

	// Handler pointers for use in default handler closures
	var h *handler.Handler
	var adm *handler.Admin

	// Create user bot
	userBot, err := bot.New(cfg.BotToken,
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
			middleware.RateLimit(config.RateLimitPerSecond, config.RateLimitBurst),
			middleware.UserLoader(userService),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if h != nil {
				h.HandleDefault(ctx, b, update)
			}
		}),
	)
	if err != nil {
		slog.Error("failed to create user bot", "error", err)
		os.Exit(1)
	}

	// Create admin bot
	adminBot, err := bot.New(cfg.AdminBotToken,
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
			middleware.AdminOnly(cfg),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if adm != nil {
				adm.HandleDefault(ctx, b, update)
			}
		}),
	)
	if err != nil {
		slog.Error("failed to create admin bot", "error", err)
		os.Exit(1)
	}

	membershipService := service.NewMembershipService(userBot, cfg.RequiredChannels)
	notifier := telegram.NewNotifier(adminBot, cfg.AdminChatID)

	// Initialize handlers
	h = handler.New(handler.Deps{
		Bot:         userBot,
		Cfg:         cfg,
		Users:       userService,
		Tasks:       taskService,
		Referrals:   referralService,
		Withdrawals: withdrawalService,
		Membership:  membershipService,
		Prompts:     userPrompts,
		Notifier:    notifier,
	})
	h.Register()

	adm = handler.NewAdmin(handler.AdminDeps{
		Bot:         adminBot,
		UserBot:     userBot,
		Cfg:         cfg,
		Tasks:       taskService,
		Broadcasts:  broadcastService,
		Withdrawals: withdrawalService,
		Stats:       repo,
		Prompts:     adminPrompts,
		Preview:     previewService,
	})
	adm.Register()

	if _, err := userBot.SetMyCommands(ctx, &bot.SetMyCommandsParams{Commands: handler.UserCommands}); err != nil {
		slog.Error("failed to set user bot commands", "error", err)
	}
	if _, err := adminBot.SetMyCommands(ctx, &bot.SetMyCommandsParams{Commands: handler.AdminCommands}); err != nil {
		slog.Error("failed to set admin bot commands", "error", err)
	}

	// Evict expired watch sessions and prompts
	go func() {
		ticker := time.NewTicker(config.CleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := watchStore.Cleanup() + userPrompts.Cleanup() + adminPrompts.Cleanup(); n > 0 {
					slog.Debug("cleaned up expired sessions", "count", n)
				}
			}
		}
	}()

	// Start both bots
	slog.Info("starting bots")
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		userBot.Start(gctx)
		return nil
	})
	g.Go(func() error {
		adminBot.Start(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		slog.Error("bot stopped", "error", err)
		os.Exit(1)
	}

	// Graceful shutdown
	slog.Info("bots stopped gracefully")
}
