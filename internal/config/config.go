package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"
)

type Config struct {
	// Core
	BotToken      string `env:"BOT_TOKEN,required"`
	AdminBotToken string `env:"ADMIN_BOT_TOKEN,required"`
	DatabaseURL   string `env:"DATABASE_URL,required"`

	// Admin
	AdminIDs    []int64 `env:"ADMIN_IDS,required" envSeparator:","`
	AdminChatID int64   `env:"ADMIN_CHAT_ID,required"`

	// Membership gate
	RequiredChannels []string `env:"REQUIRED_CHANNELS" envSeparator:","`

	// Reward tuning
	TaskRewardDefault int64 `env:"TASK_REWARD_DEFAULT" envDefault:"20"`
	ReferralBonus     int64 `env:"REFERRAL_BONUS" envDefault:"50"`
	WithdrawMinimum   int64 `env:"WITHDRAW_MINIMUM" envDefault:"30"`
	WatchSeconds      int   `env:"WATCH_SECONDS" envDefault:"20"`
	DailyTaskLimit    int   `env:"DAILY_TASK_LIMIT" envDefault:"5"`

	// Value of one point in ETB, shown on withdrawal cards and stats.
	PointValueETB decimal.Decimal `env:"POINT_VALUE_ETB" envDefault:"0.25"`

	// Bot behavior
	DropPendingUpdates bool `env:"BOT_DROP_PENDING_UPDATES" envDefault:"false"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsAdmin(telegramID int64) bool {
	for _, id := range c.AdminIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}
