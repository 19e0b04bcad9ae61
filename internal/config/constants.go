package config

import "time"

const (
	// Task validation bounds
	TitleMinLen = 3
	TitleMaxLen = 100
	PointsMin   = 1
	PointsMax   = 1000

	// Pending prompts expire after this long without a reply.
	PromptTTL = 5 * time.Minute

	// Watch sessions older than WatchSessionTTL are evicted by the janitor.
	// Kept well above the watch floor so a slow viewer is never cut off.
	WatchSessionTTL = 10 * time.Minute

	// Janitor tick for both stores
	CleanupInterval = time.Minute

	// Per-chat message rate limit
	RateLimitPerSecond = 1
	RateLimitBurst     = 4

	// Link preview fetch timeout
	PreviewTimeout = 5 * time.Second

	// Connection pool sizing. Two bots share one pool; the workload is
	// short point lookups and single-row writes.
	PoolMaxConns = 10
	PoolMinConns = 2

	// Telegram limits
	MaxTelegramMessageLen = 4096
)
