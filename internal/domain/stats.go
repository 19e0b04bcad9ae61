package domain

// Stats is the /stats aggregate for the admin bot.
type Stats struct {
	TotalUsers         int64
	RegisteredUsers    int64
	TotalPoints        int64
	TotalTasks         int64
	PendingWithdrawals int64
}
