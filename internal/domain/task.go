package domain

import "time"

type Task struct {
	ID        int64
	Title     string
	VideoURL  string
	Points    int64
	CreatedAt time.Time
}

type CompletedTask struct {
	ID          int64
	UserID      int64
	TaskID      int64
	CompletedAt time.Time
}
