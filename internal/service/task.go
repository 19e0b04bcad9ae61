package service

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/yonas-t/earnbot/internal/config"
	"github.com/yonas-t/earnbot/internal/domain"
)

type taskRepo interface {
	CreateTask(ctx context.Context, title, videoURL string, points int64) (*domain.Task, error)
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	ListTasks(ctx context.Context) ([]domain.Task, error)
	DailyTasks(ctx context.Context, telegramID int64, limit int) ([]domain.Task, error)
	CompleteTask(ctx context.Context, telegramID, taskID int64) (int64, error)
}

type TaskService struct {
	repo       taskRepo
	watch      *WatchStore
	dailyLimit int
}

func NewTaskService(repo taskRepo, watch *WatchStore, dailyLimit int) *TaskService {
	return &TaskService{repo: repo, watch: watch, dailyLimit: dailyLimit}
}

// Daily lists tasks the user has not yet completed today.
func (s *TaskService) Daily(ctx context.Context, telegramID int64) ([]domain.Task, error) {
	return s.repo.DailyTasks(ctx, telegramID, s.dailyLimit)
}

// StartWatch opens a watch session for the task and returns it. Only one
// session per user is tracked; starting another video replaces it.
func (s *TaskService) StartWatch(ctx context.Context, telegramID, taskID int64) (*domain.Task, error) {
	task, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	s.watch.Start(telegramID, taskID)
	return task, nil
}

// Finish validates the watch session and credits the reward. The session is
// cleared only on a successful credit, so a too-early or already-done finish
// stays retryable.
func (s *TaskService) Finish(ctx context.Context, telegramID, taskID int64) (int64, time.Duration, error) {
	remaining, err := s.watch.Check(telegramID, taskID)
	if err != nil {
		return 0, remaining, err
	}

	reward, err := s.repo.CompleteTask(ctx, telegramID, taskID)
	if err != nil {
		return 0, 0, err
	}

	s.watch.Clear(telegramID)
	return reward, 0, nil
}

// Add validates and stores an admin-supplied task.
func (s *TaskService) Add(ctx context.Context, title, videoURL string, points int64) (*domain.Task, error) {
	title = strings.TrimSpace(title)
	videoURL = strings.TrimSpace(videoURL)

	if len(title) < config.TitleMinLen || len(title) > config.TitleMaxLen {
		return nil, domain.ErrInvalidTask
	}
	u, err := url.ParseRequestURI(videoURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, domain.ErrInvalidTask
	}
	if points < config.PointsMin || points > config.PointsMax {
		return nil, domain.ErrInvalidTask
	}

	return s.repo.CreateTask(ctx, title, videoURL, points)
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteTask(ctx, id)
}

func (s *TaskService) List(ctx context.Context) ([]domain.Task, error) {
	return s.repo.ListTasks(ctx)
}
