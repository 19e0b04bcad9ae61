package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yonas-t/earnbot/internal/domain"
)

const taskColumns = `id, title, video_url, points, created_at`

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	if err := row.Scan(&t.ID, &t.Title, &t.VideoURL, &t.Points, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repository) CreateTask(ctx context.Context, title, videoURL string, points int64) (*domain.Task, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO tasks (title, video_url, points) VALUES ($1, $2, $3)
		 RETURNING `+taskColumns,
		title, videoURL, points)
	t, err := scanTask(row)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return t, nil
}

func (r *Repository) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	t, err := scanTask(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func (r *Repository) DeleteTask(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *Repository) ListTasks(ctx context.Context) ([]domain.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	return collectTasks(rows)
}

// DailyTasks returns up to limit tasks the user has not completed today (UTC).
func (r *Repository) DailyTasks(ctx context.Context, telegramID int64, limit int) ([]domain.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks t
		 WHERE NOT EXISTS (
		     SELECT 1 FROM completed_tasks ct
		     WHERE ct.task_id = t.id
		       AND ct.user_id = $1
		       AND ct.completed_on = (now() AT TIME ZONE 'UTC')::date
		 )
		 ORDER BY t.id
		 LIMIT $2`,
		telegramID, limit)
	if err != nil {
		return nil, fmt.Errorf("daily tasks: %w", err)
	}
	defer rows.Close()
	return collectTasks(rows)
}

func collectTasks(rows pgx.Rows) ([]domain.Task, error) {
	var tasks []domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.VideoURL, &t.Points, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

// CompleteTask records a completion and credits the task's reward in one
// transaction. The (user, task, day) uniqueness constraint is the authority
// for the once-per-day rule; a violation maps to ErrTaskAlreadyDone and
// nothing is credited.
func (r *Repository) CompleteTask(ctx context.Context, telegramID, taskID int64) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var reward int64
	err = tx.QueryRow(ctx, `SELECT points FROM tasks WHERE id = $1`, taskID).Scan(&reward)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, domain.ErrTaskNotFound
		}
		return 0, fmt.Errorf("get task reward: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO completed_tasks (user_id, task_id) VALUES ($1, $2)`,
		telegramID, taskID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrTaskAlreadyDone
		}
		return 0, fmt.Errorf("insert completion: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE users SET points = points + $1 WHERE telegram_id = $2`,
		reward, telegramID)
	if err != nil {
		return 0, fmt.Errorf("credit points: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return 0, domain.ErrUserNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return reward, nil
}
