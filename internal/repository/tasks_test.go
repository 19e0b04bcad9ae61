package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yonas-t/earnbot/internal/domain"
)

func taskRows(createdAt time.Time, ids ...int64) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"id", "title", "video_url", "points", "created_at"})
	for _, id := range ids {
		rows.AddRow(id, "Watch the demo", "https://youtu.be/abc123", int64(20), createdAt)
	}
	return rows
}

func TestCreateTask(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO tasks (title, video_url, points) VALUES ($1, $2, $3)
		 RETURNING `+taskColumns)).
		WithArgs("Watch the demo", "https://youtu.be/abc123", int64(20)).
		WillReturnRows(taskRows(time.Now(), 1))

	task, err := repo.CreateTask(context.Background(), "Watch the demo", "https://youtu.be/abc123", 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), task.ID)
	assert.Equal(t, int64(20), task.Points)
}

func TestGetTask(t *testing.T) {
	repo, mock := newMock(t)

	query := regexp.QuoteMeta(`SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`)

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(int64(1)).WillReturnRows(taskRows(time.Now(), 1))

		task, err := repo.GetTask(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "https://youtu.be/abc123", task.VideoURL)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(int64(99)).WillReturnRows(taskRows(time.Now()))

		_, err := repo.GetTask(context.Background(), 99)
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})
}

func TestDeleteTask(t *testing.T) {
	repo, mock := newMock(t)

	query := regexp.QuoteMeta(`DELETE FROM tasks WHERE id = $1`)

	t.Run("deleted", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		assert.NoError(t, repo.DeleteTask(context.Background(), 1))
	})

	t.Run("unknown id", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(int64(99)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		assert.ErrorIs(t, repo.DeleteTask(context.Background(), 99), domain.ErrTaskNotFound)
	})
}

func TestDailyTasks(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT `+taskColumns+` FROM tasks t
		 WHERE NOT EXISTS (
		     SELECT 1 FROM completed_tasks ct
		     WHERE ct.task_id = t.id
		       AND ct.user_id = $1
		       AND ct.completed_on = (now() AT TIME ZONE 'UTC')::date
		 )
		 ORDER BY t.id
		 LIMIT $2`)).
		WithArgs(int64(999), 5).
		WillReturnRows(taskRows(time.Now(), 1, 2))

	tasks, err := repo.DailyTasks(context.Background(), 999, 5)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
	assert.Equal(t, int64(2), tasks[1].ID)
}

func TestCompleteTask(t *testing.T) {
	selectReward := regexp.QuoteMeta(`SELECT points FROM tasks WHERE id = $1`)
	insertCompletion := regexp.QuoteMeta(`INSERT INTO completed_tasks (user_id, task_id) VALUES ($1, $2)`)
	creditPoints := regexp.QuoteMeta(`UPDATE users SET points = points + $1 WHERE telegram_id = $2`)

	t.Run("credits reward in one transaction", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(selectReward).WithArgs(int64(100)).
			WillReturnRows(pgxmock.NewRows([]string{"points"}).AddRow(int64(20)))
		mock.ExpectExec(insertCompletion).WithArgs(int64(999), int64(100)).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(creditPoints).WithArgs(int64(20), int64(999)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		reward, err := repo.CompleteTask(context.Background(), 999, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(20), reward)
	})

	t.Run("second completion today", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(selectReward).WithArgs(int64(100)).
			WillReturnRows(pgxmock.NewRows([]string{"points"}).AddRow(int64(20)))
		mock.ExpectExec(insertCompletion).WithArgs(int64(999), int64(100)).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
		mock.ExpectRollback()

		_, err := repo.CompleteTask(context.Background(), 999, 100)
		assert.ErrorIs(t, err, domain.ErrTaskAlreadyDone)
	})

	t.Run("unknown task", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(selectReward).WithArgs(int64(99)).
			WillReturnRows(pgxmock.NewRows([]string{"points"}))
		mock.ExpectRollback()

		_, err := repo.CompleteTask(context.Background(), 999, 99)
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})
}
