package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/crucial707/todo-api/internal/models"
)

// ========================
// REPOSITORY STRUCT
// ========================

// TaskRepo persists tasks. Every method except Create filters by owner, so a
// task owned by someone else behaves exactly like a missing one.
type TaskRepo struct {
	DB *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{DB: db}
}

// ========================
// CREATE TASK
// ========================

func (r *TaskRepo) Create(ctx context.Context, ownerID int, title, priority, status string) (models.Task, error) {
	var task models.Task
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO tasks (task, priority, status, user_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, task, priority, status, user_id`,
		title, priority, status, ownerID,
	).Scan(
		&task.ID,
		&task.Title,
		&task.Priority,
		&task.Status,
		&task.OwnerID,
	)
	return task, err
}

// ========================
// LIST TASKS FOR OWNER
// ========================

func (r *TaskRepo) ListByOwner(ctx context.Context, ownerID int) ([]models.Task, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, task, priority, status, user_id
		 FROM tasks
		 WHERE user_id = $1
		 ORDER BY id`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Priority, &t.Status, &t.OwnerID); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// ========================
// GET TASK FOR OWNER
// ========================

func (r *TaskRepo) GetForOwner(ctx context.Context, ownerID, id int) (models.Task, error) {
	var task models.Task
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, task, priority, status, user_id
		 FROM tasks
		 WHERE id = $1 AND user_id = $2`,
		id, ownerID,
	).Scan(
		&task.ID,
		&task.Title,
		&task.Priority,
		&task.Status,
		&task.OwnerID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrNotFound
	}
	return task, err
}

// ========================
// UPDATE TASK FOR OWNER
// ========================

// UpdateForOwner applies patch in a single statement; nil fields keep their value.
// An empty patch reads the task without writing.
func (r *TaskRepo) UpdateForOwner(ctx context.Context, ownerID, id int, patch models.TaskPatch) (models.Task, error) {
	if patch.Empty() {
		return r.GetForOwner(ctx, ownerID, id)
	}

	var task models.Task
	err := r.DB.QueryRowContext(ctx,
		`UPDATE tasks
		 SET task = COALESCE($1, task),
		     priority = COALESCE($2, priority),
		     status = COALESCE($3, status)
		 WHERE id = $4 AND user_id = $5
		 RETURNING id, task, priority, status, user_id`,
		nullString(patch.Title), nullString(patch.Priority), nullString(patch.Status), id, ownerID,
	).Scan(
		&task.ID,
		&task.Title,
		&task.Priority,
		&task.Status,
		&task.OwnerID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrNotFound
	}
	return task, err
}

// ========================
// DELETE TASK FOR OWNER
// ========================

func (r *TaskRepo) DeleteForOwner(ctx context.Context, ownerID, id int) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// ========================
// COUNT BY STATUS (all owners)
// ========================

func (r *TaskRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT status, COUNT(*)
		 FROM tasks
		 GROUP BY status`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
