package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	dom "taskboard/internal/domain"
)

// TaskRepo provides task persistence.
type TaskRepo interface {
	List(ctx context.Context) ([]dom.Task, error)
	GetByID(ctx context.Context, id int64) (dom.Task, error)
	Create(ctx context.Context, title string) (dom.Task, error)
	// Update applies patch and returns the number of rows changed.
	Update(ctx context.Context, id int64, patch dom.TaskPatch) (int64, error)
	// Delete removes the task and returns the number of rows removed.
	Delete(ctx context.Context, id int64) (int64, error)
}

type PGTaskRepo struct {
	db DBTX
}

func NewPGTaskRepo(db DBTX) *PGTaskRepo {
	return &PGTaskRepo{db: db}
}

func (r *PGTaskRepo) List(ctx context.Context) ([]dom.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, completed, created_at FROM tasks ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	list := []dom.Task{}
	for rows.Next() {
		var t dom.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Completed, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *PGTaskRepo) GetByID(ctx context.Context, id int64) (dom.Task, error) {
	var t dom.Task
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, completed, created_at FROM tasks WHERE id = $1`, id,
	).Scan(&t.ID, &t.Title, &t.Completed, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dom.Task{}, dom.ErrNotFound
		}
		return dom.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func (r *PGTaskRepo) Create(ctx context.Context, title string) (dom.Task, error) {
	query := `
		INSERT INTO tasks (title, completed)
		VALUES ($1, FALSE)
		RETURNING id, title, completed, created_at`
	var t dom.Task
	err := r.db.QueryRowContext(ctx, query, title).Scan(&t.ID, &t.Title, &t.Completed, &t.CreatedAt)
	if err != nil {
		return dom.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

func (r *PGTaskRepo) Update(ctx context.Context, id int64, patch dom.TaskPatch) (int64, error) {
	if patch.Empty() {
		return 0, dom.ErrNoFields
	}
	var (
		sets []string
		args []any
	)
	if patch.Title != nil {
		args = append(args, *patch.Title)
		sets = append(sets, "title = $"+strconv.Itoa(len(args)))
	}
	if patch.Completed != nil {
		args = append(args, *patch.Completed)
		sets = append(sets, "completed = $"+strconv.Itoa(len(args)))
	}
	args = append(args, id)
	query := `UPDATE tasks SET ` + strings.Join(sets, ", ") + ` WHERE id = $` + strconv.Itoa(len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update task: %w", err)
	}
	return res.RowsAffected()
}

func (r *PGTaskRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete task: %w", err)
	}
	return res.RowsAffected()
}
