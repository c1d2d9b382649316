package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/taskflow-api/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")
)

const taskColumns = "id, title, description, status, priority, due_date, created_at, author_id, assignee_id, project_id"

type TaskRepo struct { // Репозиторий для работы непосредственно с БД
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo { // Конструктор
	return &TaskRepo{
		pool: pool,
	}
}

func (r *TaskRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (title, description, status, priority, due_date, author_id, assignee_id, project_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+taskColumns,
		t.Title, t.Description, t.Status, t.Priority, dueDateParam(t.DueDate), t.AuthorID, t.AssigneeID, t.ProjectID,
	)
	task, err := scanTask(row)
	return task, mapPgError(err)
}

func (r *TaskRepo) Get(ctx context.Context, id uuid.UUID) (model.Task, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)

	task, err := scanTask(row)
	if err == pgx.ErrNoRows {
		return task, ErrorNotFound
	}
	return task, err
}

func (r *TaskRepo) List(ctx context.Context) ([]model.Task, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepo) Update(ctx context.Context, t model.Task) (model.Task, error) {
	// author_id и created_at неизменяемы, поэтому в SET не попадают
	row := r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, priority = $5, due_date = $6, assignee_id = $7, project_id = $8
		WHERE id = $1
		RETURNING `+taskColumns,
		t.ID, t.Title, t.Description, t.Status, t.Priority, dueDateParam(t.DueDate), t.AssigneeID, t.ProjectID,
	)

	task, err := scanTask(row)
	if err == pgx.ErrNoRows {
		return task, ErrorNotFound
	}
	return task, mapPgError(err)
}

func (r *TaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

func (r *TaskRepo) CountByAssigneeAndStatus(ctx context.Context, assigneeID uuid.UUID, status model.TaskStatus) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM tasks WHERE assignee_id = $1 AND status = $2
	`, assigneeID, status).Scan(&count)
	return count, err
}

func (r *TaskRepo) SaveIdempotencyKey(ctx context.Context, key string, resourceID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO idempotency_keys (key, resource_id) VALUES ($1, $2)
		ON CONFLICT (key) DO NOTHING
	`, key, resourceID)
	return err
}

func (r *TaskRepo) GetIdempotencyKey(ctx context.Context, key string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		SELECT resource_id FROM idempotency_keys WHERE key = $1
	`, key).Scan(&id)

	if err == pgx.ErrNoRows {
		return uuid.Nil, ErrorNotFound
	}
	return id, err
}

func mapPgError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrorConflict
		case "23503": // битый внешний ключ - ссылка не разрешилась
			return ErrorNotFound
		}
	}
	return err
}

func scanTask(row pgx.Row) (model.Task, error) {
	var t model.Task
	var due *time.Time
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &due,
		&t.CreatedAt, &t.AuthorID, &t.AssigneeID, &t.ProjectID,
	)
	if due != nil {
		t.DueDate = &model.Date{Time: *due}
	}
	return t, err
}

func dueDateParam(d *model.Date) *time.Time {
	if d == nil {
		return nil
	}
	return &d.Time
}
