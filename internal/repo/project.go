package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/taskflow-api/internal/model"
)

type ProjectRepo struct {
	pool *pgxpool.Pool
}

func NewProjectRepo(pool *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{
		pool: pool,
	}
}

func (r *ProjectRepo) Create(ctx context.Context, p model.Project) (model.Project, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO projects (name, description, webhook_url, notification_events)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, description, webhook_url, notification_events, created_at
	`, p.Name, p.Description, p.WebhookURL, p.NotificationEvents).Scan(
		&p.ID, &p.Name, &p.Description, &p.WebhookURL, &p.NotificationEvents, &p.CreatedAt,
	)
	if err != nil {
		return p, err
	}
	p.Members = make([]uuid.UUID, 0)
	return p, nil
}

func (r *ProjectRepo) Get(ctx context.Context, id uuid.UUID) (model.Project, error) {
	var p model.Project
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, description, webhook_url, notification_events, created_at
		FROM projects
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Description, &p.WebhookURL, &p.NotificationEvents, &p.CreatedAt)

	if err == pgx.ErrNoRows {
		return p, ErrorNotFound
	}
	if err != nil {
		return p, err
	}

	return r.loadMembers(ctx, p)
}

func (r *ProjectRepo) UpdateNotificationSettings(ctx context.Context, id uuid.UUID, webhookURL *string, events []string) (model.Project, error) {
	var p model.Project
	err := r.pool.QueryRow(ctx, `
		UPDATE projects
		SET webhook_url = $2, notification_events = $3
		WHERE id = $1
		RETURNING id, name, description, webhook_url, notification_events, created_at
	`, id, webhookURL, events).Scan(
		&p.ID, &p.Name, &p.Description, &p.WebhookURL, &p.NotificationEvents, &p.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return p, ErrorNotFound
	}
	if err != nil {
		return p, err
	}

	return r.loadMembers(ctx, p)
}

func (r *ProjectRepo) AddMembers(ctx context.Context, id uuid.UUID, userIDs []uuid.UUID) (model.Project, error) {
	for _, userID := range userIDs {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO project_members (project_id, user_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, id, userID)
		if err != nil {
			return model.Project{}, mapPgError(err)
		}
	}
	return r.Get(ctx, id)
}

func (r *ProjectRepo) loadMembers(ctx context.Context, p model.Project) (model.Project, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id FROM project_members WHERE project_id = $1
	`, p.ID)
	if err != nil {
		return p, err
	}
	defer rows.Close()

	p.Members = make([]uuid.UUID, 0)
	for rows.Next() {
		var userID uuid.UUID
		if err := rows.Scan(&userID); err != nil {
			return p, err
		}
		p.Members = append(p.Members, userID)
	}
	return p, rows.Err()
}
