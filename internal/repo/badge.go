package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/taskflow-api/internal/model"
)

type BadgeRepo struct {
	pool *pgxpool.Pool
}

func NewBadgeRepo(pool *pgxpool.Pool) *BadgeRepo {
	return &BadgeRepo{
		pool: pool,
	}
}

func (r *BadgeRepo) GetByName(ctx context.Context, name string) (model.Badge, error) {
	var b model.Badge
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, description, icon FROM badges WHERE name = $1
	`, name).Scan(&b.ID, &b.Name, &b.Description, &b.Icon)

	if err == pgx.ErrNoRows {
		return b, ErrorNotFound
	}
	return b, err
}

// Seed заливает справочник бейджей при старте, повторный запуск ничего не меняет
func (r *BadgeRepo) Seed(ctx context.Context) error {
	seed := []model.Badge{
		{Name: model.BadgeFirstTaskCompleted, Description: "Completed your very first task.", Icon: "first-task-icon"},
		{Name: model.BadgeFiveTasksCompleted, Description: "Completed 5 tasks.", Icon: "five-tasks-icon"},
	}

	for _, b := range seed {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO badges (name, description, icon) VALUES ($1, $2, $3)
			ON CONFLICT (name) DO NOTHING
		`, b.Name, b.Description, b.Icon)
		if err != nil {
			return err
		}
	}
	return nil
}
