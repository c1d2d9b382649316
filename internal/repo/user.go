package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/taskflow-api/internal/model"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{
		pool: pool,
	}
}

// Get возвращает пользователя вместе с набором его бейджей
func (r *UserRepo) Get(ctx context.Context, id uuid.UUID) (model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, created_at FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.Email, &u.CreatedAt)

	if err == pgx.ErrNoRows {
		return u, ErrorNotFound
	}
	if err != nil {
		return u, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT b.id, b.name, b.description, b.icon
		FROM badges b
		JOIN user_badges ub ON ub.badge_id = b.id
		WHERE ub.user_id = $1
	`, id)
	if err != nil {
		return u, err
	}
	defer rows.Close()

	u.Badges = make([]model.Badge, 0)
	for rows.Next() {
		var b model.Badge
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.Icon); err != nil {
			return u, err
		}
		u.Badges = append(u.Badges, b)
	}
	return u, rows.Err()
}

// AddBadge идемпотентен на уровне БД - составной ключ (user_id, badge_id)
// не дает выдать один бейдж дважды
func (r *UserRepo) AddBadge(ctx context.Context, userID, badgeID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_badges (user_id, badge_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, userID, badgeID)
	return err
}
