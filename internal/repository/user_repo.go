package repository

import (
	"context"

	"community_backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, username, COALESCE(display_name, ''), COALESCE(avatar_url, ''), created_at
		 FROM users
		 WHERE id = $1`,
		id,
	)

	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.DisplayName, &u.AvatarURL, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, username, COALESCE(display_name, ''), COALESCE(avatar_url, ''), created_at
		 FROM users
		 WHERE username = $1`,
		username,
	)

	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.DisplayName, &u.AvatarURL, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO users (username, display_name, avatar_url)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		u.Username, u.DisplayName, u.AvatarURL,
	).Scan(&u.ID, &u.CreatedAt)
}

// GetByIDs returns the users for the given IDs keyed by ID. Missing IDs are
// simply absent from the map.
func (r *UserRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.User, error) {
	if len(ids) == 0 {
		return map[int64]domain.User{}, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, username, COALESCE(display_name, ''), COALESCE(avatar_url, ''), created_at
		 FROM users
		 WHERE id = ANY($1)`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64]domain.User, len(ids))
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.DisplayName, &u.AvatarURL, &u.CreatedAt); err != nil {
			return nil, err
		}
		result[u.ID] = u
	}
	return result, rows.Err()
}
