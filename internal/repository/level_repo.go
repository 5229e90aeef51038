package repository

import (
	"context"

	"community_backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LevelRepository reads the configured level threshold table. The table is
// configuration: edited rarely, read-only at query time.
type LevelRepository struct {
	db *pgxpool.Pool
}

func NewLevelRepository(db *pgxpool.Pool) *LevelRepository {
	return &LevelRepository{db: db}
}

// GetAll returns every level definition ordered ascending by threshold.
func (r *LevelRepository) GetAll(ctx context.Context) ([]domain.LevelDefinition, error) {
	rows, err := r.db.Query(ctx,
		`SELECT level, name, points_required
		 FROM level_definitions
		 ORDER BY points_required ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defs []domain.LevelDefinition
	for rows.Next() {
		var d domain.LevelDefinition
		if err := rows.Scan(&d.Level, &d.Name, &d.PointsRequired); err != nil {
			return nil, err
		}
		defs = append(defs, d)
	}
	return defs, rows.Err()
}
