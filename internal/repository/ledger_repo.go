package repository

import (
	"context"
	"time"

	"community_backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LedgerRepository is the append-only points ledger. Rows are never updated
// or deleted; concurrent appends for different users do not coordinate.
type LedgerRepository struct {
	db *pgxpool.Pool
}

func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Record validates and durably appends a single event. Storage errors are
// returned to the caller, never swallowed.
func (r *LedgerRepository) Record(ctx context.Context, ev *domain.PointEvent) (uuid.UUID, error) {
	if err := ev.Validate(); err != nil {
		return uuid.Nil, err
	}
	if ev.EventID == uuid.Nil {
		ev.EventID = uuid.New()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now()
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO point_events (event_id, actor_user_id, beneficiary_user_id, action_kind, points, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		ev.EventID, ev.ActorUserID, ev.BeneficiaryUserID, ev.Kind, ev.Points, ev.OccurredAt,
	)
	if err != nil {
		return uuid.Nil, err
	}
	return ev.EventID, nil
}

// RecordPair appends the two rows of a double-credited action (actor row and
// beneficiary row) in one transaction so a half-recorded action never lands.
func (r *LedgerRepository) RecordPair(ctx context.Context, a, b *domain.PointEvent) error {
	for _, ev := range []*domain.PointEvent{a, b} {
		if err := ev.Validate(); err != nil {
			return err
		}
		if ev.EventID == uuid.Nil {
			ev.EventID = uuid.New()
		}
		if ev.OccurredAt.IsZero() {
			ev.OccurredAt = time.Now()
		}
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, ev := range []*domain.PointEvent{a, b} {
		if _, err := tx.Exec(ctx,
			`INSERT INTO point_events (event_id, actor_user_id, beneficiary_user_id, action_kind, points, occurred_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			ev.EventID, ev.ActorUserID, ev.BeneficiaryUserID, ev.Kind, ev.Points, ev.OccurredAt,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// QueryByUser returns the user's beneficiary events inside the window,
// ordered by occurred_at ascending. Used for the audit history view;
// aggregation does not depend on this ordering.
func (r *LedgerRepository) QueryByUser(ctx context.Context, userID int64, window domain.Window, now time.Time) ([]domain.PointEvent, error) {
	cutoff, bounded := window.CutoffFrom(now)

	rows, err := r.db.Query(ctx,
		`SELECT event_id, actor_user_id, beneficiary_user_id, action_kind, points, occurred_at
		 FROM point_events
		 WHERE beneficiary_user_id = $1
		   AND occurred_at <= $2
		   AND ($3::boolean = false OR occurred_at >= $4)
		 ORDER BY occurred_at ASC, id ASC`,
		userID, now, bounded, cutoff,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PointEvent
	for rows.Next() {
		var ev domain.PointEvent
		if err := rows.Scan(&ev.EventID, &ev.ActorUserID, &ev.BeneficiaryUserID, &ev.Kind, &ev.Points, &ev.OccurredAt); err != nil {
			return nil, err
		}
		result = append(result, ev)
	}
	return result, rows.Err()
}

// SumPointsByUser aggregates total points per beneficiary over the window.
// The single now anchors the window for every user in the call, so all users
// in one leaderboard computation are compared over an identical range. Users
// with no qualifying events are absent from the map.
func (r *LedgerRepository) SumPointsByUser(ctx context.Context, window domain.Window, now time.Time) (map[int64]int64, error) {
	cutoff, bounded := window.CutoffFrom(now)

	rows, err := r.db.Query(ctx,
		`SELECT beneficiary_user_id, SUM(points)
		 FROM point_events
		 WHERE occurred_at <= $1
		   AND ($2::boolean = false OR occurred_at >= $3)
		 GROUP BY beneficiary_user_id`,
		now, bounded, cutoff,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[int64]int64)
	for rows.Next() {
		var userID, sum int64
		if err := rows.Scan(&userID, &sum); err != nil {
			return nil, err
		}
		totals[userID] = sum
	}
	return totals, rows.Err()
}

// SumPointsForUser returns one user's total over the window. Zero with no
// error when the user has no qualifying events.
func (r *LedgerRepository) SumPointsForUser(ctx context.Context, userID int64, window domain.Window, now time.Time) (int64, error) {
	cutoff, bounded := window.CutoffFrom(now)

	var sum int64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(points), 0)
		 FROM point_events
		 WHERE beneficiary_user_id = $1
		   AND occurred_at <= $2
		   AND ($3::boolean = false OR occurred_at >= $4)`,
		userID, now, bounded, cutoff,
	).Scan(&sum)
	return sum, err
}
