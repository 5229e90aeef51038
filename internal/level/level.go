// Package level maps cumulative point totals to the configured level tiers.
package level

import (
	"errors"
	"sort"

	"community_backend/internal/domain"
)

// ErrNoLevelDefined means the level table violates its configuration
// invariant (empty, lowest threshold not 0, or thresholds/levels not strictly
// increasing). This is fatal at startup, never a per-query error.
var ErrNoLevelDefined = errors.New("no level defined for configuration")

// Table is a validated, read-only level threshold table.
type Table struct {
	defs []domain.LevelDefinition
}

// NewTable validates the definitions and returns a table ready for lookups.
// Definitions may arrive in any order; they are sorted by threshold.
func NewTable(defs []domain.LevelDefinition) (*Table, error) {
	if len(defs) == 0 {
		return nil, ErrNoLevelDefined
	}

	sorted := make([]domain.LevelDefinition, len(defs))
	copy(sorted, defs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].PointsRequired < sorted[j].PointsRequired
	})

	if sorted[0].PointsRequired != 0 {
		return nil, ErrNoLevelDefined
	}
	for i := 1; i < len(sorted); i++ {
		// thresholds strictly increasing, level numbers monotonic with them
		if sorted[i].PointsRequired <= sorted[i-1].PointsRequired {
			return nil, ErrNoLevelDefined
		}
		if sorted[i].Level <= sorted[i-1].Level {
			return nil, ErrNoLevelDefined
		}
	}

	return &Table{defs: sorted}, nil
}

// Definitions returns the table ordered ascending by threshold, for display.
func (t *Table) Definitions() []domain.LevelDefinition {
	out := make([]domain.LevelDefinition, len(t.defs))
	copy(out, t.defs)
	return out
}

// Progress is the resolved level for a point total. PointsToNext and
// NextLevel are nil when the user is already at the maximum defined level.
type Progress struct {
	Level        int
	Name         string
	PointsToNext *int64
	NextLevel    *int
}

// Resolve picks the highest level whose threshold the total meets. The lowest
// threshold is 0, so every total resolves.
func (t *Table) Resolve(totalPoints int64) Progress {
	if totalPoints < 0 {
		totalPoints = 0
	}

	// first definition with PointsRequired > totalPoints
	idx := sort.Search(len(t.defs), func(i int) bool {
		return t.defs[i].PointsRequired > totalPoints
	})

	current := t.defs[idx-1]
	p := Progress{Level: current.Level, Name: current.Name}

	if idx < len(t.defs) {
		next := t.defs[idx]
		toNext := next.PointsRequired - totalPoints
		p.PointsToNext = &toNext
		nextLevel := next.Level
		p.NextLevel = &nextLevel
	}
	return p
}

// Snapshot builds the client-facing snapshot for a user's total in a window.
func (t *Table) Snapshot(userID int64, window domain.Window, totalPoints int64) domain.UserPointsSnapshot {
	p := t.Resolve(totalPoints)
	return domain.UserPointsSnapshot{
		UserID:            userID,
		Window:            window,
		TotalPoints:       totalPoints,
		Level:             p.Level,
		LevelName:         p.Name,
		PointsToNextLevel: p.PointsToNext,
		NextLevel:         p.NextLevel,
	}
}
