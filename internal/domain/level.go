package domain

// LevelDefinition is one row of the configured level threshold table.
// Definitions are ordered ascending by PointsRequired; the lowest one must
// require 0 points so every user has a level.
type LevelDefinition struct {
	Level          int    `db:"level" json:"level"`
	Name           string `db:"name" json:"name"`
	PointsRequired int64  `db:"points_required" json:"points_required"`
}
