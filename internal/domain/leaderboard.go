package domain

// LeaderboardEntry is one ranked row as the client renders it. Rank is dense
// and window-scoped; it is recomputed per query, never stored.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Level       int    `json:"level"`
	LevelName   string `json:"level_name"`
	TotalPoints int64  `json:"total_points"`
}

// UserPointsSnapshot is the requesting user's own totals and level progress,
// recomputed from the ledger per request.
type UserPointsSnapshot struct {
	UserID            int64  `json:"user_id"`
	Window            Window `json:"window"`
	TotalPoints       int64  `json:"total_points"`
	Level             int    `json:"level"`
	LevelName         string `json:"level_name"`
	PointsToNextLevel *int64 `json:"points_to_next_level,omitempty"`
	NextLevel         *int   `json:"next_level,omitempty"`
}

// LeaderboardPage is the composed payload of the leaderboard query: the top-N
// entries plus the requesting user's snapshot and rank, all computed at the
// same aggregation instant.
type LeaderboardPage struct {
	Window          Window             `json:"window"`
	Entries         []LeaderboardEntry `json:"entries"`
	CurrentUser     UserPointsSnapshot `json:"current_user"`
	CurrentUserRank int                `json:"current_user_rank"`
}
