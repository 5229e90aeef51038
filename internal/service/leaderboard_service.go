package service

import (
	"context"
	"time"

	"community_backend/internal/domain"
	"community_backend/internal/level"
	"community_backend/internal/rank"
)

// PointsSource is the aggregation slice of the ledger the leaderboard reads.
type PointsSource interface {
	SumPointsByUser(ctx context.Context, window domain.Window, now time.Time) (map[int64]int64, error)
	SumPointsForUser(ctx context.Context, userID int64, window domain.Window, now time.Time) (int64, error)
}

// UserDirectory resolves display data for ranked user IDs.
type UserDirectory interface {
	GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.User, error)
}

// LeaderboardService composes aggregation, ranking and level resolution into
// the read operation the client calls. It is stateless per query; it performs
// no writes, so an abandoned query leaves nothing behind.
type LeaderboardService struct {
	points PointsSource
	users  UserDirectory
	levels *level.Table
	now    func() time.Time
}

func NewLeaderboardService(points PointsSource, users UserDirectory, levels *level.Table) *LeaderboardService {
	return &LeaderboardService{
		points: points,
		users:  users,
		levels: levels,
		now:    time.Now,
	}
}

// GetLeaderboard returns the top-N entries for the window plus the requesting
// user's snapshot and rank. One aggregation instant anchors the whole call:
// the entries, the requester's rank and the requester's displayed total all
// come from the same totals map, so the requester never sees a rank that
// disagrees with their own points. A requester with no qualifying events is
// ranked last with a zero total instead of being absent.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, window domain.Window, topN int, requestingUserID int64) (*domain.LeaderboardPage, error) {
	now := s.now()

	totals, err := s.points.SumPointsByUser(ctx, window, now)
	if err != nil {
		return nil, err
	}
	if _, present := totals[requestingUserID]; !present {
		totals[requestingUserID] = 0
	}

	ranked := rank.Rank(totals)
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}

	ids := make([]int64, 0, len(ranked)+1)
	for _, e := range ranked {
		ids = append(ids, e.UserID)
	}
	ids = append(ids, requestingUserID)

	users, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.LeaderboardEntry, 0, len(ranked))
	for _, e := range ranked {
		p := s.levels.Resolve(e.Points)
		entry := domain.LeaderboardEntry{
			Rank:        e.Rank,
			UserID:      e.UserID,
			Level:       p.Level,
			LevelName:   p.Name,
			TotalPoints: e.Points,
		}
		if u, ok := users[e.UserID]; ok {
			entry.Username = u.Username
			entry.DisplayName = u.DisplayName
			entry.AvatarURL = u.AvatarURL
		}
		entries = append(entries, entry)
	}

	currentRank, currentTotal, _ := rank.Of(requestingUserID, totals)

	return &domain.LeaderboardPage{
		Window:          window,
		Entries:         entries,
		CurrentUser:     s.levels.Snapshot(requestingUserID, window, currentTotal),
		CurrentUserRank: currentRank,
	}, nil
}

// GetSnapshot returns one user's points and level progress for the window.
func (s *LeaderboardService) GetSnapshot(ctx context.Context, userID int64, window domain.Window) (*domain.UserPointsSnapshot, error) {
	total, err := s.points.SumPointsForUser(ctx, userID, window, s.now())
	if err != nil {
		return nil, err
	}
	snap := s.levels.Snapshot(userID, window, total)
	return &snap, nil
}

// Levels returns the full ordered level table for display.
func (s *LeaderboardService) Levels() []domain.LevelDefinition {
	return s.levels.Definitions()
}
