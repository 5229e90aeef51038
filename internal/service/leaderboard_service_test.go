package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"community_backend/internal/config"
	"community_backend/internal/domain"
	"community_backend/internal/level"

	"github.com/google/uuid"
)

// memLedger is an in-memory stand-in for the pgx-backed ledger so the
// composition logic is testable without a database.
type memLedger struct {
	events []domain.PointEvent
}

func (m *memLedger) Record(_ context.Context, ev *domain.PointEvent) (uuid.UUID, error) {
	if err := ev.Validate(); err != nil {
		return uuid.Nil, err
	}
	if ev.EventID == uuid.Nil {
		ev.EventID = uuid.New()
	}
	m.events = append(m.events, *ev)
	return ev.EventID, nil
}

func (m *memLedger) RecordPair(ctx context.Context, a, b *domain.PointEvent) error {
	if _, err := m.Record(ctx, a); err != nil {
		return err
	}
	_, err := m.Record(ctx, b)
	return err
}

func (m *memLedger) SumPointsByUser(_ context.Context, window domain.Window, now time.Time) (map[int64]int64, error) {
	totals := make(map[int64]int64)
	for _, ev := range m.events {
		if window.Contains(ev.OccurredAt, now) {
			totals[ev.BeneficiaryUserID] += ev.Points
		}
	}
	return totals, nil
}

func (m *memLedger) SumPointsForUser(ctx context.Context, userID int64, window domain.Window, now time.Time) (int64, error) {
	totals, err := m.SumPointsByUser(ctx, window, now)
	if err != nil {
		return 0, err
	}
	return totals[userID], nil
}

type memUsers struct{}

func (memUsers) GetByIDs(_ context.Context, ids []int64) (map[int64]domain.User, error) {
	out := make(map[int64]domain.User, len(ids))
	for _, id := range ids {
		out[id] = domain.User{ID: id, Username: "user", DisplayName: "User"}
	}
	return out, nil
}

func testLevels(t *testing.T) *level.Table {
	t.Helper()
	tbl, err := level.NewTable([]domain.LevelDefinition{
		{Level: 1, Name: "Newbie", PointsRequired: 0},
		{Level: 2, Name: "Beginner", PointsRequired: 50},
		{Level: 3, Name: "Learner", PointsRequired: 150},
	})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return tbl
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func newTestService(t *testing.T, ledger *memLedger) *LeaderboardService {
	t.Helper()
	svc := NewLeaderboardService(ledger, memUsers{}, testLevels(t))
	svc.now = fixedNow
	return svc
}

func credit(ledger *memLedger, userID int64, points int64, at time.Time) {
	ledger.events = append(ledger.events, domain.PointEvent{
		EventID:           uuid.New(),
		ActorUserID:       userID,
		BeneficiaryUserID: userID,
		Kind:              domain.ActionCreatePost,
		Points:            points,
		OccurredAt:        at,
	})
}

func TestGetLeaderboardZeroHistoryRequester(t *testing.T) {
	ledger := &memLedger{}
	at := fixedNow().Add(-time.Hour)
	credit(ledger, 1, 100, at)
	credit(ledger, 2, 90, at)

	svc := newTestService(t, ledger)

	// user 99 has never earned a point but must still get a rank
	page, err := svc.GetLeaderboard(context.Background(), domain.WindowAllTime, 10, 99)
	if err != nil {
		t.Fatalf("GetLeaderboard: %v", err)
	}

	if page.CurrentUserRank != 3 {
		t.Fatalf("CurrentUserRank = %d, want 3 (last place)", page.CurrentUserRank)
	}
	if page.CurrentUser.TotalPoints != 0 {
		t.Fatalf("CurrentUser.TotalPoints = %d, want 0", page.CurrentUser.TotalPoints)
	}
	if page.CurrentUser.Level != 1 || page.CurrentUser.LevelName != "Newbie" {
		t.Fatalf("zero-point requester resolved to level %d %q, want 1 Newbie", page.CurrentUser.Level, page.CurrentUser.LevelName)
	}
}

func TestGetLeaderboardRequesterOutsideTopN(t *testing.T) {
	ledger := &memLedger{}
	at := fixedNow().Add(-time.Hour)
	for i := int64(1); i <= 5; i++ {
		credit(ledger, i, 100*(6-i), at) // user 1 has 500 ... user 5 has 100
	}
	credit(ledger, 6, 10, at)

	svc := newTestService(t, ledger)

	page, err := svc.GetLeaderboard(context.Background(), domain.WindowAllTime, 3, 6)
	if err != nil {
		t.Fatalf("GetLeaderboard: %v", err)
	}

	if len(page.Entries) != 3 {
		t.Fatalf("len(Entries) = %d, want 3", len(page.Entries))
	}
	for _, e := range page.Entries {
		if e.UserID == 6 {
			t.Fatal("requester must not appear in a top-3 they did not earn")
		}
	}
	if page.CurrentUserRank != 6 {
		t.Fatalf("CurrentUserRank = %d, want 6", page.CurrentUserRank)
	}
	if page.CurrentUser.TotalPoints != 10 {
		t.Fatalf("CurrentUser.TotalPoints = %d, want 10", page.CurrentUser.TotalPoints)
	}
}

func TestGetLeaderboardSnapshotMatchesRankedTotal(t *testing.T) {
	ledger := &memLedger{}
	at := fixedNow().Add(-time.Hour)
	credit(ledger, 1, 120, at)
	credit(ledger, 2, 80, at)

	svc := newTestService(t, ledger)

	page, err := svc.GetLeaderboard(context.Background(), domain.WindowAllTime, 10, 1)
	if err != nil {
		t.Fatalf("GetLeaderboard: %v", err)
	}

	// the requester's snapshot must reflect the exact total used for ranking
	if page.Entries[0].UserID != 1 || page.Entries[0].TotalPoints != 120 {
		t.Fatalf("top entry = %+v, want user 1 with 120", page.Entries[0])
	}
	if page.CurrentUser.TotalPoints != page.Entries[0].TotalPoints {
		t.Fatalf("snapshot total %d disagrees with ranked total %d", page.CurrentUser.TotalPoints, page.Entries[0].TotalPoints)
	}
	if page.CurrentUser.Level != 2 || page.CurrentUser.LevelName != "Beginner" {
		t.Fatalf("snapshot level = %d %q, want 2 Beginner", page.CurrentUser.Level, page.CurrentUser.LevelName)
	}
	if page.CurrentUser.PointsToNextLevel == nil || *page.CurrentUser.PointsToNextLevel != 30 {
		t.Fatalf("PointsToNextLevel = %v, want 30", page.CurrentUser.PointsToNextLevel)
	}
}

func TestGetLeaderboardWindowFiltering(t *testing.T) {
	ledger := &memLedger{}
	now := fixedNow()
	cutoff := now.Add(-7 * 24 * time.Hour)

	credit(ledger, 1, 50, cutoff)                    // exactly at the boundary: counts
	credit(ledger, 1, 30, cutoff.Add(-time.Second))  // just outside: ignored
	credit(ledger, 1, 20, now.Add(time.Second))      // future: ignored
	credit(ledger, 2, 40, now.Add(-24*time.Hour))

	svc := newTestService(t, ledger)

	page, err := svc.GetLeaderboard(context.Background(), domain.WindowLast7Days, 10, 1)
	if err != nil {
		t.Fatalf("GetLeaderboard: %v", err)
	}

	if page.CurrentUser.TotalPoints != 50 {
		t.Fatalf("7-day total = %d, want 50", page.CurrentUser.TotalPoints)
	}

	page, err = svc.GetLeaderboard(context.Background(), domain.WindowAllTime, 10, 1)
	if err != nil {
		t.Fatalf("GetLeaderboard: %v", err)
	}
	if page.CurrentUser.TotalPoints != 80 {
		t.Fatalf("all_time total = %d, want 80 (future event still excluded)", page.CurrentUser.TotalPoints)
	}
}

func TestGetSnapshot(t *testing.T) {
	ledger := &memLedger{}
	credit(ledger, 7, 200, fixedNow().Add(-time.Hour))

	svc := newTestService(t, ledger)

	snap, err := svc.GetSnapshot(context.Background(), 7, domain.WindowAllTime)
	if err != nil {
		t.Fatalf("GetSnapshot: %v", err)
	}
	if snap.Level != 3 || snap.PointsToNextLevel != nil {
		t.Fatalf("snapshot = %+v, want max level with nil next", snap)
	}
}

func amounts() config.PointAmounts {
	return config.PointAmounts{Like: 1, Comment: 2, CreatePost: 3}
}

func TestRecordActionFanOut(t *testing.T) {
	ledger := &memLedger{}
	svc := NewPointsService(ledger, amounts())
	at := fixedNow()

	// a like credits both the liker and the post's author, one point each,
	// as two independent rows
	events, err := svc.RecordAction(context.Background(), ScoredAction{
		ActorID: 1, BeneficiaryID: 2, Kind: domain.ActionLike, OccurredAt: at,
	})
	if err != nil {
		t.Fatalf("RecordAction(like): %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("like produced %d events, want 2", len(events))
	}
	if events[0].BeneficiaryUserID != 1 || events[1].BeneficiaryUserID != 2 {
		t.Fatalf("like beneficiaries = %d, %d, want 1, 2", events[0].BeneficiaryUserID, events[1].BeneficiaryUserID)
	}
	for _, ev := range events {
		if ev.Points != 1 || ev.ActorUserID != 1 {
			t.Fatalf("like event = %+v, want actor 1 and 1 point", ev)
		}
	}

	// a comment is worth 2 to each side
	events, err = svc.RecordAction(context.Background(), ScoredAction{
		ActorID: 3, BeneficiaryID: 4, Kind: domain.ActionComment, OccurredAt: at,
	})
	if err != nil {
		t.Fatalf("RecordAction(comment): %v", err)
	}
	if len(events) != 2 || events[0].Points != 2 {
		t.Fatalf("comment events = %+v, want two 2-point rows", events)
	}

	// creating a post credits the author once
	events, err = svc.RecordAction(context.Background(), ScoredAction{
		ActorID: 5, BeneficiaryID: 5, Kind: domain.ActionCreatePost, OccurredAt: at,
	})
	if err != nil {
		t.Fatalf("RecordAction(create_post): %v", err)
	}
	if len(events) != 1 || events[0].Points != 3 || events[0].BeneficiaryUserID != 5 {
		t.Fatalf("create_post events = %+v, want one 3-point row for user 5", events)
	}
}

func TestRecordActionSelfLikeSingleCredit(t *testing.T) {
	ledger := &memLedger{}
	svc := NewPointsService(ledger, amounts())

	events, err := svc.RecordAction(context.Background(), ScoredAction{
		ActorID: 9, BeneficiaryID: 9, Kind: domain.ActionLike, OccurredAt: fixedNow(),
	})
	if err != nil {
		t.Fatalf("RecordAction: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("self-like produced %d events, want 1", len(events))
	}
}

func TestRecordActionUnknownKind(t *testing.T) {
	ledger := &memLedger{}
	svc := NewPointsService(ledger, amounts())

	_, err := svc.RecordAction(context.Background(), ScoredAction{
		ActorID: 1, BeneficiaryID: 2, Kind: "superlike", OccurredAt: fixedNow(),
	})
	if !errors.Is(err, domain.ErrInvalidEvent) {
		t.Fatalf("err = %v, want ErrInvalidEvent", err)
	}
	if len(ledger.events) != 0 {
		t.Fatalf("invalid action left %d rows in the ledger", len(ledger.events))
	}
}

func TestRecordActionNoDeduplication(t *testing.T) {
	ledger := &memLedger{}
	svc := NewPointsService(ledger, amounts())
	at := fixedNow().Add(-time.Hour)

	action := ScoredAction{ActorID: 1, BeneficiaryID: 2, Kind: domain.ActionLike, OccurredAt: at}

	// the same conceptual action submitted twice gets distinct event IDs and
	// double-counts; dedup is the upstream subsystem's job
	first, err := svc.RecordAction(context.Background(), action)
	if err != nil {
		t.Fatalf("first RecordAction: %v", err)
	}
	second, err := svc.RecordAction(context.Background(), action)
	if err != nil {
		t.Fatalf("second RecordAction: %v", err)
	}
	if first[0].EventID == second[0].EventID {
		t.Fatal("repeated submissions must get distinct event IDs")
	}

	total, err := ledger.SumPointsForUser(context.Background(), 2, domain.WindowAllTime, fixedNow())
	if err != nil {
		t.Fatalf("SumPointsForUser: %v", err)
	}
	if total != 2 {
		t.Fatalf("beneficiary total = %d, want 2 (both submissions counted)", total)
	}
}
