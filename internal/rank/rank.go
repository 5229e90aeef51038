// Package rank orders aggregated point totals into a dense, deterministic
// ranking. It is pure computation: no storage, no clock.
package rank

import "sort"

// Entry is one ranked (rank, user, points) triple.
type Entry struct {
	Rank   int   `json:"rank"`
	UserID int64 `json:"user_id"`
	Points int64 `json:"points"`
}

// Rank orders totals by points descending and assigns dense ranks: entries
// with equal points share a rank number and the next distinct total resumes
// at previous+1 (two users tied at the top both get rank 1, the next distinct
// total gets rank 2). Ties break on ascending user ID so the output is stable
// across repeated calls and across server instances, regardless of map
// iteration order.
func Rank(totals map[int64]int64) []Entry {
	if len(totals) == 0 {
		return nil
	}

	entries := make([]Entry, 0, len(totals))
	for userID, points := range totals {
		entries = append(entries, Entry{UserID: userID, Points: points})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].UserID < entries[j].UserID
	})

	rank := 1
	for i := range entries {
		if i > 0 && entries[i].Points < entries[i-1].Points {
			rank++
		}
		entries[i].Rank = rank
	}
	return entries
}

// Of returns a single user's dense rank and points without the caller having
// to keep the full ordered page. The full sort is fine at leaderboard scale.
func Of(userID int64, totals map[int64]int64) (rank int, points int64, ok bool) {
	if _, present := totals[userID]; !present {
		return 0, 0, false
	}
	for _, e := range Rank(totals) {
		if e.UserID == userID {
			return e.Rank, e.Points, true
		}
	}
	return 0, 0, false
}
