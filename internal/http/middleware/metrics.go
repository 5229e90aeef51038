package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RLRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_requests_total",
			Help: "Total requests seen by the rate limiter",
		},
		[]string{"endpoint"},
	)
	RLBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_blocked_total",
			Help: "Total requests blocked by the rate limiter",
		},
		[]string{"endpoint"},
	)
	PointEventsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "point_events_recorded_total",
			Help: "Point events appended to the ledger, by action kind",
		},
		[]string{"action_kind"},
	)
	LeaderboardQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leaderboard_queries_total",
			Help: "Leaderboard reads served, by window",
		},
		[]string{"window"},
	)
)

func init() {
	prometheus.MustRegister(RLRequests, RLBlocked, PointEventsRecorded, LeaderboardQueries)
}
