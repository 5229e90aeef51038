package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidEvent = errors.New("invalid point event")

// ActionKind identifies the scored community action behind a ledger row.
type ActionKind string

const (
	ActionLike       ActionKind = "like"
	ActionComment    ActionKind = "comment"
	ActionCreatePost ActionKind = "create_post"
)

// Valid reports whether the kind is one the ledger accepts.
func (k ActionKind) Valid() bool {
	switch k {
	case ActionLike, ActionComment, ActionCreatePost:
		return true
	}
	return false
}

// PointEvent is a single append-only ledger row crediting one user.
// An action that credits two users (a like credits both the liker and the
// post's author) produces two independent rows, never one row with two amounts.
// Rows are never updated or deleted; corrections are new compensating events.
type PointEvent struct {
	EventID           uuid.UUID  `db:"event_id" json:"event_id"`
	ActorUserID       int64      `db:"actor_user_id" json:"actor_user_id"`
	BeneficiaryUserID int64      `db:"beneficiary_user_id" json:"beneficiary_user_id"`
	Kind              ActionKind `db:"action_kind" json:"action_kind"`
	Points            int64      `db:"points" json:"points"`
	OccurredAt        time.Time  `db:"occurred_at" json:"occurred_at"`
}

// Validate rejects events the ledger must never record.
func (e *PointEvent) Validate() error {
	if e.Points <= 0 {
		return ErrInvalidEvent
	}
	if !e.Kind.Valid() {
		return ErrInvalidEvent
	}
	if e.ActorUserID == 0 || e.BeneficiaryUserID == 0 {
		return ErrInvalidEvent
	}
	return nil
}
