package service

import (
	"context"
	"time"

	"community_backend/internal/config"
	"community_backend/internal/domain"

	"github.com/google/uuid"
)

// Ledger is the slice of the points ledger the ingestion path needs.
type Ledger interface {
	Record(ctx context.Context, ev *domain.PointEvent) (uuid.UUID, error)
	RecordPair(ctx context.Context, a, b *domain.PointEvent) error
}

// ScoredAction is one occurrence from the upstream actions subsystem: who
// acted, who benefits, what they did, when.
type ScoredAction struct {
	ActorID       int64             `json:"actor_id"`
	BeneficiaryID int64             `json:"beneficiary_id"`
	Kind          domain.ActionKind `json:"action_kind"`
	OccurredAt    time.Time         `json:"occurred_at"`
}

// PointsService turns scored actions into ledger rows using the configured
// per-kind amounts. It does not deduplicate: two distinct events for the same
// conceptual action both count; dedup is an upstream responsibility.
type PointsService struct {
	ledger  Ledger
	amounts config.PointAmounts
}

func NewPointsService(ledger Ledger, amounts config.PointAmounts) *PointsService {
	return &PointsService{ledger: ledger, amounts: amounts}
}

// RecordAction appends the ledger rows for one scored action and returns the
// recorded events. Likes and comments credit both the actor and the content's
// author as two independent rows; creating a post credits the author once.
// A self-action (actor and beneficiary are the same user) earns a single row,
// not double credit.
func (s *PointsService) RecordAction(ctx context.Context, action ScoredAction) ([]domain.PointEvent, error) {
	if action.OccurredAt.IsZero() {
		action.OccurredAt = time.Now()
	}

	var amount int64
	switch action.Kind {
	case domain.ActionLike:
		amount = s.amounts.Like
	case domain.ActionComment:
		amount = s.amounts.Comment
	case domain.ActionCreatePost:
		amount = s.amounts.CreatePost
	default:
		return nil, domain.ErrInvalidEvent
	}

	actorRow := domain.PointEvent{
		EventID:           uuid.New(),
		ActorUserID:       action.ActorID,
		BeneficiaryUserID: action.ActorID,
		Kind:              action.Kind,
		Points:            amount,
		OccurredAt:        action.OccurredAt,
	}

	singleCredit := action.Kind == domain.ActionCreatePost || action.ActorID == action.BeneficiaryID
	if singleCredit {
		if _, err := s.ledger.Record(ctx, &actorRow); err != nil {
			return nil, err
		}
		return []domain.PointEvent{actorRow}, nil
	}

	beneficiaryRow := domain.PointEvent{
		EventID:           uuid.New(),
		ActorUserID:       action.ActorID,
		BeneficiaryUserID: action.BeneficiaryID,
		Kind:              action.Kind,
		Points:            amount,
		OccurredAt:        action.OccurredAt,
	}

	if err := s.ledger.RecordPair(ctx, &actorRow, &beneficiaryRow); err != nil {
		return nil, err
	}
	return []domain.PointEvent{actorRow, beneficiaryRow}, nil
}
