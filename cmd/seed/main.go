package main

import (
	"context"
	"log"
	"os"
	"time"

	"community_backend/internal/config"
	"community_backend/internal/db"
	"community_backend/internal/domain"
	"community_backend/internal/repository"
	"community_backend/internal/service"
)

// Seeds a handful of users and scored actions so the leaderboard has
// something to show in a fresh environment.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	ctx := context.Background()
	userRepo := repository.NewUserRepository(pool)
	ledgerRepo := repository.NewLedgerRepository(pool)
	points := service.NewPointsService(ledgerRepo, config.PointAmounts{Like: 1, Comment: 2, CreatePost: 3})

	names := []string{"alice", "bob", "carol", "dave", "erin"}
	users := make([]*domain.User, 0, len(names))
	for _, name := range names {
		u, err := userRepo.GetByUsername(ctx, name)
		if err != nil {
			u = &domain.User{Username: name, DisplayName: name}
			if err := userRepo.Create(ctx, u); err != nil {
				log.Fatalf("create user %s: %v", name, err)
			}
			log.Printf("user created id=%d username=%s", u.ID, u.Username)
		} else {
			log.Printf("user already exists id=%d username=%s", u.ID, u.Username)
		}
		users = append(users, u)
	}

	// each user posts, then the others like and comment on it
	now := time.Now()
	for i, author := range users {
		occurred := now.Add(-time.Duration(i*6) * time.Hour)
		if _, err := points.RecordAction(ctx, service.ScoredAction{
			ActorID:       author.ID,
			BeneficiaryID: author.ID,
			Kind:          domain.ActionCreatePost,
			OccurredAt:    occurred,
		}); err != nil {
			log.Fatalf("seed post: %v", err)
		}

		for j, other := range users {
			if other.ID == author.ID {
				continue
			}
			kind := domain.ActionLike
			if j%2 == 0 {
				kind = domain.ActionComment
			}
			if _, err := points.RecordAction(ctx, service.ScoredAction{
				ActorID:       other.ID,
				BeneficiaryID: author.ID,
				Kind:          kind,
				OccurredAt:    occurred.Add(time.Duration(j) * time.Minute),
			}); err != nil {
				log.Fatalf("seed %s: %v", kind, err)
			}
		}
	}

	log.Println("seed complete")
}
