// Package jobs contains background maintenance loops.
package jobs

import (
	"context"
	"log"
	"time"

	"familyservices/internal/db"
)

// TokenCleaner periodically removes expired password reset tokens.
type TokenCleaner struct {
	db       *db.DB
	interval time.Duration
}

// NewTokenCleaner creates a new token cleaner.
func NewTokenCleaner(database *db.DB, interval time.Duration) *TokenCleaner {
	return &TokenCleaner{db: database, interval: interval}
}

// Start begins the cleanup loop. It runs once immediately, then on every
// tick until the context is cancelled.
func (tc *TokenCleaner) Start(ctx context.Context) {
	log.Printf("Token cleaner started (interval: %v)", tc.interval)

	tc.run(ctx)

	ticker := time.NewTicker(tc.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Token cleaner stopped")
			return
		case <-ticker.C:
			tc.run(ctx)
		}
	}
}

func (tc *TokenCleaner) run(ctx context.Context) {
	cleared, err := tc.db.ClearExpiredResetTokens(ctx)
	if err != nil {
		log.Printf("Token cleaner: failed to clear tokens: %v", err)
		return
	}
	if cleared > 0 {
		log.Printf("Token cleaner: cleared %d expired reset tokens", cleared)
	}
}
