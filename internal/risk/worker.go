package risk

import (
	"context"
	"log"
	"time"
)

// StartRecomputeWorker periodically recomputes and saves risk scores
// for every user with inventory. Per-user failures are logged and the
// loop moves on; the worker itself never exits.
func StartRecomputeWorker(p *Predictor, interval time.Duration) {
	go func() {
		log.Printf("[RISK] recompute worker started (every %s)", interval)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			recomputeAll(p)
		}
	}()
}

func recomputeAll(p *Predictor) {
	ctx := context.Background()

	userIDs, err := p.repo.UserIDsWithInventory(ctx)
	if err != nil {
		log.Printf("[RISK] worker: user listing failed: %v", err)
		return
	}

	for _, userID := range userIDs {
		scores, err := p.CalculateAllRisks(ctx, userID)
		if err != nil {
			log.Printf("[RISK] worker: recompute failed for user %s: %v", userID, err)
			continue
		}
		if err := p.SaveRiskScores(ctx, userID, scores); err != nil {
			log.Printf("[RISK] worker: save failed for user %s: %v", userID, err)
		}
	}
}
