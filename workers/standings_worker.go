package workers

import (
	"context"
	"log"
	"time"

	"github.com/BenjaminRolf85/SACADEMY-sub000/services"
)

// PollStandings periodically snapshots every group's weekly leaderboard so
// dashboards read precomputed rankings instead of aggregating the ledger on
// every request. Stops when ctx is cancelled.
func PollStandings(ctx context.Context, svc *services.LeaderboardService, pollInterval time.Duration) {
	log.Println("Starting weekly standings polling...")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Standings polling stopped.")
			return
		case <-ticker.C:
			groups, err := svc.SnapshotAll(time.Now().UTC())
			if err != nil {
				log.Printf("❌ Error snapshotting standings (after %d group(s)): %v", groups, err)
				continue
			}
			log.Printf("📊 Standings snapshot done for %d group(s)", groups)
		}
	}
}
