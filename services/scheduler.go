// services/scheduler.go
package services

import (
	"log"

	"github.com/go-co-op/gocron/v2"
)

// StartRecomputeScheduler runs the nightly consistency sweep: every user's
// stored points/level are re-derived from the activity ledger. Concurrent
// sessions can lose a read-modify-write on the user row; the sweep keeps any
// such drift from surviving past a day.
func (s *ActivityService) StartRecomputeScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Nightly at 03:00
	_, _ = sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0))),
		gocron.NewTask(func() {
			swept, err := s.RecomputeAll()
			if err != nil {
				log.Printf("[Scheduler] Recompute sweep failed after %d user(s): %v", swept, err)
				return
			}
			log.Printf("✅ Recompute sweep done: %d user(s)", swept)
		}),
	)
}
