package jobs

import (
	"time"

	"matka/task"
)

// StartReconciler periodically surfaces bets the settlement engine had
// to skip, so operators can credit them manually.
func StartReconciler(interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	go func() {
		for {
			<-ticker.C
			tasks.ReconcileUnsettledBets()
		}
	}()
}
