package jobs

import (
	"log"
	"time"
)

// MarketStore is the persistence surface the sweeper needs. The gorm
// implementation lives in store.go; tests substitute fakes and a fake
// clock.
type MarketStore interface {
	// CloseExpired atomically closes every active market whose absolute
	// close instant has passed, returning how many rows changed.
	CloseExpired(now time.Time) (int64, error)
	// DueScheduledResults lists markets with a staged result whose
	// result instant has passed and no declaration yet.
	DueScheduledResults(now time.Time) ([]ScheduledResult, error)
	// DeclareScheduled runs the settlement engine for one staged result.
	DeclareScheduled(sr ScheduledResult, now time.Time) error
}

// ScheduledResult identifies one staged automatic declaration.
type ScheduledResult struct {
	MarketID   uint
	MarketName string
	Result     string
}

// Sweeper is the periodic lifecycle pass: it flips markets from open
// to closed once their window elapses and fires staged automatic
// declarations. Explicitly constructed with its own Start/Stop so
// tests can run independent instances.
type Sweeper struct {
	store    MarketStore
	interval time.Duration
	now      func() time.Time
	stop     chan struct{}
	done     chan struct{}
}

func NewSweeper(store MarketStore, interval time.Duration, now func() time.Time) *Sweeper {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if now == nil {
		now = time.Now
	}
	return &Sweeper{
		store:    store,
		interval: interval,
		now:      now,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs an immediate catch-up sweep, then sweeps on the ticker
// until Stop is called.
func (s *Sweeper) Start() {
	go func() {
		defer close(s.done)
		s.SweepOnce()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.SweepOnce()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop halts the sweep loop and waits for it to exit.
func (s *Sweeper) Stop() {
	close(s.stop)
	<-s.done
}

// SweepOnce performs a single pass. Safe to run concurrently with bet
// placement and with itself: the close is one set-based update and the
// declaration path rejects duplicates.
func (s *Sweeper) SweepOnce() {
	now := s.now()

	n, err := s.store.CloseExpired(now)
	if err != nil {
		log.Printf("❌ sweeper: close pass failed: %v", err)
	} else if n > 0 {
		log.Printf("✅ sweeper: auto-closed %d market(s)", n)
	}

	due, err := s.store.DueScheduledResults(now)
	if err != nil {
		log.Printf("❌ sweeper: scheduled result scan failed: %v", err)
		return
	}
	for _, sr := range due {
		if err := s.store.DeclareScheduled(sr, now); err != nil {
			log.Printf("❌ sweeper: automatic declare for %s failed: %v", sr.MarketName, err)
		} else {
			log.Printf("✅ sweeper: automatic result %s declared for %s", sr.Result, sr.MarketName)
		}
	}
}
