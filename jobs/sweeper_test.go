package jobs

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu sync.Mutex

	closeCalls   int
	closeReturns int64
	closeErr     error

	due     []ScheduledResult
	dueErr  error
	dueSeen []time.Time

	declared   []ScheduledResult
	declareErr error
}

func (f *fakeStore) CloseExpired(now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closeCalls++
	return f.closeReturns, f.closeErr
}

func (f *fakeStore) DueScheduledResults(now time.Time) ([]ScheduledResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dueSeen = append(f.dueSeen, now)
	return f.due, f.dueErr
}

func (f *fakeStore) DeclareScheduled(sr ScheduledResult, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.declared = append(f.declared, sr)
	return f.declareErr
}

func (f *fakeStore) snapshot() (int, []ScheduledResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closeCalls, append([]ScheduledResult(nil), f.declared...)
}

func TestSweepOnce(t *testing.T) {
	store := &fakeStore{
		closeReturns: 2,
		due: []ScheduledResult{
			{MarketID: 7, MarketName: "Night King", Result: "27"},
		},
	}
	frozen := time.Date(2026, 8, 28, 15, 15, 0, 0, time.UTC)
	s := NewSweeper(store, time.Minute, func() time.Time { return frozen })

	s.SweepOnce()

	closes, declared := store.snapshot()
	assert.Equal(t, 1, closes)
	require.Len(t, declared, 1)
	assert.Equal(t, uint(7), declared[0].MarketID)
	assert.Equal(t, "27", declared[0].Result)

	require.Len(t, store.dueSeen, 1)
	assert.True(t, store.dueSeen[0].Equal(frozen))
}

func TestSweepOnceCloseFailureStillDeclares(t *testing.T) {
	store := &fakeStore{
		closeErr: errors.New("db down"),
		due:      []ScheduledResult{{MarketID: 3, Result: "58"}},
	}
	s := NewSweeper(store, time.Minute, nil)

	s.SweepOnce()

	_, declared := store.snapshot()
	assert.Len(t, declared, 1)
}

func TestSweepOnceDeclareFailureDoesNotPanic(t *testing.T) {
	store := &fakeStore{
		due: []ScheduledResult{
			{MarketID: 1, Result: "11"},
			{MarketID: 2, Result: "22"},
		},
		declareErr: errors.New("already declared"),
	}
	s := NewSweeper(store, time.Minute, nil)

	s.SweepOnce()

	// Every due result is attempted even when declarations fail.
	_, declared := store.snapshot()
	assert.Len(t, declared, 2)
}

func TestSweeperStartRunsImmediateSweep(t *testing.T) {
	store := &fakeStore{}
	s := NewSweeper(store, time.Hour, nil)

	s.Start()
	defer s.Stop()

	deadline := time.Now().Add(time.Second)
	for {
		closes, _ := store.snapshot()
		if closes >= 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("no catch-up sweep before the first tick")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestSweeperTicksUntilStopped(t *testing.T) {
	store := &fakeStore{}
	s := NewSweeper(store, 5*time.Millisecond, nil)

	s.Start()
	time.Sleep(40 * time.Millisecond)
	s.Stop()

	closes, _ := store.snapshot()
	assert.GreaterOrEqual(t, closes, 2)

	// No sweeps after Stop returns.
	time.Sleep(20 * time.Millisecond)
	after, _ := store.snapshot()
	assert.Equal(t, closes, after)
}

func TestNewSweeperDefaults(t *testing.T) {
	s := NewSweeper(&fakeStore{}, 0, nil)
	assert.Equal(t, 30*time.Second, s.interval)
	assert.NotNil(t, s.now)
}
