package poller

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/otterlog/daypulse/pkg/models"
)

type fakeFetcher struct {
	calls atomic.Int64
	delay time.Duration
	items []models.ScheduleItem
	err   error
}

func (f *fakeFetcher) Today() ([]models.ScheduleItem, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.items, f.err
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestStartFetchesImmediately(t *testing.T) {
	fetcher := &fakeFetcher{items: []models.ScheduleItem{{ID: 1}}}
	var results atomic.Int64
	var gotItems atomic.Int64
	p := New(fetcher, time.Hour, func(items []models.ScheduleItem, err error) {
		results.Add(1)
		gotItems.Store(int64(len(items)))
	})
	defer p.Stop()

	p.Start()
	waitFor(t, "first result", func() bool { return results.Load() == 1 })
	if gotItems.Load() != 1 {
		t.Fatalf("callback got %d items, want 1", gotItems.Load())
	}
}

func TestErrorsReachCallback(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("connection refused")}
	errCh := make(chan error, 1)
	p := New(fetcher, time.Hour, func(items []models.ScheduleItem, err error) {
		select {
		case errCh <- err:
		default:
		}
	})
	defer p.Stop()

	p.Start()
	select {
	case err := <-errCh:
		if err == nil {
			t.Fatal("callback got nil error for a failed fetch")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the error callback")
	}
}

func TestOverlappingTicksAreDropped(t *testing.T) {
	// Fetches take ten intervals, so most ticks land mid-fetch and must be
	// dropped instead of queued.
	fetcher := &fakeFetcher{delay: 100 * time.Millisecond}
	p := New(fetcher, 10*time.Millisecond, func([]models.ScheduleItem, error) {})

	p.Start()
	time.Sleep(350 * time.Millisecond)
	p.Stop()

	got := fetcher.calls.Load()
	if got > 6 {
		t.Fatalf("%d fetches in ~350ms of 100ms fetches, ticks were queued not dropped", got)
	}
	if got < 2 {
		t.Fatalf("%d fetches, polling never resumed after the first", got)
	}
}

func TestForceRefresh(t *testing.T) {
	fetcher := &fakeFetcher{}
	var results atomic.Int64
	p := New(fetcher, time.Hour, func([]models.ScheduleItem, error) { results.Add(1) })
	defer p.Stop()

	p.Start()
	waitFor(t, "initial fetch", func() bool { return results.Load() == 1 })

	p.ForceRefresh()
	waitFor(t, "forced fetch", func() bool { return results.Load() == 2 })
}

func TestStopSuppressesLateCallback(t *testing.T) {
	fetcher := &fakeFetcher{delay: 50 * time.Millisecond}
	var mu sync.Mutex
	var stopReturned bool
	p := New(fetcher, time.Hour, func([]models.ScheduleItem, error) {
		mu.Lock()
		defer mu.Unlock()
		if stopReturned {
			t.Error("callback ran after Stop returned")
		}
	})

	p.Start()
	time.Sleep(10 * time.Millisecond) // land inside the first fetch
	p.Stop()
	mu.Lock()
	stopReturned = true
	mu.Unlock()
	time.Sleep(100 * time.Millisecond)
}

func TestStopIsIdempotent(t *testing.T) {
	p := New(&fakeFetcher{}, time.Hour, func([]models.ScheduleItem, error) {})
	p.Start()
	p.Stop()
	p.Stop()
}

func TestStartAfterStopIsRejected(t *testing.T) {
	fetcher := &fakeFetcher{}
	p := New(fetcher, time.Hour, func([]models.ScheduleItem, error) {})
	p.Stop()
	p.Start()
	time.Sleep(20 * time.Millisecond)
	if fetcher.calls.Load() != 0 {
		t.Fatalf("fetch ran after Stop")
	}
}
