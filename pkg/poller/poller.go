// Package poller drives the refresh loop: fetch today's schedule once a
// second and hand each result (or error) to a callback. Ticks that arrive
// while a fetch is still in flight are dropped rather than queued, so a slow
// backend produces stale-but-ordered updates instead of a request pileup.
package poller

import (
	"sync"
	"time"

	"github.com/otterlog/daypulse/pkg/models"
)

// Fetcher fetches the current schedule snapshot
type Fetcher interface {
	Today() ([]models.ScheduleItem, error)
}

// Poller polls the schedule on a fixed interval until stopped
type Poller struct {
	fetcher  Fetcher
	interval time.Duration
	onResult func(items []models.ScheduleItem, err error)

	refresh chan struct{}
	quit    chan struct{}
	done    chan struct{}

	mu       sync.Mutex
	wg       sync.WaitGroup
	inFlight bool
	started  bool
	stopped  bool
}

// New builds a poller. onResult is called from the poller's goroutine for
// every completed fetch, including failed ones.
func New(fetcher Fetcher, interval time.Duration, onResult func([]models.ScheduleItem, error)) *Poller {
	if interval <= 0 {
		interval = time.Second
	}
	return &Poller{
		fetcher:  fetcher,
		interval: interval,
		onResult: onResult,
		refresh:  make(chan struct{}, 1),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the poll loop with an immediate first fetch
func (p *Poller) Start() {
	p.mu.Lock()
	if p.started || p.stopped {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()
	go p.loop()
}

// ForceRefresh requests an out-of-band fetch, e.g. right after a local
// countdown hits zero or the user edits the schedule. Never blocks; a
// refresh that is already pending absorbs the request.
func (p *Poller) ForceRefresh() {
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}

// Stop halts the loop and waits for any in-flight fetch to finish, so no
// callback runs after Stop returns.
func (p *Poller) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	started := p.started
	p.mu.Unlock()

	close(p.quit)
	if started {
		<-p.done
	}
}

func (p *Poller) loop() {
	defer func() {
		p.wg.Wait()
		close(p.done)
	}()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.fetch()
	for {
		select {
		case <-p.quit:
			return
		case <-p.refresh:
			p.fetch()
		case <-ticker.C:
			p.fetch()
		}
	}
}

// fetch starts one poll in its own goroutine unless one is already running,
// in which case the tick is dropped.
func (p *Poller) fetch() {
	p.mu.Lock()
	if p.inFlight {
		p.mu.Unlock()
		return
	}
	p.inFlight = true
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		items, err := p.fetcher.Today()

		p.mu.Lock()
		p.inFlight = false
		stopped := p.stopped
		p.mu.Unlock()

		if !stopped {
			p.onResult(items, err)
		}
	}()
}
