package schedule

import "sync"

// Countdown mirrors a server-supplied remaining_seconds value between polls.
// The server value is authoritative: Set resynchronizes on every render, and
// Tick only interpolates one second at a time. When the count reaches zero
// the onZero callback fires exactly once, which the app uses to force an
// immediate re-poll instead of waiting for the next scheduled tick.
//
// Safe for concurrent use: poll results and the display ticker arrive on
// different goroutines. onZero runs without the lock held.
type Countdown struct {
	mu        sync.Mutex
	remaining int
	running   bool
	onZero    func()
}

func NewCountdown(onZero func()) *Countdown {
	return &Countdown{onZero: onZero}
}

// Set starts or resynchronizes the countdown from a poll result
func (c *Countdown) Set(seconds int) {
	if seconds < 0 {
		seconds = 0
	}
	c.mu.Lock()
	c.remaining = seconds
	c.running = true
	c.mu.Unlock()
}

// Clear stops the countdown without firing onZero. Called whenever the banner
// item disappears or stops being active.
func (c *Countdown) Clear() {
	c.mu.Lock()
	c.running = false
	c.remaining = 0
	c.mu.Unlock()
}

// Tick advances the countdown by one second. At zero the countdown stops
// itself and fires onZero.
func (c *Countdown) Tick() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.remaining--
	fire := false
	if c.remaining <= 0 {
		c.remaining = 0
		c.running = false
		fire = c.onZero != nil
	}
	c.mu.Unlock()

	if fire {
		c.onZero()
	}
}

// Remaining reports the current count and whether the countdown is running
func (c *Countdown) Remaining() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining, c.running
}
