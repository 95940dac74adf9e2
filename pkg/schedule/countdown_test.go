package schedule

import "testing"

func TestCountdownTicksToZeroOnce(t *testing.T) {
	fired := 0
	c := NewCountdown(func() { fired++ })
	c.Set(2)

	c.Tick()
	if got, running := c.Remaining(); got != 1 || !running {
		t.Fatalf("after one tick: remaining=%d running=%v, want 1 true", got, running)
	}
	if fired != 0 {
		t.Fatalf("onZero fired early")
	}

	c.Tick()
	if fired != 1 {
		t.Fatalf("onZero fired %d times, want 1", fired)
	}
	if _, running := c.Remaining(); running {
		t.Fatalf("countdown still running after reaching zero")
	}

	// Further ticks after zero are no-ops.
	c.Tick()
	c.Tick()
	if fired != 1 {
		t.Fatalf("onZero fired %d times after extra ticks, want 1", fired)
	}
}

func TestCountdownClear(t *testing.T) {
	fired := 0
	c := NewCountdown(func() { fired++ })
	c.Set(1)
	c.Clear()
	c.Tick()
	if fired != 0 {
		t.Fatalf("onZero fired after Clear")
	}
	if got, running := c.Remaining(); got != 0 || running {
		t.Fatalf("after Clear: remaining=%d running=%v, want 0 false", got, running)
	}
}

func TestCountdownSetResynchronizes(t *testing.T) {
	c := NewCountdown(nil)
	c.Set(5)
	c.Tick()
	c.Set(10)
	if got, _ := c.Remaining(); got != 10 {
		t.Fatalf("remaining = %d, want 10 after resync", got)
	}
}

func TestCountdownNegativeSetClamps(t *testing.T) {
	fired := 0
	c := NewCountdown(func() { fired++ })
	c.Set(-5)
	c.Tick()
	if fired != 1 {
		t.Fatalf("onZero fired %d times, want 1 for clamped zero count", fired)
	}
}

func TestCountdownTickBeforeSet(t *testing.T) {
	c := NewCountdown(func() { t.Fatal("onZero fired without Set") })
	c.Tick()
}
