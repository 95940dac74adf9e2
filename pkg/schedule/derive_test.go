package schedule

import (
	"testing"
	"time"

	"github.com/otterlog/daypulse/pkg/models"
)

func item(id int, name, start string, status models.InstanceStatus, serverNow string) models.ScheduleItem {
	return models.ScheduleItem{
		ID:               id,
		TaskName:         name,
		PlannedStartTime: start + ":00",
		PlannedEndTime:   "23:00:00",
		Status:           status,
		ServerNow:        serverNow,
	}
}

func TestBannerItemPausedWins(t *testing.T) {
	items := []models.ScheduleItem{
		item(1, "write", "09:00", models.StatusActive, ""),
		item(2, "stretch", "09:30", models.StatusPaused, ""),
	}
	got := BannerItem(items)
	if got == nil || got.ID != 2 {
		t.Fatalf("BannerItem = %+v, want paused item 2", got)
	}
}

func TestBannerItemActiveFallback(t *testing.T) {
	items := []models.ScheduleItem{
		item(1, "write", "09:00", models.StatusPending, ""),
		item(2, "stretch", "09:30", models.StatusActive, ""),
	}
	got := BannerItem(items)
	if got == nil || got.ID != 2 {
		t.Fatalf("BannerItem = %+v, want active item 2", got)
	}
}

func TestBannerItemNone(t *testing.T) {
	items := []models.ScheduleItem{
		item(1, "write", "09:00", models.StatusPending, ""),
		item(2, "stretch", "09:30", models.StatusCancelled, ""),
	}
	if got := BannerItem(items); got != nil {
		t.Fatalf("BannerItem = %+v, want nil", got)
	}
}

func TestNextItem(t *testing.T) {
	now := "2026-08-29T09:15:00"

	t.Run("nearest future start", func(t *testing.T) {
		items := []models.ScheduleItem{
			item(1, "write", "09:00", models.StatusActive, now),
			item(2, "stretch", "10:00", models.StatusPending, now),
			item(3, "mail", "08:30", models.StatusPending, now),
		}
		got := NextItem(items)
		if got == nil || got.ID != 2 {
			t.Fatalf("NextItem = %+v, want item 2", got)
		}
	})

	t.Run("start equal to now is not next", func(t *testing.T) {
		items := []models.ScheduleItem{
			item(1, "write", "09:15", models.StatusPending, now),
		}
		if got := NextItem(items); got != nil {
			t.Fatalf("NextItem = %+v, want nil", got)
		}
	})

	t.Run("cancelled items still count", func(t *testing.T) {
		items := []models.ScheduleItem{
			item(1, "write", "10:00", models.StatusCancelled, now),
			item(2, "stretch", "11:00", models.StatusPending, now),
		}
		got := NextItem(items)
		if got == nil || got.ID != 1 {
			t.Fatalf("NextItem = %+v, want cancelled item 1", got)
		}
	})

	t.Run("ties keep list order", func(t *testing.T) {
		items := []models.ScheduleItem{
			item(1, "write", "10:00", models.StatusPending, now),
			item(2, "stretch", "10:00", models.StatusPending, now),
		}
		got := NextItem(items)
		if got == nil || got.ID != 1 {
			t.Fatalf("NextItem = %+v, want first of the tied items", got)
		}
	})

	t.Run("no server_now", func(t *testing.T) {
		items := []models.ScheduleItem{
			item(1, "write", "10:00", models.StatusPending, ""),
		}
		if got := NextItem(items); got != nil {
			t.Fatalf("NextItem = %+v, want nil without server_now", got)
		}
	})

	t.Run("empty snapshot", func(t *testing.T) {
		if got := NextItem(nil); got != nil {
			t.Fatalf("NextItem(nil) = %+v, want nil", got)
		}
	})
}

func TestFormatRemaining(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{-30, "00:00"},
		{5, "00:05"},
		{300, "05:00"},
		{3599, "59:59"},
		{3600, "01:00:00"},
		{3665, "01:01:05"},
	}
	for _, c := range cases {
		if got := FormatRemaining(c.seconds); got != c.want {
			t.Errorf("FormatRemaining(%d) = %q, want %q", c.seconds, got, c.want)
		}
	}
}

func TestOverlayVisible(t *testing.T) {
	cases := []struct {
		name    string
		enabled bool
		mode    OverlayMode
		idleFor time.Duration
		want    bool
	}{
		{"disabled", false, OverlayCorner, time.Minute, false},
		{"corner ignores idle", true, OverlayCorner, 0, true},
		{"auto below threshold", true, OverlayAuto, 4 * time.Second, false},
		{"auto at threshold", true, OverlayAuto, 5 * time.Second, true},
		{"auto past threshold", true, OverlayAuto, time.Minute, true},
	}
	for _, c := range cases {
		got := OverlayVisible(c.enabled, c.mode, c.idleFor, DefaultIdleThreshold)
		if got != c.want {
			t.Errorf("%s: OverlayVisible = %v, want %v", c.name, got, c.want)
		}
	}
}
