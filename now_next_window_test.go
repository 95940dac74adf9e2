package main

import (
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"github.com/otterlog/daypulse/pkg/models"
)

func newOverlayFixture(t *testing.T) *NowNextWindow {
	t.Helper()
	app := test.NewApp()
	nn := NewNowNextWindow(app, &Config{OverlayEnabled: true, OverlayMode: "corner"})
	t.Cleanup(nn.Stop)
	return nn
}

func overlayItems(remaining int) []models.ScheduleItem {
	return []models.ScheduleItem{
		{
			ID:               1,
			TaskName:         "deep work",
			PlannedStartTime: "09:00:00",
			PlannedEndTime:   "10:00:00",
			Status:           models.StatusActive,
			RemainingSeconds: &remaining,
			ServerNow:        "2026-08-29T09:20:00",
		},
		{
			ID:               2,
			TaskName:         "stretch",
			PlannedStartTime: "10:00:00",
			PlannedEndTime:   "10:10:00",
			Status:           models.StatusPending,
			ServerNow:        "2026-08-29T09:20:00",
		},
	}
}

func TestOverlayCountdownTicksBetweenPolls(t *testing.T) {
	nn := newOverlayFixture(t)

	nn.Update(overlayItems(120))
	if !strings.Contains(nn.nowLine.Text, "02:00") {
		t.Fatalf("now line = %q, want the 02:00 countdown", nn.nowLine.Text)
	}

	// No poll arrives; the overlay keeps its own clock.
	nn.tick()
	if !strings.Contains(nn.nowLine.Text, "01:59") {
		t.Fatalf("now line = %q, want 01:59 after one local tick", nn.nowLine.Text)
	}
	nn.tick()
	if !strings.Contains(nn.nowLine.Text, "01:58") {
		t.Fatalf("now line = %q, want 01:58 after two local ticks", nn.nowLine.Text)
	}
}

func TestOverlayCountdownResyncsOnUpdate(t *testing.T) {
	nn := newOverlayFixture(t)

	nn.Update(overlayItems(120))
	nn.tick()
	nn.tick()

	// The next poll is authoritative and overwrites the local drift.
	nn.Update(overlayItems(300))
	if !strings.Contains(nn.nowLine.Text, "05:00") {
		t.Fatalf("now line = %q, want resync to 05:00", nn.nowLine.Text)
	}
}

func TestOverlayCountdownClearsWithoutActiveItem(t *testing.T) {
	nn := newOverlayFixture(t)

	nn.Update(overlayItems(120))
	nn.Update(nil)
	if nn.nowLine.Text != "Now: —" {
		t.Fatalf("now line = %q, want the empty state", nn.nowLine.Text)
	}
	nn.tick()
	if nn.nowLine.Text != "Now: —" {
		t.Fatalf("now line = %q, ticking revived a cleared countdown", nn.nowLine.Text)
	}
}

func TestOverlayMarkInteractionHidesInAutoMode(t *testing.T) {
	app := test.NewApp()
	nn := NewNowNextWindow(app, &Config{OverlayEnabled: true, OverlayMode: "auto"})
	t.Cleanup(nn.Stop)

	nn.Update(overlayItems(120))
	nn.lastInteraction = time.Now().Add(-10 * time.Second)
	nn.applyVisibility()
	if !nn.visible {
		t.Fatal("overlay hidden despite 10 idle seconds")
	}

	// Any interaction, pointer or key, resets the idle clock and hides it.
	nn.MarkInteraction()
	if nn.visible {
		t.Fatal("overlay still visible after an interaction")
	}
	if time.Since(nn.lastInteraction) > time.Second {
		t.Fatal("interaction did not reset the idle clock")
	}
}

func TestOverlayNextLine(t *testing.T) {
	nn := newOverlayFixture(t)

	nn.Update(overlayItems(120))
	if nn.nextLine.Text != "Next: stretch at 10:00" {
		t.Fatalf("next line = %q", nn.nextLine.Text)
	}
}
