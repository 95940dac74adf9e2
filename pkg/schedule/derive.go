// Package schedule holds the pure derivation logic for the Today view: which
// item is the banner, which item is up next, and the local countdown. Nothing
// here touches the UI or the network, so all of it is testable directly.
package schedule

import (
	"fmt"
	"time"

	"github.com/otterlog/daypulse/pkg/models"
)

// BannerItem picks the most salient instance from a poll snapshot: a paused
// item wins over an active one, and anything else yields nil.
func BannerItem(items []models.ScheduleItem) *models.ScheduleItem {
	if paused := firstWithStatus(items, models.StatusPaused); paused != nil {
		return paused
	}
	return firstWithStatus(items, models.StatusActive)
}

// ActiveItem returns the active instance of a poll snapshot, if any
func ActiveItem(items []models.ScheduleItem) *models.ScheduleItem {
	return firstWithStatus(items, models.StatusActive)
}

func firstWithStatus(items []models.ScheduleItem, status models.InstanceStatus) *models.ScheduleItem {
	for i := range items {
		if items[i].Status == status {
			return &items[i]
		}
	}
	return nil
}

// NextItem returns the nearest future item: the one with the smallest planned
// start strictly after the server-reported current time of day. Start times
// are compared as "HH:MM" strings against server_now, so client clock skew
// never shifts the result. Ties keep the original list order.
func NextItem(items []models.ScheduleItem) *models.ScheduleItem {
	if len(items) == 0 {
		return nil
	}
	nowClock := models.TimestampClock(items[0].ServerNow)
	if nowClock == "" {
		return nil
	}

	var next *models.ScheduleItem
	for i := range items {
		start := items[i].StartClock()
		if start <= nowClock {
			continue
		}
		if next == nil || start < next.StartClock() {
			next = &items[i]
		}
	}
	return next
}

// FormatRemaining renders a second count as "MM:SS", or "HH:MM:SS" once at
// least a full hour remains. Negative input clamps to zero.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// OverlayMode selects how the Now & Next overlay is shown
type OverlayMode string

const (
	OverlayAuto   OverlayMode = "auto"   // appears after the user goes idle
	OverlayCorner OverlayMode = "corner" // always visible
)

// DefaultIdleThreshold is how long the user must be idle before the overlay
// appears in auto mode.
const DefaultIdleThreshold = 5 * time.Second

// OverlayVisible decides whether the Now & Next overlay should be shown for
// the given settings and time since the last user interaction.
func OverlayVisible(enabled bool, mode OverlayMode, idleFor, threshold time.Duration) bool {
	if !enabled {
		return false
	}
	if mode == OverlayCorner {
		return true
	}
	return idleFor >= threshold
}
