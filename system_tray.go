package main

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/otterlog/daypulse/pkg/models"
	"github.com/otterlog/daypulse/pkg/schedule"
)

func (dp *DayPulse) setupSystemTray() {
	dp.updateSystemTrayMenu()
}

// updateSystemTrayMenu rebuilds the tray menu from the latest schedule
// snapshot. Called on every poll; rebuilds only when the visible lines
// actually changed.
func (dp *DayPulse) updateSystemTrayMenu() {
	desk, ok := dp.app.(desktop.App)
	if !ok {
		return
	}

	items := dp.currentItems()
	lines := trayScheduleLines(items, 5)

	sig := strings.Join(lines, "\n")
	if sig == dp.traySig {
		return
	}
	dp.traySig = sig

	menuItems := []*fyne.MenuItem{}
	for _, line := range lines {
		item := fyne.NewMenuItem(line, nil)
		item.Disabled = true
		menuItems = append(menuItems, item)
	}
	if len(lines) > 0 {
		menuItems = append(menuItems, fyne.NewMenuItemSeparator())
	}

	menuItems = append(menuItems,
		fyne.NewMenuItem("Open DayPulse", func() {
			dp.showMainWindow()
		}),
		fyne.NewMenuItem("Settings", func() {
			dp.showSettingsWindow()
		}),
		fyne.NewMenuItem("Refresh Now", func() {
			dp.poll.ForceRefresh()
		}),
		fyne.NewMenuItem("Export today (.ics)", func() {
			dp.exportTodayICS()
		}),
	)

	menuItems = append(menuItems, fyne.NewMenuItemSeparator())
	menuItems = append(menuItems, fyne.NewMenuItem("Quit", func() {
		dp.quit()
	}))

	menu := fyne.NewMenu("DayPulse", menuItems...)
	desk.SetSystemTrayMenu(menu)
}

// trayScheduleLines summarizes the current and next few upcoming items
func trayScheduleLines(items []models.ScheduleItem, limit int) []string {
	lines := []string{}

	if banner := schedule.BannerItem(items); banner != nil {
		prefix := "Now"
		if banner.Status == models.StatusPaused {
			prefix = "Paused"
		}
		lines = append(lines, fmt.Sprintf("%s: %s (%s–%s)",
			prefix, truncateString(banner.TaskName, 35), banner.StartClock(), banner.EndClock()))
	}

	upcoming := 0
	for _, item := range items {
		if item.Status != models.StatusPending {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s  %s", item.StartClock(), truncateString(item.TaskName, 35)))
		upcoming++
		if upcoming >= limit {
			break
		}
	}

	return lines
}

// truncateString truncates a string to maxLen characters, adding "..." if needed
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
