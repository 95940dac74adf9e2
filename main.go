package main

import (
	"fmt"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	"github.com/otterlog/daypulse/pkg/alert"
	"github.com/otterlog/daypulse/pkg/api"
	"github.com/otterlog/daypulse/pkg/audio"
	"github.com/otterlog/daypulse/pkg/models"
	"github.com/otterlog/daypulse/pkg/platform"
	"github.com/otterlog/daypulse/pkg/poller"
	"github.com/otterlog/daypulse/pkg/schedule"
)

type DayPulse struct {
	app       fyne.App
	config    *Config
	client    *api.Client
	engine    *alert.Engine
	poll      *poller.Poller
	countdown *schedule.Countdown
	tickQuit  chan struct{}

	mu      sync.Mutex
	items   []models.ScheduleItem
	traySig string

	mainWindow  fyne.Window
	todayTab    *TodayTab
	plannerTab  *PlannerTab
	historyTab  *HistoryTab
	overlay     *NowNextWindow
	alertWindow *AlertWindow
	settings    *SettingsWindow
}

func main() {
	dp := &DayPulse{
		app:      app.NewWithID("com.otterlog.daypulse"),
		tickQuit: make(chan struct{}),
	}

	if err := dp.initialize(); err != nil {
		log.Fatal(err)
	}

	dp.run()
}

func (dp *DayPulse) initialize() error {
	dp.config = loadConfig(dp.app)

	// Sync autostart state with config on startup
	if err := setupAutostart(dp.config.AutoStart); err != nil {
		log.Printf("Warning: failed to setup autostart: %v", err)
	}

	saveConfig(dp.app, dp.config)

	dp.client = api.NewClient(dp.config.BaseURL())
	dp.engine = alert.NewEngine(alert.DefaultConfig(), dp.client, audio.NewPlayer(), dp)
	dp.countdown = schedule.NewCountdown(func() {
		dp.poll.ForceRefresh()
	})
	dp.poll = poller.New(dp.client, time.Second, dp.onPoll)

	dp.buildMainWindow()
	dp.overlay = NewNowNextWindow(dp.app, dp.config)
	dp.setupSystemTray()

	go dp.loadAlarmConfig()

	dp.poll.Start()
	dp.startCountdownTicker()

	return nil
}

func (dp *DayPulse) run() {
	dp.app.Lifecycle().SetOnStarted(func() {
		platform.SetActivationPolicy()
	})
	dp.mainWindow.Show()
	dp.app.Run()
}

func (dp *DayPulse) buildMainWindow() {
	dp.mainWindow = dp.app.NewWindow("DayPulse")
	dp.mainWindow.Resize(fyne.NewSize(760, 560))

	dp.todayTab = NewTodayTab(dp)
	dp.plannerTab = NewPlannerTab(dp)
	dp.historyTab = NewHistoryTab(dp)

	tabs := container.NewAppTabs(
		container.NewTabItem("Today", dp.todayTab.Content()),
		container.NewTabItem("Planner", dp.plannerTab.Content()),
		container.NewTabItem("History", dp.historyTab.Content()),
	)
	tabs.OnSelected = func(item *container.TabItem) {
		switch item.Text {
		case "Planner":
			dp.plannerTab.Reload()
		case "History":
			dp.historyTab.Reload()
		}
	}

	dp.mainWindow.SetContent(dp.todayTab.TrackActivity(tabs))

	// Typing counts as activity too; the tracker widget only sees the pointer
	dp.mainWindow.Canvas().SetOnTypedKey(func(*fyne.KeyEvent) {
		dp.overlay.MarkInteraction()
	})
	dp.mainWindow.Canvas().SetOnTypedRune(func(rune) {
		dp.overlay.MarkInteraction()
	})

	// Closing the main window keeps the tray app and the poll loop alive
	dp.mainWindow.SetCloseIntercept(func() {
		dp.mainWindow.Hide()
	})
}

// loadAlarmConfig pulls the shared alarm sound settings from the server
func (dp *DayPulse) loadAlarmConfig() {
	cfg, err := dp.client.AlarmConfig()
	if err != nil {
		log.Printf("Failed to load alarm config: %v", err)
		return
	}
	dp.engine.SetAlarmConfig(cfg)
}

// onPoll handles one completed schedule fetch. It runs on the poller's
// goroutine: engine and countdown updates happen directly, widget updates
// hop to the UI thread.
func (dp *DayPulse) onPoll(items []models.ScheduleItem, err error) {
	if err != nil {
		log.Printf("Schedule poll failed: %v", err)
		fyne.Do(func() {
			dp.todayTab.SetOffline(true)
		})
		return
	}

	dp.mu.Lock()
	dp.items = items
	dp.mu.Unlock()

	banner := schedule.BannerItem(items)
	if banner == nil {
		dp.engine.HideInactive()
	} else if active := schedule.ActiveItem(items); active != nil && active.ID != dp.engine.LastAlertedID() {
		dp.engine.Show(*active)
	}

	// The countdown follows the banner item and pauses with it
	if banner != nil && banner.Status == models.StatusActive && banner.RemainingSeconds != nil {
		dp.countdown.Set(*banner.RemainingSeconds)
	} else {
		dp.countdown.Clear()
	}

	fyne.Do(func() {
		dp.todayTab.SetOffline(false)
		dp.todayTab.Update(items)
		dp.overlay.Update(items)
		dp.updateSystemTrayMenu()
	})
}

// startCountdownTicker drives the local between-poll countdown display
func (dp *DayPulse) startCountdownTicker() {
	ticker := time.NewTicker(time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-dp.tickQuit:
				return
			case <-ticker.C:
				dp.countdown.Tick()
				remaining, running := dp.countdown.Remaining()
				fyne.Do(func() {
					dp.todayTab.SetCountdown(remaining, running)
				})
			}
		}
	}()
}

// currentItems returns the most recent schedule snapshot
func (dp *DayPulse) currentItems() []models.ScheduleItem {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	items := make([]models.ScheduleItem, len(dp.items))
	copy(items, dp.items)
	return items
}

// ShowAlert, HideAlert and HistoryChanged let the alert engine drive the UI.
// They may be called from any goroutine.
func (dp *DayPulse) ShowAlert(item models.ScheduleItem) {
	fyne.Do(func() {
		if dp.alertWindow != nil {
			dp.alertWindow.Close()
		}
		dp.alertWindow = NewAlertWindow(dp, item)
		dp.alertWindow.Show()
	})
}

func (dp *DayPulse) HideAlert() {
	fyne.Do(func() {
		if dp.alertWindow != nil {
			dp.alertWindow.Close()
			dp.alertWindow = nil
		}
	})
}

func (dp *DayPulse) HistoryChanged() {
	fyne.Do(func() {
		dp.historyTab.Reload()
	})
}

// snoozeInstance defers an instance via the alert engine and handles the
// surrounding UI: status text, history refresh and the optional
// micro-journal prompt. Used by both the schedule rows and the alert window.
func (dp *DayPulse) snoozeInstance(item models.ScheduleItem, minutes int, parent fyne.Window) {
	go func() {
		if err := dp.engine.Snooze(item, minutes); err != nil {
			log.Printf("Failed to snooze instance %d: %v", item.ID, err)
			fyne.Do(func() {
				dp.todayTab.setStatus("Error snoozing task.", true)
			})
			return
		}
		dp.poll.ForceRefresh()
		fyne.Do(func() {
			dp.todayTab.setStatus(fmt.Sprintf("Task snoozed by +%d minutes.", minutes), false)
			dp.historyTab.Reload()
			promptInteractionNote(dp, parent, item.ID, "snooze",
				"Why did you snooze this task? (1 short sentence, optional)")
		})
	}()
}

func (dp *DayPulse) showMainWindow() {
	dp.mainWindow.Show()
	dp.mainWindow.RequestFocus()
}

func (dp *DayPulse) showSettingsWindow() {
	if dp.settings != nil {
		dp.settings.window.RequestFocus()
		dp.settings.window.Show()
		return
	}

	dp.settings = NewSettingsWindow(dp, func(newConfig *Config) {
		oldURL := dp.config.BaseURL()
		dp.config = newConfig
		saveConfig(dp.app, dp.config)

		if err := setupAutostart(dp.config.AutoStart); err != nil {
			log.Printf("Warning: failed to update autostart: %v", err)
		}

		if dp.config.BaseURL() != oldURL {
			dp.client.SetBaseURL(dp.config.BaseURL())
			go dp.loadAlarmConfig()
			dp.poll.ForceRefresh()
		}

		dp.overlay.SetConfig(dp.config)
	})

	dp.settings.window.SetOnClosed(func() {
		dp.settings = nil
	})
	dp.settings.Show()
}

func (dp *DayPulse) quit() {
	close(dp.tickQuit)
	dp.overlay.Stop()
	dp.poll.Stop()
	dp.engine.Stop()
	dp.app.Quit()
}
