package main

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/otterlog/daypulse/pkg/models"
	"github.com/otterlog/daypulse/pkg/schedule"
)

// NowNextWindow is the small Now & Next overlay. In "corner" mode it stays
// up whenever there is content; in "auto" mode it appears once the user has
// been idle for a few seconds and hides again on the next interaction.
type NowNextWindow struct {
	win fyne.Window

	nowLine  *widget.Label
	nextLine *widget.Label

	// nowBase is the now line without the remaining-time suffix; countdown
	// carries the suffix between polls so the overlay keeps ticking even
	// when a poll is late or failing.
	nowBase   string
	countdown *schedule.Countdown

	enabled         bool
	mode            schedule.OverlayMode
	hasContent      bool
	visible         bool
	lastInteraction time.Time
	quit            chan struct{}
}

func NewNowNextWindow(a fyne.App, config *Config) *NowNextWindow {
	nn := &NowNextWindow{
		nowLine:         widget.NewLabel("Now: —"),
		nextLine:        widget.NewLabel(""),
		nowBase:         "Now: —",
		countdown:       schedule.NewCountdown(nil),
		enabled:         config.OverlayEnabled,
		mode:            schedule.OverlayMode(config.OverlayMode),
		lastInteraction: time.Now(),
		quit:            make(chan struct{}),
	}
	nn.nowLine.TextStyle = fyne.TextStyle{Bold: true}

	// A splash window gives a borderless overlay on desktop drivers
	if drv, ok := a.Driver().(desktop.Driver); ok {
		nn.win = drv.CreateSplashWindow()
	} else {
		nn.win = a.NewWindow("Now & Next")
	}
	nn.win.SetContent(container.NewPadded(container.NewVBox(nn.nowLine, nn.nextLine)))

	go nn.visibilityLoop()

	return nn
}

// SetConfig applies edited overlay settings. UI thread only.
func (nn *NowNextWindow) SetConfig(config *Config) {
	nn.enabled = config.OverlayEnabled
	nn.mode = schedule.OverlayMode(config.OverlayMode)
	nn.lastInteraction = time.Now()
	nn.applyVisibility()
}

// Update repaints the overlay from a schedule snapshot. UI thread only.
func (nn *NowNextWindow) Update(items []models.ScheduleItem) {
	now := schedule.ActiveItem(items)
	next := schedule.NextItem(items)
	nn.hasContent = now != nil || next != nil

	if now != nil {
		nn.nowBase = fmt.Sprintf("Now: %s (%s–%s)", now.TaskName, now.StartClock(), now.EndClock())
		if now.RemainingSeconds != nil {
			nn.countdown.Set(*now.RemainingSeconds)
		} else {
			nn.countdown.Clear()
		}
	} else {
		nn.nowBase = "Now: —"
		nn.countdown.Clear()
	}
	nn.renderNowLine()

	if next != nil {
		nn.nextLine.SetText(fmt.Sprintf("Next: %s at %s", next.TaskName, next.StartClock()))
	} else {
		nn.nextLine.SetText("")
	}

	nn.applyVisibility()
}

// MarkInteraction resets the idle timer and, in auto mode, hides the overlay
// immediately. UI thread only.
func (nn *NowNextWindow) MarkInteraction() {
	nn.lastInteraction = time.Now()
	if nn.mode != schedule.OverlayCorner && nn.visible {
		nn.setVisible(false)
	}
}

func (nn *NowNextWindow) Stop() {
	close(nn.quit)
}

// visibilityLoop drives the overlay's own clock: the remaining-time suffix
// counts down once a second between polls, and the idle condition is
// re-evaluated on the same beat.
func (nn *NowNextWindow) visibilityLoop() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-nn.quit:
			return
		case <-ticker.C:
			fyne.Do(func() {
				nn.tick()
			})
		}
	}
}

// tick advances the local countdown and repaints. UI thread only.
func (nn *NowNextWindow) tick() {
	nn.countdown.Tick()
	nn.renderNowLine()
	nn.applyVisibility()
}

func (nn *NowNextWindow) renderNowLine() {
	text := nn.nowBase
	if remaining, running := nn.countdown.Remaining(); running {
		text += " · " + schedule.FormatRemaining(remaining)
	}
	nn.nowLine.SetText(text)
}

func (nn *NowNextWindow) applyVisibility() {
	idleFor := time.Since(nn.lastInteraction)
	show := nn.hasContent &&
		schedule.OverlayVisible(nn.enabled, nn.mode, idleFor, schedule.DefaultIdleThreshold)
	if show != nn.visible {
		nn.setVisible(show)
	}
}

func (nn *NowNextWindow) setVisible(show bool) {
	nn.visible = show
	if show {
		nn.win.Show()
	} else {
		nn.win.Hide()
	}
}

// activityTracker wraps the main window content and reports pointer and tap
// activity, which feeds the overlay's idle timer.
type activityTracker struct {
	widget.BaseWidget
	content    fyne.CanvasObject
	onActivity func()
	lastReport time.Time
}

func newActivityTracker(content fyne.CanvasObject, onActivity func()) *activityTracker {
	a := &activityTracker{content: content, onActivity: onActivity}
	a.ExtendBaseWidget(a)
	return a
}

func (a *activityTracker) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(a.content)
}

// report throttles activity callbacks; mouse-move events arrive in bursts
func (a *activityTracker) report() {
	if time.Since(a.lastReport) < 250*time.Millisecond {
		return
	}
	a.lastReport = time.Now()
	if a.onActivity != nil {
		a.onActivity()
	}
}

func (a *activityTracker) MouseIn(*desktop.MouseEvent) {
	a.report()
}

func (a *activityTracker) MouseMoved(*desktop.MouseEvent) {
	a.report()
}

func (a *activityTracker) MouseOut() {
}

func (a *activityTracker) Tapped(*fyne.PointEvent) {
	a.report()
}
