package main

import (
	"fmt"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"golang.design/x/hotkey"

	"github.com/otterlog/daypulse/pkg/models"
	"github.com/otterlog/daypulse/pkg/platform"
)

// AlertWindow is the full-screen takeover shown when a task becomes active.
// It only resolves through the hold-to-dismiss button or a snooze; Cmd+Q is
// intercepted and losing focus pulls the window back to the front, so the
// alert cannot be reflex-dismissed.
type AlertWindow struct {
	window fyne.Window
	dp     *DayPulse
	item   models.ScheduleItem

	dismissProgress float64
	dismissTicker   *time.Ticker
	dismissHeld     bool
	cmdQHotkey      *hotkey.Hotkey
	stopMonitoring  chan struct{}
	closed          bool
}

// NewAlertWindow builds the window. Must be called on the UI thread.
func NewAlertWindow(dp *DayPulse, item models.ScheduleItem) *AlertWindow {
	aw := &AlertWindow{
		dp:             dp,
		item:           item,
		stopMonitoring: make(chan struct{}),
	}

	aw.window = dp.app.NewWindow("Task Alert")
	aw.window.SetFullScreen(true)
	aw.buildUI()

	aw.registerCmdQPrevention()
	aw.setupFocusMonitoring()

	aw.window.SetOnClosed(func() {
		aw.closed = true
		close(aw.stopMonitoring)
		if aw.cmdQHotkey != nil {
			aw.cmdQHotkey.Unregister()
		}
	})

	return aw
}

func (aw *AlertWindow) buildUI() {
	title := canvas.NewText(aw.item.TaskName, nil)
	title.TextSize = 32
	title.Alignment = fyne.TextAlignCenter

	timeInfo := fmt.Sprintf("%s – %s", aw.item.StartClock(), aw.item.EndClock())
	timeLabel := widget.NewLabel(timeInfo)
	timeLabel.Alignment = fyne.TextAlignCenter

	category := widget.NewLabel(aw.item.Category)
	category.Alignment = fyne.TextAlignCenter

	holdSeconds := aw.dp.config.HoldTimeSeconds
	var dismissButton *HoldButton
	dismissButton = NewHoldButton(fmt.Sprintf("Dismiss (Hold %ds)", holdSeconds), func() {
		aw.startDismissProgress(dismissButton)
	}, func() {
		aw.stopDismissProgress(dismissButton)
	})

	snoozeRow := container.NewHBox()
	for _, minutes := range aw.dp.config.GetSnoozePresets() {
		minutes := minutes
		snoozeRow.Add(widget.NewButton(fmt.Sprintf("Snooze +%dm", minutes), func() {
			aw.dp.snoozeInstance(aw.item, minutes, aw.dp.mainWindow)
		}))
	}

	content := container.NewVBox(
		widget.NewLabel("Time to switch"),
		container.NewPadded(title),
		timeLabel,
		category,
		widget.NewSeparator(),
		container.NewCenter(snoozeRow),
		container.NewCenter(dismissButton),
	)

	aw.window.SetContent(container.NewPadded(container.NewCenter(content)))
}

func (aw *AlertWindow) startDismissProgress(button *HoldButton) {
	if aw.dismissHeld {
		return
	}

	aw.dismissHeld = true
	aw.dismissProgress = 0
	fyne.Do(func() {
		button.SetProgress(0)
	})

	tickInterval := 50 * time.Millisecond
	totalTicks := float64(aw.dp.config.HoldTimeSeconds*1000) / float64(tickInterval.Milliseconds())
	progressIncrement := 1.0 / totalTicks

	aw.dismissTicker = time.NewTicker(tickInterval)

	go func() {
		for range aw.dismissTicker.C {
			if !aw.dismissHeld {
				return
			}

			aw.dismissProgress += progressIncrement
			currentProgress := aw.dismissProgress

			fyne.Do(func() {
				button.SetProgress(currentProgress)
			})

			if currentProgress >= 1.0 {
				aw.dismissTicker.Stop()
				// The engine closes this window through the presenter
				aw.dp.engine.Dismiss()
				return
			}
		}
	}()
}

func (aw *AlertWindow) stopDismissProgress(button *HoldButton) {
	aw.dismissHeld = false
	if aw.dismissTicker != nil {
		aw.dismissTicker.Stop()
	}
	aw.dismissProgress = 0
	fyne.Do(func() {
		button.SetProgress(0)
	})
}

// Show and Close run on the UI thread
func (aw *AlertWindow) Show() {
	aw.window.Show()
}

func (aw *AlertWindow) Close() {
	if aw.closed {
		return
	}
	aw.window.Close()
}

func (aw *AlertWindow) registerCmdQPrevention() {
	go func() {
		hk := hotkey.New([]hotkey.Modifier{hotkey.Mod4}, hotkey.KeyQ)
		if err := hk.Register(); err != nil {
			log.Printf("Failed to register Cmd+Q hotkey prevention: %v", err)
			return
		}
		aw.cmdQHotkey = hk

		// Consume Cmd+Q events so the app cannot be quit to silence the alert
		for range hk.Keydown() {
			log.Println("Cmd+Q blocked - hold the Dismiss button to resolve the alert")
		}
	}()
}

// setupFocusMonitoring keeps the alert in front while it is unresolved
func (aw *AlertWindow) setupFocusMonitoring() {
	go func() {
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()

		wasFocused := true
		for {
			select {
			case <-aw.stopMonitoring:
				return
			case <-ticker.C:
				isFocused := platform.IsAppActive()

				if wasFocused && !isFocused {
					if aw.cmdQHotkey != nil {
						aw.cmdQHotkey.Unregister()
						aw.cmdQHotkey = nil
					}
				} else if !wasFocused && isFocused {
					if aw.cmdQHotkey == nil {
						aw.registerCmdQPrevention()
					}
				}

				if !isFocused {
					platform.ActivateApp()
					fyne.Do(func() {
						if !aw.closed {
							aw.window.Show()
						}
					})
				}

				wasFocused = isFocused
			}
		}
	}()
}
