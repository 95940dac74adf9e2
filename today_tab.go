package main

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/otterlog/daypulse/pkg/models"
	"github.com/otterlog/daypulse/pkg/schedule"
)

// TodayTab renders today's schedule: the active/paused banner with its
// countdown, the Now & Next strip, the per-instance action rows and the
// ad-hoc task form. All methods run on the UI thread.
type TodayTab struct {
	dp *DayPulse

	banner     *widget.Label
	bannerBase string
	nowStrip   *widget.Label
	status     *widget.Label
	suggestion *widget.Label
	rows       *fyne.Container
	offline    bool

	// editingID guards against re-rendering the row the user is typing a
	// start time into; the 1s poll would otherwise wipe the entry.
	editingID int

	lastSig string

	addName     *widget.Entry
	addCategory *widget.Entry
	addDuration *widget.Entry
	addStart    *widget.Entry

	activity *activityTracker
}

func NewTodayTab(dp *DayPulse) *TodayTab {
	t := &TodayTab{
		dp:         dp,
		banner:     widget.NewLabel("No active task right now."),
		nowStrip:   widget.NewLabel("Now: —"),
		status:     widget.NewLabel(""),
		suggestion: widget.NewLabel(""),
		rows:       container.NewVBox(),
	}
	t.banner.TextStyle = fyne.TextStyle{Bold: true}
	t.banner.Wrapping = fyne.TextWrapWord
	t.suggestion.Wrapping = fyne.TextWrapWord

	t.addName = widget.NewEntry()
	t.addName.SetPlaceHolder("Task name")
	t.addCategory = widget.NewEntry()
	t.addCategory.SetPlaceHolder("Category (default: misc)")
	t.addDuration = widget.NewEntry()
	t.addDuration.SetPlaceHolder("Minutes (default: 60)")
	t.addStart = widget.NewEntry()
	t.addStart.SetPlaceHolder("Start (HH:MM)")

	return t
}

func (t *TodayTab) Content() fyne.CanvasObject {
	suggestButton := widget.NewButton("What should I do now?", func() {
		t.loadNowSuggestion()
	})

	addButton := widget.NewButton("Add to today", func() {
		t.addAdhocTask()
	})
	addForm := container.NewVBox(
		widget.NewLabel("Add a one-off task for today"),
		t.addName,
		container.NewGridWithColumns(3, t.addCategory, t.addDuration, t.addStart),
		addButton,
	)

	top := container.NewVBox(
		container.NewBorder(nil, nil, nil, suggestButton, t.nowStrip),
		t.suggestion,
		widget.NewSeparator(),
		t.banner,
		t.status,
	)

	return container.NewBorder(top, addForm, nil, nil, container.NewVScroll(t.rows))
}

// TrackActivity wraps the main content so pointer movement feeds the
// Now & Next overlay idle timer.
func (t *TodayTab) TrackActivity(content fyne.CanvasObject) fyne.CanvasObject {
	t.activity = newActivityTracker(content, func() {
		t.dp.overlay.MarkInteraction()
	})
	return t.activity
}

func (t *TodayTab) SetOffline(offline bool) {
	if offline == t.offline {
		return
	}
	t.offline = offline
	if offline {
		t.setStatus("Could not load today's schedule.", true)
	} else {
		t.setStatus("", false)
	}
}

// SetCountdown refreshes the remaining-time suffix on the banner
func (t *TodayTab) SetCountdown(remaining int, running bool) {
	if t.bannerBase == "" {
		return
	}
	if running {
		t.banner.SetText(fmt.Sprintf("%s — %s remaining", t.bannerBase, schedule.FormatRemaining(remaining)))
	} else {
		t.banner.SetText(t.bannerBase)
	}
}

// Update repaints the tab from a fresh schedule snapshot
func (t *TodayTab) Update(items []models.ScheduleItem) {
	t.updateBanner(items)
	t.updateNowStrip(items)

	if t.editingID != 0 {
		return
	}
	sig := renderSignature(items)
	if sig == t.lastSig {
		return
	}
	t.lastSig = sig
	t.rebuildRows(items)
}

func (t *TodayTab) updateBanner(items []models.ScheduleItem) {
	banner := schedule.BannerItem(items)
	if banner == nil {
		t.bannerBase = ""
		t.banner.SetText("No active task right now.")
		return
	}
	prefix := "Active now: "
	if banner.Status == models.StatusPaused {
		prefix = "Paused: "
	}
	t.bannerBase = fmt.Sprintf("%s%s (%s–%s)", prefix, banner.TaskName, banner.StartClock(), banner.EndClock())
	remaining, running := t.dp.countdown.Remaining()
	t.SetCountdown(remaining, running)
}

func (t *TodayTab) updateNowStrip(items []models.ScheduleItem) {
	now := schedule.BannerItem(items)
	next := schedule.NextItem(items)

	parts := []string{"Now: —"}
	if now != nil {
		parts[0] = fmt.Sprintf("Now: %s (%s–%s)", now.TaskName, now.StartClock(), now.EndClock())
	}
	if next != nil {
		parts = append(parts, fmt.Sprintf("Next: %s at %s", next.TaskName, next.StartClock()))
	}
	t.nowStrip.SetText(strings.Join(parts, "   ·   "))
}

// renderSignature captures the row-affecting fields so the list is only
// rebuilt when something other than the countdown changed
func renderSignature(items []models.ScheduleItem) string {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "%d:%s:%s:%s:%t;", item.ID, item.Status, item.PlannedStartTime, item.PlannedEndTime, item.IsAdhoc)
	}
	return b.String()
}

func (t *TodayTab) rebuildRows(items []models.ScheduleItem) {
	t.rows.RemoveAll()

	if len(items) == 0 {
		hint := widget.NewLabel("No schedule for today yet. Add some templates to get started.")
		hint.Wrapping = fyne.TextWrapWord
		t.rows.Add(hint)
		t.rows.Refresh()
		return
	}

	for i := range items {
		t.rows.Add(t.buildRow(items[i]))
	}
	t.rows.Refresh()
}

func (t *TodayTab) buildRow(item models.ScheduleItem) fyne.CanvasObject {
	name := widget.NewLabel(item.TaskName)
	name.TextStyle = fyne.TextStyle{Bold: true}

	metaText := fmt.Sprintf("%s · %s", item.Category, item.Status)
	if item.IsAdhoc {
		metaText += " · adhoc"
	}
	meta := widget.NewLabel(metaText)

	timeEntry := widget.NewEntry()
	timeEntry.SetText(item.StartClock())
	timeEntry.OnChanged = func(text string) {
		if text == item.StartClock() {
			if t.editingID == item.ID {
				t.editingID = 0
			}
		} else {
			t.editingID = item.ID
		}
	}

	saveButton := widget.NewButton("Save", func() {
		t.saveStartTime(item, timeEntry.Text)
	})

	controls := container.NewHBox(timeEntry, saveButton)

	if item.Status == models.StatusActive || item.Status == models.StatusPaused {
		if item.Status == models.StatusActive {
			controls.Add(widget.NewButton("Pause", func() {
				t.setInstanceStatus(item, models.StatusPaused)
			}))
		} else {
			controls.Add(widget.NewButton("Resume", func() {
				t.setInstanceStatus(item, models.StatusActive)
			}))
		}
		for _, minutes := range t.dp.config.GetSnoozePresets() {
			minutes := minutes
			controls.Add(widget.NewButton(fmt.Sprintf("+%dm", minutes), func() {
				t.dp.snoozeInstance(item, minutes, t.dp.mainWindow)
			}))
		}
	}

	if item.Status == models.StatusCancelled {
		cancelled := widget.NewButton("Cancelled", nil)
		cancelled.Disable()
		controls.Add(cancelled)
	} else {
		controls.Add(widget.NewButton("Disable today", func() {
			t.disableToday(item)
		}))
	}

	return container.NewVBox(
		container.NewBorder(nil, nil, name, nil, meta),
		controls,
		widget.NewSeparator(),
	)
}

func (t *TodayTab) saveStartTime(item models.ScheduleItem, value string) {
	value = strings.TrimSpace(value)
	if len(value) != 5 || value[2] != ':' {
		t.setStatus("Please enter the start time as HH:MM.", true)
		return
	}
	start := value + ":00"
	update := models.InstanceUpdate{PlannedStartTime: &start}

	go func() {
		if _, err := t.dp.client.UpdateInstance(item.ID, update); err != nil {
			log.Printf("Failed to update start time for instance %d: %v", item.ID, err)
			fyne.Do(func() {
				t.setStatus("Error updating schedule.", true)
			})
			return
		}
		fyne.Do(func() {
			if t.editingID == item.ID {
				t.editingID = 0
			}
			t.setStatus("Schedule updated.", false)
		})
		t.dp.poll.ForceRefresh()
	}()
}

func (t *TodayTab) setInstanceStatus(item models.ScheduleItem, status models.InstanceStatus) {
	update := models.InstanceUpdate{Status: &status}

	go func() {
		if _, err := t.dp.client.UpdateInstance(item.ID, update); err != nil {
			log.Printf("Failed to set instance %d to %s: %v", item.ID, status, err)
			fyne.Do(func() {
				t.setStatus("Error updating task status.", true)
			})
			return
		}
		if status == models.StatusPaused {
			t.dp.engine.HideInactive()
		}
		fyne.Do(func() {
			if status == models.StatusPaused {
				t.setStatus("Task paused.", false)
			} else {
				t.setStatus("Task resumed.", false)
			}
		})
		t.dp.poll.ForceRefresh()
	}()
}

func (t *TodayTab) disableToday(item models.ScheduleItem) {
	dialog.ShowConfirm("Disable task", "Disable this task for today?", func(confirmed bool) {
		if !confirmed {
			return
		}
		status := models.StatusCancelled
		update := models.InstanceUpdate{Status: &status}

		go func() {
			if _, err := t.dp.client.UpdateInstance(item.ID, update); err != nil {
				log.Printf("Failed to disable instance %d: %v", item.ID, err)
				fyne.Do(func() {
					t.setStatus("Error disabling task for today.", true)
				})
				return
			}
			t.dp.poll.ForceRefresh()
			fyne.Do(func() {
				t.setStatus("Task disabled for today.", false)
				promptInteractionNote(t.dp, t.dp.mainWindow, item.ID, "skip",
					"Why did you skip this task today? (1 short sentence, optional)")
			})
		}()
	}, t.dp.mainWindow)
}

func (t *TodayTab) addAdhocTask() {
	name := strings.TrimSpace(t.addName.Text)
	start := strings.TrimSpace(t.addStart.Text)
	if name == "" || start == "" {
		t.setStatus("Please provide a name and start time to add a task for today.", true)
		return
	}

	category := strings.TrimSpace(t.addCategory.Text)
	if category == "" {
		category = "misc"
	}
	duration, err := strconv.Atoi(strings.TrimSpace(t.addDuration.Text))
	if err != nil || duration <= 0 {
		duration = 60
	}

	task := models.AdhocTask{
		Name:            name,
		Category:        category,
		DurationMinutes: duration,
		StartTime:       start + ":00",
	}

	go func() {
		if _, err := t.dp.client.CreateAdhocToday(task); err != nil {
			log.Printf("Failed to add adhoc task: %v", err)
			fyne.Do(func() {
				t.setStatus("Error adding task to today.", true)
			})
			return
		}
		t.dp.poll.ForceRefresh()
		fyne.Do(func() {
			t.addName.SetText("")
			t.addCategory.SetText("")
			t.addDuration.SetText("")
			t.addStart.SetText("")
			t.setStatus("Task added to today.", false)
		})
	}()
}

func (t *TodayTab) loadNowSuggestion() {
	t.suggestion.SetText("Thinking...")
	go func() {
		text, err := t.dp.client.NowSuggestion()
		fyne.Do(func() {
			if err != nil {
				log.Printf("Failed to get suggestion: %v", err)
				t.suggestion.SetText("Could not get a suggestion right now.")
				return
			}
			t.suggestion.SetText(text)
		})
	}()
}

func (t *TodayTab) setStatus(text string, isError bool) {
	setStatusLabel(t.status, text, isError)
}
