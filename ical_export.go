package main

import (
	"fmt"
	"io"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/otterlog/daypulse/pkg/models"
)

// exportTodayICS writes today's schedule to an .ics file picked by the user,
// so the day plan can be dropped into a regular calendar app.
func (dp *DayPulse) exportTodayICS() {
	items := dp.currentItems()

	saver := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, dp.mainWindow)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		if err := writeScheduleICS(writer, items); err != nil {
			dialog.ShowError(err, dp.mainWindow)
		}
	}, dp.mainWindow)
	saver.SetFileName("daypulse-today.ics")
	saver.SetFilter(storage.NewExtensionFileFilter([]string{".ics"}))
	saver.Show()
}

func writeScheduleICS(w io.Writer, items []models.ScheduleItem) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropProductID, "-//otterlog//DayPulse//EN")
	cal.Props.SetText(ical.PropVersion, "2.0")

	now := time.Now()
	for _, item := range items {
		if item.Status == models.StatusCancelled {
			continue
		}

		start, err := parseLocalDateTime(item.Date, item.PlannedStartTime)
		if err != nil {
			return fmt.Errorf("instance %d: %w", item.ID, err)
		}
		end, err := parseLocalDateTime(item.Date, item.PlannedEndTime)
		if err != nil {
			return fmt.Errorf("instance %d: %w", item.ID, err)
		}
		// Schedules can wrap past midnight
		if !end.After(start) {
			end = end.Add(24 * time.Hour)
		}

		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, uuid.NewString())
		event.Props.SetDateTime(ical.PropDateTimeStamp, now)
		event.Props.SetDateTime(ical.PropDateTimeStart, start)
		event.Props.SetDateTime(ical.PropDateTimeEnd, end)
		event.Props.SetText(ical.PropSummary, item.TaskName)
		event.Props.SetText(ical.PropCategories, item.Category)
		cal.Children = append(cal.Children, event.Component)
	}

	if len(cal.Children) == 0 {
		return fmt.Errorf("no schedule items to export")
	}

	return ical.NewEncoder(w).Encode(cal)
}

// parseLocalDateTime combines a "YYYY-MM-DD" date and "HH:MM:SS" time of day
// in the local timezone
func parseLocalDateTime(date, timeOfDay string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", date+" "+timeOfDay, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q %q: %w", date, timeOfDay, err)
	}
	return t, nil
}
