package main

import (
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/otterlog/daypulse/pkg/models"
)

// promptInteractionNote shows the optional micro-journal form after a snooze
// or skip. An empty answer or cancel saves nothing; the note itself is
// best-effort and only logged on failure.
func promptInteractionNote(dp *DayPulse, parent fyne.Window, instanceID int, noteType, promptText string) {
	if instanceID == 0 {
		return
	}

	entry := widget.NewEntry()
	entry.SetPlaceHolder("1 short sentence (optional)")

	items := []*widget.FormItem{
		widget.NewFormItem(promptText, entry),
	}

	dialog.ShowForm("Quick note", "Save", "Skip", items, func(confirmed bool) {
		if !confirmed {
			return
		}
		text := strings.TrimSpace(entry.Text)
		if text == "" {
			return
		}

		go func() {
			note := models.Note{NoteType: noteType, Text: text}
			if err := dp.client.AddNote(instanceID, note); err != nil {
				log.Printf("Failed to save interaction note: %v", err)
			}
		}()
	}, parent)
}
