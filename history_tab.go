package main

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/otterlog/daypulse/pkg/models"
)

// HistoryTab shows recent alert interactions with date and category filters,
// the AI reflection helpers, and a PDF export of the filtered view.
type HistoryTab struct {
	dp *DayPulse

	all []models.Interaction

	list     *fyne.Container
	fromDate *widget.Entry
	toDate   *widget.Entry
	category *widget.Select

	insightsStatus *widget.Label
	insightsBox    *fyne.Container
	lastInsights   models.HistoryInsights

	notesStatus *widget.Label
	notesBox    *fyne.Container
	lastNotes   models.NotesSummary
}

func NewHistoryTab(dp *DayPulse) *HistoryTab {
	h := &HistoryTab{
		dp:             dp,
		list:           container.NewVBox(),
		insightsStatus: widget.NewLabel(""),
		insightsBox:    container.NewVBox(),
		notesStatus:    widget.NewLabel(""),
		notesBox:       container.NewVBox(),
	}

	h.fromDate = widget.NewEntry()
	h.fromDate.SetPlaceHolder("From (YYYY-MM-DD)")
	h.fromDate.OnChanged = func(string) { h.render() }
	h.toDate = widget.NewEntry()
	h.toDate.SetPlaceHolder("To (YYYY-MM-DD)")
	h.toDate.OnChanged = func(string) { h.render() }
	h.category = widget.NewSelect([]string{"All categories"}, func(string) {
		h.render()
	})
	h.category.SetSelected("All categories")

	return h
}

func (h *HistoryTab) Content() fyne.CanvasObject {
	insightsButton := widget.NewButton("Summarize history", func() {
		h.loadInsights()
	})
	insightsPlay := widget.NewButton("Play", func() {
		h.playInsights()
	})
	notesButton := widget.NewButton("Summarize notes", func() {
		h.loadNotesSummary()
	})
	notesPlay := widget.NewButton("Play", func() {
		h.playNotes()
	})
	exportButton := widget.NewButton("Export PDF", func() {
		h.exportPDF()
	})

	filters := container.NewVBox(
		container.NewGridWithColumns(3, h.fromDate, h.toDate, h.category),
		container.NewHBox(insightsButton, insightsPlay, notesButton, notesPlay, exportButton),
	)

	aiSections := container.NewVBox(
		h.insightsStatus,
		h.insightsBox,
		h.notesStatus,
		h.notesBox,
	)

	return container.NewBorder(
		container.NewVBox(filters, widget.NewSeparator()),
		aiSections,
		nil, nil,
		container.NewVScroll(h.list),
	)
}

// Reload refetches the most recent interactions
func (h *HistoryTab) Reload() {
	go func() {
		items, err := h.dp.client.RecentInteractions(50)
		fyne.Do(func() {
			if err != nil {
				log.Printf("Failed to load interaction history: %v", err)
				return
			}
			h.all = items
			h.updateCategoryOptions()
			h.render()
		})
	}()
}

func (h *HistoryTab) updateCategoryOptions() {
	seen := make(map[string]bool)
	categories := []string{}
	for _, item := range h.all {
		cat := strings.TrimSpace(item.Category)
		if cat != "" && !seen[cat] {
			seen[cat] = true
			categories = append(categories, cat)
		}
	}
	sort.Strings(categories)

	selected := h.category.Selected
	h.category.Options = append([]string{"All categories"}, categories...)
	h.category.Refresh()
	if selected == "" {
		h.category.SetSelected("All categories")
	}
}

// filtered applies the date range and category filters, newest first
func (h *HistoryTab) filtered() []models.Interaction {
	dateOnly := func(item models.Interaction) string {
		ts := item.AlertStartedAt
		if ts == "" {
			ts = item.RespondedAt
		}
		if len(ts) < 10 {
			return ""
		}
		return ts[:10]
	}

	from := strings.TrimSpace(h.fromDate.Text)
	to := strings.TrimSpace(h.toDate.Text)
	category := h.category.Selected
	if category == "All categories" {
		category = ""
	}

	items := []models.Interaction{}
	for _, item := range h.all {
		d := dateOnly(item)
		if from != "" && (d == "" || d < from) {
			continue
		}
		if to != "" && (d == "" || d > to) {
			continue
		}
		if category != "" && item.Category != category {
			continue
		}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		aTs := a.AlertStartedAt
		if aTs == "" {
			aTs = a.RespondedAt
		}
		bTs := b.AlertStartedAt
		if bTs == "" {
			bTs = b.RespondedAt
		}
		if aTs != bTs {
			return aTs > bTs
		}
		return a.ID > b.ID
	})

	return items
}

func (h *HistoryTab) render() {
	h.list.RemoveAll()

	items := h.filtered()
	if len(items) == 0 {
		h.list.Add(widget.NewLabel("No interactions yet. Recent alerts will show here."))
		h.list.Refresh()
		return
	}

	for _, item := range items {
		h.list.Add(buildHistoryRow(item))
	}
	h.list.Refresh()
}

func buildHistoryRow(item models.Interaction) fyne.CanvasObject {
	name := widget.NewLabel(item.TaskName)
	name.TextStyle = fyne.TextStyle{Bold: true}

	meta := widget.NewLabel(interactionSummary(item))

	times := widget.NewLabel(interactionTimes(item))

	return container.NewVBox(
		container.NewBorder(nil, nil, name, times),
		meta,
		widget.NewSeparator(),
	)
}

// interactionSummary renders "category · alert_type → response (stage)"
func interactionSummary(item models.Interaction) string {
	resp := item.ResponseType
	if resp == "" {
		resp = "none"
	}
	text := fmt.Sprintf("%s · %s → %s", item.Category, item.AlertType, resp)
	if item.ResponseStage != "" {
		text += fmt.Sprintf(" (%s)", item.ResponseStage)
	}
	return text
}

func interactionTimes(item models.Interaction) string {
	started := models.TimestampClock(item.AlertStartedAt)
	responded := models.TimestampClock(item.RespondedAt)
	if responded == "" {
		return started + " → …"
	}
	return started + " → " + responded
}

func (h *HistoryTab) dateRange() models.DateRange {
	return models.DateRange{
		StartDate: strings.TrimSpace(h.fromDate.Text),
		EndDate:   strings.TrimSpace(h.toDate.Text),
	}
}

func (h *HistoryTab) loadInsights() {
	setStatusLabel(h.insightsStatus, "Summarizing recent history...", false)
	h.insightsBox.RemoveAll()
	h.insightsBox.Refresh()

	go func() {
		insights, err := h.dp.client.HistoryInsights(h.dateRange())
		fyne.Do(func() {
			if err != nil {
				log.Printf("AI history insights failed: %v", err)
				setStatusLabel(h.insightsStatus, "Could not summarize history right now.", true)
				return
			}
			h.lastInsights = insights
			if len(insights.Insights) == 0 && len(insights.Recommendations) == 0 {
				setStatusLabel(h.insightsStatus, "No insights available for this range.", false)
				return
			}
			setStatusLabel(h.insightsStatus, "", false)
			fillBulletBox(h.insightsBox, "Behavior patterns", insights.Insights)
			fillBulletBox(h.insightsBox, "Recommendations", insights.Recommendations)
			h.insightsBox.Refresh()
		})
	}()
}

func (h *HistoryTab) loadNotesSummary() {
	setStatusLabel(h.notesStatus, "Summarizing notes...", false)
	h.notesBox.RemoveAll()
	h.notesBox.Refresh()

	go func() {
		summary, err := h.dp.client.NotesSummary(h.dateRange())
		fyne.Do(func() {
			if err != nil {
				log.Printf("AI notes summary failed: %v", err)
				setStatusLabel(h.notesStatus, "Could not summarize notes right now.", true)
				return
			}
			h.lastNotes = summary
			if len(summary.Patterns) == 0 && len(summary.Recommendations) == 0 {
				setStatusLabel(h.notesStatus, "No note patterns for this range.", false)
				return
			}
			setStatusLabel(h.notesStatus, "", false)
			fillBulletBox(h.notesBox, "Note patterns", summary.Patterns)
			fillBulletBox(h.notesBox, "Recommendations", summary.Recommendations)
			h.notesBox.Refresh()
		})
	}()
}

func fillBulletBox(box *fyne.Container, header string, lines []string) {
	if len(lines) == 0 {
		return
	}
	title := widget.NewLabel(header)
	title.TextStyle = fyne.TextStyle{Bold: true}
	box.Add(title)
	for _, line := range lines {
		label := widget.NewLabel("• " + line)
		label.Wrapping = fyne.TextWrapWord
		box.Add(label)
	}
}

func (h *HistoryTab) playInsights() {
	h.speakLines(h.insightsStatus, append(h.lastInsights.Insights, h.lastInsights.Recommendations...))
}

func (h *HistoryTab) playNotes() {
	h.speakLines(h.notesStatus, append(h.lastNotes.Patterns, h.lastNotes.Recommendations...))
}

// speakLines sends the last summary to the server-side TTS endpoint
func (h *HistoryTab) speakLines(status *widget.Label, lines []string) {
	text := strings.Join(lines, " ")
	if strings.TrimSpace(text) == "" {
		setStatusLabel(status, "Nothing to play yet - summarize first.", true)
		return
	}
	go func() {
		if err := h.dp.client.Speak(text); err != nil {
			log.Printf("Failed to play summary: %v", err)
			fyne.Do(func() {
				setStatusLabel(status, "Could not play the summary.", true)
			})
			return
		}
		fyne.Do(func() {
			setStatusLabel(status, "Playing summary as audio in the background.", false)
		})
	}()
}

func (h *HistoryTab) exportPDF() {
	items := h.filtered()
	if len(items) == 0 {
		dialog.ShowInformation("Export PDF", "There are no interactions to export.", h.dp.mainWindow)
		return
	}

	saver := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, h.dp.mainWindow)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		if err := writeHistoryPDF(writer, items); err != nil {
			log.Printf("Failed to export history PDF: %v", err)
			dialog.ShowError(err, h.dp.mainWindow)
			return
		}
	}, h.dp.mainWindow)
	saver.SetFileName("daypulse-history.pdf")
	saver.SetFilter(storage.NewExtensionFileFilter([]string{".pdf"}))
	saver.Show()
}
