package main

import (
	"bytes"
	"strings"
	"testing"

	"fyne.io/fyne/v2/widget"

	"github.com/otterlog/daypulse/pkg/models"
)

func interaction(id int, category, started, responded string) models.Interaction {
	return models.Interaction{
		ID:             id,
		TaskName:       "deep work",
		Category:       category,
		AlertType:      "visual_then_alarm",
		AlertStartedAt: started,
		RespondedAt:    responded,
	}
}

func filterTab(all []models.Interaction) *HistoryTab {
	h := &HistoryTab{
		all:      all,
		fromDate: widget.NewEntry(),
		toDate:   widget.NewEntry(),
		category: widget.NewSelect([]string{"All categories"}, nil),
	}
	h.category.Selected = "All categories"
	return h
}

func ids(items []models.Interaction) []int {
	out := make([]int, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestFilteredSortsNewestFirst(t *testing.T) {
	h := filterTab([]models.Interaction{
		interaction(1, "work", "2026-08-28T09:00:00", ""),
		interaction(2, "work", "2026-08-29T09:00:00", ""),
		interaction(3, "work", "2026-08-29T09:00:00", ""), // same timestamp, higher id first
	})

	got := ids(h.filtered())
	want := []int{3, 2, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestFilteredDateRange(t *testing.T) {
	h := filterTab([]models.Interaction{
		interaction(1, "work", "2026-08-27T09:00:00", ""),
		interaction(2, "work", "2026-08-28T09:00:00", ""),
		interaction(3, "work", "2026-08-29T09:00:00", ""),
	})
	h.fromDate.Text = "2026-08-28"
	h.toDate.Text = "2026-08-28"

	got := ids(h.filtered())
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("filtered ids = %v, want [2]", got)
	}
}

func TestFilteredCategory(t *testing.T) {
	h := filterTab([]models.Interaction{
		interaction(1, "work", "2026-08-29T09:00:00", ""),
		interaction(2, "health", "2026-08-29T10:00:00", ""),
	})
	h.category.Selected = "health"

	got := ids(h.filtered())
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("filtered ids = %v, want [2]", got)
	}
}

func TestFilteredFallsBackToRespondedAt(t *testing.T) {
	h := filterTab([]models.Interaction{
		{ID: 1, Category: "work", RespondedAt: "2026-08-29T09:05:00"},
	})
	h.fromDate.Text = "2026-08-29"

	if got := ids(h.filtered()); len(got) != 1 {
		t.Fatalf("filtered ids = %v, want the responded-only interaction", got)
	}
}

func TestInteractionSummary(t *testing.T) {
	item := interaction(1, "work", "2026-08-29T09:00:00", "2026-08-29T09:02:00")
	item.ResponseType = "ack"
	item.ResponseStage = "alarm"
	if got := interactionSummary(item); got != "work · visual_then_alarm → ack (alarm)" {
		t.Errorf("interactionSummary = %q", got)
	}

	item.ResponseType = ""
	item.ResponseStage = ""
	if got := interactionSummary(item); got != "work · visual_then_alarm → none" {
		t.Errorf("interactionSummary (no response) = %q", got)
	}
}

func TestInteractionTimes(t *testing.T) {
	item := interaction(1, "work", "2026-08-29T09:00:00", "2026-08-29T09:02:00")
	if got := interactionTimes(item); got != "09:00 → 09:02" {
		t.Errorf("interactionTimes = %q", got)
	}
	item.RespondedAt = ""
	if got := interactionTimes(item); got != "09:00 → …" {
		t.Errorf("interactionTimes (pending) = %q", got)
	}
}

func TestWriteHistoryPDF(t *testing.T) {
	items := []models.Interaction{
		interaction(1, "work", "2026-08-29T09:00:00", "2026-08-29T09:02:00"),
		interaction(2, "health", "2026-08-29T10:00:00", ""),
	}

	var buf bytes.Buffer
	if err := writeHistoryPDF(&buf, items); err != nil {
		t.Fatalf("writeHistoryPDF: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "%PDF") {
		t.Fatalf("output does not look like a PDF: %.20q", buf.String())
	}
}
