package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/otterlog/daypulse/pkg/models"
)

func icsItem(id int, name, start, end string, status models.InstanceStatus) models.ScheduleItem {
	return models.ScheduleItem{
		ID:               id,
		TaskName:         name,
		Category:         "work",
		Date:             "2026-08-29",
		PlannedStartTime: start,
		PlannedEndTime:   end,
		Status:           status,
	}
}

func TestWriteScheduleICS(t *testing.T) {
	items := []models.ScheduleItem{
		icsItem(1, "deep work", "09:00:00", "10:00:00", models.StatusActive),
		icsItem(2, "dropped", "11:00:00", "11:30:00", models.StatusCancelled),
	}

	var buf bytes.Buffer
	if err := writeScheduleICS(&buf, items); err != nil {
		t.Fatalf("writeScheduleICS: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "BEGIN:VCALENDAR") || !strings.Contains(out, "BEGIN:VEVENT") {
		t.Fatalf("output is not a calendar:\n%s", out)
	}
	if !strings.Contains(out, "SUMMARY:deep work") {
		t.Errorf("summary missing:\n%s", out)
	}
	if strings.Contains(out, "dropped") {
		t.Errorf("cancelled item exported:\n%s", out)
	}
	if strings.Count(out, "BEGIN:VEVENT") != 1 {
		t.Errorf("want exactly one event:\n%s", out)
	}
}

func TestWriteScheduleICSEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := writeScheduleICS(&buf, nil); err == nil {
		t.Fatal("want an error for an empty schedule")
	}

	// A schedule of only cancelled items is empty too.
	items := []models.ScheduleItem{
		icsItem(1, "dropped", "09:00:00", "10:00:00", models.StatusCancelled),
	}
	if err := writeScheduleICS(&buf, items); err == nil {
		t.Fatal("want an error when every item is cancelled")
	}
}

func TestWriteScheduleICSWrapsPastMidnight(t *testing.T) {
	items := []models.ScheduleItem{
		icsItem(1, "wind down", "23:30:00", "00:15:00", models.StatusPending),
	}

	var buf bytes.Buffer
	if err := writeScheduleICS(&buf, items); err != nil {
		t.Fatalf("writeScheduleICS: %v", err)
	}
	if !strings.Contains(buf.String(), "DTEND") {
		t.Fatalf("event has no end:\n%s", buf.String())
	}
}

func TestParseLocalDateTime(t *testing.T) {
	got, err := parseLocalDateTime("2026-08-29", "09:30:00")
	if err != nil {
		t.Fatalf("parseLocalDateTime: %v", err)
	}
	if got.Hour() != 9 || got.Minute() != 30 || got.Day() != 29 {
		t.Errorf("parsed %v", got)
	}

	if _, err := parseLocalDateTime("2026-08-29", "9:30"); err == nil {
		t.Error("want an error for a malformed time of day")
	}
}
