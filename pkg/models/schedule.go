package models

// InstanceStatus is the server-assigned status of a schedule instance
type InstanceStatus string

const (
	StatusPending   InstanceStatus = "pending"
	StatusActive    InstanceStatus = "active"
	StatusPaused    InstanceStatus = "paused"
	StatusCancelled InstanceStatus = "cancelled"
)

// ScheduleItem is one row of today's schedule as returned by GET /schedule/today.
// Times of day travel as "HH:MM:SS" strings and server_now as a full ISO
// timestamp; the client never parses them beyond slicing, so they stay strings.
type ScheduleItem struct {
	ID               int            `json:"id"`
	TaskID           int            `json:"task_id"`
	TaskName         string         `json:"task_name"`
	Category         string         `json:"category"`
	Date             string         `json:"date"`
	PlannedStartTime string         `json:"planned_start_time"`
	PlannedEndTime   string         `json:"planned_end_time"`
	Status           InstanceStatus `json:"status"`
	RemainingSeconds *int           `json:"remaining_seconds,omitempty"`
	ServerNow        string         `json:"server_now,omitempty"`
	IsAdhoc          bool           `json:"is_adhoc"`
}

// StartClock returns the planned start as "HH:MM"
func (s ScheduleItem) StartClock() string {
	return ClockOfDay(s.PlannedStartTime)
}

// EndClock returns the planned end as "HH:MM"
func (s ScheduleItem) EndClock() string {
	return ClockOfDay(s.PlannedEndTime)
}

// ClockOfDay truncates a "HH:MM:SS" time-of-day string to "HH:MM"
func ClockOfDay(t string) string {
	if len(t) < 5 {
		return t
	}
	return t[:5]
}

// TimestampClock extracts "HH:MM" from an ISO timestamp like
// "2026-08-29T09:15:00". Returns "" if the value is too short.
func TimestampClock(ts string) string {
	if len(ts) < 16 {
		return ""
	}
	return ts[11:16]
}

// InstanceUpdate is the body of PUT /schedule/instances/{id}. Only the set
// fields are sent.
type InstanceUpdate struct {
	PlannedStartTime *string         `json:"planned_start_time,omitempty"`
	Status           *InstanceStatus `json:"status,omitempty"`
}

// AdhocTask is the body of POST /schedule/adhoc-today
type AdhocTask struct {
	Name            string `json:"name"`
	Category        string `json:"category"`
	DurationMinutes int    `json:"duration_minutes"`
	StartTime       string `json:"start_time"`
}

// AlarmConfig is the server-side alarm sound configuration
type AlarmConfig struct {
	Sound         string `json:"sound"`
	VolumePercent int    `json:"volume_percent"`
}

// Note is an optional micro-journal entry attached to a schedule instance
// after a snooze or skip
type Note struct {
	NoteType string `json:"note_type"`
	Text     string `json:"text"`
}

// AlertWording is the stored alert phrasing for a category
type AlertWording struct {
	Tone string `json:"tone"`
	Text string `json:"text"`
}
