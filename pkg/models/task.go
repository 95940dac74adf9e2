package models

// Task is a reusable task template managed through /tasks/.
// The same shape is used for create, update and AI template suggestions.
type Task struct {
	ID                     int    `json:"id,omitempty"`
	Name                   string `json:"name"`
	Category               string `json:"category"`
	DefaultDurationMinutes int    `json:"default_duration_minutes"`
	RecurrencePattern      string `json:"recurrence_pattern,omitempty"`
	PreferredTimeWindow    string `json:"preferred_time_window,omitempty"`
	DefaultAlertStyle      string `json:"default_alert_style"`
	Enabled                bool   `json:"enabled"`
}

// Interaction is one alert interaction from GET /schedule/interactions/recent.
// Timestamps stay as ISO strings; the UI only slices them for display and
// date-range filtering.
type Interaction struct {
	ID                 int    `json:"id"`
	ScheduleInstanceID int    `json:"schedule_instance_id"`
	TaskName           string `json:"task_name"`
	Category           string `json:"category"`
	AlertType          string `json:"alert_type"`
	AlertStartedAt     string `json:"alert_started_at"`
	ResponseType       string `json:"response_type,omitempty"`
	ResponseStage      string `json:"response_stage,omitempty"`
	RespondedAt        string `json:"responded_at,omitempty"`
}
