// Package api is the HTTP client for the scheduling backend. Every mutation
// the desktop app performs goes through here; the backend stays the source of
// truth and this client keeps no state beyond the connection settings.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/otterlog/daypulse/pkg/models"
)

// Client talks to one backend instance. A fresh session id is generated per
// process and sent on every request so the backend can correlate interaction
// logs from a single desktop session.
type Client struct {
	mu        sync.RWMutex
	base      string
	http      *http.Client
	sessionID string
}

func NewClient(baseURL string) *Client {
	return &Client{
		base:      strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: 10 * time.Second},
		sessionID: uuid.NewString(),
	}
}

// BaseURL returns the configured backend address
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.base
}

// SetBaseURL repoints the client, e.g. after the server address was edited
// in settings. Safe to call while requests are in flight.
func (c *Client) SetBaseURL(baseURL string) {
	c.mu.Lock()
	c.base = strings.TrimRight(baseURL, "/")
	c.mu.Unlock()
}

func (c *Client) do(method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request for %s: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.BaseURL()+path, reader)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Session-ID", c.sessionID)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return fmt.Errorf("%s %s: HTTP %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(excerpt)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response for %s: %w", path, err)
	}
	return nil
}

func (c *Client) get(path string, out any) error {
	return c.do(http.MethodGet, path, nil, out)
}

// Today fetches the current day's schedule
func (c *Client) Today() ([]models.ScheduleItem, error) {
	var items []models.ScheduleItem
	if err := c.get("/schedule/today", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateInstance changes an instance's start time or status
func (c *Client) UpdateInstance(id int, update models.InstanceUpdate) (*models.ScheduleItem, error) {
	var item models.ScheduleItem
	path := fmt.Sprintf("/schedule/instances/%d", id)
	if err := c.do(http.MethodPut, path, update, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Acknowledge records that the alert for an instance was dismissed, carrying
// the escalation stage that had been reached ("visual" or "alarm").
func (c *Client) Acknowledge(id int, stage string) error {
	path := fmt.Sprintf("/schedule/instances/%d/acknowledge?stage=%s", id, url.QueryEscape(stage))
	return c.do(http.MethodPost, path, nil, nil)
}

// Snooze extends an instance by the given minutes, carrying the escalation
// stage reached when the user snoozed.
func (c *Client) Snooze(id, minutes int, stage string) error {
	path := fmt.Sprintf("/schedule/instances/%d/snooze?stage=%s", id, url.QueryEscape(stage))
	body := struct {
		Minutes int `json:"minutes"`
	}{minutes}
	return c.do(http.MethodPost, path, body, nil)
}

// StartInteraction opens an interaction-log entry when an alert is first shown
func (c *Client) StartInteraction(id int) error {
	path := fmt.Sprintf("/schedule/instances/%d/interactions/start", id)
	return c.do(http.MethodPost, path, nil, nil)
}

// AddNote attaches an optional micro-journal note to an instance
func (c *Client) AddNote(id int, note models.Note) error {
	path := fmt.Sprintf("/schedule/instances/%d/notes", id)
	return c.do(http.MethodPost, path, note, nil)
}

// CreateAdhocToday inserts a one-off task into today's schedule
func (c *Client) CreateAdhocToday(task models.AdhocTask) (*models.ScheduleItem, error) {
	var item models.ScheduleItem
	if err := c.do(http.MethodPost, "/schedule/adhoc-today", task, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// RecentInteractions returns the latest alert interactions, newest first
func (c *Client) RecentInteractions(limit int) ([]models.Interaction, error) {
	var items []models.Interaction
	path := "/schedule/interactions/recent?limit=" + strconv.Itoa(limit)
	if err := c.get(path, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AlarmConfig fetches the server-side alarm sound settings
func (c *Client) AlarmConfig() (models.AlarmConfig, error) {
	var cfg models.AlarmConfig
	err := c.get("/schedule/alarm-config", &cfg)
	return cfg, err
}

// SaveAlarmConfig stores alarm sound settings server-side and returns the
// clamped result.
func (c *Client) SaveAlarmConfig(cfg models.AlarmConfig) (models.AlarmConfig, error) {
	var saved models.AlarmConfig
	err := c.do(http.MethodPut, "/schedule/alarm-config", cfg, &saved)
	return saved, err
}

// AlertWording fetches the stored alert phrasing for a category
func (c *Client) AlertWording(category string) (models.AlertWording, error) {
	var w models.AlertWording
	err := c.get("/schedule/alert-wordings/"+url.PathEscape(category), &w)
	return w, err
}

// SaveAlertWording stores the alert phrasing for a category
func (c *Client) SaveAlertWording(category string, w models.AlertWording) (models.AlertWording, error) {
	var saved models.AlertWording
	err := c.do(http.MethodPut, "/schedule/alert-wordings/"+url.PathEscape(category), w, &saved)
	return saved, err
}

// ListTasks returns all enabled task templates
func (c *Client) ListTasks() ([]models.Task, error) {
	var tasks []models.Task
	if err := c.get("/tasks/", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask adds a new task template
func (c *Client) CreateTask(task models.Task) (*models.Task, error) {
	var created models.Task
	if err := c.do(http.MethodPost, "/tasks/", task, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTask replaces an existing template
func (c *Client) UpdateTask(task models.Task) (*models.Task, error) {
	var updated models.Task
	path := fmt.Sprintf("/tasks/%d", task.ID)
	if err := c.do(http.MethodPut, path, task, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTask soft-deletes a template; the backend keeps history intact
func (c *Client) DeleteTask(id int) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil)
}
