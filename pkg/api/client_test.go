package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/otterlog/daypulse/pkg/models"
)

// recorded is the last request the test server saw
type recorded struct {
	method string
	path   string
	query  string
	header http.Header
	body   string
}

func newTestServer(t *testing.T, status int, response string) (*httptest.Server, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.RawQuery
		rec.header = r.Header.Clone()
		payload, _ := io.ReadAll(r.Body)
		rec.body = string(payload)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestTodayParsesSchedule(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `[
		{"id": 1, "task_name": "deep work", "planned_start_time": "09:00:00",
		 "planned_end_time": "10:00:00", "status": "active",
		 "remaining_seconds": 1200, "server_now": "2026-08-29T09:40:00"},
		{"id": 2, "task_name": "stretch", "planned_start_time": "10:00:00",
		 "planned_end_time": "10:10:00", "status": "pending"}
	]`)
	c := NewClient(srv.URL)

	items, err := c.Today()
	if err != nil {
		t.Fatalf("Today: %v", err)
	}
	if rec.method != http.MethodGet || rec.path != "/schedule/today" {
		t.Fatalf("request = %s %s, want GET /schedule/today", rec.method, rec.path)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].RemainingSeconds == nil || *items[0].RemainingSeconds != 1200 {
		t.Fatalf("remaining_seconds not parsed: %+v", items[0])
	}
	if items[1].RemainingSeconds != nil {
		t.Fatalf("absent remaining_seconds should stay nil")
	}
	if items[0].StartClock() != "09:00" || items[0].EndClock() != "10:00" {
		t.Fatalf("clock helpers: %s-%s", items[0].StartClock(), items[0].EndClock())
	}
}

func TestSessionIDHeader(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `[]`)
	c := NewClient(srv.URL)

	if _, err := c.Today(); err != nil {
		t.Fatalf("Today: %v", err)
	}
	sid := rec.header.Get("X-Session-ID")
	if sid == "" {
		t.Fatal("X-Session-ID header missing")
	}

	// The session id is stable across requests from one client.
	if _, err := c.Today(); err != nil {
		t.Fatalf("Today: %v", err)
	}
	if rec.header.Get("X-Session-ID") != sid {
		t.Fatal("X-Session-ID changed between requests")
	}
}

func TestSnoozeRequestShape(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{}`)
	c := NewClient(srv.URL)

	if err := c.Snooze(42, 10, "alarm"); err != nil {
		t.Fatalf("Snooze: %v", err)
	}
	if rec.method != http.MethodPost || rec.path != "/schedule/instances/42/snooze" {
		t.Fatalf("request = %s %s", rec.method, rec.path)
	}
	if rec.query != "stage=alarm" {
		t.Fatalf("query = %q, want stage=alarm", rec.query)
	}
	var body struct {
		Minutes int `json:"minutes"`
	}
	if err := json.Unmarshal([]byte(rec.body), &body); err != nil || body.Minutes != 10 {
		t.Fatalf("body = %q, want {\"minutes\":10}", rec.body)
	}
	if ct := rec.header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q", ct)
	}
}

func TestAcknowledgeCarriesStage(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{}`)
	c := NewClient(srv.URL)

	if err := c.Acknowledge(7, "visual"); err != nil {
		t.Fatalf("Acknowledge: %v", err)
	}
	if rec.path != "/schedule/instances/7/acknowledge" || rec.query != "stage=visual" {
		t.Fatalf("request = %s?%s", rec.path, rec.query)
	}
}

func TestUpdateInstanceSendsOnlySetFields(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{"id": 7, "status": "paused"}`)
	c := NewClient(srv.URL)

	status := models.StatusPaused
	item, err := c.UpdateInstance(7, models.InstanceUpdate{Status: &status})
	if err != nil {
		t.Fatalf("UpdateInstance: %v", err)
	}
	if rec.method != http.MethodPut || rec.path != "/schedule/instances/7" {
		t.Fatalf("request = %s %s", rec.method, rec.path)
	}
	if strings.Contains(rec.body, "planned_start_time") {
		t.Fatalf("unset field leaked into body: %s", rec.body)
	}
	if item.Status != models.StatusPaused {
		t.Fatalf("item status = %s", item.Status)
	}
}

func TestAddNote(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{}`)
	c := NewClient(srv.URL)

	if err := c.AddNote(3, models.Note{NoteType: "snooze", Text: "call ran over"}); err != nil {
		t.Fatalf("AddNote: %v", err)
	}
	if rec.path != "/schedule/instances/3/notes" {
		t.Fatalf("path = %s", rec.path)
	}
	if !strings.Contains(rec.body, `"note_type":"snooze"`) {
		t.Fatalf("body = %s", rec.body)
	}
}

func TestRecentInteractionsLimit(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `[]`)
	c := NewClient(srv.URL)

	if _, err := c.RecentInteractions(50); err != nil {
		t.Fatalf("RecentInteractions: %v", err)
	}
	if rec.path != "/schedule/interactions/recent" || rec.query != "limit=50" {
		t.Fatalf("request = %s?%s", rec.path, rec.query)
	}
}

func TestAlertWordingEscapesCategory(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{"tone": "friendly", "text": "up next"}`)
	c := NewClient(srv.URL)

	w, err := c.AlertWording("deep work")
	if err != nil {
		t.Fatalf("AlertWording: %v", err)
	}
	if rec.path != "/schedule/alert-wordings/deep work" {
		t.Fatalf("path = %q", rec.path)
	}
	if w.Tone != "friendly" {
		t.Fatalf("wording = %+v", w)
	}
}

func TestErrorIncludesStatusAndBody(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusUnprocessableEntity, `{"detail": "start_time must be HH:MM"}`)
	c := NewClient(srv.URL)

	_, err := c.CreateAdhocToday(models.AdhocTask{Name: "x"})
	if err == nil {
		t.Fatal("expected error for 422 response")
	}
	if !strings.Contains(err.Error(), "HTTP 422") {
		t.Fatalf("error %q does not name the status", err)
	}
	if !strings.Contains(err.Error(), "start_time") {
		t.Fatalf("error %q drops the body excerpt", err)
	}
}

func TestSetBaseURLRepoints(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `[]`)
	c := NewClient("http://127.0.0.1:1/")

	if c.BaseURL() != "http://127.0.0.1:1" {
		t.Fatalf("BaseURL = %q, trailing slash kept", c.BaseURL())
	}
	c.SetBaseURL(srv.URL + "/")
	if _, err := c.Today(); err != nil {
		t.Fatalf("Today after SetBaseURL: %v", err)
	}
	if rec.path != "/schedule/today" {
		t.Fatalf("request went to %s", rec.path)
	}
}
