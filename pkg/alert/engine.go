// Package alert owns the live alert lifecycle: show an overlay for the
// instance that just became active, nag with spoken announcements, escalate
// to a continuous tone if nobody reacts, and resolve through dismiss, snooze
// or the instance disappearing from the schedule. The backend stays the
// source of truth; everything here is ephemeral session state.
package alert

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/otterlog/daypulse/pkg/models"
)

// Stage is the escalation level an alert had reached when it was resolved
type Stage string

const (
	StageVisual Stage = "visual" // overlay only
	StageAlarm  Stage = "alarm"  // the continuous tone had started
)

// Backend is the slice of the API client the engine needs
type Backend interface {
	StartInteraction(id int) error
	Acknowledge(id int, stage string) error
	Snooze(id, minutes int, stage string) error
	Speak(text string) error
	Today() ([]models.ScheduleItem, error)
}

// Presenter paints engine transitions into the UI. Implementations must be
// safe to call from any goroutine.
type Presenter interface {
	ShowAlert(item models.ScheduleItem)
	HideAlert()
	HistoryChanged()
}

// TonePlayer starts and stops the alarm tone. Start replaces any tone that
// is already playing; at most one plays at a time.
type TonePlayer interface {
	Start(sound string, volumePercent int) error
	Stop()
}

// Config bounds the escalation behavior
type Config struct {
	EscalationDelay     time.Duration // visual -> alarm delay
	MaxAnnounceRepeats  int           // spoken announcements per alert
	MinAnnounceInterval time.Duration // floor for the announcement interval
}

// DefaultConfig escalates to a tone after one undismissed minute, with up
// to ten spoken announcements before that.
func DefaultConfig() Config {
	return Config{
		EscalationDelay:     60 * time.Second,
		MaxAnnounceRepeats:  10,
		MinAnnounceInterval: 3 * time.Second,
	}
}

func (c Config) announceInterval() time.Duration {
	interval := c.EscalationDelay / time.Duration(c.MaxAnnounceRepeats)
	if interval < c.MinAnnounceInterval {
		interval = c.MinAnnounceInterval
	}
	return interval
}

// session is the state of one visible alert. A new session replaces the
// previous one; stopSessionLocked is the single place all its timers die.
type session struct {
	item         models.ScheduleItem
	escalation   *time.Timer
	announceQuit chan struct{}
	alarmOn      bool
}

// Engine coordinates alert sessions and snooze re-alerts
type Engine struct {
	cfg       Config
	backend   Backend
	tone      TonePlayer
	presenter Presenter

	mu            sync.Mutex
	alarmCfg      models.AlarmConfig
	lastAlertedID int
	current       *session
	snoozeTimers  map[int]*time.Timer
	stopped       bool
}

func NewEngine(cfg Config, backend Backend, tone TonePlayer, presenter Presenter) *Engine {
	if cfg.MaxAnnounceRepeats <= 0 {
		cfg = DefaultConfig()
	}
	return &Engine{
		cfg:          cfg,
		backend:      backend,
		tone:         tone,
		presenter:    presenter,
		alarmCfg:     models.AlarmConfig{Sound: "beep", VolumePercent: 12},
		snoozeTimers: make(map[int]*time.Timer),
	}
}

// SetAlarmConfig updates the sound used when an alert escalates
func (e *Engine) SetAlarmConfig(cfg models.AlarmConfig) {
	e.mu.Lock()
	e.alarmCfg = cfg
	e.mu.Unlock()
}

// LastAlertedID reports which instance most recently triggered an alert. The
// renderer uses it as the duplicate-alert guard: a still-active instance that
// was already alerted (and possibly acknowledged) must not alert again.
func (e *Engine) LastAlertedID() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastAlertedID
}

// Show starts an alert session for the given instance: overlay, spoken
// announcement loop, armed escalation timer, and a fire-and-forget
// interaction-start record. Showing a different instance replaces the
// current session and all its timers.
func (e *Engine) Show(item models.ScheduleItem) {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	if e.current != nil && e.current.item.ID == item.ID {
		e.mu.Unlock()
		return
	}
	e.stopSessionLocked()
	s := &session{item: item, announceQuit: make(chan struct{})}
	e.current = s
	e.lastAlertedID = item.ID
	s.escalation = time.AfterFunc(e.cfg.EscalationDelay, func() { e.escalate(s) })
	e.mu.Unlock()

	e.presenter.ShowAlert(item)
	go func() {
		if err := e.backend.StartInteraction(item.ID); err != nil {
			log.Printf("Failed to log interaction start for instance %d: %v", item.ID, err)
		}
	}()
	go e.announceLoop(s)
}

// announceLoop speaks the alert immediately and then repeats on a fixed
// interval, stopping on its own after the configured repeat count so an
// unattended alert does not nag forever once the tone has taken over.
func (e *Engine) announceLoop(s *session) {
	text := AnnouncementText(s.item)
	announce := func() {
		if err := e.backend.Speak(text); err != nil {
			log.Printf("Spoken announcement failed: %v", err)
		}
	}

	announce()
	count := 1

	ticker := time.NewTicker(e.cfg.announceInterval())
	defer ticker.Stop()
	for count < e.cfg.MaxAnnounceRepeats {
		select {
		case <-s.announceQuit:
			return
		case <-ticker.C:
			announce()
			count++
		}
	}
}

// escalate fires once, when the escalation timer elapses without a dismissal
func (e *Engine) escalate(s *session) {
	e.mu.Lock()
	if e.current != s {
		e.mu.Unlock()
		return
	}
	cfg := e.alarmCfg
	e.mu.Unlock()

	err := e.tone.Start(cfg.Sound, cfg.VolumePercent)

	e.mu.Lock()
	if e.current != s {
		// Resolved while the tone was starting; kill it again.
		e.mu.Unlock()
		if err == nil {
			e.tone.Stop()
		}
		return
	}
	if err == nil {
		s.alarmOn = true
	}
	e.mu.Unlock()

	if err != nil {
		log.Printf("Failed to start alarm tone: %v", err)
	}
}

// Dismiss acknowledges the visible alert. The stage sent to the backend is
// "alarm" exactly when the tone had already started. The last-alerted guard
// is kept so the same still-active instance does not immediately re-alert.
func (e *Engine) Dismiss() {
	e.mu.Lock()
	s := e.current
	if s == nil {
		e.mu.Unlock()
		return
	}
	id := s.item.ID
	stage := StageVisual
	if s.alarmOn {
		stage = StageAlarm
	}
	e.clearSnoozeLocked(id)
	e.stopSessionLocked()
	e.mu.Unlock()

	e.presenter.HideAlert()
	go func() {
		if err := e.backend.Acknowledge(id, string(stage)); err != nil {
			log.Printf("Failed to acknowledge alert for instance %d: %v", id, err)
			return
		}
		e.presenter.HistoryChanged()
	}()
}

// Snooze defers an instance by the given minutes and schedules exactly one
// local re-alert check. Unlike the engine's background calls this is a direct
// user action, so the request error is returned for the UI to surface.
func (e *Engine) Snooze(item models.ScheduleItem, minutes int) error {
	e.mu.Lock()
	stage := StageVisual
	if e.current != nil && e.current.alarmOn {
		stage = StageAlarm
	}
	e.mu.Unlock()

	if err := e.backend.Snooze(item.ID, minutes, string(stage)); err != nil {
		return err
	}

	e.mu.Lock()
	e.stopSessionLocked()
	e.clearSnoozeLocked(item.ID)
	if !e.stopped {
		id := item.ID
		e.snoozeTimers[id] = time.AfterFunc(time.Duration(minutes)*time.Minute, func() {
			e.realert(id)
		})
	}
	e.mu.Unlock()

	e.presenter.HideAlert()
	return nil
}

// realert runs when a snooze period ends: re-fetch the schedule and show the
// alert again only if the same instance is still active or paused.
func (e *Engine) realert(id int) {
	defer func() {
		e.mu.Lock()
		delete(e.snoozeTimers, id)
		e.mu.Unlock()
	}()

	items, err := e.backend.Today()
	if err != nil {
		log.Printf("Failed to reload schedule after snooze: %v", err)
		return
	}
	for i := range items {
		if items[i].ID != id {
			continue
		}
		if items[i].Status == models.StatusActive || items[i].Status == models.StatusPaused {
			e.mu.Lock()
			// Force a fresh session even though this id already alerted.
			if e.current != nil && e.current.item.ID == id {
				e.mu.Unlock()
				return
			}
			e.mu.Unlock()
			e.Show(items[i])
		}
		return
	}
}

// HideInactive force-hides the alert when a poll shows no active or paused
// instance anymore, covering server-side cancellation or completion while
// the overlay was up.
func (e *Engine) HideInactive() {
	e.mu.Lock()
	if e.current == nil {
		e.mu.Unlock()
		return
	}
	e.stopSessionLocked()
	e.mu.Unlock()
	e.presenter.HideAlert()
}

// Stop disposes the engine: the visible session, its timers and tone, and
// every pending snooze re-alert.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopped = true
	for id, timer := range e.snoozeTimers {
		timer.Stop()
		delete(e.snoozeTimers, id)
	}
	e.stopSessionLocked()
}

// stopSessionLocked tears down the current session: escalation timer,
// announcement loop and tone. Every exit path of a session goes through
// here so no timer can fire against stale state. Caller holds e.mu.
func (e *Engine) stopSessionLocked() {
	s := e.current
	if s == nil {
		return
	}
	if s.escalation != nil {
		s.escalation.Stop()
	}
	close(s.announceQuit)
	e.tone.Stop()
	e.current = nil
}

func (e *Engine) clearSnoozeLocked(id int) {
	if timer, ok := e.snoozeTimers[id]; ok {
		timer.Stop()
		delete(e.snoozeTimers, id)
	}
}

// AnnouncementText builds the spoken phrasing for an alert
func AnnouncementText(item models.ScheduleItem) string {
	name := item.TaskName
	if name == "" {
		name = "your task"
	}
	start := item.StartClock()
	end := item.EndClock()
	switch {
	case start != "" && end != "":
		return fmt.Sprintf("Time to switch: %s, %s to %s.", name, start, end)
	case start != "":
		return fmt.Sprintf("Time to switch: %s, starting at %s.", name, start)
	default:
		return fmt.Sprintf("Time to switch: %s.", name)
	}
}
