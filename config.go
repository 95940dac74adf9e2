package main

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
)

// Config holds the client-side settings. Alarm sound and volume live on the
// server so every client of the same backend escalates the same way; only
// presentation and machine-local options are kept here.
type Config struct {
	ServerURL       string `json:"server_url"`
	AutoStart       bool   `json:"auto_start"`
	HoldTimeSeconds int    `json:"hold_time_seconds"`
	SnoozePresets   string `json:"snooze_presets"`
	OverlayEnabled  bool   `json:"overlay_enabled"`
	OverlayMode     string `json:"overlay_mode"` // "auto" or "corner"
}

func loadConfig(app fyne.App) *Config {
	prefs := app.Preferences()

	return &Config{
		ServerURL:       prefs.StringWithFallback("server_url", "http://127.0.0.1:8000"),
		AutoStart:       prefs.BoolWithFallback("auto_start", false),
		HoldTimeSeconds: prefs.IntWithFallback("hold_time_seconds", 3),
		SnoozePresets:   prefs.StringWithFallback("snooze_presets", "5,10,15"),
		OverlayEnabled:  prefs.BoolWithFallback("overlay_enabled", true),
		OverlayMode:     prefs.StringWithFallback("overlay_mode", "auto"),
	}
}

func saveConfig(app fyne.App, config *Config) {
	prefs := app.Preferences()

	prefs.SetString("server_url", config.ServerURL)
	prefs.SetBool("auto_start", config.AutoStart)
	prefs.SetInt("hold_time_seconds", config.HoldTimeSeconds)
	prefs.SetString("snooze_presets", config.SnoozePresets)
	prefs.SetBool("overlay_enabled", config.OverlayEnabled)
	prefs.SetString("overlay_mode", config.OverlayMode)
}

// BaseURL returns the server URL without a trailing slash
func (c *Config) BaseURL() string {
	return strings.TrimRight(c.ServerURL, "/")
}

// GetSnoozePresets parses the comma-separated snooze minutes, dropping
// duplicates and non-positive values. Falls back to a single 5-minute
// preset if nothing parses.
func (c *Config) GetSnoozePresets() []int {
	minutes := []int{}
	seen := make(map[int]bool)

	for _, part := range strings.Split(c.SnoozePresets, ",") {
		part = strings.TrimSpace(part)
		if min, err := strconv.Atoi(part); err == nil {
			if min > 0 && !seen[min] {
				minutes = append(minutes, min)
				seen[min] = true
			}
		}
	}

	if len(minutes) == 0 {
		minutes = []int{5}
	}
	return minutes
}
