package main

import (
	"log"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/otterlog/daypulse/pkg/audio"
	"github.com/otterlog/daypulse/pkg/models"
)

type SettingsWindow struct {
	window fyne.Window
	dp     *DayPulse
	config *Config
	onSave func(*Config)

	// General tab
	serverURLEntry     *widget.Entry
	autoStartCheck     *widget.Check
	holdTimeSelect     *widget.Select
	snoozePresetsEntry *widget.Entry

	// Alarm tab (server-side settings)
	soundSelect      *widget.Select
	volumeSlider     *widget.Slider
	volumeLabel      *widget.Label
	alarmStatusLabel *widget.Label
	alarmLoaded      bool

	// Overlay tab
	overlayEnabledCheck *widget.Check
	overlayModeSelect   *widget.Select

	hasUnsavedChanges bool
	saveStatusLabel   *widget.Label
	saveButton        *widget.Button
}

func NewSettingsWindow(dp *DayPulse, onSave func(*Config)) *SettingsWindow {
	sw := &SettingsWindow{
		dp:     dp,
		config: dp.config,
		onSave: onSave,
	}

	sw.window = dp.app.NewWindow("DayPulse - Settings")
	sw.buildUI()
	go sw.loadAlarmSettings()

	return sw
}

func (sw *SettingsWindow) buildUI() {
	tabs := container.NewAppTabs(
		container.NewTabItem("General", sw.buildGeneralTab()),
		container.NewTabItem("Alarm", sw.buildAlarmTab()),
		container.NewTabItem("Overlay", sw.buildOverlayTab()),
	)

	sw.saveStatusLabel = widget.NewLabel("")
	sw.saveStatusLabel.Importance = widget.SuccessImportance

	sw.saveButton = widget.NewButton("Save", func() {
		sw.save()
	})
	sw.saveButton.Importance = widget.HighImportance
	sw.saveButton.Disable()

	closeButton := widget.NewButton("Close", func() {
		sw.handleClose()
	})

	buttonRow := container.NewBorder(
		nil, nil,
		container.NewHBox(sw.saveButton, sw.saveStatusLabel),
		closeButton,
		container.NewHBox(),
	)

	sw.window.SetContent(container.NewBorder(
		nil,
		container.NewPadded(buttonRow),
		nil, nil,
		tabs,
	))
	sw.window.Resize(fyne.NewSize(640, 480))
	sw.window.CenterOnScreen()

	sw.window.SetCloseIntercept(func() {
		sw.handleClose()
	})
}

func (sw *SettingsWindow) buildGeneralTab() fyne.CanvasObject {
	sw.serverURLEntry = widget.NewEntry()
	sw.serverURLEntry.SetText(sw.config.ServerURL)
	sw.serverURLEntry.OnChanged = func(string) {
		sw.markChanged()
	}

	sw.autoStartCheck = widget.NewCheck("Auto Start on System Boot", func(bool) {
		sw.markChanged()
	})
	sw.autoStartCheck.SetChecked(sw.config.AutoStart)

	holdTimeOptions := []string{"1 sec", "2 sec", "3 sec", "4 sec", "5 sec"}
	sw.holdTimeSelect = widget.NewSelect(holdTimeOptions, func(string) {
		sw.markChanged()
	})
	holdTime := sw.config.HoldTimeSeconds
	if holdTime < 1 {
		holdTime = 3
	}
	if holdTime > 5 {
		holdTime = 5
	}
	sw.holdTimeSelect.SetSelected(strconv.Itoa(holdTime) + " sec")

	sw.snoozePresetsEntry = widget.NewEntry()
	sw.snoozePresetsEntry.SetText(sw.config.SnoozePresets)
	sw.snoozePresetsEntry.OnChanged = func(string) {
		sw.markChanged()
	}

	serverHelp := widget.NewLabel("Address of the scheduling backend")
	serverHelp.Importance = widget.MediumImportance
	snoozeHelp := widget.NewLabel("Comma-separated snooze minutes shown on alerts, e.g. 5,10,15")
	snoozeHelp.Importance = widget.MediumImportance

	form := container.New(layout.NewFormLayout(),
		widget.NewLabel("Server URL:"),
		container.NewVBox(sw.serverURLEntry, serverHelp),

		widget.NewLabel("Auto Start:"),
		sw.autoStartCheck,

		widget.NewLabel("Dismiss Hold Time:"),
		sw.holdTimeSelect,

		widget.NewLabel("Snooze Presets:"),
		container.NewVBox(sw.snoozePresetsEntry, snoozeHelp),
	)

	return container.NewPadded(container.NewVScroll(container.NewVBox(
		widget.NewLabel("General Settings"),
		widget.NewSeparator(),
		form,
	)))
}

func (sw *SettingsWindow) buildAlarmTab() fyne.CanvasObject {
	sw.soundSelect = widget.NewSelect([]string{"beep", "chime"}, func(string) {
		sw.markChanged()
	})

	sw.volumeLabel = widget.NewLabel("12%")
	sw.volumeSlider = widget.NewSlider(0, 100)
	sw.volumeSlider.Step = 1
	sw.volumeSlider.OnChanged = func(value float64) {
		sw.volumeLabel.SetText(strconv.Itoa(int(value)) + "%")
		sw.markChanged()
	}

	testButton := widget.NewButton("Test Sound", func() {
		sound := sw.soundSelect.Selected
		volume := int(sw.volumeSlider.Value)
		go func() {
			if err := audio.Preview(sound, volume, 2*time.Second); err != nil {
				log.Printf("Failed to preview alarm sound: %v", err)
			}
		}()
	})

	sw.alarmStatusLabel = widget.NewLabel("Loading alarm settings from server...")
	sw.alarmStatusLabel.Importance = widget.MediumImportance

	help := widget.NewLabel("The alarm sound plays when an alert stays undismissed for a minute. These settings are stored on the server.")
	help.Wrapping = fyne.TextWrapWord
	help.Importance = widget.MediumImportance

	form := container.New(layout.NewFormLayout(),
		widget.NewLabel("Sound:"),
		sw.soundSelect,

		widget.NewLabel("Volume:"),
		container.NewBorder(nil, nil, nil, sw.volumeLabel, sw.volumeSlider),
	)

	return container.NewPadded(container.NewVScroll(container.NewVBox(
		widget.NewLabel("Alarm Settings"),
		widget.NewSeparator(),
		help,
		form,
		container.NewHBox(testButton),
		sw.alarmStatusLabel,
	)))
}

func (sw *SettingsWindow) buildOverlayTab() fyne.CanvasObject {
	sw.overlayEnabledCheck = widget.NewCheck("Show the Now & Next overlay", func(bool) {
		sw.markChanged()
	})
	sw.overlayEnabledCheck.SetChecked(sw.config.OverlayEnabled)

	sw.overlayModeSelect = widget.NewSelect([]string{"auto", "corner"}, func(string) {
		sw.markChanged()
	})
	mode := sw.config.OverlayMode
	if mode != "corner" {
		mode = "auto"
	}
	sw.overlayModeSelect.SetSelected(mode)

	help := widget.NewLabel("Auto shows the overlay after a few idle seconds and hides it when you interact. Corner keeps it visible whenever there is something to show.")
	help.Wrapping = fyne.TextWrapWord
	help.Importance = widget.MediumImportance

	form := container.New(layout.NewFormLayout(),
		widget.NewLabel("Enabled:"),
		sw.overlayEnabledCheck,

		widget.NewLabel("Mode:"),
		sw.overlayModeSelect,
	)

	return container.NewPadded(container.NewVScroll(container.NewVBox(
		widget.NewLabel("Now & Next Overlay"),
		widget.NewSeparator(),
		help,
		form,
	)))
}

// loadAlarmSettings pulls the current server-side alarm config into the form
func (sw *SettingsWindow) loadAlarmSettings() {
	cfg, err := sw.dp.client.AlarmConfig()
	fyne.Do(func() {
		if err != nil {
			log.Printf("Failed to load alarm config: %v", err)
			sw.alarmStatusLabel.SetText("Could not load alarm settings from the server.")
			sw.alarmStatusLabel.Importance = widget.DangerImportance
			sw.alarmStatusLabel.Refresh()
			return
		}
		sw.alarmLoaded = true
		sw.soundSelect.SetSelected(cfg.Sound)
		sw.volumeSlider.SetValue(float64(cfg.VolumePercent))
		sw.volumeLabel.SetText(strconv.Itoa(cfg.VolumePercent) + "%")
		sw.alarmStatusLabel.SetText("")
		sw.alarmStatusLabel.Refresh()
		// Loading the form triggered markChanged; a fresh window is clean
		sw.hasUnsavedChanges = false
		sw.updateSaveButtonState()
	})
}

func (sw *SettingsWindow) getConfigFromUI() *Config {
	holdTime := 3
	if sw.holdTimeSelect.Selected != "" {
		if val, err := strconv.Atoi(sw.holdTimeSelect.Selected[:1]); err == nil {
			holdTime = val
		}
	}

	return &Config{
		ServerURL:       sw.serverURLEntry.Text,
		AutoStart:       sw.autoStartCheck.Checked,
		HoldTimeSeconds: holdTime,
		SnoozePresets:   sw.snoozePresetsEntry.Text,
		OverlayEnabled:  sw.overlayEnabledCheck.Checked,
		OverlayMode:     sw.overlayModeSelect.Selected,
	}
}

func (sw *SettingsWindow) save() {
	sw.saveButton.Disable()
	sw.saveStatusLabel.SetText("Saving...")
	sw.saveStatusLabel.Importance = widget.MediumImportance
	sw.saveStatusLabel.Refresh()

	newConfig := sw.getConfigFromUI()
	alarmCfg := models.AlarmConfig{
		Sound:         sw.soundSelect.Selected,
		VolumePercent: int(sw.volumeSlider.Value),
	}
	saveAlarm := sw.alarmLoaded

	go func() {
		if saveAlarm {
			saved, err := sw.dp.client.SaveAlarmConfig(alarmCfg)
			if err != nil {
				log.Printf("Failed to save alarm config: %v", err)
				fyne.Do(func() {
					sw.saveStatusLabel.SetText("Error: failed to save alarm settings")
					sw.saveStatusLabel.Importance = widget.DangerImportance
					sw.saveStatusLabel.Refresh()
					sw.updateSaveButtonState()
				})
				return
			}
			sw.dp.engine.SetAlarmConfig(saved)
		}

		fyne.Do(func() {
			if sw.onSave != nil {
				sw.onSave(newConfig)
			}
			sw.config = newConfig

			sw.hasUnsavedChanges = false
			sw.saveStatusLabel.SetText("Settings saved")
			sw.saveStatusLabel.Importance = widget.SuccessImportance
			sw.saveStatusLabel.Refresh()
			sw.updateSaveButtonState()

			go func() {
				time.Sleep(3 * time.Second)
				fyne.Do(func() {
					if sw.saveStatusLabel.Text == "Settings saved" {
						sw.saveStatusLabel.SetText("")
						sw.saveStatusLabel.Refresh()
					}
				})
			}()
		})
	}()
}

func (sw *SettingsWindow) Show() {
	sw.window.Show()
}

func (sw *SettingsWindow) markChanged() {
	sw.hasUnsavedChanges = true
	sw.updateSaveButtonState()
}

func (sw *SettingsWindow) updateSaveButtonState() {
	if sw.hasUnsavedChanges {
		sw.saveButton.Enable()
	} else {
		sw.saveButton.Disable()
	}
}

func (sw *SettingsWindow) handleClose() {
	if !sw.hasUnsavedChanges {
		sw.window.Close()
		return
	}

	dialog.ShowConfirm("Unsaved Changes",
		"You have unsaved changes. Close without saving?",
		func(confirmed bool) {
			if confirmed {
				sw.window.Close()
			}
		}, sw.window)
}
