package main

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/borgmon/puzzle-alarm/pkg/models"
	"github.com/borgmon/puzzle-alarm/pkg/ui/themes"
)

var snoozeOptions = []string{"1 min", "2 min", "3 min", "5 min", "10 min", "15 min", "20 min", "30 min", "45 min", "60 min"}

// SettingsWindow edits the runtime settings
type SettingsWindow struct {
	window fyne.Window
	config *models.Config
	onSave func(*models.Config)
	log    *zap.SugaredLogger

	snoozeSelect   *widget.Select
	themeSelect    *widget.Select
	holdSelect     *widget.Select
	muteCheck      *widget.Check
	autoStartCheck *widget.Check
	soundEntry     *widget.Entry

	saveButton      *widget.Button
	saveStatusLabel *widget.Label
}

func NewSettingsWindow(app fyne.App, config *models.Config, onSave func(*models.Config), log *zap.SugaredLogger) *SettingsWindow {
	sw := &SettingsWindow{
		config: config,
		onSave: onSave,
		log:    log,
	}

	sw.window = app.NewWindow("Puzzle Alarm - Settings")
	sw.buildUI()

	return sw
}

func (sw *SettingsWindow) buildUI() {
	sw.snoozeSelect = widget.NewSelect(snoozeOptions, nil)
	sw.snoozeSelect.SetSelected(minutesLabel(sw.config.SnoozeMinutes))

	// Themes apply as soon as they are picked
	sw.themeSelect = widget.NewSelect(themes.Names(), func(string) {
		sw.save()
	})
	sw.themeSelect.SetSelected(sw.config.Theme)

	holdOptions := []string{"0 sec (tap)"}
	for i := 1; i <= models.MaxSnoozeHoldSeconds; i++ {
		holdOptions = append(holdOptions, fmt.Sprintf("%d sec", i))
	}
	sw.holdSelect = widget.NewSelect(holdOptions, nil)
	sw.holdSelect.SetSelectedIndex(sw.config.SnoozeHoldSeconds)

	sw.muteCheck = widget.NewCheck("Mute alarm sounds", nil)
	sw.muteCheck.SetChecked(sw.config.Muted)

	sw.autoStartCheck = widget.NewCheck("Launch at login", nil)
	sw.autoStartCheck.SetChecked(sw.config.AutoStart)

	sw.soundEntry = widget.NewEntry()
	sw.soundEntry.SetPlaceHolder("Default")
	if sw.config.DefaultSound != models.DefaultSound {
		sw.soundEntry.SetText(sw.config.DefaultSound)
	}

	form := container.New(layout.NewFormLayout(),
		widget.NewLabel("Snooze time:"), sw.snoozeSelect,
		widget.NewLabel("Snooze hold:"), sw.holdSelect,
		widget.NewLabel("Theme:"), sw.themeSelect,
		widget.NewLabel("Default sound:"), sw.soundEntry,
		widget.NewLabel("Sound:"), sw.muteCheck,
		widget.NewLabel("Auto start:"), sw.autoStartCheck,
	)

	sw.saveStatusLabel = widget.NewLabel("")
	sw.saveStatusLabel.Importance = widget.SuccessImportance

	sw.saveButton = widget.NewButton("Save", func() {
		sw.save()
	})
	sw.saveButton.Importance = widget.HighImportance

	closeButton := widget.NewButton("Close", func() {
		sw.window.Close()
	})

	buttonRow := container.NewBorder(nil, nil,
		container.NewHBox(sw.saveButton, sw.saveStatusLabel),
		closeButton,
	)

	content := container.NewBorder(
		nil,
		container.NewPadded(buttonRow),
		nil,
		nil,
		container.NewVBox(widget.NewLabel("Settings"), widget.NewSeparator(), form),
	)

	sw.window.SetContent(container.NewPadded(content))
	sw.window.Resize(fyne.NewSize(480, 360))
	sw.window.CenterOnScreen()
}

func minutesLabel(m int) string {
	return strconv.Itoa(m) + " min"
}

// parseLeadingInt reads the number at the start of a select option
func parseLeadingInt(option string, fallback int) int {
	var v int
	if _, err := fmt.Sscanf(option, "%d", &v); err != nil {
		return fallback
	}
	return v
}

func (sw *SettingsWindow) configFromUI() *models.Config {
	cfg := *sw.config

	cfg.SnoozeMinutes = parseLeadingInt(sw.snoozeSelect.Selected, sw.config.SnoozeMinutes)
	cfg.SnoozeHoldSeconds = parseLeadingInt(sw.holdSelect.Selected, sw.config.SnoozeHoldSeconds)
	if sw.themeSelect.Selected != "" {
		cfg.Theme = sw.themeSelect.Selected
	}
	cfg.Muted = sw.muteCheck.Checked
	cfg.AutoStart = sw.autoStartCheck.Checked
	cfg.DefaultSound = sw.soundEntry.Text
	cfg.Normalize()

	return &cfg
}

func (sw *SettingsWindow) save() {
	// SetSelected during buildUI fires the theme callback early
	if sw.saveButton == nil {
		return
	}

	newConfig := sw.configFromUI()
	autoStartChanged := newConfig.AutoStart != sw.config.AutoStart

	sw.config = newConfig
	if sw.onSave != nil {
		sw.onSave(newConfig)
	}

	if !autoStartChanged {
		sw.showStatus("Settings saved", widget.SuccessImportance)
		return
	}

	sw.saveButton.Disable()
	go func() {
		err := setupAutostart(newConfig.AutoStart, sw.log)
		fyne.Do(func() {
			sw.saveButton.Enable()
			if err != nil {
				sw.log.Errorw("error setting autostart", "error", err)
				sw.showStatus("Error: failed to set autostart", widget.DangerImportance)
				return
			}
			sw.showStatus("Settings saved", widget.SuccessImportance)
		})
	}()
}

// setMuted reflects a mute change made outside the window
func (sw *SettingsWindow) setMuted(muted bool) {
	cfg := *sw.config
	cfg.Muted = muted
	sw.config = &cfg
	sw.muteCheck.SetChecked(muted)
}

func (sw *SettingsWindow) showStatus(text string, importance widget.Importance) {
	sw.saveStatusLabel.SetText(text)
	sw.saveStatusLabel.Importance = importance
	sw.saveStatusLabel.Refresh()

	go func() {
		time.Sleep(3 * time.Second)
		fyne.Do(func() {
			if sw.saveStatusLabel.Text == text {
				sw.saveStatusLabel.SetText("")
			}
		})
	}()
}

func (sw *SettingsWindow) Show() {
	sw.window.Show()
}
