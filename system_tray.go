package main

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/borgmon/puzzle-alarm/pkg/models"
)

const trayUpcomingLimit = 5

func (pa *PuzzleAlarm) setupSystemTray() {
	pa.updateSystemTrayMenu()
}

// toggleMute flips the mute setting and keeps an open settings window in step
func (pa *PuzzleAlarm) toggleMute() {
	cfg := *pa.config
	cfg.Muted = !cfg.Muted
	pa.applyConfig(&cfg)

	if pa.settingsWindow != nil {
		pa.settingsWindow.setMuted(cfg.Muted)
	}
}

func (pa *PuzzleAlarm) updateSystemTrayMenu() {
	desk, ok := pa.app.(desktop.App)
	if !ok {
		return
	}

	menuItems := []*fyne.MenuItem{}

	upcoming := pa.upcomingTodayAlarms(time.Now(), trayUpcomingLimit)
	if len(upcoming) > 0 {
		headerItem := fyne.NewMenuItem("Upcoming Today:", nil)
		headerItem.Disabled = true
		menuItems = append(menuItems, headerItem)

		for _, alarm := range upcoming {
			item := fyne.NewMenuItem(fmt.Sprintf("  %s - %s",
				alarm.Time.Format("15:04"),
				truncateString(alarm.SoundName(), 30)), nil)
			item.Disabled = true
			menuItems = append(menuItems, item)
		}

		menuItems = append(menuItems, fyne.NewMenuItemSeparator())
	}

	muteItem := fyne.NewMenuItem("Mute", func() {
		pa.toggleMute()
		pa.updateSystemTrayMenu()
	})
	muteItem.Checked = pa.scheduler.Muted()

	menuItems = append(menuItems,
		fyne.NewMenuItem("Show Clock", func() {
			if pa.mainWindow != nil {
				pa.mainWindow.Show()
				pa.mainWindow.window.RequestFocus()
			}
		}),
		fyne.NewMenuItem("Settings", func() {
			pa.showSettingsWindow()
		}),
		muteItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			pa.quit()
		}),
	)

	menu := fyne.NewMenu("Puzzle Alarm", menuItems...)
	desk.SetSystemTrayMenu(menu)
	desk.SetSystemTrayIcon(resourceIconPng)
}

// upcomingTodayAlarms returns the next alarms that ring before midnight
func (pa *PuzzleAlarm) upcomingTodayAlarms(now time.Time, limit int) []models.Alarm {
	midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	return pa.alarms.Upcoming(now, midnight, limit)
}

// truncateString truncates a string to maxLen characters, adding "..." if needed
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
