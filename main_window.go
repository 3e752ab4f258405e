package main

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/puzzle-alarm/pkg/models"
	"github.com/borgmon/puzzle-alarm/pkg/ui/themes"
)

var alarmColumns = []string{"Time", "Sound", "Active"}

// MainWindow shows the clock and the alarm table
type MainWindow struct {
	pa     *PuzzleAlarm
	window fyne.Window
	clock  *ClockFace

	alarmsTable *widget.Table
	alarmsData  []models.Alarm
	selectedRow int
	statusLabel *widget.Label
}

func NewMainWindow(pa *PuzzleAlarm) *MainWindow {
	mw := &MainWindow{
		pa:          pa,
		selectedRow: -1,
	}

	mw.window = pa.app.NewWindow("Puzzle Alarm")
	mw.clock = NewClockFace(themes.Lookup(pa.config.Theme))
	mw.buildUI()
	mw.window.Resize(fyne.NewSize(480, 720))

	// Keep alarms running from the tray when there is one
	if _, ok := pa.app.(desktop.App); ok {
		mw.window.SetCloseIntercept(func() {
			mw.window.Hide()
		})
	}
	mw.window.SetMaster()

	return mw
}

func (mw *MainWindow) buildUI() {
	mw.alarmsData = mw.pa.alarms.List()

	table := widget.NewTable(
		func() (rows int, cols int) {
			return len(mw.alarmsData), len(alarmColumns)
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("Template")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			if id.Row >= len(mw.alarmsData) {
				label.SetText("")
				return
			}

			alarm := mw.alarmsData[id.Row]
			label.SetText(alarmCell(alarm, id.Col))

			if alarm.Active {
				label.Importance = widget.MediumImportance
			} else {
				label.Importance = widget.LowImportance
			}
		},
	)

	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		label := widget.NewLabel("Header")
		label.TextStyle.Bold = true
		return label
	}
	table.UpdateHeader = func(id widget.TableCellID, obj fyne.CanvasObject) {
		if id.Col >= 0 && id.Col < len(alarmColumns) {
			obj.(*widget.Label).SetText(alarmColumns[id.Col])
		}
	}
	table.OnSelected = func(id widget.TableCellID) {
		mw.selectedRow = id.Row
	}
	table.SetColumnWidth(0, 140)
	table.SetColumnWidth(1, 180)
	table.SetColumnWidth(2, 80)
	mw.alarmsTable = table

	addButton := widget.NewButtonWithIcon("Add Alarm", theme.ContentAddIcon(), func() {
		mw.showAddAlarmDialog()
	})
	toggleButton := widget.NewButtonWithIcon("On/Off", theme.MediaPlayIcon(), func() {
		mw.toggleSelected()
	})
	deleteButton := widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), func() {
		mw.deleteSelected()
	})
	importButton := widget.NewButtonWithIcon("Import", theme.FolderOpenIcon(), func() {
		mw.showImportDialog()
	})
	settingsButton := widget.NewButtonWithIcon("Settings", theme.SettingsIcon(), func() {
		mw.pa.showSettingsWindow()
	})

	mw.statusLabel = widget.NewLabel("")
	mw.statusLabel.Alignment = fyne.TextAlignCenter
	mw.updateStatus()

	buttons := container.NewGridWithColumns(5, addButton, toggleButton, deleteButton, importButton, settingsButton)

	top := container.NewVBox(
		container.NewCenter(mw.clock),
		mw.statusLabel,
		widget.NewSeparator(),
	)

	mw.window.SetContent(container.NewPadded(container.NewBorder(top, buttons, nil, nil, table)))
}

// alarmCell formats one table cell
func alarmCell(alarm models.Alarm, col int) string {
	switch col {
	case 0:
		if sameDay(alarm.Time, time.Now()) {
			return alarm.Time.Format("15:04")
		}
		return alarm.Time.Format("Mon 15:04")
	case 1:
		return alarm.SoundName()
	case 2:
		if alarm.Active {
			return "Yes"
		}
		return "No"
	}
	return ""
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (mw *MainWindow) refreshAlarms() {
	mw.alarmsData = mw.pa.alarms.List()
	if mw.selectedRow >= len(mw.alarmsData) {
		mw.selectedRow = -1
		mw.alarmsTable.UnselectAll()
	}
	mw.alarmsTable.Refresh()
	mw.updateStatus()
}

func (mw *MainWindow) updateStatus() {
	upcoming := mw.pa.alarms.Upcoming(time.Now(), time.Time{}, 1)
	switch {
	case len(mw.pa.scheduler.Sessions()) > 0:
		mw.statusLabel.SetText("Alarm ringing: solve the puzzle to stop it")
	case len(upcoming) == 0:
		mw.statusLabel.SetText("No active alarms")
	default:
		mw.statusLabel.SetText(fmt.Sprintf("Next alarm: %s", upcoming[0].Time.Format("Mon Jan 2, 15:04")))
	}
}

func (mw *MainWindow) selectedAlarm() (models.Alarm, bool) {
	if mw.selectedRow < 0 || mw.selectedRow >= len(mw.alarmsData) {
		dialog.ShowInformation("No Selection", "Please select an alarm from the table first.", mw.window)
		return models.Alarm{}, false
	}
	return mw.alarmsData[mw.selectedRow], true
}

func (mw *MainWindow) toggleSelected() {
	alarm, ok := mw.selectedAlarm()
	if !ok {
		return
	}
	if alarm.Handling {
		dialog.ShowInformation("Alarm Ringing", "Solve or snooze the puzzle first.", mw.window)
		return
	}

	if _, err := mw.pa.alarms.SetActive(alarm.ID, !alarm.Active); err != nil {
		dialog.ShowError(err, mw.window)
		return
	}
	mw.pa.refresh()
}

func (mw *MainWindow) deleteSelected() {
	alarm, ok := mw.selectedAlarm()
	if !ok {
		return
	}
	if alarm.Handling {
		dialog.ShowInformation("Alarm Ringing", "Solve or snooze the puzzle first.", mw.window)
		return
	}

	if err := mw.pa.alarms.Remove(alarm.ID); err != nil {
		dialog.ShowError(err, mw.window)
		return
	}
	mw.selectedRow = -1
	mw.alarmsTable.UnselectAll()
	mw.pa.refresh()
}

func (mw *MainWindow) Show() {
	mw.window.Show()
}
