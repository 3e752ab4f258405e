package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/puzzle-alarm/pkg/audio"
)

var (
	hourOptions   = numberOptions(24)
	minuteOptions = numberOptions(60)
)

func numberOptions(n int) []string {
	options := make([]string, n)
	for i := range options {
		options[i] = fmt.Sprintf("%02d", i)
	}
	return options
}

// alarmForm holds the add-alarm inputs
type alarmForm struct {
	hour   *widget.Select
	minute *widget.Select
	sound  *widget.Entry
	active *widget.Check
}

func newAlarmForm(now time.Time) *alarmForm {
	f := &alarmForm{
		hour:   widget.NewSelect(hourOptions, nil),
		minute: widget.NewSelect(minuteOptions, nil),
		sound:  widget.NewEntry(),
		active: widget.NewCheck("Active", nil),
	}

	next := now.Add(time.Minute)
	f.hour.SetSelectedIndex(next.Hour())
	f.minute.SetSelectedIndex(next.Minute())
	f.sound.SetPlaceHolder("Default")
	f.active.SetChecked(true)

	return f
}

// values returns the chosen hour and minute. The selects only offer valid
// values, so parsing can only fail when nothing is selected.
func (f *alarmForm) values() (hour, minute int, err error) {
	hour, err = strconv.Atoi(f.hour.Selected)
	if err != nil {
		return 0, 0, fmt.Errorf("please choose an hour")
	}
	minute, err = strconv.Atoi(f.minute.Selected)
	if err != nil {
		return 0, 0, fmt.Errorf("please choose a minute")
	}
	return hour, minute, nil
}

// soundFor maps an empty sound entry to the configured default
func (pa *PuzzleAlarm) soundFor(text string) string {
	if s := strings.TrimSpace(text); s != "" {
		return s
	}
	return pa.config.DefaultSound
}

// previewSlot holds the sound preview of one dialog. Only the latest preview
// plays and nothing plays once the dialog is closed. UI thread only.
type previewSlot struct {
	handle audio.Handle
	closed bool
}

func (p *previewSlot) play(h audio.Handle) {
	p.stop()
	if p.closed {
		h.Stop()
		return
	}
	p.handle = h
}

func (p *previewSlot) stop() {
	if p.handle != nil {
		p.handle.Stop()
		p.handle = nil
	}
}

func (p *previewSlot) close() {
	p.closed = true
	p.stop()
}

func (mw *MainWindow) showAddAlarmDialog() {
	pa := mw.pa
	form := newAlarmForm(time.Now())

	previews := &previewSlot{}

	browseButton := widget.NewButtonWithIcon("Browse", theme.FolderOpenIcon(), func() {
		picker := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil {
				dialog.ShowError(err, mw.window)
				return
			}
			if reader == nil {
				return
			}
			defer reader.Close()
			form.sound.SetText(reader.URI().Path())
		}, mw.window)
		picker.SetFilter(storage.NewExtensionFileFilter([]string{".mp3", ".wav"}))
		picker.Show()
	})

	previewButton := widget.NewButtonWithIcon("Preview", theme.MediaPlayIcon(), func() {
		sound := pa.soundFor(form.sound.Text)
		h, err := pa.sounds.Preview(sound)
		if err != nil {
			previews.stop()
			pa.log.Warnw("preview failed", "sound", sound, "error", err)
			dialog.ShowError(fmt.Errorf("cannot play sound: %w", err), mw.window)
			return
		}
		previews.play(h)
	})

	soundRow := container.NewBorder(nil, nil, nil, container.NewHBox(browseButton, previewButton), form.sound)

	items := []*widget.FormItem{
		widget.NewFormItem("Hour", form.hour),
		widget.NewFormItem("Minute", form.minute),
		widget.NewFormItem("Sound", soundRow),
		widget.NewFormItem("", form.active),
	}

	d := dialog.NewForm("Add Alarm", "Create", "Cancel", items, func(confirmed bool) {
		previews.close()
		if !confirmed {
			return
		}

		hour, minute, err := form.values()
		if err != nil {
			dialog.ShowError(err, mw.window)
			return
		}

		alarm := pa.alarms.CreateAt(hour, minute, pa.soundFor(form.sound.Text), form.active.Checked)
		pa.log.Infow("alarm created",
			"alarm_id", alarm.ID,
			"time", alarm.Time.Format(time.RFC3339),
			"sound", alarm.SoundName(),
			"active", alarm.Active)

		pa.refresh()
	}, mw.window)
	d.Resize(fyne.NewSize(460, 300))
	d.Show()
}

func (mw *MainWindow) showImportDialog() {
	pa := mw.pa

	picker := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		count, err := pa.importCalendar(reader, time.Now())
		if err != nil {
			pa.log.Warnw("calendar import failed", "file", reader.URI().Name(), "error", err)
			dialog.ShowError(err, mw.window)
			return
		}

		dialog.ShowInformation("Calendar Imported",
			fmt.Sprintf("Added %d alarm(s) from %s.", count, reader.URI().Name()), mw.window)
	}, mw.window)
	picker.SetFilter(storage.NewExtensionFileFilter([]string{".ics"}))
	picker.Show()
}
