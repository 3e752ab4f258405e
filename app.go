package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"fyne.io/fyne/v2"
	"go.uber.org/zap"

	"github.com/borgmon/puzzle-alarm/pkg/audio"
	"github.com/borgmon/puzzle-alarm/pkg/calendar"
	"github.com/borgmon/puzzle-alarm/pkg/models"
	"github.com/borgmon/puzzle-alarm/pkg/scheduler"
	"github.com/borgmon/puzzle-alarm/pkg/store"
	"github.com/borgmon/puzzle-alarm/pkg/ui/themes"
)

// PuzzleAlarm owns the application state. Alarm and session mutations all
// happen on the fyne UI thread.
type PuzzleAlarm struct {
	app         fyne.App
	log         *zap.SugaredLogger
	config      *models.Config
	configStore *store.ConfigStore
	alarms      *store.AlarmStore
	sounds      *audio.Engine
	scheduler   *scheduler.Scheduler
	importer    *calendar.Importer

	mainWindow     *MainWindow
	settingsWindow *SettingsWindow
	puzzleWindows  map[string]*PuzzleWindow
	cancel         context.CancelFunc
}

func newPuzzleAlarm(a fyne.App, defaults *models.Config, log *zap.SugaredLogger) *PuzzleAlarm {
	pa := &PuzzleAlarm{
		app:           a,
		log:           log,
		configStore:   store.NewConfigStore(a, defaults),
		alarms:        store.NewAlarmStore(),
		importer:      calendar.NewImporter(time.Local, log.Named("calendar")),
		puzzleWindows: make(map[string]*PuzzleWindow),
	}
	pa.config = pa.configStore.Load()

	pa.sounds = audio.NewEngine(audio.NewLoader(resourceAlarmWav.Content()), log.Named("audio"))
	pa.scheduler = scheduler.New(pa.alarms, scheduler.Options{
		Sounds:        pa.sounds,
		Presenter:     pa,
		SnoozeMinutes: pa.config.SnoozeMinutes,
		Muted:         pa.config.Muted,
		Logger:        log.Named("scheduler"),
	})
	pa.scheduler.OnChange(pa.refresh)

	return pa
}

func (pa *PuzzleAlarm) run() {
	ctx, cancel := context.WithCancel(context.Background())
	pa.cancel = cancel

	pa.app.SetIcon(resourceIconPng)
	pa.applyTheme(pa.config.Theme)

	// Sync autostart state with config on startup
	if err := setupAutostart(pa.config.AutoStart, pa.log); err != nil {
		pa.log.Warnw("failed to setup autostart", "error", err)
	}

	pa.mainWindow = NewMainWindow(pa)
	pa.setupSystemTray()

	pa.app.Lifecycle().SetOnStarted(func() {
		pa.scheduler.Run(ctx, scheduler.NewIntervalTicker(pa.config.TickInterval, fyne.Do))

		clock := scheduler.NewIntervalTicker(models.DefaultTickInterval, fyne.Do)
		clock.Start(ctx, pa.mainWindow.clock.SetTime)
	})
	pa.app.Lifecycle().SetOnStopped(func() {
		pa.scheduler.Silence()
	})

	pa.mainWindow.Show()
	pa.app.Run()
}

// Present implements scheduler.Presenter
func (pa *PuzzleAlarm) Present(sess *scheduler.Session) {
	pw := NewPuzzleWindow(pa.app, sess, pa.config.SnoozeHoldSeconds, pa.scheduler.SnoozeMinutes, pa.log.Named("puzzle"))
	pa.puzzleWindows[sess.ID] = pw
	sess.OnResolved(func(scheduler.State) {
		delete(pa.puzzleWindows, sess.ID)
	})
	pw.Show()
}

// refresh redraws everything that shows alarms
func (pa *PuzzleAlarm) refresh() {
	if pa.mainWindow != nil {
		pa.mainWindow.refreshAlarms()
	}
	pa.updateSystemTrayMenu()
}

func (pa *PuzzleAlarm) applyTheme(name string) {
	th := themes.New(name)
	pa.app.Settings().SetTheme(th)
	if pa.mainWindow != nil {
		pa.mainWindow.clock.SetColors(th.Colors())
	}
}

// applyConfig makes a changed configuration take effect
func (pa *PuzzleAlarm) applyConfig(cfg *models.Config) {
	previous := pa.config
	pa.config = cfg
	pa.configStore.Save(cfg)

	pa.scheduler.SetSnoozeMinutes(cfg.SnoozeMinutes)
	pa.scheduler.SetMuted(cfg.Muted)
	if previous == nil || previous.Theme != cfg.Theme {
		pa.applyTheme(cfg.Theme)
	}

	pa.log.Infow("settings applied",
		"snooze_minutes", cfg.SnoozeMinutes,
		"theme", cfg.Theme,
		"muted", cfg.Muted,
		"auto_start", cfg.AutoStart)
}

// importCalendar adds one active alarm per upcoming calendar entry
func (pa *PuzzleAlarm) importCalendar(r io.Reader, now time.Time) (int, error) {
	entries, err := pa.importer.Parse(r, now)
	if err != nil {
		return 0, fmt.Errorf("import calendar: %w", err)
	}

	for _, entry := range entries {
		alarm := pa.alarms.Create(entry.Time, pa.config.DefaultSound, true)
		pa.log.Debugw("alarm imported",
			"alarm_id", alarm.ID,
			"title", entry.Title,
			"time", alarm.Time.Format(time.RFC3339))
	}
	if len(entries) > 0 {
		pa.refresh()
	}

	return len(entries), nil
}

func (pa *PuzzleAlarm) showSettingsWindow() {
	if pa.settingsWindow != nil {
		pa.settingsWindow.window.RequestFocus()
		pa.settingsWindow.window.Show()
		return
	}

	pa.settingsWindow = NewSettingsWindow(pa.app, pa.config, pa.applyConfig, pa.log)
	pa.settingsWindow.window.SetOnClosed(func() {
		pa.settingsWindow = nil
	})
	pa.settingsWindow.Show()
}

func (pa *PuzzleAlarm) quit() {
	if pa.cancel != nil {
		pa.cancel()
	}
	pa.scheduler.Silence()
	pa.app.Quit()
}
