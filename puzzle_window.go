package main

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/borgmon/puzzle-alarm/pkg/platform"
	"github.com/borgmon/puzzle-alarm/pkg/scheduler"
	"github.com/borgmon/puzzle-alarm/pkg/ui/components"
)

const focusCheckInterval = 500 * time.Millisecond

// PuzzleWindow presents one ringing alarm. It can only be closed by solving
// the puzzle or snoozing.
type PuzzleWindow struct {
	window      fyne.Window
	session     *scheduler.Session
	holdSeconds int
	snoozeMins  func() int
	log         *zap.SugaredLogger

	answer   *widget.Entry
	feedback *widget.Label
	snooze   *components.HoldButton
	guard    *quitGuard
}

func NewPuzzleWindow(app fyne.App, sess *scheduler.Session, holdSeconds int, snoozeMinutes func() int, log *zap.SugaredLogger) *PuzzleWindow {
	pw := &PuzzleWindow{
		session:     sess,
		holdSeconds: holdSeconds,
		snoozeMins:  snoozeMinutes,
		log:         log.With("alarm_id", sess.Alarm.ID, "session_id", sess.ID),
	}

	pw.window = app.NewWindow("Alarm")
	pw.buildUI()

	// Ignore the close button; the alarm has to be dealt with
	pw.window.SetCloseIntercept(func() {
		pw.feedback.SetText("Solve the puzzle or hold Snooze to dismiss the alarm")
	})

	pw.guard = newQuitGuard(pw.log)
	sess.OnResolved(func(state scheduler.State) {
		pw.guard.Unregister()
		pw.log.Infow("puzzle window closed", "state", state.String())
		pw.window.Close()
	})

	return pw
}

func (pw *PuzzleWindow) buildUI() {
	title := canvas.NewText(fmt.Sprintf("Alarm %s", pw.session.Alarm.Time.Format("15:04")), nil)
	title.TextSize = 32
	title.Alignment = fyne.TextAlignCenter

	question := widget.NewLabel(pw.session.Question())
	question.Alignment = fyne.TextAlignCenter
	question.TextStyle.Bold = true

	pw.answer = widget.NewEntry()
	pw.answer.SetPlaceHolder("Your answer")
	pw.answer.OnSubmitted = func(string) {
		pw.submit()
	}

	submitButton := widget.NewButton("Submit", func() {
		pw.submit()
	})
	submitButton.Importance = widget.HighImportance

	pw.feedback = widget.NewLabel("")
	pw.feedback.Alignment = fyne.TextAlignCenter
	pw.feedback.Importance = widget.DangerImportance

	pw.snooze = components.NewHoldButton(pw.snoozeLabel(), time.Duration(pw.holdSeconds)*time.Second, func() {
		pw.session.Snooze()
	})

	content := container.NewVBox(
		container.NewPadded(title),
		widget.NewSeparator(),
		question,
		pw.answer,
		container.NewCenter(submitButton),
		pw.feedback,
		widget.NewSeparator(),
		container.NewCenter(pw.snooze),
	)

	pw.window.SetContent(container.NewPadded(container.NewCenter(content)))
	pw.window.Resize(fyne.NewSize(420, 360))
}

func (pw *PuzzleWindow) snoozeLabel() string {
	if pw.holdSeconds <= 0 {
		return fmt.Sprintf("Snooze %dm", pw.snoozeMins())
	}
	return fmt.Sprintf("Snooze %dm (Hold %ds)", pw.snoozeMins(), pw.holdSeconds)
}

// submit checks the typed answer; a wrong one clears the field
func (pw *PuzzleWindow) submit() {
	if pw.session.Submit(pw.answer.Text) {
		return
	}

	pw.answer.SetText("")
	pw.feedback.SetText(fmt.Sprintf("Wrong answer, try again (%d)", pw.session.Attempts()))
	pw.window.Canvas().Focus(pw.answer)
}

// Show opens the window and keeps it in front until the session ends
func (pw *PuzzleWindow) Show() {
	pw.window.Show()
	pw.window.RequestFocus()
	pw.window.Canvas().Focus(pw.answer)

	pw.guard.Register()
	go pw.monitorFocus()
}

func (pw *PuzzleWindow) monitorFocus() {
	ticker := time.NewTicker(focusCheckInterval)
	defer ticker.Stop()

	wasFocused := true
	for {
		select {
		case <-pw.session.Done():
			return
		case <-ticker.C:
			focused := platform.Frontmost()

			switch {
			case wasFocused && !focused:
				pw.log.Debug("window lost focus, releasing quit guard")
				pw.guard.Unregister()
			case !wasFocused && focused:
				pw.log.Debug("window regained focus, holding quit guard")
				pw.guard.Register()
			}

			if !focused {
				platform.BringToFront()
				fyne.Do(func() {
					if pw.session.State() == scheduler.StatePlaying {
						pw.window.Show()
						pw.window.RequestFocus()
					}
				})
			}

			wasFocused = focused
		}
	}
}
