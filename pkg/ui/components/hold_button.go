package components

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const holdTickInterval = 50 * time.Millisecond

// HoldButton fires OnComplete once the user has kept it pressed for Hold.
// Releasing or leaving the button early resets the progress.
type HoldButton struct {
	widget.DisableableWidget
	Text       string
	Hold       time.Duration
	OnComplete func()

	holding  bool
	hovered  bool
	progress float64
	pressed  time.Time
	stop     chan struct{}
}

// NewHoldButton creates a new HoldButton
func NewHoldButton(text string, hold time.Duration, onComplete func()) *HoldButton {
	b := &HoldButton{
		Text:       text,
		Hold:       hold,
		OnComplete: onComplete,
	}
	b.ExtendBaseWidget(b)
	return b
}

// CreateRenderer implements fyne.Widget
func (b *HoldButton) CreateRenderer() fyne.WidgetRenderer {
	text := canvas.NewText(b.Text, theme.Color(theme.ColorNameForeground))
	text.Alignment = fyne.TextAlignCenter

	bg := canvas.NewRectangle(theme.Color(theme.ColorNameButton))
	progressBar := canvas.NewRectangle(theme.Color(theme.ColorNamePrimary))

	return &holdButtonRenderer{
		button:      b,
		text:        text,
		bg:          bg,
		progressBar: progressBar,
	}
}

// Progress returns how far the current hold has come, from 0 to 1
func (b *HoldButton) Progress() float64 {
	return b.progress
}

// Tapped implements fyne.Tappable
func (b *HoldButton) Tapped(*fyne.PointEvent) {}

// MouseIn implements desktop.Hoverable
func (b *HoldButton) MouseIn(*desktop.MouseEvent) {
	b.hovered = true
	b.Refresh()
}

// MouseMoved implements desktop.Hoverable
func (b *HoldButton) MouseMoved(*desktop.MouseEvent) {}

// MouseOut implements desktop.Hoverable
func (b *HoldButton) MouseOut() {
	b.hovered = false
	b.release()
}

// MouseDown implements desktop.Mouseable
func (b *HoldButton) MouseDown(*desktop.MouseEvent) {
	if !b.press(time.Now()) {
		return
	}

	stop := b.stop
	go func() {
		ticker := time.NewTicker(holdTickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case now := <-ticker.C:
				fyne.Do(func() {
					b.advance(now)
				})
			}
		}
	}()
}

// MouseUp implements desktop.Mouseable
func (b *HoldButton) MouseUp(*desktop.MouseEvent) {
	b.release()
}

func (b *HoldButton) press(now time.Time) bool {
	if b.holding || b.Disabled() {
		return false
	}
	b.holding = true
	b.pressed = now
	b.progress = 0
	b.stop = make(chan struct{})
	b.Refresh()
	return true
}

func (b *HoldButton) release() {
	if b.holding {
		b.holding = false
		close(b.stop)
	}
	b.progress = 0
	b.Refresh()
}

// advance moves the progress bar to now and fires OnComplete when full.
// It must run on the UI thread.
func (b *HoldButton) advance(now time.Time) {
	if !b.holding {
		return
	}

	if b.Hold <= 0 {
		b.progress = 1
	} else {
		b.progress = float64(now.Sub(b.pressed)) / float64(b.Hold)
	}
	if b.progress < 1 {
		b.Refresh()
		return
	}

	b.release()
	if b.OnComplete != nil {
		b.OnComplete()
	}
}

type holdButtonRenderer struct {
	button      *HoldButton
	text        *canvas.Text
	bg          *canvas.Rectangle
	progressBar *canvas.Rectangle
}

func (r *holdButtonRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.text.Resize(size)

	// Progress bar fills from left to right
	r.progressBar.Move(fyne.NewPos(0, 0))
	r.progressBar.Resize(fyne.NewSize(size.Width*float32(r.button.progress), size.Height))
}

func (r *holdButtonRenderer) MinSize() fyne.Size {
	textSize := r.text.MinSize()
	minWidth := textSize.Width + theme.Padding()*4
	minHeight := textSize.Height + theme.Padding()*2

	if minWidth < 240 {
		minWidth = 240
	}
	if minHeight < 60 {
		minHeight = 60
	}

	return fyne.NewSize(minWidth, minHeight)
}

func (r *holdButtonRenderer) Refresh() {
	r.text.Text = r.button.Text
	r.text.Color = theme.Color(theme.ColorNameForeground)
	r.progressBar.FillColor = theme.Color(theme.ColorNamePrimary)

	switch {
	case r.button.Disabled():
		r.bg.FillColor = theme.Color(theme.ColorNameDisabledButton)
		r.text.Color = theme.Color(theme.ColorNameDisabled)
	case r.button.hovered:
		r.bg.FillColor = theme.Color(theme.ColorNameHover)
	default:
		r.bg.FillColor = theme.Color(theme.ColorNameButton)
	}

	size := r.bg.Size()
	r.progressBar.Resize(fyne.NewSize(size.Width*float32(r.button.progress), size.Height))

	r.bg.Refresh()
	r.progressBar.Refresh()
	r.text.Refresh()
}

func (r *holdButtonRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bg, r.progressBar, r.text}
}

func (r *holdButtonRenderer) Destroy() {}

func (r *holdButtonRenderer) BackgroundColor() color.Color {
	return theme.Color(theme.ColorNameButton)
}
