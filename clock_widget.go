package main

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/puzzle-alarm/pkg/clockface"
	"github.com/borgmon/puzzle-alarm/pkg/ui/themes"
)

// dial coordinates are laid out on a square of this side and scaled
const clockCanvasSize = 400

// ClockFace is the analog clock on the main window
type ClockFace struct {
	widget.BaseWidget

	now    time.Time
	colors themes.Colors
}

func NewClockFace(colors themes.Colors) *ClockFace {
	c := &ClockFace{now: time.Now(), colors: colors}
	c.ExtendBaseWidget(c)
	return c
}

// SetTime moves the hands to t
func (c *ClockFace) SetTime(t time.Time) {
	c.now = t
	c.Refresh()
}

// SetColors repaints the clock in a new palette
func (c *ClockFace) SetColors(colors themes.Colors) {
	c.colors = colors
	c.Refresh()
}

func (c *ClockFace) CreateRenderer() fyne.WidgetRenderer {
	r := &clockRenderer{
		clock:  c,
		dial:   canvas.NewCircle(color.Transparent),
		hour:   canvas.NewLine(color.Black),
		minute: canvas.NewLine(color.Black),
		second: canvas.NewLine(color.Black),
		hub:    canvas.NewCircle(color.Black),
	}
	r.dial.StrokeWidth = 2
	r.hour.StrokeWidth = 8
	r.minute.StrokeWidth = 4
	r.second.StrokeWidth = 2

	for _, tk := range clockface.Ticks(clockface.Point{}, clockface.Radius) {
		line := canvas.NewLine(color.Black)
		line.StrokeWidth = 1
		if tk.Major {
			line.StrokeWidth = 3
		}
		r.marks = append(r.marks, line)
	}

	r.Refresh()
	return r
}

type clockRenderer struct {
	clock  *ClockFace
	dial   *canvas.Circle
	marks  []*canvas.Line
	hour   *canvas.Line
	minute *canvas.Line
	second *canvas.Line
	hub    *canvas.Circle

	size fyne.Size
}

// toCanvas maps dial coordinates into the widget's current size
func (r *clockRenderer) toCanvas(p clockface.Point) fyne.Position {
	side := fyne.Min(r.size.Width, r.size.Height)
	scale := side / clockCanvasSize
	offX := (r.size.Width - side) / 2
	offY := (r.size.Height - side) / 2
	return fyne.NewPos(offX+float32(p.X)*scale, offY+float32(p.Y)*scale)
}

func (r *clockRenderer) Layout(size fyne.Size) {
	r.size = size
	r.place()
}

func (r *clockRenderer) place() {
	center := clockface.Point{X: clockCanvasSize / 2, Y: clockCanvasSize / 2}

	r.dial.Position1 = r.toCanvas(clockface.Point{X: center.X - clockface.Radius, Y: center.Y - clockface.Radius})
	r.dial.Position2 = r.toCanvas(clockface.Point{X: center.X + clockface.Radius, Y: center.Y + clockface.Radius})

	for i, tk := range clockface.Ticks(center, clockface.Radius) {
		r.marks[i].Position1 = r.toCanvas(tk.From)
		r.marks[i].Position2 = r.toCanvas(tk.To)
	}

	hour, minute, second := clockface.HandEnds(center, r.clock.now)
	origin := r.toCanvas(center)
	for line, end := range map[*canvas.Line]clockface.Point{r.hour: hour, r.minute: minute, r.second: second} {
		line.Position1 = origin
		line.Position2 = r.toCanvas(end)
	}

	r.hub.Position1 = r.toCanvas(clockface.Point{X: center.X - 5, Y: center.Y - 5})
	r.hub.Position2 = r.toCanvas(clockface.Point{X: center.X + 5, Y: center.Y + 5})
}

func (r *clockRenderer) MinSize() fyne.Size {
	return fyne.NewSize(320, 320)
}

func (r *clockRenderer) Refresh() {
	colors := r.clock.colors

	r.dial.FillColor = colors.ClockBG
	r.dial.StrokeColor = colors.ClockFG
	for _, mark := range r.marks {
		mark.StrokeColor = colors.ClockFG
	}
	r.hour.StrokeColor = colors.HourHand
	r.minute.StrokeColor = colors.MinuteHand
	r.second.StrokeColor = colors.SecondHand
	r.hub.FillColor = colors.HourHand

	r.place()
	for _, obj := range r.Objects() {
		canvas.Refresh(obj)
	}
}

func (r *clockRenderer) Objects() []fyne.CanvasObject {
	objects := []fyne.CanvasObject{r.dial}
	for _, mark := range r.marks {
		objects = append(objects, mark)
	}
	return append(objects, r.hour, r.minute, r.second, r.hub)
}

func (r *clockRenderer) Destroy() {}
