// Package clockface computes the geometry of the analog clock.
package clockface

import (
	"math"
	"time"
)

const (
	Radius           = 150
	HourHandLength   = 60
	MinuteHandLength = 100
	SecondHandLength = 120
	MajorTickInset   = 15
	MinorTickInset   = 10
)

// Point is a position on the canvas
type Point struct {
	X, Y float64
}

// Hands holds the angle of each hand in degrees, clockwise from twelve
type Hands struct {
	Hour   float64
	Minute float64
	Second float64
}

// Angles returns the hand angles for t. Hour and minute hands sweep
// continuously; the second hand jumps once per second.
func Angles(t time.Time) Hands {
	h, m, s := t.Clock()
	return Hands{
		Hour:   (float64(h%12) + float64(m)/60) * 30,
		Minute: (float64(m) + float64(s)/60) * 6,
		Second: float64(s) * 6,
	}
}

// Polar returns the point at length from center along angle degrees
func Polar(center Point, length, angle float64) Point {
	rad := angle * math.Pi / 180
	return Point{
		X: center.X + length*math.Sin(rad),
		Y: center.Y - length*math.Cos(rad),
	}
}

// Tick is one hour mark on the dial
type Tick struct {
	From, To Point
	Major    bool
}

// Ticks returns the twelve hour marks; every third one is a longer major mark
func Ticks(center Point, radius float64) []Tick {
	ticks := make([]Tick, 0, 12)
	for i := 0; i < 12; i++ {
		angle := float64(i * 30)
		major := i%3 == 0
		inset := float64(MinorTickInset)
		if major {
			inset = MajorTickInset
		}
		ticks = append(ticks, Tick{
			From:  Polar(center, radius-inset, angle),
			To:    Polar(center, radius, angle),
			Major: major,
		})
	}
	return ticks
}

// HandEnds returns the end points of the hour, minute and second hands
func HandEnds(center Point, t time.Time) (hour, minute, second Point) {
	a := Angles(t)
	return Polar(center, HourHandLength, a.Hour),
		Polar(center, MinuteHandLength, a.Minute),
		Polar(center, SecondHandLength, a.Second)
}
