// Package themes holds the color schemes of the alarm clock and adapts them
// to fyne themes.
package themes

import (
	"image/color"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	BasicLight = "basic_light"
	BasicDark  = "basic_dark"
	Midnight   = "midnight"
	Sunrise    = "sunrise"
)

// Palette is one color scheme, written as hex strings
type Palette struct {
	Background  string
	Foreground  string
	ButtonBG    string
	ButtonFG    string
	ClockBG     string
	ClockFG     string
	HourHand    string
	MinuteHand  string
	SecondHand  string
	DarkVariant bool
}

var palettes = map[string]Palette{
	BasicLight: {
		Background: "#FFFFFF",
		Foreground: "#000000",
		ButtonBG:   "#D3D3D3",
		ButtonFG:   "#000000",
		ClockBG:    "#F0F0F0",
		ClockFG:    "#000000",
		HourHand:   "#000000",
		MinuteHand: "#000000",
		SecondHand: "#FF0000",
	},
	BasicDark: {
		Background:  "#333333",
		Foreground:  "#FFFFFF",
		ButtonBG:    "#555555",
		ButtonFG:    "#FFFFFF",
		ClockBG:     "#444444",
		ClockFG:     "#FFFFFF",
		HourHand:    "#FFFFFF",
		MinuteHand:  "#FFFFFF",
		SecondHand:  "#FF0000",
		DarkVariant: true,
	},
	Midnight: {
		Background:  "#191970",
		Foreground:  "#FFFFFF",
		ButtonBG:    "#4169E1",
		ButtonFG:    "#FFFFFF",
		ClockBG:     "#000080",
		ClockFG:     "#FFFFFF",
		HourHand:    "#FFFFFF",
		MinuteHand:  "#ADD8E6",
		SecondHand:  "#FF0000",
		DarkVariant: true,
	},
	Sunrise: {
		Background: "#FFDAB9",
		Foreground: "#000000",
		ButtonBG:   "#FFA500",
		ButtonFG:   "#000000",
		ClockBG:    "#FFFFE0",
		ClockFG:    "#000000",
		HourHand:   "#000000",
		MinuteHand: "#0000FF",
		SecondHand: "#FF0000",
	},
}

// Names returns the known theme names, sorted
func Names() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Exists reports whether name is a known theme
func Exists(name string) bool {
	_, ok := palettes[name]
	return ok
}

// Colors is a Palette resolved to concrete colors
type Colors struct {
	Background color.Color
	Foreground color.Color
	ButtonBG   color.Color
	ButtonFG   color.Color
	ClockBG    color.Color
	ClockFG    color.Color
	HourHand   color.Color
	MinuteHand color.Color
	SecondHand color.Color
	Hover      color.Color
	Input      color.Color
}

// Lookup resolves a theme by name, falling back to basic_light
func Lookup(name string) Colors {
	p, ok := palettes[name]
	if !ok {
		p = palettes[BasicLight]
	}
	return p.resolve()
}

func (p Palette) resolve() Colors {
	bg := parse(p.Background)
	fg := parse(p.Foreground)
	button := parse(p.ButtonBG)
	return Colors{
		Background: bg,
		Foreground: fg,
		ButtonBG:   button,
		ButtonFG:   parse(p.ButtonFG),
		ClockBG:    parse(p.ClockBG),
		ClockFG:    parse(p.ClockFG),
		HourHand:   parse(p.HourHand),
		MinuteHand: parse(p.MinuteHand),
		SecondHand: parse(p.SecondHand),
		Hover:      button.BlendLab(fg, 0.15).Clamped(),
		Input:      bg.BlendLab(fg, 0.08).Clamped(),
	}
}

func parse(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

// Theme is a fyne.Theme painting the app in one palette
type Theme struct {
	name   string
	colors Colors
	dark   bool
}

var _ fyne.Theme = (*Theme)(nil)

// New returns the fyne theme for name, falling back to basic_light
func New(name string) *Theme {
	if !Exists(name) {
		name = BasicLight
	}
	return &Theme{name: name, colors: Lookup(name), dark: palettes[name].DarkVariant}
}

// Name returns the palette name
func (t *Theme) Name() string {
	return t.name
}

// Colors returns the resolved palette
func (t *Theme) Colors() Colors {
	return t.colors
}

func (t *Theme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	variant := theme.VariantLight
	if t.dark {
		variant = theme.VariantDark
	}

	switch name {
	case theme.ColorNameBackground, theme.ColorNameOverlayBackground, theme.ColorNameMenuBackground:
		return t.colors.Background
	case theme.ColorNameForeground:
		return t.colors.Foreground
	case theme.ColorNameButton:
		return t.colors.ButtonBG
	case theme.ColorNameHover:
		return t.colors.Hover
	case theme.ColorNameInputBackground:
		return t.colors.Input
	case theme.ColorNameForegroundOnPrimary:
		return t.colors.ButtonFG
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (t *Theme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *Theme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *Theme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}
