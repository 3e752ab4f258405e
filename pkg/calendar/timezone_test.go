package calendar

import (
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWindowsTimezone(t *testing.T) {
	comp := ical.NewComponent(ical.CompEvent)
	prop := ical.NewProp(ical.PropDateTimeStart)
	prop.Value = "20261019T120000"
	prop.Params.Set(ical.ParamTimezoneID, "Tokyo Standard Time")
	comp.Props.Set(prop)

	normalizeComponentTimezones(comp)

	require.Equal(t, "Asia/Tokyo", comp.Props.Get(ical.PropDateTimeStart).Params.Get(ical.ParamTimezoneID))
	require.Equal(t, "Asia/Tokyo", getTimezoneFromComponent(comp, time.UTC).String())
}

func TestFloatingTimeUsesFallback(t *testing.T) {
	comp := ical.NewComponent(ical.CompEvent)
	prop := ical.NewProp(ical.PropDateTimeStart)
	prop.Value = "20261019T120000"
	comp.Props.Set(prop)

	loc := time.FixedZone("test", 3600)
	require.Equal(t, loc, getTimezoneFromComponent(comp, loc))
}
