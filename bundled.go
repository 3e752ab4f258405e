package main

import (
	_ "embed"

	"fyne.io/fyne/v2"
)

//go:embed assets/alarm.wav
var alarmWav []byte

//go:embed assets/icon.png
var iconPng []byte

var resourceAlarmWav = fyne.NewStaticResource("alarm.wav", alarmWav)

var resourceIconPng = fyne.NewStaticResource("icon.png", iconPng)
