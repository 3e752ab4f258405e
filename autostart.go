package main

import (
	"os"
	"path/filepath"

	"github.com/emersion/go-autostart"
	"go.uber.org/zap"
)

func setupAutostart(enable bool, log *zap.SugaredLogger) error {
	execPath, err := os.Executable()
	if err != nil {
		return err
	}

	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return err
	}

	app := &autostart.App{
		Name:        "puzzle-alarm",
		DisplayName: "Puzzle Alarm",
		Exec:        []string{execPath},
	}

	switch {
	case enable && !app.IsEnabled():
		if err := app.Enable(); err != nil {
			return err
		}
		log.Info("autostart enabled")
	case !enable && app.IsEnabled():
		if err := app.Disable(); err != nil {
			return err
		}
		log.Info("autostart disabled")
	}

	return nil
}
