//go:build darwin

package main

import (
	"sync"

	"go.uber.org/zap"
	"golang.design/x/hotkey"
)

// quitGuard swallows Cmd+Q while a puzzle window is in front
type quitGuard struct {
	mu  sync.Mutex
	hk  *hotkey.Hotkey
	log *zap.SugaredLogger
}

func newQuitGuard(log *zap.SugaredLogger) *quitGuard {
	return &quitGuard{log: log}
}

func (g *quitGuard) Register() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.hk != nil {
		return
	}

	hk := hotkey.New([]hotkey.Modifier{hotkey.ModCmd}, hotkey.KeyQ)
	if err := hk.Register(); err != nil {
		g.log.Warnw("failed to register Cmd+Q guard", "error", err)
		return
	}
	g.hk = hk

	go func() {
		// Consume Cmd+Q so it never reaches the app menu
		for range hk.Keydown() {
			g.log.Info("Cmd+Q blocked, solve the puzzle to dismiss the alarm")
		}
	}()
}

func (g *quitGuard) Unregister() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.hk == nil {
		return
	}

	if err := g.hk.Unregister(); err != nil {
		g.log.Warnw("failed to unregister Cmd+Q guard", "error", err)
	}
	g.hk = nil
}
