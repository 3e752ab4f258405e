//go:build !darwin

package main

import "go.uber.org/zap"

// quitGuard is a no-op where there is no Cmd+Q
type quitGuard struct{}

func newQuitGuard(*zap.SugaredLogger) *quitGuard {
	return &quitGuard{}
}

func (g *quitGuard) Register() {}

func (g *quitGuard) Unregister() {}
