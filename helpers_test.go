package main

import "strconv"

func itoa(n int) string {
	return strconv.Itoa(n)
}

type fakeHandle struct {
	stops int
	done  chan struct{}
}

func newFakeHandle() *fakeHandle {
	return &fakeHandle{done: make(chan struct{})}
}

func (h *fakeHandle) Stop() {
	if h.stops == 0 {
		close(h.done)
	}
	h.stops++
}

func (h *fakeHandle) Done() <-chan struct{} {
	return h.done
}
