// Copyright (c) 2026 Citely. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reading owns the working set of required readings shown to users and
decides what goes into it when the citation service is healthy, partially
healthy, or gone.

Lifecycle:

	EMPTY -> POPULATING -> POPULATED(remote) | POPULATED(fallback)

Refresh always returns to EMPTY before populating again. The static fallback
list is used only when a population pass creates no sample remotely. Refresh
and EnsurePopulated only ever populate an empty set, so through them remote
and fallback records never coexist.
*/
package reading

import "github.com/taibuivan/citely/internal/core/source"

// State tags how the working set was last populated.
type State string

const (
	StateEmpty             State = "empty"
	StatePopulating        State = "populating"
	StatePopulatedRemote   State = "populated_remote"
	StatePopulatedFallback State = "populated_fallback"
)

// WorkingSet is the ordered, append-only (until cleared) collection of
// readings for one session.
//
// WorkingSet has no lock. Callers sharing one across goroutines must
// serialize access themselves.
type WorkingSet struct {
	readings []source.Source
	state    State
}

// NewWorkingSet returns an empty working set.
func NewWorkingSet() *WorkingSet {
	return &WorkingSet{state: StateEmpty}
}

// State returns the population state tag.
func (ws *WorkingSet) State() State {
	if ws.state == "" {
		return StateEmpty
	}
	return ws.state
}

// Len returns the number of readings.
func (ws *WorkingSet) Len() int {
	return len(ws.readings)
}

// IsEmpty reports whether the working set holds no readings.
func (ws *WorkingSet) IsEmpty() bool {
	return len(ws.readings) == 0
}

// Readings returns a copy of the readings in insertion order.
func (ws *WorkingSet) Readings() []source.Source {
	out := make([]source.Source, 0, len(ws.readings))
	for _, reading := range ws.readings {
		out = append(out, reading.Clone())
	}
	return out
}

// Clear drops every reading and returns to StateEmpty.
func (ws *WorkingSet) Clear() {
	ws.readings = nil
	ws.state = StateEmpty
}

func (ws *WorkingSet) append(readings ...source.Source) {
	ws.readings = append(ws.readings, readings...)
}

func (ws *WorkingSet) setState(state State) {
	ws.state = state
}
