// Package onboarding decides when a first-time caller must be asked for a name.
package onboarding

import (
	"sync"

	"school_planner_backend/internal/client"
	"school_planner_backend/internal/model"
)

// ShouldShow is true only for an authenticated caller whose profile read has
// finished and found nothing. A pending read never shows the form.
func ShouldShow(authenticated, readCompleted, profilePresent bool) bool {
	return authenticated && readCompleted && !profilePresent
}

func ShouldShowFor(authenticated bool, profile client.Remote[model.UserProfile]) bool {
	return ShouldShow(authenticated, profile.Loaded(), profile.State() == client.Present)
}

// Gate opens the name form at most once until it is completed.
type Gate struct {
	mu   sync.Mutex
	open bool
	done bool
}

// Evaluate reports whether the form should be presented now. It returns true
// once per open form; later calls while the form is up return false.
func (g *Gate) Evaluate(authenticated bool, profile client.Remote[model.UserProfile]) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.open || g.done || !ShouldShowFor(authenticated, profile) {
		return false
	}
	g.open = true
	return true
}

// Completed is called after the profile save succeeded.
func (g *Gate) Completed() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.open = false
	g.done = true
}

// Reset forgets the gate state, as after a logout.
func (g *Gate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.open = false
	g.done = false
}
