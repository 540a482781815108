package onboarding

import (
	"testing"

	"school_planner_backend/internal/client"
	"school_planner_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestShouldShow(t *testing.T) {
	tests := []struct {
		authenticated, readCompleted, present bool
		want                                  bool
	}{
		{true, true, false, true},
		{true, true, true, false},
		{true, false, false, false},
		{true, false, true, false},
		{false, true, false, false},
		{false, true, true, false},
		{false, false, false, false},
		{false, false, true, false},
	}
	for _, tt := range tests {
		got := ShouldShow(tt.authenticated, tt.readCompleted, tt.present)
		assert.Equal(t, tt.want, got, "auth=%v read=%v present=%v", tt.authenticated, tt.readCompleted, tt.present)
	}
}

func TestShouldShowFor(t *testing.T) {
	var pending client.Remote[model.UserProfile]
	absent := client.Loaded(model.None[model.UserProfile]())
	present := client.Loaded(model.Some(model.UserProfile{Name: "Ada"}))

	assert.False(t, ShouldShowFor(true, pending))
	assert.True(t, ShouldShowFor(true, absent))
	assert.False(t, ShouldShowFor(true, present))
	assert.False(t, ShouldShowFor(false, absent))
}

func TestGate(t *testing.T) {
	absent := client.Loaded(model.None[model.UserProfile]())
	var g Gate

	assert.True(t, g.Evaluate(true, absent))
	assert.False(t, g.Evaluate(true, absent), "form already up")

	g.Completed()
	assert.False(t, g.Evaluate(true, absent), "completed gate stays shut")

	g.Reset()
	assert.False(t, g.Evaluate(false, absent))
	assert.True(t, g.Evaluate(true, absent))
}
