package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		path           string
		authenticated  bool
		wantScreen     Screen
		wantRedirected bool
	}{
		{path: "/", wantScreen: Welcome},
		{path: "/login", wantScreen: Login},
		{path: "/home", wantScreen: Login, wantRedirected: true},
		{path: "/home", authenticated: true, wantScreen: Home},
		{path: "/homework/", authenticated: true, wantScreen: Homework},
		{path: "/timetable?day=Monday", authenticated: true, wantScreen: Timetable},
		{path: "/quiz", wantScreen: Login, wantRedirected: true},
		{path: "/games/boy/shape-sort", wantScreen: Login, wantRedirected: true},
		{path: "/games/girly/memory-match", authenticated: true, wantScreen: MemoryMatch},
		{path: "", wantScreen: Welcome},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			r, redirected, err := Resolve(tt.path, tt.authenticated)
			require.NoError(t, err)
			assert.Equal(t, tt.wantScreen, r.Screen)
			assert.Equal(t, tt.wantRedirected, redirected)
		})
	}

	_, _, err := Resolve("/nowhere", true)
	assert.ErrorIs(t, err, ErrUnknownRoute)
}

func TestLandingScreens(t *testing.T) {
	assert.Equal(t, Home, AfterLogin().Screen)
	assert.Equal(t, Welcome, AfterLogout().Screen)
	assert.Panics(t, func() { MustLookup("/nowhere") })
}

func TestGames(t *testing.T) {
	var screens []Screen
	for _, r := range Games() {
		screens = append(screens, r.Screen)
		assert.False(t, r.Public)
	}
	assert.ElementsMatch(t, []Screen{WordBuilder, MemoryMatch, MathBubbles, ShapeSort}, screens)
}
