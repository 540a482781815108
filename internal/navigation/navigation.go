// Package navigation maps paths to screens and keeps anonymous callers out
// of the protected ones.
package navigation

import (
	"errors"
	"strings"
)

type Screen string

const (
	Welcome     Screen = "welcome"
	Login       Screen = "login"
	Home        Screen = "home"
	Homework    Screen = "homework"
	Timetable   Screen = "timetable"
	GamesHub    Screen = "games"
	Quiz        Screen = "quiz"
	WordBuilder Screen = "word-builder"
	MemoryMatch Screen = "memory-match"
	MathBubbles Screen = "math-bubbles"
	ShapeSort   Screen = "shape-sort"
)

const (
	WelcomePath = "/"
	LoginPath   = "/login"
	HomePath    = "/home"
)

var ErrUnknownRoute = errors.New("no screen at this path")

type Route struct {
	Path   string
	Screen Screen
	Title  string
	Public bool
}

var Routes = []Route{
	{Path: WelcomePath, Screen: Welcome, Title: "Welcome", Public: true},
	{Path: LoginPath, Screen: Login, Title: "Sign in", Public: true},
	{Path: HomePath, Screen: Home, Title: "Home"},
	{Path: "/homework", Screen: Homework, Title: "Homework"},
	{Path: "/timetable", Screen: Timetable, Title: "Timetable"},
	{Path: "/games", Screen: GamesHub, Title: "Games"},
	{Path: "/quiz", Screen: Quiz, Title: "Quiz"},
	{Path: "/games/girly/word-builder", Screen: WordBuilder, Title: "Word Builder"},
	{Path: "/games/girly/memory-match", Screen: MemoryMatch, Title: "Memory Match"},
	{Path: "/games/boy/math-bubbles", Screen: MathBubbles, Title: "Math Bubbles"},
	{Path: "/games/boy/shape-sort", Screen: ShapeSort, Title: "Shape Sort"},
}

func normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return WelcomePath
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

func Lookup(path string) (Route, bool) {
	path = normalize(path)
	for _, r := range Routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

func MustLookup(path string) Route {
	r, ok := Lookup(path)
	if !ok {
		panic("navigation: no route " + path)
	}
	return r
}

// Resolve picks the screen for path. Protected screens resolve to the login
// screen for anonymous callers, with redirected set.
func Resolve(path string, authenticated bool) (route Route, redirected bool, err error) {
	r, ok := Lookup(path)
	if !ok {
		return Route{}, false, ErrUnknownRoute
	}
	if !r.Public && !authenticated {
		return MustLookup(LoginPath), true, nil
	}
	return r, false, nil
}

// AfterLogin is where a successful sign-in lands.
func AfterLogin() Route {
	return MustLookup(HomePath)
}

// AfterLogout is where signing out lands.
func AfterLogout() Route {
	return MustLookup(WelcomePath)
}

func Games() []Route {
	var out []Route
	for _, r := range Routes {
		if strings.HasPrefix(r.Path, "/games/") {
			out = append(out, r)
		}
	}
	return out
}
