// Package games holds the four single-player mini-games. Each game is a
// small state machine: Start, then moves, with Next standing in for the
// on-screen feedback pause. Nothing is persisted.
package games

import (
	"errors"
	"math/rand/v2"
	"time"
)

type Feedback int

const (
	NoFeedback Feedback = iota
	Correct
	Wrong
)

func (f Feedback) String() string {
	switch f {
	case Correct:
		return "correct"
	case Wrong:
		return "wrong"
	default:
		return ""
	}
}

const (
	MathFeedbackDelay  = 1500 * time.Millisecond
	ShapeFeedbackDelay = time.Second
	WordFeedbackDelay  = time.Second
	MemoryFlipBack     = time.Second
)

var (
	ErrNotStarted   = errors.New("game has not started")
	ErrFeedbackOpen = errors.New("wait for the next round")
	ErrBadMove      = errors.New("move not allowed")
)

// NewRand returns a generator seeded from the runtime's entropy.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
