package games

import (
	"math/rand/v2"
	"strings"
)

var Words = []string{"CAT", "DOG", "SUN", "STAR", "MOON", "LOVE", "PLAY", "BOOK"}

const Letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// WordBuilder has the player spell a target word letter by letter.
type WordBuilder struct {
	rng     *rand.Rand
	started bool
	score   int
	target  string
	typed   string
}

func NewWordBuilder(rng *rand.Rand) *WordBuilder {
	return &WordBuilder{rng: rng}
}

func (g *WordBuilder) Start() {
	g.score = 0
	g.started = true
	g.Next()
}

// Next draws a new word and clears the typed letters.
func (g *WordBuilder) Next() {
	g.target = Words[g.rng.IntN(len(Words))]
	g.typed = ""
}

func (g *WordBuilder) Target() string {
	return g.target
}

func (g *WordBuilder) Typed() string {
	return g.typed
}

// Press appends a letter while the word is incomplete. It reports Correct
// when the typed letters spell the target.
func (g *WordBuilder) Press(letter rune) (Feedback, error) {
	if !g.started {
		return NoFeedback, ErrNotStarted
	}
	upper := strings.ToUpper(string(letter))
	if len(upper) != 1 || !strings.Contains(Letters, upper) {
		return NoFeedback, ErrBadMove
	}
	if g.typed == g.target {
		return Correct, ErrFeedbackOpen
	}
	if len(g.typed) >= len(g.target) {
		return NoFeedback, ErrBadMove
	}

	g.typed += upper
	if g.typed == g.target {
		g.score++
		return Correct, nil
	}
	return NoFeedback, nil
}

func (g *WordBuilder) Clear() {
	if g.typed != g.target {
		g.typed = ""
	}
}

func (g *WordBuilder) Score() int {
	return g.score
}

func (g *WordBuilder) Reset() {
	*g = WordBuilder{rng: g.rng}
}
