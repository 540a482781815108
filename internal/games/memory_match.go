package games

import "math/rand/v2"

var Emojis = []string{"🌸", "🦋", "🌈", "⭐", "💖", "🎀", "🌺", "🦄"}

type FlipResult int

const (
	FlippedOne FlipResult = iota
	Matched
	Mismatched
)

// MemoryMatch is a pairs game over a shuffled deck of two of each emoji.
type MemoryMatch struct {
	rng     *rand.Rand
	started bool
	cards   []string
	flipped []int
	matched map[int]bool
	moves   int
}

func NewMemoryMatch(rng *rand.Rand) *MemoryMatch {
	return &MemoryMatch{rng: rng, matched: map[int]bool{}}
}

func (g *MemoryMatch) Start() {
	cards := make([]string, 0, 2*len(Emojis))
	cards = append(cards, Emojis...)
	cards = append(cards, Emojis...)
	g.rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })

	g.cards = cards
	g.flipped = nil
	g.matched = map[int]bool{}
	g.moves = 0
	g.started = true
}

func (g *MemoryMatch) Cards() []string {
	return g.cards
}

// FaceUp reports whether card i is visible.
func (g *MemoryMatch) FaceUp(i int) bool {
	if g.matched[i] {
		return true
	}
	for _, f := range g.flipped {
		if f == i {
			return true
		}
	}
	return false
}

// Flip turns card i. The second card of a pair counts one move. A mismatched
// pair stays face up until Settle.
func (g *MemoryMatch) Flip(i int) (FlipResult, error) {
	if !g.started {
		return FlippedOne, ErrNotStarted
	}
	if i < 0 || i >= len(g.cards) || len(g.flipped) == 2 || g.FaceUp(i) {
		return FlippedOne, ErrBadMove
	}

	g.flipped = append(g.flipped, i)
	if len(g.flipped) < 2 {
		return FlippedOne, nil
	}

	g.moves++
	first, second := g.flipped[0], g.flipped[1]
	if g.cards[first] == g.cards[second] {
		g.matched[first] = true
		g.matched[second] = true
		g.flipped = nil
		return Matched, nil
	}
	return Mismatched, nil
}

// Settle turns a mismatched pair back over.
func (g *MemoryMatch) Settle() {
	if len(g.flipped) == 2 {
		g.flipped = nil
	}
}

func (g *MemoryMatch) Moves() int {
	return g.moves
}

func (g *MemoryMatch) Complete() bool {
	return g.started && len(g.matched) == len(g.cards)
}

func (g *MemoryMatch) Reset() {
	*g = MemoryMatch{rng: g.rng, matched: map[int]bool{}}
}
