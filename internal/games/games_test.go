package games

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestMathBubbles(t *testing.T) {
	g := NewMathBubbles(seeded())

	_, err := g.Pop(3)
	assert.ErrorIs(t, err, ErrNotStarted)

	g.Start()
	for round := 0; round < 200; round++ {
		sum := g.Current()
		require.GreaterOrEqual(t, sum.A, 1)
		require.LessOrEqual(t, sum.A, 10)
		require.GreaterOrEqual(t, sum.B, 1)
		require.LessOrEqual(t, sum.B, 10)
		require.Len(t, sum.Options, 4)
		assert.Contains(t, sum.Options, sum.Answer())

		seen := map[int]bool{}
		for _, o := range sum.Options {
			assert.False(t, seen[o], "duplicate option %d in %v", o, sum.Options)
			assert.GreaterOrEqual(t, o, 0)
			seen[o] = true
		}
		g.Next()
	}
}

func TestMathBubbles_Scoring(t *testing.T) {
	g := NewMathBubbles(seeded())
	g.Start()

	fb, err := g.Pop(g.Current().Answer())
	require.NoError(t, err)
	assert.Equal(t, Correct, fb)
	assert.Equal(t, 1, g.Score())

	_, err = g.Pop(g.Current().Answer())
	assert.ErrorIs(t, err, ErrFeedbackOpen)
	assert.Equal(t, 1, g.Score())

	g.Next()
	fb, err = g.Pop(g.Current().Answer() + 100)
	require.NoError(t, err)
	assert.Equal(t, Wrong, fb)
	assert.Equal(t, 1, g.Score())

	g.Reset()
	assert.False(t, g.Started())
	assert.Zero(t, g.Score())
}

func TestShapeSort(t *testing.T) {
	g := NewShapeSort(seeded())
	_, err := g.Pick("Circle")
	assert.ErrorIs(t, err, ErrNotStarted)

	g.Start()
	target := g.Target()

	wrong := Shapes[0].Name
	if wrong == target.Name {
		wrong = Shapes[1].Name
	}
	fb, err := g.Pick(wrong)
	require.NoError(t, err)
	assert.Equal(t, Wrong, fb)
	_, err = g.Pick(target.Name)
	assert.ErrorIs(t, err, ErrFeedbackOpen)

	g.Next()
	assert.Equal(t, target, g.Target(), "wrong pick keeps the target")

	fb, err = g.Pick(target.Name)
	require.NoError(t, err)
	assert.Equal(t, Correct, fb)
	assert.Equal(t, 1, g.Score())

	g.Next()
	_, err = g.Pick(g.Target().Name)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Score())
}

func TestWordBuilder(t *testing.T) {
	g := NewWordBuilder(seeded())
	_, err := g.Press('A')
	assert.ErrorIs(t, err, ErrNotStarted)

	g.Start()
	word := g.Target()
	require.Contains(t, Words, word)

	_, err = g.Press('1')
	assert.ErrorIs(t, err, ErrBadMove)

	_, err = g.Press('z')
	require.NoError(t, err)
	g.Clear()
	assert.Empty(t, g.Typed())

	var fb Feedback
	for i, r := range word {
		fb, err = g.Press(r + ('a' - 'A'))
		require.NoError(t, err)
		if i < len(word)-1 {
			assert.Equal(t, NoFeedback, fb)
		}
	}
	assert.Equal(t, Correct, fb)
	assert.Equal(t, word, g.Typed())
	assert.Equal(t, 1, g.Score())

	_, err = g.Press('A')
	assert.ErrorIs(t, err, ErrFeedbackOpen)
	g.Clear()
	assert.Equal(t, word, g.Typed(), "a solved word stays until the next round")

	g.Next()
	assert.Empty(t, g.Typed())
}

func TestWordBuilder_Overflow(t *testing.T) {
	g := NewWordBuilder(seeded())
	g.Start()
	word := g.Target()

	wrong := 'Q'
	if rune(word[0]) == wrong {
		wrong = 'X'
	}
	for range word {
		_, err := g.Press(wrong)
		require.NoError(t, err)
	}
	_, err := g.Press(wrong)
	assert.ErrorIs(t, err, ErrBadMove)
	assert.Zero(t, g.Score())
}

func TestMemoryMatch(t *testing.T) {
	g := NewMemoryMatch(seeded())
	_, err := g.Flip(0)
	assert.ErrorIs(t, err, ErrNotStarted)

	g.Start()
	cards := g.Cards()
	require.Len(t, cards, 2*len(Emojis))
	counts := map[string]int{}
	for _, c := range cards {
		counts[c]++
	}
	for _, e := range Emojis {
		assert.Equal(t, 2, counts[e])
	}

	pairs := map[string][]int{}
	for i, c := range cards {
		pairs[c] = append(pairs[c], i)
	}

	// one deliberate miss first
	a, b := pairs[Emojis[0]][0], pairs[Emojis[1]][0]
	res, err := g.Flip(a)
	require.NoError(t, err)
	assert.Equal(t, FlippedOne, res)
	_, err = g.Flip(a)
	assert.ErrorIs(t, err, ErrBadMove)
	res, err = g.Flip(b)
	require.NoError(t, err)
	assert.Equal(t, Mismatched, res)
	_, err = g.Flip(pairs[Emojis[2]][0])
	assert.ErrorIs(t, err, ErrBadMove, "mismatch must settle first")
	g.Settle()
	assert.False(t, g.FaceUp(a))

	for _, e := range Emojis {
		_, err := g.Flip(pairs[e][0])
		require.NoError(t, err)
		res, err := g.Flip(pairs[e][1])
		require.NoError(t, err)
		assert.Equal(t, Matched, res)
	}

	assert.True(t, g.Complete())
	assert.Equal(t, len(Emojis)+1, g.Moves())
	_, err = g.Flip(a)
	assert.ErrorIs(t, err, ErrBadMove)

	g.Reset()
	assert.False(t, g.Complete())
	assert.Zero(t, g.Moves())
}
