package games

import "math/rand/v2"

type Sum struct {
	A, B    int
	Options []int
}

func (s Sum) Answer() int {
	return s.A + s.B
}

// MathBubbles asks for the sum of two numbers from 1 to 10 among four bubbles.
type MathBubbles struct {
	rng      *rand.Rand
	started  bool
	score    int
	current  Sum
	feedback Feedback
}

func NewMathBubbles(rng *rand.Rand) *MathBubbles {
	return &MathBubbles{rng: rng}
}

func (g *MathBubbles) Start() {
	g.score = 0
	g.started = true
	g.Next()
}

// Next clears the feedback and poses a new sum.
func (g *MathBubbles) Next() {
	a := g.rng.IntN(10) + 1
	b := g.rng.IntN(10) + 1
	answer := a + b

	options := []int{answer}
	distractors := []func() int{
		func() int { return answer + g.rng.IntN(3) + 1 },
		func() int { return answer - g.rng.IntN(3) - 1 },
		func() int { return answer + g.rng.IntN(5) + 2 },
	}
	for _, gen := range distractors {
		v := gen()
		for contains(options, v) || v < 0 {
			v = answer + g.rng.IntN(9) + 1
		}
		options = append(options, v)
	}
	g.rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	g.current = Sum{A: a, B: b, Options: options}
	g.feedback = NoFeedback
}

func (g *MathBubbles) Current() Sum {
	return g.current
}

// Pop checks a chosen value. The round stays locked until Next.
func (g *MathBubbles) Pop(value int) (Feedback, error) {
	if !g.started {
		return NoFeedback, ErrNotStarted
	}
	if g.feedback != NoFeedback {
		return g.feedback, ErrFeedbackOpen
	}
	if value == g.current.Answer() {
		g.feedback = Correct
		g.score++
	} else {
		g.feedback = Wrong
	}
	return g.feedback, nil
}

func (g *MathBubbles) Score() int {
	return g.score
}

func (g *MathBubbles) Started() bool {
	return g.started
}

func (g *MathBubbles) Reset() {
	*g = MathBubbles{rng: g.rng}
}

func contains(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
