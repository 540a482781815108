package games

import "math/rand/v2"

type Shape struct {
	Name  string
	Emoji string
}

var Shapes = []Shape{
	{Name: "Circle", Emoji: "🔵"},
	{Name: "Square", Emoji: "🟦"},
	{Name: "Triangle", Emoji: "🔺"},
	{Name: "Star", Emoji: "⭐"},
}

// ShapeSort asks the player to pick the shape matching a target.
type ShapeSort struct {
	rng      *rand.Rand
	started  bool
	score    int
	target   Shape
	feedback Feedback
}

func NewShapeSort(rng *rand.Rand) *ShapeSort {
	return &ShapeSort{rng: rng, target: Shapes[0]}
}

func (g *ShapeSort) Start() {
	g.score = 0
	g.started = true
	g.newTarget()
}

func (g *ShapeSort) newTarget() {
	g.target = Shapes[g.rng.IntN(len(Shapes))]
	g.feedback = NoFeedback
}

func (g *ShapeSort) Target() Shape {
	return g.target
}

func (g *ShapeSort) Pick(name string) (Feedback, error) {
	if !g.started {
		return NoFeedback, ErrNotStarted
	}
	if g.feedback != NoFeedback {
		return g.feedback, ErrFeedbackOpen
	}
	if name == g.target.Name {
		g.feedback = Correct
		g.score++
	} else {
		g.feedback = Wrong
	}
	return g.feedback, nil
}

// Next ends the feedback pause. After a correct pick a new target is drawn;
// after a wrong one the same target stays.
func (g *ShapeSort) Next() {
	if g.feedback == Correct {
		g.newTarget()
		return
	}
	g.feedback = NoFeedback
}

func (g *ShapeSort) Score() int {
	return g.score
}

func (g *ShapeSort) Reset() {
	*g = ShapeSort{rng: g.rng, target: Shapes[0]}
}
