package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"school_planner_backend/internal/games"
	"school_planner_backend/internal/quiz"
)

func (cli *commandLine) quiz(ctx context.Context) error {
	if _, err := cli.enter(ctx, "/quiz"); err != nil {
		return err
	}

	progress, err := cli.api.QuizProgress().Get(ctx)
	if err != nil {
		return cli.explain(err)
	}
	if p, ok := progress.Value(); ok {
		cli.printf("Best score: %d  Attempts: %d\n", p.BestScore, p.AttemptsCount)
	}

	// the advance is held until the feedback line is printed, then the
	// delay is waited out in line
	var advance func()
	schedule := func(d time.Duration, f func()) {
		advance = func() {
			cli.sleep(d)
			f()
		}
	}
	session := quiz.NewSession(cli.api.QuizProgress(), quiz.WithScheduler(schedule))
	for {
		if err := session.Start(ctx); err != nil {
			return err
		}

		for session.Phase() == quiz.Playing {
			q, index, total, _ := session.Current()
			cli.printf("\nQuestion %d of %d: %s\n", index+1, total, q.Prompt)
			for i, a := range q.Answers {
				cli.printf("  %d) %s\n", i+1, a)
			}

			choice, err := cli.readChoice(len(q.Answers))
			if err != nil {
				return err
			}
			correct, err := session.Answer(choice)
			if err != nil {
				return err
			}
			if correct {
				cli.println("Correct!")
			} else {
				cli.printf("Oops! The answer was %s.\n", q.Answers[q.Correct])
			}
			if advance != nil {
				advance()
				advance = nil
			}
		}

		cli.printf("\nYou scored %d out of %d.\n", session.Score(), session.Total())
		result, err := session.Wait(ctx)
		if err != nil {
			cli.printf("Your score could not be saved: %v\n", cli.explain(err))
		} else {
			cli.printf("Best score: %d  Attempts: %d\n", result.BestScore, result.AttemptsCount)
		}

		again, err := cli.readLine("Try again? (y/N) ")
		if err != nil || !strings.EqualFold(again, "y") {
			return nil
		}
	}
}

func (cli *commandLine) readChoice(n int) (int, error) {
	for {
		line, err := cli.readLine("> ")
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(line)
		if err == nil && v >= 1 && v <= n {
			return v - 1, nil
		}
		cli.printf("Pick a number from 1 to %d.\n", n)
	}
}

const quitWord = "q"

var errQuit = errors.New("quit")

func (cli *commandLine) play(ctx context.Context, game string) error {
	paths := map[string]string{
		"word-builder": "/games/girly/word-builder",
		"memory-match": "/games/girly/memory-match",
		"math-bubbles": "/games/boy/math-bubbles",
		"shape-sort":   "/games/boy/shape-sort",
	}
	path, ok := paths[game]
	if !ok {
		return fmt.Errorf("unknown game %q", game)
	}
	route, err := cli.enter(ctx, path)
	if err != nil {
		return err
	}
	cli.printf("== %s == (type %s to stop)\n", route.Title, quitWord)

	switch game {
	case "math-bubbles":
		err = cli.playMathBubbles()
	case "shape-sort":
		err = cli.playShapeSort()
	case "word-builder":
		err = cli.playWordBuilder()
	case "memory-match":
		err = cli.playMemoryMatch()
	}
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

func (cli *commandLine) readMove(prompt string) (string, error) {
	line, err := cli.readLine(prompt)
	if err != nil {
		return "", err
	}
	if strings.EqualFold(line, quitWord) {
		return "", errQuit
	}
	return line, nil
}

func (cli *commandLine) playMathBubbles() error {
	g := games.NewMathBubbles(cli.rng)
	g.Start()
	for {
		sum := g.Current()
		cli.printf("%d + %d = ?  %v  score %d\n", sum.A, sum.B, sum.Options, g.Score())
		line, err := cli.readMove("> ")
		if err != nil {
			return err
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			cli.println("Type one of the numbers.")
			continue
		}
		fb, err := g.Pop(v)
		if err != nil {
			return err
		}
		cli.printf("%s!\n", fb)
		cli.sleep(games.MathFeedbackDelay)
		g.Next()
	}
}

func (cli *commandLine) playShapeSort() error {
	g := games.NewShapeSort(cli.rng)
	g.Start()
	for {
		target := g.Target()
		cli.printf("Find the %s %s  score %d\n", target.Name, target.Emoji, g.Score())
		for _, s := range games.Shapes {
			cli.printf("  %s %s\n", s.Emoji, s.Name)
		}
		line, err := cli.readMove("> ")
		if err != nil {
			return err
		}
		fb, err := g.Pick(capitalize(line))
		if err != nil {
			return err
		}
		cli.printf("%s!\n", fb)
		cli.sleep(games.ShapeFeedbackDelay)
		g.Next()
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func (cli *commandLine) playWordBuilder() error {
	g := games.NewWordBuilder(cli.rng)
	g.Start()
	for {
		cli.printf("Spell %s: %s  score %d (type letters, - to clear)\n", g.Target(), g.Typed(), g.Score())
		line, err := cli.readMove("> ")
		if err != nil {
			return err
		}
		if line == "-" {
			g.Clear()
			continue
		}
		for _, r := range line {
			fb, err := g.Press(r)
			if errors.Is(err, games.ErrBadMove) {
				cli.println("That letter does not fit. Type - to clear.")
				break
			}
			if err != nil {
				return err
			}
			if fb == games.Correct {
				cli.printf("You spelled %s!\n", g.Target())
				cli.sleep(games.WordFeedbackDelay)
				g.Next()
				break
			}
		}
	}
}

func (cli *commandLine) playMemoryMatch() error {
	g := games.NewMemoryMatch(cli.rng)
	g.Start()
	for !g.Complete() {
		cli.printBoard(g)
		line, err := cli.readMove("card> ")
		if err != nil {
			return err
		}
		i, err := strconv.Atoi(line)
		if err != nil {
			cli.println("Type a card number.")
			continue
		}
		res, err := g.Flip(i - 1)
		if errors.Is(err, games.ErrBadMove) {
			cli.println("Pick a card that is face down.")
			continue
		}
		if err != nil {
			return err
		}
		switch res {
		case games.Matched:
			cli.println("A match!")
		case games.Mismatched:
			cli.printBoard(g)
			cli.println("Not a match.")
			cli.sleep(games.MemoryFlipBack)
			g.Settle()
		}
	}
	cli.printf("All pairs found in %d moves!\n", g.Moves())
	return nil
}

func (cli *commandLine) printBoard(g *games.MemoryMatch) {
	for i, card := range g.Cards() {
		face := "??"
		if g.FaceUp(i) {
			face = card
		}
		cli.printf("%2d:%s ", i+1, face)
		if (i+1)%4 == 0 {
			cli.println()
		}
	}
	cli.printf("moves %d\n", g.Moves())
}
