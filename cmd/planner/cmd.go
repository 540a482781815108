package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"syscall"
	"time"

	"school_planner_backend/internal/client"
	"school_planner_backend/internal/forms"
	"school_planner_backend/internal/games"
	"school_planner_backend/internal/navigation"
	"school_planner_backend/internal/onboarding"
	"school_planner_backend/internal/prefs"

	"golang.org/x/term"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp          = errors.New("help provided")
	errLoginRequired = errors.New("please log in first: planner login -email EMAIL")
)

const usage = `Usage:
  planner [-config DIR] COMMAND

Commands:
  register -email EMAIL              create an account (password prompted)
  login -email EMAIL                 sign in (password prompted)
  logout                             sign out and forget cached data
  open PATH                          show the screen at PATH (/home, /homework, ...)
  homework list|add|edit|done|rm     manage homework
  timetable list|add|edit|rm         manage the weekly timetable
  profile show|set                   show or change your name
  quiz                               take the 8 question quiz
  play GAME                          word-builder, memory-match, math-bubbles, shape-sort
  scene show|set|list                pick a background scene
  role                               show your role
  admin assign -principal ID -role ROLE`

type commandLine struct {
	api   *client.Client
	prefs *prefs.Store
	in    *bufio.Scanner
	out   io.Writer
	gate  *onboarding.Gate
	rng   *rand.Rand
	sleep func(time.Duration)
}

func newCommandLine(api *client.Client, store *prefs.Store, in io.Reader, out io.Writer) *commandLine {
	return &commandLine{
		api:   api,
		prefs: store,
		in:    bufio.NewScanner(in),
		out:   out,
		gate:  &onboarding.Gate{},
		rng:   games.NewRand(),
		sleep: time.Sleep,
	}
}

func (cli *commandLine) printf(format string, args ...any) {
	fmt.Fprintf(cli.out, format, args...)
}

func (cli *commandLine) println(args ...any) {
	fmt.Fprintln(cli.out, args...)
}

func (cli *commandLine) readLine(prompt string) (string, error) {
	cli.printf("%s", prompt)
	if !cli.in.Scan() {
		if err := cli.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(cli.in.Text()), nil
}

func (cli *commandLine) readPassword() (string, error) {
	cli.printf("Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	cli.println()
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

func (cli *commandLine) authenticated() bool {
	_, ok := cli.prefs.Token()
	return ok
}

// enter resolves path for the current caller and, for protected screens,
// runs the onboarding gate first.
func (cli *commandLine) enter(ctx context.Context, path string) (navigation.Route, error) {
	route, redirected, err := navigation.Resolve(path, cli.authenticated())
	if err != nil {
		return route, fmt.Errorf("%s: %w", path, err)
	}
	if redirected {
		return route, errLoginRequired
	}
	if !route.Public {
		if err := cli.onboard(ctx); err != nil {
			return route, err
		}
	}
	return route, nil
}

func (cli *commandLine) onboard(ctx context.Context) error {
	profile, err := cli.api.Profile().Get(ctx)
	if err != nil {
		return cli.explain(err)
	}
	if !cli.gate.Evaluate(true, profile) {
		return nil
	}

	cli.println("Welcome! What should we call you?")
	for {
		name, err := cli.readLine("Name: ")
		if err != nil {
			return err
		}
		form := forms.ProfileForm{Name: name}
		if err := form.Validate(); err != nil {
			cli.println(err)
			continue
		}
		if err := cli.api.Profile().Save(ctx, strings.TrimSpace(name)); err != nil {
			return cli.explain(err)
		}
		cli.gate.Completed()
		cli.printf("Nice to meet you, %s!\n", strings.TrimSpace(name))
		return nil
	}
}

// explain turns client errors into what the user should do next.
func (cli *commandLine) explain(err error) error {
	switch {
	case errors.Is(err, client.ErrUnauthenticated):
		cli.api.Logout()
		cli.gate.Reset()
		return errLoginRequired
	case errors.Is(err, client.ErrMutationPending):
		return errors.New("still saving your last change, try again in a moment")
	case client.IsRetryable(err):
		return fmt.Errorf("could not reach the planner service, please try again: %w", err)
	}
	return err
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.println(usage)
		return errHelp
	}

	switch args[1] {
	case "register":
		return cli.register(ctx, args[2:])
	case "login":
		return cli.login(ctx, args[2:])
	case "logout":
		return cli.logout()
	case "open":
		if len(args) < 3 {
			cli.println(usage)
			return errHelp
		}
		return cli.open(ctx, args[2])
	case "homework":
		return cli.homework(ctx, args[2:])
	case "timetable":
		return cli.timetable(ctx, args[2:])
	case "profile":
		return cli.profile(ctx, args[2:])
	case "quiz":
		return cli.quiz(ctx)
	case "play":
		if len(args) < 3 {
			cli.println(usage)
			return errHelp
		}
		return cli.play(ctx, args[2])
	case "scene":
		return cli.scene(ctx, args[2:])
	case "role":
		return cli.role(ctx)
	case "admin":
		return cli.admin(ctx, args[2:])
	default:
		cli.println(usage)
		return errHelp
	}
}

func (cli *commandLine) register(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("register", flag.ContinueOnError)
	cmd.SetOutput(cli.out)
	email := cmd.String("email", "", "your email address")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		cmd.Usage()
		return errHelp
	}

	pwd, err := cli.readPassword()
	if err != nil {
		return err
	}
	user, err := cli.api.Register(ctx, *email, pwd)
	if err != nil {
		return cli.explain(err)
	}
	cli.printf("Account created for %s. Now run: planner login -email %s\n", user.Email, user.Email)
	return nil
}

func (cli *commandLine) login(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("login", flag.ContinueOnError)
	cmd.SetOutput(cli.out)
	email := cmd.String("email", "", "your email address")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		cmd.Usage()
		return errHelp
	}

	pwd, err := cli.readPassword()
	if err != nil {
		return err
	}
	if pwd == "" {
		cmd.Usage()
		return errHelp
	}

	session, err := cli.api.Login(ctx, *email, pwd)
	if err != nil {
		return cli.explain(err)
	}
	if err := cli.prefs.SetSession(session.Token, session.Principal); err != nil {
		return err
	}
	cli.gate.Reset()
	return cli.open(ctx, navigation.AfterLogin().Path)
}

func (cli *commandLine) logout() error {
	if err := cli.api.Logout(); err != nil {
		return err
	}
	cli.gate.Reset()
	cli.println("Signed out. See you soon!")
	return cli.show(navigation.AfterLogout())
}

func (cli *commandLine) open(ctx context.Context, path string) error {
	route, err := cli.enter(ctx, path)
	if err != nil {
		return err
	}
	switch route.Screen {
	case navigation.Homework:
		return cli.listHomework(ctx)
	case navigation.Timetable:
		return cli.listTimetable(ctx, "")
	case navigation.Quiz:
		return cli.quiz(ctx)
	case navigation.WordBuilder:
		return cli.play(ctx, "word-builder")
	case navigation.MemoryMatch:
		return cli.play(ctx, "memory-match")
	case navigation.MathBubbles:
		return cli.play(ctx, "math-bubbles")
	case navigation.ShapeSort:
		return cli.play(ctx, "shape-sort")
	}
	return cli.show(route)
}

func (cli *commandLine) show(route navigation.Route) error {
	cli.printf("== %s == (scene: %s)\n", route.Title, cli.prefs.Scene())
	switch route.Screen {
	case navigation.Welcome:
		cli.println("Your fun school planner. Run: planner login -email EMAIL")
	case navigation.Login:
		cli.println("Run: planner login -email EMAIL")
	case navigation.Home:
		for _, path := range []string{"/homework", "/timetable", "/games", "/quiz"} {
			r := navigation.MustLookup(path)
			cli.printf("  %-10s planner open %s\n", r.Title, r.Path)
		}
	case navigation.GamesHub:
		for _, r := range navigation.Games() {
			cli.printf("  %-13s planner open %s\n", r.Title, r.Path)
		}
	}
	return nil
}
