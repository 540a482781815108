package main

import (
	"context"
	"flag"
	"fmt"
	"slices"
	"strings"
	"time"

	"school_planner_backend/internal/forms"
	"school_planner_backend/internal/model"
	"school_planner_backend/internal/util"
)

func (cli *commandLine) subcommand(args []string) (string, []string) {
	if len(args) == 0 {
		return "list", nil
	}
	return args[0], args[1:]
}

func (cli *commandLine) homework(ctx context.Context, args []string) error {
	if _, err := cli.enter(ctx, "/homework"); err != nil {
		return err
	}
	sub, rest := cli.subcommand(args)

	cmd := flag.NewFlagSet("homework "+sub, flag.ContinueOnError)
	cmd.SetOutput(cli.out)
	id := cmd.Uint64("id", 0, "homework id (edit, done, rm)")
	title := cmd.String("title", "", "what to do")
	subject := cmd.String("subject", "", "school subject")
	due := cmd.String("due", "", "due date, YYYY-MM-DD")
	notes := cmd.String("notes", "", "optional notes")
	clearNotes := cmd.Bool("clear-notes", false, "remove the notes (edit)")
	if err := cmd.Parse(rest); err != nil {
		return err
	}

	api := cli.api.Homework()
	switch sub {
	case "list":
		return cli.listHomework(ctx)
	case "add":
		form := forms.HomeworkForm{Title: *title, Subject: *subject, Notes: *notes}
		if *due != "" {
			t, err := time.ParseInLocation(util.DateFormat, *due, time.Local)
			if err != nil {
				return fmt.Errorf("due: %w", err)
			}
			form.Due = t
		} else {
			form.Due = time.Now()
		}
		if err := form.Validate(); err != nil {
			return err
		}
		newID, err := api.Create(ctx, form.Homework())
		if err != nil {
			return cli.explain(err)
		}
		cli.printf("Added homework #%d\n", newID)
		return cli.listHomework(ctx)
	case "edit", "done", "rm":
		if *id == 0 {
			cmd.Usage()
			return errHelp
		}
		current, err := cli.findHomework(ctx, *id)
		if err != nil {
			return err
		}
		switch sub {
		case "rm":
			err = api.Delete(ctx, *id)
		case "done":
			err = api.ToggleCompleted(ctx, current)
		default:
			form := forms.HomeworkForm{
				Title:     pick(*title, current.Title),
				Subject:   pick(*subject, current.Subject),
				Completed: current.Completed,
				Due:       current.Due(),
				Notes:     pick(*notes, current.Notes.OrElse("")),
			}
			if *clearNotes {
				form.Notes = ""
			}
			if *due != "" {
				if form.Due, err = time.ParseInLocation(util.DateFormat, *due, time.Local); err != nil {
					return fmt.Errorf("due: %w", err)
				}
			}
			if err := form.Validate(); err != nil {
				return err
			}
			err = api.Update(ctx, *id, form.Homework())
		}
		if err != nil {
			return cli.explain(err)
		}
		return cli.listHomework(ctx)
	default:
		cmd.Usage()
		return errHelp
	}
}

func pick(flagValue, current string) string {
	if flagValue != "" {
		return flagValue
	}
	return current
}

func (cli *commandLine) findHomework(ctx context.Context, id uint64) (model.Homework, error) {
	items, err := cli.api.Homework().List(ctx)
	if err != nil {
		return model.Homework{}, cli.explain(err)
	}
	for _, hw := range items {
		if hw.ID == id {
			return hw, nil
		}
	}
	return model.Homework{}, fmt.Errorf("no homework #%d", id)
}

func (cli *commandLine) listHomework(ctx context.Context) error {
	items, err := cli.api.Homework().List(ctx)
	if err != nil {
		return cli.explain(err)
	}
	if len(items) == 0 {
		cli.println("No homework yet. Add some with: planner homework add -title ... -subject ...")
		return nil
	}
	for _, hw := range items {
		mark := " "
		if hw.Completed {
			mark = "x"
		}
		cli.printf("[%s] #%d %s (%s) due %s", mark, hw.ID, hw.Title, hw.Subject, hw.Due().Format(util.DateFormat))
		if notes, ok := hw.Notes.Get(); ok {
			cli.printf(" - %s", notes)
		}
		cli.println()
	}
	return nil
}

func (cli *commandLine) timetable(ctx context.Context, args []string) error {
	if _, err := cli.enter(ctx, "/timetable"); err != nil {
		return err
	}
	sub, rest := cli.subcommand(args)

	cmd := flag.NewFlagSet("timetable "+sub, flag.ContinueOnError)
	cmd.SetOutput(cli.out)
	id := cmd.Uint64("id", 0, "entry id (edit, rm)")
	day := cmd.String("day", "", "Monday..Sunday")
	subject := cmd.String("subject", "", "school subject")
	start := cmd.String("start", "", "start time, HH:MM")
	end := cmd.String("end", "", "end time, HH:MM")
	location := cmd.String("location", "", "optional room")
	clearLocation := cmd.Bool("clear-location", false, "remove the room (edit)")
	if err := cmd.Parse(rest); err != nil {
		return err
	}

	api := cli.api.Timetable()
	switch sub {
	case "list":
		return cli.listTimetable(ctx, *day)
	case "add", "edit":
		form := forms.TimetableForm{Day: *day, Subject: *subject, Location: *location}
		if sub == "edit" {
			if *id == 0 {
				cmd.Usage()
				return errHelp
			}
			current, err := cli.findEntry(ctx, *id)
			if err != nil {
				return err
			}
			form = forms.TimetableForm{
				Day:         pick(*day, string(current.Day)),
				Subject:     pick(*subject, current.Subject),
				StartHour:   current.StartTime.Hour,
				StartMinute: current.StartTime.Minute,
				EndHour:     current.EndTime.Hour,
				EndMinute:   current.EndTime.Minute,
				Location:    pick(*location, current.Location.OrElse("")),
			}
			if *clearLocation {
				form.Location = ""
			}
		} else if *start == "" || *end == "" {
			cmd.Usage()
			return errHelp
		}

		var err error
		if *start != "" {
			if form.StartHour, form.StartMinute, err = forms.ParseClock(*start); err != nil {
				return err
			}
		}
		if *end != "" {
			if form.EndHour, form.EndMinute, err = forms.ParseClock(*end); err != nil {
				return err
			}
		}
		if err := form.Validate(); err != nil {
			return err
		}

		if sub == "add" {
			newID, err := api.Create(ctx, form.Entry())
			if err != nil {
				return cli.explain(err)
			}
			cli.printf("Added entry #%d\n", newID)
		} else if err := api.Update(ctx, *id, form.Entry()); err != nil {
			return cli.explain(err)
		}
		return cli.listTimetable(ctx, form.Day)
	case "rm":
		if *id == 0 {
			cmd.Usage()
			return errHelp
		}
		if err := api.Delete(ctx, *id); err != nil {
			return cli.explain(err)
		}
		return cli.listTimetable(ctx, "")
	default:
		cmd.Usage()
		return errHelp
	}
}

func (cli *commandLine) findEntry(ctx context.Context, id uint64) (model.TimetableEntry, error) {
	entries, err := cli.api.Timetable().List(ctx)
	if err != nil {
		return model.TimetableEntry{}, cli.explain(err)
	}
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return model.TimetableEntry{}, fmt.Errorf("no timetable entry #%d", id)
}

func (cli *commandLine) listTimetable(ctx context.Context, dayName string) error {
	var (
		entries []model.TimetableEntry
		err     error
	)
	if dayName != "" {
		day, parseErr := model.ParseDay(dayName)
		if parseErr != nil {
			return parseErr
		}
		entries, err = cli.api.Timetable().ListByDay(ctx, day)
	} else {
		entries, err = cli.api.Timetable().List(ctx)
	}
	if err != nil {
		return cli.explain(err)
	}
	if len(entries) == 0 {
		cli.println("No classes yet. Add one with: planner timetable add -day Monday -subject Art -start 09:00 -end 10:00")
		return nil
	}

	byDay := make(map[model.Day][]model.TimetableEntry)
	for _, e := range entries {
		byDay[e.Day] = append(byDay[e.Day], e)
	}
	for _, day := range model.Days {
		if len(byDay[day]) == 0 {
			continue
		}
		slices.SortStableFunc(byDay[day], func(a, b model.TimetableEntry) int {
			return a.StartTime.Minutes() - b.StartTime.Minutes()
		})
		cli.println(string(day))
		for _, e := range byDay[day] {
			cli.printf("  #%d %s-%s %s", e.ID, e.StartTime, e.EndTime, e.Subject)
			if loc, ok := e.Location.Get(); ok {
				cli.printf(" @ %s", loc)
			}
			cli.println()
		}
	}
	return nil
}

func (cli *commandLine) profile(ctx context.Context, args []string) error {
	if _, err := cli.enter(ctx, "/home"); err != nil {
		return err
	}
	sub, rest := cli.subcommand(args)
	if sub == "list" {
		sub = "show"
	}

	cmd := flag.NewFlagSet("profile "+sub, flag.ContinueOnError)
	cmd.SetOutput(cli.out)
	name := cmd.String("name", "", "your name")
	if err := cmd.Parse(rest); err != nil {
		return err
	}

	switch sub {
	case "show":
		profile, err := cli.api.Profile().Get(ctx)
		if err != nil {
			return cli.explain(err)
		}
		if p, ok := profile.Value(); ok {
			cli.printf("Name: %s\n", p.Name)
		} else {
			cli.println("No profile yet.")
		}
		return nil
	case "set":
		form := forms.ProfileForm{Name: *name}
		if err := form.Validate(); err != nil {
			return err
		}
		if err := cli.api.Profile().Save(ctx, strings.TrimSpace(*name)); err != nil {
			return cli.explain(err)
		}
		cli.printf("Name saved: %s\n", strings.TrimSpace(*name))
		return nil
	default:
		cmd.Usage()
		return errHelp
	}
}

func (cli *commandLine) scene(ctx context.Context, args []string) error {
	sub, rest := cli.subcommand(args)
	switch sub {
	case "show", "list":
		current := cli.prefs.Scene()
		if sub == "show" {
			cli.printf("Scene: %s\n", current)
			return nil
		}
		scenes, err := cli.api.Scenes(ctx)
		if err != nil {
			return cli.explain(err)
		}
		for _, s := range scenes {
			mark := " "
			if s.Name == current {
				mark = "*"
			}
			cli.printf("%s %-10s %s\n", mark, s.Name, s.URL)
		}
		return nil
	case "set":
		if len(rest) == 0 {
			cli.println("Usage: planner scene set classroom|garden|library|playground")
			return errHelp
		}
		if err := cli.prefs.SetScene(model.Scene(rest[0])); err != nil {
			return err
		}
		cli.printf("Scene: %s\n", cli.prefs.Scene())
		return nil
	default:
		cli.println("Usage: planner scene show|set|list")
		return errHelp
	}
}

func (cli *commandLine) role(ctx context.Context) error {
	role, err := cli.api.Role().Get(ctx)
	if err != nil {
		return cli.explain(err)
	}
	cli.printf("Role: %s\n", role)
	return nil
}

func (cli *commandLine) admin(ctx context.Context, args []string) error {
	if _, err := cli.enter(ctx, "/home"); err != nil {
		return err
	}
	if len(args) == 0 || args[0] != "assign" {
		cli.println("Usage: planner admin assign -principal ID -role admin|user|guest")
		return errHelp
	}

	cmd := flag.NewFlagSet("admin assign", flag.ContinueOnError)
	cmd.SetOutput(cli.out)
	principal := cmd.String("principal", "", "principal id")
	role := cmd.String("role", "", "admin, user or guest")
	if err := cmd.Parse(args[1:]); err != nil {
		return err
	}
	r := model.UserRole(*role)
	if *principal == "" || !r.Valid() {
		cmd.Usage()
		return errHelp
	}

	if err := cli.api.Role().Assign(ctx, *principal, r); err != nil {
		return cli.explain(err)
	}
	cli.printf("%s is now %s\n", *principal, r)
	return nil
}
