package client

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"school_planner_backend/internal/model"
)

type TimetableAPI struct {
	c *Client
}

func (c *Client) Timetable() *TimetableAPI {
	return &TimetableAPI{c: c}
}

func (a *TimetableAPI) List(ctx context.Context) ([]model.TimetableEntry, error) {
	entries, err := load[[]model.TimetableEntry](ctx, a.c, KeyTimetable, "/timetable", authRequired)
	if err != nil {
		return nil, err
	}
	return cloneEntries(entries), nil
}

// ListByDay is cached under a sub view of the timetable key, so any timetable
// mutation drops it too.
func (a *TimetableAPI) ListByDay(ctx context.Context, day model.Day) ([]model.TimetableEntry, error) {
	path := "/timetable?day=" + url.QueryEscape(string(day))
	entries, err := load[[]model.TimetableEntry](ctx, a.c, KeyTimetable.Sub(string(day)), path, authRequired)
	if err != nil {
		return nil, err
	}
	return cloneEntries(entries), nil
}

func (a *TimetableAPI) Create(ctx context.Context, entry model.TimetableEntry) (uint64, error) {
	var out createdID
	if err := a.c.mutate(ctx, KeyTimetable, http.MethodPost, "/timetable", entryBody(entry), &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (a *TimetableAPI) Update(ctx context.Context, id uint64, entry model.TimetableEntry) error {
	return a.c.mutate(ctx, KeyTimetable, http.MethodPut, "/timetable/"+strconv.FormatUint(id, 10), entryBody(entry), nil)
}

func (a *TimetableAPI) Delete(ctx context.Context, id uint64) error {
	return a.c.mutate(ctx, KeyTimetable, http.MethodDelete, "/timetable/"+strconv.FormatUint(id, 10), nil, nil)
}

func (a *TimetableAPI) Pending() bool {
	return a.c.Pending(KeyTimetable)
}

func cloneEntries(entries []model.TimetableEntry) []model.TimetableEntry {
	if entries == nil {
		return []model.TimetableEntry{}
	}
	return slices.Clone(entries)
}

func entryBody(e model.TimetableEntry) any {
	return struct {
		Day       model.Day            `json:"day"`
		Subject   string               `json:"subject"`
		StartTime model.TimeOfDay      `json:"startTime"`
		EndTime   model.TimeOfDay      `json:"endTime"`
		Location  model.Option[string] `json:"location,omitzero"`
	}{e.Day, e.Subject, e.StartTime, e.EndTime, e.Location}
}
