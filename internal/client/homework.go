package client

import (
	"context"
	"net/http"
	"slices"
	"strconv"

	"school_planner_backend/internal/model"
)

type HomeworkAPI struct {
	c *Client
}

func (c *Client) Homework() *HomeworkAPI {
	return &HomeworkAPI{c: c}
}

type createdID struct {
	ID uint64 `json:"id"`
}

func (a *HomeworkAPI) List(ctx context.Context) ([]model.Homework, error) {
	items, err := load[[]model.Homework](ctx, a.c, KeyHomework, "/homework", authRequired)
	if err != nil {
		return nil, err
	}
	if items == nil {
		return []model.Homework{}, nil
	}
	return slices.Clone(items), nil
}

// Create returns the id the store assigned. Any id on hw is ignored.
func (a *HomeworkAPI) Create(ctx context.Context, hw model.Homework) (uint64, error) {
	var out createdID
	if err := a.c.mutate(ctx, KeyHomework, http.MethodPost, "/homework", homeworkBody(hw), &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (a *HomeworkAPI) Update(ctx context.Context, id uint64, hw model.Homework) error {
	return a.c.mutate(ctx, KeyHomework, http.MethodPut, "/homework/"+strconv.FormatUint(id, 10), homeworkBody(hw), nil)
}

func (a *HomeworkAPI) Delete(ctx context.Context, id uint64) error {
	return a.c.mutate(ctx, KeyHomework, http.MethodDelete, "/homework/"+strconv.FormatUint(id, 10), nil, nil)
}

// ToggleCompleted flips the completed flag, keeping every other field.
func (a *HomeworkAPI) ToggleCompleted(ctx context.Context, hw model.Homework) error {
	hw.Completed = !hw.Completed
	return a.Update(ctx, hw.ID, hw)
}

func (a *HomeworkAPI) Pending() bool {
	return a.c.Pending(KeyHomework)
}

func homeworkBody(hw model.Homework) any {
	return struct {
		Title     string               `json:"title"`
		Subject   string               `json:"subject"`
		Completed bool                 `json:"completed"`
		DueDate   int64                `json:"dueDate"`
		Notes     model.Option[string] `json:"notes,omitzero"`
	}{hw.Title, hw.Subject, hw.Completed, hw.DueDate, hw.Notes}
}
