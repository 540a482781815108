package client

import (
	"context"
	"net/http"
	"net/url"

	"school_planner_backend/internal/model"
)

type ProfileAPI struct {
	c *Client
}

func (c *Client) Profile() *ProfileAPI {
	return &ProfileAPI{c: c}
}

// Get loads the caller's profile. Absent means the caller is not onboarded yet.
func (a *ProfileAPI) Get(ctx context.Context) (Remote[model.UserProfile], error) {
	opt, err := load[model.Option[model.UserProfile]](ctx, a.c, KeyProfile, "/profile", authRequired)
	if err != nil {
		return Remote[model.UserProfile]{}, err
	}
	return Loaded(opt), nil
}

// Peek reports the cached profile without a round trip.
func (a *ProfileAPI) Peek() Remote[model.UserProfile] {
	opt, ok := cached[model.Option[model.UserProfile]](a.c.cache, KeyProfile)
	if !ok {
		return Remote[model.UserProfile]{}
	}
	return Loaded(opt)
}

// GetFor reads another principal's profile. It is not cached.
func (a *ProfileAPI) GetFor(ctx context.Context, principalID string) (Remote[model.UserProfile], error) {
	var opt model.Option[model.UserProfile]
	path := "/users/" + url.PathEscape(principalID) + "/profile"
	if err := a.c.do(ctx, http.MethodGet, path, authRequired, nil, &opt); err != nil {
		return Remote[model.UserProfile]{}, err
	}
	return Loaded(opt), nil
}

func (a *ProfileAPI) Save(ctx context.Context, name string) error {
	return a.c.mutate(ctx, KeyProfile, http.MethodPut, "/profile", map[string]string{"name": name}, nil)
}

func (a *ProfileAPI) Pending() bool {
	return a.c.Pending(KeyProfile)
}

type QuizProgressAPI struct {
	c *Client
}

func (c *Client) QuizProgress() *QuizProgressAPI {
	return &QuizProgressAPI{c: c}
}

func (a *QuizProgressAPI) Get(ctx context.Context) (Remote[model.QuizProgress], error) {
	opt, err := load[model.Option[model.QuizProgress]](ctx, a.c, KeyQuizProgress, "/quiz/progress", authRequired)
	if err != nil {
		return Remote[model.QuizProgress]{}, err
	}
	return Loaded(opt), nil
}

// Save overwrites the caller's record with p as given.
func (a *QuizProgressAPI) Save(ctx context.Context, p model.QuizProgress) error {
	return a.c.mutate(ctx, KeyQuizProgress, http.MethodPut, "/quiz/progress", p, nil)
}

func (a *QuizProgressAPI) Pending() bool {
	return a.c.Pending(KeyQuizProgress)
}

type RoleAPI struct {
	c *Client
}

func (c *Client) Role() *RoleAPI {
	return &RoleAPI{c: c}
}

// Get answers guest for callers without an identity.
func (a *RoleAPI) Get(ctx context.Context) (model.UserRole, error) {
	var out struct {
		Role model.UserRole `json:"role"`
	}
	if err := a.c.do(ctx, http.MethodGet, "/role", authOptional, nil, &out); err != nil {
		return "", err
	}
	return out.Role, nil
}

func (a *RoleAPI) IsAdmin(ctx context.Context) (bool, error) {
	var out struct {
		Admin bool `json:"admin"`
	}
	if err := a.c.do(ctx, http.MethodGet, "/role/admin", authRequired, nil, &out); err != nil {
		return false, err
	}
	return out.Admin, nil
}

func (a *RoleAPI) Assign(ctx context.Context, principalID string, role model.UserRole) error {
	path := "/admin/roles/" + url.PathEscape(principalID)
	return a.c.mutate(ctx, KeyRole, http.MethodPut, path, map[string]model.UserRole{"role": role}, nil)
}

// Load is Get without the loading state, for callers that only need the record.
func (a *QuizProgressAPI) Load(ctx context.Context) (model.Option[model.QuizProgress], error) {
	r, err := a.Get(ctx)
	if err != nil {
		return model.None[model.QuizProgress](), err
	}
	return r.Option(), nil
}
