package client

import (
	"context"
	"errors"
	"net/http"

	"school_planner_backend/internal/model"
)

type Session struct {
	Token     string         `json:"token"`
	Principal string         `json:"principal"`
	Role      model.UserRole `json:"role"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Register(ctx context.Context, email, password string) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodPost, "/register", authNone, credentials{email, password}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a session. Storing the token is up to the
// Identity holder. Views cached for a previous caller are dropped. A 401
// here is a credential rejection and is reported as ErrInvalidCredentials.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var s Session
	if err := c.do(ctx, http.MethodPost, "/login", authNone, credentials{email, password}, &s); err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	c.cache.Clear()
	return &s, nil
}

func (c *Client) Scenes(ctx context.Context) ([]model.SceneInfo, error) {
	var scenes []model.SceneInfo
	if err := c.do(ctx, http.MethodGet, "/scenes", authNone, nil, &scenes); err != nil {
		return nil, err
	}
	return scenes, nil
}
