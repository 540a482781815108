package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"school_planner_backend/internal/app"
	"school_planner_backend/internal/client"
	"school_planner_backend/internal/config"
	"school_planner_backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryIdentity struct {
	mu    sync.Mutex
	token string
}

func (m *memoryIdentity) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

func (m *memoryIdentity) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

func (m *memoryIdentity) set(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
}

// hitCounter counts requests per method and path before handing them on.
type hitCounter struct {
	mu   sync.Mutex
	hits map[string]int
	next http.Handler
}

func (h *hitCounter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.hits[r.Method+" "+r.URL.Path]++
	h.mu.Unlock()
	h.next.ServeHTTP(w, r)
}

func (h *hitCounter) count(key string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hits[key]
}

func newRecordStore(t *testing.T) (*httptest.Server, *hitCounter) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Server:   config.ServerConfig{Mode: gin.TestMode},
		Database: config.DatabaseConfig{Driver: config.DriverMemory},
		JWT:      config.JWTConfig{Secret: "client-test-secret-client-test-secret", ExpireTime: time.Hour},
		Storage:  config.StorageConfig{Type: "local", LocalPath: t.TempDir()},
	}
	counter := &hitCounter{hits: map[string]int{}, next: app.NewRouter(cfg, app.NewServices(cfg, app.MemoryStores()), nil, nil)}
	srv := httptest.NewServer(counter)
	t.Cleanup(srv.Close)
	return srv, counter
}

func signedIn(t *testing.T, srv *httptest.Server, email string) (*client.Client, *memoryIdentity) {
	t.Helper()
	ctx := context.Background()
	id := &memoryIdentity{}
	c := client.New(srv.URL+"/api", id, client.NewCache())

	_, err := c.Register(ctx, email, "secret123")
	require.NoError(t, err)
	s, err := c.Login(ctx, email, "secret123")
	require.NoError(t, err)
	id.set(s.Token)
	return c, id
}

func TestClient_Unauthenticated(t *testing.T) {
	srv, counter := newRecordStore(t)
	c := client.New(srv.URL+"/api", &memoryIdentity{}, client.NewCache())
	ctx := context.Background()

	_, err := c.Homework().List(ctx)
	assert.ErrorIs(t, err, client.ErrUnauthenticated)
	assert.Zero(t, counter.count("GET /api/homework"), "no request without identity")

	role, err := c.Role().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Guest, role)

	_, err = c.Login(ctx, "nobody@school.test", "secret123")
	assert.ErrorIs(t, err, client.ErrInvalidCredentials)
	assert.NotErrorIs(t, err, client.ErrUnauthenticated)
	assert.False(t, client.IsRetryable(err))
}

func TestClient_ExpiredTokenIsUnauthenticated(t *testing.T) {
	srv, _ := newRecordStore(t)
	id := &memoryIdentity{token: "garbage"}
	c := client.New(srv.URL+"/api", id, client.NewCache())

	_, err := c.Homework().List(context.Background())
	assert.ErrorIs(t, err, client.ErrUnauthenticated)
}

func TestClient_HomeworkCacheInvalidation(t *testing.T) {
	srv, counter := newRecordStore(t)
	c, _ := signedIn(t, srv, "kid@school.test")
	ctx := context.Background()
	hw := c.Homework()

	items, err := hw.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
	_, err = hw.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counter.count("GET /api/homework"), "second list is served from cache")

	due := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC).UnixNano()
	id, err := hw.Create(ctx, model.Homework{ID: 42, Title: "Math HW", Subject: "Math", DueDate: due})
	require.NoError(t, err)
	assert.NotZero(t, id)

	items, err = hw.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counter.count("GET /api/homework"), "create invalidates the list")
	require.Len(t, items, 1)
	assert.Equal(t, id, items[0].ID)
	assert.Equal(t, "Math HW", items[0].Title)
	assert.False(t, items[0].Completed)
	assert.False(t, items[0].Notes.IsSome())

	// edits to a returned slice stay out of the cache
	items[0].Title = "scribbled"
	items, err = hw.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Math HW", items[0].Title)
	assert.Equal(t, 2, counter.count("GET /api/homework"))

	for _, want := range []bool{true, false} {
		require.NoError(t, hw.ToggleCompleted(ctx, items[0]))
		items, err = hw.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, want, items[0].Completed)
		assert.Equal(t, "Math HW", items[0].Title)
		assert.Equal(t, due, items[0].DueDate)
	}

	require.NoError(t, hw.Delete(ctx, id))
	items, err = hw.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	err = hw.Delete(ctx, id)
	assert.ErrorIs(t, err, client.ErrNotFound)
	assert.False(t, client.IsRetryable(err))
}

func TestClient_TimetableByDay(t *testing.T) {
	srv, counter := newRecordStore(t)
	c, _ := signedIn(t, srv, "kid@school.test")
	ctx := context.Background()
	tt := c.Timetable()

	monday, err := tt.ListByDay(ctx, model.Monday)
	require.NoError(t, err)
	assert.Empty(t, monday)

	_, err = tt.Create(ctx, model.TimetableEntry{
		Day:       model.Monday,
		Subject:   "Art",
		StartTime: model.TimeOfDay{Hour: 9},
		EndTime:   model.TimeOfDay{Hour: 10},
	})
	require.NoError(t, err)

	monday, err = tt.ListByDay(ctx, model.Monday)
	require.NoError(t, err)
	require.Len(t, monday, 1)
	assert.Equal(t, "Art", monday[0].Subject)
	assert.Equal(t, model.TimeOfDay{Hour: 9}, monday[0].StartTime)
	assert.Equal(t, 2, counter.count("GET /api/timetable"))

	all, err := tt.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestClient_ProfileStates(t *testing.T) {
	srv, _ := newRecordStore(t)
	c, _ := signedIn(t, srv, "kid@school.test")
	ctx := context.Background()
	profile := c.Profile()

	assert.Equal(t, client.NotLoaded, profile.Peek().State())

	r, err := profile.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, client.Absent, r.State())
	assert.Equal(t, client.Absent, profile.Peek().State())

	require.NoError(t, profile.Save(ctx, "Ada"))
	assert.Equal(t, client.NotLoaded, profile.Peek().State(), "save drops the cached profile")

	r, err = profile.Get(ctx)
	require.NoError(t, err)
	v, ok := r.Value()
	require.True(t, ok)
	assert.Equal(t, "Ada", v.Name)
}

func TestClient_QuizProgress(t *testing.T) {
	srv, _ := newRecordStore(t)
	c, _ := signedIn(t, srv, "kid@school.test")
	ctx := context.Background()
	quiz := c.QuizProgress()

	prev, err := quiz.Load(ctx)
	require.NoError(t, err)
	assert.False(t, prev.IsSome())

	require.NoError(t, quiz.Save(ctx, model.NextQuizProgress(prev, 5)))
	prev, err = quiz.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, quiz.Save(ctx, model.NextQuizProgress(prev, 3)))

	r, err := quiz.Get(ctx)
	require.NoError(t, err)
	got, ok := r.Value()
	require.True(t, ok)
	assert.Equal(t, uint64(2), got.AttemptsCount)
	assert.Equal(t, uint64(5), got.BestScore)
	assert.Equal(t, uint64(3), got.LastScore)
}

func TestClient_Roles(t *testing.T) {
	srv, _ := newRecordStore(t)
	admin, _ := signedIn(t, srv, "admin@school.test")
	kid, _ := signedIn(t, srv, "kid@school.test")
	ctx := context.Background()

	isAdmin, err := admin.Role().IsAdmin(ctx)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	s, err := kid.Login(ctx, "kid@school.test", "secret123")
	require.NoError(t, err)
	assert.Equal(t, model.RegularUser, s.Role)

	err = kid.Role().Assign(ctx, s.Principal, model.Admin)
	assert.Error(t, err)

	require.NoError(t, admin.Role().Assign(ctx, s.Principal, model.Admin))
	role, err := kid.Role().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Admin, role)
}

func TestClient_Logout(t *testing.T) {
	srv, counter := newRecordStore(t)
	c, id := signedIn(t, srv, "kid@school.test")
	ctx := context.Background()

	_, err := c.Homework().List(ctx)
	require.NoError(t, err)

	require.NoError(t, c.Logout())
	_, ok := id.Token()
	assert.False(t, ok)
	_, ok = c.Cache().Get(client.KeyHomework)
	assert.False(t, ok)

	_, err = c.Homework().List(ctx)
	assert.ErrorIs(t, err, client.ErrUnauthenticated)
	assert.Equal(t, 1, counter.count("GET /api/homework"))
}

func TestClient_OneMutationPerKind(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut && r.URL.Path == "/api/profile" {
			entered <- struct{}{}
			<-release
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":200,"message":"success"}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL+"/api", &memoryIdentity{token: "t"}, client.NewCache())
	ctx := context.Background()

	errc := make(chan error, 1)
	go func() { errc <- c.Profile().Save(ctx, "Ada") }()
	<-entered

	assert.True(t, c.Profile().Pending())
	assert.False(t, c.Homework().Pending())
	assert.ErrorIs(t, c.Profile().Save(ctx, "Bea"), client.ErrMutationPending)
	require.NoError(t, c.Homework().Delete(ctx, 1), "other kinds are not blocked")

	close(release)
	require.NoError(t, <-errc)
	assert.False(t, c.Profile().Pending())
}

func TestClient_Retryable(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusServiceUnavailable)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := int(status.Load())
		w.WriteHeader(code)
		if code == http.StatusOK {
			w.Write([]byte(`{"code":200,"message":"success","data":"not a list"}`))
			return
		}
		w.Write([]byte(`{"code":0,"message":"boom"}`))
	}))
	c := client.New(srv.URL+"/api", &memoryIdentity{token: "t"}, client.NewCache(), client.WithHTTPClient(srv.Client()))
	ctx := context.Background()

	_, err := c.Homework().List(ctx)
	require.Error(t, err)
	assert.True(t, client.IsRetryable(err))
	var reqErr *client.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "boom", reqErr.Message)

	status.Store(http.StatusBadRequest)
	_, err = c.Homework().Create(ctx, model.Homework{Title: "x", Subject: "y"})
	require.Error(t, err)
	assert.False(t, client.IsRetryable(err))

	status.Store(http.StatusOK)
	_, err = c.Homework().List(ctx)
	require.Error(t, err)
	assert.False(t, client.IsRetryable(err), "undecodable success body")

	srv.Close()
	_, err = c.Homework().List(ctx)
	require.Error(t, err)
	assert.True(t, client.IsRetryable(err))
}
