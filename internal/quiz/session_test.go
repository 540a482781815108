package quiz

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"school_planner_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu      sync.Mutex
	current model.Option[model.QuizProgress]
	saves   []model.QuizProgress
	saveErr error
	// loadGate, when set, holds Load until it is closed.
	loadGate chan struct{}
}

func (f *fakeStore) Load(ctx context.Context) (model.Option[model.QuizProgress], error) {
	if f.loadGate != nil {
		<-f.loadGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current, nil
}

func (f *fakeStore) Save(ctx context.Context, p model.QuizProgress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves = append(f.saves, p)
	f.current = model.Some(p)
	return nil
}

func (f *fakeStore) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saves)
}

func immediate(d time.Duration, f func()) { f() }

// manual holds scheduled callbacks until flush.
type manual struct {
	mu      sync.Mutex
	pending []func()
	delays  []time.Duration
}

func (m *manual) schedule(d time.Duration, f func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, f)
	m.delays = append(m.delays, d)
}

func (m *manual) flush() {
	m.mu.Lock()
	fs := m.pending
	m.pending = nil
	m.mu.Unlock()
	for _, f := range fs {
		f()
	}
}

func wrongChoice(q Question) int {
	return (q.Correct + 1) % len(q.Answers)
}

// play answers every question, getting the first n right.
func play(t *testing.T, s *Session, n int) {
	t.Helper()
	for i := 0; ; i++ {
		q, idx, _, ok := s.Current()
		if !ok {
			return
		}
		require.Equal(t, i, idx)
		choice := q.Correct
		if i >= n {
			choice = wrongChoice(q)
		}
		correct, err := s.Answer(choice)
		require.NoError(t, err)
		assert.Equal(t, i < n, correct)
	}
}

func TestSession_Scenario(t *testing.T) {
	store := &fakeStore{current: model.Some(model.QuizProgress{AttemptsCount: 3, BestScore: 5, LastScore: 5})}
	s := NewSession(store, WithScheduler(immediate))
	ctx := context.Background()

	assert.Equal(t, Intro, s.Phase())
	require.NoError(t, s.Start(ctx))
	assert.Equal(t, Playing, s.Phase())

	play(t, s, 6)

	assert.Equal(t, Results, s.Phase())
	assert.Equal(t, uint64(6), s.Score())
	assert.Equal(t, 8, s.Total())

	got, err := s.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.QuizProgress{AttemptsCount: 4, BestScore: 6, LastScore: 6}, got)
	assert.Equal(t, 1, store.saveCount())
}

func TestSession_FirstAttempt(t *testing.T) {
	store := &fakeStore{}
	s := NewSession(store, WithScheduler(immediate))
	ctx := context.Background()

	require.NoError(t, s.Start(ctx))
	play(t, s, 0)

	got, err := s.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.QuizProgress{AttemptsCount: 1, BestScore: 0, LastScore: 0}, got)
}

func TestSession_AnswerLock(t *testing.T) {
	sched := &manual{}
	s := NewSession(&fakeStore{}, WithScheduler(sched.schedule))
	require.NoError(t, s.Start(context.Background()))

	q, _, _, _ := s.Current()
	correct, err := s.Answer(q.Correct)
	require.NoError(t, err)
	assert.True(t, correct)

	_, err = s.Answer(wrongChoice(q))
	assert.ErrorIs(t, err, ErrAnswerLocked)
	assert.Equal(t, uint64(1), s.Score())
	assert.Equal(t, []time.Duration{FeedbackDelay}, sched.delays)

	_, idx, _, _ := s.Current()
	assert.Equal(t, 0, idx, "still showing feedback")

	sched.flush()
	_, idx, _, _ = s.Current()
	assert.Equal(t, 1, idx)

	_, err = s.Answer(99)
	assert.ErrorIs(t, err, ErrBadChoice)
}

func TestSession_SingleSaveAcrossRuns(t *testing.T) {
	store := &fakeStore{}
	s := NewSession(store, WithScheduler(immediate))
	ctx := context.Background()

	assert.ErrorIs(t, s.TryAgain(ctx), ErrNoResults)
	_, err := s.Wait(ctx)
	assert.ErrorIs(t, err, ErrNoResults)

	require.NoError(t, s.Start(ctx))
	assert.ErrorIs(t, s.Start(ctx), ErrAlreadyActive)
	play(t, s, 8)
	_, err = s.Wait(ctx)
	require.NoError(t, err)

	_, err = s.Answer(0)
	assert.ErrorIs(t, err, ErrNotPlaying)

	require.NoError(t, s.TryAgain(ctx))
	assert.Equal(t, uint64(0), s.Score())
	play(t, s, 3)
	got, err := s.Wait(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, store.saveCount())
	assert.Equal(t, model.QuizProgress{AttemptsCount: 2, BestScore: 8, LastScore: 3}, got)
}

func TestSession_ShortBank(t *testing.T) {
	sched := &manual{}
	store := &fakeStore{}
	s := NewSession(store, WithScheduler(sched.schedule), WithQuestions(Bank[:2]))
	ctx := context.Background()

	require.NoError(t, s.Start(ctx))
	_, err := s.Answer(Bank[0].Correct)
	require.NoError(t, err)
	sched.flush()
	_, err = s.Answer(Bank[1].Correct)
	require.NoError(t, err)
	assert.Equal(t, Playing, s.Phase(), "last answer is still on screen")
	assert.Zero(t, store.saveCount())

	sched.flush()
	assert.Equal(t, Results, s.Phase())
	got, err := s.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), got.BestScore)
	assert.Equal(t, 1, store.saveCount())
}

func TestSession_SaveError(t *testing.T) {
	boom := errors.New("store down")
	store := &fakeStore{saveErr: boom}
	s := NewSession(store, WithScheduler(immediate))
	ctx := context.Background()

	require.NoError(t, s.Start(ctx))
	play(t, s, 4)

	_, err := s.Wait(ctx)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Results, s.Phase())
}

func TestSession_StartWaitsForPendingSave(t *testing.T) {
	gate := make(chan struct{})
	store := &fakeStore{loadGate: gate}
	s := NewSession(store, WithScheduler(immediate))
	ctx := context.Background()

	require.NoError(t, s.Start(ctx))
	play(t, s, 5)
	require.Equal(t, Results, s.Phase())

	assert.ErrorIs(t, s.TryAgain(ctx), ErrSavePending)
	assert.ErrorIs(t, s.Start(ctx), ErrSavePending)
	assert.Equal(t, Results, s.Phase())

	close(gate)
	first, err := s.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.QuizProgress{AttemptsCount: 1, BestScore: 5, LastScore: 5}, first)

	require.NoError(t, s.TryAgain(ctx))
	play(t, s, 3)
	second, err := s.Wait(ctx)
	require.NoError(t, err)

	assert.Equal(t, model.QuizProgress{AttemptsCount: 2, BestScore: 5, LastScore: 3}, second)
	assert.Equal(t, 2, store.saveCount())
}
