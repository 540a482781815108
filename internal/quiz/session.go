// Package quiz runs one player's trivia sessions and records the outcome.
package quiz

import (
	"context"
	"errors"
	"sync"
	"time"

	"school_planner_backend/internal/model"
	"school_planner_backend/pkg/logger"

	"go.uber.org/zap"
)

type Phase int

const (
	Intro Phase = iota
	Playing
	Results
)

func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case Results:
		return "results"
	default:
		return "intro"
	}
}

// FeedbackDelay is how long an answer stays on screen before the next question.
const FeedbackDelay = 1500 * time.Millisecond

var (
	ErrNotPlaying    = errors.New("quiz is not in progress")
	ErrAnswerLocked  = errors.New("answer already given for this question")
	ErrAlreadyActive = errors.New("quiz is already in progress")
	ErrNoResults     = errors.New("quiz has not finished")
	ErrBadChoice     = errors.New("no such answer")
	ErrSavePending   = errors.New("previous quiz result is still being saved")
)

// ProgressStore reads and overwrites the caller's quiz record.
type ProgressStore interface {
	Load(ctx context.Context) (model.Option[model.QuizProgress], error)
	Save(ctx context.Context, p model.QuizProgress) error
}

// Scheduler runs f after d. Tests substitute one that runs f at once.
type Scheduler func(d time.Duration, f func())

func AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

type Option func(*Session)

func WithScheduler(s Scheduler) Option {
	return func(sess *Session) { sess.schedule = s }
}

func WithQuestions(q []Question) Option {
	return func(sess *Session) { sess.questions = q }
}

type Session struct {
	store     ProgressStore
	schedule  Scheduler
	questions []Question

	mu       sync.Mutex
	ctx      context.Context
	phase    Phase
	index    int
	score    uint64
	locked   bool
	run      int
	finished chan struct{}
	result   model.QuizProgress
	saveErr  error
}

func NewSession(store ProgressStore, opts ...Option) *Session {
	s := &Session{
		store:     store,
		schedule:  AfterFunc,
		questions: Bank,
		ctx:       context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Start begins a run from the intro or results screen. A new run cannot
// begin until the previous run's progress save has completed.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == Playing {
		return ErrAlreadyActive
	}
	if s.finished != nil {
		select {
		case <-s.finished:
		default:
			return ErrSavePending
		}
	}
	s.ctx = ctx
	s.phase = Playing
	s.index = 0
	s.score = 0
	s.locked = false
	s.run++
	s.finished = make(chan struct{})
	s.result = model.QuizProgress{}
	s.saveErr = nil
	return nil
}

// TryAgain restarts from the results screen.
func (s *Session) TryAgain(ctx context.Context) error {
	if s.Phase() != Results {
		return ErrNoResults
	}
	return s.Start(ctx)
}

// Current returns the question on screen and its position.
func (s *Session) Current() (q Question, index, total int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != Playing {
		return Question{}, 0, len(s.questions), false
	}
	return s.questions[s.index], s.index, len(s.questions), true
}

func (s *Session) Score() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

func (s *Session) Total() int {
	return len(s.questions)
}

// Answer locks the current question and schedules the advance.
func (s *Session) Answer(choice int) (correct bool, err error) {
	s.mu.Lock()
	if s.phase != Playing {
		s.mu.Unlock()
		return false, ErrNotPlaying
	}
	if s.locked {
		s.mu.Unlock()
		return false, ErrAnswerLocked
	}
	q := s.questions[s.index]
	if choice < 0 || choice >= len(q.Answers) {
		s.mu.Unlock()
		return false, ErrBadChoice
	}

	s.locked = true
	correct = choice == q.Correct
	if correct {
		s.score++
	}
	run, index := s.run, s.index
	s.mu.Unlock()

	s.schedule(FeedbackDelay, func() { s.advance(run, index) })
	return correct, nil
}

func (s *Session) advance(run, index int) {
	s.mu.Lock()
	// a restart or an earlier advance already moved on
	if s.run != run || s.index != index || s.phase != Playing {
		s.mu.Unlock()
		return
	}
	s.locked = false
	if s.index+1 < len(s.questions) {
		s.index++
		s.mu.Unlock()
		return
	}

	s.phase = Results
	ctx, score, finished := s.ctx, s.score, s.finished
	s.mu.Unlock()

	go s.save(ctx, run, score, finished)
}

// save submits the run's single progress update.
func (s *Session) save(ctx context.Context, run int, score uint64, finished chan struct{}) {
	var (
		result model.QuizProgress
		err    error
	)
	prev, err := s.store.Load(ctx)
	if err == nil {
		result = model.NextQuizProgress(prev, score)
		err = s.store.Save(ctx, result)
	}
	if err != nil {
		logger.Log.Warn("Failed to save quiz progress", zap.Uint64("score", score), zap.Error(err))
	}

	s.mu.Lock()
	if s.run == run {
		s.result = result
		s.saveErr = err
	}
	s.mu.Unlock()
	close(finished)
}

// Wait blocks until the finished run's progress save completes and returns
// the stored record. A save failure is returned, not retried.
func (s *Session) Wait(ctx context.Context) (model.QuizProgress, error) {
	s.mu.Lock()
	finished, run := s.finished, s.run
	s.mu.Unlock()
	if finished == nil {
		return model.QuizProgress{}, ErrNoResults
	}

	select {
	case <-ctx.Done():
		return model.QuizProgress{}, ctx.Err()
	case <-finished:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run != run {
		return model.QuizProgress{}, ErrNoResults
	}
	return s.result, s.saveErr
}
