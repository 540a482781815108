package client

import "school_planner_backend/internal/model"

type State int

const (
	NotLoaded State = iota
	Absent
	Present
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Present:
		return "present"
	default:
		return "not loaded"
	}
}

// Remote is a record the store may or may not hold, seen from the client.
// The zero value is NotLoaded.
type Remote[T any] struct {
	state State
	value T
}

func Loaded[T any](opt model.Option[T]) Remote[T] {
	if v, ok := opt.Get(); ok {
		return Remote[T]{state: Present, value: v}
	}
	return Remote[T]{state: Absent}
}

func (r Remote[T]) State() State {
	return r.state
}

func (r Remote[T]) Loaded() bool {
	return r.state != NotLoaded
}

func (r Remote[T]) Value() (T, bool) {
	return r.value, r.state == Present
}

// Option drops the loading state. NotLoaded and Absent both become None.
func (r Remote[T]) Option() model.Option[T] {
	if r.state == Present {
		return model.Some(r.value)
	}
	return model.None[T]()
}
