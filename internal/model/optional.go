package model

import (
	"bytes"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Option holds either a value (Some) or nothing (None). The zero value is None.
// It round-trips JSON null and SQL NULL as None.
type Option[T any] struct {
	value T
	ok    bool
}

func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

func None[T any]() Option[T] {
	return Option[T]{}
}

func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

func (o Option[T]) IsSome() bool {
	return o.ok
}

func (o Option[T]) OrElse(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

func (o Option[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

func (o *Option[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = None[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

func (o Option[T]) Value() (driver.Value, error) {
	if !o.ok {
		return nil, nil
	}
	return driver.DefaultParameterConverter.ConvertValue(o.value)
}

func (o *Option[T]) Scan(src any) error {
	if src == nil {
		*o = None[T]()
		return nil
	}

	var v T
	switch dst := any(&v).(type) {
	case *string:
		switch s := src.(type) {
		case string:
			*dst = s
		case []byte:
			*dst = string(s)
		default:
			return fmt.Errorf("option: cannot scan %T into string", src)
		}
	case sql.Scanner:
		if err := dst.Scan(src); err != nil {
			return err
		}
	default:
		typed, ok := src.(T)
		if !ok {
			return fmt.Errorf("option: cannot scan %T into %T", src, v)
		}
		v = typed
	}

	*o = Some(v)
	return nil
}
