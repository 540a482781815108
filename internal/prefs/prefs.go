// Package prefs is the local preference store: the chosen scene and the
// session token, kept in a bbolt file next to the user.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"school_planner_backend/internal/model"
	"school_planner_backend/pkg/logger"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

const (
	SceneKey     = "school-planner-selected-scene"
	tokenKey     = "session-token"
	principalKey = "session-principal"
)

var (
	prefsBucket   = []byte("Prefs")
	sessionBucket = []byte("Session")
)

var ErrInvalidScene = errors.New("unknown scene")

type Store struct {
	db *bbolt.DB
}

// lockTimeout bounds the wait for another planner process holding the file.
const lockTimeout = time.Second

// Open opens (or creates) the preference file.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: lockTimeout})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{prefsBucket, sessionBucket} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) get(bucket []byte, key string) (string, bool, error) {
	var (
		out   string
		found bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return fmt.Errorf("bucket %s not found", bucket)
		}
		if v := b.Get([]byte(key)); v != nil {
			out = string(v)
			found = true
		}
		return nil
	})
	return out, found, err
}

func (s *Store) put(bucket []byte, key, value string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucket)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), []byte(value))
	})
}

// Scene returns the saved scene. Missing or unreadable data falls back to the
// default; malformed data is only logged.
func (s *Store) Scene() model.Scene {
	raw, found, err := s.get(prefsBucket, SceneKey)
	if err != nil {
		logger.Log.Warn("Failed to load stored scene", zap.Error(err))
		return model.DefaultScene
	}
	if !found {
		return model.DefaultScene
	}
	scene, ok := model.ParseScene(raw)
	if !ok {
		logger.Log.Warn("Ignoring invalid stored scene", zap.String("value", raw))
		return model.DefaultScene
	}
	return scene
}

func (s *Store) SetScene(scene model.Scene) error {
	if _, ok := model.ParseScene(string(scene)); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidScene, scene)
	}
	return s.put(prefsBucket, SceneKey, string(scene))
}

// SetSession remembers the signed-in caller.
func (s *Store) SetSession(token, principal string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(sessionBucket)
		if err := b.Put([]byte(tokenKey), []byte(token)); err != nil {
			return err
		}
		return b.Put([]byte(principalKey), []byte(principal))
	})
}

// Token implements client.Identity.
func (s *Store) Token() (string, bool) {
	token, found, err := s.get(sessionBucket, tokenKey)
	if err != nil {
		logger.Log.Warn("Failed to load session token", zap.Error(err))
		return "", false
	}
	return token, found && token != ""
}

func (s *Store) Principal() (string, bool) {
	p, found, err := s.get(sessionBucket, principalKey)
	if err != nil {
		return "", false
	}
	return p, found && p != ""
}

// Clear drops the session. The scene choice survives.
func (s *Store) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(sessionBucket)
		if err := b.Delete([]byte(tokenKey)); err != nil {
			return err
		}
		return b.Delete([]byte(principalKey))
	})
}
