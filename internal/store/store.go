// Package store persists the whole task collection as one JSON value in a
// key/value backend. Load and Save never fail from the caller's point of
// view: problems are logged and the session carries on in memory.
package store

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/Makepad-fr/todolist/internal/tasklist"
)

var ErrNotFound = errors.New("store: key not found")

// KV is a minimal key/value backend.
type KV interface {
	// Get returns ErrNotFound when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Adapter loads and saves a collection under a single key.
type Adapter struct {
	kv  KV
	key string
	log *zap.Logger
}

func NewAdapter(kv KV, key string, log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{kv: kv, key: key, log: log}
}

// Load returns the stored collection, or def when nothing usable is stored.
func (a *Adapter) Load(ctx context.Context, def tasklist.Collection) tasklist.Collection {
	b, err := a.kv.Get(ctx, a.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			a.log.Warn("load tasks failed, using defaults", zap.String("key", a.key), zap.Error(err))
		}
		return def
	}
	var c tasklist.Collection
	if err := json.Unmarshal(b, &c); err != nil {
		a.log.Warn("stored tasks are corrupt, using defaults", zap.String("key", a.key), zap.Error(err))
		return def
	}
	if !unique(c) {
		a.log.Warn("stored tasks have duplicate ids, using defaults", zap.String("key", a.key))
		return def
	}
	if c == nil {
		c = tasklist.Collection{}
	}
	return c
}

// Save rewrites the whole collection. It reports whether the write
// succeeded; a failure has already been logged.
func (a *Adapter) Save(ctx context.Context, c tasklist.Collection) bool {
	if c == nil {
		c = tasklist.Collection{}
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		a.log.Error("encode tasks", zap.Error(err))
		return false
	}
	if err := a.kv.Put(ctx, a.key, b); err != nil {
		a.log.Error("save tasks failed, keeping them in memory", zap.String("key", a.key), zap.Error(err))
		return false
	}
	a.log.Debug("tasks saved", zap.String("key", a.key), zap.Int("count", len(c)))
	return true
}

func (a *Adapter) Close() error {
	return a.kv.Close()
}

func unique(c tasklist.Collection) bool {
	seen := make(map[string]bool, len(c))
	for _, t := range c {
		if t.ID == "" || seen[t.ID] {
			return false
		}
		seen[t.ID] = true
	}
	return true
}
