// Package store is the durable key/value contract behind the catalog.
//
// Reads and writes are best-effort: Load never fails (it falls back to the
// supplied default) and Save never reports errors to the caller, it logs them.
package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/MrSnakeDoc/learntube/internal/logger"
)

// ErrNotFound is returned by Store.Get for absent keys.
var ErrNotFound = errors.New("store: key not found")

// Store is a byte-oriented key/value backend.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
}

// MultiSetter is implemented by backends that write several keys in one
// round trip.
type MultiSetter interface {
	SetMany(ctx context.Context, values map[string][]byte) error
}

// Load reads key and decodes it into a T. On absence, backend error or
// decode failure it returns def.
func Load[T any](ctx context.Context, s Store, key string, def T, log logger.Logger) T {
	data, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Debug("key absent, using default", logger.String("key", key))
		} else {
			log.Warn("failed to read key, using default",
				logger.String("key", key),
				logger.Error(err))
		}
		return def
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		log.Warn("stored value is corrupt, using default",
			logger.String("key", key),
			logger.Error(err))
		return def
	}
	return v
}

// Save encodes v and writes it under key. Failures are logged and swallowed.
// It reports whether the write went through.
func Save(ctx context.Context, s Store, key string, v any, log logger.Logger) bool {
	data, err := json.Marshal(v)
	if err != nil {
		log.Warn("failed to encode value", logger.String("key", key), logger.Error(err))
		return false
	}
	if err := s.Set(ctx, key, data); err != nil {
		log.Warn("failed to persist value", logger.String("key", key), logger.Error(err))
		return false
	}
	return true
}

// SaveMany encodes every value and writes them together when s is a
// MultiSetter, key by key otherwise. Failures are logged and swallowed.
// It reports whether every write went through.
func SaveMany(ctx context.Context, s Store, values map[string]any, log logger.Logger) bool {
	ms, ok := s.(MultiSetter)
	if !ok || len(values) < 2 {
		all := true
		for key, v := range values {
			all = Save(ctx, s, key, v, log) && all
		}
		return all
	}

	encoded := make(map[string][]byte, len(values))
	for key, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			log.Warn("failed to encode value", logger.String("key", key), logger.Error(err))
			return false
		}
		encoded[key] = data
	}
	if err := ms.SetMany(ctx, encoded); err != nil {
		log.Warn("failed to persist values", logger.Int("keys", len(encoded)), logger.Error(err))
		return false
	}
	return true
}
