// Package cache provides a template-object cache keyed by
// canonicalized source path, avoiding re-parsing identical template
// definitions across repeated calls. Cached templates are read-only
// after insertion.
package cache

import (
	"path/filepath"
	"sync"

	"github.com/fxmartin/create-project-sub002/pkg/logging"
	"github.com/fxmartin/create-project-sub002/pkg/schema"
)

// LoaderFunc loads a template from a path on cache miss.
type LoaderFunc func(path string) (*schema.Template, error)

// Store is a mutex-guarded template cache. The zero value is not
// usable; construct with New.
type Store struct {
	mu      sync.Mutex
	entries map[string]*schema.Template
	loader  LoaderFunc
}

// New returns a Store that loads misses through loader. A nil loader
// defaults to schema.Load.
func New(loader LoaderFunc) *Store {
	if loader == nil {
		loader = schema.Load
	}
	return &Store{
		entries: make(map[string]*schema.Template),
		loader:  loader,
	}
}

// GetOrLoad returns the cached template for path, loading and caching
// it on first access. Paths are canonicalized so equivalent spellings
// share one entry.
func (s *Store) GetOrLoad(path string) (*schema.Template, error) {
	key := canonical(path)

	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.entries[key]; ok {
		return t, nil
	}

	t, err := s.loader(path)
	if err != nil {
		return nil, err
	}
	s.entries[key] = t

	logger := logging.GetLogger("cache")
	logger.Debug().Str("path", key).Msg("Template cached")
	return t, nil
}

// Invalidate drops the entry for path, if present.
func (s *Store) Invalidate(path string) {
	key := canonical(path)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Clear drops every entry.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*schema.Template)
}

// Len returns the number of cached templates.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// canonical resolves a path to its absolute, symlink-free form where
// possible, falling back to a cleaned absolute path.
func canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
