package config

import (
	"sync"
	"sync/atomic"

	fsnotify "github.com/fsnotify/fsnotify"
	domain "github.com/inference-gateway/gridpick/internal/domain"
)

// Store holds the last-known-good configuration. Readers take immutable
// snapshots; an update with invalid keys keeps the previous value for each
// of them.
type Store struct {
	current atomic.Pointer[Config]

	mu          sync.Mutex
	subscribers []func(*Config, domain.ConfigErrors)
}

// NewStore creates a store seeded with cfg. Invalid keys in cfg fall back to
// the defaults.
func NewStore(cfg *Config) *Store {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	seed := cfg.Clone()
	seed.Sanitize(DefaultConfig())

	s := &Store{}
	s.current.Store(seed)
	return s
}

// Snapshot returns a copy of the current configuration
func (s *Store) Snapshot() *Config {
	return s.current.Load().Clone()
}

// Update replaces the configuration. Every invalid key keeps its
// last-known-good value and is reported.
func (s *Store) Update(cfg *Config) domain.ConfigErrors {
	next := cfg.Clone()
	errs := next.Sanitize(s.current.Load())
	s.current.Store(next)

	s.mu.Lock()
	subscribers := append([]func(*Config, domain.ConfigErrors){}, s.subscribers...)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(next.Clone(), errs)
	}
	return errs
}

// Subscribe registers fn to run after every update
func (s *Store) Subscribe(fn func(*Config, domain.ConfigErrors)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Watch reloads the file through loader whenever it changes on disk. Read
// failures are passed to onError and the current snapshot is kept.
func (s *Store) Watch(loader *Loader, onError func(error)) {
	v := loader.Viper()
	v.OnConfigChange(func(event fsnotify.Event) {
		if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
			return
		}
		cfg, errs, err := loader.Reload(s.current.Load())
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		if rejected := s.Update(cfg); len(rejected) > 0 {
			errs = append(errs, rejected...)
		}
		if len(errs) > 0 && onError != nil {
			onError(errs)
		}
	})
	v.WatchConfig()
}
