// Package insight serves scored insight tables, reusing them while neither
// the source data nor the reference day has changed.
package insight

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"equipment-feasibility-backend/config"
	"equipment-feasibility-backend/internal/feasibility"
)

// Source provides the catalog, rental and maintenance tables.
type Source interface {
	Load(ctx context.Context) (feasibility.Tables, error)
}

// Snapshot is the insight table for one version of the source data and one reference day.
type Snapshot struct {
	Key         string             `json:"key"`
	Fingerprint string             `json:"fingerprint"`
	Reference   time.Time          `json:"reference"`
	Tables      feasibility.Tables `json:"-"`
	Insights    feasibility.Table  `json:"insights"`
}

// Service computes and caches snapshots.
type Service struct {
	source  Source
	cache   *Cache
	loc     *time.Location
	refresh config.RefreshConfig
	now     func() time.Time

	mu           sync.RWMutex
	loaded       bool
	tables       feasibility.Tables
	fingerprint  string
	invalidateFn []func()
}

// NewService creates a snapshot service over src.
func NewService(src Source, cfg *config.Config) *Service {
	loc := cfg.Analysis.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		source:  src,
		cache:   NewCache(cfg.Server.CacheTTL),
		loc:     loc,
		refresh: cfg.Refresh,
		now:     time.Now,
	}
}

// OnInvalidate registers fn to run whenever cached snapshots are dropped.
func (s *Service) OnInvalidate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidateFn = append(s.invalidateFn, fn)
}

// Invalidate drops every cached snapshot and forgets the loaded tables, so
// the next snapshot reads the source again.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.loaded = false
	s.mu.Unlock()

	s.notifyInvalidated()
}

// notifyInvalidated drops cached snapshots and runs the registered listeners.
func (s *Service) notifyInvalidated() {
	s.cache.Invalidate()

	s.mu.RLock()
	fns := append([]func(){}, s.invalidateFn...)
	s.mu.RUnlock()
	for _, fn := range fns {
		fn()
	}
}

// Refresh reloads the source and invalidates the cache when its content changed.
func (s *Service) Refresh(ctx context.Context) (bool, error) {
	tables, err := s.source.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load source: %w", err)
	}
	fp, err := TablesFingerprint(tables)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	changed := s.loaded && fp != s.fingerprint
	s.loaded = true
	s.tables = tables
	s.fingerprint = fp
	s.mu.Unlock()

	if changed {
		log.Printf("Source data changed (fingerprint %.12s), invalidating cached insights.", fp)
		s.notifyInvalidated()
	}
	return changed, nil
}

// current returns the tables to score. Without a background refresher the
// source is read on every call.
func (s *Service) current(ctx context.Context) (feasibility.Tables, string, error) {
	if s.refresh.Enabled {
		s.mu.RLock()
		loaded, tables, fp := s.loaded, s.tables, s.fingerprint
		s.mu.RUnlock()
		if loaded {
			return tables, fp, nil
		}
	}
	if _, err := s.Refresh(ctx); err != nil {
		return feasibility.Tables{}, "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tables, s.fingerprint, nil
}

// Snapshot returns the insight table for the day of ref. A zero ref means now.
func (s *Service) Snapshot(ctx context.Context, ref time.Time) (*Snapshot, error) {
	if ref.IsZero() {
		ref = s.now()
	}
	day := StartOfDay(ref, s.loc)

	tables, fp, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	key := Key(fp, day)
	if snap, ok := s.cache.Get(key); ok {
		return snap, nil
	}

	snap := &Snapshot{
		Key:         key,
		Fingerprint: fp,
		Reference:   day,
		Tables:      tables,
		Insights:    feasibility.Compute(tables, day),
	}
	s.cache.Put(key, snap)
	return snap, nil
}

// CacheKey identifies the snapshot a request for ref would receive. It is
// empty while the key cannot be known without reading the source.
func (s *Service) CacheKey(ref time.Time) string {
	if !s.refresh.Enabled {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return ""
	}
	if ref.IsZero() {
		ref = s.now()
	}
	return Key(s.fingerprint, StartOfDay(ref, s.loc))
}

// Location is the timezone reference days are computed in.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Run reloads the source on every refresh interval until ctx is done.
func (s *Service) Run(ctx context.Context) {
	if !s.refresh.Enabled {
		log.Println("Source refresher is disabled. Source is read per request.")
		return
	}
	log.Println("Starting source refresher...")

	s.refreshOnce(ctx)

	timer := time.NewTimer(s.refresh.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Source refresher shutting down.")
			return
		case <-timer.C:
			s.refreshOnce(ctx)
			timer.Reset(s.refresh.Interval)
		}
	}
}

func (s *Service) refreshOnce(ctx context.Context) {
	if _, err := s.Refresh(ctx); err != nil {
		log.Printf("Error refreshing source: %v", err)
	}
}
