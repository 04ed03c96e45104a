package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/motherroad/motherroad/internal/telemetry"
)

// ServiceConfig holds configuration for the catalog service.
type ServiceConfig struct {
	// Provider is the stop catalog data source.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// Metrics records snapshot cache hits and misses (optional).
	Metrics *telemetry.ProviderMetrics

	// SnapshotTTL is how long a snapshot stays fresh (default: 15 minutes).
	// The catalog changes on editorial timescales, so a generous TTL is safe.
	SnapshotTTL time.Duration

	// StaleIfErrorTTL allows serving a stale snapshot when the provider is
	// down (default: 6 hours).
	StaleIfErrorTTL time.Duration
}

// Service provides snapshot access to the stop catalog with caching.
// Every planning request takes one frozen snapshot; concurrent requests may
// share it safely because snapshots are never mutated.
type Service struct {
	provider        Provider
	logger          zerolog.Logger
	metrics         *telemetry.ProviderMetrics
	snapshotTTL     time.Duration
	staleIfErrorTTL time.Duration

	mu        sync.RWMutex
	snapshot  *Snapshot
	expiresAt time.Time
}

// NewService creates a new catalog service.
func NewService(cfg ServiceConfig) *Service {
	snapshotTTL := cfg.SnapshotTTL
	if snapshotTTL == 0 {
		snapshotTTL = 15 * time.Minute
	}

	staleIfErrorTTL := cfg.StaleIfErrorTTL
	if staleIfErrorTTL == 0 {
		staleIfErrorTTL = 6 * time.Hour
	}

	return &Service{
		provider:        cfg.Provider,
		logger:          cfg.Logger,
		metrics:         cfg.Metrics,
		snapshotTTL:     snapshotTTL,
		staleIfErrorTTL: staleIfErrorTTL,
	}
}

// Snapshot returns the current catalog snapshot, fetching from the provider
// if the cached one has expired. On provider failure a stale snapshot is
// served while inside the stale-if-error window; past it, ErrUnavailable.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	s.mu.RLock()
	if s.snapshot != nil && time.Now().Before(s.expiresAt) {
		snap := s.snapshot
		s.mu.RUnlock()
		s.recordCacheHit()
		return snap, nil
	}
	s.mu.RUnlock()

	return s.refresh(ctx)
}

// Refresh forces a snapshot fetch regardless of freshness.
func (s *Service) Refresh(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	s.expiresAt = time.Time{}
	s.mu.Unlock()
	return s.refresh(ctx)
}

// refresh fetches a fresh snapshot under the write lock.
func (s *Service) refresh(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring the write lock (prevents thundering herd).
	if s.snapshot != nil && time.Now().Before(s.expiresAt) {
		s.recordCacheHit()
		return s.snapshot, nil
	}

	s.recordCacheMiss()

	s.logger.Debug().
		Str("provider", s.provider.Name()).
		Msg("fetching stop catalog from provider")

	stops, err := s.provider.FetchAllStops(ctx)
	if err != nil {
		s.logger.Error().Err(err).
			Str("provider", s.provider.Name()).
			Msg("failed to fetch stop catalog")

		// Serve stale snapshot while within the stale-if-error window.
		if s.snapshot != nil && time.Now().Before(s.snapshot.FetchedAt.Add(s.staleIfErrorTTL)) {
			s.logger.Warn().
				Time("fetched_at", s.snapshot.FetchedAt).
				Msg("serving stale catalog snapshot due to provider error")
			return s.snapshot, nil
		}

		return nil, ErrUnavailable
	}

	if len(stops) == 0 {
		s.logger.Error().
			Str("provider", s.provider.Name()).
			Msg("provider returned empty catalog")
		if s.snapshot != nil && time.Now().Before(s.snapshot.FetchedAt.Add(s.staleIfErrorTTL)) {
			return s.snapshot, nil
		}
		return nil, ErrEmptyCatalog
	}

	snap := NewSnapshot(stops, s.provider.Name(), 0)
	s.snapshot = snap
	s.expiresAt = snap.FetchedAt.Add(s.snapshotTTL)

	s.logger.Info().
		Int("stops", len(snap.Stops)).
		Int("destination_cities", len(snap.DestinationCities)).
		Str("provider", snap.Provider).
		Msg("stop catalog snapshot refreshed")

	return snap, nil
}

func (s *Service) recordCacheHit() {
	if s.metrics != nil {
		s.metrics.RecordCacheHit(s.provider.Name(), "snapshot")
	}
}

func (s *Service) recordCacheMiss() {
	if s.metrics != nil {
		s.metrics.RecordCacheMiss(s.provider.Name(), "snapshot")
	}
}

// Invalidate drops the cached snapshot so the next request refetches.
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = nil
	s.expiresAt = time.Time{}
}

// Stats describes the state of the cached snapshot.
type Stats struct {
	HasSnapshot       bool
	StopCount         int
	DestinationCities int
	ByCategory        map[Category]int
	FetchedAt         time.Time
	Fresh             bool
	Provider          string
}

// Stats returns statistics about the cached snapshot.
func (s *Service) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{Provider: s.provider.Name()}
	if s.snapshot == nil {
		return stats
	}

	stats.HasSnapshot = true
	stats.StopCount = len(s.snapshot.Stops)
	stats.DestinationCities = len(s.snapshot.DestinationCities)
	stats.ByCategory = s.snapshot.CountByCategory()
	stats.FetchedAt = s.snapshot.FetchedAt
	stats.Fresh = time.Now().Before(s.expiresAt)
	return stats
}

// ProviderName returns the name of the underlying provider.
func (s *Service) ProviderName() string {
	return s.provider.Name()
}
