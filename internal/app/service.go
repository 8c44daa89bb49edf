// Package service provides the core statistics service consumed by
// the presentation layer: session recording, roster management, trend
// series, and state backup.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/meeple/internal/adapters/backup"
	"github.com/okian/meeple/internal/adapters/storage"
	"github.com/okian/meeple/internal/domain/aggregate"
	"github.com/okian/meeple/internal/domain/model"
	"github.com/okian/meeple/internal/domain/roster"
	"github.com/okian/meeple/internal/domain/scoring"
	"github.com/okian/meeple/internal/domain/trend"
	"github.com/okian/meeple/pkg/logger"
	"github.com/okian/meeple/pkg/metrics"
)

// Default persistence target when no store is injected.
const defaultDataFile = "meeple.json"

// Service owns the roster and the session ledger. All operations run
// to completion under one mutex; the ledger append and the roster
// update of a recorded session commit together, never separately.
//
// Persistence is write-through: every mutation is followed by a save.
// A failed save is surfaced to the caller but the in-memory state
// stands; memory remains the source of truth for the rest of the
// process lifetime and a later successful save still includes the
// change.
type Service struct {
	mu sync.Mutex

	roster *roster.Roster
	ledger []model.GameSession

	store   storage.Store
	metrics *metrics.Manager
	logger  logger.Logger

	now   func() time.Time
	newID func() string
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the persistence backend.
func WithStore(store storage.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithMetrics sets the metrics manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithClock overrides the session timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the session id source.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// New creates a Service with configuration options applied.
func New(opts ...Option) *Service {
	s := &Service{
		roster:  roster.New(nil),
		ledger:  []model.GameSession{},
		store:   storage.NewFileStore(defaultDataFile),
		metrics: metrics.Default(),
		logger:  logger.Nop(),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load hydrates the roster and ledger from the store. Corrupt or
// absent persisted state degrades to an empty roster and ledger
// inside the store; only genuine I/O faults surface here.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	players, sessions, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	s.roster = roster.New(players)
	s.ledger = sessions
	s.metrics.SetScale(s.roster.Len(), len(s.ledger))
	s.logger.Info(ctx, "state loaded",
		logger.Int("players", s.roster.Len()),
		logger.Int("sessions", len(s.ledger)),
	)
	return nil
}

// Close releases the underlying store.
func (s *Service) Close() error {
	return s.store.Close()
}

// RecordSession scores the submitted entries, folds the result into
// the roster and appends the session to the ledger. A scoring
// rejection mutates nothing. When the follow-up save fails, the
// committed session is returned together with the write error so the
// caller can show a non-fatal notice; the state is not rolled back.
func (s *Service) RecordSession(ctx context.Context, game string, entries []scoring.Entry) (model.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ranking, err := scoring.Score(entries)
	if err != nil {
		s.metrics.RecordingError()
		return model.GameSession{}, err
	}

	session := aggregate.Apply(s.roster, ranking, game, s.now(), s.newID())
	s.ledger = append(s.ledger, session)

	s.metrics.SessionRecorded(len(ranking))
	s.metrics.SetScale(s.roster.Len(), len(s.ledger))
	s.logger.Info(ctx, "session recorded",
		logger.String("game", game),
		logger.String("id", session.ID),
		logger.Int("participants", len(ranking)),
	)

	return session.Clone(), s.persist(ctx)
}

// AddPlayer registers a new roster member.
func (s *Service) AddPlayer(ctx context.Context, name, color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.roster.Add(name, color); err != nil {
		return err
	}
	s.metrics.SetScale(s.roster.Len(), len(s.ledger))
	s.logger.Info(ctx, "player added", logger.String("name", name))
	return s.persist(ctx)
}

// RemovePlayer drops a roster member. Ledger history referencing the
// name stays in place.
func (s *Service) RemovePlayer(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.roster.Remove(name); err != nil {
		return err
	}
	s.metrics.SetScale(s.roster.Len(), len(s.ledger))
	s.logger.Info(ctx, "player removed", logger.String("name", name))
	return s.persist(ctx)
}

// SortRoster reorders the roster by the given field and persists the
// new order.
func (s *Service) SortRoster(ctx context.Context, field string, ascending bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.roster.Sort(field, ascending)
	return s.persist(ctx)
}

// TrendSeries derives per-player running-average chart series from
// the ledger. Read-only.
func (s *Service) TrendSeries(_ context.Context, metric trend.Metric) map[string][]trend.Point {
	s.mu.Lock()
	defer s.mu.Unlock()

	return trend.Series(metric, s.ledger)
}

// Players returns a copy of the roster for rendering.
func (s *Service) Players(_ context.Context) []model.Player {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.roster.Players()
}

// Sessions returns a copy of the ledger for rendering.
func (s *Service) Sessions(_ context.Context) []model.GameSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	return model.CloneSessions(s.ledger)
}

// ExportState produces the full-state backup document.
func (s *Service) ExportState(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := backup.Export(s.roster.Players(), s.ledger)
	if err != nil {
		return nil, err
	}
	s.metrics.ExportProduced()
	return data, nil
}

// ImportState replaces roster and ledger wholesale with the backup
// document's content. The document is parsed and validated completely
// before anything is touched; a malformed import leaves the existing
// state intact.
func (s *Service) ImportState(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := backup.Parse(data)
	if err != nil {
		return err
	}

	s.roster = roster.New(doc.Players)
	s.ledger = doc.Sessions
	s.metrics.ImportApplied()
	s.metrics.SetScale(s.roster.Len(), len(s.ledger))
	s.logger.Info(ctx, "state imported",
		logger.Int("players", s.roster.Len()),
		logger.Int("sessions", len(s.ledger)),
	)
	return s.persist(ctx)
}

// persist writes the current state through to the store. Callers hold
// the mutex. Failures are counted and logged but never roll back the
// in-memory state.
func (s *Service) persist(ctx context.Context) error {
	if err := s.store.Save(ctx, s.roster.Players(), s.ledger); err != nil {
		s.metrics.PersistenceWriteError()
		s.logger.Warn(ctx, "state write failed, keeping in-memory state",
			logger.Error(err),
		)
		return err
	}
	return nil
}
