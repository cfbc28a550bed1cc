// Package dataset owns the transaction list for the session: one immutable
// snapshot, replaced wholesale on load or manual refresh. Every analysis view
// reads the same snapshot; nothing mutates it in place, so handing the slice
// to concurrently rendering charts is safe.
package dataset

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"txboard/internal/core"
	"txboard/internal/ingest"
	applog "txboard/internal/log"
)

// Snapshot is one ingested dataset. The ID changes on every (re)load and is
// what downstream caches key on.
type Snapshot struct {
	ID           string
	Transactions []core.Transaction
	Source       string
	LoadedAt     time.Time
}

// Store holds the current snapshot and knows how to rebuild it from its
// source.
type Store struct {
	source Source
	logger *applog.Logger

	mu   sync.RWMutex
	snap Snapshot
}

func NewStore(source Source, logger *applog.Logger) *Store {
	if logger == nil {
		logger = applog.New(applog.ComponentDataset, applog.Options{})
	}
	return &Store{source: source, logger: logger.WithComponent(applog.ComponentDataset)}
}

// Load ingests the source and installs the result as the current snapshot.
// On error the previous snapshot, if any, stays in place.
func (s *Store) Load(ctx context.Context) (Snapshot, error) {
	raw, err := s.source.Load(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load dataset: %w", err)
	}
	txns, err := ingest.Parse(raw)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load dataset: %w", err)
	}

	snap := Snapshot{
		ID:           uuid.NewString(),
		Transactions: txns,
		Source:       s.source.Name(),
		LoadedAt:     time.Now(),
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "dataset loaded",
		applog.FieldSnapshot, snap.ID,
		applog.FieldSource, snap.Source,
		applog.FieldRows, len(txns))
	return snap, nil
}

// Refresh re-ingests from the source and replaces the whole set. It is the
// manual refresh action: same synchronous pipeline as the initial load.
func (s *Store) Refresh(ctx context.Context) (Snapshot, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	s.logger.InfoContext(ctx, "dataset refreshed",
		applog.FieldOperation, applog.OpRefresh,
		applog.FieldSnapshot, snap.ID,
		applog.FieldRows, len(snap.Transactions))
	return snap, nil
}

// Snapshot returns the current snapshot. The contained slice is shared but
// treated as immutable by every consumer.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}
