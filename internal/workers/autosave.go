package workers

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"school-report-bot/internal/features/moderation/store"
)

// DefaultAutosaveInterval is how often the user store is persisted.
const DefaultAutosaveInterval = 30 * time.Second

// Autosave periodically persists a snapshot of the user store. A save
// failure is logged and skipped; the bot keeps running on in-memory state.
type Autosave struct {
	store    *store.Store
	backend  store.SnapshotBackend
	interval time.Duration
}

func NewAutosave(st *store.Store, backend store.SnapshotBackend, interval time.Duration) *Autosave {
	if interval <= 0 {
		interval = DefaultAutosaveInterval
	}
	return &Autosave{store: st, backend: backend, interval: interval}
}

// Start runs the save loop until ctx is cancelled, then performs one final
// synchronous save before returning.
func (w *Autosave) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting autosave worker...")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Autosave worker stopping, saving one last time")
			w.Save(context.Background())
			return
		case <-ticker.C:
			w.Save(ctx)
		}
	}
}

// Save persists a point-in-time snapshot through the backend.
func (w *Autosave) Save(ctx context.Context) {
	if err := w.backend.Save(ctx, w.store.Snapshot()); err != nil {
		log.Error().Err(err).Msg("failed to save snapshot")
		return
	}
	log.Debug().Msg("snapshot saved")
}
