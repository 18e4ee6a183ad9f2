package store

import (
	"context"

	"school-report-bot/internal/features/moderation/models"
)

// SnapshotBackend persists full snapshots of the store. Load returns
// (nil, nil) when no snapshot exists yet.
type SnapshotBackend interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Save(ctx context.Context, snap *models.Snapshot) error
}
