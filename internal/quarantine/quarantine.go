// Package quarantine relocates failed source objects into a holding folder,
// annotated with the failure reason. Quarantine never masks the original
// processing error: every failure here is logged, not returned.
package quarantine

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"

	"meeting-insights-go/internal/logger"
	"meeting-insights-go/internal/retry"
	"meeting-insights-go/internal/types"
)

// ObjectMover is the slice of the object store quarantine consumes.
type ObjectMover interface {
	Move(ctx context.Context, objectID, fromFolderID, toFolderID string) error
	Annotate(ctx context.Context, objectID, note string) error
}

// Manager moves failed objects out of the active folder.
type Manager struct {
	Store           ObjectMover
	HoldingFolderID string
	// Transient classifies move errors for bounded retry.
	Transient func(error) bool
}

// Quarantine annotates the object with the failure reason (best effort) and
// relocates it into the holding folder with bounded backoff retry.
func (m *Manager) Quarantine(ctx context.Context, obj types.SourceObject, reason string) {
	log := logger.New().WithObject(obj.ID, obj.Name).WithField("component", "quarantine")

	note := fmt.Sprintf("Processing failed: %s", reason)
	if err := m.Store.Annotate(ctx, obj.ID, note); err != nil {
		log.WithError(err).Warn("failed to annotate object, moving anyway")
	}

	op := func() error {
		err := m.Store.Move(ctx, obj.ID, obj.FolderID, m.HoldingFolderID)
		if err != nil && m.Transient != nil && !m.Transient(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	if err := backoff.Retry(op, backoff.WithContext(retry.Quarantine(), ctx)); err != nil {
		log.WithError(err).Error("quarantine move failed, object left in place")
		return
	}
	log.WithField("holding_folder", m.HoldingFolderID).Info("object quarantined")
}
