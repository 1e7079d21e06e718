// Package syncer drains the pending operation queue against the remote
// store. Delivery is at-least-once: the remote store applies inserts and
// updates as idempotent upserts per id, so re-applying an operation after a
// crash between the remote call and the queue delete is harmless.
package syncer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/diajarkoding/duittracker/internal/domain"
	"github.com/diajarkoding/duittracker/internal/images"
	"github.com/diajarkoding/duittracker/internal/network"
	"github.com/diajarkoding/duittracker/internal/remote"
	"github.com/diajarkoding/duittracker/internal/storage/cache"
	"github.com/diajarkoding/duittracker/internal/storage/queue"
)

// SyncStatus distinguishes the short-circuit outcomes from a real drain pass.
type SyncStatus int

const (
	SyncStatusSuccess SyncStatus = iota
	SyncStatusOffline
	SyncStatusNotAuthenticated
	SyncStatusNoPendingOperations
)

// SyncResult reports the outcome of one drain pass.
type SyncResult struct {
	Status SyncStatus
	Synced int
	Failed int
}

// Manager applies pending operations to the remote store in FIFO order.
type Manager struct {
	pending  queue.IPendingQueue
	cache    cache.ITransactionCache
	remote   remote.ITransactionStore
	images   images.IImageRepository
	monitor  network.Monitor
	identity remote.Identity
	logger   *logrus.Logger
}

func NewManager(
	pending queue.IPendingQueue,
	transactionCache cache.ITransactionCache,
	remoteStore remote.ITransactionStore,
	imageRepo images.IImageRepository,
	monitor network.Monitor,
	identity remote.Identity,
	logger *logrus.Logger,
) *Manager {
	return &Manager{
		pending:  pending,
		cache:    transactionCache,
		remote:   remoteStore,
		images:   imageRepo,
		monitor:  monitor,
		identity: identity,
		logger:   logger,
	}
}

// SyncPendingOperations runs one drain pass. Operations are applied
// sequentially, oldest first. A failed operation gets its retry counter
// bumped and the pass moves on; operations that have exhausted their
// retries are evicted after the loop.
func (m *Manager) SyncPendingOperations(ctx context.Context) (SyncResult, error) {
	if !m.monitor.IsOnline() {
		m.logger.Debug("SyncManager.sync.offline")
		return SyncResult{Status: SyncStatusOffline}, nil
	}

	if m.identity.CurrentUserID() == "" {
		m.logger.Debug("SyncManager.sync.not authenticated")
		return SyncResult{Status: SyncStatusNotAuthenticated}, nil
	}

	operations, err := m.pending.GetAllOrderedByCreatedAtAsc(ctx)
	if err != nil {
		return SyncResult{}, fmt.Errorf("load pending operations: %w", err)
	}
	if len(operations) == 0 {
		return SyncResult{Status: SyncStatusNoPendingOperations}, nil
	}

	m.logger.WithField("pendingCount", len(operations)).Info("SyncManager.sync.start")

	result := SyncResult{Status: SyncStatusSuccess}
	for i := range operations {
		operation := &operations[i]

		if err := m.applyOperation(ctx, operation); err != nil {
			m.logger.WithError(err).WithFields(logrus.Fields{
				"operationID":   operation.ID,
				"operationType": operation.OperationType,
				"entityID":      operation.EntityID,
			}).Warn("SyncManager.sync.operation failed")

			if retryErr := m.pending.IncrementRetry(ctx, operation.ID); retryErr != nil {
				m.logger.WithError(retryErr).Error("SyncManager.sync.increment retry failed")
			}
			result.Failed++
			continue
		}

		if err := m.pending.DeleteByID(ctx, operation.ID); err != nil {
			// The remote write landed; the operation will be re-applied
			// next pass, which the remote tolerates.
			m.logger.WithError(err).Error("SyncManager.sync.queue delete failed")
			result.Failed++
			continue
		}
		result.Synced++
	}

	if err := m.pending.DeleteWhereRetryCountAtLeast(ctx, queue.MaxRetries); err != nil {
		m.logger.WithError(err).Error("SyncManager.sync.evict failed operations")
	}

	m.logger.WithFields(logrus.Fields{
		"synced": result.Synced,
		"failed": result.Failed,
	}).Info("SyncManager.sync.complete")

	return result, nil
}

func (m *Manager) applyOperation(ctx context.Context, operation *queue.PendingOperation) error {
	switch operation.OperationType {
	case queue.OperationInsert:
		transaction, err := decodeSnapshot(operation.Payload)
		if err != nil {
			return err
		}
		if err := m.remote.Insert(ctx, transaction); err != nil {
			return err
		}
		return m.cache.MarkSynced(ctx, operation.EntityID)

	case queue.OperationUpdate:
		transaction, err := decodeSnapshot(operation.Payload)
		if err != nil {
			return err
		}
		if err := m.remote.Update(ctx, transaction); err != nil {
			return err
		}
		return m.cache.MarkSynced(ctx, operation.EntityID)

	case queue.OperationDelete:
		entityID, imageKey := queue.DecodeDeletePayload(operation.Payload)
		if imageKey != "" {
			// Best effort; a leaked blob must not block the row delete.
			if err := m.images.DeleteRemote(ctx, imageKey); err != nil {
				m.logger.WithError(err).WithField("imageKey", imageKey).
					Warn("SyncManager.sync.blob delete failed")
			}
		}
		id, err := uuid.FromString(entityID)
		if err != nil {
			return fmt.Errorf("parse delete payload entity id: %w", err)
		}
		return m.remote.Delete(ctx, id)
	}

	return fmt.Errorf("unknown operation type %q", operation.OperationType)
}

func decodeSnapshot(payload string) (*domain.Transaction, error) {
	var transaction domain.Transaction
	if err := json.Unmarshal([]byte(payload), &transaction); err != nil {
		return nil, fmt.Errorf("decode transaction snapshot: %w", err)
	}
	return &transaction, nil
}
