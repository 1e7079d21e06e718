// Package repository is the single entry point for transaction reads and
// writes. Every operation picks an online or offline code path from a
// connectivity snapshot taken at call start: online writes go straight to
// the remote store, offline writes land in the local cache and the pending
// queue. An online write that fails is reported as a failure and is never
// queued; queueing is reserved for the known-offline case.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/diajarkoding/duittracker/internal/domain"
	"github.com/diajarkoding/duittracker/internal/images"
	"github.com/diajarkoding/duittracker/internal/network"
	"github.com/diajarkoding/duittracker/internal/remote"
	"github.com/diajarkoding/duittracker/internal/storage/cache"
	"github.com/diajarkoding/duittracker/internal/storage/queue"
	"github.com/diajarkoding/duittracker/internal/syncer"
)

const (
	msgNotAuthenticated = "User not authenticated"
	msgOffline          = "No internet connection"
	msgCacheFallback    = "Couldn't refresh. Showing cached data."
	msgOfflineCache     = "You're offline. Showing cached data."
	msgAdded            = "Transaction added successfully"
	msgSavedOffline     = "Saved offline. Will sync when online."
	msgUpdated          = "Transaction updated successfully"
	msgUpdatedOffline   = "Updated offline. Will sync when online."
	msgDeleted          = "Transaction deleted successfully"
	msgDeletedOffline   = "Deleted offline. Will sync when online."
	msgRefreshed        = "Data refreshed successfully"
	msgNoPending        = "No pending operations"
)

// syncRunner is the slice of the sync manager the repository needs.
type syncRunner interface {
	SyncPendingOperations(ctx context.Context) (syncer.SyncResult, error)
}

// TransactionRepository orchestrates the local cache, the pending queue,
// and the remote store.
type TransactionRepository struct {
	cache    cache.ITransactionCache
	pending  queue.IPendingQueue
	remote   remote.ITransactionStore
	images   images.IImageRepository
	monitor  network.Monitor
	identity remote.Identity
	syncer   syncRunner
	logger   *logrus.Logger
}

func NewTransactionRepository(
	transactionCache cache.ITransactionCache,
	pending queue.IPendingQueue,
	remoteStore remote.ITransactionStore,
	imageRepo images.IImageRepository,
	monitor network.Monitor,
	identity remote.Identity,
	syncManager syncRunner,
	logger *logrus.Logger,
) *TransactionRepository {
	return &TransactionRepository{
		cache:    transactionCache,
		pending:  pending,
		remote:   remoteStore,
		images:   imageRepo,
		monitor:  monitor,
		identity: identity,
		syncer:   syncManager,
		logger:   logger,
	}
}

// IsOnline reports the current connectivity snapshot.
func (r *TransactionRepository) IsOnline() bool {
	return r.monitor.IsOnline()
}

// PendingCount returns the number of queued operations, for UI badges.
func (r *TransactionRepository) PendingCount(ctx context.Context) (int, error) {
	return r.pending.CountAll(ctx)
}

// GetAllTransactions emits a Loading value followed by exactly one terminal
// Success or Error value, then closes the channel. Online, the remote set
// replaces the local cache wholesale; on a remote failure or while offline
// the cache is served instead, flagged FromCache.
func (r *TransactionRepository) GetAllTransactions(ctx context.Context) <-chan domain.Result[[]domain.Transaction] {
	results := make(chan domain.Result[[]domain.Transaction], 2)

	go func() {
		defer close(results)
		results <- domain.Loading[[]domain.Transaction]()
		results <- r.fetchAll(ctx)
	}()

	return results
}

func (r *TransactionRepository) fetchAll(ctx context.Context) domain.Result[[]domain.Transaction] {
	userID := r.identity.CurrentUserID()
	if userID == "" {
		return domain.Failure[[]domain.Transaction](msgNotAuthenticated, nil)
	}

	if !r.monitor.IsOnline() {
		return r.fetchFromCache(ctx, userID, msgOfflineCache)
	}

	remoteTransactions, err := r.remote.Select(ctx, userID)
	if err != nil {
		r.logger.WithError(err).Warn("TransactionRepository.GetAll.remote fetch failed")
		return r.fetchFromCache(ctx, userID, msgCacheFallback)
	}

	for i := range remoteTransactions {
		remoteTransactions[i].IsSynced = true
	}
	if err := r.mirrorCache(ctx, remoteTransactions); err != nil {
		return domain.Failure[[]domain.Transaction]("Failed to cache transactions: "+err.Error(), err)
	}

	sortByDateDesc(remoteTransactions)
	return domain.Success(remoteTransactions, "")
}

func (r *TransactionRepository) fetchFromCache(ctx context.Context, userID, message string) domain.Result[[]domain.Transaction] {
	cached, err := r.cache.GetAll(ctx, userID)
	if err != nil {
		return domain.Failure[[]domain.Transaction]("Failed to load cached transactions: "+err.Error(), err)
	}
	return domain.CacheSuccess(cached, message)
}

func (r *TransactionRepository) mirrorCache(ctx context.Context, transactions []domain.Transaction) error {
	if err := r.cache.DeleteAll(ctx); err != nil {
		return err
	}
	return r.cache.UpsertMany(ctx, transactions)
}

// GetTransactionsByDate returns cached transactions for a calendar day.
// Local only, no network involvement.
func (r *TransactionRepository) GetTransactionsByDate(ctx context.Context, date time.Time) domain.Result[[]domain.Transaction] {
	transactions, err := r.cache.GetByDatePrefix(ctx, date.Format("2006-01-02"))
	if err != nil {
		return domain.Failure[[]domain.Transaction]("Failed to get transactions: "+err.Error(), err)
	}
	return domain.Success(transactions, "")
}

// GetTransactionsByType returns cached transactions of one type. Local only.
func (r *TransactionRepository) GetTransactionsByType(ctx context.Context, transactionType domain.Type) domain.Result[[]domain.Transaction] {
	transactions, err := r.cache.GetByType(ctx, transactionType)
	if err != nil {
		return domain.Failure[[]domain.Transaction]("Failed to get transactions: "+err.Error(), err)
	}
	return domain.Success(transactions, "")
}

// GetTransactionByID returns the cached transaction. A missing id is a
// success with nil data, not an error.
func (r *TransactionRepository) GetTransactionByID(ctx context.Context, id uuid.UUID) domain.Result[*domain.Transaction] {
	transaction, err := r.cache.GetByID(ctx, id)
	if err != nil {
		return domain.Failure[*domain.Transaction]("Failed to get transaction: "+err.Error(), err)
	}
	return domain.Success(transaction, "")
}

// AddTransaction stamps identity and timestamps, then inserts either
// remotely (online) or into cache plus queue (offline). An online insert
// that fails is a failure; it does not fall back to the queue.
func (r *TransactionRepository) AddTransaction(ctx context.Context, transaction domain.Transaction) domain.Result[domain.Transaction] {
	userID := r.identity.CurrentUserID()
	if userID == "" {
		return domain.Failure[domain.Transaction](msgNotAuthenticated, nil)
	}

	now := time.Now()
	transaction.UserID = userID
	transaction.CreatedAt = now
	transaction.UpdatedAt = now

	if err := transaction.Validate(); err != nil {
		return domain.Failure[domain.Transaction](err.Error(), err)
	}

	if !r.monitor.IsOnline() {
		transaction.IsSynced = false
		if err := r.cache.Upsert(ctx, &transaction); err != nil {
			return domain.Failure[domain.Transaction]("Failed to save offline: "+err.Error(), err)
		}
		if err := r.enqueueSnapshot(ctx, queue.OperationInsert, &transaction); err != nil {
			return domain.Failure[domain.Transaction]("Failed to save offline: "+err.Error(), err)
		}
		return domain.Success(transaction, msgSavedOffline)
	}

	if err := r.remote.Insert(ctx, &transaction); err != nil {
		return domain.Failure[domain.Transaction]("Failed to save transaction: "+err.Error(), err)
	}
	transaction.IsSynced = true
	if err := r.cache.Upsert(ctx, &transaction); err != nil {
		return domain.Failure[domain.Transaction]("Failed to cache transaction: "+err.Error(), err)
	}
	return domain.Success(transaction, msgAdded)
}

// UpdateTransaction stamps updatedAt and replaces the record remotely
// (online) or in cache plus queue (offline). Offline, any pending operation
// for the id is superseded: only the latest snapshot stays queued.
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, transaction domain.Transaction) domain.Result[domain.Transaction] {
	transaction.UpdatedAt = time.Now()

	if err := transaction.Validate(); err != nil {
		return domain.Failure[domain.Transaction](err.Error(), err)
	}

	if !r.monitor.IsOnline() {
		transaction.IsSynced = false
		if err := r.cache.Upsert(ctx, &transaction); err != nil {
			return domain.Failure[domain.Transaction]("Failed to update offline: "+err.Error(), err)
		}
		if err := r.pending.DeleteByEntityID(ctx, transaction.ID); err != nil {
			return domain.Failure[domain.Transaction]("Failed to update offline: "+err.Error(), err)
		}
		if err := r.enqueueSnapshot(ctx, queue.OperationUpdate, &transaction); err != nil {
			return domain.Failure[domain.Transaction]("Failed to update offline: "+err.Error(), err)
		}
		return domain.Success(transaction, msgUpdatedOffline)
	}

	if err := r.remote.Update(ctx, &transaction); err != nil {
		return domain.Failure[domain.Transaction]("Failed to update transaction: "+err.Error(), err)
	}
	transaction.IsSynced = true
	if err := r.cache.Upsert(ctx, &transaction); err != nil {
		return domain.Failure[domain.Transaction]("Failed to cache transaction: "+err.Error(), err)
	}
	return domain.Success(transaction, msgUpdated)
}

// DeleteTransaction removes the record locally right away. Online it also
// deletes the remote row and any remote image. Offline, a delete is queued
// only when the record was synced; an unsynced record just cancels whatever
// insert or update was still queued for it, since the remote never saw it.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, id uuid.UUID) domain.Result[struct{}] {
	existing, err := r.cache.GetByID(ctx, id)
	if err != nil {
		return domain.Failure[struct{}]("Failed to delete transaction: "+err.Error(), err)
	}

	if !r.monitor.IsOnline() {
		if existing == nil {
			return domain.Success(struct{}{}, msgDeletedOffline)
		}
		return r.deleteOffline(ctx, existing)
	}

	if existing != nil && existing.HasRemoteImage() {
		// Best effort; an orphaned blob must not block the row delete.
		if err := r.images.DeleteRemote(ctx, existing.ImagePath); err != nil {
			r.logger.WithError(err).Warn("TransactionRepository.Delete.remote image delete failed")
		}
	}

	if err := r.remote.Delete(ctx, id); err != nil {
		return domain.Failure[struct{}]("Failed to delete transaction: "+err.Error(), err)
	}

	if err := r.cache.DeleteByID(ctx, id); err != nil {
		return domain.Failure[struct{}]("Failed to delete transaction: "+err.Error(), err)
	}
	if err := r.images.DeleteLocal(id); err != nil {
		r.logger.WithError(err).Warn("TransactionRepository.Delete.local image delete failed")
	}

	return domain.Success(struct{}{}, msgDeleted)
}

func (r *TransactionRepository) deleteOffline(ctx context.Context, existing *domain.Transaction) domain.Result[struct{}] {
	if err := r.cache.DeleteByID(ctx, existing.ID); err != nil {
		return domain.Failure[struct{}]("Failed to delete offline: "+err.Error(), err)
	}
	if err := r.images.DeleteLocal(existing.ID); err != nil {
		r.logger.WithError(err).Warn("TransactionRepository.Delete.local image delete failed")
	}

	if !existing.IsSynced {
		// Never reached the remote store, so there is nothing to delete
		// there. Cancel any queued insert or update instead.
		if err := r.pending.DeleteByEntityID(ctx, existing.ID); err != nil {
			return domain.Failure[struct{}]("Failed to delete offline: "+err.Error(), err)
		}
		return domain.Success(struct{}{}, msgDeletedOffline)
	}

	imageKey := ""
	if existing.HasRemoteImage() {
		imageKey = existing.ImagePath
	}
	operation := &queue.PendingOperation{
		ID:            uuid.Must(uuid.NewV4()),
		OperationType: queue.OperationDelete,
		EntityType:    queue.EntityTypeTransaction,
		EntityID:      existing.ID,
		Payload:       queue.EncodeDeletePayload(existing.ID, imageKey),
		CreatedAt:     time.Now(),
	}
	if err := r.pending.InsertOrReplace(ctx, operation); err != nil {
		return domain.Failure[struct{}]("Failed to delete offline: "+err.Error(), err)
	}

	return domain.Success(struct{}{}, msgDeletedOffline)
}

// RefreshFromRemote forces a re-fetch and cache mirror. Requires connectivity;
// while offline it fails with the Offline flag so the UI can special-case it.
func (r *TransactionRepository) RefreshFromRemote(ctx context.Context) domain.Result[struct{}] {
	userID := r.identity.CurrentUserID()
	if userID == "" {
		return domain.Failure[struct{}](msgNotAuthenticated, nil)
	}

	if !r.monitor.IsOnline() {
		return domain.OfflineFailure[struct{}](msgOffline)
	}

	remoteTransactions, err := r.remote.Select(ctx, userID)
	if err != nil {
		return domain.Failure[struct{}]("Failed to refresh: "+err.Error(), err)
	}

	for i := range remoteTransactions {
		remoteTransactions[i].IsSynced = true
	}
	if err := r.mirrorCache(ctx, remoteTransactions); err != nil {
		return domain.Failure[struct{}]("Failed to refresh: "+err.Error(), err)
	}

	return domain.Success(struct{}{}, msgRefreshed)
}

// SyncPendingOperations runs one drain pass and reports the synced count.
func (r *TransactionRepository) SyncPendingOperations(ctx context.Context) domain.Result[int] {
	result, err := r.syncer.SyncPendingOperations(ctx)
	if err != nil {
		return domain.Failure[int]("Failed to sync: "+err.Error(), err)
	}

	switch result.Status {
	case SyncStatusOffline:
		return domain.OfflineFailure[int](msgOffline)
	case SyncStatusNotAuthenticated:
		return domain.Failure[int](msgNotAuthenticated, nil)
	case SyncStatusNoPendingOperations:
		return domain.Success(0, msgNoPending)
	}

	return domain.Success(result.Synced, syncMessage(result.Synced, result.Failed))
}

// Re-exported so callers of the repository don't need the syncer package.
const (
	SyncStatusOffline             = syncer.SyncStatusOffline
	SyncStatusNotAuthenticated    = syncer.SyncStatusNotAuthenticated
	SyncStatusNoPendingOperations = syncer.SyncStatusNoPendingOperations
)

func syncMessage(synced, failed int) string {
	switch {
	case failed == 0:
		return fmt.Sprintf("Synced %d changes", synced)
	case synced == 0:
		return fmt.Sprintf("Failed to sync %d changes", failed)
	default:
		return fmt.Sprintf("Synced %d, failed %d", synced, failed)
	}
}

func (r *TransactionRepository) enqueueSnapshot(ctx context.Context, operationType queue.OperationType, transaction *domain.Transaction) error {
	payload, err := json.Marshal(transaction)
	if err != nil {
		return fmt.Errorf("encode transaction snapshot: %w", err)
	}

	operation := &queue.PendingOperation{
		ID:            uuid.Must(uuid.NewV4()),
		OperationType: operationType,
		EntityType:    queue.EntityTypeTransaction,
		EntityID:      transaction.ID,
		Payload:       string(payload),
		CreatedAt:     time.Now(),
	}
	return r.pending.InsertOrReplace(ctx, operation)
}

func sortByDateDesc(transactions []domain.Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].TransactionDate.After(transactions[j].TransactionDate)
	})
}
