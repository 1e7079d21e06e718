package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/mock"

	"github.com/diajarkoding/duittracker/internal/domain"
	"github.com/diajarkoding/duittracker/internal/storage/queue"
	"github.com/diajarkoding/duittracker/internal/syncer"
)

type mockTransactionCache struct {
	mock.Mock
}

func (m *mockTransactionCache) GetAll(ctx context.Context, userID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID)
	transactions, _ := args.Get(0).([]domain.Transaction)
	return transactions, args.Error(1)
}

func (m *mockTransactionCache) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	transaction, _ := args.Get(0).(*domain.Transaction)
	return transaction, args.Error(1)
}

func (m *mockTransactionCache) GetByDatePrefix(ctx context.Context, prefix string) ([]domain.Transaction, error) {
	args := m.Called(ctx, prefix)
	transactions, _ := args.Get(0).([]domain.Transaction)
	return transactions, args.Error(1)
}

func (m *mockTransactionCache) GetByType(ctx context.Context, transactionType domain.Type) ([]domain.Transaction, error) {
	args := m.Called(ctx, transactionType)
	transactions, _ := args.Get(0).([]domain.Transaction)
	return transactions, args.Error(1)
}

func (m *mockTransactionCache) Upsert(ctx context.Context, transaction *domain.Transaction) error {
	return m.Called(ctx, transaction).Error(0)
}

func (m *mockTransactionCache) UpsertMany(ctx context.Context, transactions []domain.Transaction) error {
	return m.Called(ctx, transactions).Error(0)
}

func (m *mockTransactionCache) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockTransactionCache) DeleteAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockTransactionCache) MarkSynced(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockTransactionCache) CountUnsynced(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockPendingQueue struct {
	mock.Mock
}

func (m *mockPendingQueue) GetAllOrderedByCreatedAtAsc(ctx context.Context) ([]queue.PendingOperation, error) {
	args := m.Called(ctx)
	operations, _ := args.Get(0).([]queue.PendingOperation)
	return operations, args.Error(1)
}

func (m *mockPendingQueue) GetByEntityID(ctx context.Context, entityID uuid.UUID) (*queue.PendingOperation, error) {
	args := m.Called(ctx, entityID)
	operation, _ := args.Get(0).(*queue.PendingOperation)
	return operation, args.Error(1)
}

func (m *mockPendingQueue) InsertOrReplace(ctx context.Context, operation *queue.PendingOperation) error {
	return m.Called(ctx, operation).Error(0)
}

func (m *mockPendingQueue) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPendingQueue) DeleteByEntityID(ctx context.Context, entityID uuid.UUID) error {
	return m.Called(ctx, entityID).Error(0)
}

func (m *mockPendingQueue) IncrementRetry(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPendingQueue) DeleteWhereRetryCountAtLeast(ctx context.Context, retries int) error {
	return m.Called(ctx, retries).Error(0)
}

func (m *mockPendingQueue) CountAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockRemoteStore struct {
	mock.Mock
}

func (m *mockRemoteStore) Select(ctx context.Context, userID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID)
	transactions, _ := args.Get(0).([]domain.Transaction)
	return transactions, args.Error(1)
}

func (m *mockRemoteStore) Insert(ctx context.Context, transaction *domain.Transaction) error {
	return m.Called(ctx, transaction).Error(0)
}

func (m *mockRemoteStore) Update(ctx context.Context, transaction *domain.Transaction) error {
	return m.Called(ctx, transaction).Error(0)
}

func (m *mockRemoteStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockImageRepository struct {
	mock.Mock
}

func (m *mockImageRepository) Upload(ctx context.Context, data []byte) (string, error) {
	args := m.Called(ctx, data)
	return args.String(0), args.Error(1)
}

func (m *mockImageRepository) SignedURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockImageRepository) DeleteRemote(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockImageRepository) SaveLocal(transactionID uuid.UUID, data []byte) (string, error) {
	args := m.Called(transactionID, data)
	return args.String(0), args.Error(1)
}

func (m *mockImageRepository) DeleteLocal(transactionID uuid.UUID) error {
	return m.Called(transactionID).Error(0)
}

type mockSyncRunner struct {
	mock.Mock
}

func (m *mockSyncRunner) SyncPendingOperations(ctx context.Context) (syncer.SyncResult, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).(syncer.SyncResult)
	return result, args.Error(1)
}
