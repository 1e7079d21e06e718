package cache

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/diajarkoding/duittracker/internal/domain"
)

// ITransactionCache defines the local durable cache of transactions.
// This abstraction allows swapping the implementation without changing callers.
type ITransactionCache interface {
	// GetAll returns the user's transactions sorted by transaction date descending.
	GetAll(ctx context.Context, userID string) ([]domain.Transaction, error)
	// GetByID returns the cached transaction or nil when absent. Absence is not an error.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	// GetByDatePrefix returns transactions whose date starts with the given
	// prefix, e.g. "2025-06-15" for a single day or "2025-06" for a month.
	GetByDatePrefix(ctx context.Context, prefix string) ([]domain.Transaction, error)
	GetByType(ctx context.Context, transactionType domain.Type) ([]domain.Transaction, error)
	Upsert(ctx context.Context, transaction *domain.Transaction) error
	UpsertMany(ctx context.Context, transactions []domain.Transaction) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
	// DeleteAll wipes the cache. Used before re-mirroring the remote set.
	DeleteAll(ctx context.Context) error
	MarkSynced(ctx context.Context, id uuid.UUID) error
	CountUnsynced(ctx context.Context) (int, error)
}
