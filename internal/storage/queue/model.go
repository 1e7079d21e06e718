package queue

import (
	"context"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
)

// OperationType is the kind of deferred mutation a PendingOperation carries.
type OperationType string

const (
	OperationInsert OperationType = "INSERT"
	OperationUpdate OperationType = "UPDATE"
	OperationDelete OperationType = "DELETE"
)

// EntityTypeTransaction is currently the only entity the queue carries.
const EntityTypeTransaction = "TRANSACTION"

// MaxRetries is the ceiling after which a failed operation is abandoned.
const MaxRetries = 3

// PendingOperation is a durable intent to mutate the remote store, written
// whenever a mutation happens while offline. The payload is opaque to the
// queue: a JSON transaction snapshot for INSERT/UPDATE, and for DELETE the
// entity id plus an optional remote image key (pipe separated).
type PendingOperation struct {
	ID            uuid.UUID
	OperationType OperationType
	EntityType    string
	EntityID      uuid.UUID
	Payload       string
	CreatedAt     time.Time
	RetryCount    int
}

// EncodeDeletePayload builds the DELETE payload. The image key is appended
// after a pipe only when the deleted transaction had a remote image to clean up.
func EncodeDeletePayload(entityID uuid.UUID, imageKey string) string {
	if imageKey == "" {
		return entityID.String()
	}
	return entityID.String() + "|" + imageKey
}

// DecodeDeletePayload splits a DELETE payload into entity id and image key.
func DecodeDeletePayload(payload string) (entityID string, imageKey string) {
	entityID, imageKey, _ = strings.Cut(payload, "|")
	return entityID, imageKey
}

// IPendingQueue defines the durable FIFO queue of pending operations.
type IPendingQueue interface {
	// GetAllOrderedByCreatedAtAsc returns the full queue oldest first,
	// the order the sync drain applies operations in.
	GetAllOrderedByCreatedAtAsc(ctx context.Context) ([]PendingOperation, error)
	// GetByEntityID returns the pending operation targeting the entity, or nil.
	GetByEntityID(ctx context.Context, entityID uuid.UUID) (*PendingOperation, error)
	InsertOrReplace(ctx context.Context, operation *PendingOperation) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
	DeleteByEntityID(ctx context.Context, entityID uuid.UUID) error
	IncrementRetry(ctx context.Context, id uuid.UUID) error
	// DeleteWhereRetryCountAtLeast evicts operations that exhausted their retries.
	DeleteWhereRetryCountAtLeast(ctx context.Context, retries int) error
	CountAll(ctx context.Context) (int, error)
}
