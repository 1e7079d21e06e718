package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
)

var _ IPendingQueue = (*PendingOperationsTable)(nil)

const pendingColumns = `id, operation_type, entity_type, entity_id, payload, created_at, retry_count`

type PendingOperationsTable struct {
	db *sql.DB
}

func NewPendingOperationsTable(db *sql.DB) *PendingOperationsTable {
	return &PendingOperationsTable{db: db}
}

func (t *PendingOperationsTable) GetAllOrderedByCreatedAtAsc(ctx context.Context) ([]PendingOperation, error) {
	rows, err := t.db.QueryContext(ctx,
		`SELECT `+pendingColumns+`
		 FROM pending_operations ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var operations []PendingOperation
	for rows.Next() {
		operation, err := scanPendingOperation(rows)
		if err != nil {
			return nil, err
		}
		operations = append(operations, *operation)
	}
	return operations, rows.Err()
}

func (t *PendingOperationsTable) GetByEntityID(ctx context.Context, entityID uuid.UUID) (*PendingOperation, error) {
	row := t.db.QueryRowContext(ctx,
		`SELECT `+pendingColumns+`
		 FROM pending_operations WHERE entity_id = ?`, entityID.String())

	operation, err := scanPendingOperation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return operation, nil
}

func (t *PendingOperationsTable) InsertOrReplace(ctx context.Context, operation *PendingOperation) error {
	_, err := t.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO pending_operations (`+pendingColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		operation.ID.String(),
		string(operation.OperationType),
		operation.EntityType,
		operation.EntityID.String(),
		operation.Payload,
		operation.CreatedAt.Format(time.RFC3339Nano),
		operation.RetryCount,
	)
	return err
}

func (t *PendingOperationsTable) DeleteByID(ctx context.Context, id uuid.UUID) error {
	_, err := t.db.ExecContext(ctx,
		`DELETE FROM pending_operations WHERE id = ?`, id.String())
	return err
}

func (t *PendingOperationsTable) DeleteByEntityID(ctx context.Context, entityID uuid.UUID) error {
	_, err := t.db.ExecContext(ctx,
		`DELETE FROM pending_operations WHERE entity_id = ?`, entityID.String())
	return err
}

func (t *PendingOperationsTable) IncrementRetry(ctx context.Context, id uuid.UUID) error {
	_, err := t.db.ExecContext(ctx,
		`UPDATE pending_operations SET retry_count = retry_count + 1 WHERE id = ?`, id.String())
	return err
}

func (t *PendingOperationsTable) DeleteWhereRetryCountAtLeast(ctx context.Context, retries int) error {
	_, err := t.db.ExecContext(ctx,
		`DELETE FROM pending_operations WHERE retry_count >= ?`, retries)
	return err
}

func (t *PendingOperationsTable) CountAll(ctx context.Context) (int, error) {
	var count int
	err := t.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pending_operations`).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPendingOperation(row rowScanner) (*PendingOperation, error) {
	var (
		id        string
		opType    string
		entityID  string
		createdAt string
		operation PendingOperation
	)

	err := row.Scan(&id, &opType, &operation.EntityType, &entityID,
		&operation.Payload, &createdAt, &operation.RetryCount)
	if err != nil {
		return nil, err
	}

	operation.ID, err = uuid.FromString(id)
	if err != nil {
		return nil, fmt.Errorf("parse operation id: %w", err)
	}
	operation.EntityID, err = uuid.FromString(entityID)
	if err != nil {
		return nil, fmt.Errorf("parse entity id: %w", err)
	}
	operation.OperationType = OperationType(opType)
	operation.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}

	return &operation, nil
}
