package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/diajarkoding/duittracker/internal/domain"
)

var _ ITransactionCache = (*TransactionsTable)(nil)

const transactionColumns = `id, user_id, amount, category, type, account_source,
	note, description, image_path, transaction_date, is_synced, created_at, updated_at`

type TransactionsTable struct {
	db *sql.DB
}

func NewTransactionsTable(db *sql.DB) *TransactionsTable {
	return &TransactionsTable{db: db}
}

func (t *TransactionsTable) GetAll(ctx context.Context, userID string) ([]domain.Transaction, error) {
	rows, err := t.db.QueryContext(ctx,
		`SELECT `+transactionColumns+`
		 FROM transactions WHERE user_id = ?
		 ORDER BY transaction_date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (t *TransactionsTable) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	row := t.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+`
		 FROM transactions WHERE id = ?`, id.String())

	transaction, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

func (t *TransactionsTable) GetByDatePrefix(ctx context.Context, prefix string) ([]domain.Transaction, error) {
	rows, err := t.db.QueryContext(ctx,
		`SELECT `+transactionColumns+`
		 FROM transactions WHERE transaction_date LIKE ? || '%'
		 ORDER BY transaction_date DESC`, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (t *TransactionsTable) GetByType(ctx context.Context, transactionType domain.Type) ([]domain.Transaction, error) {
	rows, err := t.db.QueryContext(ctx,
		`SELECT `+transactionColumns+`
		 FROM transactions WHERE type = ?
		 ORDER BY transaction_date DESC`, string(transactionType))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (t *TransactionsTable) Upsert(ctx context.Context, transaction *domain.Transaction) error {
	_, err := t.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO transactions (`+transactionColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		transaction.ID.String(),
		transaction.UserID,
		transaction.Amount.String(),
		string(transaction.Category),
		string(transaction.Type),
		string(transaction.AccountSource),
		transaction.Note,
		nullableString(transaction.Description),
		nullableString(transaction.ImagePath),
		transaction.TransactionDate.Format(time.RFC3339Nano),
		boolToInt(transaction.IsSynced),
		transaction.CreatedAt.Format(time.RFC3339Nano),
		transaction.UpdatedAt.Format(time.RFC3339Nano),
	)
	return err
}

func (t *TransactionsTable) UpsertMany(ctx context.Context, transactions []domain.Transaction) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	for i := range transactions {
		transaction := &transactions[i]
		_, err = tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO transactions (`+transactionColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			transaction.ID.String(),
			transaction.UserID,
			transaction.Amount.String(),
			string(transaction.Category),
			string(transaction.Type),
			string(transaction.AccountSource),
			transaction.Note,
			nullableString(transaction.Description),
			nullableString(transaction.ImagePath),
			transaction.TransactionDate.Format(time.RFC3339Nano),
			boolToInt(transaction.IsSynced),
			transaction.CreatedAt.Format(time.RFC3339Nano),
			transaction.UpdatedAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (t *TransactionsTable) DeleteByID(ctx context.Context, id uuid.UUID) error {
	_, err := t.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id.String())
	return err
}

func (t *TransactionsTable) DeleteAll(ctx context.Context) error {
	_, err := t.db.ExecContext(ctx, `DELETE FROM transactions`)
	return err
}

func (t *TransactionsTable) MarkSynced(ctx context.Context, id uuid.UUID) error {
	_, err := t.db.ExecContext(ctx,
		`UPDATE transactions SET is_synced = 1 WHERE id = ?`, id.String())
	return err
}

func (t *TransactionsTable) CountUnsynced(ctx context.Context) (int, error) {
	var count int
	err := t.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE is_synced = 0`).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var (
		id              string
		amount          string
		category        string
		transactionType string
		accountSource   string
		description     sql.NullString
		imagePath       sql.NullString
		transactionDate string
		isSynced        int
		createdAt       sql.NullString
		updatedAt       sql.NullString
		transaction     domain.Transaction
	)

	err := row.Scan(&id, &transaction.UserID, &amount, &category, &transactionType,
		&accountSource, &transaction.Note, &description, &imagePath,
		&transactionDate, &isSynced, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	transaction.ID, err = uuid.FromString(id)
	if err != nil {
		return nil, fmt.Errorf("parse transaction id: %w", err)
	}
	transaction.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse amount: %w", err)
	}
	transaction.Category = domain.Category(category)
	transaction.Type = domain.Type(transactionType)
	transaction.AccountSource = domain.AccountSource(accountSource)
	transaction.Description = description.String
	transaction.ImagePath = imagePath.String
	transaction.IsSynced = isSynced != 0

	transaction.TransactionDate, err = time.Parse(time.RFC3339Nano, transactionDate)
	if err != nil {
		return nil, fmt.Errorf("parse transaction date: %w", err)
	}
	if createdAt.Valid {
		transaction.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
	}
	if updatedAt.Valid {
		transaction.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse updated_at: %w", err)
		}
	}

	return &transaction, nil
}

func scanTransactions(rows *sql.Rows) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *transaction)
	}
	return transactions, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
