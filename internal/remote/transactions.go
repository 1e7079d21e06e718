package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/diajarkoding/duittracker/internal/domain"
)

const transactionsPath = "/rest/v1/transactions"

// ITransactionStore is the remote source of truth for transactions.
// Inserts, updates, and deletes must be idempotent per id so the sync drain
// can safely re-apply an operation after a crash (at-least-once delivery).
type ITransactionStore interface {
	Select(ctx context.Context, userID string) ([]domain.Transaction, error)
	Insert(ctx context.Context, transaction *domain.Transaction) error
	Update(ctx context.Context, transaction *domain.Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ ITransactionStore = (*TransactionsClient)(nil)

type TransactionsClient struct {
	client *Client
}

func NewTransactionsClient(client *Client) *TransactionsClient {
	return &TransactionsClient{client: client}
}

// transactionRecord mirrors the remote table schema. is_synced is a local
// cache annotation and deliberately has no field here.
type transactionRecord struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category"`
	Type            string          `json:"type"`
	AccountSource   string          `json:"account_source"`
	Note            string          `json:"note"`
	Description     string          `json:"description,omitempty"`
	ImagePath       string          `json:"image_path,omitempty"`
	TransactionDate string          `json:"transaction_date"`
	CreatedAt       string          `json:"created_at,omitempty"`
	UpdatedAt       string          `json:"updated_at,omitempty"`
}

func (t *TransactionsClient) Select(ctx context.Context, userID string) ([]domain.Transaction, error) {
	url := t.client.baseURL + transactionsPath + "?select=*&user_id=eq." + userID
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := t.client.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var records []transactionRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}

	transactions := make([]domain.Transaction, len(records))
	for i, record := range records {
		transaction, err := record.toDomain()
		if err != nil {
			return nil, err
		}
		transactions[i] = *transaction
	}
	return transactions, nil
}

func (t *TransactionsClient) Insert(ctx context.Context, transaction *domain.Transaction) error {
	body, err := json.Marshal(toRecord(transaction))
	if err != nil {
		return err
	}

	url := t.client.baseURL + transactionsPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	// Re-inserting the same id after a crashed sync must behave as an upsert.
	req.Header.Set("Prefer", "resolution=merge-duplicates,return=minimal")

	resp, err := t.client.do(req)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

func (t *TransactionsClient) Update(ctx context.Context, transaction *domain.Transaction) error {
	body, err := json.Marshal(toRecord(transaction))
	if err != nil {
		return err
	}

	url := t.client.baseURL + transactionsPath + "?id=eq." + transaction.ID.String()
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	resp, err := t.client.do(req)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

func (t *TransactionsClient) Delete(ctx context.Context, id uuid.UUID) error {
	url := t.client.baseURL + transactionsPath + "?id=eq." + id.String()
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}

	resp, err := t.client.do(req)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

func toRecord(transaction *domain.Transaction) transactionRecord {
	record := transactionRecord{
		ID:              transaction.ID.String(),
		UserID:          transaction.UserID,
		Amount:          transaction.Amount,
		Category:        string(transaction.Category),
		Type:            string(transaction.Type),
		AccountSource:   string(transaction.AccountSource),
		Note:            transaction.Note,
		Description:     transaction.Description,
		ImagePath:       transaction.ImagePath,
		TransactionDate: transaction.TransactionDate.Format(time.RFC3339Nano),
	}
	if !transaction.CreatedAt.IsZero() {
		record.CreatedAt = transaction.CreatedAt.Format(time.RFC3339Nano)
	}
	if !transaction.UpdatedAt.IsZero() {
		record.UpdatedAt = transaction.UpdatedAt.Format(time.RFC3339Nano)
	}
	return record
}

func (r transactionRecord) toDomain() (*domain.Transaction, error) {
	id, err := uuid.FromString(r.ID)
	if err != nil {
		return nil, fmt.Errorf("parse remote transaction id: %w", err)
	}

	transactionDate, err := time.Parse(time.RFC3339Nano, r.TransactionDate)
	if err != nil {
		return nil, fmt.Errorf("parse remote transaction date: %w", err)
	}

	transaction := domain.Transaction{
		ID:              id,
		UserID:          r.UserID,
		Amount:          r.Amount,
		Category:        domain.Category(r.Category),
		Type:            domain.Type(r.Type),
		AccountSource:   domain.AccountSource(r.AccountSource),
		Note:            r.Note,
		Description:     r.Description,
		ImagePath:       r.ImagePath,
		TransactionDate: transactionDate,
	}

	if r.CreatedAt != "" {
		transaction.CreatedAt, err = time.Parse(time.RFC3339Nano, r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("parse remote created_at: %w", err)
		}
	}
	if r.UpdatedAt != "" {
		transaction.UpdatedAt, err = time.Parse(time.RFC3339Nano, r.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("parse remote updated_at: %w", err)
		}
	}

	return &transaction, nil
}
