package transaction

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/diajarkoding/duittracker/internal/domain"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID              string `json:"id" doc:"Transaction UUID"`
	Amount          string `json:"amount" doc:"Decimal amount"`
	Category        string `json:"category" doc:"Category"`
	Type            string `json:"type" doc:"expense or income"`
	AccountSource   string `json:"accountSource" doc:"cash, bank, or ewallet"`
	Note            string `json:"note" doc:"Short note"`
	Description     string `json:"description,omitempty" doc:"Optional longer description"`
	ImagePath       string `json:"imagePath,omitempty" doc:"Local path or remote receipt key"`
	TransactionDate string `json:"transactionDate" doc:"RFC3339 transaction date"`
	IsSynced        bool   `json:"isSynced" doc:"Whether the remote store has accepted this state"`
	CreatedAt       string `json:"createdAt,omitempty" doc:"RFC3339 creation time"`
	UpdatedAt       string `json:"updatedAt,omitempty" doc:"RFC3339 last update time"`
}

// TransactionBody is the request body shared by create and update.
type TransactionBody struct {
	Amount          string `json:"amount" required:"true" doc:"Decimal amount, must be positive"`
	Category        string `json:"category" required:"true" doc:"Category"`
	Type            string `json:"type" required:"true" doc:"expense or income"`
	AccountSource   string `json:"accountSource" required:"true" doc:"cash, bank, or ewallet"`
	Note            string `json:"note" required:"true" doc:"Short note"`
	Description     string `json:"description,omitempty" doc:"Optional longer description"`
	ImagePath       string `json:"imagePath,omitempty" doc:"Local path or remote receipt key"`
	TransactionDate string `json:"transactionDate" doc:"RFC3339 transaction date, defaults to now"`
}

func fromDomain(transaction *domain.Transaction) Transaction {
	response := Transaction{
		ID:              transaction.ID.String(),
		Amount:          transaction.Amount.String(),
		Category:        string(transaction.Category),
		Type:            string(transaction.Type),
		AccountSource:   string(transaction.AccountSource),
		Note:            transaction.Note,
		Description:     transaction.Description,
		ImagePath:       transaction.ImagePath,
		TransactionDate: transaction.TransactionDate.Format(time.RFC3339),
		IsSynced:        transaction.IsSynced,
	}
	if !transaction.CreatedAt.IsZero() {
		response.CreatedAt = transaction.CreatedAt.Format(time.RFC3339)
	}
	if !transaction.UpdatedAt.IsZero() {
		response.UpdatedAt = transaction.UpdatedAt.Format(time.RFC3339)
	}
	return response
}

func fromDomainList(transactions []domain.Transaction) []Transaction {
	responses := make([]Transaction, len(transactions))
	for i := range transactions {
		responses[i] = fromDomain(&transactions[i])
	}
	return responses
}

// parseTransactionBody parses and validates the shared request body fields.
func parseTransactionBody(id uuid.UUID, body *TransactionBody) (*domain.Transaction, error) {
	amount, err := decimal.NewFromString(body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	category, err := domain.ParseCategory(body.Category)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid category", err)
	}

	transactionType, err := domain.ParseType(body.Type)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid type", err)
	}

	accountSource, err := domain.ParseAccountSource(body.AccountSource)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid accountSource", err)
	}

	var transactionDate time.Time
	if body.TransactionDate != "" {
		transactionDate, err = time.Parse(time.RFC3339, body.TransactionDate)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid transactionDate", err)
		}
	} else {
		transactionDate = time.Now()
	}

	return &domain.Transaction{
		ID:              id,
		Amount:          amount,
		Category:        category,
		Type:            transactionType,
		AccountSource:   accountSource,
		Note:            body.Note,
		Description:     body.Description,
		ImagePath:       body.ImagePath,
		TransactionDate: transactionDate,
	}, nil
}

// resultError maps a repository error result to an HTTP error. Offline
// failures map to 503 so clients can distinguish them from server faults.
func resultError[T any](result domain.Result[T]) error {
	if result.Offline {
		return huma.NewError(http.StatusServiceUnavailable, result.Message, result.Err)
	}
	if result.Message == "User not authenticated" {
		return huma.NewError(http.StatusUnauthorized, result.Message)
	}
	return huma.NewError(http.StatusInternalServerError, result.Message, result.Err)
}
