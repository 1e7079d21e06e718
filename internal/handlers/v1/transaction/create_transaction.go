package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/diajarkoding/duittracker/internal/domain"
	"github.com/diajarkoding/duittracker/internal/logging"
)

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body TransactionBody
}

// CreateTransactionResponseBody is the response body for creating a transaction.
type CreateTransactionResponseBody struct {
	Transaction Transaction `json:"transaction" doc:"The stored transaction"`
	Message     string      `json:"message" doc:"Human-readable outcome, e.g. saved offline"`
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   CreateTransactionResponseBody
}

// transactionCreator is the interface for adding a transaction.
type transactionCreator interface {
	AddTransaction(ctx context.Context, transaction domain.Transaction) domain.Result[domain.Transaction]
}

// CreateTransactionHandler handles POST /v1/transactions.
type CreateTransactionHandler struct {
	Repository transactionCreator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(repo transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{Repository: repo}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/v1/transactions",
		Summary:       "Create transaction",
		Description:   "Creates a new transaction, queueing it for sync when offline.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	transaction, err := parseTransactionBody(uuid.Must(uuid.NewV4()), &input.Body)
	if err != nil {
		return nil, err
	}

	result := h.Repository.AddTransaction(ctx, *transaction)
	if result.IsError() {
		return nil, resultError(result)
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("transactionID", result.Data.ID.String())
		logData.AddData("synced", result.Data.IsSynced)
	}

	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body: CreateTransactionResponseBody{
			Transaction: fromDomain(&result.Data),
			Message:     result.Message,
		},
	}, nil
}
