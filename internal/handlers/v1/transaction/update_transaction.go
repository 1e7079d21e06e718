package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/diajarkoding/duittracker/internal/domain"
)

// UpdateTransactionInput is the Huma input for updating a transaction.
type UpdateTransactionInput struct {
	ID   string `path:"id" doc:"Transaction UUID"`
	Body TransactionBody
}

// UpdateTransactionResponseBody is the response body for updating a transaction.
type UpdateTransactionResponseBody struct {
	Transaction Transaction `json:"transaction" doc:"The stored transaction"`
	Message     string      `json:"message" doc:"Human-readable outcome, e.g. updated offline"`
}

// UpdateTransactionOutput is the Huma output for updating a transaction.
type UpdateTransactionOutput struct {
	Body UpdateTransactionResponseBody
}

// transactionUpdater is the interface for updating a transaction.
type transactionUpdater interface {
	UpdateTransaction(ctx context.Context, transaction domain.Transaction) domain.Result[domain.Transaction]
}

// UpdateTransactionHandler handles PUT /v1/transactions/{id}.
type UpdateTransactionHandler struct {
	Repository transactionUpdater
}

// NewUpdateTransactionHandler creates a new UpdateTransactionHandler.
func NewUpdateTransactionHandler(repo transactionUpdater) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{Repository: repo}
}

// Register registers the update transaction endpoint with the Huma API.
func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPut,
		Path:        "/v1/transactions/{id}",
		Summary:     "Update transaction",
		Description: "Replaces a transaction, superseding any still-queued edit when offline.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid transaction id", err)
	}

	transaction, err := parseTransactionBody(id, &input.Body)
	if err != nil {
		return nil, err
	}

	result := h.Repository.UpdateTransaction(ctx, *transaction)
	if result.IsError() {
		return nil, resultError(result)
	}

	return &UpdateTransactionOutput{Body: UpdateTransactionResponseBody{
		Transaction: fromDomain(&result.Data),
		Message:     result.Message,
	}}, nil
}
