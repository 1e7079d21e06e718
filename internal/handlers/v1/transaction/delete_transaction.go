package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/diajarkoding/duittracker/internal/domain"
)

// DeleteTransactionInput is the Huma input for deleting a transaction.
type DeleteTransactionInput struct {
	ID string `path:"id" doc:"Transaction UUID"`
}

// DeleteTransactionResponseBody is the response body for deleting a transaction.
type DeleteTransactionResponseBody struct {
	Message string `json:"message" doc:"Human-readable outcome, e.g. deleted offline"`
}

// DeleteTransactionOutput is the Huma output for deleting a transaction.
type DeleteTransactionOutput struct {
	Body DeleteTransactionResponseBody
}

// transactionDeleter is the interface for deleting a transaction.
type transactionDeleter interface {
	DeleteTransaction(ctx context.Context, id uuid.UUID) domain.Result[struct{}]
}

// DeleteTransactionHandler handles DELETE /v1/transactions/{id}.
type DeleteTransactionHandler struct {
	Repository transactionDeleter
}

// NewDeleteTransactionHandler creates a new DeleteTransactionHandler.
func NewDeleteTransactionHandler(repo transactionDeleter) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{Repository: repo}
}

// Register registers the delete transaction endpoint with the Huma API.
func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-transaction",
		Method:      http.MethodDelete,
		Path:        "/v1/transactions/{id}",
		Summary:     "Delete transaction",
		Description: "Deletes a transaction locally and remotely, deferring the remote delete when offline.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *DeleteTransactionHandler) handle(ctx context.Context, input *DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid transaction id", err)
	}

	result := h.Repository.DeleteTransaction(ctx, id)
	if result.IsError() {
		return nil, resultError(result)
	}

	return &DeleteTransactionOutput{Body: DeleteTransactionResponseBody{
		Message: result.Message,
	}}, nil
}
