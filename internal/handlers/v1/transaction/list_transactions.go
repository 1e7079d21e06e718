package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/diajarkoding/duittracker/internal/domain"
	"github.com/diajarkoding/duittracker/internal/logging"
)

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []Transaction `json:"transactions" doc:"Transactions sorted by date descending"`
	FromCache    bool          `json:"fromCache" doc:"True when served from the local cache instead of the remote store"`
	Message      string        `json:"message,omitempty" doc:"Human-readable note, e.g. why cached data was served"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// transactionLister is the interface for listing transactions.
type transactionLister interface {
	GetAllTransactions(ctx context.Context) <-chan domain.Result[[]domain.Transaction]
}

// ListTransactionsHandler handles GET /v1/transactions.
type ListTransactionsHandler struct {
	Repository transactionLister
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(repo transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{Repository: repo}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/transactions",
		Summary:     "List transactions",
		Description: "Returns the user's transactions, remote-backed when online and cached when not.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *ListTransactionsHandler) handle(ctx context.Context, _ *struct{}) (*ListTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)

	var result domain.Result[[]domain.Transaction]
	for result = range h.Repository.GetAllTransactions(ctx) {
		// Drain the stream; the last value is the terminal one.
	}

	if result.IsError() {
		return nil, resultError(result)
	}

	if logData != nil {
		logData.AddData("transactionCount", len(result.Data))
		logData.AddData("fromCache", result.FromCache)
	}

	return &ListTransactionsOutput{Body: ListTransactionsResponseBody{
		Transactions: fromDomainList(result.Data),
		FromCache:    result.FromCache,
		Message:      result.Message,
	}}, nil
}
