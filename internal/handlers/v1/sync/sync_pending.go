package sync

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/diajarkoding/duittracker/internal/domain"
	"github.com/diajarkoding/duittracker/internal/logging"
)

// SyncPendingResponseBody is the response body for a sync pass.
type SyncPendingResponseBody struct {
	Synced  int    `json:"synced" doc:"Operations applied to the remote store"`
	Message string `json:"message" doc:"Human-readable outcome, e.g. synced 3, failed 1"`
}

// SyncPendingOutput is the Huma output for a sync pass.
type SyncPendingOutput struct {
	Body SyncPendingResponseBody
}

// pendingSyncer is the interface for draining the pending queue.
type pendingSyncer interface {
	SyncPendingOperations(ctx context.Context) domain.Result[int]
}

// SyncPendingHandler handles POST /v1/sync.
type SyncPendingHandler struct {
	Repository pendingSyncer
}

// NewSyncPendingHandler creates a new SyncPendingHandler.
func NewSyncPendingHandler(repo pendingSyncer) *SyncPendingHandler {
	return &SyncPendingHandler{Repository: repo}
}

// Register registers the sync endpoint with the Huma API.
func (h *SyncPendingHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "sync-pending",
		Method:      http.MethodPost,
		Path:        "/v1/sync",
		Summary:     "Sync pending operations",
		Description: "Drains the pending operation queue against the remote store.",
		Tags:        []string{"Sync"},
	}, h.handle)
}

func (h *SyncPendingHandler) handle(ctx context.Context, _ *struct{}) (*SyncPendingOutput, error) {
	result := h.Repository.SyncPendingOperations(ctx)
	if result.IsError() {
		return nil, resultError(result)
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("synced", result.Data)
	}

	return &SyncPendingOutput{Body: SyncPendingResponseBody{
		Synced:  result.Data,
		Message: result.Message,
	}}, nil
}

// resultError maps a repository error result to an HTTP error.
func resultError[T any](result domain.Result[T]) error {
	if result.Offline {
		return huma.NewError(http.StatusServiceUnavailable, result.Message, result.Err)
	}
	if result.Message == "User not authenticated" {
		return huma.NewError(http.StatusUnauthorized, result.Message)
	}
	return huma.NewError(http.StatusInternalServerError, result.Message, result.Err)
}
