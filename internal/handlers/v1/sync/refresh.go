package sync

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/diajarkoding/duittracker/internal/domain"
)

// RefreshResponseBody is the response body for a forced refresh.
type RefreshResponseBody struct {
	Message string `json:"message" doc:"Human-readable outcome"`
}

// RefreshOutput is the Huma output for a forced refresh.
type RefreshOutput struct {
	Body RefreshResponseBody
}

// remoteRefresher is the interface for forcing a remote re-fetch.
type remoteRefresher interface {
	RefreshFromRemote(ctx context.Context) domain.Result[struct{}]
}

// RefreshHandler handles POST /v1/refresh.
type RefreshHandler struct {
	Repository remoteRefresher
}

// NewRefreshHandler creates a new RefreshHandler.
func NewRefreshHandler(repo remoteRefresher) *RefreshHandler {
	return &RefreshHandler{Repository: repo}
}

// Register registers the refresh endpoint with the Huma API.
func (h *RefreshHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "refresh-transactions",
		Method:      http.MethodPost,
		Path:        "/v1/refresh",
		Summary:     "Refresh from remote",
		Description: "Re-fetches the remote transaction set and replaces the local cache. Requires connectivity.",
		Tags:        []string{"Sync"},
	}, h.handle)
}

func (h *RefreshHandler) handle(ctx context.Context, _ *struct{}) (*RefreshOutput, error) {
	result := h.Repository.RefreshFromRemote(ctx)
	if result.IsError() {
		return nil, resultError(result)
	}

	return &RefreshOutput{Body: RefreshResponseBody{Message: result.Message}}, nil
}
