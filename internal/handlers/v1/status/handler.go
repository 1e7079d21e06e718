package status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/diajarkoding/duittracker/internal/logging"
)

// statusReader is the slice of the repository the status endpoint needs.
type statusReader interface {
	IsOnline() bool
	PendingCount(ctx context.Context) (int, error)
}

// Response is the body returned by GET /status, the always-available
// indicator the UI polls for its offline badge.
type Response struct {
	Online       bool `json:"online"`
	PendingCount int  `json:"pendingCount"`
}

type Handler struct {
	Repository statusReader
}

func NewHandler(repo statusReader) Handler {
	return Handler{Repository: repo}
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != "GET" {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	pendingCount, err := h.Repository.PendingCount(req.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return err
	}

	response := Response{
		Online:       h.Repository.IsOnline(),
		PendingCount: pendingCount,
	}
	logData.AddData("online", response.Online)
	logData.AddData("pendingCount", response.PendingCount)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(response)
}
