package transaction

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/diajarkoding/duittracker/internal/domain"
)

func TestHTTP_GetTransaction_Found(t *testing.T) {
	transaction := domainTransaction()

	mockRepo := new(mockRepository)
	mockRepo.On("GetTransactionByID", mock.Anything, transaction.ID).
		Return(domain.Success(&transaction, ""))

	resp := newTestAPI(t, mockRepo).Get("/v1/transactions/" + transaction.ID.String())

	assert.Equal(t, http.StatusOK, resp.Code)
	var body Transaction
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, transaction.ID.String(), body.ID)
	assert.Equal(t, "lunch", body.Note)
}

func TestHTTP_GetTransaction_NotFound(t *testing.T) {
	id := uuid.Must(uuid.NewV4())

	mockRepo := new(mockRepository)
	mockRepo.On("GetTransactionByID", mock.Anything, id).
		Return(domain.Success[*domain.Transaction](nil, ""))

	resp := newTestAPI(t, mockRepo).Get("/v1/transactions/" + id.String())

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHTTP_GetTransaction_InvalidID(t *testing.T) {
	mockRepo := new(mockRepository)

	resp := newTestAPI(t, mockRepo).Get("/v1/transactions/not-a-uuid")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockRepo.AssertNotCalled(t, "GetTransactionByID", mock.Anything, mock.Anything)
}
