package transaction

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/diajarkoding/duittracker/internal/domain"
)

func TestHTTP_UpdateTransaction_UsesPathID(t *testing.T) {
	transaction := domainTransaction()

	mockRepo := new(mockRepository)
	mockRepo.On("UpdateTransaction", mock.Anything, mock.MatchedBy(func(updated domain.Transaction) bool {
		return updated.ID == transaction.ID
	})).Return(domain.Success(transaction, "Transaction updated successfully"))

	resp := newTestAPI(t, mockRepo).Put("/v1/transactions/"+transaction.ID.String(), validBody())

	assert.Equal(t, http.StatusOK, resp.Code)
	var body UpdateTransactionResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Transaction updated successfully", body.Message)
	mockRepo.AssertExpectations(t)
}

func TestHTTP_UpdateTransaction_OfflineReportsQueued(t *testing.T) {
	transaction := domainTransaction()
	transaction.IsSynced = false

	mockRepo := new(mockRepository)
	mockRepo.On("UpdateTransaction", mock.Anything, mock.Anything).
		Return(domain.Success(transaction, "Updated offline. Will sync when online."))

	resp := newTestAPI(t, mockRepo).Put("/v1/transactions/"+transaction.ID.String(), validBody())

	assert.Equal(t, http.StatusOK, resp.Code)
	var body UpdateTransactionResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Updated offline. Will sync when online.", body.Message)
	assert.False(t, body.Transaction.IsSynced)
}

func TestHTTP_UpdateTransaction_InvalidID(t *testing.T) {
	mockRepo := new(mockRepository)

	resp := newTestAPI(t, mockRepo).Put("/v1/transactions/not-a-uuid", validBody())

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockRepo.AssertNotCalled(t, "UpdateTransaction", mock.Anything, mock.Anything)
}
