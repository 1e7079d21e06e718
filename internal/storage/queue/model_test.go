package queue

import (
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
)

func TestEncodeDeletePayload_WithoutImageKey(t *testing.T) {
	entityID := uuid.Must(uuid.NewV4())

	payload := EncodeDeletePayload(entityID, "")

	assert.Equal(t, entityID.String(), payload)

	decodedID, imageKey := DecodeDeletePayload(payload)
	assert.Equal(t, entityID.String(), decodedID)
	assert.Empty(t, imageKey)
}

func TestEncodeDeletePayload_WithImageKey(t *testing.T) {
	entityID := uuid.Must(uuid.NewV4())

	payload := EncodeDeletePayload(entityID, "user-123/receipt.jpg")

	decodedID, imageKey := DecodeDeletePayload(payload)
	assert.Equal(t, entityID.String(), decodedID)
	assert.Equal(t, "user-123/receipt.jpg", imageKey)
}
