package images

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/diajarkoding/duittracker/internal/remote"
)

type mockBlobStore struct {
	mock.Mock
}

func (m *mockBlobStore) Upload(ctx context.Context, path string, data []byte) (string, error) {
	args := m.Called(ctx, path, data)
	return args.String(0), args.Error(1)
}

func (m *mockBlobStore) SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, path, ttl)
	return args.String(0), args.Error(1)
}

func (m *mockBlobStore) Delete(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

func TestUpload_KeyScopedToUser(t *testing.T) {
	blobs := new(mockBlobStore)
	blobs.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return filepath.Dir(key) == "user-123" && filepath.Ext(key) == ".jpg"
	}), []byte("jpeg-bytes")).Return("user-123/generated.jpg", nil)

	repo := NewRepository(blobs, remote.StaticIdentity{UserID: "user-123"}, t.TempDir())

	key, err := repo.Upload(context.Background(), []byte("jpeg-bytes"))

	assert.NoError(t, err)
	assert.Equal(t, "user-123/generated.jpg", key)
	blobs.AssertExpectations(t)
}

func TestUpload_RequiresAuthentication(t *testing.T) {
	blobs := new(mockBlobStore)
	repo := NewRepository(blobs, remote.StaticIdentity{UserID: ""}, t.TempDir())

	_, err := repo.Upload(context.Background(), []byte("jpeg-bytes"))

	assert.Error(t, err)
	blobs.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func TestSignedURL_UsesHourTTL(t *testing.T) {
	blobs := new(mockBlobStore)
	blobs.On("SignedURL", mock.Anything, "user-123/receipt.jpg", time.Hour).
		Return("https://example.com/signed", nil)

	repo := NewRepository(blobs, remote.StaticIdentity{UserID: "user-123"}, t.TempDir())

	url, err := repo.SignedURL(context.Background(), "user-123/receipt.jpg")

	assert.NoError(t, err)
	assert.Equal(t, "https://example.com/signed", url)
}

func TestDeleteRemote_EmptyKeyIsNoOp(t *testing.T) {
	blobs := new(mockBlobStore)
	repo := NewRepository(blobs, remote.StaticIdentity{UserID: "user-123"}, t.TempDir())

	assert.NoError(t, repo.DeleteRemote(context.Background(), ""))
	blobs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestSaveLocalAndDeleteLocal(t *testing.T) {
	dataDir := t.TempDir()
	repo := NewRepository(new(mockBlobStore), remote.StaticIdentity{UserID: "user-123"}, dataDir)
	transactionID := uuid.Must(uuid.NewV4())

	path, err := repo.SaveLocal(transactionID, []byte("jpeg-bytes"))
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dataDir, "transaction_images", transactionID.String()+".jpg"), path)

	written, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), written)

	assert.NoError(t, repo.DeleteLocal(transactionID))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteLocal_MissingFileIsNoOp(t *testing.T) {
	repo := NewRepository(new(mockBlobStore), remote.StaticIdentity{UserID: "user-123"}, t.TempDir())

	assert.NoError(t, repo.DeleteLocal(uuid.Must(uuid.NewV4())))
}
