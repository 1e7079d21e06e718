// Package images manages receipt images: originals in the remote bucket,
// plus a local file cache so receipts stay viewable offline.
package images

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/diajarkoding/duittracker/internal/remote"
)

const (
	localImageDir = "transaction_images"
	signedURLTTL  = time.Hour
)

// IImageRepository covers the image operations the transaction flows need.
type IImageRepository interface {
	Upload(ctx context.Context, data []byte) (string, error)
	SignedURL(ctx context.Context, key string) (string, error)
	DeleteRemote(ctx context.Context, key string) error
	SaveLocal(transactionID uuid.UUID, data []byte) (string, error)
	DeleteLocal(transactionID uuid.UUID) error
}

var _ IImageRepository = (*Repository)(nil)

type Repository struct {
	blobs    remote.IBlobStore
	identity remote.Identity
	dataDir  string
}

func NewRepository(blobs remote.IBlobStore, identity remote.Identity, dataDir string) *Repository {
	return &Repository{blobs: blobs, identity: identity, dataDir: dataDir}
}

// Upload stores the image in the remote bucket under a fresh key scoped to
// the current user and returns that key.
func (r *Repository) Upload(ctx context.Context, data []byte) (string, error) {
	userID := r.identity.CurrentUserID()
	if userID == "" {
		return "", errors.New("user not authenticated")
	}

	key := userID + "/" + uuid.Must(uuid.NewV4()).String() + ".jpg"
	return r.blobs.Upload(ctx, key, data)
}

// SignedURL returns a time-limited URL for viewing a remote image.
func (r *Repository) SignedURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", errors.New("empty image key")
	}
	return r.blobs.SignedURL(ctx, key, signedURLTTL)
}

// DeleteRemote removes an image from the remote bucket. Deleting an empty
// key is a no-op.
func (r *Repository) DeleteRemote(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return r.blobs.Delete(ctx, key)
}

// SaveLocal writes the image bytes to the local cache and returns the path.
func (r *Repository) SaveLocal(transactionID uuid.UUID, data []byte) (string, error) {
	dir := filepath.Join(r.dataDir, localImageDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create image cache directory: %w", err)
	}

	path := filepath.Join(dir, transactionID.String()+".jpg")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write cached image: %w", err)
	}
	return path, nil
}

// DeleteLocal removes the cached image file for a transaction, if any.
func (r *Repository) DeleteLocal(transactionID uuid.UUID) error {
	path := filepath.Join(r.dataDir, localImageDir, transactionID.String()+".jpg")
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
