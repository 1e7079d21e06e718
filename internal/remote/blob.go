package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	storagePath = "/storage/v1/object"
	bucketName  = "receipts"
)

// IBlobStore is the remote blob storage for receipt images.
type IBlobStore interface {
	Upload(ctx context.Context, path string, data []byte) (string, error)
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, path string) error
}

var _ IBlobStore = (*BlobClient)(nil)

type BlobClient struct {
	client *Client
}

func NewBlobClient(client *Client) *BlobClient {
	return &BlobClient{client: client}
}

func (b *BlobClient) Upload(ctx context.Context, path string, data []byte) (string, error) {
	url := b.client.baseURL + storagePath + "/" + bucketName + "/" + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "image/jpeg")

	resp, err := b.client.do(req)
	if err != nil {
		return "", err
	}
	_ = resp.Body.Close()

	return path, nil
}

func (b *BlobClient) SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	body, err := json.Marshal(map[string]int{"expiresIn": int(ttl.Seconds())})
	if err != nil {
		return "", err
	}

	url := b.client.baseURL + storagePath + "/sign/" + bucketName + "/" + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var signed struct {
		SignedURL string `json:"signedURL"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&signed); err != nil {
		return "", fmt.Errorf("decode signed url: %w", err)
	}

	if strings.HasPrefix(signed.SignedURL, "/") {
		return b.client.baseURL + "/storage/v1" + signed.SignedURL, nil
	}
	return signed.SignedURL, nil
}

func (b *BlobClient) Delete(ctx context.Context, path string) error {
	url := b.client.baseURL + storagePath + "/" + bucketName + "/" + path
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}

	resp, err := b.client.do(req)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}
