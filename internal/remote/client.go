// Package remote talks to the Supabase backend: the transactions table via
// PostgREST and the receipts bucket via the storage API.
package remote

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	baseURL     string
	anonKey     string
	accessToken string
	httpClient  *http.Client
}

func NewClient(baseURL, anonKey, accessToken string) *Client {
	return &Client{
		baseURL:     baseURL,
		anonKey:     anonKey,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("apikey", c.anonKey)
	token := c.accessToken
	if token == "" {
		token = c.anonKey
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	c.authorize(req)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		_ = resp.Body.Close()
		return nil, fmt.Errorf("remote returned %s: %s", resp.Status, body)
	}

	return resp, nil
}
