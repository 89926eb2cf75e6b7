// Package storage is the HTTP client for the blob-storage and auth
// backend. The caller's bearer token is passed through on every
// request so the backend can enforce row-level access.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client communicates with the storage backend's HTTP API.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client

	maxObjectBytes int64
}

func NewClient(baseURL, serviceKey string, maxObjectBytes int64) *Client {
	return &Client{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		maxObjectBytes: maxObjectBytes,
	}
}

// Download fetches a stored object's raw bytes by its storage path.
// The path's slash-separated segments are escaped individually so
// nested object paths keep their separators.
func (c *Client) Download(ctx context.Context, path, authorization string) ([]byte, error) {
	u := c.baseURL + "/object/files/" + escapePath(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req, authorization)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download object: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("download object %s: status %d: %s", path, resp.StatusCode, string(respBody))
	}

	limit := c.maxObjectBytes
	if limit <= 0 {
		limit = 1 << 30
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", path, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("object %s exceeds max size (%d bytes)", path, limit)
	}
	return data, nil
}

// ResolveUser resolves the caller identity behind a bearer token.
func (c *Client) ResolveUser(ctx context.Context, authorization string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/user", nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req, authorization)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("resolve user: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("resolve user: status %d: %s", resp.StatusCode, string(respBody))
	}

	var user struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return "", fmt.Errorf("decode user: %w", err)
	}
	if user.ID == "" {
		return "", fmt.Errorf("resolve user: empty identity")
	}
	return user.ID, nil
}

func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}

func (c *Client) setHeaders(req *http.Request, authorization string) {
	req.Header.Set("apikey", c.serviceKey)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
