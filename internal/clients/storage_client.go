package clients

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// StorageClient uploads and deletes product images against an S3-compatible
// object storage REST API (Supabase Storage layout: /storage/v1/object/...).
type StorageClient struct {
	baseURL    string
	bucket     string
	serviceKey string
	httpClient *http.Client
}

// NewStorageClient creates a storage client for the given bucket. An empty
// baseURL yields a nil client; callers treat that as "image hosting disabled".
func NewStorageClient(baseURL, bucket, serviceKey string) *StorageClient {
	if baseURL == "" {
		return nil
	}

	return &StorageClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		bucket:     bucket,
		serviceKey: serviceKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

var unsafePathChars = regexp.MustCompile(`[^a-z0-9.-]`)

// ObjectPath builds a collision-resistant storage path for an uploaded file.
func ObjectPath(filename string) string {
	safe := strings.ToLower(filename)
	safe = strings.ReplaceAll(safe, " ", "-")
	safe = unsafePathChars.ReplaceAllString(safe, "")
	if safe == "" {
		safe = "image"
	}
	return fmt.Sprintf("products/%d-%s", time.Now().UnixMilli(), safe)
}

// Upload stores the file at the given path and returns its public URL.
func (c *StorageClient) Upload(ctx context.Context, path string, contentType string, data io.Reader) (string, error) {
	body, err := io.ReadAll(data)
	if err != nil {
		return "", fmt.Errorf("failed to read upload body: %w", err)
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, path)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Authorization", "Bearer "+c.serviceKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to call storage service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("storage upload failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	return c.PublicURL(path), nil
}

// Delete removes a stored object. Missing objects are not an error.
func (c *StorageClient) Delete(ctx context.Context, path string) error {
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, path)
	httpReq, err := http.NewRequestWithContext(ctx, "DELETE", endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.serviceKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call storage service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("storage delete failed with status %d", resp.StatusCode)
	}

	return nil
}

// PublicURL returns the unauthenticated URL for a stored object.
func (c *StorageClient) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, path)
}

// ExtractPath recovers the object path from a public URL produced by this
// client. Returns empty when the URL points somewhere else.
func (c *StorageClient) ExtractPath(publicURL string) string {
	prefix := fmt.Sprintf("%s/storage/v1/object/public/%s/", c.baseURL, c.bucket)
	if !strings.HasPrefix(publicURL, prefix) {
		return ""
	}
	return strings.TrimPrefix(publicURL, prefix)
}
