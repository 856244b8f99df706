package supabase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"techup-blog/internal/domain/entity"
)

// StorageClient uploads objects to Supabase Storage buckets.
type StorageClient struct {
	t       *transport
	baseURL string
	apiKey  string
	bearer  string
}

// NewStorageClient uses the service role key when configured, the anon key otherwise.
func NewStorageClient(cfg Config) *StorageClient {
	bearer := cfg.AnonKey
	if cfg.ServiceRoleKey != "" {
		bearer = cfg.ServiceRoleKey
	}
	return &StorageClient{
		t:       newTransport(cfg, "supabase-storage"),
		baseURL: cfg.URL,
		apiKey:  cfg.AnonKey,
		bearer:  bearer,
	}
}

// Upload stores body at bucket/path. Existing objects are not overwritten.
// Uploads stream their body and are not retried.
func (c *StorageClient) Upload(ctx context.Context, bucket, path, contentType string, body io.Reader) error {
	h := http.Header{}
	h.Set("x-upsert", "false")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := c.t.do(ctx, "supabase.storage.upload", request{
		method:      http.MethodPost,
		path:        "/storage/v1/object/" + bucket + "/" + escapePath(path),
		apiKey:      c.apiKey,
		bearer:      c.bearer,
		body:        body,
		contentType: contentType,
		header:      h,
	})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.IsClientError() {
			return fmt.Errorf("%w: upload %s/%s: %s", entity.ErrProviderRejected, bucket, path, apiErr.Message)
		}
		return fmt.Errorf("supabase upload %s/%s: %w", bucket, path, err)
	}
	return nil
}

// Remove deletes the object at bucket/path.
func (c *StorageClient) Remove(ctx context.Context, bucket, path string) error {
	body, err := jsonBody(map[string][]string{"prefixes": {path}})
	if err != nil {
		return err
	}
	_, err = c.t.do(ctx, "supabase.storage.remove", request{
		method:      http.MethodDelete,
		path:        "/storage/v1/object/" + bucket,
		apiKey:      c.apiKey,
		bearer:      c.bearer,
		body:        body,
		contentType: "application/json",
		idempotent:  true,
	})
	if err != nil {
		return fmt.Errorf("supabase remove %s/%s: %w", bucket, path, err)
	}
	return nil
}

// PublicURL returns the public address of bucket/path.
func (c *StorageClient) PublicURL(bucket, path string) string {
	return c.baseURL + "/storage/v1/object/public/" + bucket + "/" + escapePath(path)
}

// escapePath escapes each segment of an object path, keeping the separators.
func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// Check reports whether the provider is currently reachable as seen by the
// circuit breaker. It makes no network call.
func (c *StorageClient) Check(context.Context) error {
	return c.t.check()
}
