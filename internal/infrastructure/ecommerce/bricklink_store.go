package ecommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/Jens252/billbee-bricklink/internal/domain/integration"
	"github.com/Jens252/billbee-bricklink/internal/infrastructure/bricklink"
)

// StoreAPI is the part of the store client the repositories need.
// *bricklink.Client implements it.
type StoreAPI interface {
	Get(ctx context.Context, path string, query map[string]string) (json.RawMessage, error)
	Put(ctx context.Context, path string, body any) (json.RawMessage, error)
}

var _ StoreAPI = (*bricklink.Client)(nil)

func fetch[T any](ctx context.Context, api StoreAPI, path string, query map[string]string) (T, error) {
	data, err := api.Get(ctx, path, query)
	if err != nil {
		var zero T
		return zero, err
	}
	return bricklink.Decode[T](data)
}

// resourcePath joins escaped segments into an API path, e.g. orders/123/items.
func resourcePath(segments ...string) string {
	path := ""
	for i, s := range segments {
		if i > 0 {
			path += "/"
		}
		path += url.PathEscape(s)
	}
	return path
}

// hostError converts a store API failure into the host-facing error kinds.
func hostError(notFound error, err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if bricklink.IsNotFound(err) {
		return fmt.Errorf("%w: %s: %w", notFound, msg, err)
	}
	return fmt.Errorf("%w: %s: %w", integration.ErrOperationFailed, msg, err)
}

func requireID(kind, id string) error {
	if id == "" {
		return fmt.Errorf("%w: %s id is required", integration.ErrInvalidArgument, kind)
	}
	return nil
}

// paginate returns the 1-based page of items. Out of range pages are empty.
func paginate[T any](items []T, page, pageSize int) []T {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		return []T{}
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := min(start+pageSize, len(items))
	return items[start:end]
}
