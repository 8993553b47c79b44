package ecommerce

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jens252/billbee-bricklink/internal/domain/integration"
	"github.com/Jens252/billbee-bricklink/internal/infrastructure/bricklink"
)

// fakeStore is an in-memory StoreAPI. GET responses are keyed by path, PUT
// bodies are recorded in call order.
type fakeStore struct {
	mu      sync.Mutex
	data    map[string]string
	errs    map[string]error
	putErrs map[string]error
	queries map[string]map[string]string
	puts    []fakePut
}

type fakePut struct {
	Path string
	Body map[string]any
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		data:    map[string]string{},
		errs:    map[string]error{},
		putErrs: map[string]error{},
		queries: map[string]map[string]string{},
	}
}

func (f *fakeStore) on(path, data string) *fakeStore {
	f.data[path] = data
	return f
}

func (f *fakeStore) fail(path string, err error) *fakeStore {
	f.errs[path] = err
	return f
}

func (f *fakeStore) failPut(path string, err error) *fakeStore {
	f.putErrs[path] = err
	return f
}

func (f *fakeStore) Get(_ context.Context, path string, query map[string]string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries[path] = query
	if err, ok := f.errs[path]; ok {
		return nil, err
	}
	data, ok := f.data[path]
	if !ok {
		return nil, notFound(path)
	}
	return json.RawMessage(data), nil
}

func (f *fakeStore) Put(_ context.Context, path string, body any) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.putErrs[path]; ok {
		return nil, err
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	f.puts = append(f.puts, fakePut{Path: path, Body: decoded})
	return nil, nil
}

func notFound(path string) error {
	return &bricklink.APIError{Kind: bricklink.ErrNotFound, StatusCode: 404, Path: path, Message: "resource not found: " + path}
}

func serverError(path string) error {
	return &bricklink.APIError{Kind: bricklink.ErrServer, StatusCode: 503, Path: path, Message: "unavailable"}
}

// ---------------------------------------------------------------------------
// Store helper tests
// ---------------------------------------------------------------------------

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name     string
		page     int
		pageSize int
		want     []int
	}{
		{name: "first page", page: 1, pageSize: 2, want: []int{1, 2}},
		{name: "middle page", page: 2, pageSize: 2, want: []int{3, 4}},
		{name: "short last page", page: 3, pageSize: 2, want: []int{5}},
		{name: "past the end", page: 4, pageSize: 2, want: []int{}},
		{name: "page below one is first page", page: 0, pageSize: 3, want: []int{1, 2, 3}},
		{name: "zero page size", page: 1, pageSize: 0, want: []int{}},
		{name: "page larger than set", page: 1, pageSize: 100, want: []int{1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paginate(items, tt.page, tt.pageSize))
		})
	}
}

func TestResourcePath(t *testing.T) {
	assert.Equal(t, "orders", resourcePath("orders"))
	assert.Equal(t, "orders/123/items", resourcePath("orders", "123", "items"))
	assert.Equal(t, "items/PART/3001%2Fb", resourcePath("items", "PART", "3001/b"))
}

func TestHostError(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		err := hostError(integration.ErrOrderNotFound, notFound("orders/1"), "fetch order %s", "1")
		assert.ErrorIs(t, err, integration.ErrOrderNotFound)
		assert.ErrorIs(t, err, bricklink.ErrNotFound)
		assert.NotErrorIs(t, err, integration.ErrOperationFailed)
		assert.Contains(t, err.Error(), "fetch order 1")
	})

	t.Run("other failure", func(t *testing.T) {
		err := hostError(integration.ErrOrderNotFound, serverError("orders/1"), "fetch order %s", "1")
		assert.ErrorIs(t, err, integration.ErrOperationFailed)
		assert.ErrorIs(t, err, bricklink.ErrServer)
		assert.NotErrorIs(t, err, integration.ErrOrderNotFound)
	})

	t.Run("plain error", func(t *testing.T) {
		err := hostError(integration.ErrProductNotFound, errors.New("boom"), "read")
		assert.ErrorIs(t, err, integration.ErrOperationFailed)
	})
}

func TestRequireID(t *testing.T) {
	require.NoError(t, requireID("order", "1"))
	err := requireID("order", "")
	assert.ErrorIs(t, err, integration.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "order id is required")
}
