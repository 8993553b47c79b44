package integration

import "errors"

// ---------------------------------------------------------------------------
// Host-facing errors
// ---------------------------------------------------------------------------

var (
	ErrOrderNotFound   = errors.New("integration: order not found")
	ErrProductNotFound = errors.New("integration: product not found")
	// ErrOperationFailed covers every adapter failure that is not a missing resource.
	ErrOperationFailed = errors.New("integration: operation failed")
	ErrInvalidArgument = errors.New("integration: invalid argument")
)
