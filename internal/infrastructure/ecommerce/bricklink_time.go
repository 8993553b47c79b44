package ecommerce

import (
	"fmt"
	"time"
)

// blTimeLayout is the timestamp format of the store API, always UTC.
const blTimeLayout = "2006-01-02T15:04:05.000Z"

func parseBLTime(value string) (time.Time, error) {
	t, err := time.ParseInLocation(blTimeLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", value, err)
	}
	return t, nil
}

// parseOptionalBLTime returns nil for an absent or empty timestamp.
func parseOptionalBLTime(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := parseBLTime(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
