package ecommerce

import (
	"errors"
	"strings"
)

// Settings are the store-specific switches of the BrickLink adapter.
type Settings struct {
	// ImportTypes restricts product listing to these item types; empty means all
	ImportTypes []string
	// ImportStockroom also lists lots held in the stockroom
	ImportStockroom bool
	// MultipleStockrooms enables stockrooms B and C and parks zero-stock lots in C
	MultipleStockrooms bool
	// MaxQuantityForSets caps the quantity pushed for SET lots when set
	MaxQuantityForSets *int
	// GroupParts folds all PART order lines into one line
	GroupParts bool
}

var ErrSettingsNegativeSetCap = errors.New("bricklink: max quantity for sets must not be negative")

// Validate normalises item types to upper case and rejects a negative set cap.
func (s *Settings) Validate() error {
	if s.MaxQuantityForSets != nil && *s.MaxQuantityForSets < 0 {
		return ErrSettingsNegativeSetCap
	}
	types := s.ImportTypes[:0]
	for _, t := range s.ImportTypes {
		if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
			types = append(types, t)
		}
	}
	s.ImportTypes = types
	return nil
}

// inventoryQuery builds the filter for listing store lots.
func (s *Settings) inventoryQuery() map[string]string {
	status := "Y"
	if s.ImportStockroom {
		status += ",S"
		if s.MultipleStockrooms {
			status += ",B,C"
		}
	}
	query := map[string]string{"status": status}
	if len(s.ImportTypes) > 0 {
		query["item_type"] = strings.Join(s.ImportTypes, ",")
	}
	return query
}

// stockroomID is where lots without stock are parked.
func (s *Settings) stockroomID() string {
	if s.MultipleStockrooms {
		return "C"
	}
	return "S"
}
