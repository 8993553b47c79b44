package ecommerce

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrSKUMissingColor = errors.New("sku: part requires a color id")
	ErrSKUInvalid      = errors.New("sku: invalid sku")
)

// ItemKey identifies a store lot's catalog item.
type ItemKey struct {
	No      string
	Type    string
	ColorID *int
}

// SKUCodec folds an ItemKey into a single SKU string and back.
//
//	SET  "75192-1"          -> "75192"
//	PART "3001", color 11   -> "P0113001"
//	MINIFIG "sw0001a"       -> "Msw0001a"
type SKUCodec struct {
	// StripSetSuffix drops the "-1" variant suffix of numeric set numbers.
	StripSetSuffix bool
}

// DefaultSKUCodec strips set suffixes.
var DefaultSKUCodec = SKUCodec{StripSetSuffix: true}

// Encode returns the SKU for key.
func (c SKUCodec) Encode(key ItemKey) (string, error) {
	switch key.Type {
	case ItemTypeSet:
		if c.StripSetSuffix && len(key.No) >= 3 && isDigits(key.No[:3]) && strings.HasSuffix(key.No, "-1") {
			return key.No[:len(key.No)-2], nil
		}
		return key.No, nil
	case ItemTypePart:
		if key.ColorID == nil {
			return "", fmt.Errorf("%w: %s", ErrSKUMissingColor, key.No)
		}
		return fmt.Sprintf("P%03d%s", *key.ColorID, key.No), nil
	case "":
		return "", fmt.Errorf("%w: empty item type for %s", ErrSKUInvalid, key.No)
	default:
		return key.Type[:1] + key.No, nil
	}
}

// Decode recovers the item key from a SKU. A purely numeric SKU is a set whose
// "-1" suffix was stripped, so the suffix is always put back. SKUs with an
// unknown initial are sets and keep the whole SKU as item number.
func (c SKUCodec) Decode(sku string) (ItemKey, error) {
	if sku == "" {
		return ItemKey{}, fmt.Errorf("%w: empty", ErrSKUInvalid)
	}
	if isDigits(sku) {
		return ItemKey{No: sku + "-1", Type: ItemTypeSet}, nil
	}

	itemType := itemTypeForInitial(sku[0])
	switch itemType {
	case ItemTypeSet:
		return ItemKey{No: sku, Type: ItemTypeSet}, nil
	case ItemTypePart:
		if len(sku) < 5 {
			return ItemKey{}, fmt.Errorf("%w: part sku %q too short", ErrSKUInvalid, sku)
		}
		color, err := strconv.Atoi(sku[1:4])
		if err != nil {
			return ItemKey{}, fmt.Errorf("%w: part sku %q has no color: %v", ErrSKUInvalid, sku, err)
		}
		return ItemKey{No: sku[4:], Type: ItemTypePart, ColorID: &color}, nil
	default:
		return ItemKey{No: sku[1:], Type: itemType}, nil
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
