package ecommerce

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	// number-first ("12a Main St") or number-last ("Main St 12a")
	streetPattern = regexp.MustCompile(`(?i)^(\d+[\w\-/]*)\s+(.+)|(.+?)\s+(\d+[\w\-/]*)$`)
)

// StreetAddress is a single address line split into street and house number.
type StreetAddress struct {
	Street      string
	HouseNumber string
}

// ParseStreetAddress splits a free-text address line. It returns nil when no
// house number can be found; callers then use the whole line as street.
func ParseStreetAddress(line string) *StreetAddress {
	normalized := strings.TrimSpace(whitespaceRun.ReplaceAllString(strings.ReplaceAll(line, ",", " "), " "))

	m := streetPattern.FindStringSubmatch(normalized)
	if m == nil {
		return nil
	}

	var street, number string
	if m[1] != "" {
		number, street = m[1], m[2]
	} else {
		street, number = m[3], m[4]
	}

	street, number = strings.TrimSpace(street), strings.TrimSpace(number)
	if street == "" || number == "" {
		return nil
	}
	return &StreetAddress{Street: street, HouseNumber: number}
}
