package pricing

import (
	"strconv"
	"strings"
)

// priceErrorMarkers are spreadsheet error artifacts that mean "no price".
var priceErrorMarkers = []string{"#REF"}

// ParsePrice converts a raw price-looking cell into a numeric value, or nil
// when the cell carries no usable price. It never fails: empty cells, error
// markers, unparseable text, and negative values all resolve to nil.
func ParsePrice(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	for _, marker := range priceErrorMarkers {
		if strings.Contains(s, marker) {
			return nil
		}
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	// Persisted grade prices must be non-negative; a negative cell is noise.
	if v < 0 {
		return nil
	}
	return &v
}
