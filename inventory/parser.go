// Package inventory parses the shop's free-text inventory listings into
// structured product attributes for the storefront cache. Like the pricing
// parser, everything here is pure and deterministic.
package inventory

import (
	"regexp"
	"strings"
)

// Attributes are the structured fields detected from one raw listing. Empty
// strings mean detection failed for that field; the listing is still usable.
type Attributes struct {
	Category  string `json:"category"`
	Brand     string `json:"brand"`
	ModelName string `json:"model_name"`
	Storage   string `json:"storage"`
	Carrier   string `json:"carrier"`
}

// Detector holds the keyword tables used to classify listings. The tables are
// data so the storefront team can extend them without touching parsing code.
type Detector struct {
	// CategoryKeywords maps a category to the lowercase keywords that imply it.
	// Earlier categories win on conflict.
	CategoryOrder    []string
	CategoryKeywords map[string][]string

	// BrandKeywords maps a brand to the lowercase keywords that imply it.
	BrandOrder    []string
	BrandKeywords map[string][]string

	// Carriers are recognized carrier names, matched case-insensitively.
	Carriers []string

	StoragePattern *regexp.Regexp
}

// DefaultDetector returns the keyword tables for the shop's current stock mix.
func DefaultDetector() Detector {
	return Detector{
		CategoryOrder: []string{"Watch", "Tablet", "Laptop", "Phone", "Accessory"},
		CategoryKeywords: map[string][]string{
			"Watch":     {"watch"},
			"Tablet":    {"ipad", "tab "},
			"Laptop":    {"macbook", "chromebook", "laptop"},
			"Phone":     {"iphone", "galaxy", "pixel", "moto", "phone"},
			"Accessory": {"case", "charger", "cable", "airpods"},
		},
		BrandOrder: []string{"Apple", "Samsung", "Google", "Motorola", "LG"},
		BrandKeywords: map[string][]string{
			"Apple":    {"iphone", "ipad", "macbook", "apple", "airpods"},
			"Samsung":  {"galaxy", "samsung"},
			"Google":   {"pixel", "google"},
			"Motorola": {"moto", "motorola"},
			"LG":       {"lg "},
		},
		Carriers:       []string{"Verizon", "AT&T", "T-Mobile", "Sprint", "Unlocked"},
		StoragePattern: regexp.MustCompile(`(?i)\d+\s?(GB|TB)`),
	}
}

// Parse detects product attributes in one raw listing string.
func (d Detector) Parse(raw string) Attributes {
	desc := strings.TrimSpace(raw)
	lower := strings.ToLower(desc)

	var attrs Attributes

	for _, category := range d.CategoryOrder {
		if containsAny(lower, d.CategoryKeywords[category]) {
			attrs.Category = category
			break
		}
	}
	for _, brand := range d.BrandOrder {
		if containsAny(lower, d.BrandKeywords[brand]) {
			attrs.Brand = brand
			break
		}
	}
	for _, carrier := range d.Carriers {
		if strings.Contains(lower, strings.ToLower(carrier)) {
			attrs.Carrier = carrier
			break
		}
	}

	if loc := d.StoragePattern.FindStringIndex(desc); loc != nil {
		attrs.Storage = strings.ToUpper(strings.ReplaceAll(desc[loc[0]:loc[1]], " ", ""))
		attrs.ModelName = d.stripKnownTokens(desc[:loc[0]], attrs)
	} else {
		attrs.ModelName = d.stripKnownTokens(desc, attrs)
	}

	return attrs
}

// stripKnownTokens removes the first occurrence of the detected brand keyword
// and any carrier names, leaving the bare model text.
func (d Detector) stripKnownTokens(s string, attrs Attributes) string {
	out := s
	if attrs.Brand != "" {
		for _, kw := range d.BrandKeywords[attrs.Brand] {
			if idx := strings.Index(strings.ToLower(out), kw); idx >= 0 {
				out = out[:idx] + out[idx+len(kw):]
				break
			}
		}
	}
	for _, carrier := range d.Carriers {
		if idx := strings.Index(strings.ToLower(out), strings.ToLower(carrier)); idx >= 0 {
			out = out[:idx] + out[idx+len(carrier):]
		}
	}
	return strings.Join(strings.Fields(out), " ")
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
