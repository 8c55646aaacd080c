package pricing

import (
	"regexp"
	"strings"

	"github.com/fixitlab/buyback-api/models"
)

// Column layout of the wholesale sheet. Index 0 is an internal SKU column we
// do not consume.
const (
	ColDescription = 1
	ColFirstPrice  = 2
	ColLastPrice   = 7
)

// minDescriptionLen is the shortest description cell that can describe a device.
const minDescriptionLen = 5

// RuleSet holds every pattern the row classifier matches against. The rules are
// data rather than scattered literals so they can be swapped when the sheet
// format drifts, and tested in isolation.
type RuleSet struct {
	// FamilyToken is the literal product family name a data row must contain.
	FamilyToken string

	// NoiseMarkers flag section headers and footnotes, not data rows. Matching
	// is case-sensitive substring containment.
	NoiseMarkers []string

	// StoragePattern matches the mandatory storage-size token.
	StoragePattern *regexp.Regexp

	// DevicePattern requires the family token followed eventually by a storage
	// token somewhere in the description.
	DevicePattern *regexp.Regexp

	// SeriesPattern matches the leading model-generation token of a model name.
	SeriesPattern *regexp.Regexp
}

// DefaultRules returns the rule set for the iPhone wholesale sheet.
func DefaultRules() RuleSet {
	family := models.DeviceTypeIPhone
	return RuleSet{
		FamilyToken: family,
		NoiseMarkers: []string{
			"Model",
			"Cracked",
			"Degraded",
			"Contact",
			"Used",
			"Prices for",
		},
		StoragePattern: regexp.MustCompile(`(?i)\d+(GB|TB)`),
		DevicePattern:  regexp.MustCompile(`(?i)` + regexp.QuoteMeta(family) + `.*\d+\s*(GB|TB)`),
		SeriesPattern:  regexp.MustCompile(`(?i)^(\d+|SE|XS|XR|X)$`),
	}
}

// DeviceFields holds the identity fields extracted from an accepted row.
type DeviceFields struct {
	// Model is the full descriptive string, e.g. "iPhone 13 Pro 256GB Unlocked".
	Model string
	// ModelName is the series+variant without storage or network, e.g. "13 Pro".
	ModelName string
	// Storage is the storage token, e.g. "256GB".
	Storage string
	// Network is models.NetworkUnlocked or models.NetworkCarrierLocked.
	Network string
	// Series is the leading generation token of ModelName, nil when absent.
	Series *string
}

// Classify inspects a row's description cell and either extracts device fields
// or rejects the row. Rejection is the dominant expected case for sheet noise;
// it is never an error.
func (r RuleSet) Classify(row []string) (*DeviceFields, bool) {
	if len(row) <= ColDescription {
		return nil, false
	}
	desc := strings.TrimSpace(row[ColDescription])
	if len(desc) < minDescriptionLen {
		return nil, false
	}
	for _, marker := range r.NoiseMarkers {
		if strings.Contains(desc, marker) {
			return nil, false
		}
	}
	if !strings.Contains(desc, r.FamilyToken) || !r.DevicePattern.MatchString(desc) {
		return nil, false
	}

	loc := r.StoragePattern.FindStringIndex(desc)
	if loc == nil {
		// Storage is mandatory: a row without a storage token is always
		// skipped even when it otherwise looks like a device row.
		return nil, false
	}
	storage := strings.ToUpper(desc[loc[0]:loc[1]])

	// Model-name extraction order matters: take the prefix before the storage
	// token, then remove the first occurrence of the family token, then trim.
	// Series matching depends on the trimmed result.
	modelName := desc[:loc[0]]
	modelName = strings.Replace(modelName, r.FamilyToken, "", 1)
	modelName = strings.TrimSpace(modelName)

	if storage == "" || modelName == "" {
		return nil, false
	}

	network := models.NetworkCarrierLocked
	if strings.Contains(strings.ToLower(desc), "unlocked") {
		network = models.NetworkUnlocked
	}

	fields := &DeviceFields{
		Model:     desc,
		ModelName: modelName,
		Storage:   storage,
		Network:   network,
		Series:    r.extractSeries(modelName),
	}
	return fields, true
}

// extractSeries matches the leading token of a model name against the known
// generation tokens (digits, SE, XS, XR, X) and uppercases it on match.
func (r RuleSet) extractSeries(modelName string) *string {
	parts := strings.Fields(modelName)
	if len(parts) == 0 {
		return nil
	}
	if !r.SeriesPattern.MatchString(parts[0]) {
		return nil
	}
	series := strings.ToUpper(parts[0])
	return &series
}
