package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixitlab/buyback-api/models"
)

func row(desc string) []string {
	return []string{"1", desc, "500", "450", "400", "350", "300", "100"}
}

func TestClassify_AcceptsUnlockedDevice(t *testing.T) {
	rules := DefaultRules()

	fields, ok := rules.Classify(row("iPhone 13 Pro 256GB Unlocked"))
	require.True(t, ok)
	assert.Equal(t, "iPhone 13 Pro 256GB Unlocked", fields.Model)
	assert.Equal(t, "13 Pro", fields.ModelName)
	assert.Equal(t, "256GB", fields.Storage)
	assert.Equal(t, models.NetworkUnlocked, fields.Network)
	require.NotNil(t, fields.Series)
	assert.Equal(t, "13", *fields.Series)
}

func TestClassify_DefaultsToCarrierLocked(t *testing.T) {
	rules := DefaultRules()

	fields, ok := rules.Classify(row("iPhone SE 64GB"))
	require.True(t, ok)
	assert.Equal(t, models.NetworkCarrierLocked, fields.Network)
	require.NotNil(t, fields.Series)
	assert.Equal(t, "SE", *fields.Series)
}

func TestClassify_RejectsNoiseMarkers(t *testing.T) {
	rules := DefaultRules()

	for _, desc := range []string{
		"Model",
		"iPhone Cracked 128GB",
		"Prices for Degraded units",
		"Contact us for pricing",
	} {
		_, ok := rules.Classify(row(desc))
		assert.False(t, ok, "expected %q to be rejected", desc)
	}
}

func TestClassify_RejectsMissingStorage(t *testing.T) {
	rules := DefaultRules()

	_, ok := rules.Classify(row("iPhone 13 Pro Unlocked"))
	assert.False(t, ok)
}

func TestClassify_RejectsShortOrForeignRows(t *testing.T) {
	rules := DefaultRules()

	_, ok := rules.Classify([]string{"only-one-cell"})
	assert.False(t, ok)

	_, ok = rules.Classify(row("abc"))
	assert.False(t, ok)

	_, ok = rules.Classify(row("Galaxy S21 128GB Unlocked"))
	assert.False(t, ok)
}

func TestClassify_RemovesFamilyTokenOnce(t *testing.T) {
	rules := DefaultRules()

	fields, ok := rules.Classify(row("iPhone iPhone 12 64GB"))
	require.True(t, ok)
	assert.Equal(t, "iPhone 12", fields.ModelName)
}

func TestClassify_XSeriesTokens(t *testing.T) {
	rules := DefaultRules()

	for token, want := range map[string]string{
		"iPhone XS Max 256GB Unlocked": "XS",
		"iPhone XR 64GB":               "XR",
		"iPhone X 256GB Unlocked":      "X",
	} {
		fields, ok := rules.Classify(row(token))
		require.True(t, ok, token)
		require.NotNil(t, fields.Series, token)
		assert.Equal(t, want, *fields.Series, token)
	}
}

func TestClassify_NonSeriesLeadingTokenHasNilSeries(t *testing.T) {
	rules := DefaultRules()

	fields, ok := rules.Classify(row("iPhone Pro 256GB Unlocked"))
	require.True(t, ok)
	assert.Nil(t, fields.Series)
}
