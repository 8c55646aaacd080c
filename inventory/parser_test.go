package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_PhoneListing(t *testing.T) {
	detector := DefaultDetector()

	attrs := detector.Parse("Apple iPhone 12 Mini 64GB Verizon")
	assert.Equal(t, "Phone", attrs.Category)
	assert.Equal(t, "Apple", attrs.Brand)
	assert.Equal(t, "64GB", attrs.Storage)
	assert.Equal(t, "Verizon", attrs.Carrier)
	assert.Equal(t, "Apple 12 Mini", attrs.ModelName)
}

func TestParse_TabletBeatsPhone(t *testing.T) {
	detector := DefaultDetector()

	attrs := detector.Parse("iPad Air 256GB Unlocked")
	assert.Equal(t, "Tablet", attrs.Category)
	assert.Equal(t, "Apple", attrs.Brand)
	assert.Equal(t, "256GB", attrs.Storage)
	assert.Equal(t, "Unlocked", attrs.Carrier)
}

func TestParse_SamsungWithSpacedStorage(t *testing.T) {
	detector := DefaultDetector()

	attrs := detector.Parse("Samsung Galaxy S21 128 GB T-Mobile")
	assert.Equal(t, "Phone", attrs.Category)
	assert.Equal(t, "Samsung", attrs.Brand)
	assert.Equal(t, "128GB", attrs.Storage)
	assert.Equal(t, "T-Mobile", attrs.Carrier)
}

func TestParse_UnrecognizedListing(t *testing.T) {
	detector := DefaultDetector()

	attrs := detector.Parse("Mystery gadget")
	assert.Empty(t, attrs.Category)
	assert.Empty(t, attrs.Brand)
	assert.Empty(t, attrs.Storage)
	assert.Empty(t, attrs.Carrier)
	assert.Equal(t, "Mystery gadget", attrs.ModelName)
}

func TestParse_AccessoryWithoutStorage(t *testing.T) {
	detector := DefaultDetector()

	attrs := detector.Parse("Apple AirPods Pro case")
	assert.Equal(t, "Accessory", attrs.Category)
	assert.Equal(t, "Apple", attrs.Brand)
	assert.Empty(t, attrs.Storage)
}
