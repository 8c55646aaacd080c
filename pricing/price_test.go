package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *float64
	}{
		{"plain number", "450", ptr(450.0)},
		{"currency and thousands", "$1,234.50", ptr(1234.50)},
		{"surrounding whitespace", "  $99  ", ptr(99.0)},
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
		{"spreadsheet error", "#REF!", nil},
		{"not a number", "call us", nil},
		{"negative", "-50", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePrice(tt.raw)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 0.0001)
		})
	}
}

func ptr(v float64) *float64 { return &v }
