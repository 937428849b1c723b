package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartialRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		needle, haystack string
		want             int
	}{
		{"exact substring", "INV0001", "Payment INV0001 March", 100},
		{"case insensitive", "INV0001", "payment inv0001", 100},
		{"identical", "INV0001", "INV0001", 100},
		{"empty needle", "", "anything", 0},
		{"empty haystack", "INV0001", "", 0},
		{"no overlap", "INV0001", "zzzzzzzzzz", 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, PartialRatio(tt.needle, tt.haystack))
		})
	}
}

func TestPartialRatioBoundedAndMonotonic(t *testing.T) {
	t.Parallel()

	// A near-miss scores between the extremes.
	near := PartialRatio("INV0001", "Payment INV0002")
	assert.Greater(t, near, 0)
	assert.Less(t, near, 100)

	// More textual overlap never scores lower.
	far := PartialRatio("INV0001", "Payment XNV9992")
	assert.GreaterOrEqual(t, near, far)

	for _, haystack := range []string{"", "I", "INV", "INV00", "Payment INV0001", "totally unrelated"} {
		s := PartialRatio("INV0001", haystack)
		assert.GreaterOrEqual(t, s, 0)
		assert.LessOrEqual(t, s, 100)
	}
}
