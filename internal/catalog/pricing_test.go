package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFees(t *testing.T) {
	tests := []struct {
		name      string
		basePrice float64
		marketFee float64
		ownFee    float64
		total     float64
	}{
		{"round base", 100, 5, 8, 113},
		{"zero", 0, 0, 0, 0},
		{"fractional base", 33.33, 1.67, 2.67, 37.67},
		{"small base", 15, 0.75, 1.2, 16.95},
		{"large base", 5000, 250, 400, 5650},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			marketFee, ownFee, total := ComputeFees(tt.basePrice)
			assert.InDelta(t, tt.marketFee, marketFee, 1e-9)
			assert.InDelta(t, tt.ownFee, ownFee, 1e-9)
			assert.InDelta(t, tt.total, total, 1e-9)
		})
	}
}

func TestComputeFeesTotalNeverBelowBase(t *testing.T) {
	for _, base := range []float64{0, 0.01, 1, 17.77, 35, 60, 100, 999.99, 5000} {
		_, _, total := ComputeFees(base)
		require.GreaterOrEqual(t, total, base, "base %v", base)
	}
}

func TestClassifyRarityBoundaries(t *testing.T) {
	tests := []struct {
		basePrice float64
		want      string
	}{
		{0, RarityCommon},
		{35, RarityCommon},
		{35.01, RarityRare},
		{60, RarityRare},
		{60.01, RarityEpic},
		{100, RarityEpic},
		{100.01, RarityLegendary},
		{5000, RarityLegendary},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyRarity(tt.basePrice), "price %v", tt.basePrice)
	}
}
