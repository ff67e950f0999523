// Package catalog turns heterogeneous gift records into a canonical
// priced catalog and answers search, bundle and cache queries over it.
package catalog

import "math"

// Commission rates applied on top of every base price.
const (
	MarketCommission = 0.05
	OwnCommission    = 0.08
)

// Gift rarity tiers, a pure function of base price.
const (
	RarityCommon    = "common"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

// ClassifyRarity maps a base price onto a rarity tier. Boundary values
// belong to the lower tier: exactly 100 is epic, exactly 60 is rare,
// exactly 35 is common.
func ClassifyRarity(basePrice float64) string {
	switch {
	case basePrice > 100:
		return RarityLegendary
	case basePrice > 60:
		return RarityEpic
	case basePrice > 35:
		return RarityRare
	default:
		return RarityCommon
	}
}

// ComputeFees derives both commission fees and the buyer-facing total
// from a base price. Each fee is rounded to two decimals on its own and
// the total is rounded again after summing the rounded fees, matching
// the displayed reference values exactly.
func ComputeFees(basePrice float64) (marketFee, ownFee, totalPrice float64) {
	marketFee = round2(basePrice * MarketCommission)
	ownFee = round2(basePrice * OwnCommission)
	totalPrice = round2(basePrice + marketFee + ownFee)
	return marketFee, ownFee, totalPrice
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
