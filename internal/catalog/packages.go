package catalog

import (
	"fmt"
	"sort"
)

// Package bundle kinds.
const (
	KindSinglePremium = "single_premium"
	KindMulti         = "multi_package"
	KindValue         = "value_package"
)

const (
	premiumThreshold = 0.8 // item must cost at least this share of the budget
	multiDiscount    = 0.10
	valueDiscount    = 0.15
)

// GiftPackage is a bundle of catalog items offered under one strategy.
type GiftPackage struct {
	Kind        string    `json:"kind"`
	Items       []Listing `json:"items"`
	TotalPrice  float64   `json:"total_price"`
	Description string    `json:"description"`
	Savings     float64   `json:"savings"`
}

// BuildPackages assembles candidate bundles for a budget from the
// affordable subset of the catalog. Strategies that cannot gather enough
// items are simply omitted; an empty result is not an error.
func BuildPackages(listings []Listing, budget float64) []GiftPackage {
	affordable := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if l.TotalPrice <= budget {
			affordable = append(affordable, l)
		}
	}
	if len(affordable) == 0 {
		return nil
	}

	var packages []GiftPackage
	packages = append(packages, singlePremiumPackages(affordable, budget)...)
	if pkg, ok := multiPackage(affordable, budget); ok {
		packages = append(packages, pkg)
	}
	if pkg, ok := valuePackage(affordable); ok {
		packages = append(packages, pkg)
	}
	return packages
}

// singlePremiumPackages emits the up-to-3 priciest affordable items that
// consume at least 80% of the budget, one package each, undiscounted.
func singlePremiumPackages(affordable []Listing, budget float64) []GiftPackage {
	byPriceDesc := append([]Listing(nil), affordable...)
	sort.SliceStable(byPriceDesc, func(i, j int) bool {
		return byPriceDesc[i].TotalPrice > byPriceDesc[j].TotalPrice
	})

	var packages []GiftPackage
	for _, l := range byPriceDesc {
		if len(packages) == 3 {
			break
		}
		if l.TotalPrice < premiumThreshold*budget {
			continue
		}
		packages = append(packages, GiftPackage{
			Kind:        KindSinglePremium,
			Items:       []Listing{l},
			TotalPrice:  l.TotalPrice,
			Description: fmt.Sprintf("Premium gift: %s", l.Name),
			Savings:     0,
		})
	}
	return packages
}

// multiPackage greedily gathers items cheapest-first while the running
// total fits the budget, then applies the 10% bundle discount. Needs at
// least two items.
func multiPackage(affordable []Listing, budget float64) (GiftPackage, bool) {
	byPriceAsc := append([]Listing(nil), affordable...)
	sort.SliceStable(byPriceAsc, func(i, j int) bool {
		return byPriceAsc[i].TotalPrice < byPriceAsc[j].TotalPrice
	})

	var items []Listing
	var sum float64
	for _, l := range byPriceAsc {
		if sum+l.TotalPrice > budget {
			break
		}
		sum += l.TotalPrice
		items = append(items, l)
	}
	if len(items) < 2 {
		return GiftPackage{}, false
	}

	price := round2(sum * (1 - multiDiscount))
	return GiftPackage{
		Kind:        KindMulti,
		Items:       items,
		TotalPrice:  price,
		Description: fmt.Sprintf("Bundle of %d gifts with 10%% off", len(items)),
		Savings:     round2(sum - price),
	}, true
}

// valuePackage picks the 3 best sellers-per-cost out of the top 5
// candidates and applies the 15% discount. Needs at least three items.
func valuePackage(affordable []Listing) (GiftPackage, bool) {
	ranked := append([]Listing(nil), affordable...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return valueRatio(ranked[i]) > valueRatio(ranked[j])
	})

	if len(ranked) > 5 {
		ranked = ranked[:5]
	}
	if len(ranked) < 3 {
		return GiftPackage{}, false
	}
	items := ranked[:3]

	var sum float64
	for _, l := range items {
		sum += l.TotalPrice
	}
	price := round2(sum * (1 - valueDiscount))
	return GiftPackage{
		Kind:        KindValue,
		Items:       items,
		TotalPrice:  price,
		Description: "Best-value trio with 15% off",
		Savings:     round2(sum - price),
	}, true
}

func valueRatio(l Listing) float64 {
	if l.TotalPrice == 0 {
		return 0
	}
	return float64(l.SalesCount) / l.TotalPrice
}
