package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func packageFixture() []Listing {
	return []Listing{
		{ID: "g1", Name: "Candy Cane", TotalPrice: 20, SalesCount: 10},
		{ID: "g2", Name: "Bonded Ring", TotalPrice: 30, SalesCount: 9},
		{ID: "g3", Name: "Toy Bear", TotalPrice: 40, SalesCount: 8},
		{ID: "g4", Name: "Genie Lamp", TotalPrice: 90, SalesCount: 1},
	}
}

func TestBuildPackagesBudget100(t *testing.T) {
	packages := BuildPackages(packageFixture(), 100)

	byKind := make(map[string]GiftPackage)
	for _, p := range packages {
		byKind[p.Kind] = p
	}

	// No item reaches 80% of the budget, so no single-premium package.
	_, ok := byKind[KindSinglePremium]
	assert.False(t, ok)

	multi, ok := byKind[KindMulti]
	require.True(t, ok)
	assert.Equal(t, []string{"g1", "g2", "g3"}, ids(multi.Items))
	assert.InDelta(t, 81, multi.TotalPrice, 1e-9)
	assert.InDelta(t, 9, multi.Savings, 1e-9)

	value, ok := byKind[KindValue]
	require.True(t, ok)
	assert.Equal(t, []string{"g1", "g2", "g3"}, ids(value.Items))
	assert.InDelta(t, 76.5, value.TotalPrice, 1e-9)
	assert.InDelta(t, 13.5, value.Savings, 1e-9)
}

func TestBuildPackagesSinglePremium(t *testing.T) {
	listings := append(packageFixture(), Listing{ID: "g5", Name: "Swiss Watch", TotalPrice: 95, SalesCount: 3})
	packages := BuildPackages(listings, 100)

	var premiums []GiftPackage
	for _, p := range packages {
		if p.Kind == KindSinglePremium {
			premiums = append(premiums, p)
		}
	}

	require.Len(t, premiums, 2)
	// Priciest first, no discount.
	assert.Equal(t, []string{"g5"}, ids(premiums[0].Items))
	assert.InDelta(t, 95, premiums[0].TotalPrice, 1e-9)
	assert.Zero(t, premiums[0].Savings)
	assert.Equal(t, []string{"g4"}, ids(premiums[1].Items))
}

func TestBuildPackagesSinglePremiumCappedAtThree(t *testing.T) {
	listings := []Listing{
		{ID: "a", TotalPrice: 99}, {ID: "b", TotalPrice: 98},
		{ID: "c", TotalPrice: 97}, {ID: "d", TotalPrice: 96},
	}
	packages := BuildPackages(listings, 100)

	count := 0
	for _, p := range packages {
		if p.Kind == KindSinglePremium {
			count++
		}
	}
	assert.Equal(t, 3, count)
}

func TestBuildPackagesSmallBudgetOmitsStrategies(t *testing.T) {
	// Only one affordable item: no multi (needs 2), no value (needs 3),
	// and 20 < 0.8*26 so no premium either.
	packages := BuildPackages(packageFixture(), 26)
	assert.Empty(t, packages)
}

func TestBuildPackagesNothingAffordable(t *testing.T) {
	assert.Nil(t, BuildPackages(packageFixture(), 10))
}

func TestValueRatioZeroPriceGuard(t *testing.T) {
	assert.Zero(t, valueRatio(Listing{TotalPrice: 0, SalesCount: 100}))
}
