package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSkipsUnnamedRecords(t *testing.T) {
	records := []RawGift{
		{Name: "", BasePrice: 10},
		{Name: "Unknown Gift", BasePrice: 10},
		{Name: "Toy Bear", BasePrice: 10},
	}

	listings := Normalize(records, nil)
	require.Len(t, listings, 1)
	assert.Equal(t, "Toy Bear", listings[0].Name)
}

func TestNormalizeDeduplicatesKeepingCheapest(t *testing.T) {
	t.Run("cheaper duplicate comes later", func(t *testing.T) {
		listings := Normalize([]RawGift{
			{ID: "a", Name: "X", BasePrice: 10},
			{ID: "b", Name: "X", BasePrice: 8},
		}, nil)
		require.Len(t, listings, 1)
		assert.Equal(t, "b", listings[0].ID)
		assert.InDelta(t, 8, listings[0].BasePrice, 1e-9)
	})

	t.Run("cheaper duplicate comes first", func(t *testing.T) {
		listings := Normalize([]RawGift{
			{ID: "a", Name: "X", BasePrice: 8},
			{ID: "b", Name: "X", BasePrice: 10},
		}, nil)
		require.Len(t, listings, 1)
		assert.Equal(t, "a", listings[0].ID)
	})

	t.Run("non-adjacent duplicates are compared", func(t *testing.T) {
		listings := Normalize([]RawGift{
			{ID: "a", Name: "X", BasePrice: 10},
			{ID: "c", Name: "Y", BasePrice: 50},
			{ID: "b", Name: "X", BasePrice: 8},
		}, nil)
		require.Len(t, listings, 2)
		assert.Equal(t, "b", listings[0].ID)
	})
}

func TestNormalizeComputesPriceFields(t *testing.T) {
	listings := Normalize([]RawGift{{Name: "Genie Lamp", BasePrice: 90, SalesCount: 7}}, nil)
	require.Len(t, listings, 1)

	l := listings[0]
	assert.InDelta(t, 4.5, l.MarketFee, 1e-9)
	assert.InDelta(t, 7.2, l.OwnFee, 1e-9)
	assert.InDelta(t, 101.7, l.TotalPrice, 1e-9)
	assert.Equal(t, RarityEpic, l.Rarity)
	assert.Equal(t, 7, l.SalesCount)
	assert.Equal(t, "Portals", l.Market)
}

func TestNormalizeResolvesMissingImages(t *testing.T) {
	resolved := 0
	resolver := func(name string) string {
		resolved++
		return "placeholder:" + name
	}

	listings := Normalize([]RawGift{
		{Name: "Toy Bear", BasePrice: 10, ImageURL: "https://cdn.example/bear.png"},
		{Name: "Hex Pot", BasePrice: 10},
	}, resolver)

	require.Len(t, listings, 2)
	assert.Equal(t, "https://cdn.example/bear.png", listings[0].ImageURL)
	assert.Equal(t, "placeholder:Hex Pot", listings[1].ImageURL)
	assert.Equal(t, 1, resolved)
}

func TestFallbackRecordsDeterministic(t *testing.T) {
	first := FallbackRecords()
	second := FallbackRecords()
	require.Equal(t, first, second)
	require.Len(t, first, 96)

	byName := make(map[string]RawGift, len(first))
	for _, rec := range first {
		byName[rec.Name] = rec
	}

	assert.InDelta(t, 150, byName["Diamond Ring"].BasePrice, 1e-9)
	assert.InDelta(t, 15, byName["Fresh Socks"].BasePrice, 1e-9)

	for name, rec := range byName {
		if _, known := knownPrices[name]; known {
			continue
		}
		assert.GreaterOrEqual(t, rec.BasePrice, 20.0, "synthetic price for %s", name)
		assert.Less(t, rec.BasePrice, 100.0, "synthetic price for %s", name)
		assert.GreaterOrEqual(t, rec.SalesCount, 1, "sales count for %s", name)
		assert.LessOrEqual(t, rec.SalesCount, 50, "sales count for %s", name)
	}
}

func TestPlaceholderImage(t *testing.T) {
	img := PlaceholderImage("Toy Bear")
	assert.True(t, strings.HasPrefix(img, "data:image/svg+xml;base64,"))
	assert.Equal(t, img, PlaceholderImage("Toy Bear"))
}
