package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchFixture() []Listing {
	return []Listing{
		{ID: "g1", Name: "Diamond Ring", TotalPrice: 170},
		{ID: "g2", Name: "Bonded Ring", TotalPrice: 30},
		{ID: "g3", Name: "Toy Bear", TotalPrice: 55},
	}
}

func ptr(v float64) *float64 { return &v }

func TestSearchTermAndMinPrice(t *testing.T) {
	result := Search(searchFixture(), Query{Term: "ring", MinPrice: ptr(50)})
	require.Len(t, result, 1)
	assert.Equal(t, "Diamond Ring", result[0].Name)
}

func TestSearchTermIsCaseInsensitive(t *testing.T) {
	result := Search(searchFixture(), Query{Term: "RING"})
	assert.Len(t, result, 2)
}

func TestSearchPriceBoundsAreInclusive(t *testing.T) {
	result := Search(searchFixture(), Query{MinPrice: ptr(30), MaxPrice: ptr(55)})
	require.Len(t, result, 2)
	assert.Equal(t, "Bonded Ring", result[0].Name)
	assert.Equal(t, "Toy Bear", result[1].Name)
}

func TestSearchSortOrders(t *testing.T) {
	t.Run("default ascending price", func(t *testing.T) {
		result := Search(searchFixture(), Query{})
		require.Len(t, result, 3)
		assert.Equal(t, []string{"g2", "g3", "g1"}, ids(result))
	})

	t.Run("descending price", func(t *testing.T) {
		result := Search(searchFixture(), Query{SortBy: SortPriceDesc})
		assert.Equal(t, []string{"g1", "g3", "g2"}, ids(result))
	})

	t.Run("name ascending", func(t *testing.T) {
		result := Search(searchFixture(), Query{SortBy: SortName})
		assert.Equal(t, []string{"g2", "g1", "g3"}, ids(result))
	})
}

func TestSearchEmptyResult(t *testing.T) {
	result := Search(searchFixture(), Query{Term: "no such gift"})
	assert.Empty(t, result)
}

func ids(listings []Listing) []string {
	out := make([]string, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.ID)
	}
	return out
}
