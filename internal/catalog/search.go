package catalog

import (
	"sort"
	"strings"
)

// Sort keys accepted by Search.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortName      = "name"
)

// Query is a conjunctive filter over a catalog snapshot. Zero-valued
// fields are inactive; price bounds are inclusive on the total price.
type Query struct {
	Term     string
	MinPrice *float64
	MaxPrice *float64
	SortBy   string
}

// Search filters and sorts a snapshot. It never touches the raw records:
// filters operate on the cached catalog and do not invalidate it.
func Search(listings []Listing, q Query) []Listing {
	result := make([]Listing, 0, len(listings))

	term := strings.ToLower(q.Term)
	for _, l := range listings {
		if term != "" && !strings.Contains(strings.ToLower(l.Name), term) {
			continue
		}
		if q.MinPrice != nil && l.TotalPrice < *q.MinPrice {
			continue
		}
		if q.MaxPrice != nil && l.TotalPrice > *q.MaxPrice {
			continue
		}
		result = append(result, l)
	}

	switch q.SortBy {
	case SortPriceDesc:
		sort.SliceStable(result, func(i, j int) bool { return result[i].TotalPrice > result[j].TotalPrice })
	case SortName:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	default:
		sort.SliceStable(result, func(i, j int) bool { return result[i].TotalPrice < result[j].TotalPrice })
	}

	return result
}
