package catalog

// RawGift is one gift record as delivered by an upstream source or the
// fallback table, before pricing and deduplication.
type RawGift struct {
	ID             string
	Name           string
	BasePrice      float64
	ImageURL       string
	IsTransferable bool
	SalesCount     int
}

// Listing is a canonical catalog entry: priced, classified and unique by
// name within a snapshot. Listings are built fresh on every cache miss
// and never mutated afterwards.
type Listing struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	BasePrice      float64 `json:"base_price"`
	MarketFee      float64 `json:"market_fee"`
	OwnFee         float64 `json:"my_fee"`
	TotalPrice     float64 `json:"total_price"`
	ImageURL       string  `json:"image_url"`
	Market         string  `json:"market"`
	IsTransferable bool    `json:"is_transferable"`
	Rarity         string  `json:"rarity"`
	SalesCount     int     `json:"sales_count"`
}

// placeholderName marks records the upstream delivers without a usable
// model name; the normalizer drops them.
const placeholderName = "Unknown Gift"

// imageResolver supplies an image reference for records that carry
// none; in production it is the cache's placeholder resolver.
type imageResolver func(name string) string

// Normalize converts raw records into listings: unnamed records are
// skipped, prices and rarity are computed, and duplicate names collapse
// to the cheapest entry regardless of input order.
func Normalize(records []RawGift, resolveImage imageResolver) []Listing {
	byName := make(map[string]int, len(records))
	listings := make([]Listing, 0, len(records))

	for _, rec := range records {
		if rec.Name == "" || rec.Name == placeholderName {
			continue
		}

		marketFee, ownFee, totalPrice := ComputeFees(rec.BasePrice)

		image := rec.ImageURL
		if image == "" && resolveImage != nil {
			image = resolveImage(rec.Name)
		}

		id := rec.ID
		if id == "" {
			id = fallbackID(rec.Name)
		}

		listing := Listing{
			ID:             id,
			Name:           rec.Name,
			BasePrice:      rec.BasePrice,
			MarketFee:      marketFee,
			OwnFee:         ownFee,
			TotalPrice:     totalPrice,
			ImageURL:       image,
			Market:         "Portals",
			IsTransferable: rec.IsTransferable,
			Rarity:         ClassifyRarity(rec.BasePrice),
			SalesCount:     rec.SalesCount,
		}

		if idx, seen := byName[rec.Name]; seen {
			// Duplicates keep whichever offer is cheaper for the buyer.
			if listing.TotalPrice < listings[idx].TotalPrice {
				listings[idx] = listing
			}
			continue
		}
		byName[rec.Name] = len(listings)
		listings = append(listings, listing)
	}

	return listings
}
