package catalog

import (
	"errors"
	"log"
)

// ErrGiftNotFound reports a gift id that is absent from the current
// catalog snapshot.
var ErrGiftNotFound = errors.New("gift not found in catalog")

// Service is the read-through catalog: cache first, then the upstream
// source, then the deterministic fallback. It owns no persistent state.
type Service struct {
	source Source
	cache  *Cache

	// Optional observation hooks, wired to Prometheus counters by the
	// composition root.
	OnCacheHit  func()
	OnCacheMiss func()
}

// NewService builds a catalog service. A nil source means fallback-only
// operation.
func NewService(source Source, cache *Cache) *Service {
	return &Service{source: source, cache: cache}
}

// AllGifts returns the normalized catalog, serving from cache while the
// snapshot is fresh. Upstream failures degrade silently to the fallback
// table; this path never returns an error.
func (s *Service) AllGifts() []Listing {
	if listings, ok := s.cache.GetSnapshot(AllGiftsKey); ok {
		if s.OnCacheHit != nil {
			s.OnCacheHit()
		}
		return listings
	}
	if s.OnCacheMiss != nil {
		s.OnCacheMiss()
	}

	records := s.fetchRecords()
	listings := Normalize(records, s.cache.ResolveImage)
	s.cache.SetSnapshot(AllGiftsKey, listings)
	return listings
}

func (s *Service) fetchRecords() []RawGift {
	if s.source == nil {
		return FallbackRecords()
	}
	records, err := s.source.FetchGifts()
	if err != nil || len(records) == 0 {
		if err != nil {
			log.Printf("gifts API unavailable, using fallback catalog: %v", err)
		}
		return FallbackRecords()
	}
	return records
}

// Search runs a query against the current snapshot.
func (s *Service) Search(q Query) []Listing {
	return Search(s.AllGifts(), q)
}

// Packages builds budget bundles from the current snapshot.
func (s *Service) Packages(budget float64) []GiftPackage {
	return BuildPackages(s.AllGifts(), budget)
}

// FindByID resolves a gift id against the current snapshot.
func (s *Service) FindByID(giftID string) (Listing, error) {
	for _, l := range s.AllGifts() {
		if l.ID == giftID {
			return l, nil
		}
	}
	return Listing{}, ErrGiftNotFound
}
