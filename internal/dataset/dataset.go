// Package dataset loads and holds the historical per-brand sales records the
// estimator and aggregator consume. The Store is built once at startup and
// never mutated afterwards.
package dataset

import (
	"sort"
	"time"
)

// SupportedBrands lists the brands the system simulates, in response order.
var SupportedBrands = []string{"ADIDAS", "NIKE", "PUMA", "H&M"}

// Record is one historical sales transaction row.
type Record struct {
	Brand        string
	Date         time.Time
	Product      string
	UnitsSold    float64
	PricePerUnit float64
	TotalSales   float64
}

// Store is an immutable snapshot of the loaded historical dataset.
type Store struct {
	records   []Record
	byBrand   map[string][]Record
	synthetic bool
}

// NewStore indexes the given records by brand. Records for unsupported
// brands are dropped.
func NewStore(records []Record, synthetic bool) *Store {
	supported := make(map[string]bool, len(SupportedBrands))
	for _, b := range SupportedBrands {
		supported[b] = true
	}

	byBrand := make(map[string][]Record)
	kept := make([]Record, 0, len(records))
	for _, r := range records {
		if !supported[r.Brand] {
			continue
		}
		kept = append(kept, r)
		byBrand[r.Brand] = append(byBrand[r.Brand], r)
	}

	return &Store{records: kept, byBrand: byBrand, synthetic: synthetic}
}

// ForBrand returns the records for one brand, oldest first.
func (s *Store) ForBrand(brand string) []Record {
	recs := s.byBrand[brand]
	sorted := make([]Record, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })
	return sorted
}

// Len returns the total number of records across all brands.
func (s *Store) Len() int { return len(s.records) }

// Synthetic reports whether the store was built from generated sample data
// instead of real files.
func (s *Store) Synthetic() bool { return s.synthetic }

// Brands returns the supported brand list.
func (s *Store) Brands() []string {
	out := make([]string, len(SupportedBrands))
	copy(out, SupportedBrands)
	return out
}
