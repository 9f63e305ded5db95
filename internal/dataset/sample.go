package dataset

import (
	"fmt"
	"math/rand"
	"time"
)

type sampleProfile struct {
	baseDemand int
	priceMin   float64
	priceMax   float64
}

var sampleProfiles = map[string]sampleProfile{
	"ADIDAS": {baseDemand: 45, priceMin: 120, priceMax: 200},
	"NIKE":   {baseDemand: 55, priceMin: 150, priceMax: 250},
	"PUMA":   {baseDemand: 35, priceMin: 80, priceMax: 150},
	"H&M":    {baseDemand: 60, priceMin: 50, priceMax: 120},
}

const sampleRowsPerBrand = 1000

// SampleRecords generates a synthetic year of transactions per brand, used
// when no historical files can be loaded. The rows only need plausible
// distributions; the estimator treats them exactly like real data.
func SampleRecords() []Record {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

	var records []Record
	for _, brand := range SupportedBrands {
		profile, ok := sampleProfiles[brand]
		if !ok {
			profile = sampleProfile{baseDemand: 50, priceMin: 80, priceMax: 200}
		}
		for i := 0; i < sampleRowsPerBrand; i++ {
			records = append(records, Record{
				Brand:        brand,
				Date:         start.AddDate(0, 0, rng.Intn(365)),
				Product:      fmt.Sprintf("Product_%d", rng.Intn(50)+1),
				UnitsSold:    float64(rng.Intn(100) + 1),
				PricePerUnit: profile.priceMin + rng.Float64()*(profile.priceMax-profile.priceMin),
				TotalSales:   100 + rng.Float64()*4900,
			})
		}
	}
	return records
}
