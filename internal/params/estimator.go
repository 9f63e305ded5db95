// Package params derives per-brand simulation parameters from historical
// sales data. Estimation runs once per process and its output is read-only.
package params

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/apparel-insights/inventory-sim/internal/dataset"
)

// DerivedConfig is the default replenishment configuration computed from a
// brand's base demand. Request overrides take precedence over every field.
type DerivedConfig struct {
	InitialStock     int     `json:"initial_stock"`
	RestockDays      int     `json:"restock_days"`
	RestockQuantity  int     `json:"restock_quantity"`
	ReorderQuantity  int     `json:"reorder_quantity"`
	ReorderPoint     int     `json:"reorder_point"`
	DemandMultiplier float64 `json:"demand_multiplier"`
}

// Parameters holds everything the simulation engine needs to know about one
// brand's demand profile.
type Parameters struct {
	BaseDemand           float64         `json:"base_demand"`
	Seasonality          map[int]float64 `json:"seasonality"`
	AvgPrice             float64         `json:"avg_price"`
	MonthlyBaselineUnits map[int]float64 `json:"monthly_baseline_units"`
	Config               DerivedConfig   `json:"calculated_config"`
}

// baselineYear fixes days-in-month for the monthly baseline computation.
const baselineYear = 2024

const (
	fallbackBaseDemand = 50.0
	fallbackAvgPrice   = 100.0
)

type mockProfile struct {
	baseDemand float64
	avgPrice   float64
}

var mockProfiles = map[string]mockProfile{
	"ADIDAS": {baseDemand: 120, avgPrice: 120},
	"NIKE":   {baseDemand: 150, avgPrice: 150},
	"PUMA":   {baseDemand: 80, avgPrice: 90},
	"H&M":    {baseDemand: 200, avgPrice: 70},
}

// Estimate computes parameters for every supported brand. A brand whose data
// cannot be used falls back to its mock profile without affecting the others.
func Estimate(store *dataset.Store) map[string]Parameters {
	out := make(map[string]Parameters, len(dataset.SupportedBrands))
	for _, brand := range dataset.SupportedBrands {
		p := estimateBrand(brand, store.ForBrand(brand))
		out[brand] = p
		log.Info().
			Str("brand", brand).
			Float64("base_demand", p.BaseDemand).
			Float64("avg_price", p.AvgPrice).
			Int("initial_stock", p.Config.InitialStock).
			Msg("estimated brand parameters")
	}
	return out
}

func estimateBrand(brand string, recs []dataset.Record) Parameters {
	baseDemand, avgPrice, seasonality, usable := demandFromHistory(recs)
	if !usable {
		mock, ok := mockProfiles[brand]
		if !ok {
			mock = mockProfile{baseDemand: fallbackBaseDemand, avgPrice: fallbackAvgPrice}
		}
		baseDemand = mock.baseDemand
		avgPrice = mock.avgPrice
		seasonality = flatSeasonality()
		log.Warn().Str("brand", brand).Msg("no usable historical data, using mock profile")
	}

	baseline := make(map[int]float64, 12)
	for m := 1; m <= 12; m++ {
		baseline[m] = seasonality[m] * baseDemand * float64(daysInMonth(baselineYear, m))
	}

	return Parameters{
		BaseDemand:           baseDemand,
		Seasonality:          seasonality,
		AvgPrice:             avgPrice,
		MonthlyBaselineUnits: baseline,
		Config: DerivedConfig{
			InitialStock:     int(baseDemand * 30),
			RestockDays:      25,
			RestockQuantity:  int(baseDemand * 25),
			ReorderQuantity:  int(baseDemand * 30),
			ReorderPoint:     int(baseDemand * 7),
			DemandMultiplier: 1.0,
		},
	}
}

// demandFromHistory returns (baseDemand, avgPrice, seasonality, ok). ok is
// false when the records cannot support an estimate at all.
func demandFromHistory(recs []dataset.Record) (float64, float64, map[int]float64, bool) {
	if len(recs) == 0 {
		return 0, 0, nil, false
	}

	var totalUnits float64
	for _, r := range recs {
		totalUnits += r.UnitsSold
	}
	if totalUnits == 0 {
		return 0, 0, nil, false
	}

	baseDemand := totalUnits / float64(spanDays(recs))

	seasonality := flatSeasonality()
	monthlySums := make(map[int]float64)
	for _, r := range recs {
		monthlySums[int(r.Date.Month())] += r.UnitsSold
	}
	if len(monthlySums) > 0 {
		var sum float64
		for _, v := range monthlySums {
			sum += v
		}
		mean := sum / float64(len(monthlySums))
		if mean > 0 {
			for m, v := range monthlySums {
				seasonality[m] = v / mean
			}
		}
	}

	return baseDemand, averagePrice(recs), seasonality, true
}

// spanDays is the inclusive day span of the records, falling back to the
// number of distinct dates for degenerate spans.
func spanDays(recs []dataset.Record) int {
	minDate, maxDate := recs[0].Date, recs[0].Date
	distinct := make(map[string]struct{})
	for _, r := range recs {
		if r.Date.Before(minDate) {
			minDate = r.Date
		}
		if r.Date.After(maxDate) {
			maxDate = r.Date
		}
		distinct[r.Date.Format("2006-01-02")] = struct{}{}
	}

	span := int(maxDate.Sub(minDate).Hours()/24) + 1
	if span <= 0 {
		span = len(distinct)
	}
	if span <= 0 {
		span = 1
	}
	return span
}

// averagePrice prefers the mean of positive unit prices, then the implied
// price from total sales over units, then the fixed fallback.
func averagePrice(recs []dataset.Record) float64 {
	var priceSum float64
	var priceCount int
	for _, r := range recs {
		if r.PricePerUnit > 0 {
			priceSum += r.PricePerUnit
			priceCount++
		}
	}
	if priceCount > 0 {
		return priceSum / float64(priceCount)
	}

	var salesSum, unitsSum float64
	for _, r := range recs {
		if r.TotalSales > 0 && r.UnitsSold > 0 {
			salesSum += r.TotalSales
			unitsSum += r.UnitsSold
		}
	}
	if unitsSum > 0 {
		return salesSum / unitsSum
	}

	return fallbackAvgPrice
}

func flatSeasonality() map[int]float64 {
	s := make(map[int]float64, 12)
	for m := 1; m <= 12; m++ {
		s[m] = 1.0
	}
	return s
}

func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
