package results

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/apparel-insights/inventory-sim/internal/dataset"
	"github.com/apparel-insights/inventory-sim/internal/params"
	"github.com/apparel-insights/inventory-sim/internal/simulation"
)

// Aggregator turns engine logs plus historical records into a Response.
// It holds only immutable inputs and is safe to reuse across runs.
type Aggregator struct {
	store       *dataset.Store
	brandParams map[string]params.Parameters
}

func NewAggregator(store *dataset.Store, brandParams map[string]params.Parameters) *Aggregator {
	return &Aggregator{store: store, brandParams: brandParams}
}

// Process assembles the full response for a completed run. Engines are
// visited in their given order, so all per-brand lists keep brand-major
// ordering.
func (a *Aggregator) Process(engines []*simulation.Engine, days int, start time.Time) *Response {
	resp := &Response{
		DailyData:           []simulation.DailyRecord{},
		MonthlyData:         []MonthlyData{},
		RestockEvents:       []simulation.RestockEvent{},
		ReorderPointEvents:  []simulation.ReorderPointEvent{},
		FestivalEvents:      []simulation.FestivalEvent{},
		SeasonEvents:        []simulation.SeasonEvent{},
		Summary:             []BrandSummary{},
		BestSellingProducts: []BestSeller{},
		SimulationDays:      days,
		MonthlyTrends:       []simulation.MonthlyTrend{},
		TrendEvents:         []simulation.MonthlyTrend{},
		ProductTrends:       []MonthlyProductTrend{},
		ProductTrendEvents:  []ProductTrendEvent{},
	}

	simMonths := simulatedMonths(start, days)

	for _, e := range engines {
		resp.DailyData = append(resp.DailyData, e.Daily()...)
		resp.RestockEvents = append(resp.RestockEvents, e.Restocks()...)
		resp.ReorderPointEvents = append(resp.ReorderPointEvents, e.ReorderPoints()...)
		resp.FestivalEvents = append(resp.FestivalEvents, e.FestivalEvents()...)
		resp.SeasonEvents = append(resp.SeasonEvents, e.SeasonEvents()...)
		resp.TrendEvents = append(resp.TrendEvents, e.TrendEvents()...)

		monthly := monthlyAggregate(e)
		for _, m := range monthly {
			resp.MonthlyData = append(resp.MonthlyData, MonthlyData{
				Month:        m.month,
				Brand:        e.Brand(),
				TotalSales:   m.sales,
				TotalRevenue: sanitize(m.revenue),
				AvgStock:     sanitize(m.avgStock()),
				StockoutDays: m.stockoutDays,
			})
		}

		resp.BestSellingProducts = append(resp.BestSellingProducts, a.bestSellers(e.Brand(), simMonths)...)
		resp.MonthlyTrends = append(resp.MonthlyTrends, a.brandTrends(e.Brand(), monthly)...)

		trends, events := a.productTrends(e.Brand(), simMonths)
		resp.ProductTrends = append(resp.ProductTrends, trends...)
		resp.ProductTrendEvents = append(resp.ProductTrendEvents, events...)

		resp.Summary = append(resp.Summary, summarize(e))
	}

	return resp
}

// simulatedMonths collects the calendar months (1-12) the run touches.
func simulatedMonths(start time.Time, days int) map[int]bool {
	months := make(map[int]bool)
	for d := 0; d < days; d++ {
		months[int(start.AddDate(0, 0, d).Month())] = true
	}
	return months
}

// monthBucket accumulates one calendar month of an engine's daily records.
type monthBucket struct {
	month        int
	sales        int
	revenue      float64
	stockSum     float64
	dayCount     int
	stockoutDays int
}

func (b *monthBucket) avgStock() float64 {
	if b.dayCount == 0 {
		return 0
	}
	return b.stockSum / float64(b.dayCount)
}

// monthlyAggregate groups daily records by calendar month, ascending. A run
// longer than a year folds same-name months together.
func monthlyAggregate(e *simulation.Engine) []*monthBucket {
	byMonth := make(map[int]*monthBucket)
	for _, rec := range e.Daily() {
		date, err := time.Parse("2006-01-02", rec.Date)
		if err != nil {
			continue
		}
		m := int(date.Month())
		b := byMonth[m]
		if b == nil {
			b = &monthBucket{month: m}
			byMonth[m] = b
		}
		b.sales += rec.Sales
		b.revenue += rec.Revenue
		b.stockSum += float64(rec.StockAfter)
		b.dayCount++
		b.stockoutDays += rec.Stockout
	}

	out := make([]*monthBucket, 0, len(byMonth))
	for _, b := range byMonth {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].month < out[j].month })
	return out
}

// bestSellers returns the top product per simulated month for one brand,
// summing historical units by (month, product). Ties go to the product seen
// first in the historical data.
func (a *Aggregator) bestSellers(brand string, simMonths map[int]bool) []BestSeller {
	type productUnits struct {
		product string
		units   float64
	}
	perMonth := make(map[int][]*productUnits)
	index := make(map[int]map[string]*productUnits)

	for _, rec := range a.store.ForBrand(brand) {
		m := int(rec.Date.Month())
		if !simMonths[m] || rec.Product == "" {
			continue
		}
		if index[m] == nil {
			index[m] = make(map[string]*productUnits)
		}
		pu := index[m][rec.Product]
		if pu == nil {
			pu = &productUnits{product: rec.Product}
			index[m][rec.Product] = pu
			perMonth[m] = append(perMonth[m], pu)
		}
		pu.units += rec.UnitsSold
	}

	months := make([]int, 0, len(perMonth))
	for m := range perMonth {
		months = append(months, m)
	}
	sort.Ints(months)

	out := make([]BestSeller, 0, len(months))
	for _, m := range months {
		products := perMonth[m]
		sort.SliceStable(products, func(i, j int) bool { return products[i].units > products[j].units })
		top := products[0]
		out = append(out, BestSeller{
			Brand:     brand,
			Month:     m,
			Product:   top.product,
			UnitsSold: int(top.units),
		})
	}
	return out
}

// brandTrends reclassifies the just-computed monthly aggregate against the
// estimator baselines. Method matches the engine's online signal; values may
// differ because the inputs do.
func (a *Aggregator) brandTrends(brand string, monthly []*monthBucket) []simulation.MonthlyTrend {
	p := a.brandParams[brand]

	out := make([]simulation.MonthlyTrend, 0, len(monthly))
	var prev *float64
	for _, b := range monthly {
		baseline := p.MonthlyBaselineUnits[b.month]
		seasonFactor := 1.0
		if s, ok := p.Seasonality[b.month]; ok {
			seasonFactor = s
		}

		res := simulation.ClassifyTrend(float64(b.sales), baseline, prev)
		out = append(out, simulation.MonthlyTrend{
			Month:             b.month,
			Brand:             brand,
			Sales:             b.sales,
			BaselineUnits:     sanitize(baseline),
			GrowthVsBaseline:  sanitize(res.GrowthVsBaseline),
			MoMGrowth:         sanitizePtr(res.MoMGrowth),
			SeasonalityFactor: sanitize(seasonFactor),
			Trend:             res.Label,
			TrendScore:        sanitize(res.TrendScore),
		})

		s := float64(b.sales)
		prev = &s
	}
	return out
}

// productTrends classifies each historical product month-by-month within the
// simulated window. Baseline is the product's mean units for that month
// across years, actual is the sum; an event fires when the label changes
// from the previous month.
func (a *Aggregator) productTrends(brand string, simMonths map[int]bool) ([]MonthlyProductTrend, []ProductTrendEvent) {
	type cell struct {
		sum  float64
		rows int
	}
	byProduct := make(map[string]map[int]*cell)

	for _, rec := range a.store.ForBrand(brand) {
		m := int(rec.Date.Month())
		if !simMonths[m] || rec.Product == "" {
			continue
		}
		if byProduct[rec.Product] == nil {
			byProduct[rec.Product] = make(map[int]*cell)
		}
		c := byProduct[rec.Product][m]
		if c == nil {
			c = &cell{}
			byProduct[rec.Product][m] = c
		}
		c.sum += rec.UnitsSold
		c.rows++
	}

	products := make([]string, 0, len(byProduct))
	for name := range byProduct {
		products = append(products, name)
	}
	sort.Strings(products)

	var trends []MonthlyProductTrend
	var events []ProductTrendEvent
	for _, product := range products {
		cells := byProduct[product]
		months := make([]int, 0, len(cells))
		for m := range cells {
			months = append(months, m)
		}
		sort.Ints(months)

		var prevSales *float64
		prevLabel := ""
		for _, m := range months {
			c := cells[m]
			sales := c.sum
			baseline := c.sum / float64(c.rows)

			res := simulation.ClassifyTrend(sales, baseline, prevSales)
			trends = append(trends, MonthlyProductTrend{
				Brand:            brand,
				Product:          product,
				Month:            m,
				Sales:            int(sales),
				BaselineUnits:    sanitize(baseline),
				GrowthVsBaseline: sanitize(res.GrowthVsBaseline),
				MoMGrowth:        sanitizePtr(res.MoMGrowth),
				Trend:            res.Label,
				TrendScore:       sanitize(res.TrendScore),
			})

			if prevLabel != "" && res.Label != prevLabel {
				events = append(events, ProductTrendEvent{
					Month:      m,
					Brand:      brand,
					Product:    product,
					FromTrend:  prevLabel,
					ToTrend:    res.Label,
					TrendScore: sanitize(res.TrendScore),
					Reason:     trendReason(res),
				})
			}

			prevLabel = res.Label
			s := sales
			prevSales = &s
		}
	}
	return trends, events
}

// trendReason renders the growth signals behind a label change, MoM first
// when it exists.
func trendReason(res simulation.TrendResult) string {
	var parts []string
	if res.MoMGrowth != nil {
		parts = append(parts, fmt.Sprintf("MoM=%.1f%%", *res.MoMGrowth*100))
	}
	parts = append(parts, fmt.Sprintf("vsBase=%.1f%%", res.GrowthVsBaseline*100))
	return strings.Join(parts, "; ")
}

// summarize totals one brand's run from its daily records.
func summarize(e *simulation.Engine) BrandSummary {
	daily := e.Daily()

	var totalSales, transactions, stockoutDays, totalDemand, totalLost int
	var totalRevenue, stockSum float64
	for _, rec := range daily {
		totalSales += rec.Sales
		totalRevenue += rec.Revenue
		if rec.Sales > 0 {
			transactions++
		}
		if rec.Stockout > 0 {
			stockoutDays++
		}
		stockSum += float64(rec.StockAfter)
		totalDemand += rec.Demand
		totalLost += rec.LostSales
	}

	avgStock := 0.0
	finalStock := 0
	if len(daily) > 0 {
		avgStock = stockSum / float64(len(daily))
		finalStock = daily[len(daily)-1].StockAfter
	}
	lostRate := 0.0
	if totalDemand > 0 {
		lostRate = float64(totalLost) / float64(totalDemand) * 100
	}

	return BrandSummary{
		Brand:          e.Brand(),
		TotalUnitsSold: totalSales,
		TotalRevenue:   sanitize(totalRevenue),
		Transactions:   transactions,
		RestockCount:   e.RestockCount(),
		StockoutDays:   stockoutDays,
		AvgStock:       sanitize(avgStock),
		FinalStock:     finalStock,
		LostSalesRate:  sanitize(lostRate),
		TotalLostSales: totalLost,
		AvgPrice:       sanitize(e.AvgPrice()),
	}
}

// sanitize replaces non-finite values so every emitted number is valid JSON.
func sanitize(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func sanitizePtr(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := sanitize(*f)
	return &v
}
