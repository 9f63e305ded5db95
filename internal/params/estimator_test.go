package params

import (
	"math"
	"testing"
	"time"

	"github.com/apparel-insights/inventory-sim/internal/dataset"
)

func rec(brand string, date time.Time, units, price, total float64) dataset.Record {
	return dataset.Record{Brand: brand, Date: date, UnitsSold: units, PricePerUnit: price, TotalSales: total}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEstimate_BaseDemandFromDateSpan(t *testing.T) {
	// 10 days inclusive span, 200 units total → 20 units/day
	store := dataset.NewStore([]dataset.Record{
		rec("NIKE", day(2023, time.January, 1), 120, 50, 0),
		rec("NIKE", day(2023, time.January, 10), 80, 50, 0),
	}, false)

	p := Estimate(store)["NIKE"]
	if !almostEqual(p.BaseDemand, 20) {
		t.Errorf("expected base demand 20, got %v", p.BaseDemand)
	}
	if !almostEqual(p.AvgPrice, 50) {
		t.Errorf("expected avg price 50, got %v", p.AvgPrice)
	}
}

func TestEstimate_SeasonalityFromMonthlySums(t *testing.T) {
	// Jan 300 units, Feb 100 units → mean 200 → Jan 1.5, Feb 0.5, rest 1.0
	store := dataset.NewStore([]dataset.Record{
		rec("PUMA", day(2023, time.January, 5), 300, 10, 0),
		rec("PUMA", day(2023, time.February, 5), 100, 10, 0),
	}, false)

	p := Estimate(store)["PUMA"]
	if !almostEqual(p.Seasonality[1], 1.5) {
		t.Errorf("expected Jan seasonality 1.5, got %v", p.Seasonality[1])
	}
	if !almostEqual(p.Seasonality[2], 0.5) {
		t.Errorf("expected Feb seasonality 0.5, got %v", p.Seasonality[2])
	}
	for m := 3; m <= 12; m++ {
		if !almostEqual(p.Seasonality[m], 1.0) {
			t.Errorf("month %d: expected default seasonality 1.0, got %v", m, p.Seasonality[m])
		}
	}
}

func TestEstimate_MonthlyBaselineUsesDaysInMonth(t *testing.T) {
	store := dataset.NewStore([]dataset.Record{
		rec("ADIDAS", day(2023, time.March, 1), 100, 10, 0),
		rec("ADIDAS", day(2023, time.March, 10), 100, 10, 0),
	}, false)

	p := Estimate(store)["ADIDAS"]
	// baseline[m] = seasonality[m] * baseDemand * daysInMonth(2024, m)
	want := p.Seasonality[2] * p.BaseDemand * 29 // 2024 is a leap year
	if !almostEqual(p.MonthlyBaselineUnits[2], want) {
		t.Errorf("February baseline: expected %v, got %v", want, p.MonthlyBaselineUnits[2])
	}
	want = p.Seasonality[3] * p.BaseDemand * 31
	if !almostEqual(p.MonthlyBaselineUnits[3], want) {
		t.Errorf("March baseline: expected %v, got %v", want, p.MonthlyBaselineUnits[3])
	}
}

func TestEstimate_MockProfileForEmptyBrand(t *testing.T) {
	store := dataset.NewStore(nil, false)
	all := Estimate(store)

	hm := all["H&M"]
	if hm.BaseDemand != 200 || hm.AvgPrice != 70 {
		t.Errorf("H&M mock profile: got demand=%v price=%v", hm.BaseDemand, hm.AvgPrice)
	}
	nike := all["NIKE"]
	if nike.BaseDemand != 150 || nike.AvgPrice != 150 {
		t.Errorf("NIKE mock profile: got demand=%v price=%v", nike.BaseDemand, nike.AvgPrice)
	}
}

func TestEstimate_ZeroUnitsFallsBackToMock(t *testing.T) {
	store := dataset.NewStore([]dataset.Record{
		rec("PUMA", day(2023, time.May, 1), 0, 10, 0),
	}, false)

	p := Estimate(store)["PUMA"]
	if p.BaseDemand != 80 || p.AvgPrice != 90 {
		t.Errorf("expected PUMA mock profile, got demand=%v price=%v", p.BaseDemand, p.AvgPrice)
	}
}

func TestEstimate_PriceFallbackChain(t *testing.T) {
	// No positive unit prices, but total sales present: 500/50 = 10
	store := dataset.NewStore([]dataset.Record{
		rec("NIKE", day(2023, time.June, 1), 50, 0, 500),
	}, false)
	p := Estimate(store)["NIKE"]
	if !almostEqual(p.AvgPrice, 10) {
		t.Errorf("expected implied price 10, got %v", p.AvgPrice)
	}

	// Neither prices nor totals: fixed fallback 100
	store = dataset.NewStore([]dataset.Record{
		rec("NIKE", day(2023, time.June, 1), 50, 0, 0),
	}, false)
	p = Estimate(store)["NIKE"]
	if !almostEqual(p.AvgPrice, 100) {
		t.Errorf("expected fallback price 100, got %v", p.AvgPrice)
	}
}

func TestEstimate_DerivedConfigRules(t *testing.T) {
	store := dataset.NewStore([]dataset.Record{
		rec("ADIDAS", day(2023, time.January, 1), 100, 10, 0),
		rec("ADIDAS", day(2023, time.January, 10), 100, 10, 0),
	}, false)

	p := Estimate(store)["ADIDAS"]
	bd := p.BaseDemand
	cfg := p.Config
	if cfg.InitialStock != int(bd*30) {
		t.Errorf("initial stock: expected %d, got %d", int(bd*30), cfg.InitialStock)
	}
	if cfg.RestockDays != 25 {
		t.Errorf("restock days: expected 25, got %d", cfg.RestockDays)
	}
	if cfg.RestockQuantity != int(bd*25) {
		t.Errorf("restock quantity: expected %d, got %d", int(bd*25), cfg.RestockQuantity)
	}
	if cfg.ReorderQuantity != int(bd*30) {
		t.Errorf("reorder quantity: expected %d, got %d", int(bd*30), cfg.ReorderQuantity)
	}
	if cfg.ReorderPoint != int(bd*7) {
		t.Errorf("reorder point: expected %d, got %d", int(bd*7), cfg.ReorderPoint)
	}
	if cfg.DemandMultiplier != 1.0 {
		t.Errorf("demand multiplier: expected 1.0, got %v", cfg.DemandMultiplier)
	}
}
