package simulation

import (
	"context"
	"math/rand"
	"time"

	"github.com/apparel-insights/inventory-sim/internal/calendar"
	"github.com/apparel-insights/inventory-sim/internal/params"
)

const (
	variationMin = 0.7
	variationMax = 1.3
)

// Engine runs the daily inventory process for a single brand. All state is
// owned by the engine and mutated strictly in increasing day order; the
// event logs are append-only and never rewritten except for the stock_after
// overwrite on the day a replenishment fires.
type Engine struct {
	brand             string
	start             time.Time
	cfg               EffectiveConfig
	baseDemand        float64
	seasonality       map[int]float64
	monthlyBaseline   map[int]float64
	avgPrice          float64
	festivalOverrides map[string]float64

	// variation draws the daily random demand factor. Replaceable in tests
	// to make demand deterministic.
	variation func() float64

	stock int
	day   int

	totalUnitsSold int
	totalRevenue   float64
	transactions   int
	stockoutDays   int
	restockCount   int

	monthSales     map[int]int // key: year*100 + month
	prevMonthSales *int

	daily         []DailyRecord
	restocks      []RestockEvent
	reorderPoints []ReorderPointEvent
	festivalLog   []FestivalEvent
	seasonLog     []SeasonEvent
	trendEvents   []MonthlyTrend
}

// NewEngine builds an engine for one brand. The config must already be
// resolved via MergeConfig; parameters come from the estimator and are not
// copied, so they must not be mutated while the engine runs.
func NewEngine(brand string, cfg EffectiveConfig, p params.Parameters, start time.Time, festivalOverrides map[string]float64) *Engine {
	return &Engine{
		brand:             brand,
		start:             start,
		cfg:               cfg,
		baseDemand:        p.BaseDemand * cfg.DemandMultiplier,
		seasonality:       p.Seasonality,
		monthlyBaseline:   p.MonthlyBaselineUnits,
		avgPrice:          p.AvgPrice,
		festivalOverrides: festivalOverrides,
		variation: func() float64 {
			return variationMin + rand.Float64()*(variationMax-variationMin)
		},
		stock:      cfg.InitialStock,
		monthSales: make(map[int]int),
	}
}

// Brand returns the engine's brand name.
func (e *Engine) Brand() string { return e.brand }

// AvgPrice returns the unit price the engine sells at.
func (e *Engine) AvgPrice() float64 { return e.avgPrice }

// Daily returns the per-day records accumulated so far.
func (e *Engine) Daily() []DailyRecord { return e.daily }

// Restocks returns the restock events accumulated so far.
func (e *Engine) Restocks() []RestockEvent { return e.restocks }

// ReorderPoints returns the reorder-point events accumulated so far.
func (e *Engine) ReorderPoints() []ReorderPointEvent { return e.reorderPoints }

// FestivalEvents returns the festival events accumulated so far.
func (e *Engine) FestivalEvents() []FestivalEvent { return e.festivalLog }

// SeasonEvents returns the season events accumulated so far.
func (e *Engine) SeasonEvents() []SeasonEvent { return e.seasonLog }

// TrendEvents returns the online month-end trend signals.
func (e *Engine) TrendEvents() []MonthlyTrend { return e.trendEvents }

// RestockCount returns how many restocks (periodic or reorder) have fired.
func (e *Engine) RestockCount() int { return e.restockCount }

// Run advances the engine day by day for the given number of steps. Days
// within one engine are strictly sequential; state at day t depends on day
// t-1 and is never reordered.
func (e *Engine) Run(ctx context.Context, days int) error {
	for d := 0; d < days; d++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.Step()
	}
	e.flushTrend()
	return nil
}

// flushTrend emits the trend signal for a final partial month, so every
// calendar month the run touches gets exactly one signal.
func (e *Engine) flushTrend() {
	if e.day == 0 {
		return
	}
	last := e.start.AddDate(0, 0, e.day-1)
	if last.AddDate(0, 0, 1).Month() != last.Month() {
		return // already emitted at the boundary
	}
	e.emitTrend(last, last.Year()*100+int(last.Month()))
}

func (e *Engine) seasonalityFor(date time.Time) float64 {
	if s, ok := e.seasonality[int(date.Month())]; ok {
		return s
	}
	return 1.0
}

// festivalFor resolves the festival in effect on the date, applying any
// request-level multiplier override by festival id.
func (e *Engine) festivalFor(date time.Time) (string, float64) {
	f, ok := calendar.FestivalFor(date)
	if !ok {
		return "", 1.0
	}
	if override, ok := e.festivalOverrides[f.ID]; ok {
		return f.Name, override
	}
	return f.Name, f.Multiplier
}

// Step executes one simulated day: demand, sales, event logs, replenishment,
// monthly accumulation, and the month-end trend signal, in that fixed order.
func (e *Engine) Step() {
	date := e.start.AddDate(0, 0, e.day)

	seasonality := e.seasonalityFor(date)
	festivalName, festivalMult := e.festivalFor(date)
	u := e.variation()

	demand := int(e.baseDemand * seasonality * festivalMult * u)
	if demand < 1 {
		demand = 1
	}

	// Diagnostic split of the demand attributable to each effect. Used only
	// in the event logs, never in stock arithmetic.
	var seasonIncrease, festivalIncrease float64
	if seasonality > 1 {
		seasonIncrease = (seasonality - 1) * (e.baseDemand * u) * festivalMult
	}
	if festivalMult > 1 {
		festivalIncrease = (festivalMult - 1) * e.baseDemand * seasonality * u
	}

	stockBefore := e.stock
	actualSales := demand
	if actualSales > e.stock {
		actualSales = e.stock
	}
	revenue := float64(actualSales) * e.avgPrice

	season := calendar.SeasonFor(date)

	record := DailyRecord{
		Day:                e.day,
		Date:               date.Format("2006-01-02"),
		Brand:              e.brand,
		Demand:             demand,
		StockBefore:        stockBefore,
		Revenue:            revenue,
		PricePerUnit:       e.avgPrice,
		Season:             season.Name,
		SeasonType:         season.Type,
		Quarter:            season.Quarter,
		Festival:           festivalName,
		FestivalMultiplier: festivalMult,
	}

	if actualSales > 0 {
		e.stock -= actualSales
		e.transactions++
		e.totalUnitsSold += actualSales
		e.totalRevenue += revenue
		record.Sales = actualSales
		record.LostSales = demand - actualSales
	} else {
		e.stockoutDays++
		record.Stockout = 1
		record.LostSales = demand
	}
	record.StockAfter = e.stock

	e.daily = append(e.daily, record)
	entry := &e.daily[len(e.daily)-1]

	if seasonality > 1 {
		e.seasonLog = append(e.seasonLog, SeasonEvent{
			Day:            e.day,
			Date:           record.Date,
			SeasonName:     season.Name,
			SeasonType:     season.Type,
			Multiplier:     seasonality,
			DemandIncrease: seasonIncrease,
		})
	}
	if festivalMult > 1 {
		e.festivalLog = append(e.festivalLog, FestivalEvent{
			Day:            e.day,
			Date:           record.Date,
			FestivalName:   festivalName,
			Multiplier:     festivalMult,
			DemandIncrease: festivalIncrease,
		})
	}

	// Replenishment. Periodic restock takes precedence; at most one of the
	// two branches fires per day.
	if e.cfg.RestockDays > 0 && e.day > 0 && e.day%e.cfg.RestockDays == 0 {
		before := e.stock
		e.stock += e.cfg.RestockQuantity
		e.restockCount++
		e.restocks = append(e.restocks, RestockEvent{
			Day:         e.day,
			Brand:       e.brand,
			Quantity:    e.cfg.RestockQuantity,
			StockBefore: before,
			StockAfter:  e.stock,
			Type:        "periodic",
		})
		entry.StockAfter = e.stock
	} else if e.cfg.ReorderPoint > 0 && e.stock <= e.cfg.ReorderPoint {
		e.reorderPoints = append(e.reorderPoints, ReorderPointEvent{
			Day:             e.day,
			Brand:           e.brand,
			StockLevel:      e.stock,
			ReorderPoint:    e.cfg.ReorderPoint,
			ReorderQuantity: e.cfg.ReorderQuantity,
			Triggered:       e.cfg.EnableReorder,
		})
		if e.cfg.EnableReorder {
			before := e.stock
			e.stock += e.cfg.ReorderQuantity
			e.restockCount++
			e.restocks = append(e.restocks, RestockEvent{
				Day:         e.day,
				Brand:       e.brand,
				Quantity:    e.cfg.ReorderQuantity,
				StockBefore: before,
				StockAfter:  e.stock,
				Type:        "reorder",
			})
			entry.StockAfter = e.stock
		}
	}

	monthKey := date.Year()*100 + int(date.Month())
	e.monthSales[monthKey] += entry.Sales

	e.emitMonthTrend(date, monthKey)

	e.day++
}

// emitMonthTrend appends the online trend signal when the next day falls in
// a different month, using the month's accumulated sales.
func (e *Engine) emitMonthTrend(date time.Time, monthKey int) {
	next := date.AddDate(0, 0, 1)
	if next.Month() == date.Month() {
		return
	}
	e.emitTrend(date, monthKey)
}

func (e *Engine) emitTrend(date time.Time, monthKey int) {
	month := int(date.Month())
	sales := e.monthSales[monthKey]

	baseline, ok := e.monthlyBaseline[month]
	if !ok {
		baseline = e.baseDemand * 30
	}

	var prev *float64
	if e.prevMonthSales != nil {
		p := float64(*e.prevMonthSales)
		prev = &p
	}

	res := ClassifyTrend(float64(sales), baseline, prev)
	e.trendEvents = append(e.trendEvents, MonthlyTrend{
		Month:             month,
		Brand:             e.brand,
		Sales:             sales,
		BaselineUnits:     baseline,
		GrowthVsBaseline:  res.GrowthVsBaseline,
		MoMGrowth:         res.MoMGrowth,
		SeasonalityFactor: e.seasonalityFor(date),
		Trend:             res.Label,
		TrendScore:        res.TrendScore,
	})

	s := sales
	e.prevMonthSales = &s
}
