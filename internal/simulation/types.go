// Package simulation implements the per-brand daily inventory process: the
// demand model, the replenishment policy, and the month-end trend signal.
package simulation

// DailyRecord captures one simulated day for one brand. Exactly one record
// is appended per (brand, day); stock_after is overwritten in place when a
// replenishment fires later in the same day.
type DailyRecord struct {
	Day                int     `json:"day"`
	Date               string  `json:"date"`
	Brand              string  `json:"brand"`
	Demand             int     `json:"demand"`
	Sales              int     `json:"sales"`
	StockBefore        int     `json:"stock_before"`
	StockAfter         int     `json:"stock_after"`
	Revenue            float64 `json:"revenue"`
	Stockout           int     `json:"stockout"`
	LostSales          int     `json:"lost_sales"`
	PricePerUnit       float64 `json:"price_per_unit"`
	Season             string  `json:"season"`
	SeasonType         string  `json:"season_type"`
	Quarter            string  `json:"quarter"`
	Festival           string  `json:"festival,omitempty"`
	FestivalMultiplier float64 `json:"festival_multiplier"`
}

// RestockEvent is logged for both periodic and reorder-triggered restocks.
type RestockEvent struct {
	Day         int    `json:"day"`
	Brand       string `json:"brand"`
	Quantity    int    `json:"quantity"`
	StockBefore int    `json:"stock_before"`
	StockAfter  int    `json:"stock_after"`
	Type        string `json:"type"` // "periodic" | "reorder"
}

// ReorderPointEvent is logged whenever stock crosses the reorder point on a
// non-periodic-restock day, whether or not the reorder actually fires.
type ReorderPointEvent struct {
	Day             int    `json:"day"`
	Brand           string `json:"brand"`
	StockLevel      int    `json:"stock_level"`
	ReorderPoint    int    `json:"reorder_point"`
	ReorderQuantity int    `json:"reorder_quantity"`
	Triggered       bool   `json:"triggered"`
}

// FestivalEvent is logged on days where a festival multiplier is in effect.
type FestivalEvent struct {
	Day            int     `json:"day"`
	Date           string  `json:"date"`
	FestivalName   string  `json:"festival_name"`
	Multiplier     float64 `json:"multiplier"`
	DemandIncrease float64 `json:"demand_increase"`
}

// SeasonEvent is logged on days where the month's seasonality exceeds 1.
type SeasonEvent struct {
	Day            int     `json:"day"`
	Date           string  `json:"date"`
	SeasonName     string  `json:"season_name"`
	SeasonType     string  `json:"season_type"`
	Multiplier     float64 `json:"multiplier"`
	DemandIncrease float64 `json:"demand_increase"`
}

// MonthlyTrend is one month's trend classification for a brand, emitted both
// online by the engine at month boundaries and offline by the aggregator.
type MonthlyTrend struct {
	Month             int      `json:"month"`
	Brand             string   `json:"brand"`
	Sales             int      `json:"sales"`
	BaselineUnits     float64  `json:"baseline_units"`
	GrowthVsBaseline  float64  `json:"growth_vs_baseline"`
	MoMGrowth         *float64 `json:"mom_growth"`
	SeasonalityFactor float64  `json:"seasonality_factor"`
	Trend             string   `json:"trend"`
	TrendScore        float64  `json:"trend_score"`
}
