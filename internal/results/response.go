// Package results post-processes engine logs and historical data into the
// final simulation response: monthly aggregates, best sellers, brand and
// product trend series, and per-brand summaries.
package results

import (
	"github.com/apparel-insights/inventory-sim/internal/simulation"
)

// MonthlyData is one brand's aggregate over a calendar month of the run.
type MonthlyData struct {
	Month        int     `json:"month"`
	Brand        string  `json:"brand"`
	TotalSales   int     `json:"total_sales"`
	TotalRevenue float64 `json:"total_revenue"`
	AvgStock     float64 `json:"avg_stock"`
	StockoutDays int     `json:"stockout_days"`
}

// BestSeller is the top product for one (brand, month) from historical data.
type BestSeller struct {
	Brand     string `json:"brand"`
	Month     int    `json:"month"`
	Product   string `json:"product"`
	UnitsSold int    `json:"units_sold"`
}

// BrandSummary totals one brand's run.
type BrandSummary struct {
	Brand          string  `json:"brand"`
	TotalUnitsSold int     `json:"total_units_sold"`
	TotalRevenue   float64 `json:"total_revenue"`
	Transactions   int     `json:"transactions"`
	RestockCount   int     `json:"restock_count"`
	StockoutDays   int     `json:"stockout_days"`
	AvgStock       float64 `json:"avg_stock"`
	FinalStock     int     `json:"final_stock"`
	LostSalesRate  float64 `json:"lost_sales_rate"`
	TotalLostSales int     `json:"total_lost_sales"`
	AvgPrice       float64 `json:"avg_price"`
}

// MonthlyProductTrend is one product's monthly classification against its
// own historical baseline.
type MonthlyProductTrend struct {
	Brand            string   `json:"brand"`
	Product          string   `json:"product"`
	Month            int      `json:"month"`
	Sales            int      `json:"sales"`
	BaselineUnits    float64  `json:"baseline_units"`
	GrowthVsBaseline float64  `json:"growth_vs_baseline"`
	MoMGrowth        *float64 `json:"mom_growth"`
	Trend            string   `json:"trend"`
	TrendScore       float64  `json:"trend_score"`
}

// ProductTrendEvent marks a product's trend label changing between two
// consecutive months.
type ProductTrendEvent struct {
	Month      int     `json:"month"`
	Brand      string  `json:"brand"`
	Product    string  `json:"product"`
	FromTrend  string  `json:"from_trend"`
	ToTrend    string  `json:"to_trend"`
	TrendScore float64 `json:"trend_score"`
	Reason     string  `json:"reason"`
}

// Response is the full simulation output. Daily records are ordered
// brand-major, day-order within each brand.
type Response struct {
	DailyData           []simulation.DailyRecord       `json:"daily_data"`
	MonthlyData         []MonthlyData                  `json:"monthly_data"`
	RestockEvents       []simulation.RestockEvent      `json:"restock_events"`
	ReorderPointEvents  []simulation.ReorderPointEvent `json:"reorder_point_events"`
	FestivalEvents      []simulation.FestivalEvent     `json:"festival_events"`
	SeasonEvents        []simulation.SeasonEvent       `json:"season_events"`
	Summary             []BrandSummary                 `json:"summary"`
	BestSellingProducts []BestSeller                   `json:"best_selling_products"`
	SimulationDays      int                            `json:"simulation_days"`
	MonthlyTrends       []simulation.MonthlyTrend      `json:"monthly_trends"`
	TrendEvents         []simulation.MonthlyTrend      `json:"trend_events"`
	ProductTrends       []MonthlyProductTrend          `json:"product_monthly_trends"`
	ProductTrendEvents  []ProductTrendEvent            `json:"product_trend_events"`
}
