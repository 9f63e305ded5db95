package simulation

import "github.com/apparel-insights/inventory-sim/internal/params"

// BrandConfig carries the per-brand request overrides. Nil fields fall back
// to the estimator-derived defaults; explicitly set values win even when
// zero, which is how a request disables the reorder threshold.
type BrandConfig struct {
	InitialStock     *int     `json:"initial_stock"`
	RestockDays      *int     `json:"restock_days"`
	RestockQuantity  *int     `json:"restock_quantity"`
	ReorderQuantity  *int     `json:"reorder_quantity"`
	ReorderPoint     *int     `json:"reorder_point"`
	DemandMultiplier *float64 `json:"demand_multiplier"`
	EnableReorder    *bool    `json:"enable_reorder"`
}

// EffectiveConfig is the fully resolved configuration an engine runs with.
// It is built once per brand per run and not touched afterwards.
type EffectiveConfig struct {
	InitialStock     int
	RestockDays      int
	RestockQuantity  int
	ReorderQuantity  int
	ReorderPoint     int
	DemandMultiplier float64
	EnableReorder    bool
}

// Hardcoded last-resort fallbacks, used only when the estimator produced no
// derived config for a brand.
var fallbackConfig = EffectiveConfig{
	InitialStock:     1000,
	RestockDays:      25,
	RestockQuantity:  500,
	ReorderQuantity:  500,
	ReorderPoint:     200,
	DemandMultiplier: 1.0,
	EnableReorder:    true,
}

// MergeConfig resolves request overrides against the estimator defaults in
// documented precedence order: request > derived > hardcoded fallback.
func MergeConfig(req *BrandConfig, derived *params.DerivedConfig) EffectiveConfig {
	eff := fallbackConfig
	if derived != nil {
		eff.InitialStock = derived.InitialStock
		eff.RestockDays = derived.RestockDays
		eff.RestockQuantity = derived.RestockQuantity
		eff.ReorderQuantity = derived.ReorderQuantity
		eff.ReorderPoint = derived.ReorderPoint
		if derived.DemandMultiplier > 0 {
			eff.DemandMultiplier = derived.DemandMultiplier
		}
	}

	if req != nil {
		if req.InitialStock != nil {
			eff.InitialStock = *req.InitialStock
		}
		if req.RestockDays != nil {
			eff.RestockDays = *req.RestockDays
		}
		if req.RestockQuantity != nil {
			eff.RestockQuantity = *req.RestockQuantity
		}
		if req.ReorderQuantity != nil {
			eff.ReorderQuantity = *req.ReorderQuantity
		}
		if req.ReorderPoint != nil {
			eff.ReorderPoint = *req.ReorderPoint
		}
		if req.DemandMultiplier != nil {
			eff.DemandMultiplier = *req.DemandMultiplier
		}
		if req.EnableReorder != nil {
			eff.EnableReorder = *req.EnableReorder
		}
	}

	return eff
}
