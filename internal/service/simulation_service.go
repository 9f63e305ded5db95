// Package service ties the request surface to the simulation core: it
// resolves the simulation window, consults the response cache, runs the
// orchestrator, and aggregates the results.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/apparel-insights/inventory-sim/internal/cache"
	"github.com/apparel-insights/inventory-sim/internal/dataset"
	"github.com/apparel-insights/inventory-sim/internal/params"
	"github.com/apparel-insights/inventory-sim/internal/results"
	"github.com/apparel-insights/inventory-sim/internal/simulation"
)

// referenceDate anchors start_day offsets; day 0 is January 1st, 2024.
var referenceDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

const defaultSimulationDays = 365

// FestivalDemand carries per-festival multiplier overrides for one request.
type FestivalDemand struct {
	Multipliers map[string]float64 `json:"multipliers"`
}

// Request is the simulation entry point payload. Brand fields are optional;
// absent brands still simulate with estimator defaults. The key H_M maps to
// the H&M brand.
type Request struct {
	NIKE              *simulation.BrandConfig `json:"NIKE"`
	ADIDAS            *simulation.BrandConfig `json:"ADIDAS"`
	PUMA              *simulation.BrandConfig `json:"PUMA"`
	HM                *simulation.BrandConfig `json:"H_M"`
	SimulationDays    *int                    `json:"simulation_days"`
	UseHistoricalData *bool                   `json:"use_historical_data"`
	FestivalDemand    *FestivalDemand         `json:"festival_demand"`
	StartDay          *int                    `json:"start_day"`
	EndDay            *int                    `json:"end_day"`
}

// brandConfigs maps request fields onto brand names in simulation order.
func (r *Request) brandConfigs() map[string]*simulation.BrandConfig {
	return map[string]*simulation.BrandConfig{
		"ADIDAS": r.ADIDAS,
		"NIKE":   r.NIKE,
		"PUMA":   r.PUMA,
		"H&M":    r.HM,
	}
}

// window resolves the simulated date range. An explicit end_day recomputes
// the length as end_day - start_day + 1.
func (r *Request) window() (start time.Time, days int, err error) {
	startDay := 0
	if r.StartDay != nil {
		startDay = *r.StartDay
	}

	days = defaultSimulationDays
	if r.EndDay != nil {
		days = *r.EndDay - startDay + 1
	} else if r.SimulationDays != nil {
		days = *r.SimulationDays
	}

	if days <= 0 {
		return time.Time{}, 0, fmt.Errorf("%w: start_day=%d, end_day=%v", simulation.ErrInvalidWindow, startDay, r.EndDay)
	}

	return referenceDate.AddDate(0, 0, startDay), days, nil
}

// SimulationService owns the immutable dataset and estimator output for the
// process lifetime and runs simulations against them.
type SimulationService struct {
	store       *dataset.Store
	brandParams map[string]params.Parameters
	cache       cache.SimulationCache
}

func NewSimulationService(store *dataset.Store, brandParams map[string]params.Parameters, cacheImpl cache.SimulationCache) *SimulationService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopSimulationCache()
	}
	return &SimulationService{store: store, brandParams: brandParams, cache: cacheImpl}
}

// BrandParams exposes the estimator output for the meta endpoints.
func (s *SimulationService) BrandParams() map[string]params.Parameters { return s.brandParams }

// Brands returns the supported brand list in simulation order.
func (s *SimulationService) Brands() []string { return s.store.Brands() }

// Run executes one simulation request end to end. Cache failures are logged
// and never fail the request.
func (s *SimulationService) Run(ctx context.Context, req *Request) (*results.Response, error) {
	start, days, err := req.window()
	if err != nil {
		return nil, err
	}

	key, keyErr := cache.RequestKey(req)
	if keyErr != nil {
		log.Warn().Err(keyErr).Msg("simulation: cache key derivation failed")
	} else if resp, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		log.Info().Str("key", key).Msg("simulation: served from cache")
		return resp, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("simulation: cache get failed")
	}

	var multipliers map[string]float64
	if req.FestivalDemand != nil {
		multipliers = req.FestivalDemand.Multipliers
	}

	log.Info().
		Str("start_date", start.Format("2006-01-02")).
		Int("simulation_days", days).
		Int("festival_overrides", len(multipliers)).
		Msg("simulation: starting run")

	orch := simulation.NewOrchestrator(s.store.Brands(), req.brandConfigs(), s.brandParams, start, multipliers)
	if err := orch.Run(ctx, days); err != nil {
		return nil, err
	}

	agg := results.NewAggregator(s.store, s.brandParams)
	resp := agg.Process(orch.Engines(), days, start)

	if keyErr == nil {
		if err := s.cache.Set(ctx, key, resp); err != nil {
			log.Warn().Err(err).Msg("simulation: cache set failed")
		}
	}

	log.Info().
		Int("daily_records", len(resp.DailyData)).
		Int("restock_events", len(resp.RestockEvents)).
		Int("trend_events", len(resp.TrendEvents)).
		Msg("simulation: run completed")

	return resp, nil
}
