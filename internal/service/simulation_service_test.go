package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apparel-insights/inventory-sim/internal/dataset"
	"github.com/apparel-insights/inventory-sim/internal/params"
	"github.com/apparel-insights/inventory-sim/internal/simulation"
)

func testBrandParams(baseDemand float64) map[string]params.Parameters {
	out := make(map[string]params.Parameters, len(dataset.SupportedBrands))
	for _, brand := range dataset.SupportedBrands {
		seasonality := make(map[int]float64, 12)
		baseline := make(map[int]float64, 12)
		for m := 1; m <= 12; m++ {
			seasonality[m] = 1.0
			baseline[m] = baseDemand * 30
		}
		out[brand] = params.Parameters{
			BaseDemand:           baseDemand,
			Seasonality:          seasonality,
			AvgPrice:             100,
			MonthlyBaselineUnits: baseline,
			Config: params.DerivedConfig{
				InitialStock:     int(30 * baseDemand),
				RestockDays:      25,
				RestockQuantity:  int(25 * baseDemand),
				ReorderQuantity:  int(30 * baseDemand),
				ReorderPoint:     int(7 * baseDemand),
				DemandMultiplier: 1.0,
			},
		}
	}
	return out
}

func newTestService() *SimulationService {
	return NewSimulationService(dataset.NewStore(nil, false), testBrandParams(10), nil)
}

func iptr(v int) *int { return &v }

func TestRun_RejectsInvalidWindow(t *testing.T) {
	svc := newTestService()

	cases := []Request{
		{SimulationDays: iptr(0)},
		{SimulationDays: iptr(-5)},
		{StartDay: iptr(10), EndDay: iptr(9)},
		{StartDay: iptr(100), EndDay: iptr(50)},
	}
	for _, req := range cases {
		resp, err := svc.Run(context.Background(), &req)
		require.Error(t, err)
		assert.ErrorIs(t, err, simulation.ErrInvalidWindow)
		assert.Nil(t, resp)
	}
}

func TestRun_DefaultWindow(t *testing.T) {
	svc := newTestService()

	resp, err := svc.Run(context.Background(), &Request{})
	require.NoError(t, err)

	assert.Equal(t, 365, resp.SimulationDays)
	// All four brands simulate even when the request configures none.
	assert.Len(t, resp.DailyData, 365*4)
	assert.Equal(t, "2024-01-01", resp.DailyData[0].Date)
	assert.Len(t, resp.Summary, 4)
}

func TestRun_EndDayRecomputesLength(t *testing.T) {
	svc := newTestService()

	resp, err := svc.Run(context.Background(), &Request{StartDay: iptr(10), EndDay: iptr(19)})
	require.NoError(t, err)

	assert.Equal(t, 10, resp.SimulationDays)
	assert.Equal(t, "2024-01-11", resp.DailyData[0].Date)
}

func TestRun_SingleRestockScenario(t *testing.T) {
	svc := newTestService()

	req := &Request{
		NIKE: &simulation.BrandConfig{
			InitialStock:    iptr(1000),
			RestockDays:     iptr(25),
			RestockQuantity: iptr(500),
			ReorderPoint:    iptr(0), // disables the reorder branch
		},
		StartDay:       iptr(0),
		SimulationDays: iptr(31),
	}

	resp, err := svc.Run(context.Background(), req)
	require.NoError(t, err)

	var nikeDaily []simulation.DailyRecord
	for _, rec := range resp.DailyData {
		if rec.Brand == "NIKE" {
			nikeDaily = append(nikeDaily, rec)
		}
	}
	require.Len(t, nikeDaily, 31)

	var nikeRestocks []simulation.RestockEvent
	for _, ev := range resp.RestockEvents {
		if ev.Brand == "NIKE" {
			nikeRestocks = append(nikeRestocks, ev)
		}
	}
	require.Len(t, nikeRestocks, 1)
	assert.Equal(t, 25, nikeRestocks[0].Day)
	assert.Equal(t, "periodic", nikeRestocks[0].Type)
	assert.Equal(t, 500, nikeRestocks[0].Quantity)

	totalSales := 0
	for _, rec := range nikeDaily {
		assert.GreaterOrEqual(t, rec.StockAfter, 0)
		totalSales += rec.Sales
	}
	assert.Equal(t, 1000+500-totalSales, nikeDaily[30].StockAfter)
}

func TestRun_FestivalOverrideRoundTrip(t *testing.T) {
	svc := newTestService()

	// Day 335 of the reference year is December 1st.
	req := &Request{
		StartDay:       iptr(335),
		SimulationDays: iptr(31),
		FestivalDemand: &FestivalDemand{Multipliers: map[string]float64{"christmas": 3.0}},
	}

	resp, err := svc.Run(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "2024-12-01", resp.DailyData[0].Date)

	for _, rec := range resp.DailyData {
		date, perr := time.Parse("2006-01-02", rec.Date)
		require.NoError(t, perr)
		day := date.Day()
		switch {
		case day >= 20 && day <= 25:
			assert.Equal(t, 3.0, rec.FestivalMultiplier, "date %s should use the overridden christmas multiplier", rec.Date)
			assert.Equal(t, "Christmas Sale", rec.Festival)
		case day >= 26:
			// The override must not leak into the untouched year-end window.
			assert.Equal(t, 1.8, rec.FestivalMultiplier, "date %s", rec.Date)
		default:
			assert.Equal(t, 1.0, rec.FestivalMultiplier, "date %s", rec.Date)
		}
	}
}

func TestRun_BrandConfigMapping(t *testing.T) {
	// The H_M request key must reach the H&M engine.
	req := &Request{HM: &simulation.BrandConfig{InitialStock: iptr(7777)}}
	configs := req.brandConfigs()
	require.NotNil(t, configs["H&M"])
	assert.Equal(t, 7777, *configs["H&M"].InitialStock)
	assert.Nil(t, configs["NIKE"])
}
