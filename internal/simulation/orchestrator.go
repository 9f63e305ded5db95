package simulation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/apparel-insights/inventory-sim/internal/params"
)

// ErrInvalidWindow is returned when the requested simulation window has a
// non-positive length. The API layer maps it to a client error.
var ErrInvalidWindow = errors.New("invalid simulation window")

// Orchestrator drives one engine per brand across a shared timeline. Brands
// hold fully independent state, so each engine runs on its own goroutine and
// the run joins at the end; days within one engine stay strictly sequential.
type Orchestrator struct {
	engines []*Engine
}

// NewOrchestrator builds one engine per brand config entry. Brands keep the
// order of the brands slice so downstream output is deterministic.
func NewOrchestrator(
	brands []string,
	configs map[string]*BrandConfig,
	brandParams map[string]params.Parameters,
	start time.Time,
	festivalOverrides map[string]float64,
) *Orchestrator {
	engines := make([]*Engine, 0, len(brands))
	for _, brand := range brands {
		p := brandParams[brand]
		derived := p.Config
		eff := MergeConfig(configs[brand], &derived)
		engines = append(engines, NewEngine(brand, eff, p, start, festivalOverrides))
	}
	return &Orchestrator{engines: engines}
}

// Engines returns the orchestrated engines in brand order.
func (o *Orchestrator) Engines() []*Engine { return o.engines }

// Run advances every engine for exactly days steps and waits for all of
// them. It fails fast on a non-positive window before any engine moves.
func (o *Orchestrator) Run(ctx context.Context, days int) error {
	if days <= 0 {
		return fmt.Errorf("%w: %d days", ErrInvalidWindow, days)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, engine := range o.engines {
		engine := engine
		g.Go(func() error {
			return engine.Run(ctx, days)
		})
	}
	return g.Wait()
}
