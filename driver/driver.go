// Package driver runs a scenario across a grid of seeds and demand rates
// and collects one report.Summary per run. It is the in-process stand-in
// for the spec's out-of-scope parameter-sweep pipeline: no JSON
// persistence, no distributed workers — just a sequential loop over the
// grid, grounded in the teacher's driver/batch.go headless-run entry
// point (an Options struct in, a Summary struct out, no SSE/streaming).
package driver

import (
	"math/rand"

	"github.com/pkg/errors"

	"ridefleet/config"
	"ridefleet/fleet"
	"ridefleet/report"
	"ridefleet/requestgen"
)

// SweepOptions parameterizes a grid sweep over a base scenario. Rate is
// varied linearly from RateMin to RateMax in RateSteps points (RateSteps
// of 1 uses RateMin only); every rate is run once per seed in Seeds.
type SweepOptions struct {
	Scenario  *config.Scenario
	Seeds     []int64
	RateMin   float64
	RateMax   float64
	RateSteps int
}

// SweepResult is one (seed, rate) point of a sweep.
type SweepResult struct {
	Seed    int64
	Rate    float64
	Summary report.Summary
}

// Run executes one simulation of scenario under the given seed and
// demand rate override, returning its report.Summary.
func Run(scenario *config.Scenario, seed int64, rate float64) (report.Summary, error) {
	sp, err := scenario.BuildSpace()
	if err != nil {
		return report.Summary{}, errors.Wrap(err, "driver: build space")
	}
	dispatcher, err := scenario.BuildDispatcher()
	if err != nil {
		return report.Summary{}, errors.Wrap(err, "driver: build dispatcher")
	}

	placementRNG := rand.New(rand.NewSource(seed))
	initialLocations := scenario.BuildInitialLocations(sp, placementRNG)

	fs, err := fleet.New(initialLocations, sp, dispatcher, scenario.Fleet.SeatCapacity)
	if err != nil {
		return report.Summary{}, errors.Wrap(err, "driver: build fleet")
	}

	gen := requestgen.NewRandomGenerator(sp, rate, seed)
	gen.PickupTimewindowOffset = scenario.Demand.PickupTimewindowOffset
	if scenario.Demand.MaxPickupDelay > 0 {
		gen.MaxPickupDelay = scenario.Demand.MaxPickupDelay
	}
	if scenario.Demand.MaxDeliveryDelayAbs > 0 {
		gen.MaxDeliveryDelayAbs = scenario.Demand.MaxDeliveryDelayAbs
	}
	if scenario.Demand.MaxDeliveryDelayRel > 0 {
		gen.MaxDeliveryDelayRel = scenario.Demand.MaxDeliveryDelayRel
	}

	count := scenario.Demand.Count
	if count <= 0 {
		count = 100
	}
	requests := requestgen.Take(gen, count)

	events := drain(fs.Simulate(requests, scenario.TCutoff))
	return report.Summarize(events), nil
}

// RunSweep runs opts.Scenario once per (rate, seed) grid point, sequentially,
// and returns one SweepResult per point in rate-major, seed-minor order.
func RunSweep(opts SweepOptions) ([]SweepResult, error) {
	if opts.Scenario == nil {
		return nil, errors.New("driver: sweep requires a scenario")
	}
	if len(opts.Seeds) == 0 {
		return nil, errors.New("driver: sweep requires at least one seed")
	}
	rates := rateGrid(opts.RateMin, opts.RateMax, opts.RateSteps)

	results := make([]SweepResult, 0, len(rates)*len(opts.Seeds))
	for _, rate := range rates {
		for _, seed := range opts.Seeds {
			summary, err := Run(opts.Scenario, seed, rate)
			if err != nil {
				return nil, errors.Wrapf(err, "driver: sweep rate=%.4f seed=%d", rate, seed)
			}
			results = append(results, SweepResult{Seed: seed, Rate: rate, Summary: summary})
		}
	}
	return results, nil
}

// rateGrid returns steps evenly spaced points from min to max inclusive.
// steps <= 1 collapses to a single point at min.
func rateGrid(min, max float64, steps int) []float64 {
	if steps <= 1 {
		return []float64{min}
	}
	grid := make([]float64, steps)
	delta := (max - min) / float64(steps-1)
	for i := 0; i < steps; i++ {
		grid[i] = min + float64(i)*delta
	}
	return grid
}

func drain(ch <-chan fleet.Event) []fleet.Event {
	events := make([]fleet.Event, 0, 64)
	for ev := range ch {
		events = append(events, ev)
	}
	return events
}
