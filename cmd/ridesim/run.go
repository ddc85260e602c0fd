package main

import (
	"math/rand"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"ridefleet/config"
	"ridefleet/fleet"
	"ridefleet/report"
	"ridefleet/requestgen"
)

var (
	runScenarioPath string
	runCutoff       float64
	runReportPath   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single simulation from a scenario file",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runScenarioPath, "scenario", "s", "", "path to a scenario YAML file (required)")
	runCmd.Flags().Float64VarP(&runCutoff, "cutoff", "c", 0, "override the scenario's t_cutoff (0 keeps the scenario value)")
	runCmd.Flags().StringVarP(&runReportPath, "report", "r", "", "if set, write a CSV event report to this path")
	_ = runCmd.MarkFlagRequired("scenario")
}

func runRun(cmd *cobra.Command, args []string) error {
	scenario, err := config.Load(runScenarioPath)
	if err != nil {
		return err
	}
	if runCutoff > 0 {
		scenario.TCutoff = runCutoff
	}

	sp, err := scenario.BuildSpace()
	if err != nil {
		return err
	}
	dispatcher, err := scenario.BuildDispatcher()
	if err != nil {
		return err
	}

	placementRNG := rand.New(rand.NewSource(scenario.Demand.Seed))
	initialLocations := scenario.BuildInitialLocations(sp, placementRNG)

	fs, err := fleet.New(initialLocations, sp, dispatcher, scenario.Fleet.SeatCapacity)
	if err != nil {
		return errors.Wrap(err, "run: build fleet")
	}

	gen := requestgen.NewRandomGenerator(sp, scenario.Demand.Rate, scenario.Demand.Seed)
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

	var events []fleet.Event
	for ev := range fs.Simulate(requests, scenario.TCutoff) {
		events = append(events, ev)
	}

	summary := report.Summarize(events)
	report.PrintConsole(cmd.OutOrStdout(), summary)

	if runReportPath != "" {
		if err := report.WriteCSVFile(runReportPath, report.Flatten(events)); err != nil {
			return errors.Wrap(err, "run: write report")
		}
	}
	return nil
}
