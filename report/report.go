// Package report renders the end-of-run summary of a fleet.Simulate call:
// a one-row-per-event CSV export via gocarina/gocsv (replacing
// the teacher's hand-rolled fmt.Fprintf CSV in sim/report.go with the
// struct-tag-driven approach the rest of the retrieved corpus uses for
// CSV, e.g. tidbyt-gtfs/parse), and a human-readable console summary using
// golang.org/x/text/message for locale-aware number formatting.
package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"ridefleet/fleet"
	"ridefleet/space"
)

// EventRow is one flattened fleet.Event, suitable for CSV export. Location
// is rendered with "%v" since space.Location is an opaque type (a float64,
// a [2]float64, or an int node id depending on the space in play).
type EventRow struct {
	Timestamp   float64 `csv:"timestamp"`
	EventType   string  `csv:"event_type"`
	VehicleID   int     `csv:"vehicle_id"`
	RequestID   int     `csv:"request_id"`
	Location    string  `csv:"location"`
	Origin      string  `csv:"origin"`
	Destination string  `csv:"destination"`
	PickupMin   float64 `csv:"pickup_timewindow_min"`
	PickupMax   float64 `csv:"pickup_timewindow_max"`
	DeliveryMin float64 `csv:"delivery_timewindow_min"`
	DeliveryMax float64 `csv:"delivery_timewindow_max"`
}

func locString(loc space.Location) string {
	if loc == nil {
		return ""
	}
	return fmt.Sprintf("%v", loc)
}

// Flatten converts a recorded event stream into CSV-ready rows, one per
// event, in the order they were received.
func Flatten(events []fleet.Event) []*EventRow {
	rows := make([]*EventRow, 0, len(events))
	nan := math.NaN()
	for _, ev := range events {
		row := &EventRow{PickupMin: nan, PickupMax: nan, DeliveryMin: nan, DeliveryMax: nan}
		switch e := ev.(type) {
		case fleet.VehicleStateBeginEvent:
			row.EventType, row.Timestamp, row.VehicleID, row.RequestID = "vehicle_state_begin", e.Timestamp, e.VehicleID, e.RequestID
			row.Location = locString(e.Location)
		case fleet.VehicleStateEndEvent:
			row.EventType, row.Timestamp, row.VehicleID, row.RequestID = "vehicle_state_end", e.Timestamp, e.VehicleID, e.RequestID
			row.Location = locString(e.Location)
		case fleet.RequestSubmissionEvent:
			row.EventType, row.Timestamp, row.RequestID = "request_submission", e.Timestamp, e.RequestID
			row.Origin, row.Destination = locString(e.Origin), locString(e.Destination)
			row.PickupMin, row.PickupMax, row.DeliveryMin, row.DeliveryMax = e.PickupMin, e.PickupMax, e.DeliveryMin, e.DeliveryMax
		case fleet.RequestAcceptanceEvent:
			row.EventType, row.Timestamp, row.RequestID, row.VehicleID = "request_acceptance", e.Timestamp, e.RequestID, e.VehicleID
			row.Origin, row.Destination = locString(e.Origin), locString(e.Destination)
			row.PickupMin, row.PickupMax, row.DeliveryMin, row.DeliveryMax = e.PickupMin, e.PickupMax, e.DeliveryMin, e.DeliveryMax
		case fleet.RequestRejectionEvent:
			row.EventType, row.Timestamp, row.RequestID = "request_rejection", e.Timestamp, e.RequestID
		case fleet.PickupEvent:
			row.EventType, row.Timestamp, row.VehicleID, row.RequestID = "pickup", e.Timestamp, e.VehicleID, e.RequestID
		case fleet.DeliveryEvent:
			row.EventType, row.Timestamp, row.VehicleID, row.RequestID = "delivery", e.Timestamp, e.VehicleID, e.RequestID
		case fleet.InternalEvent:
			row.EventType, row.Timestamp, row.VehicleID = "internal", e.Timestamp, e.VehicleID
		default:
			panic("report: unknown event type")
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteCSV marshals rows to w in GTFS-style flat CSV, field order matching
// the EventRow struct tags.
func WriteCSV(w io.Writer, rows []*EventRow) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return errors.Wrap(err, "report: marshal CSV")
	}
	return nil
}

// WriteCSVFile writes rows to a new file at path.
func WriteCSVFile(path string, rows []*EventRow) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "report: create %s", path)
	}
	defer f.Close()
	return WriteCSV(f, rows)
}

// Summary aggregates the scalar metrics printed by PrintConsole: counts of
// accepted/rejected requests and, per vehicle, the number of pickups and
// deliveries serviced.
type Summary struct {
	Accepted    int
	Rejected    int
	PerVehicle  map[int]*VehicleSummary
	VehicleIDs  []int // sorted, for deterministic printing
}

// VehicleSummary is the per-vehicle roll-up of a run.
type VehicleSummary struct {
	Pickups   int
	Deliveries int
}

// Summarize reduces a recorded event stream into a Summary.
func Summarize(events []fleet.Event) Summary {
	s := Summary{PerVehicle: make(map[int]*VehicleSummary)}
	ensure := func(id int) *VehicleSummary {
		vs, ok := s.PerVehicle[id]
		if !ok {
			vs = &VehicleSummary{}
			s.PerVehicle[id] = vs
			s.VehicleIDs = append(s.VehicleIDs, id)
		}
		return vs
	}
	for _, ev := range events {
		switch e := ev.(type) {
		case fleet.RequestAcceptanceEvent:
			s.Accepted++
		case fleet.RequestRejectionEvent:
			s.Rejected++
		case fleet.PickupEvent:
			ensure(e.VehicleID).Pickups++
		case fleet.DeliveryEvent:
			ensure(e.VehicleID).Deliveries++
		}
	}
	sort.Ints(s.VehicleIDs)
	return s
}

// PrintConsole writes a human-readable summary to w, formatting counts
// with message.Printer so large runs render with thousands separators.
func PrintConsole(w io.Writer, s Summary) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "=== Simulation Report ===\n")
	p.Fprintf(w, "Requests accepted: %d\n", s.Accepted)
	p.Fprintf(w, "Requests rejected: %d\n", s.Rejected)
	for _, id := range s.VehicleIDs {
		vs := s.PerVehicle[id]
		p.Fprintf(w, "Vehicle %d: %d pickups, %d deliveries\n", id, vs.Pickups, vs.Deliveries)
	}
}
