package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ridefleet/fleet"
	"ridefleet/model"
)

func sampleEvents() []fleet.Event {
	return []fleet.Event{
		fleet.VehicleStateBeginEvent{Timestamp: 0, VehicleID: 0, Location: 0.0, RequestID: model.BeginRequestID},
		fleet.RequestSubmissionEvent{Timestamp: 1, RequestID: 1, Origin: 0.0, Destination: 3.0, PickupMin: 1, PickupMax: 5, DeliveryMin: 1, DeliveryMax: 10},
		fleet.RequestAcceptanceEvent{Timestamp: 1, RequestID: 1, VehicleID: 0, Origin: 0.0, Destination: 3.0, PickupMin: 1, PickupMax: 5, DeliveryMin: 1, DeliveryMax: 10},
		fleet.PickupEvent{Timestamp: 2, VehicleID: 0, RequestID: 1},
		fleet.DeliveryEvent{Timestamp: 4, VehicleID: 0, RequestID: 1},
		fleet.RequestRejectionEvent{Timestamp: 5, RequestID: 2},
		fleet.VehicleStateEndEvent{Timestamp: 5, VehicleID: 0, Location: 3.0, RequestID: model.EndRequestID},
	}
}

func TestFlatten_RowCountAndFields(t *testing.T) {
	rows := Flatten(sampleEvents())
	require.Len(t, rows, 7)
	assert.Equal(t, "request_acceptance", rows[2].EventType)
	assert.Equal(t, 1, rows[2].RequestID)
	assert.Equal(t, 5.0, rows[2].PickupMax)
	assert.Equal(t, "3", rows[2].Destination)
	assert.Equal(t, "0", rows[0].Location)
	assert.Equal(t, model.BeginRequestID, rows[0].RequestID)
	assert.Equal(t, model.EndRequestID, rows[6].RequestID)
}

func TestWriteCSV_ProducesHeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, Flatten(sampleEvents()))
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "event_type")
	assert.Contains(t, out, "pickup")
	assert.Contains(t, out, "delivery")
}

func TestSummarize_CountsAcceptedRejectedAndStops(t *testing.T) {
	s := Summarize(sampleEvents())
	assert.Equal(t, 1, s.Accepted)
	assert.Equal(t, 1, s.Rejected)
	require.Contains(t, s.PerVehicle, 0)
	assert.Equal(t, 1, s.PerVehicle[0].Pickups)
	assert.Equal(t, 1, s.PerVehicle[0].Deliveries)
}

func TestPrintConsole_WritesSummaryLines(t *testing.T) {
	var buf bytes.Buffer
	PrintConsole(&buf, Summarize(sampleEvents()))
	out := buf.String()
	assert.Contains(t, out, "Requests accepted: 1")
	assert.Contains(t, out, "Vehicle 0")
}
