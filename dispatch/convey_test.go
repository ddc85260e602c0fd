package dispatch

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"ridefleet/model"
	"ridefleet/space"
)

// BDD-style companion to dispatch_test.go's table-driven tests, exercising
// the same BruteForceDispatcher capacity/window behavior through nested
// Convey/So blocks, in the style of niceyeti-tabular's goconvey suites.
func TestBruteForceDispatcher_Convey(t *testing.T) {
	Convey("Given a vehicle with one open request already in its stoplist", t, func() {
		sp := space.NewEuclidean1D(1)
		sl := model.NewCPEStoplist(0.0, 0.0)
		d := BruteForceDispatcher{}

		far := model.NewOpenTransportationRequest(1, 0, 100.0, 200.0)
		sol1 := d.Dispatch(far, sl, sp, 4)
		So(sol1.Rejected(), ShouldBeFalse)

		Convey("When a request entirely inside the existing trip's window arrives", func() {
			near := model.NewOpenTransportationRequest(2, 0, 10.0, 20.0)
			sol2 := d.Dispatch(near, sol1.Stoplist, sp, 4)

			Convey("It should be woven into the middle of the stoplist, not appended", func() {
				So(sol2.Rejected(), ShouldBeFalse)
				So(len(sol2.Stoplist), ShouldEqual, 5)
				So(sol2.Stoplist[1].Request.ID(), ShouldEqual, 2)
				So(sol2.Stoplist[2].Request.ID(), ShouldEqual, 2)
			})
		})

		Convey("When a request whose pickup window is unreachable arrives", func() {
			req := &model.TransportationRequest{
				RequestID:             2,
				Origin:                10.0,
				Destination:           20.0,
				PickupTimeWindowMin:   0,
				PickupTimeWindowMax:   1.0,
				DeliveryTimeWindowMin: 0,
				DeliveryTimeWindowMax: 2.0,
			}
			sol2 := d.Dispatch(req, sol1.Stoplist, sp, 4)

			Convey("It should be rejected", func() {
				So(sol2.Rejected(), ShouldBeTrue)
				So(sol2.Stoplist, ShouldBeNil)
			})
		})
	})
}
