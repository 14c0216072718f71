package metrics

import (
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given manager creation", t, func() {
		Convey("When creating with default options", func() {
			manager := NewManager()

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Handler(), ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("anneal"),
				WithHistogramBuckets([]float64{1, 10, 100}),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording search progress", func() {
			Convey("Then iteration and move counters accept batches", func() {
				So(func() {
					RecordIterations("constrained", 500)
					RecordMovesAccepted("constrained", "swap", 120)
					RecordMovesRejected("constrained", "transfer", 380)
				}, ShouldNotPanic)
			})

			Convey("And gauges accept updates", func() {
				So(func() {
					UpdateBestCost("unconstrained", 1.25)
					UpdateTemperature("unconstrained", 42.0)
					UpdateWorkersActive(8)
				}, ShouldNotPanic)
			})

			Convey("And safety-net metrics record", func() {
				So(func() {
					RecordReheat("constrained")
					RecordDriftRepair()
					RecordRecomputeLatency(0.7)
				}, ShouldNotPanic)
			})

			Convey("And race lifecycle metrics record", func() {
				So(func() {
					RecordRaceStarted()
					RecordRaceDuration(3.5)
					RecordChampionPromotion()
					RecordCancellation()
				}, ShouldNotPanic)
			})
		})
	})
}

func TestHandlerExposition(t *testing.T) {
	Convey("Given recorded metrics", t, func() {
		RecordIterations("constrained", 1)

		Convey("When scraping the handler", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/metrics", nil)
			Handler().ServeHTTP(rec, req)

			Convey("Then the exposition contains our counters", func() {
				So(rec.Code, ShouldEqual, 200)
				So(rec.Body.String(), ShouldContainSubstring, "fairsplit_search_iterations_total")
			})
		})
	})
}
