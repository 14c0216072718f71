package report_test

import (
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/xuri/excelize/v2"

	"github.com/okian/fairsplit/internal/adapters/report"
	"github.com/okian/fairsplit/internal/domain/model"
	"github.com/okian/fairsplit/internal/domain/solution"
	"github.com/okian/fairsplit/internal/engine/race"
)

func sampleResult() *race.Result {
	participants := []model.Participant{
		{ID: 0, Name: "Avery", Score: model.ScaleScore(90), Advantaged: true},
		{ID: 1, Name: "Blair", Score: model.ScaleScore(70)},
		{ID: 2, Name: "Casey", Score: model.ScaleScore(60), Advantaged: true},
		{ID: 3, Name: "Drew", Score: model.ScaleScore(40)},
	}
	s, err := solution.New(participants, []int{0, 0, 1, 1}, 2)
	if err != nil {
		panic(err)
	}

	return &race.Result{
		RunID: "test-run",
		Scenarios: map[string]race.ScenarioResult{
			"constrained": {
				Scenario:    "constrained",
				Constrained: true,
				Solution:    s,
				Cost:        s.CostPoints(),
				Iterations:  1234,
			},
			"unconstrained": {
				Scenario:   "unconstrained",
				Solution:   s,
				Cost:       s.CostPoints(),
				Iterations: 1234,
				Promoted:   true,
			},
		},
		Elapsed: 3 * time.Second,
	}
}

func TestSummary(t *testing.T) {
	Convey("Given a finished race result", t, func() {
		result := sampleResult()

		Convey("When rendering the text summary", func() {
			out := report.Summary(result)

			Convey("Then it names the run and both scenarios", func() {
				So(out, ShouldContainSubstring, "test-run")
				So(out, ShouldContainSubstring, "=== constrained")
				So(out, ShouldContainSubstring, "=== unconstrained")
			})

			Convey("And it lists members with the advantage marker restored", func() {
				So(out, ShouldContainSubstring, "Avery*")
				So(out, ShouldContainSubstring, "Blair")
			})

			Convey("And it flags the promoted slot", func() {
				So(out, ShouldContainSubstring, "promoted from constrained")
			})
		})
	})
}

func TestWriteExcel(t *testing.T) {
	Convey("Given a finished race result", t, func() {
		result := sampleResult()
		path := filepath.Join(t.TempDir(), "report.xlsx")

		Convey("When writing the workbook", func() {
			err := report.WriteExcel(path, result)

			Convey("Then it reopens with one sheet per scenario", func() {
				So(err, ShouldBeNil)

				f, err := excelize.OpenFile(path)
				So(err, ShouldBeNil)
				defer f.Close() //nolint:errcheck // read-only handle

				sheets := f.GetSheetList()
				So(sheets, ShouldContain, "With_Star_Constraint")
				So(sheets, ShouldContain, "No_Constraints")

				rows, err := f.GetRows("With_Star_Constraint")
				So(err, ShouldBeNil)
				So(rows[0], ShouldResemble, []string{"Group", "Name", "Score", "Advantaged"})
				So(rows[1][1], ShouldEqual, "Avery*")
			})
		})
	})
}
