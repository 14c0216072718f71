package roster_test

import (
	"math"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/xuri/excelize/v2"

	"github.com/okian/fairsplit/internal/adapters/roster"
	"github.com/okian/fairsplit/internal/domain/model"
)

func TestParse(t *testing.T) {
	Convey("Given raw participant data", t, func() {
		Convey("When the name carries the advantage marker", func() {
			p, err := roster.Parse(0, "Avery*", 87.5)

			Convey("Then the marker is stripped and the flag set", func() {
				So(err, ShouldBeNil)
				So(p.Name, ShouldEqual, "Avery")
				So(p.Advantaged, ShouldBeTrue)
				So(p.Score, ShouldEqual, model.ScaleScore(87.5))
			})
		})

		Convey("When the name has no marker", func() {
			p, err := roster.Parse(1, "Blair", 42)

			Convey("Then the participant is normal", func() {
				So(err, ShouldBeNil)
				So(p.Advantaged, ShouldBeFalse)
				So(p.ID, ShouldEqual, 1)
			})
		})

		Convey("When the score is not finite", func() {
			_, err := roster.Parse(2, "Casey", math.NaN())

			Convey("Then the participant is rejected", func() {
				So(err, ShouldWrap, roster.ErrInvalidScore)
			})
		})
	})
}

func TestFromRows(t *testing.T) {
	Convey("Given sheet rows with a leading title row", t, func() {
		rows := [][]string{
			{"Team Roster"},
			{"Name", "Score"},
			{"Avery*", "90"},
			{"Blair", "75.5"},
			{"", ""},
			{"Casey", "60"},
		}

		Convey("When parsing", func() {
			participants, err := roster.FromRows(rows)

			Convey("Then the table after the header is read and blanks skipped", func() {
				So(err, ShouldBeNil)
				So(participants, ShouldHaveLength, 3)
				So(participants[0].Name, ShouldEqual, "Avery")
				So(participants[0].Advantaged, ShouldBeTrue)
				So(participants[1].Score, ShouldEqual, model.ScaleScore(75.5))
				So(participants[2].ID, ShouldEqual, 2)
			})
		})
	})

	Convey("Given rows without the expected headers", t, func() {
		rows := [][]string{{"Who", "Points"}, {"Avery", "90"}}

		Convey("When parsing", func() {
			_, err := roster.FromRows(rows)

			Convey("Then the sheet is rejected", func() {
				So(err, ShouldWrap, roster.ErrMissingColumns)
			})
		})
	})

	Convey("Given a header with no data rows", t, func() {
		rows := [][]string{{"Name", "Score"}}

		Convey("When parsing", func() {
			_, err := roster.FromRows(rows)

			Convey("Then the roster is rejected as empty", func() {
				So(err, ShouldWrap, roster.ErrEmptyRoster)
			})
		})
	})

	Convey("Given a row with an unparsable score", t, func() {
		rows := [][]string{{"Name", "Score"}, {"Avery", "ninety"}}

		Convey("When parsing", func() {
			_, err := roster.FromRows(rows)

			Convey("Then the roster is rejected", func() {
				So(err, ShouldWrap, roster.ErrInvalidScore)
			})
		})
	})
}

func TestReadExcel(t *testing.T) {
	Convey("Given a roster workbook on disk", t, func() {
		path := filepath.Join(t.TempDir(), "roster.xlsx")

		f := excelize.NewFile()
		sheet := f.GetSheetName(0)
		So(f.SetCellValue(sheet, "A1", "Name"), ShouldBeNil)
		So(f.SetCellValue(sheet, "B1", "Score"), ShouldBeNil)
		So(f.SetCellValue(sheet, "A2", "Avery*"), ShouldBeNil)
		So(f.SetCellValue(sheet, "B2", 90), ShouldBeNil)
		So(f.SetCellValue(sheet, "A3", "Blair"), ShouldBeNil)
		So(f.SetCellValue(sheet, "B3", 70), ShouldBeNil)
		So(f.SaveAs(path), ShouldBeNil)
		So(f.Close(), ShouldBeNil)

		Convey("When reading it", func() {
			participants, err := roster.ReadExcel(path)

			Convey("Then both participants come back parsed", func() {
				So(err, ShouldBeNil)
				So(participants, ShouldHaveLength, 2)
				So(participants[0].Advantaged, ShouldBeTrue)
				So(participants[1].Name, ShouldEqual, "Blair")
			})
		})
	})

	Convey("Given a missing file", t, func() {
		Convey("When reading it", func() {
			_, err := roster.ReadExcel(filepath.Join(t.TempDir(), "absent.xlsx"))

			Convey("Then the open fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestValidateGroupCount(t *testing.T) {
	Convey("Given a three-participant roster", t, func() {
		participants := []model.Participant{
			{ID: 0, Name: "a", Score: model.ScaleScore(1)},
			{ID: 1, Name: "b", Score: model.ScaleScore(2)},
			{ID: 2, Name: "c", Score: model.ScaleScore(3)},
		}

		Convey("Then in-range group counts pass", func() {
			So(roster.ValidateGroupCount(participants, 1), ShouldBeNil)
			So(roster.ValidateGroupCount(participants, 3), ShouldBeNil)
		})

		Convey("Then out-of-range group counts fail", func() {
			So(roster.ValidateGroupCount(participants, 0), ShouldWrap, roster.ErrBadGroupCount)
			So(roster.ValidateGroupCount(participants, 4), ShouldWrap, roster.ErrBadGroupCount)
		})

		Convey("Then an empty roster always fails", func() {
			So(roster.ValidateGroupCount(nil, 1), ShouldWrap, roster.ErrEmptyRoster)
		})
	})
}
