package anneal_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/fairsplit/internal/domain/solution"
	"github.com/okian/fairsplit/internal/engine/anneal"
)

func TestPolish(t *testing.T) {
	Convey("Given a deliberately lopsided partition", t, func() {
		// All the high scores in group 0, all the low ones in group 1.
		participants := roster([]float64{90, 85, 80, 20, 15, 10})
		s, err := solution.New(participants, []int{0, 0, 0, 1, 1, 1}, 2)
		So(err, ShouldBeNil)

		Convey("When polishing", func() {
			polished, err := anneal.Polish(s, false, 0)

			Convey("Then the cost strictly improves", func() {
				So(err, ShouldBeNil)
				So(polished.Cost(), ShouldBeLessThan, s.Cost())
			})

			Convey("And the structural invariants survive", func() {
				So(polished.Validate(false), ShouldBeNil)
			})
		})
	})

	Convey("Given a constrained partition with one advantaged member per group", t, func() {
		participants := roster([]float64{90, 85, 80, 20, 15, 10}, 0, 3)
		s, err := solution.New(participants, []int{0, 0, 1, 1, 0, 1}, 2)
		So(err, ShouldBeNil)
		So(s.Validate(true), ShouldBeNil)

		Convey("When polishing under constraint", func() {
			polished, err := anneal.Polish(s, true, 5)

			Convey("Then the advantaged spread is preserved", func() {
				So(err, ShouldBeNil)
				So(polished.Validate(true), ShouldBeNil)
				So(polished.Cost(), ShouldBeLessThanOrEqualTo, s.Cost())
			})
		})
	})

	Convey("Given an already balanced partition", t, func() {
		participants := roster([]float64{50, 50, 50, 50})
		s, err := solution.New(participants, []int{0, 1, 0, 1}, 2)
		So(err, ShouldBeNil)

		Convey("When polishing", func() {
			polished, err := anneal.Polish(s, false, 3)

			Convey("Then nothing changes", func() {
				So(err, ShouldBeNil)
				So(polished.Cost(), ShouldEqual, s.Cost())
			})
		})
	})
}
