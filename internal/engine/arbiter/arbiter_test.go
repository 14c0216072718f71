package arbiter_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/fairsplit/internal/domain/model"
	"github.com/okian/fairsplit/internal/domain/solution"
	"github.com/okian/fairsplit/internal/engine/arbiter"
)

func roster(scores []float64, advantaged ...int) []model.Participant {
	adv := make(map[int]bool, len(advantaged))
	for _, i := range advantaged {
		adv[i] = true
	}
	out := make([]model.Participant, len(scores))
	for i, s := range scores {
		out[i] = model.Participant{ID: i, Name: "p", Score: model.ScaleScore(s), Advantaged: adv[i]}
	}
	return out
}

func TestVerify(t *testing.T) {
	Convey("Given a structurally sound solution", t, func() {
		participants := roster([]float64{10, 20, 30, 40}, 0, 2)
		s, err := solution.New(participants, []int{0, 0, 1, 1}, 2)
		So(err, ShouldBeNil)

		Convey("When verifying", func() {
			verified, err := arbiter.Verify(s, true)

			Convey("Then the recomputed solution comes back with an exact cost", func() {
				So(err, ShouldBeNil)
				So(verified.Cost(), ShouldEqual, s.Cost())
			})

			Convey("And verifying the verified result is idempotent", func() {
				again, err := arbiter.Verify(verified, true)
				So(err, ShouldBeNil)
				So(again.Cost(), ShouldEqual, verified.Cost())
			})
		})
	})

	Convey("Given a solution with a size spread of two", t, func() {
		participants := roster([]float64{10, 20, 30, 40, 50})
		s, err := solution.New(participants, []int{0, 0, 0, 0, 1}, 2)
		So(err, ShouldBeNil)

		Convey("When verifying", func() {
			_, err := arbiter.Verify(s, false)

			Convey("Then the result is rejected as invalid", func() {
				So(err, ShouldWrap, arbiter.ErrResultInvalid)
			})
		})
	})

	Convey("Given advantaged members piled into one group", t, func() {
		participants := roster([]float64{10, 20, 30, 40}, 0, 1)
		s, err := solution.New(participants, []int{0, 0, 1, 1}, 2)
		So(err, ShouldBeNil)

		Convey("When verifying with the advantage mandate", func() {
			_, err := arbiter.Verify(s, true)

			Convey("Then the result is rejected as invalid", func() {
				So(err, ShouldWrap, arbiter.ErrResultInvalid)
			})
		})

		Convey("When verifying without the mandate", func() {
			_, err := arbiter.Verify(s, false)

			Convey("Then the result passes", func() {
				So(err, ShouldBeNil)
			})
		})
	})
}
