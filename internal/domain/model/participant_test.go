package model_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/fairsplit/internal/domain/model"
)

func TestScaleScore(t *testing.T) {
	Convey("Given raw scores", t, func() {
		Convey("When scaling", func() {
			Convey("Then whole points map to exact multiples of Scale", func() {
				So(model.ScaleScore(0), ShouldEqual, 0)
				So(model.ScaleScore(1), ShouldEqual, model.Scale)
				So(model.ScaleScore(87), ShouldEqual, 87*model.Scale)
			})

			Convey("Then fractional points round to the nearest unit", func() {
				So(model.ScaleScore(0.5), ShouldEqual, model.Scale/2)
				So(model.ScaleScore(72.25), ShouldEqual, int64(72.25*model.Scale))
				So(model.ScaleScore(0.000001), ShouldEqual, 0)
				So(model.ScaleScore(0.000005), ShouldEqual, 1)
			})

			Convey("Then negative scores scale symmetrically", func() {
				So(model.ScaleScore(-3.5), ShouldEqual, -model.ScaleScore(3.5))
			})
		})

		Convey("When scaling and unscaling", func() {
			Convey("Then representable values round-trip", func() {
				for _, v := range []float64{0, 1, 42.5, 99.99, -17.25} {
					So(model.UnscaleScore(model.ScaleScore(v)), ShouldEqual, v)
				}
			})
		})
	})
}
