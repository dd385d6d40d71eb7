package model_test

import (
	"testing"

	model "github.com/okian/launchdash/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestLaunchRecord(t *testing.T) {
	convey.Convey("Given a LaunchRecord", t, func() {
		rec := model.LaunchRecord{
			FlightNumber:           7,
			Site:                   "CCAFS LC-40",
			Class:                  model.OutcomeSuccess,
			PayloadMassKG:          2500,
			BoosterVersion:         "F9 v1.1",
			BoosterVersionCategory: "v1.1",
		}

		convey.Convey("When the class is 1", func() {
			convey.Convey("Then it should report success", func() {
				convey.So(rec.Succeeded(), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the class is 0", func() {
			rec.Class = model.OutcomeFailure

			convey.Convey("Then it should report failure", func() {
				convey.So(rec.Succeeded(), convey.ShouldBeFalse)
			})
		})
	})
}
