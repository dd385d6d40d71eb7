package types_test

import (
	"errors"
	"math"
	"testing"

	types "github.com/okian/launchdash/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSelector(t *testing.T) {
	Convey("Given selectors", t, func() {
		all := types.Selector(types.AllSites)
		site := types.Selector("KSC LC-39A")

		Convey("When the selector is ALL", func() {
			Convey("Then it should match every site", func() {
				So(all.IsAll(), ShouldBeTrue)
				So(all.Site(), ShouldEqual, "")
				So(all.Matches("KSC LC-39A"), ShouldBeTrue)
				So(all.Matches("VAFB SLC-4E"), ShouldBeTrue)
			})
		})

		Convey("When the selector names a site", func() {
			Convey("Then it should match only that site", func() {
				So(site.IsAll(), ShouldBeFalse)
				So(site.Site(), ShouldEqual, "KSC LC-39A")
				So(site.Matches("KSC LC-39A"), ShouldBeTrue)
				So(site.Matches("VAFB SLC-4E"), ShouldBeFalse)
			})
		})

		Convey("When parsing raw dropdown values", func() {
			Convey("Then they should be trimmed and empty values mean ALL", func() {
				So(types.ParseSelector(" KSC LC-39A\t"), ShouldEqual, site)
				So(types.ParseSelector(""), ShouldEqual, all)
				So(types.ParseSelector("   "), ShouldEqual, all)
				So(types.ParseSelector("ALL"), ShouldEqual, all)
			})
		})

		Convey("When the selector is lowercase all", func() {
			Convey("Then it should be treated as a site name", func() {
				So(types.Selector("all").IsAll(), ShouldBeFalse)
			})
		})
	})
}

func TestPayloadRange(t *testing.T) {
	Convey("Given payload ranges", t, func() {
		Convey("When lo <= hi", func() {
			r := types.PayloadRange{Lo: 1000, Hi: 5000}

			Convey("Then it should validate and contain its bounds", func() {
				So(r.Validate(), ShouldBeNil)
				So(r.Contains(1000), ShouldBeTrue)
				So(r.Contains(5000), ShouldBeTrue)
				So(r.Contains(999), ShouldBeFalse)
				So(r.Contains(5001), ShouldBeFalse)
			})
		})

		Convey("When lo == hi", func() {
			r := types.PayloadRange{Lo: 3000, Hi: 3000}

			Convey("Then it should be a valid single-point range", func() {
				So(r.Validate(), ShouldBeNil)
				So(r.Contains(3000), ShouldBeTrue)
			})
		})

		Convey("When lo > hi", func() {
			err := types.PayloadRange{Lo: 5000, Hi: 1000}.Validate()

			Convey("Then it should return ErrInvalidRange", func() {
				So(errors.Is(err, types.ErrInvalidRange), ShouldBeTrue)
			})
		})

		Convey("When a bound is not finite", func() {
			nan := types.PayloadRange{Lo: math.NaN(), Hi: 1000}.Validate()
			inf := types.PayloadRange{Lo: 0, Hi: math.Inf(1)}.Validate()

			Convey("Then it should return ErrInvalidRange", func() {
				So(errors.Is(nan, types.ErrInvalidRange), ShouldBeTrue)
				So(errors.Is(inf, types.ErrInvalidRange), ShouldBeTrue)
			})
		})
	})
}

func TestSiteSuccess(t *testing.T) {
	Convey("Given aggregation results", t, func() {
		Convey("When an ALL result has no rates", func() {
			res := types.SiteSuccess{Selector: types.AllSites}

			Convey("Then it should be empty", func() {
				So(res.IsEmpty(), ShouldBeTrue)
			})
		})

		Convey("When a site result has counts", func() {
			res := types.SiteSuccess{
				Selector: "A",
				Counts:   types.OutcomeCounts{Site: "A", Successes: 2, Failures: 1},
			}

			Convey("Then it should report the total and not be empty", func() {
				So(res.Counts.Total(), ShouldEqual, 3)
				So(res.IsEmpty(), ShouldBeFalse)
			})
		})

		Convey("When a site result has zero counts", func() {
			res := types.SiteSuccess{Selector: "nowhere"}

			Convey("Then it should be empty", func() {
				So(res.IsEmpty(), ShouldBeTrue)
			})
		})
	})
}
