package launches_test

import (
	"testing"

	"github.com/okian/launchdash/internal/domain/launches"
	"github.com/okian/launchdash/internal/domain/model"
	"github.com/okian/launchdash/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// sampleRecords mirrors the shape of the SpaceX launch dataset.
func sampleRecords() []model.LaunchRecord {
	return []model.LaunchRecord{
		{FlightNumber: 1, Site: "CCAFS LC-40", Class: 0, PayloadMassKG: 0, BoosterVersion: "F9 v1.0  B0003", BoosterVersionCategory: "v1.0"},
		{FlightNumber: 2, Site: "CCAFS LC-40", Class: 0, PayloadMassKG: 525, BoosterVersion: "F9 v1.0  B0005", BoosterVersionCategory: "v1.0"},
		{FlightNumber: 7, Site: "CCAFS LC-40", Class: 1, PayloadMassKG: 3170, BoosterVersion: "F9 v1.1", BoosterVersionCategory: "v1.1"},
		{FlightNumber: 10, Site: "VAFB SLC-4E", Class: 0, PayloadMassKG: 500, BoosterVersion: "F9 v1.1  B1003", BoosterVersionCategory: "v1.1"},
		{FlightNumber: 20, Site: "VAFB SLC-4E", Class: 1, PayloadMassKG: 9600, BoosterVersion: "F9 FT  B1029.1", BoosterVersionCategory: "FT"},
		{FlightNumber: 30, Site: "KSC LC-39A", Class: 1, PayloadMassKG: 2490, BoosterVersion: "F9 FT  B1031.1", BoosterVersionCategory: "FT"},
		{FlightNumber: 31, Site: "KSC LC-39A", Class: 0, PayloadMassKG: 5600, BoosterVersion: "F9 FT B1030", BoosterVersionCategory: "FT"},
		{FlightNumber: 40, Site: "KSC LC-39A", Class: 1, PayloadMassKG: 3600, BoosterVersion: "F9 B4 B1039.2", BoosterVersionCategory: "B4"},
		{FlightNumber: 50, Site: "CCAFS SLC-40", Class: 1, PayloadMassKG: 6460, BoosterVersion: "F9 B4 B1043.2", BoosterVersionCategory: "B4"},
		{FlightNumber: 55, Site: "CCAFS SLC-40", Class: 1, PayloadMassKG: 3600, BoosterVersion: "F9 B5 B1048.3", BoosterVersionCategory: "B5"},
	}
}

// exampleTable is the worked example: A(1,0,1), B(0,0).
func exampleTable() *launches.Table {
	return launches.NewTable([]model.LaunchRecord{
		{Site: "A", Class: 1, PayloadMassKG: 100, BoosterVersionCategory: "v1.0"},
		{Site: "A", Class: 0, PayloadMassKG: 200, BoosterVersionCategory: "v1.1"},
		{Site: "B", Class: 0, PayloadMassKG: 300, BoosterVersionCategory: "v1.0"},
		{Site: "A", Class: 1, PayloadMassKG: 400, BoosterVersionCategory: "FT"},
		{Site: "B", Class: 0, PayloadMassKG: 500, BoosterVersionCategory: "FT"},
	})
}

func TestNewTable(t *testing.T) {
	Convey("Given a set of launch records", t, func() {
		recs := sampleRecords()
		tbl := launches.NewTable(recs)

		Convey("When the table is built", func() {
			Convey("Then it should keep every record in order", func() {
				So(tbl.Len(), ShouldEqual, len(recs))
				So(tbl.Records(), ShouldResemble, recs)
			})

			Convey("And sites should be in first appearance order", func() {
				So(tbl.Sites(), ShouldResemble, []string{"CCAFS LC-40", "VAFB SLC-4E", "KSC LC-39A", "CCAFS SLC-40"})
				So(tbl.HasSite("KSC LC-39A"), ShouldBeTrue)
				So(tbl.HasSite("Boca Chica"), ShouldBeFalse)
			})
		})

		Convey("When the caller mutates its input or a returned copy", func() {
			recs[0].Site = "mutated"
			out := tbl.Records()
			out[1].Class = 1

			Convey("Then the table should be unaffected", func() {
				So(tbl.Records()[0].Site, ShouldEqual, "CCAFS LC-40")
				So(tbl.Records()[1].Class, ShouldEqual, 0)
			})
		})
	})
}

func TestPayloadBounds(t *testing.T) {
	Convey("Given a populated table", t, func() {
		tbl := launches.NewTable(sampleRecords())

		Convey("When computing payload bounds", func() {
			bounds, err := tbl.PayloadBounds()

			Convey("Then it should return the observed min and max", func() {
				So(err, ShouldBeNil)
				So(bounds.Lo, ShouldEqual, 0)
				So(bounds.Hi, ShouldEqual, 9600)
			})
		})
	})

	Convey("Given an empty table", t, func() {
		tbl := launches.NewTable(nil)

		Convey("When computing payload bounds", func() {
			_, err := tbl.PayloadBounds()

			Convey("Then it should return ErrEmptyTable", func() {
				So(err, ShouldEqual, launches.ErrEmptyTable)
			})
		})
	})
}

func TestSiteSuccess(t *testing.T) {
	Convey("Given the worked example table", t, func() {
		tbl := exampleTable()

		Convey("When aggregating for ALL", func() {
			res := tbl.SiteSuccess(types.AllSites)

			Convey("Then it should return the success rate of each site", func() {
				So(res.IsEmpty(), ShouldBeFalse)
				So(len(res.Rates), ShouldEqual, 2)
				So(res.Rates[0].Site, ShouldEqual, "A")
				So(res.Rates[0].Rate, ShouldAlmostEqual, 0.667, 0.001)
				So(res.Rates[0].Launches, ShouldEqual, 3)
				So(res.Rates[1].Site, ShouldEqual, "B")
				So(res.Rates[1].Rate, ShouldEqual, 0.0)
				So(res.Rates[1].Launches, ShouldEqual, 2)
			})
		})

		Convey("When aggregating for site A", func() {
			res := tbl.SiteSuccess("A")

			Convey("Then it should return success and failure counts", func() {
				So(res.Counts, ShouldResemble, types.OutcomeCounts{Site: "A", Successes: 2, Failures: 1})
				So(res.Rates, ShouldBeNil)
			})
		})

		Convey("When aggregating for an unknown site", func() {
			res := tbl.SiteSuccess("Boca Chica")

			Convey("Then it should return an empty result", func() {
				So(res.IsEmpty(), ShouldBeTrue)
				So(res.Counts.Total(), ShouldEqual, 0)
			})
		})
	})

	Convey("Given the sample dataset", t, func() {
		tbl := launches.NewTable(sampleRecords())

		Convey("When computing rates for every site", func() {
			rates := tbl.SiteSuccessRates()

			Convey("Then every rate should lie in [0,1]", func() {
				So(len(rates), ShouldEqual, 4)
				for _, r := range rates {
					So(r.Rate, ShouldBeBetweenOrEqual, 0.0, 1.0)
				}
			})
		})

		Convey("When counting outcomes per site", func() {
			Convey("Then successes plus failures should equal the site's record count", func() {
				for _, site := range tbl.Sites() {
					n := 0
					for _, r := range tbl.Records() {
						if r.Site == site {
							n++
						}
					}
					So(tbl.SiteOutcomes(site).Total(), ShouldEqual, n)
				}
			})
		})
	})
}

func TestFilterByPayload(t *testing.T) {
	Convey("Given the sample dataset", t, func() {
		tbl := launches.NewTable(sampleRecords())
		bounds, err := tbl.PayloadBounds()
		So(err, ShouldBeNil)

		Convey("When filtering ALL over the true bounds", func() {
			out := tbl.FilterByPayload(bounds, types.AllSites)

			Convey("Then every record should come back once, in order", func() {
				So(out, ShouldResemble, tbl.Records())
			})
		})

		Convey("When filtering a sub-range", func() {
			rng := types.PayloadRange{Lo: 500, Hi: 3600}
			out := tbl.FilterByPayload(rng, types.AllSites)

			Convey("Then every record should lie inside the closed range", func() {
				So(len(out), ShouldEqual, 6)
				for _, r := range out {
					So(r.PayloadMassKG, ShouldBeBetweenOrEqual, rng.Lo, rng.Hi)
				}
			})
		})

		Convey("When filtering a sub-range at one site", func() {
			out := tbl.FilterByPayload(types.PayloadRange{Lo: 2000, Hi: 6000}, "KSC LC-39A")

			Convey("Then only that site's records in range should remain", func() {
				So(len(out), ShouldEqual, 3)
				So(out[0].FlightNumber, ShouldEqual, 30)
				So(out[1].FlightNumber, ShouldEqual, 31)
				So(out[2].FlightNumber, ShouldEqual, 40)
			})
		})

		Convey("When the site has no records in range", func() {
			out := tbl.FilterByPayload(types.PayloadRange{Lo: 7000, Hi: 8000}, "CCAFS LC-40")

			Convey("Then it should return an empty sequence", func() {
				So(out, ShouldNotBeNil)
				So(out, ShouldBeEmpty)
			})
		})

		Convey("When the site is unknown", func() {
			out := tbl.FilterByPayload(bounds, "Boca Chica")

			Convey("Then it should return an empty sequence", func() {
				So(out, ShouldBeEmpty)
			})
		})
	})
}

func TestGroupByBoosterCategory(t *testing.T) {
	Convey("Given filtered records", t, func() {
		recs := sampleRecords()

		Convey("When grouping by booster version category", func() {
			groups := launches.GroupByBoosterCategory(recs)

			Convey("Then categories should keep first appearance order", func() {
				names := make([]string, len(groups))
				total := 0
				for i, g := range groups {
					names[i] = g.Category
					total += len(g.Records)
				}
				So(names, ShouldResemble, []string{"v1.0", "v1.1", "FT", "B4", "B5"})
				So(total, ShouldEqual, len(recs))
			})
		})

		Convey("When grouping nothing", func() {
			Convey("Then there should be no groups", func() {
				So(launches.GroupByBoosterCategory(nil), ShouldBeEmpty)
			})
		})
	})
}

func TestSiteOptions(t *testing.T) {
	Convey("Given the sample dataset", t, func() {
		tbl := launches.NewTable(sampleRecords())

		Convey("When building dropdown options", func() {
			opts := tbl.SiteOptions()

			Convey("Then ALL should lead and sites should be sorted", func() {
				So(opts, ShouldResemble, []types.SiteOption{
					{Label: "ALL", Value: "ALL"},
					{Label: "CCAFS LC-40", Value: "CCAFS LC-40"},
					{Label: "CCAFS SLC-40", Value: "CCAFS SLC-40"},
					{Label: "KSC LC-39A", Value: "KSC LC-39A"},
					{Label: "VAFB SLC-4E", Value: "VAFB SLC-4E"},
				})
			})
		})
	})
}

func TestPayloadOutcomeCorrelation(t *testing.T) {
	Convey("Given records for correlation", t, func() {
		Convey("When payload and outcome rise together", func() {
			recs := []model.LaunchRecord{
				{PayloadMassKG: 100, Class: 0},
				{PayloadMassKG: 200, Class: 0},
				{PayloadMassKG: 900, Class: 1},
				{PayloadMassKG: 1000, Class: 1},
			}
			r, ok := launches.PayloadOutcomeCorrelation(recs)

			Convey("Then the correlation should be strongly positive", func() {
				So(ok, ShouldBeTrue)
				So(r, ShouldBeGreaterThan, 0.9)
				So(r, ShouldBeLessThanOrEqualTo, 1.0)
			})
		})

		Convey("When the outcome is constant", func() {
			recs := []model.LaunchRecord{
				{PayloadMassKG: 100, Class: 1},
				{PayloadMassKG: 900, Class: 1},
			}
			_, ok := launches.PayloadOutcomeCorrelation(recs)

			Convey("Then it should be undefined", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When there is a single record", func() {
			_, ok := launches.PayloadOutcomeCorrelation([]model.LaunchRecord{{PayloadMassKG: 1, Class: 1}})

			Convey("Then it should be undefined", func() {
				So(ok, ShouldBeFalse)
			})
		})
	})
}
