package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/launchdash/internal/adapters/chart"
	service "github.com/okian/launchdash/internal/app"
	"github.com/okian/launchdash/internal/domain/launches"
	"github.com/okian/launchdash/internal/domain/model"
	"github.com/okian/launchdash/internal/domain/types"
	"github.com/okian/launchdash/pkg/logger"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func testTable() *launches.Table {
	return launches.NewTable([]model.LaunchRecord{
		{FlightNumber: 1, Site: "CCAFS LC-40", Class: 0, PayloadMassKG: 0, BoosterVersionCategory: "v1.0"},
		{FlightNumber: 2, Site: "CCAFS LC-40", Class: 1, PayloadMassKG: 525, BoosterVersionCategory: "v1.0"},
		{FlightNumber: 3, Site: "VAFB SLC-4E", Class: 0, PayloadMassKG: 500, BoosterVersionCategory: "v1.1"},
		{FlightNumber: 4, Site: "CCAFS LC-40", Class: 1, PayloadMassKG: 3170, BoosterVersionCategory: "FT"},
		{FlightNumber: 5, Site: "KSC LC-39A", Class: 1, PayloadMassKG: 5300, BoosterVersionCategory: "FT"},
		{FlightNumber: 6, Site: "KSC LC-39A", Class: 0, PayloadMassKG: 9600, BoosterVersionCategory: "B4"},
	})
}

func newDashboard() *service.Dashboard {
	d, err := service.New(testTable(), service.WithRenderer(chart.NewRenderer(chart.WithSize(400, 300))))
	So(err, ShouldBeNil)
	return d
}

func raw(v any) json.RawMessage {
	b, err := json.Marshal(v)
	So(err, ShouldBeNil)
	return b
}

func TestService_New(t *testing.T) {
	Convey("Given a launch table", t, func() {
		Convey("When constructing a dashboard with default options", func() {
			d := newDashboard()

			Convey("Then it should have sensible defaults", func() {
				So(d.DefaultRange(), ShouldResemble, types.PayloadRange{Lo: 0, Hi: 9600})
				So(d.Table().Len(), ShouldEqual, 6)
				So(d.Callbacks(), ShouldResemble, []service.CallbackSpec{
					{Output: service.PieChartID, Inputs: []string{service.SiteDropdownID}},
					{Output: service.ScatterChartID, Inputs: []string{service.SiteDropdownID, service.PayloadSliderID}},
				})
			})
		})

		Convey("When constructing without a table", func() {
			_, err := service.New(nil)

			Convey("Then it should fail", func() {
				So(errors.Is(err, service.ErrNoTable), ShouldBeTrue)
			})
		})

		Convey("When constructing over an empty table", func() {
			_, err := service.New(launches.NewTable(nil))

			Convey("Then it should fail", func() {
				So(errors.Is(err, service.ErrNoTable), ShouldBeTrue)
				So(errors.Is(err, launches.ErrEmptyTable), ShouldBeTrue)
			})
		})
	})
}

func TestService_Layout(t *testing.T) {
	Convey("Given a dashboard with a custom title and slider", t, func() {
		d, err := service.New(testTable(),
			service.WithTitle("Launches"),
			service.WithSlider(0, 5000, 500),
		)
		So(err, ShouldBeNil)

		Convey("When building the layout", func() {
			l := d.Layout()

			Convey("Then the dropdown lists ALL then sorted sites", func() {
				So(l.Title, ShouldEqual, "Launches")
				So(l.Dropdown.ID, ShouldEqual, service.SiteDropdownID)
				So(l.Dropdown.Value, ShouldEqual, types.AllSites)
				So(l.Dropdown.Placeholder, ShouldEqual, "Select a Launch Site here")
				So(l.Dropdown.Searchable, ShouldBeTrue)
				So(l.Dropdown.Options, ShouldResemble, []types.SiteOption{
					{Label: "ALL", Value: "ALL"},
					{Label: "CCAFS LC-40", Value: "CCAFS LC-40"},
					{Label: "KSC LC-39A", Value: "KSC LC-39A"},
					{Label: "VAFB SLC-4E", Value: "VAFB SLC-4E"},
				})
			})

			Convey("Then the slider uses the configured domain and the payload bounds", func() {
				So(l.Slider.ID, ShouldEqual, service.PayloadSliderID)
				So(l.Slider.Min, ShouldEqual, 0)
				So(l.Slider.Max, ShouldEqual, 5000)
				So(l.Slider.Step, ShouldEqual, 500)
				So(l.Slider.Value, ShouldResemble, [2]float64{0, 9600})
				So(l.Slider.Marks, ShouldResemble, []service.Mark{
					{Value: 0, Label: "0"}, {Value: 2500, Label: "2500"}, {Value: 5000, Label: "5000"},
				})
			})

			Convey("Then both graphs and their callbacks are described", func() {
				So(l.Graphs, ShouldResemble, []service.Graph{{ID: service.PieChartID}, {ID: service.ScatterChartID}})
				So(l.Callbacks, ShouldHaveLength, 2)
			})
		})

		Convey("When an invalid slider domain is given", func() {
			d, err := service.New(testTable(), service.WithSlider(10, 0, 1))
			So(err, ShouldBeNil)

			Convey("Then the default domain is kept", func() {
				So(d.Layout().Slider.SliderDomain, ShouldResemble, service.SliderDomain{Min: 0, Max: 10000, Step: 1000})
			})
		})
	})
}

func TestService_Views(t *testing.T) {
	Convey("Given a dashboard", t, func() {
		ctx := context.Background()
		d := newDashboard()

		Convey("When aggregating for one site", func() {
			res := d.SiteSuccess("CCAFS LC-40")

			Convey("Then successes and failures add up to the site's records", func() {
				So(res.Counts.Successes, ShouldEqual, 2)
				So(res.Counts.Failures, ShouldEqual, 1)
			})
		})

		Convey("When building the pie chart", func() {
			fig := d.PieChart(ctx, types.AllSites)

			Convey("Then it carries the pie id", func() {
				So(fig.ID, ShouldEqual, service.PieChartID)
				So(fig.Slices, ShouldHaveLength, 3)
			})
		})

		Convey("When building the scatter chart", func() {
			fig, err := d.ScatterChart(ctx, "KSC LC-39A", types.PayloadRange{Lo: 0, Hi: 6000})

			Convey("Then only matching records are plotted", func() {
				So(err, ShouldBeNil)
				So(fig.ID, ShouldEqual, service.ScatterChartID)
				So(fig.Points(), ShouldEqual, 1)
			})
		})

		Convey("When listing launches with an inverted range", func() {
			_, err := d.Launches(ctx, types.AllSites, types.PayloadRange{Lo: 5000, Hi: 1000})

			Convey("Then the range is rejected", func() {
				So(errors.Is(err, types.ErrInvalidRange), ShouldBeTrue)
			})
		})

		Convey("When listing launches for an unknown site", func() {
			recs, err := d.Launches(ctx, "Nowhere", d.DefaultRange())

			Convey("Then the result is empty, not an error", func() {
				So(err, ShouldBeNil)
				So(recs, ShouldBeEmpty)
			})
		})

		Convey("When reading stats", func() {
			stats := d.GetStats()

			Convey("Then dataset figures are reported", func() {
				So(stats["records"], ShouldEqual, 6)
				So(stats["sites"], ShouldEqual, 3)
				So(stats["payloadMax"], ShouldEqual, 9600.0)
				So(stats["callbacks"], ShouldEqual, 2)
			})
		})
	})
}

func TestService_Dispatch(t *testing.T) {
	Convey("Given a dashboard", t, func() {
		ctx := context.Background()
		d := newDashboard()

		Convey("When the pie is requested with no inputs", func() {
			resp, err := d.Dispatch(ctx, service.UpdateRequest{Output: service.PieChartID})

			Convey("Then the default ALL pie is returned with its SVG", func() {
				So(err, ShouldBeNil)
				So(resp.Output, ShouldEqual, service.PieChartID)
				So(resp.Figure.Title, ShouldEqual, chart.PieTitleAll)
				So(resp.SVG, ShouldContainSubstring, "<svg")
			})
		})

		Convey("When the pie is requested for one site", func() {
			resp, err := d.Dispatch(ctx, service.UpdateRequest{
				Output: service.PieChartID,
				Inputs: map[string]json.RawMessage{
					service.SiteDropdownID:  raw("KSC LC-39A"),
					service.PayloadSliderID: raw([]float64{9000, 1}), // not an input of the pie
				},
			})

			Convey("Then undeclared inputs are ignored", func() {
				So(err, ShouldBeNil)
				So(resp.Figure.Title, ShouldEqual, "Launch Success Rate at KSC LC-39A")
			})
		})

		Convey("When the site value carries surrounding spaces", func() {
			resp, err := d.Dispatch(ctx, service.UpdateRequest{
				Output: service.ScatterChartID,
				Inputs: map[string]json.RawMessage{service.SiteDropdownID: raw(" KSC LC-39A ")},
			})
			direct, derr := d.ScatterChart(ctx, "KSC LC-39A", d.DefaultRange())

			Convey("Then it selects the same site as the trimmed value", func() {
				So(err, ShouldBeNil)
				So(derr, ShouldBeNil)
				So(resp.Figure.Empty(), ShouldBeFalse)
				So(resp.Figure.Title, ShouldEqual, direct.Title)
				So(resp.Figure.Points(), ShouldEqual, direct.Points())
			})
		})

		Convey("When the scatter is requested with a range", func() {
			resp, err := d.Dispatch(ctx, service.UpdateRequest{
				Output: service.ScatterChartID,
				Inputs: map[string]json.RawMessage{
					service.SiteDropdownID:  raw("ALL"),
					service.PayloadSliderID: raw([]float64{400, 3500}),
				},
			})

			Convey("Then only launches in range are plotted", func() {
				So(err, ShouldBeNil)
				So(resp.Figure.Points(), ShouldEqual, 3)
				for _, s := range resp.Figure.Series {
					for _, p := range s.Points {
						So(p.X, ShouldBeBetweenOrEqual, 400.0, 3500.0)
					}
				}
			})
		})

		Convey("When the scatter is requested with a null site", func() {
			resp, err := d.Dispatch(ctx, service.UpdateRequest{
				Output: service.ScatterChartID,
				Inputs: map[string]json.RawMessage{service.SiteDropdownID: json.RawMessage("null")},
			})

			Convey("Then the site falls back to ALL over the full range", func() {
				So(err, ShouldBeNil)
				So(resp.Figure.Title, ShouldEqual, chart.ScatterTitleAll)
				So(resp.Figure.Points(), ShouldEqual, 6)
			})
		})

		Convey("When nothing matches", func() {
			resp, err := d.Dispatch(ctx, service.UpdateRequest{
				Output: service.ScatterChartID,
				Inputs: map[string]json.RawMessage{service.PayloadSliderID: raw([]float64{6000, 7000})},
			})

			Convey("Then an empty figure and a blank chart come back", func() {
				So(err, ShouldBeNil)
				So(resp.Figure.Empty(), ShouldBeTrue)
				So(resp.SVG, ShouldContainSubstring, "<svg")
			})
		})

		Convey("When the site is not in the dataset", func() {
			resp, err := d.Dispatch(ctx, service.UpdateRequest{
				Output: service.PieChartID,
				Inputs: map[string]json.RawMessage{service.SiteDropdownID: raw("Boca Chica")},
			})

			Convey("Then an empty titled figure comes back", func() {
				So(err, ShouldBeNil)
				So(resp.Figure.Empty(), ShouldBeTrue)
				So(resp.SVG, ShouldContainSubstring, "Boca Chica")
			})
		})

		Convey("When the output is unknown", func() {
			_, err := d.Dispatch(ctx, service.UpdateRequest{Output: "nope"})

			Convey("Then ErrUnknownOutput is returned", func() {
				So(errors.Is(err, service.ErrUnknownOutput), ShouldBeTrue)
			})
		})

		Convey("When the slider value is malformed", func() {
			for _, bad := range []json.RawMessage{raw([]float64{1}), raw([]float64{5000, 1000}), json.RawMessage(`"wide"`)} {
				_, err := d.Dispatch(ctx, service.UpdateRequest{
					Output: service.ScatterChartID,
					Inputs: map[string]json.RawMessage{service.PayloadSliderID: bad},
				})
				So(errors.Is(err, service.ErrBadInput), ShouldBeTrue)
			}
		})

		Convey("When the site value is not a string", func() {
			_, err := d.Dispatch(ctx, service.UpdateRequest{
				Output: service.PieChartID,
				Inputs: map[string]json.RawMessage{service.SiteDropdownID: raw(42)},
			})

			Convey("Then ErrBadInput is returned", func() {
				So(errors.Is(err, service.ErrBadInput), ShouldBeTrue)
			})
		})
	})
}

func TestBindings(t *testing.T) {
	Convey("Given an empty registry", t, func() {
		b := service.NewBindings()
		noop := func(context.Context, service.State) (chart.Figure, error) { return chart.Figure{}, nil }

		Convey("When registering outputs", func() {
			So(b.Register("a", []string{"x"}, noop), ShouldBeNil)
			So(b.Register("b", []string{"x", "y"}, noop), ShouldBeNil)

			Convey("Then specs come back in registration order", func() {
				So(b.Specs(), ShouldResemble, []service.CallbackSpec{
					{Output: "a", Inputs: []string{"x"}},
					{Output: "b", Inputs: []string{"x", "y"}},
				})
			})

			Convey("Then registering an output twice fails", func() {
				So(errors.Is(b.Register("a", nil, noop), service.ErrDuplicateOutput), ShouldBeTrue)
			})
		})

		Convey("When registering without a callback", func() {
			So(errors.Is(b.Register("a", nil, nil), service.ErrBadInput), ShouldBeTrue)
		})
	})
}
