package chart

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/golang/freetype/truetype"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/okian/launchdash/pkg/logger"
	"github.com/okian/launchdash/pkg/metrics"
)

// Format is a chart output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
)

// Default output size in pixels.
const (
	DefaultWidth  = 800
	DefaultHeight = 480
)

const (
	// classPad keeps the 0 and 1 class marks off the plot edges.
	classPad = 0.25
	// minPayloadSpan widens a degenerate payload axis.
	minPayloadSpan = 1000.0
	noDataMessage  = "No launches match the current selection"
)

// ParseFormat maps a query value to a Format. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatSVG, FormatPNG:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// ContentType returns the MIME type of the encoding.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	default:
		return "application/json"
	}
}

var (
	fontOnce sync.Once
	fontFace *truetype.Font
	fontErr  error
)

// defaultFont parses go-chart's bundled font once. go-chart's own cache is
// unsynchronised, so charts must always be given the font explicitly.
func defaultFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		fontFace, fontErr = gochart.GetDefaultFont()
	})
	return fontFace, fontErr
}

// Renderer draws figures with go-chart. It is immutable after NewRenderer
// and safe for concurrent use.
type Renderer struct {
	width   int
	height  int
	logger  logger.Logger
	font    *truetype.Font
	fontErr error
}

// NewRenderer creates a Renderer with configuration options.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{width: DefaultWidth, height: DefaultHeight}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logger.Get()
	}
	r.font, r.fontErr = defaultFont()
	return r
}

// Size returns the output width and height in pixels.
func (r *Renderer) Size() (width, height int) { return r.width, r.height }

// Render encodes fig as SVG or PNG. A figure with no data, or one go-chart
// refuses to draw, comes out as a blank canvas carrying the title.
func (r *Renderer) Render(ctx context.Context, fig Figure, format Format) ([]byte, error) {
	provider, err := rendererFor(format)
	if err != nil {
		return nil, err
	}
	if r.fontErr != nil {
		metrics.RecordChartRenderError(string(fig.Kind))
		return nil, fmt.Errorf("%w: font: %w", ErrRender, r.fontErr)
	}
	start := time.Now()

	var buf bytes.Buffer
	if fig.Empty() {
		err = r.blank(provider, fig.Title, &buf)
	} else if err = r.draw(provider, fig, &buf); err != nil {
		r.logger.Warn(ctx, "chart render failed, drawing blank fallback",
			logger.String("figure", fig.ID),
			logger.String("kind", string(fig.Kind)),
			logger.Error(err),
		)
		metrics.RecordChartRenderError(string(fig.Kind))
		buf.Reset()
		err = r.blank(provider, fig.Title, &buf)
	}
	if err != nil {
		metrics.RecordChartRenderError(string(fig.Kind))
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}

	metrics.RecordChartRender(string(fig.Kind), string(format), float64(time.Since(start).Microseconds())/1000)
	return buf.Bytes(), nil
}

func rendererFor(format Format) (gochart.RendererProvider, error) {
	switch format {
	case FormatSVG:
		return gochart.SVG, nil
	case FormatPNG:
		return gochart.PNG, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func (r *Renderer) draw(rp gochart.RendererProvider, fig Figure, w io.Writer) error {
	switch fig.Kind {
	case KindPie:
		return r.drawPie(rp, fig, w)
	case KindScatter:
		return r.drawScatter(rp, fig, w)
	default:
		return fmt.Errorf("unknown figure kind %q", fig.Kind)
	}
}

func (r *Renderer) drawPie(rp gochart.RendererProvider, fig Figure, w io.Writer) error {
	values := make([]gochart.Value, 0, len(fig.Slices))
	for _, s := range fig.Slices {
		// go-chart cannot draw an empty sector
		if s.Value <= 0 {
			continue
		}
		values = append(values, gochart.Value{Value: s.Value, Label: s.Label})
	}
	if len(values) == 1 {
		return r.drawDisk(rp, fig.Title, values[0].Label, w)
	}
	pie := gochart.PieChart{
		Title:  fig.Title,
		Width:  r.width,
		Height: r.height,
		Font:   r.font,
		Values: values,
	}
	return pie.Render(rp, w)
}

// pointStyle renders points only, with no connecting line.
func pointStyle(col drawing.Color) gochart.Style {
	return gochart.Style{
		StrokeWidth: gochart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}

func (r *Renderer) drawScatter(rp gochart.RendererProvider, fig Figure, w io.Writer) error {
	series := make([]gochart.Series, 0, len(fig.Series))
	for i, s := range fig.Series {
		if len(s.Points) == 0 {
			continue
		}
		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))
		for j, p := range s.Points {
			xs[j], ys[j] = p.X, p.Y
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(gochart.GetDefaultColor(i)),
		})
	}

	lo, hi := payloadAxis(fig)
	ch := gochart.Chart{
		Title:      fig.Title,
		Width:      r.width,
		Height:     r.height,
		Font:       r.font,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Name:  fig.XLabel,
			Range: &gochart.ContinuousRange{Min: lo, Max: hi},
		},
		YAxis: gochart.YAxis{
			Name:  fig.YLabel,
			Range: &gochart.ContinuousRange{Min: -classPad, Max: 1 + classPad},
			Ticks: []gochart.Tick{{Value: 0, Label: "0"}, {Value: 1, Label: "1"}},
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	return ch.Render(rp, w)
}

// payloadAxis returns the x-axis bounds: the figure's payload range when
// set, else the span of its points, widened when degenerate.
func payloadAxis(fig Figure) (lo, hi float64) {
	if fig.XRange != nil {
		lo, hi = fig.XRange.Lo, fig.XRange.Hi
	} else {
		first := true
		for _, s := range fig.Series {
			for _, p := range s.Points {
				if first || p.X < lo {
					lo = p.X
				}
				if first || p.X > hi {
					hi = p.X
				}
				first = false
			}
		}
	}
	if hi-lo < minPayloadSpan {
		mid := (lo + hi) / 2
		lo, hi = mid-minPayloadSpan/2, mid+minPayloadSpan/2
	}
	return lo, hi
}

// diskLayout returns the centre and radius of a full pie.
func (r *Renderer) diskLayout() (cx, cy int, radius float64) {
	const titleBand = 60
	cx, cy = r.width/2, (r.height+titleBand)/2
	radius = float64(min(r.width, r.height-titleBand))/2 - 20
	return cx, cy, radius
}

// drawDisk draws a pie holding a single slice as a filled disk. go-chart
// leaves a one-value pie unfilled.
func (r *Renderer) drawDisk(rp gochart.RendererProvider, title, label string, w io.Writer) error {
	cv, err := r.canvas(rp, title)
	if err != nil {
		return err
	}
	cx, cy, radius := r.diskLayout()
	col := gochart.GetDefaultColor(0)
	cv.SetFillColor(col)
	cv.SetStrokeColor(col)
	cv.SetStrokeWidth(1)
	cv.Circle(radius, cx, cy)
	cv.FillStroke()

	cv.SetFontColor(drawing.ColorWhite)
	cv.SetFontSize(12)
	tb := cv.MeasureText(label)
	cv.Text(label, cx-tb.Width()/2, cy+tb.Height()/2)
	return cv.Save(w)
}

// canvas starts a white chart with the title drawn at the top.
func (r *Renderer) canvas(rp gochart.RendererProvider, title string) (gochart.Renderer, error) {
	cv, err := rp(r.width, r.height)
	if err != nil {
		return nil, err
	}
	cv.SetFillColor(drawing.ColorWhite)
	cv.SetStrokeColor(drawing.ColorWhite)
	cv.MoveTo(0, 0)
	cv.LineTo(r.width, 0)
	cv.LineTo(r.width, r.height)
	cv.LineTo(0, r.height)
	cv.Close()
	cv.FillStroke()

	cv.SetFont(r.font)
	cv.SetFontColor(drawing.ColorBlack)
	cv.SetFontSize(14)
	tb := cv.MeasureText(title)
	cv.Text(title, (r.width-tb.Width())/2, 30)
	return cv, nil
}

// blank draws an empty white canvas with the title and a short notice.
func (r *Renderer) blank(rp gochart.RendererProvider, title string, w io.Writer) error {
	cv, err := r.canvas(rp, title)
	if err != nil {
		return err
	}
	cv.SetFontColor(drawing.ColorFromHex("888888"))
	cv.SetFontSize(11)
	mb := cv.MeasureText(noDataMessage)
	cv.Text(noDataMessage, (r.width-mb.Width())/2, r.height/2)

	return cv.Save(w)
}
