// Package chartgen renders the model-size figure: a full-range scatter layer
// with a zoomed inset, composed onto one canvas and written as a PNG.
//
// Points are plotted at (publication date, log10 parameter count) with fixed
// axis ranges from Config, so pixel positions are stable across runs. Text
// labels are placed after rendering by a seeded repel layout and drawn
// directly onto the decoded image; see labels.go.
package chartgen

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bethanyhgardner/llm-size-plot/src/dataset"
)

// LabeledPoint is a plotted record with its pixel anchor in a layer image.
type LabeledPoint struct {
	Name string
	X, Y int
}

// pointStyle returns a style that renders points only (no connecting line).
func pointStyle(col drawing.Color, width float64) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		DotWidth:    width,
		DotColor:    col,
	}
}

// formatMagnitude renders a parameter count with a K/M/B/T suffix, e.g.
// 15e9 -> "15B". Values below 1000 print as-is.
func formatMagnitude(v float64) string {
	av := math.Abs(v)
	switch {
	case av >= 1e12:
		return trimZero(v/1e12) + "T"
	case av >= 1e9:
		return trimZero(v/1e9) + "B"
	case av >= 1e6:
		return trimZero(v/1e6) + "M"
	case av >= 1e3:
		return trimZero(v/1e3) + "K"
	default:
		return trimZero(v)
	}
}

func trimZero(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

// magnitudeTicks returns Y ticks at the configured breakpoints. Tick values
// are log10 positions; labels are abbreviated counts.
func magnitudeTicks(breaks []float64) []chart.Tick {
	ticks := make([]chart.Tick, 0, len(breaks))
	for _, b := range breaks {
		ticks = append(ticks, chart.Tick{Value: math.Log10(b), Label: formatMagnitude(b)})
	}
	return ticks
}

// yearTicks returns one tick per January 1st between min and max inclusive.
func yearTicks(min, max time.Time) []chart.Tick {
	ticks := []chart.Tick{}
	for y := min.Year(); y <= max.Year(); y++ {
		t := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
		if t.Before(min) || t.After(max) {
			continue
		}
		ticks = append(ticks, chart.Tick{Value: chart.TimeToFloat64(t), Label: fmt.Sprintf("%d", y)})
	}
	return ticks
}

// companySeries builds one points-only series per company, in category order
// so legend entries and draw layering are stable. Companies with no records
// are skipped; go-chart rejects series without values.
func companySeries(recs []dataset.Record, pal map[string]drawing.Color, dotWidth float64) []chart.Series {
	series := make([]chart.Series, 0, len(dataset.Companies))
	for _, company := range dataset.Companies {
		xs := []float64{}
		ys := []float64{}
		for _, r := range recs {
			if r.Company != company {
				continue
			}
			xs = append(xs, chart.TimeToFloat64(r.ArxivDate))
			ys = append(ys, math.Log10(r.ParamsNum))
		}
		if len(xs) == 0 {
			continue
		}
		series = append(series, chart.ContinuousSeries{
			Name:    company,
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(pal[company], dotWidth),
		})
	}
	return series
}

// InsetRecords returns the subset of records the inset layer shows.
func InsetRecords(recs []dataset.Record, threshold float64) []dataset.Record {
	out := []dataset.Record{}
	for _, r := range recs {
		if r.ParamsNum <= threshold {
			out = append(out, r)
		}
	}
	return out
}

// captureBox records the plot area computed during rendering so label anchors
// can be translated into pixels afterwards.
func captureBox(out *chart.Box) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		*out = canvasBox
	}
}

// bandElement shades the fixed date/magnitude region the inset zooms into.
// Drawn translucent over the series; purely decorative.
func bandElement(cfg Config) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		xr := &chart.ContinuousRange{Min: chart.TimeToFloat64(cfg.XMin), Max: chart.TimeToFloat64(cfg.XMax), Domain: canvasBox.Width()}
		yr := &chart.ContinuousRange{Min: cfg.YLogMin, Max: cfg.YLogMax, Domain: canvasBox.Height()}
		x0 := canvasBox.Left + xr.Translate(chart.TimeToFloat64(cfg.Band.From))
		x1 := canvasBox.Left + xr.Translate(chart.TimeToFloat64(cfg.Band.To))
		y0 := canvasBox.Bottom - yr.Translate(math.Log10(cfg.Band.ParamsLo))
		y1 := canvasBox.Bottom - yr.Translate(math.Log10(cfg.Band.ParamsHi))
		r.SetFillColor(cfg.BandColor)
		r.MoveTo(x0, y0)
		r.LineTo(x1, y0)
		r.LineTo(x1, y1)
		r.LineTo(x0, y1)
		r.Close()
		r.Fill()
	}
}

// borderElement strokes the full plot-area rectangle; the inset uses it in
// place of bare axis lines.
func borderElement(col drawing.Color) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		r.SetStrokeColor(col)
		r.SetStrokeWidth(2.0)
		r.MoveTo(canvasBox.Left, canvasBox.Top)
		r.LineTo(canvasBox.Right, canvasBox.Top)
		r.LineTo(canvasBox.Right, canvasBox.Bottom)
		r.LineTo(canvasBox.Left, canvasBox.Bottom)
		r.Close()
		r.Stroke()
	}
}

// anchorPoints translates records into pixel anchors within the plot box,
// mirroring the translation go-chart applied while rendering.
func anchorPoints(recs []dataset.Record, canvasBox chart.Box, xMin, xMax time.Time, yLogMin, yLogMax float64) []LabeledPoint {
	xr := &chart.ContinuousRange{Min: chart.TimeToFloat64(xMin), Max: chart.TimeToFloat64(xMax), Domain: canvasBox.Width()}
	yr := &chart.ContinuousRange{Min: yLogMin, Max: yLogMax, Domain: canvasBox.Height()}
	pts := make([]LabeledPoint, 0, len(recs))
	for _, r := range recs {
		pts = append(pts, LabeledPoint{
			Name: r.Name,
			X:    canvasBox.Left + xr.Translate(chart.TimeToFloat64(r.ArxivDate)),
			Y:    canvasBox.Bottom - yr.Translate(math.Log10(r.ParamsNum)),
		})
	}
	return pts
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	return rgba
}

// renderFull renders the full-range layer: every record, legend, shaded band,
// repelled labels.
func renderFull(recs []dataset.Record, cfg Config) (image.Image, error) {
	var plotBox chart.Box
	ch := chart.Chart{
		Title:      "Language model sizes over time",
		TitleStyle: chart.Style{FontSize: cfg.TitleFontSize},
		Width:      cfg.Width,
		Height:     cfg.Height,
		Background: chart.Style{Padding: chart.Box{Top: 60, Left: 50, Right: 50, Bottom: 70}},
		XAxis: chart.XAxis{
			Name:  "arXiv publication date",
			Style: chart.Style{FontSize: cfg.AxisFontSize},
			Ticks: yearTicks(cfg.XMin, cfg.XMax),
			Range: &chart.ContinuousRange{Min: chart.TimeToFloat64(cfg.XMin), Max: chart.TimeToFloat64(cfg.XMax)},
		},
		YAxis: chart.YAxis{
			Name:  "Parameters",
			Style: chart.Style{FontSize: cfg.AxisFontSize},
			Ticks: magnitudeTicks(cfg.YBreaks),
			Range: &chart.ContinuousRange{Min: cfg.YLogMin, Max: cfg.YLogMax},
		},
		Series: companySeries(recs, cfg.Palette, cfg.DotWidth),
	}
	ch.Elements = []chart.Renderable{
		bandElement(cfg),
		chart.Legend(&ch),
		captureBox(&plotBox),
	}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render full layer: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode full layer: %w", err)
	}
	rgba := toRGBA(img)
	pts := anchorPoints(recs, plotBox, cfg.XMin, cfg.XMax, cfg.YLogMin, cfg.YLogMax)
	pos := LayoutLabels(pts, plotBox, cfg.FullSeed, cfg.RepelIterations, cfg.FullRepelPush, cfg.LabelPad)
	DrawLabels(rgba, pts, pos)
	return rgba, nil
}

// renderInset renders the zoomed layer: records at or below the threshold,
// full bounding border, no legend (the full layer's legend covers it), its
// own label seed and stronger repel push.
func renderInset(recs []dataset.Record, cfg Config) (image.Image, error) {
	var plotBox chart.Box
	ch := chart.Chart{
		Width:      cfg.InsetWidth,
		Height:     cfg.InsetHeight,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 30, Right: 30, Bottom: 40}},
		XAxis: chart.XAxis{
			Style: chart.Style{FontSize: cfg.AxisFontSize},
			Ticks: yearTicks(cfg.XMin, cfg.XMax),
			Range: &chart.ContinuousRange{Min: chart.TimeToFloat64(cfg.XMin), Max: chart.TimeToFloat64(cfg.XMax)},
		},
		YAxis: chart.YAxis{
			Style: chart.Style{FontSize: cfg.AxisFontSize},
			Ticks: magnitudeTicks(insetBreaks(cfg)),
			Range: &chart.ContinuousRange{Min: cfg.InsetYLogMin, Max: cfg.InsetYLogMax},
		},
		Series: companySeries(recs, cfg.Palette, cfg.DotWidth),
	}
	ch.Elements = []chart.Renderable{
		borderElement(chart.ColorBlack),
		captureBox(&plotBox),
	}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render inset layer: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode inset layer: %w", err)
	}
	rgba := toRGBA(img)
	pts := anchorPoints(recs, plotBox, cfg.XMin, cfg.XMax, cfg.InsetYLogMin, cfg.InsetYLogMax)
	pos := LayoutLabels(pts, plotBox, cfg.InsetSeed, cfg.RepelIterations, cfg.InsetRepelPush, cfg.LabelPad)
	DrawLabels(rgba, pts, pos)
	return rgba, nil
}

// insetBreaks keeps only the configured breakpoints visible in the inset's
// magnitude range.
func insetBreaks(cfg Config) []float64 {
	out := []float64{}
	for _, b := range cfg.YBreaks {
		lg := math.Log10(b)
		if lg >= cfg.InsetYLogMin && lg <= cfg.InsetYLogMax {
			out = append(out, b)
		}
	}
	return out
}
