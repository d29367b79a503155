package chartgen

import (
	"time"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Band is the decorative shaded rectangle on the full-range layer marking the
// region the inset zooms into. Bounds are data values (dates and raw
// parameter counts), not pixels.
type Band struct {
	From, To time.Time
	ParamsLo float64
	ParamsHi float64
}

// Arrow connects the inset to the band region. Coordinates are fractions of
// the composed canvas, so they only line up at the configured output size.
type Arrow struct {
	X0, Y0 float64
	X1, Y1 float64
}

// Config collects every visual tuning constant of the chart in one place.
// Defaults reproduce the published figure; tests override individual fields.
type Config struct {
	// Composed canvas, 10in x 10in at 300 DPI.
	Width, Height int

	// Inset layer size and placement on the canvas.
	InsetWidth, InsetHeight int
	InsetLeft, InsetTop     int

	// Full-range date axis bounds; ticks fall on January 1st of each year.
	XMin, XMax time.Time

	// Log10 parameter axis bounds and tick breakpoints (raw counts).
	YLogMin, YLogMax float64
	YBreaks          []float64

	// Records at or below this parameter count appear in the inset.
	InsetThreshold             float64
	InsetYLogMin, InsetYLogMax float64

	Band      Band
	BandColor drawing.Color

	Arrow      Arrow
	ArrowWidth int
	ArrowColor drawing.Color

	// Label repel tuning. Seeds differ per layer so the two label sets are
	// independently reproducible.
	FullSeed, InsetSeed           int64
	RepelIterations               int
	FullRepelPush, InsetRepelPush float64
	LabelPad                      int

	DotWidth      float64
	TitleFontSize float64
	AxisFontSize  float64

	// Company color mapping; keys are the fixed category set.
	Palette map[string]drawing.Color
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DefaultConfig returns the fixed tuning used for the published chart.
func DefaultConfig() Config {
	return Config{
		Width:  3000,
		Height: 3000,

		InsetWidth:  1500,
		InsetHeight: 950,
		InsetLeft:   180,
		InsetTop:    1900,

		XMin: date(2018, time.January, 1),
		XMax: date(2023, time.July, 1),

		YLogMin: 7.5,
		YLogMax: 12.5,
		YBreaks: []float64{1e8, 1e9, 1e10, 1e11, 1e12},

		InsetThreshold: 15e9,
		InsetYLogMin:   7.5,
		InsetYLogMax:   10.2,

		Band: Band{
			From:     date(2018, time.June, 1),
			To:       date(2022, time.March, 1),
			ParamsLo: 1e8,
			ParamsHi: 15e9,
		},
		BandColor: drawing.Color{R: 120, G: 120, B: 120, A: 40},

		Arrow:      Arrow{X0: 0.52, Y0: 0.64, X1: 0.60, Y1: 0.40},
		ArrowWidth: 6,
		ArrowColor: drawing.Color{R: 60, G: 60, B: 60, A: 255},

		FullSeed:        42,
		InsetSeed:       43,
		RepelIterations: 250,
		FullRepelPush:   2.0,
		InsetRepelPush:  3.5,
		LabelPad:        4,

		DotWidth:      9,
		TitleFontSize: 36,
		AxisFontSize:  20,

		// ggplot-style five-hue palette, ordered as the category set.
		Palette: map[string]drawing.Color{
			"Google":        {R: 0xF8, G: 0x76, B: 0x6D, A: 255},
			"Meta":          {R: 0xA3, G: 0xA5, B: 0x00, A: 255},
			"OpenAI":        {R: 0x00, G: 0xBF, B: 0x7D, A: 255},
			"Other Company": {R: 0x00, G: 0xB0, B: 0xF6, A: 255},
			"Academic":      {R: 0xE7, G: 0x6B, B: 0xF3, A: 255},
		},
	}
}
