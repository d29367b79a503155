package chartgen

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"time"

	"github.com/bethanyhgardner/llm-size-plot/src/dataset"
)

// Compose places the two layers onto one canvas: the full-range layer fills
// it, the inset sits in its configured sub-region near the bottom, and the
// connecting arrow is drawn last so it crosses both layers.
func Compose(full, inset image.Image, cfg Config) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(canvas, full.Bounds(), full, full.Bounds().Min, draw.Over)
	insetRect := image.Rect(cfg.InsetLeft, cfg.InsetTop, cfg.InsetLeft+cfg.InsetWidth, cfg.InsetTop+cfg.InsetHeight)
	draw.Draw(canvas, insetRect, inset, inset.Bounds().Min, draw.Over)
	drawArrow(canvas, cfg)
	return canvas
}

// drawArrow draws the fixed annotation arrow. Endpoints are canvas fractions,
// so the arrow only lines up with the band/inset at the configured size.
func drawArrow(img *image.RGBA, cfg Config) {
	x0 := cfg.Arrow.X0 * float64(cfg.Width)
	y0 := cfg.Arrow.Y0 * float64(cfg.Height)
	x1 := cfg.Arrow.X1 * float64(cfg.Width)
	y1 := cfg.Arrow.Y1 * float64(cfg.Height)
	col := color.RGBA{R: cfg.ArrowColor.R, G: cfg.ArrowColor.G, B: cfg.ArrowColor.B, A: cfg.ArrowColor.A}
	drawThickLine(img, x0, y0, x1, y1, cfg.ArrowWidth, col)
	// Arrowhead: two short strokes back from the tip at +-150 degrees.
	ang := math.Atan2(y1-y0, x1-x0)
	headLen := float64(cfg.ArrowWidth) * 7
	for _, da := range []float64{math.Pi * 5 / 6, -math.Pi * 5 / 6} {
		hx := x1 + headLen*math.Cos(ang+da)
		hy := y1 + headLen*math.Sin(ang+da)
		drawThickLine(img, x1, y1, hx, hy, cfg.ArrowWidth, col)
	}
}

// drawThickLine stamps a filled disk along the segment.
func drawThickLine(img *image.RGBA, x0, y0, x1, y1 float64, width int, col color.RGBA) {
	steps := int(math.Hypot(x1-x0, y1-y0))
	if steps < 1 {
		steps = 1
	}
	r := float64(width) / 2
	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		fillDisk(img, x0+t*(x1-x0), y0+t*(y1-y0), r, col)
	}
}

func fillDisk(img *image.RGBA, cx, cy, r float64, col color.RGBA) {
	for y := int(cy - r); y <= int(cy+r+1); y++ {
		for x := int(cx - r); x <= int(cx+r+1); x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			if dx*dx+dy*dy <= r*r {
				img.SetRGBA(x, y, col)
			}
		}
	}
}

// WritePNG encodes the canvas and overwrites the output file.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// Generate renders both layers from the transformed records, composes them
// and writes the final PNG. Any render or encode failure is returned as-is;
// the caller treats it as fatal.
func Generate(recs []dataset.Record, cfg Config, outPath string) error {
	defer dataset.TimeTrack(time.Now(), "render")
	full, err := renderFull(recs, cfg)
	if err != nil {
		return err
	}
	insetRecs := InsetRecords(recs, cfg.InsetThreshold)
	inset, err := renderInset(insetRecs, cfg)
	if err != nil {
		return err
	}
	dataset.Infof("composed figure: %d records full, %d in inset", len(recs), len(insetRecs))
	return WritePNG(outPath, Compose(full, inset, cfg))
}
