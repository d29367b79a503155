package chartgen

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	chart "github.com/wcharczuk/go-chart/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Label geometry for basicfont.Face7x13.
const (
	labelCharW = 7
	labelH     = 13
	labelOffX  = 10 // preferred position: right of the point,
	labelOffY  = 19 // just above it
	leaderMin  = 18 // draw a leader line when displaced at least this far
)

type labelRect struct {
	x, y, w, h float64 // x,y is the top-left corner
}

// overlapRects reports whether two rects (each expanded by pad) intersect,
// returning the center-to-center delta used as the push direction.
func overlapRects(a, b labelRect, pad float64) (float64, float64, bool) {
	if a.x-pad >= b.x+b.w+pad || b.x-pad >= a.x+a.w+pad {
		return 0, 0, false
	}
	if a.y-pad >= b.y+b.h+pad || b.y-pad >= a.y+a.h+pad {
		return 0, 0, false
	}
	dx := (b.x + b.w/2) - (a.x + a.w/2)
	dy := (b.y + b.h/2) - (a.y + a.h/2)
	return dx, dy, true
}

// LayoutLabels places one label per point with a force loop: overlapping
// labels push each other apart, labels are pushed off foreign points, and a
// weak spring pulls each label back toward its preferred spot beside its
// anchor. The rng only breaks exact ties, so output is deterministic for a
// given (seed, points, plot box) and canvas-size sensitive by construction.
func LayoutLabels(points []LabeledPoint, plot chart.Box, seed int64, iterations int, push float64, pad int) []image.Point {
	rng := rand.New(rand.NewSource(seed))
	n := len(points)
	boxes := make([]labelRect, n)
	for i, p := range points {
		boxes[i] = labelRect{
			x: float64(p.X + labelOffX),
			y: float64(p.Y - labelOffY),
			w: float64(labelCharW*len(p.Name) + 4),
			h: labelH + 2,
		}
	}
	fpad := float64(pad)
	for it := 0; it < iterations; it++ {
		pushed := false
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx, dy, ok := overlapRects(boxes[i], boxes[j], fpad)
				if !ok {
					continue
				}
				if dx == 0 && dy == 0 {
					ang := rng.Float64() * 2 * math.Pi
					dx, dy = math.Cos(ang), math.Sin(ang)
				}
				norm := math.Hypot(dx, dy)
				ux, uy := dx/norm*push, dy/norm*push
				boxes[i].x -= ux
				boxes[i].y -= uy
				boxes[j].x += ux
				boxes[j].y += uy
				pushed = true
			}
		}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				pt := labelRect{x: float64(points[j].X - 6), y: float64(points[j].Y - 6), w: 12, h: 12}
				dx, dy, ok := overlapRects(boxes[i], pt, fpad)
				if !ok {
					continue
				}
				if dx == 0 && dy == 0 {
					ang := rng.Float64() * 2 * math.Pi
					dx, dy = math.Cos(ang), math.Sin(ang)
				}
				norm := math.Hypot(dx, dy)
				boxes[i].x -= dx / norm * push
				boxes[i].y -= dy / norm * push
				pushed = true
			}
		}
		for i, p := range points {
			boxes[i].x += (float64(p.X+labelOffX) - boxes[i].x) * 0.05
			boxes[i].y += (float64(p.Y-labelOffY) - boxes[i].y) * 0.05
		}
		for i := range boxes {
			boxes[i].x = clampF(boxes[i].x, float64(plot.Left), float64(plot.Right)-boxes[i].w)
			boxes[i].y = clampF(boxes[i].y, float64(plot.Top), float64(plot.Bottom)-boxes[i].h)
		}
		if !pushed {
			break
		}
	}
	out := make([]image.Point, n)
	for i, b := range boxes {
		out[i] = image.Point{X: int(math.Round(b.x)), Y: int(math.Round(b.y))}
	}
	return out
}

func clampF(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// DrawLabels draws each label (with a light halo for contrast) at its laid
// out position, plus a leader line back to the point when the layout pushed
// the label away from its preferred spot.
func DrawLabels(img *image.RGBA, points []LabeledPoint, pos []image.Point) {
	face := basicfont.Face7x13
	textCol := image.NewUniform(color.RGBA{R: 25, G: 25, B: 25, A: 255})
	haloCol := image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 220})
	leaderCol := color.RGBA{R: 130, G: 130, B: 130, A: 255}
	for i, p := range points {
		x, y := pos[i].X, pos[i].Y
		if abs(x-(p.X+labelOffX))+abs(y-(p.Y-labelOffY)) >= leaderMin {
			drawLine(img, p.X, p.Y, x, y+labelH/2, leaderCol)
		}
		baseline := y + face.Metrics().Ascent.Ceil()
		halo := &font.Drawer{Dst: img, Src: haloCol, Face: face, Dot: fixed.Point26_6{X: fixed.I(x + 1), Y: fixed.I(baseline + 1)}}
		halo.DrawString(p.Name)
		d := &font.Drawer{Dst: img, Src: textCol, Face: face, Dot: fixed.Point26_6{X: fixed.I(x), Y: fixed.I(baseline)}}
		d.DrawString(p.Name)
	}
}

// drawLine draws a one-pixel line by linear interpolation.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	steps := max(abs(x1-x0), abs(y1-y0))
	if steps == 0 {
		img.SetRGBA(x0, y0, col)
		return
	}
	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		x := int(math.Round(float64(x0) + t*float64(x1-x0)))
		y := int(math.Round(float64(y0) + t*float64(y1-y0)))
		img.SetRGBA(x, y, col)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
