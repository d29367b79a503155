package chartgen

import (
	"testing"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/bethanyhgardner/llm-size-plot/src/dataset"
)

func TestFormatMagnitude(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1e6, "1M"},
		{300e6, "300M"},
		{1e9, "1B"},
		{15e9, "15B"},
		{2.5e11, "250B"},
		{1e12, "1T"},
		{1.5e12, "1.5T"},
		{1500, "1.5K"},
		{500, "500"},
	}
	for _, c := range cases {
		if got := formatMagnitude(c.in); got != c.want {
			t.Fatalf("formatMagnitude(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMagnitudeTicksAreLogPositioned(t *testing.T) {
	ticks := magnitudeTicks([]float64{1e8, 1e9, 1e12})
	if len(ticks) != 3 {
		t.Fatalf("expected 3 ticks, got %d", len(ticks))
	}
	if ticks[0].Value != 8 || ticks[1].Value != 9 || ticks[2].Value != 12 {
		t.Fatalf("tick values not log10 positions: %+v", ticks)
	}
	if ticks[0].Label != "100M" || ticks[1].Label != "1B" || ticks[2].Label != "1T" {
		t.Fatalf("unexpected tick labels: %+v", ticks)
	}
}

func TestYearTicks(t *testing.T) {
	min := time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC)
	max := time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC)
	ticks := yearTicks(min, max)
	if len(ticks) != 6 {
		t.Fatalf("expected 6 yearly ticks, got %d", len(ticks))
	}
	if ticks[0].Label != "2018" || ticks[5].Label != "2023" {
		t.Fatalf("unexpected labels: first=%q last=%q", ticks[0].Label, ticks[5].Label)
	}
	for i := 1; i < len(ticks); i++ {
		if ticks[i].Value <= ticks[i-1].Value {
			t.Fatalf("tick values not increasing at %d", i)
		}
	}
}

func TestYearTicksExcludeOutOfRangeYears(t *testing.T) {
	// Window starts mid-year: Jan 1st of the first year is before the range.
	min := time.Date(2018, time.June, 1, 0, 0, 0, 0, time.UTC)
	max := time.Date(2020, time.February, 1, 0, 0, 0, 0, time.UTC)
	ticks := yearTicks(min, max)
	if len(ticks) != 2 {
		t.Fatalf("expected ticks for 2019 and 2020 only, got %d", len(ticks))
	}
	if ticks[0].Label != "2019" {
		t.Fatalf("first tick %q, want 2019", ticks[0].Label)
	}
}

func rec(name, company string, y int, m time.Month, d int, params float64) dataset.Record {
	return dataset.Record{
		Name:      name,
		Company:   company,
		ArxivDate: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		ParamsNum: params,
	}
}

func TestInsetRecordsThresholdBoundary(t *testing.T) {
	recs := []dataset.Record{
		rec("Below", "Google", 2021, time.March, 1, 7e9),
		rec("AtThreshold", "Meta", 2021, time.April, 1, 15e9),
		rec("Above", "OpenAI", 2021, time.May, 1, 175e9),
	}
	got := InsetRecords(recs, 15e9)
	if len(got) != 2 {
		t.Fatalf("expected 2 inset records, got %d", len(got))
	}
	if got[0].Name != "Below" || got[1].Name != "AtThreshold" {
		t.Fatalf("unexpected inset subset: %+v", got)
	}
}

func TestCompanySeriesOrderAndSkip(t *testing.T) {
	recs := []dataset.Record{
		rec("A", "Academic", 2021, time.March, 1, 1e9),
		rec("G", "Google", 2021, time.April, 1, 2e9),
	}
	series := companySeries(recs, DefaultConfig().Palette, 5)
	if len(series) != 2 {
		t.Fatalf("expected 2 non-empty series, got %d", len(series))
	}
	// Category order: Google before Academic regardless of input order.
	first := series[0].(chart.ContinuousSeries)
	second := series[1].(chart.ContinuousSeries)
	if first.Name != "Google" || second.Name != "Academic" {
		t.Fatalf("series order %q, %q; want Google, Academic", first.Name, second.Name)
	}
	if len(first.XValues) != 1 || len(first.YValues) != 1 {
		t.Fatalf("unexpected series lengths: %d/%d", len(first.XValues), len(first.YValues))
	}
}

func TestAnchorPointsMatchRangeTranslation(t *testing.T) {
	cfg := DefaultConfig()
	box := chart.Box{Top: 100, Left: 100, Right: 1100, Bottom: 900}
	recs := []dataset.Record{
		rec("Min", "Google", cfg.XMin.Year(), cfg.XMin.Month(), cfg.XMin.Day(), 1e8),
		rec("Mid", "Meta", 2020, time.October, 1, 1e10),
	}
	pts := anchorPoints(recs, box, cfg.XMin, cfg.XMax, cfg.YLogMin, cfg.YLogMax)
	if pts[0].X != box.Left {
		t.Fatalf("x-min record should anchor at plot left edge, got %d", pts[0].X)
	}
	if pts[0].Y <= box.Top || pts[0].Y >= box.Bottom {
		t.Fatalf("anchor y %d outside plot box", pts[0].Y)
	}
	if pts[1].X <= pts[0].X {
		t.Fatalf("later date should anchor further right: %d <= %d", pts[1].X, pts[0].X)
	}
	// 1e10 (log 10) is above 1e8 (log 8) so its pixel y must be smaller.
	if pts[1].Y >= pts[0].Y {
		t.Fatalf("larger model should anchor higher: %d >= %d", pts[1].Y, pts[0].Y)
	}
}

func TestInsetBreaksRestrictedToRange(t *testing.T) {
	cfg := DefaultConfig()
	breaks := insetBreaks(cfg)
	for _, b := range breaks {
		if b > 15e9*1.5 {
			t.Fatalf("break %v should not be visible in the inset range", b)
		}
	}
	if len(breaks) == 0 {
		t.Fatalf("expected at least one inset break")
	}
}
