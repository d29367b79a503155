// Package dataset loads the cached model-size sheet into typed records and
// applies the cleaning steps the chart needs: include-flag filtering, date
// coercion, company consolidation and magnitude parsing.
//
// Transform order matters: filter first so malformed rows that were never
// marked for inclusion cannot fail the run, then coerce dates, consolidate
// companies and parse magnitudes. Any parse failure on a surviving row is
// fatal; the sheet is hand-maintained and silent gaps hide data-entry errors.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// CacheColumns is the fixed schema of the local cache file, in column order.
// The loader normalizes remote headers to exactly these names.
var CacheColumns = []string{
	"model",
	"parameters",
	"arxiv_date",
	"company",
	"include",
	"paper_url",
	"announcement_url",
	"source_notes",
}

// Column indexes into a cache row.
const (
	colModel = iota
	colParameters
	colArxivDate
	colCompany
	colInclude
	colPaperURL
	colAnnouncementURL
	colSourceNotes
)

// IncludeSentinel marks a row for inclusion in the chart.
const IncludeSentinel = "x"

// Companies is the fixed ordered category set. Order controls legend and
// series layering, nothing else.
var Companies = []string{"Google", "Meta", "OpenAI", "Other Company", "Academic"}

// Record is one model entry after transformation.
type Record struct {
	Name      string
	Company   string
	ArxivDate time.Time // calendar date, UTC midnight
	ParamsChr string    // raw magnitude string, e.g. "175B"
	ParamsNum float64   // derived parameter count
}

var magnitudeMultipliers = map[byte]float64{
	'M': 1e6,
	'B': 1e9,
	'T': 1e12,
}

// ParseMagnitude converts a human-readable parameter count like "7B" into a
// numeric value. The string must be a number followed by one of M, B or T.
func ParseMagnitude(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return 0, fmt.Errorf("magnitude %q: too short", s)
	}
	unit := s[len(s)-1]
	mult, ok := magnitudeMultipliers[unit]
	if !ok {
		return 0, fmt.Errorf("magnitude %q: unit %q not one of M/B/T", s, string(unit))
	}
	prefix, err := strconv.ParseFloat(strings.TrimSpace(s[:len(s)-1]), 64)
	if err != nil {
		return 0, fmt.Errorf("magnitude %q: %w", s, err)
	}
	return prefix * mult, nil
}

// ConsolidateCompany collapses raw sheet labels into the fixed category set.
// Labels starting with "Other Company" collapse to "Other Company";
// "Open Source/Academic" maps to "Academic". Anything else must already be a
// member of the set.
func ConsolidateCompany(raw string) (string, error) {
	c := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(c, "Other Company"):
		return "Other Company", nil
	case c == "Open Source/Academic":
		return "Academic", nil
	}
	for _, known := range Companies {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("company %q not in category set", raw)
}

// ParseDate coerces a sheet timestamp into a calendar date, discarding any
// time-of-day component. Accepts RFC3339 timestamps and plain dates.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var t time.Time
	var err error
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err = time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("date %q: %w", s, err)
}

// ReadCache reads the cache CSV and enforces the declared header schema.
// It returns data rows only (header stripped), each with exactly
// len(CacheColumns) fields.
func ReadCache(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = len(CacheColumns)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read cache %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("cache %s is empty", path)
	}
	for i, want := range CacheColumns {
		if rows[0][i] != want {
			return nil, fmt.Errorf("cache %s: column %d is %q, want %q", path, i, rows[0][i], want)
		}
	}
	return rows[1:], nil
}

// Transform applies the cleaning pipeline to raw cache rows and returns the
// surviving records. Attribution columns and the include flag are dropped.
func Transform(rows [][]string) ([]Record, error) {
	defer TimeTrack(time.Now(), "transform")
	recs := make([]Record, 0, len(rows))
	for i, row := range rows {
		if strings.TrimSpace(row[colInclude]) != IncludeSentinel {
			continue
		}
		date, err := ParseDate(row[colArxivDate])
		if err != nil {
			return nil, fmt.Errorf("row %d (%s): %w", i+1, row[colModel], err)
		}
		company, err := ConsolidateCompany(row[colCompany])
		if err != nil {
			return nil, fmt.Errorf("row %d (%s): %w", i+1, row[colModel], err)
		}
		params, err := ParseMagnitude(row[colParameters])
		if err != nil {
			return nil, fmt.Errorf("row %d (%s): %w", i+1, row[colModel], err)
		}
		recs = append(recs, Record{
			Name:      strings.TrimSpace(row[colModel]),
			Company:   company,
			ArxivDate: date,
			ParamsChr: strings.TrimSpace(row[colParameters]),
			ParamsNum: params,
		})
	}
	Infof("transformed %d rows into %d records", len(rows), len(recs))
	return recs, nil
}

// Load reads the cache file and transforms it in one step.
func Load(path string) ([]Record, error) {
	rows, err := ReadCache(path)
	if err != nil {
		return nil, err
	}
	return Transform(rows)
}
