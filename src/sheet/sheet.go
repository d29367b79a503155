// Package sheet fetches the shared model-size spreadsheet and maintains the
// local cache file. Access is anonymous: the document is public-read and the
// CSV export endpoint needs no credentials.
package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bethanyhgardner/llm-size-plot/src/dataset"
)

// Fixed document identity of the shared sheet.
const (
	DefaultSheetID = "1pTbY_Qiab5cvf_uGWX_fL7qgSFEvyWeQ0cBOMFwN4vY"
	DefaultGID     = 0
)

// ExportURL returns the anonymous CSV export endpoint for a sheet tab.
func ExportURL(sheetID string, gid int) string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv&gid=%d", sheetID, gid)
}

// NormalizeHeader rewrites a remote column header to the cache convention:
// lowercase with single underscores between words.
func NormalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.Join(strings.Fields(h), "_")
}

// FetchURL downloads the remote CSV, restricts it to the declared cache
// columns (by normalized header name) and returns header-plus-data rows
// ready for caching. A missing declared column is an error.
func FetchURL(url string) ([][]string, error) {
	defer dataset.TimeTrack(time.Now(), "fetch")
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("fetch sheet: unexpected status %s", resp.Status)
	}
	raw, err := csv.NewReader(resp.Body).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse sheet csv: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("sheet returned no rows")
	}

	// Map each declared cache column to its position in the remote header.
	indexes := make([]int, len(dataset.CacheColumns))
	for i, want := range dataset.CacheColumns {
		indexes[i] = -1
		for j, h := range raw[0] {
			if NormalizeHeader(h) == want {
				indexes[i] = j
				break
			}
		}
		if indexes[i] < 0 {
			return nil, fmt.Errorf("sheet missing column %q", want)
		}
	}

	rows := make([][]string, 0, len(raw))
	rows = append(rows, append([]string(nil), dataset.CacheColumns...))
	for n, src := range raw[1:] {
		row := make([]string, len(indexes))
		for i, j := range indexes {
			if j >= len(src) {
				return nil, fmt.Errorf("sheet row %d: %d fields, need %d", n+1, len(src), j+1)
			}
			row[i] = src[j]
		}
		rows = append(rows, row)
	}
	dataset.Infof("fetched %d data rows from sheet", len(rows)-1)
	return rows, nil
}

// Fetch downloads the sheet identified by sheetID/gid.
func Fetch(sheetID string, gid int) ([][]string, error) {
	return FetchURL(ExportURL(sheetID, gid))
}

// WriteCache overwrites the cache file with the given rows. The write is
// atomic: a temp file in the same directory is renamed over the target so a
// failed run never leaves a truncated cache behind.
func WriteCache(path string, rows [][]string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".cache-*.csv")
	if err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	defer os.Remove(tmp.Name())
	w := csv.NewWriter(tmp)
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		return fmt.Errorf("write cache: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("write cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}

// Refresh fetches the sheet and replaces the cache file, returning the number
// of data rows cached.
func Refresh(sheetID string, gid int, cachePath string) (int, error) {
	rows, err := Fetch(sheetID, gid)
	if err != nil {
		return 0, err
	}
	if err := WriteCache(cachePath, rows); err != nil {
		return 0, err
	}
	dataset.Infof("cache %s replaced (%d rows)", cachePath, len(rows)-1)
	return len(rows) - 1, nil
}
