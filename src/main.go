// llm-size-plot entrypoint.
//
// One linear pipeline, no concurrency:
//  1. Fetch the shared model-size sheet (anonymous CSV export) and overwrite
//     the local cache file. Skippable with -skip-fetch for offline reruns.
//  2. Transform the cache into clean records (include filter, date coercion,
//     company consolidation, magnitude parsing).
//  3. Render the full-range + inset figure and write the PNG.
//
// Every failure is fatal; this is a one-shot report generator, not a service.
// Visual tuning lives in chartgen.Config, operational paths in flags below.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/bethanyhgardner/llm-size-plot/src/chartgen"
	"github.com/bethanyhgardner/llm-size-plot/src/dataset"
	"github.com/bethanyhgardner/llm-size-plot/src/sheet"
)

type options struct {
	sheetID   string
	gid       int
	cachePath string
	outPath   string
	skipFetch bool
}

func run(opts options, cfg chartgen.Config) error {
	if opts.skipFetch {
		dataset.Infof("skipping fetch, using cache %s", opts.cachePath)
	} else {
		n, err := sheet.Refresh(opts.sheetID, opts.gid, opts.cachePath)
		if err != nil {
			return fmt.Errorf("refresh cache: %w", err)
		}
		dataset.Debugf("fetched %d rows", n)
	}
	recs, err := dataset.Load(opts.cachePath)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	if len(recs) == 0 {
		return fmt.Errorf("no records marked for inclusion in %s", opts.cachePath)
	}
	if err := chartgen.Generate(recs, cfg, opts.outPath); err != nil {
		return fmt.Errorf("generate chart: %w", err)
	}
	dataset.Infof("wrote %s (%dx%d)", opts.outPath, cfg.Width, cfg.Height)
	return nil
}

func main() {
	sheetID := flag.String("sheet-id", sheet.DefaultSheetID, "Spreadsheet document ID (public-read)")
	gid := flag.Int("gid", sheet.DefaultGID, "Sheet tab gid")
	cachePath := flag.String("cache", "model_scale.csv", "Local cache CSV path")
	outPath := flag.String("out", "model_scale.png", "Output PNG path")
	skipFetch := flag.Bool("skip-fetch", false, "Skip the remote fetch and render from the existing cache")
	logLevel := flag.String("log-level", "info", "Log level (debug|info|warn|error)")
	flag.Parse()

	dataset.SetLogLevel(*logLevel)

	opts := options{
		sheetID:   *sheetID,
		gid:       *gid,
		cachePath: *cachePath,
		outPath:   *outPath,
		skipFetch: *skipFetch,
	}
	if err := run(opts, chartgen.DefaultConfig()); err != nil {
		dataset.Errorf("%v", err)
		os.Exit(1)
	}
}
