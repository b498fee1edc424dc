package app

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/five82/lectern/internal/catalog"
	"github.com/five82/lectern/internal/chartsource"
	"github.com/five82/lectern/internal/chordpro"
	"github.com/five82/lectern/internal/logging"
)

const defaultCheckWorkers = 4

// CheckResult is the outcome of loading one catalog chart.
type CheckResult struct {
	Release string
	Track   string
	Source  string
	Kind    chartsource.ErrorKind
	Err     error
}

// OK reports whether the chart loaded and parsed.
func (r CheckResult) OK() bool { return r.Err == nil }

// CheckCatalog loads every chart in cat with at most workers concurrent
// retrievals. Tracks without a chart are skipped. Results keep catalog
// order.
func CheckCatalog(ctx context.Context, fetcher chartsource.Fetcher, cat *catalog.Catalog, workers int, logger zerolog.Logger) []CheckResult {
	if workers <= 0 {
		workers = defaultCheckWorkers
	}

	type job struct {
		idx  int
		src  chartsource.Source
		song *catalog.Song
	}
	var jobs []job
	var results []CheckResult
	for i := range cat.Releases {
		release := &cat.Releases[i]
		for j := range release.Songs {
			song := &release.Songs[j]
			if !song.HasChart() {
				continue
			}
			jobs = append(jobs, job{idx: len(results), src: song.Source(), song: song})
			results = append(results, CheckResult{Release: release.ID, Track: song.ID, Source: song.Source().String()})
		}
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for _, jb := range jobs {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			results[jb.idx].Kind = chartsource.Classify(ctx.Err())
			results[jb.idx].Err = ctx.Err()
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			err := checkOne(ctx, fetcher, jb.src)
			results[jb.idx].Err = err
			results[jb.idx].Kind = chartsource.Classify(err)
			if err != nil {
				logger.Warn().Err(err).
					Str("track", jb.song.ID).
					Str("kind", results[jb.idx].Kind.String()).
					Msg("chart check failed")
			}
		}()
	}
	wg.Wait()
	return results
}

func checkOne(ctx context.Context, fetcher chartsource.Fetcher, src chartsource.Source) error {
	text := src.Text()
	if !src.IsText() {
		var err error
		if text, err = fetcher.Fetch(ctx, src.URL()); err != nil {
			return err
		}
	}
	_, err := chordpro.Parse(text)
	return err
}

// Check loads the configured catalog, checks every chart and writes one
// line per chart to w. It returns an error when any chart failed.
func Check(ctx context.Context, w io.Writer, opts Options, workers int) error {
	e, err := setup(opts)
	if err != nil {
		return err
	}
	defer e.close()

	cat, err := catalog.Load(e.cfg.Catalog)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	results := CheckCatalog(ctx, e.client, cat, workers, logging.Component("check"))
	failed := 0
	for _, r := range results {
		status := "ok"
		if !r.OK() {
			failed++
			status = fmt.Sprintf("%s: %v", r.Kind, r.Err)
		}
		if _, err := fmt.Fprintf(w, "%s/%s\t%s\n", r.Release, r.Track, status); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d charts failed", failed, len(results))
	}
	return nil
}
