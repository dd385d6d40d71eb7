package smoke

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	service "github.com/okian/launchdash/internal/app"
	"github.com/okian/launchdash/internal/domain/types"
	"github.com/okian/launchdash/pkg/logger"
)

// Run checks the dashboard at cfg.BaseURL. It returns ErrCheckFailed when an
// invariant is violated and a plain error when the service cannot be reached.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get()
	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)

	log.Info(ctx, "starting dashboard smoke check",
		logger.String("baseURL", cfg.BaseURL),
		logger.String("timeout", cfg.Timeout.String()),
		logger.Int("workers", cfg.Workers),
	)

	// Step 1: Check service health
	if err := client.getJSON(ctx, "/healthz", nil, nil); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Read the layout
	layout, err := client.layout(ctx)
	if err != nil {
		return stats, fmt.Errorf("layout retrieval failed: %w", err)
	}
	full := types.PayloadRange{Lo: layout.Slider.Value[0], Hi: layout.Slider.Value[1]}
	if err := full.Validate(); err != nil {
		return stats, fmt.Errorf("layout slider default: %w", err)
	}

	// Step 3: Check every site option concurrently
	var (
		mu       sync.Mutex
		requests int64
		launches int64
	)
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, opt := range layout.Dropdown.Options {
		site := types.Selector(opt.Value)
		g.Go(func() error {
			res, err := checkSite(gctx, client, site, full)
			atomic.AddInt64(&requests, int64(res.requests))
			if err != nil {
				return fmt.Errorf("site %s: %w", site, err)
			}
			if site.IsAll() {
				atomic.StoreInt64(&launches, int64(res.launches))
			}
			if cfg.Verbose {
				log.Info(gctx, "site checked",
					logger.String("site", string(site)),
					logger.Int("launches", res.launches),
					logger.Int("violations", len(res.violations)),
				)
			}
			mu.Lock()
			stats.Violations = append(stats.Violations, res.violations...)
			mu.Unlock()
			return nil
		})
	}
	err = g.Wait()

	stats.Sites = len(layout.Dropdown.Options) - 1
	stats.Requests = int(atomic.LoadInt64(&requests)) + 2
	stats.Launches = int(atomic.LoadInt64(&launches))
	stats.Duration = time.Since(stats.StartTime)
	if err != nil {
		return stats, err
	}

	displayFinalStats(ctx, stats)
	for _, v := range stats.Violations {
		log.Error(ctx, "invariant violated", logger.String("detail", v))
	}
	if len(stats.Violations) > 0 {
		return stats, fmt.Errorf("%w: %d violations", ErrCheckFailed, len(stats.Violations))
	}
	log.Info(ctx, "smoke check passed")
	return stats, nil
}

type siteResult struct {
	requests   int
	launches   int
	violations []string
}

// checkSite requests both charts and the listing for one selector, over the
// full range and over its lower half.
func checkSite(ctx context.Context, c *HTTPClient, site types.Selector, full types.PayloadRange) (siteResult, error) {
	var res siteResult
	siteInput, err := json.Marshal(string(site))
	if err != nil {
		return res, err
	}

	pie, err := c.update(ctx, service.UpdateRequest{
		Output: service.PieChartID,
		Inputs: map[string]json.RawMessage{service.SiteDropdownID: siteInput},
	})
	res.requests++
	if err != nil {
		return res, err
	}

	listing, err := c.launches(ctx, string(site), full)
	res.requests++
	if err != nil {
		return res, err
	}
	res.launches = listing.Count

	if site.IsAll() {
		res.violations = append(res.violations, verifyRates(pie.Figure)...)
	} else {
		res.violations = append(res.violations, verifyCounts(string(site), pie.Figure, listing.Count)...)
	}

	half := types.PayloadRange{Lo: full.Lo, Hi: full.Lo + (full.Hi-full.Lo)/2}
	for _, rng := range []types.PayloadRange{full, half} {
		sliderInput, err := json.Marshal([]float64{rng.Lo, rng.Hi})
		if err != nil {
			return res, err
		}
		scatter, err := c.update(ctx, service.UpdateRequest{
			Output: service.ScatterChartID,
			Inputs: map[string]json.RawMessage{
				service.SiteDropdownID:  siteInput,
				service.PayloadSliderID: sliderInput,
			},
		})
		res.requests++
		if err != nil {
			return res, err
		}

		listing, err := c.launches(ctx, string(site), rng)
		res.requests++
		if err != nil {
			return res, err
		}
		res.violations = append(res.violations, verifyListing(site, rng, listing)...)
		res.violations = append(res.violations, verifyScatter(site, rng, scatter.Figure, listing.Count)...)
	}
	return res, nil
}

// displayFinalStats logs the run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	logger.Get().Info(ctx, "final statistics",
		logger.Int("sites", stats.Sites),
		logger.Int("requests", stats.Requests),
		logger.Int("launches", stats.Launches),
		logger.Int("violations", len(stats.Violations)),
		logger.String("duration", stats.Duration.String()),
	)
}
