package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/swipefish/swipecard/pkg/buildinfo"
	"github.com/swipefish/swipecard/pkg/cache"
	"github.com/swipefish/swipecard/pkg/errors"
	"github.com/swipefish/swipecard/pkg/layout"
	"github.com/swipefish/swipecard/pkg/observability"
	"github.com/swipefish/swipecard/pkg/render"
)

// cacheKeyType labels card entries in cache hooks.
const cacheKeyType = "card"

// Runner executes batches with caching.
//
// The Runner is stateless except for the cache and logger, so several
// goroutines may share one Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Run processes jobs on opts.Workers goroutines. Card failures are reported
// in the summary; the returned error is non-nil only for invalid options,
// an unusable output directory or cancellation. On cancellation the summary
// covers the cards that finished.
func (r *Runner) Run(ctx context.Context, jobs []Job, opts Options) (*Summary, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if !opts.DryRun {
		if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	start := time.Now()
	results := make([]CardResult, len(jobs))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.Workers)
	for i, job := range jobs {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			results[i] = r.process(egCtx, job, &opts)
			return nil
		})
	}
	err := eg.Wait()
	if err == nil {
		err = ctx.Err()
	}
	return summarize(results, time.Since(start)), err
}

// process produces one card. It never returns an error; the outcome says
// what happened.
func (r *Runner) process(ctx context.Context, job Job, opts *Options) CardResult {
	start := time.Now()
	hooks := observability.Card()
	logger := opts.Logger.With("id", job.ID)
	res := CardResult{ID: job.ID, Title: job.Record.Title, Illustration: job.Illustration}

	hooks.OnCardStart(ctx, job.ID)
	finish := func(o Outcome, err error) CardResult {
		res.Outcome, res.Err, res.Duration = o, err, time.Since(start)
		hooks.OnCardComplete(ctx, job.ID, string(o), res.Duration, err)
		return res
	}

	if job.Err != nil {
		logger.Warn("skipping card", "reason", errors.UserMessage(job.Err))
		return finish(OutcomeSkipped, job.Err)
	}
	logger.Infof("Processing %s: %s — %s", job.ID, job.Record.Title, job.Record.Tagline)

	data, err := os.ReadFile(job.Illustration)
	if err != nil {
		err = errors.Wrap(errors.ErrCodeAssetLoad, err, "read %s", job.Illustration)
		logger.Error("illustration unreadable", "path", job.Illustration, "err", err)
		return finish(OutcomeFailed, err)
	}
	illus, err := render.Decode(data)
	if err != nil {
		logger.Error("illustration undecodable", "path", job.Illustration, "err", err)
		return finish(OutcomeFailed, err)
	}

	if opts.DryRun {
		layoutStart := time.Now()
		l, err := layout.Compute(opts.Profile, job.Record.Title, job.Record.Tagline,
			illus.Bounds().Size(), opts.TitleFont, opts.BodyFont)
		hooks.OnLayoutComplete(ctx, job.ID, l.Shrinks, l.Tight(), time.Since(layoutStart), err)
		if err != nil {
			return r.layoutFailed(logger, finish, err)
		}
		res.Layout = &l
		logLayout(logger, l)
		return finish(OutcomeDryRun, nil)
	}

	out := filepath.Join(opts.OutDir, OutputName(job.ID, job.Record.Title))
	key := r.Keyer.CardKey(cache.CardKeyParts{
		IllustrationHash: cache.Hash(data),
		TemplateHash:     opts.TemplateHash,
		Profile:          opts.Profile,
		Style:            opts.Style,
		TitleFont:        fontKey(opts.TitleFont.Family, opts.TitleFont.Source),
		BodyFont:         fontKey(opts.BodyFont.Family, opts.BodyFont.Source),
		Title:            job.Record.Title,
		Tagline:          job.Record.Tagline,
		Version:          buildinfo.Version,
	})

	if cached, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, cacheKeyType)
		if err := writeFile(out, cached); err != nil {
			logger.Error("write failed", "path", out, "err", err)
			return finish(OutcomeFailed, err)
		}
		res.Output = out
		logger.Info("reused cached card", "path", out)
		return finish(OutcomeCached, nil)
	}
	observability.Cache().OnCacheMiss(ctx, cacheKeyType)

	layoutStart := time.Now()
	img, l, err := render.LayoutAndRender(opts.Profile, opts.Style, opts.Template,
		job.Record.Title, job.Record.Tagline, illus, opts.TitleFont, opts.BodyFont)
	hooks.OnLayoutComplete(ctx, job.ID, l.Shrinks, l.Tight(), time.Since(layoutStart), err)
	if err != nil {
		return r.layoutFailed(logger, finish, err)
	}
	res.Layout = &l
	logLayout(logger, l)

	png, err := render.EncodePNG(img)
	if err != nil {
		logger.Error("encode failed", "err", err)
		return finish(OutcomeFailed, err)
	}
	if err := writeFile(out, png); err != nil {
		logger.Error("write failed", "path", out, "err", err)
		return finish(OutcomeFailed, err)
	}
	if err := r.Cache.Set(ctx, key, png, cache.TTLCard); err == nil {
		observability.Cache().OnCacheSet(ctx, cacheKeyType, len(png))
	} else {
		logger.Debug("cache write failed", "err", err)
	}

	res.Output = out
	logger.Info("created card", "path", out, "duration", time.Since(start).Round(time.Millisecond))
	return finish(OutcomeRendered, nil)
}

// layoutFailed logs overflow distinctly from other layout failures.
func (r *Runner) layoutFailed(logger *log.Logger, finish func(Outcome, error) CardResult, err error) CardResult {
	var o *errors.OverflowError
	switch {
	case errors.As(err, &o):
		logger.Error("layout overflow", "stage", o.Stage, "needed", o.Needed, "available", o.Available)
		return finish(OutcomeOverflow, err)
	case errors.Is(err, errors.ErrCodeLayoutOverflow):
		logger.Error("layout overflow", "err", errors.UserMessage(err))
		return finish(OutcomeOverflow, err)
	}
	logger.Error("layout failed", "err", err)
	return finish(OutcomeFailed, err)
}

func logLayout(logger *log.Logger, l layout.Result) {
	if l.Tight() {
		logger.Warn("tight layout", "shrinks", l.Shrinks, "bottom_padding", l.BottomPadding, "image_scale", fmt.Sprintf("%.3f", l.Image.Scale))
	}
	logger.Debug("layout",
		"title_size", fmt.Sprintf("%.1f", l.Title.Size),
		"image", l.Image.Box,
		"tagline_lines", len(l.Tagline.Lines))
}

func fontKey(family, source string) string {
	if source == "" {
		return "builtin:" + family
	}
	return source
}

// writeFile writes data next to path and renames it into place, so an
// interrupted run never leaves a truncated card behind.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".card-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
