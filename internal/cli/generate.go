package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/swipefish/swipecard/pkg/buildinfo"
	"github.com/swipefish/swipecard/pkg/cache"
	"github.com/swipefish/swipecard/pkg/config"
	"github.com/swipefish/swipecard/pkg/errors"
	"github.com/swipefish/swipecard/pkg/pipeline"
	"github.com/swipefish/swipecard/pkg/render"
	"github.com/swipefish/swipecard/pkg/source"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	profileFlags
	csv      string // CSV file with one row per identifier
	images   string // directory scanned for illustrations
	template string // background PNG
	out      string // output directory
	workers  int
	noCache  bool
	dryRun   bool
}

func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{
		images:  ".",
		out:     pipeline.DefaultOutDir,
		workers: pipeline.DefaultWorkers,
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compose a card for every illustration in a directory",
		Long: `Generate scans the images directory for illustrations named after the
profile's identifier pattern (R001.png, R002_draft.png, ...), looks up title and
tagline in the CSV and writes one card per illustration to the output directory.

Cards that cannot be produced are reported and skipped; the command only fails
when nothing can be processed at all.`,
		Example: `  swipecard generate --csv roles.csv --images raw --template blank.png
  swipecard generate -p personas -c swipecard.toml --csv personas.csv --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger.With("run", newRunID()))
			return c.runGenerate(ctx, &opts)
		},
	}

	opts.profileFlags.register(cmd)
	cmd.Flags().StringVar(&opts.csv, "csv", "", "CSV file with titles and taglines (required)")
	cmd.Flags().StringVarP(&opts.images, "images", "i", opts.images, "directory with numbered illustrations")
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "background template PNG (required unless --dry-run)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", opts.out, "output directory")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", opts.workers, "cards processed in parallel")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "always re-render, bypassing the render cache")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "compute layouts without writing cards")
	_ = cmd.MarkFlagRequired("csv")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, opts *generateOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	if opts.template == "" && !opts.dryRun {
		return errors.New(errors.ErrCodeInvalidInput, "--template is required unless --dry-run is set")
	}

	profile, err := opts.resolve()
	if err != nil {
		return err
	}
	logger.Debug("starting", "version", buildinfo.Short(), "profile", profile.Name)

	records, err := source.LoadRecords(opts.csv, profile.Source.Columns)
	if err != nil {
		return err
	}
	for _, w := range records.Warnings() {
		logger.Warn("csv row truncated", "reason", errors.UserMessage(w))
	}
	ills, err := source.Scan(opts.images, profile.Source.Matcher)
	if err != nil {
		return err
	}
	if len(ills) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no illustrations found in %s (expected names like %s)",
			opts.images, exampleName(profile))
	}
	logger.Infof("Found %d image(s) to process", len(ills))

	titleFont, bodyFont, warnings := profile.ResolveFonts()
	for _, w := range warnings {
		logger.Warn("font fallback", "reason", errors.UserMessage(w))
	}

	popts := pipeline.Options{
		Profile:   profile.Layout,
		Style:     profile.Style,
		TitleFont: titleFont,
		BodyFont:  bodyFont,
		OutDir:    opts.out,
		Workers:   opts.workers,
		DryRun:    opts.dryRun,
		Logger:    logger,
	}
	if opts.template != "" {
		data, err := os.ReadFile(opts.template)
		if err != nil {
			return errors.Wrap(errors.ErrCodeAssetLoad, err, "read template %s", opts.template)
		}
		tmpl, err := render.Decode(data)
		if err != nil {
			return fmt.Errorf("template %s: %w", opts.template, err)
		}
		popts.Template = tmpl
		popts.TemplateHash = cache.Hash(data)
	}

	runner, err := c.newRunner(opts.noCache || opts.dryRun, profile.Name)
	if err != nil {
		return err
	}
	defer runner.Close()

	summary, err := runner.Run(ctx, pipeline.Plan(ills, records), popts)
	if summary != nil {
		printSummary(summary)
		if summary.Tight > 0 || summary.Overflowed > 0 {
			printNextStep("Inspect a card", fmt.Sprintf("%s layout <illustration> --csv %s", appName, opts.csv))
		}
	}
	if err != nil {
		return err
	}
	prog.done("Done")
	return nil
}

// exampleName shows what an illustration file of the profile looks like.
func exampleName(p config.Profile) string {
	return fmt.Sprintf("%s%0*d.png", p.Source.Prefix, p.Source.Digits, 1)
}
